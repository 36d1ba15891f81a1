// Package coach produces improvement advice for an extracted CV through the
// OpenAI chat API.
//
// State lives in an explicit Session owned by the caller, one per user
// conversation. Nothing is held in a package-level singleton, so concurrent
// users never share hidden state and tests can inject a configured client.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"cvscan/internal/logger"
	"cvscan/pkg/models"
)

// Config tunes the coach session.
type Config struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

// DefaultConfig returns the settings used when the caller passes a zero Config.
func DefaultConfig() Config {
	return Config{
		Model:       openai.GPT4oMini,
		MaxTokens:   1200,
		Temperature: 0.2,
	}
}

// Suggestion is one piece of advice for a CV area.
type Suggestion struct {
	Area     string `json:"area"`     // e.g. "experience", "skills", "summary"
	Advice   string `json:"advice"`   // what to change and why
	Priority string `json:"priority"` // low | medium | high
}

// Advice is the structured coaching response for one review.
type Advice struct {
	Summary     string       `json:"summary"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Session is one coaching conversation over a single CV. It keeps the chat
// history so follow-up questions carry context.
type Session struct {
	id      string
	client  *openai.Client
	cfg     Config
	history []openai.ChatCompletionMessage
	log     zerolog.Logger
}

// NewSession creates a coaching session around an existing OpenAI client.
func NewSession(client *openai.Client, cfg Config) *Session {
	if cfg.Model == "" {
		cfg = DefaultConfig()
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		client: client,
		cfg:    cfg,
		log:    logger.WithComponent("coach").With().Str("session_id", id).Logger(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Review asks the model for advice on an extraction result. The extractor's
// issues are included in the prompt so the advice covers fields the scan
// could not populate.
func (s *Session) Review(ctx context.Context, result models.ExtractionResult) (*Advice, error) {
	const op = "Review"

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to marshal extraction result: %w", op, err)
	}

	s.log.Info().
		Float64("extraction_confidence", result.Confidence).
		Int("issues", len(result.Issues)).
		Msg("Requesting CV coaching advice")

	s.history = append(s.history, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	}, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: fmt.Sprintf(reviewPromptTemplate, string(payload)),
	})

	content, err := s.complete(ctx, op)
	if err != nil {
		return nil, err
	}

	var advice Advice
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &advice); err != nil {
		s.log.Warn().
			Err(err).
			Str("response", content).
			Msg("Failed to parse coaching response as JSON")
		return nil, fmt.Errorf("%s: malformed coaching response: %w", op, err)
	}

	s.log.Info().
		Int("suggestions", len(advice.Suggestions)).
		Msg("Coaching advice received")
	return &advice, nil
}

// Ask sends a free-form follow-up question within the session context.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	const op = "Ask"

	s.history = append(s.history, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})
	return s.complete(ctx, op)
}

func (s *Session) complete(ctx context.Context, op string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    s.history,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s: OpenAI request failed: %w", op, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no response choices from OpenAI", op)
	}

	content := resp.Choices[0].Message.Content
	s.history = append(s.history, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: content,
	})
	return content, nil
}

// stripCodeFences unwraps responses the model returns inside markdown code blocks.
func stripCodeFences(response string) string {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
