package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"cvscan/internal/coach"
	"cvscan/internal/config"
	"cvscan/internal/logger"
	"cvscan/pkg/models"
)

var coachCmd = &cobra.Command{
	Use:   "coach [extraction-file]",
	Short: "Get AI improvement advice for an extracted CV",
	Long: `Send an extraction result (as produced by 'cvscan extract' or the
extraction part of 'cvscan scan --json') to OpenAI and print structured
improvement advice: an overall assessment plus prioritized suggestions per
CV area.

Required environment variables:
  OPENAI_API_KEY - Your OpenAI API key`,
	Example: `  # Review an extraction result
  cvscan extract cv.txt -o extraction.json
  cvscan coach extraction.json

  # Save advice as JSON
  cvscan coach extraction.json --json -o advice.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCoach,
}

func init() {
	rootCmd.AddCommand(coachCmd)

	coachCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	coachCmd.Flags().Bool("json", false, "Output as JSON")
	coachCmd.Flags().Int("timeout", 120, "Request timeout in seconds")
}

func runCoach(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("coach")

	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireOpenAI(); err != nil {
		log.Error().Err(err).Msg("OpenAI configuration missing")
		return err
	}

	result, err := readExtractionFile(args[0])
	if err != nil {
		log.Error().Err(err).Str("file", args[0]).Msg("Failed to read extraction file")
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	session := coach.NewSession(openai.NewClient(cfg.OpenAIAPIKey), coach.Config{
		Model:       cfg.OpenAIModel,
		MaxTokens:   cfg.CoachMaxTokens,
		Temperature: cfg.CoachTemperature,
	})

	log.Info().
		Str("session_id", session.ID()).
		Str("model", cfg.OpenAIModel).
		Msg("Requesting coaching advice")

	advice, err := session.Review(ctx, *result)
	if err != nil {
		return fmt.Errorf("coaching request failed: %w", err)
	}

	var outputData []byte
	if jsonOutput {
		outputData, err = json.MarshalIndent(advice, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
	} else {
		outputData = []byte(formatAdvice(advice))
	}

	return writeOutput(outputData, outputPath, jsonOutput, log)
}

// readExtractionFile loads and decodes an ExtractionResult JSON file
func readExtractionFile(path string) (*models.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("extraction file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read extraction file: %w", err)
	}

	var result models.ExtractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("invalid extraction file %s: %w", path, err)
	}
	return &result, nil
}

func formatAdvice(advice *coach.Advice) string {
	out := fmt.Sprintf("=== CV Review ===\n%s\n", advice.Summary)
	for _, s := range advice.Suggestions {
		out += fmt.Sprintf("\n[%s] %s\n  %s\n", s.Priority, s.Area, s.Advice)
	}
	return out
}
