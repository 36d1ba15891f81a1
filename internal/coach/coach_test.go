package coach

import (
	"encoding/json"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	payload := `{"summary": "ok", "suggestions": []}`

	assert.Equal(t, payload, stripCodeFences(payload))
	assert.Equal(t, payload, stripCodeFences("```json\n"+payload+"\n```"))
	assert.Equal(t, payload, stripCodeFences("```\n"+payload+"\n```"))
	assert.Equal(t, payload, stripCodeFences("  \n"+payload+"\n  "))
}

func TestAdviceParsesFencedResponse(t *testing.T) {
	response := "```json\n{\"summary\": \"Solide base technique.\", \"suggestions\": [{\"area\": \"experience\", \"advice\": \"Quantifier les résultats.\", \"priority\": \"high\"}]}\n```"

	var advice Advice
	require.NoError(t, json.Unmarshal([]byte(stripCodeFences(response)), &advice))

	assert.Equal(t, "Solide base technique.", advice.Summary)
	require.Len(t, advice.Suggestions, 1)
	assert.Equal(t, "experience", advice.Suggestions[0].Area)
	assert.Equal(t, "high", advice.Suggestions[0].Priority)
}

func TestNewSessionDefaults(t *testing.T) {
	session := NewSession(openai.NewClient("test-key"), Config{})

	assert.NotEmpty(t, session.ID())
	assert.Equal(t, DefaultConfig(), session.cfg)
}

func TestNewSessionIDsAreUnique(t *testing.T) {
	client := openai.NewClient("test-key")

	a := NewSession(client, DefaultConfig())
	b := NewSession(client, DefaultConfig())

	assert.NotEqual(t, a.ID(), b.ID())
}
