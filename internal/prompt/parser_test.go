package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenerationReply(t *testing.T) {
	raw := `{
		"prompt_template": "Analyze {symbol} price action over {timeframe}.",
		"variables": ["wrong", "list"],
		"description": "Technical analysis starter"
	}`

	reply, err := ParseGenerationReply(raw)
	require.NoError(t, err)
	assert.Equal(t, "Analyze {symbol} price action over {timeframe}.", reply.Template)
	assert.Equal(t, "Technical analysis starter", reply.Description)
	// variables come from the template text, not the model's list
	assert.Equal(t, []string{"symbol", "timeframe"}, reply.Variables)
}

func TestParseGenerationReplyFenced(t *testing.T) {
	raw := "Here is your template:\n```json\n{\"prompt_template\": \"Summarize {article}.\", \"description\": \"summaries\"}\n```\nLet me know if you need changes."

	reply, err := ParseGenerationReply(raw)
	require.NoError(t, err)
	assert.Equal(t, "Summarize {article}.", reply.Template)
	assert.Equal(t, []string{"article"}, reply.Variables)
}

func TestParseGenerationReplyProsePreamble(t *testing.T) {
	raw := `Sure! {"prompt_template": "Draft an email about {topic} to {recipient}.", "description": "email drafting"}`

	reply, err := ParseGenerationReply(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"topic", "recipient"}, reply.Variables)
}

func TestParseGenerationReplyFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no JSON at all", raw: "I cannot help with that."},
		{name: "empty template", raw: `{"prompt_template": "  ", "description": "x"}`},
		{name: "truncated object", raw: `{"prompt_template": "Analyze {symbol}`},
		{name: "empty input", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGenerationReply(tt.raw)
			assert.ErrorIs(t, err, ErrUnparseable)
		})
	}
}

func TestParseOptimizationReply(t *testing.T) {
	raw := "```json\n" + `{
		"improved": true,
		"optimized_prompt": "Analyze {symbol} momentum on {timeframe}; cite three indicators.",
		"improvements": ["added indicator requirement", "tightened wording"],
		"effectiveness_score": 87.5,
		"reasoning": "more specific output contract"
	}` + "\n```"

	reply, err := ParseOptimizationReply(raw)
	require.NoError(t, err)
	assert.True(t, reply.Improved)
	assert.InDelta(t, 87.5, reply.EffectivenessScore, 1e-9)
	assert.Len(t, reply.Improvements, 2)
}

func TestParseOptimizationReplyClampsScore(t *testing.T) {
	reply, err := ParseOptimizationReply(`{"optimized_prompt": "x", "effectiveness_score": 250}`)
	require.NoError(t, err)
	assert.Equal(t, 100.0, reply.EffectivenessScore)

	reply, err = ParseOptimizationReply(`{"optimized_prompt": "x", "effectiveness_score": -3}`)
	require.NoError(t, err)
	assert.Zero(t, reply.EffectivenessScore)
}

func TestParseOptimizationReplyGarbage(t *testing.T) {
	_, err := ParseOptimizationReply("The prompt looks fine as-is.")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestExtractJSONNestedBraces(t *testing.T) {
	raw := `{"prompt_template": "Return JSON like {\"score\": {n}} for {item}.", "description": "d"}`

	reply, err := ParseGenerationReply(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"n", "item"}, reply.Variables)
}
