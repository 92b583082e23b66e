package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVariables(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "ordered and deduplicated",
			body: "Analyze {symbol} on {timeframe}. Focus on {symbol} volume.",
			want: []string{"symbol", "timeframe"},
		},
		{
			name: "no placeholders",
			body: "Summarize the latest market news.",
			want: nil,
		},
		{
			name: "underscore names",
			body: "Write about {main_topic} for {target_audience}.",
			want: []string{"main_topic", "target_audience"},
		},
		{
			name: "ignores invalid placeholders",
			body: "JSON example: {\"key\": 1} and {123} but real {var} here",
			want: []string{"var"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVariables(tt.body))
		})
	}
}

func TestRender(t *testing.T) {
	body := "Analyze {symbol} over {timeframe} with focus on {focus}."

	rendered, missing := Render(body, map[string]string{
		"symbol":    "BTC/USD",
		"timeframe": "4h",
		"focus":     "momentum",
	})
	assert.Equal(t, "Analyze BTC/USD over 4h with focus on momentum.", rendered)
	assert.Empty(t, missing)
}

func TestRenderMissingVariableStaysVerbatim(t *testing.T) {
	rendered, missing := Render("Analyze {symbol} over {timeframe}.", map[string]string{
		"timeframe": "1d",
	})
	assert.Equal(t, "Analyze {symbol} over 1d.", rendered)
	assert.Equal(t, []string{"symbol"}, missing)
}

func TestRenderExtractRoundTrip(t *testing.T) {
	body := "Review {code} written in {language}."
	vars := ExtractVariables(body)

	values := make(map[string]string, len(vars))
	for _, v := range vars {
		values[v] = "x"
	}
	_, missing := Render(body, values)
	assert.Empty(t, missing)
}
