package provider

// Blended USD cost per token, derived from published list prices. Cost
// attribution only needs to be stable and comparable, not exact, so a
// single blended rate per model is enough.
var modelRates = map[string]float64{
	"anthropic/claude-3-5-haiku-latest":  2.00e-6,
	"anthropic/claude-sonnet-4-20250514": 9.00e-6,
	"openai/gpt-4o-mini":                 0.375e-6,
	"openai/gpt-4o":                      6.25e-6,
	"deepseek/deepseek-chat":             0.55e-6,
	"groq/llama-3.3-70b-versatile":       0.64e-6,
	"gemini/gemini-2.0-flash":            0.25e-6,
}

var providerDefaultRates = map[Name]float64{
	Anthropic: 2.00e-6,
	OpenAI:    1.00e-6,
	DeepSeek:  0.55e-6,
	Groq:      0.64e-6,
	Gemini:    0.25e-6,
	Local:     0,
}

// EstimateCost prices a call by token count. Unknown models fall back to
// the provider's default rate.
func EstimateCost(provider Name, model string, tokens int) float64 {
	if tokens <= 0 {
		return 0
	}
	rate, ok := modelRates[string(provider)+"/"+model]
	if !ok {
		rate = providerDefaultRates[provider]
	}
	return float64(tokens) * rate
}

// estimateTokens is a rough fallback when the API omits usage numbers.
func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	n := len(text) / 4
	if n == 0 {
		n = 1
	}
	return n
}
