package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halcyonlab/promptforge/internal/domain/models"
)

func success(provider string, latencyMs int64, cost, quality float64) *models.TestResult {
	out := "output"
	return &models.TestResult{
		Provider:     provider,
		Output:       &out,
		LatencyMs:    latencyMs,
		CostUSD:      cost,
		QualityScore: quality,
	}
}

func failure(provider, kind string) *models.TestResult {
	return &models.TestResult{Provider: provider, ErrorKind: kind}
}

func TestAnalyzeEmpty(t *testing.T) {
	a := Analyze(nil, DefaultWeights())
	assert.True(t, a.AllFailed)
	assert.Empty(t, a.Recommended)
}

func TestAnalyzeAllFailed(t *testing.T) {
	a := Analyze([]*models.TestResult{
		failure("openai", "timeout"),
		failure("groq", "auth"),
	}, DefaultWeights())

	assert.True(t, a.AllFailed)
	assert.Empty(t, a.Recommended)
	assert.Empty(t, a.Fastest)
	assert.Equal(t, []string{"openai", "groq"}, a.Failed)
}

func TestAnalyzeSingleSuccess(t *testing.T) {
	a := Analyze([]*models.TestResult{
		failure("openai", "rate_limited"),
		success("groq", 300, 0.0001, 0.4),
	}, DefaultWeights())

	assert.False(t, a.AllFailed)
	assert.Equal(t, "groq", a.Fastest)
	assert.Equal(t, "groq", a.Cheapest)
	assert.Equal(t, "groq", a.Recommended)
	assert.Equal(t, int64(300), a.FastestMs)
}

func TestAnalyzeFastestAndCheapestDiffer(t *testing.T) {
	results := []*models.TestResult{
		success("groq", 100, 0.01, 0.5),      // fastest, expensive
		success("deepseek", 900, 0.001, 0.5), // cheapest, slow
	}

	a := Analyze(results, DefaultWeights())
	assert.Equal(t, "groq", a.Fastest)
	assert.Equal(t, "deepseek", a.Cheapest)
	assert.Equal(t, int64(500), a.AvgLatencyMs)

	// weighting only latency flips the recommendation to the fast one
	a = Analyze(results, Weights{Latency: 1})
	assert.Equal(t, "groq", a.Recommended)

	// weighting only cost picks the cheap one
	a = Analyze(results, Weights{Cost: 1})
	assert.Equal(t, "deepseek", a.Recommended)
}

func TestAnalyzeQualityDominates(t *testing.T) {
	results := []*models.TestResult{
		success("openai", 100, 0.0010, 0.2),
		success("anthropic", 110, 0.0011, 0.95),
		success("deepseek", 1000, 0.0100, 0.1),
	}

	// openai and anthropic are nearly tied on latency and cost; the
	// quality gap decides
	a := Analyze(results, DefaultWeights())
	assert.Equal(t, "anthropic", a.Recommended)
}

func TestAnalyzeEqualResultsStable(t *testing.T) {
	results := []*models.TestResult{
		success("openai", 200, 0.001, 0.5),
		success("groq", 200, 0.001, 0.5),
	}

	a := Analyze(results, DefaultWeights())
	// degenerate ranges normalize to zero; the first provider wins ties
	assert.Equal(t, "openai", a.Recommended)
}
