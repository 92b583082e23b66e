package models

import "time"

// TestResult records one provider call against a rendered prompt.
// Failed calls have a nil Output and a non-empty ErrorKind.
type TestResult struct {
	ID           string    `json:"id"`
	PromptID     string    `json:"prompt_id"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	Input        string    `json:"input"`
	Output       *string   `json:"output,omitempty"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	LatencyMs    int64     `json:"latency_ms"`
	TokenCount   int       `json:"token_count"`
	CostUSD      float64   `json:"cost_usd"`
	QualityScore float64   `json:"quality_score"`
	TestedAt     time.Time `json:"tested_at"`
}

// Succeeded reports whether the provider call produced output.
func (r *TestResult) Succeeded() bool {
	return r.Output != nil
}
