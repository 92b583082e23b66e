package models

import "time"

type OptimizationType string

const (
	OptimizationClarity     OptimizationType = "clarity"
	OptimizationEfficiency  OptimizationType = "efficiency"
	OptimizationSpecificity OptimizationType = "specificity"
)

// Optimization is an immutable audit record of one template rewrite.
type Optimization struct {
	ID                string           `json:"id"`
	PromptID          string           `json:"prompt_id"`
	OriginalTemplate  string           `json:"original_template"`
	OptimizedTemplate string           `json:"optimized_template"`
	ImprovementScore  float64          `json:"improvement_score"`
	OptimizationType  OptimizationType `json:"optimization_type"`
	CreatedAt         time.Time        `json:"created_at"`
}
