package ports

import (
	"context"
	"io"

	"github.com/halcyonlab/promptforge/internal/domain/models"
)

// GenerateRequest describes a template to be drafted.
type GenerateRequest struct {
	Purpose      string            `json:"purpose"`
	Category     string            `json:"category"`
	Context      map[string]string `json:"context,omitempty"`
	AutoOptimize bool              `json:"auto_optimize"`
}

// OptimizationOutcome is the engine's answer for one optimization pass.
// Score is the model's self-reported effectiveness in [0,100]; a parse
// failure yields the original prompt with score 0 and an explanatory note.
type OptimizationOutcome struct {
	OptimizedPrompt string   `json:"optimized_prompt"`
	Score           float64  `json:"score"`
	Improvements    []string `json:"improvements,omitempty"`
	Improved        bool     `json:"improved"`
}

// PromptEngine generates and optimizes prompt templates via an LLM.
type PromptEngine interface {
	Generate(ctx context.Context, req GenerateRequest) (*models.PromptTemplate, error)
	Optimize(ctx context.Context, prompt, purpose string) (*OptimizationOutcome, error)
	// OptimizeTemplate optimizes a stored template in place, persisting
	// the rewritten body as a new version plus an audit record.
	OptimizeTemplate(ctx context.Context, id, purpose string) (*models.PromptTemplate, *OptimizationOutcome, error)
}

// LearningService folds usage feedback into template ratings.
type LearningService interface {
	Learn(ctx context.Context, templateID string, success bool, qualityScore *float64) (*models.PromptTemplate, error)
}

// TemplateService covers library reads, seeding and export.
type TemplateService interface {
	Get(ctx context.Context, id string) (*models.PromptTemplate, error)
	List(ctx context.Context, category string, limit, offset int) ([]*models.PromptTemplate, error)
	Export(ctx context.Context, w io.Writer, format string) error
	Seed(ctx context.Context) (int, error)
	AddKnowledge(ctx context.Context, topic, content, source string) (*models.KnowledgeEntry, error)
	ListKnowledge(ctx context.Context, topic string, limit int) ([]*models.KnowledgeEntry, error)
}

// IDGenerator mints prefixed entity IDs.
type IDGenerator interface {
	TemplateID() string
	TestResultID() string
	OptimizationID() string
	KnowledgeID() string
}
