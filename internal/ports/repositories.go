// Package ports defines the interfaces between the application core and
// its adapters.
package ports

import (
	"context"

	"github.com/halcyonlab/promptforge/internal/domain/models"
)

// TemplateRepository persists prompt templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *models.PromptTemplate) error
	GetByID(ctx context.Context, id string) (*models.PromptTemplate, error)
	GetByName(ctx context.Context, name string) (*models.PromptTemplate, error)
	// List returns templates ordered by rating then usage, optionally
	// filtered by category.
	List(ctx context.Context, category string, limit, offset int) ([]*models.PromptTemplate, error)
	// UpdateBody replaces the template body and variables, bumping the
	// version in the same statement. Returns the new version.
	UpdateBody(ctx context.Context, id, body string, variables []string, description string) (int, error)
	UpdateRating(ctx context.Context, id string, rating float64, usageCount int) error
}

// TestResultRepository persists immutable provider test records.
type TestResultRepository interface {
	Create(ctx context.Context, result *models.TestResult) error
	ListByPrompt(ctx context.Context, promptID string, limit int) ([]*models.TestResult, error)
}

// OptimizationRepository persists the optimization audit trail.
type OptimizationRepository interface {
	Create(ctx context.Context, opt *models.Optimization) error
	ListByPrompt(ctx context.Context, promptID string) ([]*models.Optimization, error)
}

// KnowledgeRepository persists the append-only knowledge log.
type KnowledgeRepository interface {
	Create(ctx context.Context, entry *models.KnowledgeEntry) error
	List(ctx context.Context, topic string, limit int) ([]*models.KnowledgeEntry, error)
}

// TransactionManager runs a function within a database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
