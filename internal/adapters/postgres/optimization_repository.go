package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/halcyonlab/promptforge/internal/domain/models"
)

// OptimizationRepository implements ports.OptimizationRepository
type OptimizationRepository struct {
	BaseRepository
}

// NewOptimizationRepository creates a new optimization repository
func NewOptimizationRepository(pool *pgxpool.Pool) *OptimizationRepository {
	return &OptimizationRepository{
		BaseRepository: NewBaseRepository(pool),
	}
}

func (r *OptimizationRepository) Create(ctx context.Context, opt *models.Optimization) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO optimizations (
			id, prompt_id, original_template, optimized_template,
			improvement_score, optimization_type, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`

	_, err := r.conn(ctx).Exec(ctx, query,
		opt.ID,
		opt.PromptID,
		opt.OriginalTemplate,
		opt.OptimizedTemplate,
		opt.ImprovementScore,
		string(opt.OptimizationType),
		opt.CreatedAt,
	)

	return err
}

func (r *OptimizationRepository) ListByPrompt(ctx context.Context, promptID string) ([]*models.Optimization, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, prompt_id, original_template, optimized_template,
		       improvement_score, optimization_type, created_at
		FROM optimizations
		WHERE prompt_id = $1
		ORDER BY created_at DESC`

	rows, err := r.conn(ctx).Query(ctx, query, promptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanOptimizations(rows)
}

func (r *OptimizationRepository) scanOptimizations(rows pgx.Rows) ([]*models.Optimization, error) {
	opts := make([]*models.Optimization, 0)

	for rows.Next() {
		var opt models.Optimization
		var optType string

		err := rows.Scan(
			&opt.ID,
			&opt.PromptID,
			&opt.OriginalTemplate,
			&opt.OptimizedTemplate,
			&opt.ImprovementScore,
			&optType,
			&opt.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		opt.OptimizationType = models.OptimizationType(optType)
		opts = append(opts, &opt)
	}

	return opts, rows.Err()
}
