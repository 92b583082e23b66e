package postgres

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/halcyonlab/promptforge/internal/domain/models"
)

// TestResultRepository implements ports.TestResultRepository
type TestResultRepository struct {
	BaseRepository
}

// NewTestResultRepository creates a new test result repository
func NewTestResultRepository(pool *pgxpool.Pool) *TestResultRepository {
	return &TestResultRepository{
		BaseRepository: NewBaseRepository(pool),
	}
}

func (r *TestResultRepository) Create(ctx context.Context, result *models.TestResult) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO test_results (
			id, prompt_id, provider, model, input, output, error_kind,
			latency_ms, token_count, cost_usd, quality_score, tested_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`

	_, err := r.conn(ctx).Exec(ctx, query,
		result.ID,
		result.PromptID,
		result.Provider,
		result.Model,
		result.Input,
		nullStringPtr(result.Output),
		nullString(result.ErrorKind),
		result.LatencyMs,
		result.TokenCount,
		result.CostUSD,
		result.QualityScore,
		result.TestedAt,
	)

	return err
}

func (r *TestResultRepository) ListByPrompt(ctx context.Context, promptID string, limit int) ([]*models.TestResult, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, prompt_id, provider, model, input, output, error_kind,
		       latency_ms, token_count, cost_usd, quality_score, tested_at
		FROM test_results
		WHERE prompt_id = $1
		ORDER BY tested_at DESC
		LIMIT $2`

	rows, err := r.conn(ctx).Query(ctx, query, promptID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanResults(rows)
}

func (r *TestResultRepository) scanResults(rows pgx.Rows) ([]*models.TestResult, error) {
	results := make([]*models.TestResult, 0)

	for rows.Next() {
		var res models.TestResult
		var output, errorKind sql.NullString

		err := rows.Scan(
			&res.ID,
			&res.PromptID,
			&res.Provider,
			&res.Model,
			&res.Input,
			&output,
			&errorKind,
			&res.LatencyMs,
			&res.TokenCount,
			&res.CostUSD,
			&res.QualityScore,
			&res.TestedAt,
		)
		if err != nil {
			return nil, err
		}

		res.Output = getStringPtr(output)
		res.ErrorKind = getString(errorKind)
		results = append(results, &res)
	}

	return results, rows.Err()
}
