package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/halcyonlab/promptforge/internal/domain"
	"github.com/halcyonlab/promptforge/internal/domain/models"
)

// TemplateRepository implements ports.TemplateRepository
type TemplateRepository struct {
	BaseRepository
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{
		BaseRepository: NewBaseRepository(pool),
	}
}

const templateColumns = `id, name, category, template, description, variables, created_at, updated_at, version, rating, usage_count`

func (r *TemplateRepository) Create(ctx context.Context, t *models.PromptTemplate) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	variables, err := marshalStringSlice(t.Variables)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO prompts (
			id, name, category, template, description, variables,
			created_at, updated_at, version, rating, usage_count
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)`

	_, err = r.conn(ctx).Exec(ctx, query,
		t.ID,
		t.Name,
		t.Category,
		t.Template,
		t.Description,
		variables,
		t.CreatedAt,
		t.UpdatedAt,
		t.Version,
		t.Rating,
		t.UsageCount,
	)

	return err
}

func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*models.PromptTemplate, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + templateColumns + ` FROM prompts WHERE id = $1`

	return r.scanTemplate(r.conn(ctx).QueryRow(ctx, query, id))
}

func (r *TemplateRepository) GetByName(ctx context.Context, name string) (*models.PromptTemplate, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + templateColumns + ` FROM prompts WHERE name = $1`

	return r.scanTemplate(r.conn(ctx).QueryRow(ctx, query, name))
}

func (r *TemplateRepository) List(ctx context.Context, category string, limit, offset int) ([]*models.PromptTemplate, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + templateColumns + ` FROM prompts`
	args := []any{}
	argPos := 1

	if category != "" {
		query += fmt.Sprintf(" WHERE category = $%d", argPos)
		args = append(args, category)
		argPos++
	}

	query += " ORDER BY rating DESC, usage_count DESC, created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanTemplates(rows)
}

// UpdateBody replaces the template body and variable set, bumping the
// version counter in the same statement so readers never observe a new
// body with a stale version.
func (r *TemplateRepository) UpdateBody(ctx context.Context, id, body string, variables []string, description string) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	vars, err := marshalStringSlice(variables)
	if err != nil {
		return 0, err
	}

	query := `
		UPDATE prompts
		SET template = $1,
		    variables = $2,
		    description = COALESCE(NULLIF($3, ''), description),
		    version = version + 1,
		    updated_at = now()
		WHERE id = $4
		RETURNING version`

	var version int
	err = r.conn(ctx).QueryRow(ctx, query, body, vars, description, id).Scan(&version)
	if err != nil {
		if checkNoRows(err) {
			return 0, fmt.Errorf("update template %s: %w", id, domain.ErrTemplateNotFound)
		}
		return 0, err
	}

	return version, nil
}

func (r *TemplateRepository) UpdateRating(ctx context.Context, id string, rating float64, usageCount int) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE prompts
		SET rating = $1, usage_count = $2, updated_at = now()
		WHERE id = $3`

	result, err := r.conn(ctx).Exec(ctx, query, rating, usageCount, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update rating for %s: %w", id, domain.ErrTemplateNotFound)
	}

	return nil
}

func (r *TemplateRepository) scanTemplate(row pgx.Row) (*models.PromptTemplate, error) {
	var t models.PromptTemplate
	var variables []byte

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Category,
		&t.Template,
		&t.Description,
		&variables,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.Version,
		&t.Rating,
		&t.UsageCount,
	)
	if err != nil {
		if checkNoRows(err) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}

	t.Variables = unmarshalStringSlice(variables)

	return &t, nil
}

func (r *TemplateRepository) scanTemplates(rows pgx.Rows) ([]*models.PromptTemplate, error) {
	templates := make([]*models.PromptTemplate, 0)

	for rows.Next() {
		var t models.PromptTemplate
		var variables []byte

		err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Category,
			&t.Template,
			&t.Description,
			&variables,
			&t.CreatedAt,
			&t.UpdatedAt,
			&t.Version,
			&t.Rating,
			&t.UsageCount,
		)
		if err != nil {
			return nil, err
		}

		t.Variables = unmarshalStringSlice(variables)
		templates = append(templates, &t)
	}

	return templates, rows.Err()
}
