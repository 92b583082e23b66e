package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/halcyonlab/promptforge/internal/domain"
	"github.com/halcyonlab/promptforge/internal/domain/models"
)

func TestTemplateRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	repo := &TemplateRepository{
		BaseRepository: BaseRepository{pool: nil},
	}

	now := time.Now()
	tmpl := &models.PromptTemplate{
		ID:          "tpl_1",
		Name:        "trading_analyze_momentum",
		Category:    "trading",
		Template:    "Analyze {symbol} momentum over {timeframe}.",
		Description: "momentum starter",
		Variables:   []string{"symbol", "timeframe"},
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}

	mock.ExpectExec("INSERT INTO prompts").
		WithArgs(
			tmpl.ID, tmpl.Name, tmpl.Category, tmpl.Template, tmpl.Description,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			tmpl.Version, tmpl.Rating, tmpl.UsageCount,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	ctx := setupMockContext(mock)
	if err := repo.Create(ctx, tmpl); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestTemplateRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	repo := &TemplateRepository{
		BaseRepository: BaseRepository{pool: nil},
	}

	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "name", "category", "template", "description", "variables",
		"created_at", "updated_at", "version", "rating", "usage_count",
	}).AddRow(
		"tpl_1", "trading_analyze", "trading", "Analyze {symbol}.", "desc",
		[]byte(`["symbol"]`), now, now, 3, 0.75, 12,
	)

	mock.ExpectQuery("SELECT (.+) FROM prompts").
		WithArgs("tpl_1").
		WillReturnRows(rows)

	ctx := setupMockContext(mock)
	tmpl, err := repo.GetByID(ctx, "tpl_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tmpl.Version != 3 {
		t.Errorf("expected version 3, got %d", tmpl.Version)
	}
	if tmpl.Rating != 0.75 {
		t.Errorf("expected rating 0.75, got %f", tmpl.Rating)
	}
	if len(tmpl.Variables) != 1 || tmpl.Variables[0] != "symbol" {
		t.Errorf("unexpected variables: %v", tmpl.Variables)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestTemplateRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	repo := &TemplateRepository{
		BaseRepository: BaseRepository{pool: nil},
	}

	mock.ExpectQuery("SELECT (.+) FROM prompts").
		WithArgs("tpl_missing").
		WillReturnError(pgx.ErrNoRows)

	ctx := setupMockContext(mock)
	_, err = repo.GetByID(ctx, "tpl_missing")
	if !errors.Is(err, domain.ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestTemplateRepository_UpdateBody(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	repo := &TemplateRepository{
		BaseRepository: BaseRepository{pool: nil},
	}

	rows := pgxmock.NewRows([]string{"version"}).AddRow(4)

	mock.ExpectQuery("UPDATE prompts").
		WithArgs("Analyze {symbol} and {volume}.", pgxmock.AnyArg(), "", "tpl_1").
		WillReturnRows(rows)

	ctx := setupMockContext(mock)
	version, err := repo.UpdateBody(ctx, "tpl_1", "Analyze {symbol} and {volume}.", []string{"symbol", "volume"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != 4 {
		t.Errorf("expected version 4, got %d", version)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestTemplateRepository_UpdateBody_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	repo := &TemplateRepository{
		BaseRepository: BaseRepository{pool: nil},
	}

	mock.ExpectQuery("UPDATE prompts").
		WithArgs("body", pgxmock.AnyArg(), "", "tpl_missing").
		WillReturnError(pgx.ErrNoRows)

	ctx := setupMockContext(mock)
	_, err = repo.UpdateBody(ctx, "tpl_missing", "body", nil, "")
	if !errors.Is(err, domain.ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestTemplateRepository_UpdateRating(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	repo := &TemplateRepository{
		BaseRepository: BaseRepository{pool: nil},
	}

	mock.ExpectExec("UPDATE prompts").
		WithArgs(0.6, 13, "tpl_1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ctx := setupMockContext(mock)
	if err := repo.UpdateRating(ctx, "tpl_1", 0.6, 13); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestTemplateRepository_UpdateRating_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	repo := &TemplateRepository{
		BaseRepository: BaseRepository{pool: nil},
	}

	mock.ExpectExec("UPDATE prompts").
		WithArgs(0.6, 13, "tpl_missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ctx := setupMockContext(mock)
	err = repo.UpdateRating(ctx, "tpl_missing", 0.6, 13)
	if !errors.Is(err, domain.ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestTemplateRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	repo := &TemplateRepository{
		BaseRepository: BaseRepository{pool: nil},
	}

	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "name", "category", "template", "description", "variables",
		"created_at", "updated_at", "version", "rating", "usage_count",
	}).
		AddRow("tpl_1", "a", "trading", "t1", "", []byte(`[]`), now, now, 1, 0.9, 5).
		AddRow("tpl_2", "b", "trading", "t2", "", []byte(`["x"]`), now, now, 2, 0.8, 9)

	mock.ExpectQuery("SELECT (.+) FROM prompts").
		WithArgs("trading", 50, 0).
		WillReturnRows(rows)

	ctx := setupMockContext(mock)
	templates, err := repo.List(ctx, "trading", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}
	if templates[0].ID != "tpl_1" {
		t.Errorf("expected tpl_1 first, got %s", templates[0].ID)
	}
	if templates[1].Variables[0] != "x" {
		t.Errorf("unexpected variables: %v", templates[1].Variables)
	}
}
