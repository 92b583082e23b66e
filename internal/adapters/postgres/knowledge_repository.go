package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/halcyonlab/promptforge/internal/domain/models"
)

// KnowledgeRepository implements ports.KnowledgeRepository
type KnowledgeRepository struct {
	BaseRepository
}

// NewKnowledgeRepository creates a new knowledge repository
func NewKnowledgeRepository(pool *pgxpool.Pool) *KnowledgeRepository {
	return &KnowledgeRepository{
		BaseRepository: NewBaseRepository(pool),
	}
}

func (r *KnowledgeRepository) Create(ctx context.Context, entry *models.KnowledgeEntry) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO knowledge_base (
			id, topic, content, source, relevance_score, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)`

	_, err := r.conn(ctx).Exec(ctx, query,
		entry.ID,
		entry.Topic,
		entry.Content,
		entry.Source,
		entry.RelevanceScore,
		entry.CreatedAt,
	)

	return err
}

func (r *KnowledgeRepository) List(ctx context.Context, topic string, limit int) ([]*models.KnowledgeEntry, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, topic, content, source, relevance_score, created_at
		FROM knowledge_base`
	args := []any{}
	argPos := 1

	if topic != "" {
		query += fmt.Sprintf(" WHERE topic = $%d", argPos)
		args = append(args, topic)
		argPos++
	}

	query += " ORDER BY relevance_score DESC, created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d", argPos)
	args = append(args, limit)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.KnowledgeEntry, 0)
	for rows.Next() {
		var e models.KnowledgeEntry
		if err := rows.Scan(&e.ID, &e.Topic, &e.Content, &e.Source, &e.RelevanceScore, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
