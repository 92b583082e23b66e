package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/halcyonlab/promptforge/internal/domain"
	"github.com/halcyonlab/promptforge/internal/domain/models"
	"github.com/halcyonlab/promptforge/internal/ports"
	"github.com/halcyonlab/promptforge/internal/prompt"
)

// TemplateService covers library reads, seeding, export and the
// knowledge log.
type TemplateService struct {
	templates ports.TemplateRepository
	knowledge ports.KnowledgeRepository
	ids       ports.IDGenerator
	logger    *slog.Logger
}

func NewTemplateService(
	templates ports.TemplateRepository,
	knowledge ports.KnowledgeRepository,
	ids ports.IDGenerator,
	logger *slog.Logger,
) *TemplateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TemplateService{
		templates: templates,
		knowledge: knowledge,
		ids:       ids,
		logger:    logger,
	}
}

func (s *TemplateService) Get(ctx context.Context, id string) (*models.PromptTemplate, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	return s.templates.GetByID(ctx, id)
}

func (s *TemplateService) List(ctx context.Context, category string, limit, offset int) ([]*models.PromptTemplate, error) {
	return s.templates.List(ctx, category, limit, offset)
}

// Export writes the full template set to w as JSON (default) or YAML.
func (s *TemplateService) Export(ctx context.Context, w io.Writer, format string) error {
	templates, err := s.templates.List(ctx, "", 200, 0)
	if err != nil {
		return err
	}

	payload := struct {
		ExportedAt time.Time                `json:"exported_at" yaml:"exported_at"`
		Count      int                      `json:"count" yaml:"count"`
		Templates  []*models.PromptTemplate `json:"templates" yaml:"templates"`
	}{
		ExportedAt: time.Now().UTC(),
		Count:      len(templates),
		Templates:  templates,
	}

	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(payload)
	default:
		return fmt.Errorf("%w: unsupported export format %q", domain.ErrInvalidInput, format)
	}
}

// Seed installs the starter library, skipping templates whose name
// already exists so repeated runs are idempotent.
func (s *TemplateService) Seed(ctx context.Context) (int, error) {
	inserted := 0
	for _, seed := range seedLibrary {
		_, err := s.templates.GetByName(ctx, seed.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrTemplateNotFound) {
			return inserted, err
		}

		now := time.Now().UTC()
		tmpl := &models.PromptTemplate{
			ID:          s.ids.TemplateID(),
			Name:        seed.Name,
			Category:    seed.Category,
			Template:    seed.Template,
			Description: seed.Description,
			Variables:   prompt.ExtractVariables(seed.Template),
			CreatedAt:   now,
			UpdatedAt:   now,
			Version:     1,
		}
		if err := s.templates.Create(ctx, tmpl); err != nil {
			return inserted, fmt.Errorf("failed to seed %s: %w", seed.Name, err)
		}
		inserted++
	}

	s.logger.Info("library seeded", "inserted", inserted, "total", len(seedLibrary))
	return inserted, nil
}

func (s *TemplateService) AddKnowledge(ctx context.Context, topic, content, source string) (*models.KnowledgeEntry, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, domain.ErrEmptyTopic
	}
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}

	entry := &models.KnowledgeEntry{
		ID:             s.ids.KnowledgeID(),
		Topic:          topic,
		Content:        content,
		Source:         source,
		RelevanceScore: 0.5,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.knowledge.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *TemplateService) ListKnowledge(ctx context.Context, topic string, limit int) ([]*models.KnowledgeEntry, error) {
	return s.knowledge.List(ctx, topic, limit)
}
