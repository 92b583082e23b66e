package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/halcyonlab/promptforge/internal/adapters/provider"
	"github.com/halcyonlab/promptforge/internal/domain"
	"github.com/halcyonlab/promptforge/internal/domain/models"
)

// scriptedAdapter returns canned replies in order, one per call.
type scriptedAdapter struct {
	name    provider.Name
	replies []string
	err     error
	calls   int
	mu      sync.Mutex
}

func (s *scriptedAdapter) Name() provider.Name { return s.name }
func (s *scriptedAdapter) Model() string       { return "scripted" }

func (s *scriptedAdapter) Complete(ctx context.Context, req provider.Request) (*provider.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	reply := s.replies[len(s.replies)-1]
	if s.calls < len(s.replies) {
		reply = s.replies[s.calls]
	}
	s.calls++
	return &provider.Result{Text: reply, Model: "scripted", TokenCount: len(reply) / 4}, nil
}

func registryWith(a provider.Adapter) *provider.Registry {
	r := provider.NewRegistry(nil)
	r.Register(a)
	return r
}

type memTemplateRepo struct {
	mu        sync.Mutex
	templates map[string]*models.PromptTemplate
	byName    map[string]string
}

func newMemTemplateRepo(templates ...*models.PromptTemplate) *memTemplateRepo {
	r := &memTemplateRepo{
		templates: make(map[string]*models.PromptTemplate),
		byName:    make(map[string]string),
	}
	for _, t := range templates {
		r.templates[t.ID] = t
		r.byName[t.Name] = t.ID
	}
	return r
}

func (r *memTemplateRepo) Create(ctx context.Context, t *models.PromptTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.ID] = t
	r.byName[t.Name] = t.ID
	return nil
}

func (r *memTemplateRepo) GetByID(ctx context.Context, id string) (*models.PromptTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *memTemplateRepo) GetByName(ctx context.Context, name string) (*models.PromptTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byName[name]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	clone := *r.templates[id]
	return &clone, nil
}

func (r *memTemplateRepo) List(ctx context.Context, category string, limit, offset int) ([]*models.PromptTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.PromptTemplate, 0, len(r.templates))
	for _, t := range r.templates {
		if category == "" || t.Category == category {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memTemplateRepo) UpdateBody(ctx context.Context, id, body string, variables []string, description string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if !ok {
		return 0, domain.ErrTemplateNotFound
	}
	t.Template = body
	t.Variables = variables
	if description != "" {
		t.Description = description
	}
	t.Version++
	return t.Version, nil
}

func (r *memTemplateRepo) UpdateRating(ctx context.Context, id string, rating float64, usageCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if !ok {
		return domain.ErrTemplateNotFound
	}
	t.Rating = rating
	t.UsageCount = usageCount
	return nil
}

type memOptimizationRepo struct {
	mu        sync.Mutex
	created   []*models.Optimization
	createErr error
}

func (r *memOptimizationRepo) Create(ctx context.Context, opt *models.Optimization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, opt)
	return nil
}

func (r *memOptimizationRepo) ListByPrompt(ctx context.Context, promptID string) ([]*models.Optimization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created, nil
}

type memKnowledgeRepo struct {
	mu      sync.Mutex
	entries []*models.KnowledgeEntry
}

func (r *memKnowledgeRepo) Create(ctx context.Context, e *models.KnowledgeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *memKnowledgeRepo) List(ctx context.Context, topic string, limit int) ([]*models.KnowledgeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.KnowledgeEntry
	for _, e := range r.entries {
		if topic == "" || e.Topic == topic {
			out = append(out, e)
		}
	}
	return out, nil
}

// trackingTx counts transactions and runs the function directly.
type trackingTx struct {
	mu    sync.Mutex
	calls int
}

func (t *trackingTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	return fn(ctx)
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s_%d", prefix, s.n)
}

func (s *seqIDs) TemplateID() string     { return s.next("tpl") }
func (s *seqIDs) TestResultID() string   { return s.next("tr") }
func (s *seqIDs) OptimizationID() string { return s.next("opt") }
func (s *seqIDs) KnowledgeID() string    { return s.next("kb") }
