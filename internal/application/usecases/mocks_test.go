package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/halcyonlab/promptforge/internal/adapters/provider"
	"github.com/halcyonlab/promptforge/internal/domain"
	"github.com/halcyonlab/promptforge/internal/domain/models"
)

// fakeAdapter implements provider.Adapter with scripted behavior.
type fakeAdapter struct {
	name    provider.Name
	text    string
	latency time.Duration
	cost    float64
	delay   time.Duration
	err     *provider.Error
}

func (f *fakeAdapter) Name() provider.Name { return f.name }
func (f *fakeAdapter) Model() string       { return "fake-model" }

func (f *fakeAdapter) Complete(ctx context.Context, req provider.Request) (*provider.Result, error) {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, &provider.Error{Provider: f.name, Kind: provider.KindTimeout, Err: ctx.Err()}
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &provider.Result{
		Text:       f.text,
		Model:      "fake-model",
		TokenCount: len(f.text) / 4,
		Latency:    f.latency,
		CostUSD:    f.cost,
	}, nil
}

func newFakeRegistry(adapters ...provider.Adapter) *provider.Registry {
	r := provider.NewRegistry(nil)
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// fakeTemplateRepo holds templates in memory.
type fakeTemplateRepo struct {
	mu        sync.Mutex
	templates map[string]*models.PromptTemplate
}

func newFakeTemplateRepo(templates ...*models.PromptTemplate) *fakeTemplateRepo {
	m := make(map[string]*models.PromptTemplate)
	for _, t := range templates {
		m[t.ID] = t
	}
	return &fakeTemplateRepo{templates: m}
}

func (f *fakeTemplateRepo) Create(ctx context.Context, t *models.PromptTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.templates[t.ID] = t
	return nil
}

func (f *fakeTemplateRepo) GetByID(ctx context.Context, id string) (*models.PromptTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.templates[id]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	clone := *t
	return &clone, nil
}

func (f *fakeTemplateRepo) GetByName(ctx context.Context, name string) (*models.PromptTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.templates {
		if t.Name == name {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTemplateNotFound
}

func (f *fakeTemplateRepo) List(ctx context.Context, category string, limit, offset int) ([]*models.PromptTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.PromptTemplate
	for _, t := range f.templates {
		if category == "" || t.Category == category {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeTemplateRepo) UpdateBody(ctx context.Context, id, body string, variables []string, description string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.templates[id]
	if !ok {
		return 0, domain.ErrTemplateNotFound
	}
	t.Template = body
	t.Variables = variables
	t.Version++
	return t.Version, nil
}

func (f *fakeTemplateRepo) UpdateRating(ctx context.Context, id string, rating float64, usageCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.templates[id]
	if !ok {
		return domain.ErrTemplateNotFound
	}
	t.Rating = rating
	t.UsageCount = usageCount
	return nil
}

// fakeResultRepo records inserted rows; failCreate makes Create fail.
type fakeResultRepo struct {
	mu         sync.Mutex
	created    []*models.TestResult
	failCreate bool
}

func (f *fakeResultRepo) Create(ctx context.Context, r *models.TestResult) error {
	if f.failCreate {
		return errors.New("storage unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, r)
	return nil
}

func (f *fakeResultRepo) ListByPrompt(ctx context.Context, promptID string, limit int) ([]*models.TestResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created, nil
}

// fakeIDs mints sequential IDs.
type fakeIDs struct {
	mu sync.Mutex
	n  int
}

func (f *fakeIDs) next(prefix string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return fmt.Sprintf("%s_%d", prefix, f.n)
}

func (f *fakeIDs) TemplateID() string     { return f.next("tpl") }
func (f *fakeIDs) TestResultID() string   { return f.next("tr") }
func (f *fakeIDs) OptimizationID() string { return f.next("opt") }
func (f *fakeIDs) KnowledgeID() string    { return f.next("kb") }
