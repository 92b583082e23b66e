package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/halcyonlab/promptforge/internal/adapters/metrics"
	"github.com/halcyonlab/promptforge/internal/adapters/provider"
	"github.com/halcyonlab/promptforge/internal/domain"
	"github.com/halcyonlab/promptforge/internal/domain/models"
	"github.com/halcyonlab/promptforge/internal/ports"
	"github.com/halcyonlab/promptforge/internal/prompt"
)

// Options bounds the fan-out and weighs the analysis.
type Options struct {
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
	Weights     Weights
}

// TestReport is the outcome of one multi-provider run. Results holds
// exactly one entry per requested provider, in request order.
// StorageError is set when one or more rows could not be persisted; the
// results themselves are still complete.
type TestReport struct {
	TemplateID   string               `json:"template_id"`
	PromptUsed   string               `json:"prompt_used"`
	Warnings     []string             `json:"warnings,omitempty"`
	Results      []*models.TestResult `json:"results"`
	Analysis     Analysis             `json:"analysis"`
	StorageError string               `json:"storage_error,omitempty"`
}

// MultiModelTest renders a stored template and fans it out to several
// providers concurrently.
type MultiModelTest struct {
	templates ports.TemplateRepository
	results   ports.TestResultRepository
	providers *provider.Registry
	ids       ports.IDGenerator
	opts      Options
	logger    *slog.Logger
}

func NewMultiModelTest(
	templates ports.TemplateRepository,
	results ports.TestResultRepository,
	providers *provider.Registry,
	ids ports.IDGenerator,
	opts Options,
	logger *slog.Logger,
) *MultiModelTest {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MultiModelTest{
		templates: templates,
		results:   results,
		providers: providers,
		ids:       ids,
		opts:      opts,
		logger:    logger,
	}
}

// Execute renders the template with values and calls every requested
// provider concurrently. Each provider yields exactly one TestResult,
// success or failure; a slow provider times out on its own without
// dragging down the rest. All rows are persisted independently; a
// storage failure is reported alongside the (complete) report.
func (uc *MultiModelTest) Execute(ctx context.Context, templateID string, values map[string]string, requested []provider.Name) (*TestReport, error) {
	if len(requested) == 0 {
		return nil, domain.ErrNoProviders
	}

	// Validate the whole set before any call goes out.
	adapters := make([]provider.Adapter, len(requested))
	for i, name := range requested {
		a, err := uc.providers.Get(name)
		if err != nil {
			return nil, err
		}
		adapters[i] = a
	}

	tmpl, err := uc.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	rendered, missing := prompt.Render(tmpl.Template, values)
	report := &TestReport{
		TemplateID: templateID,
		PromptUsed: rendered,
	}
	for _, name := range missing {
		report.Warnings = append(report.Warnings, fmt.Sprintf("variable %q not provided, left as-is", name))
	}

	metrics.TestRunsTotal.Inc()

	slots := make([]*models.TestResult, len(requested))
	g := new(errgroup.Group)
	g.SetLimit(len(requested))
	for i, adapter := range adapters {
		g.Go(func() error {
			slots[i] = uc.callOne(ctx, adapter, tmpl.ID, rendered)
			return nil
		})
	}
	// Workers never return errors; every provider settles on its own.
	_ = g.Wait()

	report.Results = slots
	report.Analysis = Analyze(slots, uc.opts.Weights)
	if report.Analysis.AllFailed {
		uc.logger.Warn("all providers failed", "template_id", templateID, "providers", len(requested))
	}

	var storeErr error
	for _, res := range slots {
		if err := uc.results.Create(ctx, res); err != nil {
			uc.logger.Error("failed to store test result",
				"id", res.ID, "provider", res.Provider, "error", err)
			if storeErr == nil {
				storeErr = fmt.Errorf("failed to store test result %s: %w", res.ID, err)
			}
		}
	}
	if storeErr != nil {
		report.StorageError = storeErr.Error()
	}

	return report, storeErr
}

// callOne runs a single bounded provider call and always produces a
// TestResult, folding failures into the row instead of propagating them.
func (uc *MultiModelTest) callOne(ctx context.Context, adapter provider.Adapter, promptID, rendered string) *models.TestResult {
	callCtx, cancel := context.WithTimeout(ctx, uc.opts.Timeout)
	defer cancel()

	result := &models.TestResult{
		ID:       uc.ids.TestResultID(),
		PromptID: promptID,
		Provider: string(adapter.Name()),
		Model:    adapter.Model(),
		Input:    rendered,
		TestedAt: time.Now().UTC(),
	}

	start := time.Now()
	res, err := adapter.Complete(callCtx, provider.Request{
		Prompt:      rendered,
		MaxTokens:   uc.opts.MaxTokens,
		Temperature: uc.opts.Temperature,
	})
	if err != nil {
		result.LatencyMs = time.Since(start).Milliseconds()
		result.ErrorKind = string(errorKind(err))
		uc.logger.Warn("provider call failed",
			"provider", adapter.Name(), "kind", result.ErrorKind, "latency_ms", result.LatencyMs)
		return result
	}

	result.Output = &res.Text
	result.LatencyMs = res.Latency.Milliseconds()
	result.TokenCount = res.TokenCount
	result.CostUSD = res.CostUSD
	result.QualityScore = qualityScore(res.Text)
	return result
}

func errorKind(err error) provider.ErrorKind {
	var perr *provider.Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return provider.KindUnavailable
}

// qualityScore is a cheap length heuristic in [0,1]. Longer answers are
// assumed more substantive up to a kilobyte of text.
func qualityScore(text string) float64 {
	score := float64(len(text)) / 1000
	if score > 1 {
		return 1
	}
	return score
}
