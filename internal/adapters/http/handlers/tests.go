package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/halcyonlab/promptforge/internal/adapters/provider"
	"github.com/halcyonlab/promptforge/internal/application/usecases"
	"github.com/halcyonlab/promptforge/internal/ports"
)

// promptTester runs one rendered template against a set of providers.
type promptTester interface {
	Execute(ctx context.Context, templateID string, values map[string]string, requested []provider.Name) (*usecases.TestReport, error)
}

type TestsHandler struct {
	tester    promptTester
	learner   ports.LearningService
	providers *provider.Registry
	logger    *slog.Logger
}

func NewTestsHandler(tester promptTester, learner ports.LearningService, providers *provider.Registry, logger *slog.Logger) *TestsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TestsHandler{
		tester:    tester,
		learner:   learner,
		providers: providers,
		logger:    logger,
	}
}

type testRequest struct {
	Providers []string          `json:"providers,omitempty"`
	Values    map[string]string `json:"values,omitempty"`
}

// Test fans a rendered template out to the requested providers. An empty
// provider list means every enabled provider.
func (h *TestsHandler) Test(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "template id")
	if !ok {
		return
	}
	req, ok := decodeJSON[testRequest](r, w)
	if !ok {
		return
	}

	var requested []provider.Name
	if len(req.Providers) == 0 {
		requested = h.providers.Enabled()
	} else {
		for _, raw := range req.Providers {
			name, err := provider.Parse(raw)
			if err != nil {
				respondDomainError(w, err)
				return
			}
			requested = append(requested, name)
		}
	}

	report, err := h.tester.Execute(r.Context(), id, req.Values, requested)
	if err != nil {
		if report == nil {
			respondDomainError(w, err)
			return
		}
		// A storage failure still carries a complete report; surface the
		// results with the persistence failure recorded in the body.
		h.logger.Error("test results not fully persisted", "template_id", id, "error", err)
		report.StorageError = err.Error()
		respondJSON(w, report, http.StatusOK)
		return
	}

	respondJSON(w, report, http.StatusOK)
}

type learnRequest struct {
	Success      bool     `json:"success"`
	QualityScore *float64 `json:"quality_score,omitempty"`
}

func (h *TestsHandler) Learn(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "template id")
	if !ok {
		return
	}
	req, ok := decodeJSON[learnRequest](r, w)
	if !ok {
		return
	}

	tmpl, err := h.learner.Learn(r.Context(), id, req.Success, req.QualityScore)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, tmpl, http.StatusOK)
}
