package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/halcyonlab/promptforge/internal/domain/models"
	"github.com/halcyonlab/promptforge/internal/ports"
)

const MaxPurposeLength = 2000

type TemplatesHandler struct {
	engine    ports.PromptEngine
	templates ports.TemplateService
	logger    *slog.Logger
}

func NewTemplatesHandler(engine ports.PromptEngine, templates ports.TemplateService, logger *slog.Logger) *TemplatesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TemplatesHandler{
		engine:    engine,
		templates: templates,
		logger:    logger,
	}
}

func (h *TemplatesHandler) Generate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[ports.GenerateRequest](r, w)
	if !ok {
		return
	}

	req.Purpose = strings.TrimSpace(req.Purpose)
	if len(req.Purpose) > MaxPurposeLength {
		respondError(w, "validation_error", "Purpose exceeds maximum length of 2000 characters", http.StatusBadRequest)
		return
	}

	tmpl, err := h.engine.Generate(r.Context(), *req)
	if err != nil {
		h.logger.Error("template generation failed", "purpose", req.Purpose, "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, tmpl, http.StatusCreated)
}

type optimizeRequest struct {
	Purpose string `json:"purpose"`
}

type optimizeResponse struct {
	Template *models.PromptTemplate     `json:"template"`
	Outcome  *ports.OptimizationOutcome `json:"outcome"`
}

func (h *TemplatesHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "template id")
	if !ok {
		return
	}
	req, ok := decodeJSON[optimizeRequest](r, w)
	if !ok {
		return
	}

	tmpl, outcome, err := h.engine.OptimizeTemplate(r.Context(), id, req.Purpose)
	if err != nil {
		h.logger.Error("template optimization failed", "template_id", id, "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, &optimizeResponse{Template: tmpl, Outcome: outcome}, http.StatusOK)
}

func (h *TemplatesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "template id")
	if !ok {
		return
	}

	tmpl, err := h.templates.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, tmpl, http.StatusOK)
}

type templateListResponse struct {
	Templates []*models.PromptTemplate `json:"templates"`
	Total     int                      `json:"total"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
}

func (h *TemplatesHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	templates, err := h.templates.List(r.Context(), category, limit, offset)
	if err != nil {
		h.logger.Error("failed to list templates", "category", category, "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, &templateListResponse{
		Templates: templates,
		Total:     len(templates),
		Limit:     limit,
		Offset:    offset,
	}, http.StatusOK)
}

func (h *TemplatesHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	// Export into a buffer first so a failure can still produce a clean
	// error response.
	var buf bytes.Buffer
	if err := h.templates.Export(r.Context(), &buf, format); err != nil {
		respondDomainError(w, err)
		return
	}

	contentType := "application/json"
	if format == "yaml" || format == "yml" {
		contentType = "application/yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

type seedResponse struct {
	Inserted int `json:"inserted"`
}

func (h *TemplatesHandler) Seed(w http.ResponseWriter, r *http.Request) {
	inserted, err := h.templates.Seed(r.Context())
	if err != nil {
		h.logger.Error("seeding failed", "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, &seedResponse{Inserted: inserted}, http.StatusOK)
}
