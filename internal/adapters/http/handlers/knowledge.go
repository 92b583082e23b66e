package handlers

import (
	"log/slog"
	"net/http"

	"github.com/halcyonlab/promptforge/internal/domain/models"
	"github.com/halcyonlab/promptforge/internal/ports"
)

type KnowledgeHandler struct {
	templates ports.TemplateService
	logger    *slog.Logger
}

func NewKnowledgeHandler(templates ports.TemplateService, logger *slog.Logger) *KnowledgeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &KnowledgeHandler{templates: templates, logger: logger}
}

type addKnowledgeRequest struct {
	Topic   string `json:"topic"`
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
}

func (h *KnowledgeHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[addKnowledgeRequest](r, w)
	if !ok {
		return
	}

	entry, err := h.templates.AddKnowledge(r.Context(), req.Topic, req.Content, req.Source)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, entry, http.StatusCreated)
}

type knowledgeListResponse struct {
	Entries []*models.KnowledgeEntry `json:"entries"`
	Total   int                      `json:"total"`
}

func (h *KnowledgeHandler) List(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	limit := parseIntQuery(r, "limit", 50)

	entries, err := h.templates.ListKnowledge(r.Context(), topic, limit)
	if err != nil {
		h.logger.Error("failed to list knowledge", "topic", topic, "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, &knowledgeListResponse{Entries: entries, Total: len(entries)}, http.StatusOK)
}
