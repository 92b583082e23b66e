package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/halcyonlab/promptforge/internal/adapters/provider"
)

type HealthHandler struct {
	db        *pgxpool.Pool
	providers *provider.Registry
}

func NewHealthHandler(db *pgxpool.Pool, providers *provider.Registry) *HealthHandler {
	return &HealthHandler{db: db, providers: providers}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{
		"status":  "ok",
		"service": "promptforge",
	}, http.StatusOK)
}

// HandleDetailed reports dependency health: database reachability and the
// set of enabled providers.
func (h *HealthHandler) HandleDetailed(w http.ResponseWriter, r *http.Request) {
	overall := "ok"
	status := http.StatusOK
	dbStatus := "ok"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			dbStatus = "unreachable"
			overall = "degraded"
			status = http.StatusServiceUnavailable
		}
	} else {
		dbStatus = "not configured"
	}

	var enabled []string
	if h.providers != nil {
		for _, name := range h.providers.Enabled() {
			enabled = append(enabled, string(name))
		}
	}

	respondJSON(w, map[string]any{
		"status":    overall,
		"database":  dbStatus,
		"providers": enabled,
	}, status)
}
