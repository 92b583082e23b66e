package services

import (
	"context"
	"log/slog"

	"github.com/halcyonlab/promptforge/internal/adapters/metrics"
	"github.com/halcyonlab/promptforge/internal/domain/models"
	"github.com/halcyonlab/promptforge/internal/ports"
)

const DefaultAlpha = 0.2

// LearningService folds usage feedback into template ratings as an
// exponentially weighted moving average.
type LearningService struct {
	templates ports.TemplateRepository
	alpha     float64
	logger    *slog.Logger
}

func NewLearningService(templates ports.TemplateRepository, alpha float64, logger *slog.Logger) *LearningService {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LearningService{templates: templates, alpha: alpha, logger: logger}
}

// Learn records one use of a template. The usage count always goes up by
// one; the rating moves toward the observed quality by the smoothing
// factor. With no explicit quality score, success observes 1.0 and
// failure 0.0.
func (s *LearningService) Learn(ctx context.Context, templateID string, success bool, qualityScore *float64) (*models.PromptTemplate, error) {
	tmpl, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	observed := 0.0
	if success {
		observed = 1.0
	}
	if qualityScore != nil {
		observed = clamp01(*qualityScore)
	}

	tmpl.Rating = tmpl.Rating*(1-s.alpha) + observed*s.alpha
	tmpl.UsageCount++

	if err := s.templates.UpdateRating(ctx, templateID, tmpl.Rating, tmpl.UsageCount); err != nil {
		return nil, err
	}

	metrics.LearningUpdatesTotal.Inc()
	s.logger.Info("rating updated",
		"id", templateID, "rating", tmpl.Rating, "usage_count", tmpl.UsageCount)

	return tmpl, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
