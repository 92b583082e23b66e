// Package services holds the application services behind the CLI and
// HTTP surfaces.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/halcyonlab/promptforge/internal/adapters/metrics"
	"github.com/halcyonlab/promptforge/internal/adapters/provider"
	"github.com/halcyonlab/promptforge/internal/domain"
	"github.com/halcyonlab/promptforge/internal/domain/models"
	"github.com/halcyonlab/promptforge/internal/ports"
	"github.com/halcyonlab/promptforge/internal/prompt"
)

// ParseFailureNote is returned as the single improvement when the
// optimization reply cannot be parsed.
const ParseFailureNote = "could not parse optimization response"

// GenerationOptions bounds the meta-prompt calls.
type GenerationOptions struct {
	Provider    provider.Name
	MaxTokens   int
	Temperature float64
}

// GenerationService drafts and optimizes prompt templates through the
// configured generation provider.
type GenerationService struct {
	templates     ports.TemplateRepository
	optimizations ports.OptimizationRepository
	providers     *provider.Registry
	ids           ports.IDGenerator
	tx            ports.TransactionManager
	opts          GenerationOptions
	logger        *slog.Logger
}

func NewGenerationService(
	templates ports.TemplateRepository,
	optimizations ports.OptimizationRepository,
	providers *provider.Registry,
	ids ports.IDGenerator,
	tx ports.TransactionManager,
	opts GenerationOptions,
	logger *slog.Logger,
) *GenerationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationService{
		templates:     templates,
		optimizations: optimizations,
		providers:     providers,
		ids:           ids,
		tx:            tx,
		opts:          opts,
		logger:        logger,
	}
}

// inTransaction runs fn inside a store transaction when one is
// configured. A nil manager degrades to plain sequential writes.
func (s *GenerationService) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.WithTransaction(ctx, fn)
}

// Generate drafts a new template for the given purpose and persists it.
// When the model reply carries no {name} placeholders the whole reply is
// kept as a fixed, variable-free template.
func (s *GenerationService) Generate(ctx context.Context, req ports.GenerateRequest) (*models.PromptTemplate, error) {
	purpose := strings.TrimSpace(req.Purpose)
	if purpose == "" {
		return nil, domain.ErrEmptyPurpose
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "general"
	}

	adapter, err := s.providers.Get(s.opts.Provider)
	if err != nil {
		return nil, err
	}

	res, err := adapter.Complete(ctx, provider.Request{
		Prompt:      prompt.BuildGeneration(purpose, category, req.Context),
		System:      prompt.GenerationSystem,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	var body, description string
	reply, parseErr := prompt.ParseGenerationReply(res.Text)
	if parseErr != nil {
		// Degraded but usable: treat the whole reply as a fixed template.
		s.logger.Warn("generation reply not parseable, using raw text",
			"provider", adapter.Name(), "reply_len", len(res.Text))
		body = strings.TrimSpace(res.Text)
		description = "Generated for: " + purpose
	} else {
		body = reply.Template
		description = reply.Description
	}
	if body == "" {
		return nil, fmt.Errorf("%w: empty template body", domain.ErrGenerationFailed)
	}

	if req.AutoOptimize {
		outcome, err := s.Optimize(ctx, body, purpose)
		if err == nil && outcome.Improved {
			body = outcome.OptimizedPrompt
		}
	}

	now := time.Now().UTC()
	tmpl := &models.PromptTemplate{
		ID:          s.ids.TemplateID(),
		Name:        templateName(category, purpose),
		Category:    category,
		Template:    body,
		Description: description,
		Variables:   prompt.ExtractVariables(body),
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}

	if err := s.templates.Create(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to store template: %w", err)
	}

	metrics.TemplatesGeneratedTotal.Inc()
	s.logger.Info("template generated",
		"id", tmpl.ID, "name", tmpl.Name, "category", tmpl.Category,
		"variables", len(tmpl.Variables), "provider", adapter.Name())

	return tmpl, nil
}

// Optimize rewrites a prompt via the optimization meta-prompt. It never
// fails on an unparseable reply: the caller gets the original prompt
// back with a zero score and an explanatory note.
func (s *GenerationService) Optimize(ctx context.Context, promptText, purpose string) (*ports.OptimizationOutcome, error) {
	if strings.TrimSpace(promptText) == "" {
		return nil, domain.ErrEmptyTemplate
	}

	adapter, err := s.providers.Get(s.opts.Provider)
	if err != nil {
		return nil, err
	}

	res, err := adapter.Complete(ctx, provider.Request{
		Prompt:      prompt.BuildOptimization(promptText, purpose),
		System:      prompt.OptimizationSystem,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("optimization call failed: %w", err)
	}

	reply, parseErr := prompt.ParseOptimizationReply(res.Text)
	if parseErr != nil {
		metrics.OptimizationsTotal.WithLabelValues("parse_failure").Inc()
		s.logger.Warn("optimization reply not parseable",
			"provider", adapter.Name(), "reply_len", len(res.Text))
		return &ports.OptimizationOutcome{
			OptimizedPrompt: promptText,
			Score:           0,
			Improvements:    []string{ParseFailureNote},
			Improved:        false,
		}, nil
	}

	metrics.OptimizationsTotal.WithLabelValues("success").Inc()
	return &ports.OptimizationOutcome{
		OptimizedPrompt: reply.OptimizedPrompt,
		Score:           reply.EffectivenessScore,
		Improvements:    reply.Improvements,
		Improved:        reply.Improved,
	}, nil
}

// OptimizeTemplate rewrites a stored template, persisting the new body
// as a fresh version plus an optimizations audit row. A parse failure
// leaves the template untouched.
func (s *GenerationService) OptimizeTemplate(ctx context.Context, id, purpose string) (*models.PromptTemplate, *ports.OptimizationOutcome, error) {
	tmpl, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if purpose == "" {
		purpose = tmpl.Description
	}

	outcome, err := s.Optimize(ctx, tmpl.Template, purpose)
	if err != nil {
		return nil, nil, err
	}
	if !outcome.Improved {
		return tmpl, outcome, nil
	}

	variables := prompt.ExtractVariables(outcome.OptimizedPrompt)

	// The body update and its audit row commit together: a new version
	// must never exist without its optimizations record.
	var version int
	err = s.inTransaction(ctx, func(ctx context.Context) error {
		version, err = s.templates.UpdateBody(ctx, id, outcome.OptimizedPrompt, variables, "")
		if err != nil {
			return err
		}
		opt := &models.Optimization{
			ID:                s.ids.OptimizationID(),
			PromptID:          id,
			OriginalTemplate:  tmpl.Template,
			OptimizedTemplate: outcome.OptimizedPrompt,
			ImprovementScore:  outcome.Score,
			OptimizationType:  classifyOptimization(outcome.Improvements),
			CreatedAt:         time.Now().UTC(),
		}
		if err := s.optimizations.Create(ctx, opt); err != nil {
			return fmt.Errorf("failed to store optimization record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	tmpl.Template = outcome.OptimizedPrompt
	tmpl.Variables = variables
	tmpl.Version = version
	s.logger.Info("template optimized",
		"id", id, "version", version, "score", outcome.Score)

	return tmpl, outcome, nil
}

// classifyOptimization infers the audit type from the model's stated
// improvements. Efficiency wins over specificity when both appear;
// clarity is the default.
func classifyOptimization(improvements []string) models.OptimizationType {
	joined := strings.ToLower(strings.Join(improvements, " "))
	switch {
	case strings.Contains(joined, "shorte"),
		strings.Contains(joined, "concise"),
		strings.Contains(joined, "token"),
		strings.Contains(joined, "efficien"),
		strings.Contains(joined, "redundan"):
		return models.OptimizationEfficiency
	case strings.Contains(joined, "specific"),
		strings.Contains(joined, "example"),
		strings.Contains(joined, "detail"),
		strings.Contains(joined, "constraint"):
		return models.OptimizationSpecificity
	default:
		return models.OptimizationClarity
	}
}

// templateName derives a stable, readable name from category and purpose.
func templateName(category, purpose string) string {
	slug := strings.ToLower(purpose)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	for strings.Contains(slug, "__") {
		slug = strings.ReplaceAll(slug, "__", "_")
	}
	slug = strings.Trim(slug, "_")
	if len(slug) > 30 {
		slug = strings.Trim(slug[:30], "_")
	}
	return category + "_" + slug
}
