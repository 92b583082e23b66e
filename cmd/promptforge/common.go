package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/halcyonlab/promptforge/internal/adapters/id"
	"github.com/halcyonlab/promptforge/internal/adapters/postgres"
	"github.com/halcyonlab/promptforge/internal/adapters/provider"
	"github.com/halcyonlab/promptforge/internal/application/services"
	"github.com/halcyonlab/promptforge/internal/application/usecases"
	"github.com/halcyonlab/promptforge/internal/config"
)

// Version information (set via ldflags)
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// Shared global variables
var cfg *config.Config

// initDB initializes a database connection pool for CLI commands
func initDB(ctx context.Context) (*pgxpool.Pool, error) {
	if cfg.Database.PostgresURL == "" {
		return nil, fmt.Errorf("PostgreSQL connection required. Set PROMPTFORGE_POSTGRES_URL")
	}
	return postgres.Connect(ctx, cfg.Database.PostgresURL)
}

// registrySettings maps the provider section of the config onto registry
// settings, skipping unknown provider names.
func registrySettings() map[provider.Name]provider.Settings {
	settings := make(map[provider.Name]provider.Settings, len(cfg.Providers))
	for raw, pc := range cfg.Providers {
		name, err := provider.Parse(raw)
		if err != nil {
			continue
		}
		settings[name] = provider.Settings{
			Enabled: pc.Enabled,
			APIKey:  pc.APIKey,
			BaseURL: pc.BaseURL,
			Model:   pc.Model,
		}
	}
	return settings
}

// deps bundles the wired repositories and services for one CLI command.
type deps struct {
	pool      *pgxpool.Pool
	providers *provider.Registry
	engine    *services.GenerationService
	templates *services.TemplateService
	learner   *services.LearningService
	tester    *usecases.MultiModelTest
}

func buildDeps(ctx context.Context) (*deps, error) {
	pool, err := initDB(ctx)
	if err != nil {
		return nil, err
	}

	templateRepo := postgres.NewTemplateRepository(pool)
	resultRepo := postgres.NewTestResultRepository(pool)
	optimizationRepo := postgres.NewOptimizationRepository(pool)
	knowledgeRepo := postgres.NewKnowledgeRepository(pool)

	idGen := id.NewGenerator()
	registry := provider.NewRegistry(registrySettings())
	txManager := postgres.NewTransactionManager(pool)

	genProvider, err := provider.Parse(cfg.Generation.Provider)
	if err != nil {
		pool.Close()
		return nil, err
	}

	engine := services.NewGenerationService(templateRepo, optimizationRepo, registry, idGen, txManager,
		services.GenerationOptions{
			Provider:    genProvider,
			MaxTokens:   cfg.Generation.MaxTokens,
			Temperature: cfg.Generation.Temperature,
		}, nil)
	templates := services.NewTemplateService(templateRepo, knowledgeRepo, idGen, nil)
	learner := services.NewLearningService(templateRepo, cfg.Learning.Alpha, nil)
	tester := usecases.NewMultiModelTest(templateRepo, resultRepo, registry, idGen, testOptions(), nil)

	return &deps{
		pool:      pool,
		providers: registry,
		engine:    engine,
		templates: templates,
		learner:   learner,
		tester:    tester,
	}, nil
}

func (d *deps) close() {
	d.pool.Close()
}

func testOptions() usecases.Options {
	return usecases.Options{
		Timeout:     time.Duration(cfg.Testing.TimeoutSeconds) * time.Second,
		MaxTokens:   cfg.Testing.MaxTokens,
		Temperature: cfg.Testing.Temperature,
		Weights: usecases.Weights{
			Latency: cfg.Testing.LatencyWeight,
			Cost:    cfg.Testing.CostWeight,
			Quality: cfg.Testing.QualityWeight,
		},
	}
}

// maskSecret masks a secret string for display
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "(set)"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// boolStatus returns a status string for a boolean
func boolStatus(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
