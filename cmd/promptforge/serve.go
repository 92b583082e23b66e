package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/halcyonlab/promptforge/internal/adapters/http"
	"github.com/halcyonlab/promptforge/internal/adapters/id"
	"github.com/halcyonlab/promptforge/internal/adapters/postgres"
	"github.com/halcyonlab/promptforge/internal/adapters/provider"
	"github.com/halcyonlab/promptforge/internal/adapters/tracing"
	"github.com/halcyonlab/promptforge/internal/application/services"
	"github.com/halcyonlab/promptforge/internal/application/usecases"
)

// serveCmd starts the HTTP API server
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the PromptForge HTTP API server.

The server exposes REST endpoints for template generation, optimization,
multi-provider testing, learning feedback and the knowledge base.

Required configuration:
  - PostgreSQL database (PROMPTFORGE_POSTGRES_URL)

Provider API keys are picked up from the conventional environment
variables (ANTHROPIC_API_KEY, OPENAI_API_KEY, ...).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// runServer initializes and starts the HTTP API server
func runServer(ctx context.Context) error {
	log.Println("Starting PromptForge API server...")
	log.Printf("  HTTP:       http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("  Generation: %s", cfg.Generation.Provider)

	if cfg.TraceEnabled {
		shutdown, err := tracing.InitTracer("promptforge-api")
		if err != nil {
			log.Printf("Warning: Failed to initialize tracing: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down tracer: %v", err)
				}
			}()
			log.Println("OpenTelemetry tracing initialized")
		}
	}

	if cfg.Database.PostgresURL == "" {
		return fmt.Errorf("server mode requires PostgreSQL. Set PROMPTFORGE_POSTGRES_URL")
	}

	log.Println("Connecting to PostgreSQL...")
	pool, err := postgres.Connect(ctx, cfg.Database.PostgresURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Println("Database connection established")

	templateRepo := postgres.NewTemplateRepository(pool)
	resultRepo := postgres.NewTestResultRepository(pool)
	optimizationRepo := postgres.NewOptimizationRepository(pool)
	knowledgeRepo := postgres.NewKnowledgeRepository(pool)

	idGen := id.NewGenerator()
	registry := provider.NewRegistry(registrySettings())
	txManager := postgres.NewTransactionManager(pool)
	enabled := registry.Enabled()
	log.Printf("Providers enabled: %v", enabled)

	genProvider, err := provider.Parse(cfg.Generation.Provider)
	if err != nil {
		return err
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

	server := http.NewServer(cfg, engine, templates, learner, tester, registry, pool, nil)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
		log.Println("Shutting down gracefully...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		log.Println("Server stopped")
		return nil
	}
}
