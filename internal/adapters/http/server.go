package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/halcyonlab/promptforge/internal/adapters/http/handlers"
	"github.com/halcyonlab/promptforge/internal/adapters/http/middleware"
	"github.com/halcyonlab/promptforge/internal/adapters/provider"
	"github.com/halcyonlab/promptforge/internal/application/usecases"
	"github.com/halcyonlab/promptforge/internal/config"
	"github.com/halcyonlab/promptforge/internal/ports"
)

type Server struct {
	config     *config.Config
	router     *chi.Mux
	httpServer *http.Server
	engine     ports.PromptEngine
	templates  ports.TemplateService
	learner    ports.LearningService
	tester     *usecases.MultiModelTest
	providers  *provider.Registry
	db         *pgxpool.Pool
	logger     *slog.Logger
}

func NewServer(
	cfg *config.Config,
	engine ports.PromptEngine,
	templates ports.TemplateService,
	learner ports.LearningService,
	tester *usecases.MultiModelTest,
	providers *provider.Registry,
	db *pgxpool.Pool,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config:    cfg,
		engine:    engine,
		templates: templates,
		learner:   learner,
		tester:    tester,
		providers: providers,
		db:        db,
		logger:    logger,
	}

	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(s.config.Server.CORSOrigins))
	r.Use(middleware.Metrics)

	healthHandler := handlers.NewHealthHandler(s.db, s.providers)
	r.Get("/health", healthHandler.Handle)
	r.Get("/health/detailed", healthHandler.HandleDetailed)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		templatesHandler := handlers.NewTemplatesHandler(s.engine, s.templates, s.logger)
		r.Post("/templates/generate", templatesHandler.Generate)
		r.Get("/templates", templatesHandler.List)
		r.Get("/templates/export", templatesHandler.Export)
		r.Post("/templates/seed", templatesHandler.Seed)
		r.Get("/templates/{id}", templatesHandler.Get)
		r.Post("/templates/{id}/optimize", templatesHandler.Optimize)

		testsHandler := handlers.NewTestsHandler(s.tester, s.learner, s.providers, s.logger)
		r.Post("/templates/{id}/test", testsHandler.Test)
		r.Post("/templates/{id}/learn", testsHandler.Learn)

		knowledgeHandler := handlers.NewKnowledgeHandler(s.templates, s.logger)
		r.Post("/knowledge", knowledgeHandler.Add)
		r.Get("/knowledge", knowledgeHandler.List)
	})

	s.router = r
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // provider fan-outs can run long
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Info("starting HTTP server", "addr", addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *chi.Mux {
	return s.router
}
