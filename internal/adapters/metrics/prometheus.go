// Package metrics exposes the Prometheus instrumentation shared by the
// HTTP server and the provider adapters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptforge_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promptforge_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptforge_provider_requests_total",
			Help: "Total number of LLM provider calls",
		},
		[]string{"provider", "status"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promptforge_provider_request_duration_seconds",
			Help:    "LLM provider call duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)

	ProviderTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptforge_provider_tokens_total",
			Help: "Total tokens consumed per provider",
		},
		[]string{"provider"},
	)

	TemplatesGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "promptforge_templates_generated_total",
			Help: "Total number of templates generated",
		},
	)

	OptimizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptforge_optimizations_total",
			Help: "Total number of optimization passes",
		},
		[]string{"outcome"},
	)

	TestRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "promptforge_test_runs_total",
			Help: "Total number of multi-provider test runs",
		},
	)

	LearningUpdatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "promptforge_learning_updates_total",
			Help: "Total number of rating feedback updates",
		},
	)
)
