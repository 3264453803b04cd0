package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/ledgerkv/internal/adapter/http/handler"
	"github.com/iho/ledgerkv/internal/adapter/http/middleware"
	"github.com/iho/ledgerkv/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LedgerHandler     *handler.LedgerHandler
	HealthHandler     *handler.HealthHandler
	LoggingMiddleware *middleware.LoggingMiddleware
	RateLimiter       *middleware.RateLimiter
	Metrics           *metrics.Metrics
	// MetricsHandler serves /metrics when set, typically promhttp.Handler().
	MetricsHandler http.Handler
	Logger         zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(cfg.Logger))

	if cfg.LoggingMiddleware != nil {
		r.Use(cfg.LoggingMiddleware.Wrap)
	}

	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1/ledgers/{account}/{currency}", func(r chi.Router) {
		r.Delete("/", cfg.LedgerHandler.ClearLedger)
		r.Get("/sum", cfg.LedgerHandler.GetSum)
		r.Get("/balance", cfg.LedgerHandler.GetBalance)
		r.Get("/reconcile", cfg.LedgerHandler.Reconcile)

		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.LedgerHandler.AddEntry)
			r.Get("/", cfg.LedgerHandler.ListEntries)
			r.Get("/{id}", cfg.LedgerHandler.GetEntry)
			r.Delete("/{id}", cfg.LedgerHandler.RemoveEntry)
		})
	})

	return r
}
