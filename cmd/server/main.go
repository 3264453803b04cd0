package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/ledgerkv/internal/adapter/http"
	"github.com/iho/ledgerkv/internal/adapter/http/handler"
	"github.com/iho/ledgerkv/internal/adapter/http/middleware"
	"github.com/iho/ledgerkv/internal/adapter/repository/memory"
	redisRepo "github.com/iho/ledgerkv/internal/adapter/repository/redis"
	"github.com/iho/ledgerkv/internal/infrastructure/config"
	"github.com/iho/ledgerkv/internal/infrastructure/logger"
	"github.com/iho/ledgerkv/internal/infrastructure/metrics"
	"github.com/iho/ledgerkv/internal/infrastructure/redis"
	"github.com/iho/ledgerkv/internal/infrastructure/retry"
	"github.com/iho/ledgerkv/internal/usecase"
)

const limiterIdleTimeout = time.Hour

func main() {
	// A missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "ledgerkv",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	log.Info().Str("backend", cfg.Backend).Msg("store ready")

	m := metrics.New(prometheus.DefaultRegisterer)
	limiter := newRateLimiter(cfg, m)
	router := newRouter(cfg, store, log, m, promhttp.Handler(), limiter)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	if limiter != nil {
		go cleanupLimiters(limiter, stopCleanup)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// newStore builds the configured backend. The returned func releases its connections.
func newStore(ctx context.Context, cfg *config.Config) (usecase.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewStore(), func() {}, nil
	case config.BackendRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisRepo.NewStore(client), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func newRateLimiter(cfg *config.Config, m *metrics.Metrics) *middleware.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}

	var rejected prometheus.Counter
	if m != nil {
		rejected = m.RateLimitHits
	}

	return middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, rejected)
}

func newRouter(
	cfg *config.Config,
	store usecase.Store,
	log zerolog.Logger,
	m *metrics.Metrics,
	metricsHandler http.Handler,
	limiter *middleware.RateLimiter,
) http.Handler {
	ledgerUC := usecase.NewLedgerUseCase(store,
		usecase.WithKeyPrefix(cfg.KeyPrefix),
		usecase.WithMaxEntriesPerKey(cfg.MaxEntriesPerKey),
		usecase.WithScales(cfg.DefaultScale, cfg.CurrencyScales),
		usecase.WithLogger(log.With().Str("component", "ledger").Logger()),
		usecase.WithMetrics(m),
	)
	reconciliationUC := usecase.NewReconciliationUseCase(ledgerUC)

	retrier := retry.NewRetrier(
		retry.WithMaxRetries(cfg.RetryMaxAttempts),
		retry.WithLogger(log.With().Str("component", "retry").Logger()),
	)

	return httpAdapter.NewRouter(httpAdapter.RouterConfig{
		LedgerHandler:     handler.NewLedgerHandler(ledgerUC, reconciliationUC, retrier),
		HealthHandler:     handler.NewHealthHandler(store, cfg.Backend),
		LoggingMiddleware: middleware.NewLoggingMiddleware(log),
		RateLimiter:       limiter,
		Metrics:           m,
		MetricsHandler:    metricsHandler,
		Logger:            log,
	})
}

func cleanupLimiters(limiter *middleware.RateLimiter, stop <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			limiter.CleanupLimiters(limiterIdleTimeout)
		case <-stop:
			return
		}
	}
}
