package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/iho/ledgerkv/internal/domain"
)

// Supported storage backends.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds all application configuration.
type Config struct {
	// Storage
	Backend  string `env:"LEDGER_BACKEND" envDefault:"redis"`
	RedisURL string `env:"REDIS_URL"      envDefault:"redis://localhost:6379"`

	// Ledger. Scales must not change once a currency has entries: totals are
	// stored in minor units and removals reverse amounts at the current scale.
	KeyPrefix        string           `env:"LEDGER_KEY_PREFIX"          envDefault:"ledger"`
	MaxEntriesPerKey int64            `env:"LEDGER_MAX_ENTRIES_PER_KEY" envDefault:"1000000"`
	DefaultScale     int32            `env:"LEDGER_DEFAULT_SCALE"       envDefault:"2"`
	CurrencyScales   map[string]int32 `env:"LEDGER_CURRENCY_SCALES"     envSeparator:"," envKeyValSeparator:":"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Rate limiting (RPS 0 disables it)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"200"`

	// Retries for idempotent operations
	RetryMaxAttempts uint64 `env:"RETRY_MAX_ATTEMPTS" envDefault:"3"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the ledger cannot run with.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("config: unknown LEDGER_BACKEND %q", c.Backend)
	}

	if c.KeyPrefix == "" {
		return fmt.Errorf("config: LEDGER_KEY_PREFIX cannot be empty")
	}

	if c.MaxEntriesPerKey <= 0 {
		return fmt.Errorf("config: LEDGER_MAX_ENTRIES_PER_KEY must be positive, got %d", c.MaxEntriesPerKey)
	}

	if err := domain.ValidateScale(c.DefaultScale); err != nil {
		return fmt.Errorf("config: LEDGER_DEFAULT_SCALE: %w", err)
	}

	for currency, scale := range c.CurrencyScales {
		if err := domain.ValidateScale(scale); err != nil {
			return fmt.Errorf("config: LEDGER_CURRENCY_SCALES %s: %w", currency, err)
		}
	}

	return nil
}
