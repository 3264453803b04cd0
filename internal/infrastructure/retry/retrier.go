package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/iho/ledgerkv/internal/domain"
)

// Retrier implements usecase.Retrier with exponential backoff.
// Only domain.ErrStoreUnavailable is retried; every other error is returned at once.
// Callers must only pass operations that are safe to repeat.
type Retrier struct {
	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithMaxRetries caps the number of retries after the first attempt.
func WithMaxRetries(n uint64) Option {
	return func(r *Retrier) { r.maxRetries = n }
}

// WithIntervals sets the backoff bounds.
func WithIntervals(initial, max, maxElapsed time.Duration) Option {
	return func(r *Retrier) {
		r.initialInterval = initial
		r.maxInterval = max
		r.maxElapsedTime = maxElapsed
	}
}

// WithLogger sets the logger used to report retries.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Retrier) { r.logger = logger }
}

// NewRetrier creates a new store retrier with default settings.
func NewRetrier(opts ...Option) *Retrier {
	r := &Retrier{
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  10 * time.Second,
		logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Retry executes an operation with exponential backoff on store outages.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	attempt := 0

	return backoff.Retry(func() error {
		attempt++

		err := operation()
		if err == nil {
			return nil
		}

		if !IsRetryable(err) {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Msg("store unavailable, retrying")

		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, r.maxRetries), ctx))
}

// IsRetryable reports whether err is a transient store failure.
func IsRetryable(err error) bool {
	return errors.Is(err, domain.ErrStoreUnavailable)
}
