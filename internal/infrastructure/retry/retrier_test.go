package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/iho/ledgerkv/internal/domain"
)

var errOutage = fmt.Errorf("%w: redis GET ledger:u1:usd:total: connection refused", domain.ErrStoreUnavailable)

func fastRetrier(maxRetries uint64) *Retrier {
	return NewRetrier(
		WithMaxRetries(maxRetries),
		WithIntervals(time.Millisecond, 2*time.Millisecond, time.Second),
	)
}

func TestRetrierRetriesOnStoreUnavailable(t *testing.T) {
	r := fastRetrier(2)

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return errOutage
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetrierGivesUpAfterMaxRetries(t *testing.T) {
	r := fastRetrier(2)

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		return errOutage
	})

	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetrierStopsOnPermanentError(t *testing.T) {
	r := fastRetrier(3)
	attempts := 0

	err := r.Retry(context.Background(), func() error {
		attempts++
		return domain.ErrDuplicateEntry
	})

	if !errors.Is(err, domain.ErrDuplicateEntry) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetrierHonorsCancellation(t *testing.T) {
	r := NewRetrier(WithMaxRetries(100), WithIntervals(50*time.Millisecond, time.Second, time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0

	err := r.Retry(ctx, func() error {
		attempts++
		cancel()
		return errOutage
	})

	if err == nil {
		t.Fatal("expected an error after cancellation")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(errOutage) {
		t.Fatalf("expected store outage to be retryable")
	}

	if IsRetryable(errors.New("other")) {
		t.Fatalf("expected generic error to be non-retryable")
	}

	if IsRetryable(domain.ErrMalformedAggregate) {
		t.Fatalf("expected corrupt data to be non-retryable")
	}
}
