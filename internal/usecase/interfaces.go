package usecase

import (
	"context"
	"time"
)

// Store is the capability interface over the key-value service backing the ledger.
// Absent keys and fields are reported through the bool results, never as errors.
// Transport failures wrap domain.ErrStoreUnavailable. Implementations do not retry.
type Store interface {
	HSet(ctx context.Context, key, field, value string) error
	HGet(ctx context.Context, key, field string) (string, bool, error)
	HExists(ctx context.Context, key, field string) (bool, error)
	HDel(ctx context.Context, key, field string) (bool, error)
	HLen(ctx context.Context, key string) (int64, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	// HScan returns one page of fields and the store-native cursor to resume from.
	// A returned cursor of 0 means the scan is complete.
	HScan(ctx context.Context, key string, cursor uint64, count int64) (map[string]string, uint64, error)

	Get(ctx context.Context, key string) (string, bool, error)
	IncrBy(ctx context.Context, key string, delta int64) (int64, error)
	Del(ctx context.Context, keys ...string) error

	// Group starts a grouped write.
	Group() Group

	Ping(ctx context.Context) error
}

// Group queues mutations that are committed together.
//
// Conditions registered with the Require* methods are evaluated on the store,
// atomically with the mutations: if any condition fails, nothing is applied.
// A group without conditions is a plain write batch.
//
// Increments that would take a counter outside int64 fail the commit with
// domain.ErrAmountOverflow and nothing is written. A group increments each
// counter at most once.
type Group interface {
	RequireAbsent(key, field string) Group
	RequireLenBelow(key string, n int64) Group
	RequireEquals(key, field, value string) Group

	HSet(key, field, value string) Group
	HDel(key, field string) Group
	IncrBy(key string, delta int64) Group
	HIncrBy(key, field string, delta int64) Group

	Commit(ctx context.Context) (GroupResult, error)
}

// GroupResult reports the outcome of a committed group.
type GroupResult struct {
	Applied bool
	// FailedCondition is the index, in registration order, of the first condition
	// that did not hold. It is -1 when the group was applied.
	FailedCondition int
}

// Retrier retries idempotent operations on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Metrics records accumulator operation outcomes.
type Metrics interface {
	ObserveOperation(operation string, duration time.Duration, err error)
}

type noopMetrics struct{}

func (noopMetrics) ObserveOperation(string, time.Duration, error) {}
