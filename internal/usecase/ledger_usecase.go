package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/iho/ledgerkv/internal/domain"
)

// LedgerUseCase maintains per-(account, currency) running balances over a Store.
//
// Every mutation is a single conditional group: the duplicate and limit checks of an add,
// and the value check of a remove, run on the store atomically with the aggregate
// increments, so concurrent writers cannot break the total/context invariants.
type LedgerUseCase struct {
	store        Store
	prefix       string
	maxEntries   int64
	defaultScale int32
	scales       map[string]int32
	logger       zerolog.Logger
	metrics      Metrics
}

// Option configures a LedgerUseCase.
type Option func(*LedgerUseCase)

// WithKeyPrefix sets the first segment of derived keys.
func WithKeyPrefix(prefix string) Option {
	return func(uc *LedgerUseCase) {
		if prefix != "" {
			uc.prefix = prefix
		}
	}
}

// WithMaxEntriesPerKey sets the per-ledger entry cap.
func WithMaxEntriesPerKey(n int64) Option {
	return func(uc *LedgerUseCase) {
		if n > 0 {
			uc.maxEntries = n
		}
	}
}

// WithScales sets the fractional digits tracked per currency and the fallback scale.
func WithScales(defaultScale int32, scales map[string]int32) Option {
	return func(uc *LedgerUseCase) {
		uc.defaultScale = defaultScale
		uc.scales = make(map[string]int32, len(scales))
		for currency, scale := range scales {
			uc.scales[currency] = scale
		}
	}
}

// WithLogger sets the logger used for skipped records.
func WithLogger(logger zerolog.Logger) Option {
	return func(uc *LedgerUseCase) {
		uc.logger = logger
	}
}

// WithMetrics sets the operation metrics sink.
func WithMetrics(m Metrics) Option {
	return func(uc *LedgerUseCase) {
		if m != nil {
			uc.metrics = m
		}
	}
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(store Store, opts ...Option) *LedgerUseCase {
	uc := &LedgerUseCase{
		store:        store,
		prefix:       DefaultKeyPrefix,
		maxEntries:   DefaultMaxEntriesPerKey,
		defaultScale: domain.DefaultScale,
		scales:       map[string]int32{},
		logger:       zerolog.Nop(),
		metrics:      noopMetrics{},
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

func (uc *LedgerUseCase) keys(accountID, currency string) ledgerKeys {
	return deriveKeys(uc.prefix, accountID, currency)
}

func (uc *LedgerUseCase) scale(currency string) int32 {
	if scale, ok := uc.scales[currency]; ok {
		return scale
	}
	return uc.defaultScale
}

func (uc *LedgerUseCase) observe(operation string, start time.Time, err error) {
	uc.metrics.ObserveOperation(operation, time.Since(start), err)
}

// AddEntry books entry into the (accountID, currency) ledger.
// It fails with domain.ErrDuplicateEntry if the id is taken and with
// domain.ErrLimitExceeded if the ledger is full; neither case mutates anything.
func (uc *LedgerUseCase) AddEntry(ctx context.Context, accountID, currency string, entry *domain.Entry) (err error) {
	defer func(start time.Time) { uc.observe("add_entry", start, err) }(time.Now())

	if err := domain.ValidateLedgerScope(accountID, currency); err != nil {
		return err
	}

	e := *entry
	if e.Currency == "" {
		e.Currency = currency
	}

	if err := e.Validate(); err != nil {
		return err
	}

	if e.Currency != currency {
		return fmt.Errorf("%w: entry currency %q does not match ledger currency %q", domain.ErrInvalidEntry, e.Currency, currency)
	}

	units, err := domain.ToMinorUnits(e.Amount, uc.scale(currency))
	if err != nil {
		return err
	}

	payload, err := domain.MarshalEntry(&e)
	if err != nil {
		return fmt.Errorf("failed to encode entry %s: %w", e.ID, err)
	}

	k := uc.keys(accountID, currency)

	result, err := uc.store.Group().
		RequireAbsent(k.entries, e.ID).
		RequireLenBelow(k.entries, uc.maxEntries).
		HSet(k.entries, e.ID, string(payload)).
		IncrBy(k.total, units).
		HIncrBy(k.contexts, e.Context, units).
		Commit(ctx)
	if err != nil {
		return fmt.Errorf("failed to add entry %s: %w", e.ID, err)
	}

	if !result.Applied {
		switch result.FailedCondition {
		case 0:
			return fmt.Errorf("%w: %s", domain.ErrDuplicateEntry, e.ID)
		case 1:
			return fmt.Errorf("%w: %d entries", domain.ErrLimitExceeded, uc.maxEntries)
		default:
			return fmt.Errorf("add entry %s: unexpected failed condition %d", e.ID, result.FailedCondition)
		}
	}

	return nil
}

// RemoveEntry deletes an entry and reverses its contribution to the aggregates.
// It returns false, without mutating anything, when the entry does not exist.
func (uc *LedgerUseCase) RemoveEntry(ctx context.Context, accountID, currency, entryID string) (removed bool, err error) {
	defer func(start time.Time) { uc.observe("remove_entry", start, err) }(time.Now())

	if err := domain.ValidateLedgerScope(accountID, currency); err != nil {
		return false, err
	}

	k := uc.keys(accountID, currency)
	scale := uc.scale(currency)

	for attempt := 0; attempt < maxRemoveAttempts; attempt++ {
		payload, ok, err := uc.store.HGet(ctx, k.entries, entryID)
		if err != nil {
			return false, fmt.Errorf("failed to read entry %s: %w", entryID, err)
		}
		if !ok {
			return false, nil
		}

		entry, err := domain.UnmarshalEntry([]byte(payload))
		if err != nil {
			return false, fmt.Errorf("entry %s: %w", entryID, err)
		}

		// A stored amount that no longer fits the scale means the currency was
		// rescaled after the ledger was written; the aggregates cannot be reversed.
		units, err := domain.ToMinorUnits(entry.Amount, scale)
		if err != nil {
			return false, fmt.Errorf("%w: entry %s does not fit scale %d: %v", domain.ErrMalformedEntry, entryID, scale, err)
		}

		// The decrement only applies if the field still holds the payload we read,
		// so at most one concurrent remover reverses a given entry.
		result, err := uc.store.Group().
			RequireEquals(k.entries, entryID, payload).
			HDel(k.entries, entryID).
			IncrBy(k.total, -units).
			HIncrBy(k.contexts, entry.Context, -units).
			Commit(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to remove entry %s: %w", entryID, err)
		}

		if result.Applied {
			return true, nil
		}
	}

	return false, fmt.Errorf("%w: %s", domain.ErrConcurrentModification, entryID)
}

// GetEntry reads a single entry. The bool result is false when it does not exist.
func (uc *LedgerUseCase) GetEntry(ctx context.Context, accountID, currency, entryID string) (_ *domain.Entry, found bool, err error) {
	defer func(start time.Time) { uc.observe("get_entry", start, err) }(time.Now())

	payload, ok, err := uc.store.HGet(ctx, uc.keys(accountID, currency).entries, entryID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read entry %s: %w", entryID, err)
	}
	if !ok {
		return nil, false, nil
	}

	entry, err := domain.UnmarshalEntry([]byte(payload))
	if err != nil {
		return nil, false, fmt.Errorf("entry %s: %w", entryID, err)
	}

	return entry, true, nil
}

// GetSum returns the running total. A ledger that was never written sums to "0".
func (uc *LedgerUseCase) GetSum(ctx context.Context, accountID, currency string) (_ string, err error) {
	defer func(start time.Time) { uc.observe("get_sum", start, err) }(time.Now())

	raw, ok, err := uc.store.Get(ctx, uc.keys(accountID, currency).total)
	if err != nil {
		return "", fmt.Errorf("failed to read total: %w", err)
	}
	if !ok {
		return "0", nil
	}

	return uc.formatUnits(raw, uc.scale(currency))
}

// GetBalance reads total, entry count and per-context sums concurrently.
// The three reads are independent and not a consistent snapshot under concurrent writes.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, accountID, currency string) (_ *domain.Balance, err error) {
	defer func(start time.Time) { uc.observe("get_balance", start, err) }(time.Now())

	k := uc.keys(accountID, currency)
	scale := uc.scale(currency)

	var (
		rawTotal    string
		totalExists bool
		count       int64
		rawContexts map[string]string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		rawTotal, totalExists, err = uc.store.Get(gctx, k.total)
		return err
	})

	g.Go(func() error {
		var err error
		count, err = uc.store.HLen(gctx, k.entries)
		return err
	})

	g.Go(func() error {
		var err error
		rawContexts, err = uc.store.HGetAll(gctx, k.contexts)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}

	balance := &domain.Balance{
		Total:      "0",
		ByContext:  make(map[string]string, len(rawContexts)),
		EntryCount: count,
	}

	if totalExists {
		if balance.Total, err = uc.formatUnits(rawTotal, scale); err != nil {
			return nil, err
		}
	}

	for name, raw := range rawContexts {
		formatted, err := uc.formatUnits(raw, scale)
		if err != nil {
			return nil, fmt.Errorf("context %s: %w", name, err)
		}
		balance.ByContext[name] = formatted
	}

	return balance, nil
}

// ClearLedger deletes the entries and both aggregates in one multi-key delete.
// Clearing a ledger that does not exist is not an error.
func (uc *LedgerUseCase) ClearLedger(ctx context.Context, accountID, currency string) (err error) {
	defer func(start time.Time) { uc.observe("clear_ledger", start, err) }(time.Now())

	if err := uc.store.Del(ctx, uc.keys(accountID, currency).all()...); err != nil {
		return fmt.Errorf("failed to clear ledger: %w", err)
	}

	return nil
}

func (uc *LedgerUseCase) formatUnits(raw string, scale int32) (string, error) {
	units, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not an integer", domain.ErrMalformedAggregate, raw)
	}

	return domain.FormatAmount(domain.FromMinorUnits(units, scale), scale), nil
}
