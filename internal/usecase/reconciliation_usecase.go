package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerkv/internal/domain"
)

// ReconciliationUseCase recomputes a ledger's aggregates from its entries.
type ReconciliationUseCase struct {
	ledger   *LedgerUseCase
	pageSize int
}

// NewReconciliationUseCase creates a new reconciliation use case.
func NewReconciliationUseCase(ledger *LedgerUseCase) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		ledger:   ledger,
		pageSize: domain.MaxPageSize,
	}
}

// ReconciliationResult compares stored aggregates against sums recomputed from entries.
type ReconciliationResult struct {
	AccountID          string
	Currency           string
	RecordedTotal      decimal.Decimal
	CalculatedTotal    decimal.Decimal
	Difference         decimal.Decimal
	RecordedCount      int64
	ScannedCount       int64
	ContextDifferences map[string]decimal.Decimal
	Skipped            []string
	IsReconciled       bool
	CheckedAt          time.Time
}

// Reconcile scans every entry of the ledger and checks the total and per-context sums.
// A mismatch returns the populated result together with domain.ErrInconsistentLedger.
// Run it while the ledger is quiet: concurrent writes show up as false mismatches.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, accountID, currency string) (*ReconciliationResult, error) {
	balance, err := uc.ledger.GetBalance(ctx, accountID, currency)
	if err != nil {
		return nil, err
	}

	recordedTotal, err := decimal.NewFromString(balance.Total)
	if err != nil {
		return nil, fmt.Errorf("%w: total %q", domain.ErrMalformedAggregate, balance.Total)
	}

	result := &ReconciliationResult{
		AccountID:          accountID,
		Currency:           currency,
		RecordedTotal:      recordedTotal,
		CalculatedTotal:    decimal.Zero,
		RecordedCount:      balance.EntryCount,
		ContextDifferences: make(map[string]decimal.Decimal),
	}

	calculated := make(map[string]decimal.Decimal)
	cursor := InitialCursor

	// HSCAN may return a field more than once while the hash is rehashed.
	seen := make(map[string]struct{})
	firstSighting := func(id string) bool {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
		return true
	}

	for {
		page, err := uc.ledger.GetEntriesPaginated(ctx, accountID, currency, cursor, uc.pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile %s/%s: %w", accountID, currency, err)
		}

		for _, entry := range page.Entries {
			if !firstSighting(entry.ID) {
				continue
			}
			result.CalculatedTotal = result.CalculatedTotal.Add(entry.Amount)
			calculated[entry.Context] = calculated[entry.Context].Add(entry.Amount)
			result.ScannedCount++
		}
		for _, id := range page.Skipped {
			if firstSighting(id) {
				result.Skipped = append(result.Skipped, id)
			}
		}

		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	for name, raw := range balance.ByContext {
		recorded, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: context %s sum %q", domain.ErrMalformedAggregate, name, raw)
		}

		if diff := recorded.Sub(calculated[name]); !diff.IsZero() {
			result.ContextDifferences[name] = diff
		}
	}

	for name, sum := range calculated {
		if _, ok := balance.ByContext[name]; !ok && !sum.IsZero() {
			result.ContextDifferences[name] = sum.Neg()
		}
	}

	result.Difference = result.RecordedTotal.Sub(result.CalculatedTotal)
	result.IsReconciled = result.Difference.IsZero() &&
		len(result.ContextDifferences) == 0 &&
		len(result.Skipped) == 0 &&
		result.RecordedCount == result.ScannedCount
	result.CheckedAt = time.Now().UTC()

	if !result.IsReconciled {
		return result, fmt.Errorf("%w: %s/%s differs by %s", domain.ErrInconsistentLedger, accountID, currency, result.Difference)
	}

	return result, nil
}
