package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerkv/internal/domain"
	"github.com/iho/ledgerkv/internal/usecase"
)

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID       string          `json:"id"`
	Context  string          `json:"context"`
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:       e.ID,
		Context:  e.Context,
		Currency: e.Currency,
		Amount:   e.Amount,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// EntryPageResponse is one page of a ledger scan.
type EntryPageResponse struct {
	Entries    []*EntryResponse `json:"entries"`
	NextCursor string           `json:"next_cursor"`
	HasMore    bool             `json:"has_more"`
	Skipped    []string         `json:"skipped,omitempty"`
}

// PageFromDomain converts a domain page to response.
func PageFromDomain(p *domain.Page) *EntryPageResponse {
	return &EntryPageResponse{
		Entries:    EntriesFromDomain(p.Entries),
		NextCursor: p.NextCursor,
		HasMore:    p.HasMore,
		Skipped:    p.Skipped,
	}
}

// SumResponse carries a ledger total.
type SumResponse struct {
	AccountID string `json:"account_id"`
	Currency  string `json:"currency"`
	Sum       string `json:"sum"`
}

// BalanceResponse represents a balance in API responses.
type BalanceResponse struct {
	AccountID  string            `json:"account_id"`
	Currency   string            `json:"currency"`
	Total      string            `json:"total"`
	ByContext  map[string]string `json:"by_context"`
	EntryCount int64             `json:"entry_count"`
}

// BalanceFromDomain converts a domain balance to response.
func BalanceFromDomain(accountID, currency string, b *domain.Balance) *BalanceResponse {
	return &BalanceResponse{
		AccountID:  accountID,
		Currency:   currency,
		Total:      b.Total,
		ByContext:  b.ByContext,
		EntryCount: b.EntryCount,
	}
}

// ReconciliationResponse represents a reconciliation run.
type ReconciliationResponse struct {
	AccountID          string                     `json:"account_id"`
	Currency           string                     `json:"currency"`
	RecordedTotal      decimal.Decimal            `json:"recorded_total"`
	CalculatedTotal    decimal.Decimal            `json:"calculated_total"`
	Difference         decimal.Decimal            `json:"difference"`
	RecordedCount      int64                      `json:"recorded_count"`
	ScannedCount       int64                      `json:"scanned_count"`
	ContextDifferences map[string]decimal.Decimal `json:"context_differences,omitempty"`
	Skipped            []string                   `json:"skipped,omitempty"`
	IsReconciled       bool                       `json:"is_reconciled"`
	CheckedAt          time.Time                  `json:"checked_at"`
}

// ReconciliationFromUseCase converts a reconciliation result to response.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountID:          r.AccountID,
		Currency:           r.Currency,
		RecordedTotal:      r.RecordedTotal,
		CalculatedTotal:    r.CalculatedTotal,
		Difference:         r.Difference,
		RecordedCount:      r.RecordedCount,
		ScannedCount:       r.ScannedCount,
		ContextDifferences: r.ContextDifferences,
		Skipped:            r.Skipped,
		IsReconciled:       r.IsReconciled,
		CheckedAt:          r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
