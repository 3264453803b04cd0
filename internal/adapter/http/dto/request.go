package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerkv/internal/domain"
)

// AddEntryRequest represents a request to book an entry.
// Amount accepts a JSON string or number; strings keep exact precision.
type AddEntryRequest struct {
	ID       string          `json:"id"`
	Context  string          `json:"context"`
	Currency string          `json:"currency,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

// ToDomain converts to a domain entry.
func (r *AddEntryRequest) ToDomain() *domain.Entry {
	return &domain.Entry{
		ID:       r.ID,
		Context:  r.Context,
		Currency: r.Currency,
		Amount:   r.Amount,
	}
}
