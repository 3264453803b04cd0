package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Entry is a single signed amount booked under a context tag.
// Negative amounts are debits.
type Entry struct {
	ID       string
	Context  string
	Currency string
	Amount   decimal.Decimal
}

// Validate checks the fields every stored entry must carry.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidEntry)
	}

	if strings.TrimSpace(e.Context) == "" {
		return fmt.Errorf("%w: context is required", ErrInvalidEntry)
	}

	if strings.TrimSpace(e.Currency) == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidEntry)
	}

	return nil
}

// entryRecord is the stored form. Amount stays a decimal string on the wire.
type entryRecord struct {
	ID       string `json:"id"`
	Context  string `json:"context"`
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

// MarshalEntry serializes an entry for storage.
func MarshalEntry(e *Entry) ([]byte, error) {
	return json.Marshal(entryRecord{
		ID:       e.ID,
		Context:  e.Context,
		Currency: e.Currency,
		Amount:   e.Amount.String(),
	})
}

// UnmarshalEntry parses a stored entry. Any decoding problem is reported as ErrMalformedEntry.
func UnmarshalEntry(data []byte) (*Entry, error) {
	var rec entryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}

	amount, err := decimal.NewFromString(rec.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q: %v", ErrMalformedEntry, rec.Amount, err)
	}

	entry := &Entry{
		ID:       rec.ID,
		Context:  rec.Context,
		Currency: rec.Currency,
		Amount:   amount,
	}

	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}

	return entry, nil
}
