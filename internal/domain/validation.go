package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrInvalidAccountID = errors.New("invalid account ID")
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrInvalidScale     = errors.New("invalid currency scale")
)

// Validation constants
const (
	MaxAccountIDLength = 255
	MaxCurrencyLength  = 32
	DefaultPageSize    = 100
	MaxPageSize        = 1000
)

// ValidateLedgerScope validates the (account, currency) pair that addresses a ledger.
func ValidateLedgerScope(accountID, currency string) error {
	if strings.TrimSpace(accountID) == "" {
		return fmt.Errorf("%w: account ID cannot be empty", ErrInvalidAccountID)
	}

	if len(accountID) > MaxAccountIDLength {
		return fmt.Errorf("%w: account ID exceeds %d characters", ErrInvalidAccountID, MaxAccountIDLength)
	}

	if strings.TrimSpace(currency) == "" {
		return fmt.Errorf("%w: currency cannot be empty", ErrInvalidCurrency)
	}

	if len(currency) > MaxCurrencyLength {
		return fmt.Errorf("%w: currency exceeds %d characters", ErrInvalidCurrency, MaxCurrencyLength)
	}

	return nil
}

// ValidateScale validates a currency scale.
func ValidateScale(scale int32) error {
	if scale < 0 || scale > MaxScale {
		return fmt.Errorf("%w: %d is outside [0, %d]", ErrInvalidScale, scale, MaxScale)
	}

	return nil
}

// ValidatePageSize applies the default and upper bound to a requested page size.
func ValidatePageSize(pageSize int) int {
	if pageSize <= 0 {
		return DefaultPageSize
	}

	if pageSize > MaxPageSize {
		return MaxPageSize
	}

	return pageSize
}
