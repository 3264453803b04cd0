package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateLedgerScope(t *testing.T) {
	t.Parallel()

	t.Run("valid scope", func(t *testing.T) {
		if err := ValidateLedgerScope("u1", "usd"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty account rejected", func(t *testing.T) {
		err := ValidateLedgerScope("   ", "usd")
		if !errors.Is(err, ErrInvalidAccountID) {
			t.Fatalf("expected ErrInvalidAccountID, got %v", err)
		}
	})

	t.Run("account too long", func(t *testing.T) {
		err := ValidateLedgerScope(strings.Repeat("a", MaxAccountIDLength+1), "usd")
		if !errors.Is(err, ErrInvalidAccountID) {
			t.Fatalf("expected ErrInvalidAccountID, got %v", err)
		}
	})

	t.Run("empty currency rejected", func(t *testing.T) {
		err := ValidateLedgerScope("u1", "")
		if !errors.Is(err, ErrInvalidCurrency) {
			t.Fatalf("expected ErrInvalidCurrency, got %v", err)
		}
	})
}

func TestValidateScale(t *testing.T) {
	t.Parallel()

	for _, scale := range []int32{0, 2, MaxScale} {
		if err := ValidateScale(scale); err != nil {
			t.Fatalf("expected scale %d to be valid, got %v", scale, err)
		}
	}

	for _, scale := range []int32{-1, MaxScale + 1} {
		if err := ValidateScale(scale); !errors.Is(err, ErrInvalidScale) {
			t.Fatalf("expected ErrInvalidScale for %d, got %v", scale, err)
		}
	}
}

func TestValidatePageSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input int
		want  int
	}{
		{0, DefaultPageSize},
		{-5, DefaultPageSize},
		{25, 25},
		{MaxPageSize + 1, MaxPageSize},
	}

	for _, tt := range tests {
		if got := ValidatePageSize(tt.input); got != tt.want {
			t.Fatalf("ValidatePageSize(%d) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
