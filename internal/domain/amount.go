package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// DefaultScale is the number of fractional digits used for currencies without an explicit scale.
const DefaultScale int32 = 2

// MaxScale bounds configured scales so that one whole unit still fits in int64 minor units.
const MaxScale int32 = 18

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(-math.MaxInt64)
)

// ToMinorUnits converts amount into an integer count of 10^-scale units.
// Amounts with more fractional digits than scale are rejected rather than rounded.
func ToMinorUnits(amount decimal.Decimal, scale int32) (int64, error) {
	shifted := amount.Shift(scale)

	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s has more than %d fractional digits", ErrInvalidAmount, amount, scale)
	}

	if shifted.GreaterThan(maxMinorUnits) || shifted.LessThan(minMinorUnits) {
		return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidAmount, amount)
	}

	return shifted.IntPart(), nil
}

// AddMinorUnits adds two minor-unit counts, failing instead of wrapping around.
func AddMinorUnits(a, b int64) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("%w: %d %+d", ErrAmountOverflow, a, b)
	}
	return sum, nil
}

// FromMinorUnits converts minor units back to a decimal amount.
func FromMinorUnits(units int64, scale int32) decimal.Decimal {
	return decimal.New(units, -scale)
}

// FormatAmount renders amount with exactly scale fractional digits.
func FormatAmount(amount decimal.Decimal, scale int32) string {
	return amount.StringFixed(scale)
}
