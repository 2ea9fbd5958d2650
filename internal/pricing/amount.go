package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount signals a non-finite numeric input. Negative or zero
	// amounts are clamped instead, never rejected.
	ErrInvalidAmount = errors.New("pricing: invalid amount")
	// ErrInvalidQuantity signals a quantity below one.
	ErrInvalidQuantity = errors.New("pricing: quantity must be at least 1")
)

var hundred = decimal.NewFromInt(100)

// AmountFromFloat converts a caller supplied float into a decimal amount.
// NaN and infinities surface as ErrInvalidAmount; every finite value,
// including negative ones, converts cleanly and is clamped downstream.
func AmountFromFloat(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, v)
	}
	return decimal.NewFromFloat(v), nil
}

func clampAmount(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// percentOf returns base × (pct/100).
func percentOf(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

// ratioPercent returns part/whole × 100, or zero when whole is zero.
func ratioPercent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}
