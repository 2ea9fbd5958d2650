package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Totals is the per-line money summary. Savings compare the discounted
// subtotal against the undiscounted reference total, before tax.
type Totals struct {
	Subtotal            decimal.Decimal `json:"subtotal"`
	TaxAmount           decimal.Decimal `json:"taxAmount"`
	FinalPrice          decimal.Decimal `json:"finalPrice"`
	TotalSavings        decimal.Decimal `json:"totalSavings"`
	TotalSavingsPercent decimal.Decimal `json:"totalSavingsPercentage"`
}

// ComputeTotals expands a fully discounted unit price into subtotal, tax and
// final total for the given quantity. Savings are deliberately left
// unclamped: a negative value signals bad upstream data and must stay
// visible rather than being coerced to zero.
func ComputeTotals(unitPrice decimal.Decimal, qty int, taxRatePercent, originalUnitPrice decimal.Decimal) (Totals, error) {
	if qty < 1 {
		return Totals{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	q := decimal.NewFromInt(int64(qty))
	subtotal := clampAmount(unitPrice).Mul(q)
	tax := percentOf(subtotal, clampAmount(taxRatePercent)).Round(2)
	originalTotal := clampAmount(originalUnitPrice).Mul(q)
	savings := originalTotal.Sub(subtotal)
	return Totals{
		Subtotal:            subtotal,
		TaxAmount:           tax,
		FinalPrice:          subtotal.Add(tax),
		TotalSavings:        savings,
		TotalSavingsPercent: ratioPercent(savings, originalTotal).Round(2),
	}, nil
}
