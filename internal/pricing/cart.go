package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine bundles one line item's pricing inputs.
type CartLine struct {
	Table   Table   `json:"pricingTable"`
	Context Context `json:"context"`
	Options Options `json:"options"`
}

// CartOptions carries cart-level adjustments supplied by the caller.
type CartOptions struct {
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

// CartTotals aggregates line subtotals with cart-level tax, shipping and
// discount.
type CartTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
}

// SumCart folds pre-computed line subtotals into cart totals. The cart-level
// discount is subtracted after tax, not before, which makes its effective
// value larger than a pre-tax discount of the same nominal amount. The total
// is clamped at zero.
func SumCart(subtotals []decimal.Decimal, opts CartOptions) CartTotals {
	var subtotal decimal.Decimal
	for _, s := range subtotals {
		subtotal = subtotal.Add(clampAmount(s))
	}
	tax := percentOf(subtotal, clampAmount(opts.TaxRatePercent)).Round(2)
	shipping := clampAmount(opts.ShippingCost)
	discount := clampAmount(opts.DiscountAmount)
	total := subtotal.Add(tax).Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return CartTotals{
		Subtotal:       subtotal,
		TaxAmount:      tax,
		ShippingCost:   shipping,
		DiscountAmount: discount,
		Total:          total,
	}
}

// AggregateCart computes each line's breakdown independently and folds the
// resulting subtotals into cart totals. Per-line discounts never affect
// sibling lines.
func AggregateCart(lines []CartLine, opts CartOptions, disp Display, f Formatter) (CartTotals, []Breakdown, error) {
	breakdowns := make([]Breakdown, 0, len(lines))
	subtotals := make([]decimal.Decimal, 0, len(lines))
	for i, line := range lines {
		b, err := Quote(line.Table, line.Context, line.Options, disp, f)
		if err != nil {
			return CartTotals{}, nil, fmt.Errorf("cart line %d: %w", i, err)
		}
		breakdowns = append(breakdowns, b)
		subtotals = append(subtotals, b.Subtotal)
	}
	return SumCart(subtotals, opts), breakdowns, nil
}
