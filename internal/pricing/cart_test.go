package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSumCartScenario(t *testing.T) {
	subtotals := []decimal.Decimal{dec(t, "1000"), dec(t, "2000")}
	totals := SumCart(subtotals, CartOptions{
		TaxRatePercent: dec(t, "0"),
		ShippingCost:   dec(t, "300"),
		DiscountAmount: dec(t, "200"),
	})
	if !totals.Subtotal.Equal(dec(t, "3000")) {
		t.Fatalf("expected subtotal 3000, got %s", totals.Subtotal)
	}
	if !totals.Total.Equal(dec(t, "3100")) {
		t.Fatalf("expected total 3100, got %s", totals.Total)
	}
}

func TestSumCartDiscountAppliedAfterTax(t *testing.T) {
	totals := SumCart([]decimal.Decimal{dec(t, "1000")}, CartOptions{
		TaxRatePercent: dec(t, "10"),
		DiscountAmount: dec(t, "100"),
	})
	// 1000 + 100 tax − 100 discount: the discount does not shrink the tax base.
	if !totals.TaxAmount.Equal(dec(t, "100")) {
		t.Fatalf("expected tax 100 on undiscounted subtotal, got %s", totals.TaxAmount)
	}
	if !totals.Total.Equal(dec(t, "1000")) {
		t.Fatalf("expected total 1000, got %s", totals.Total)
	}
}

func TestSumCartClampsNegativeTotal(t *testing.T) {
	totals := SumCart([]decimal.Decimal{dec(t, "100")}, CartOptions{
		DiscountAmount: dec(t, "500"),
	})
	if !totals.Total.IsZero() {
		t.Fatalf("expected total clamped to zero, got %s", totals.Total)
	}
}

func TestSumCartClampsNegativeInputs(t *testing.T) {
	totals := SumCart([]decimal.Decimal{dec(t, "-50"), dec(t, "200")}, CartOptions{
		ShippingCost:   dec(t, "-30"),
		DiscountAmount: dec(t, "-10"),
	})
	if !totals.Subtotal.Equal(dec(t, "200")) {
		t.Fatalf("expected negative subtotal dropped, got %s", totals.Subtotal)
	}
	if !totals.ShippingCost.IsZero() || !totals.DiscountAmount.IsZero() {
		t.Fatalf("expected negative adjustments clamped, got %+v", totals)
	}
}

func TestAggregateCartIndependentLines(t *testing.T) {
	table := testTable(t)
	lines := []CartLine{
		{
			Table:   table,
			Context: Context{Role: RoleCustomer, Quantity: 1},
			Options: Options{Rules: []Rule{{Kind: KindPercentage, Percent: dec(t, "50")}}},
		},
		{
			Table:   table,
			Context: Context{Role: RoleCustomer, Quantity: 1},
		},
	}
	totals, breakdowns, err := AggregateCart(lines, CartOptions{}, testDisplay, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(breakdowns) != 2 {
		t.Fatalf("expected 2 breakdowns, got %d", len(breakdowns))
	}
	// The 50% rule on the first line must not leak into the second.
	if !breakdowns[0].Subtotal.Equal(dec(t, "5000")) {
		t.Fatalf("expected first line subtotal 5000, got %s", breakdowns[0].Subtotal)
	}
	if !breakdowns[1].Subtotal.Equal(dec(t, "10000")) {
		t.Fatalf("expected second line subtotal 10000, got %s", breakdowns[1].Subtotal)
	}
	if !totals.Subtotal.Equal(dec(t, "15000")) {
		t.Fatalf("expected cart subtotal 15000, got %s", totals.Subtotal)
	}
}

func TestAggregateCartSurfacesLineErrors(t *testing.T) {
	lines := []CartLine{
		{Table: testTable(t), Context: Context{Role: RoleCustomer, Quantity: 0}},
	}
	_, _, err := AggregateCart(lines, CartOptions{}, testDisplay, nil)
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}
