package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Formatter renders a monetary amount for display. Implementations live
// outside the engine; a formatting failure never fails a pricing
// computation.
type Formatter interface {
	Format(amount decimal.Decimal, currencyCode, locale string) (string, error)
}

// Display carries the caller supplied display configuration. There is no
// process-wide default.
type Display struct {
	Currency string `json:"currency"`
	Locale   string `json:"locale"`
}

// Context identifies the buyer for one pricing request. Grade is only
// meaningful for the retailer role and defaults to gold when absent.
type Context struct {
	Role     Role  `json:"userRole"`
	Grade    Grade `json:"retailerGrade,omitempty"`
	Quantity int   `json:"quantity"`
}

// Options carries the already-resolved discount inputs supplied by the
// calling layer.
type Options struct {
	VolumeTiers    []VolumeTier    `json:"volumeDiscountTiers,omitempty"`
	Rules          []Rule          `json:"additionalDiscountRules,omitempty"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
}

// DiscountDetail describes one named discount contribution as a per-unit
// amount plus its percentage of the price it was taken from.
type DiscountDetail struct {
	Label   string          `json:"label"`
	Amount  decimal.Decimal `json:"amount"`
	Percent decimal.Decimal `json:"percentage"`
}

// DiscountLedger groups per-category line-total discount amounts for UI
// consumption. Categories the engine does not populate are zero-filled
// placeholders the caller may overwrite; rule-stack discounts land in Other.
type DiscountLedger struct {
	RoleBased   decimal.Decimal `json:"roleBasedDiscount"`
	Volume      decimal.Decimal `json:"volumeDiscount"`
	Coupon      decimal.Decimal `json:"couponDiscount"`
	Membership  decimal.Decimal `json:"membershipDiscount"`
	Promotional decimal.Decimal `json:"promotionalDiscount"`
	Other       decimal.Decimal `json:"other"`
}

// FeeLedger groups fee lines. Only tax is computed by the engine.
type FeeLedger struct {
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Handling decimal.Decimal `json:"handling"`
	Service  decimal.Decimal `json:"service"`
	Other    decimal.Decimal `json:"other"`
}

// Ledger nests the discount and fee breakdown consumed by UIs.
type Ledger struct {
	Discounts DiscountLedger `json:"discounts"`
	Fees      FeeLedger      `json:"fees"`
}

// Breakdown is the immutable, auditable result of one pricing computation.
// Formatted strings are for direct UI consumption and are never re-parsed.
type Breakdown struct {
	QuoteID           string          `json:"quoteId,omitempty"`
	SKU               string          `json:"sku,omitempty"`
	OriginalUnitPrice decimal.Decimal `json:"originalUnitPrice"`
	BaseUnitPrice     decimal.Decimal `json:"baseUnitPrice"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	Quantity          int             `json:"quantity"`
	Currency          string          `json:"currency"`

	RoleDiscount   *DiscountDetail `json:"roleDiscount,omitempty"`
	VolumeDiscount *DiscountDetail `json:"volumeDiscount,omitempty"`
	RuleDiscounts  []AppliedRule   `json:"ruleDiscounts"`

	Subtotal            decimal.Decimal `json:"subtotal"`
	TaxAmount           decimal.Decimal `json:"taxAmount"`
	FinalPrice          decimal.Decimal `json:"finalPrice"`
	TotalSavings        decimal.Decimal `json:"totalSavings"`
	TotalSavingsPercent decimal.Decimal `json:"totalSavingsPercentage"`

	Ledger Ledger `json:"breakdown"`

	FormattedFinalPrice    string `json:"formattedFinalPrice"`
	FormattedOriginalTotal string `json:"formattedOriginalTotal"`
	FormattedSavings       string `json:"formattedTotalSavings"`
}

// Quote runs the full pipeline for one line item: role resolution, volume
// tier selection, rule stacking, totals and ledger assembly. The customer
// price is the undiscounted reference for all savings figures.
func Quote(t Table, ctx Context, opts Options, disp Display, f Formatter) (Breakdown, error) {
	if ctx.Quantity < 1 {
		return Breakdown{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, ctx.Quantity)
	}
	original := clampAmount(t.Customer)
	base := ResolveRolePrice(t, ctx.Role, ctx.Grade)

	var roleDiscount *DiscountDetail
	if base.LessThan(original) {
		delta := original.Sub(base)
		roleDiscount = &DiscountDetail{
			Label:   RoleLabel(ctx.Role, ctx.Grade),
			Amount:  delta,
			Percent: ratioPercent(delta, original).Round(2),
		}
	}

	vol := SelectVolumeDiscount(base, ctx.Quantity, opts.VolumeTiers)
	var volumeDiscount *DiscountDetail
	if vol.Applied != nil && vol.DiscountAmount.IsPositive() {
		volumeDiscount = &DiscountDetail{
			Label:   volumeLabel(*vol.Applied),
			Amount:  vol.DiscountAmount,
			Percent: vol.DiscountPercent,
		}
	}

	unit, applied := ApplyRules(vol.FinalPrice, opts.Rules)

	totals, err := ComputeTotals(unit, ctx.Quantity, opts.TaxRatePercent, original)
	if err != nil {
		return Breakdown{}, err
	}

	qty := decimal.NewFromInt(int64(ctx.Quantity))
	ledger := Ledger{Fees: FeeLedger{Tax: totals.TaxAmount}}
	if roleDiscount != nil {
		ledger.Discounts.RoleBased = roleDiscount.Amount.Mul(qty)
	}
	if volumeDiscount != nil {
		ledger.Discounts.Volume = volumeDiscount.Amount.Mul(qty)
	}
	var ruleTotal decimal.Decimal
	for _, ar := range applied {
		ruleTotal = ruleTotal.Add(ar.Amount)
	}
	ledger.Discounts.Other = ruleTotal.Mul(qty)

	currency := disp.Currency
	if currency == "" {
		currency = t.Currency
	}
	originalTotal := original.Mul(qty)
	return Breakdown{
		OriginalUnitPrice:      original,
		BaseUnitPrice:          base,
		UnitPrice:              unit,
		Quantity:               ctx.Quantity,
		Currency:               currency,
		RoleDiscount:           roleDiscount,
		VolumeDiscount:         volumeDiscount,
		RuleDiscounts:          applied,
		Subtotal:               totals.Subtotal,
		TaxAmount:              totals.TaxAmount,
		FinalPrice:             totals.FinalPrice,
		TotalSavings:           totals.TotalSavings,
		TotalSavingsPercent:    totals.TotalSavingsPercent,
		Ledger:                 ledger,
		FormattedFinalPrice:    formatOrFallback(f, totals.FinalPrice, currency, disp.Locale),
		FormattedOriginalTotal: formatOrFallback(f, originalTotal, currency, disp.Locale),
		FormattedSavings:       formatOrFallback(f, totals.TotalSavings, currency, disp.Locale),
	}, nil
}

func formatOrFallback(f Formatter, amount decimal.Decimal, currency, locale string) string {
	if f != nil {
		if s, err := f.Format(amount, currency, locale); err == nil && s != "" {
			return s
		}
	}
	return FallbackDisplay(amount, currency)
}

// FallbackDisplay renders a locale-free money string used when the
// configured formatter fails. It is always non-empty for a non-empty
// currency code.
func FallbackDisplay(amount decimal.Decimal, currencyCode string) string {
	return currencySymbol(currencyCode) + amount.StringFixed(2)
}

func currencySymbol(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "KRW":
		return "₩"
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "JPY":
		return "¥"
	case "IDR":
		return "Rp"
	case "":
		return ""
	default:
		return code + " "
	}
}

func volumeLabel(t VolumeTier) string {
	if t.Kind == KindPercentage {
		return fmt.Sprintf("volume %s%% off (qty %d+)", t.Value, t.MinQuantity)
	}
	return fmt.Sprintf("volume %s off (qty %d+)", t.Value, t.MinQuantity)
}
