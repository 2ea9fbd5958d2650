package pricing

import "github.com/shopspring/decimal"

// Kind distinguishes percentage discounts from fixed amounts.
type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFixed      Kind = "fixed"
)

// VolumeTier is a quantity-range-gated discount. A nil MaxQuantity means the
// range is unbounded above. Tiers may overlap.
type VolumeTier struct {
	MinQuantity int             `json:"minQuantity"`
	MaxQuantity *int            `json:"maxQuantity,omitempty"`
	Kind        Kind            `json:"discountType"`
	Value       decimal.Decimal `json:"discountValue"`
}

// Matches reports whether the tier applies at the given quantity. Both range
// bounds are inclusive.
func (t VolumeTier) Matches(qty int) bool {
	if qty < t.MinQuantity {
		return false
	}
	return t.MaxQuantity == nil || qty <= *t.MaxQuantity
}

// VolumeResult is the outcome of volume tier selection. All monetary fields
// are rounded to two decimal places at this stage.
type VolumeResult struct {
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	DiscountPercent decimal.Decimal `json:"discountPercentage"`
	FinalPrice      decimal.Decimal `json:"finalPrice"`
	Applied         *VolumeTier     `json:"appliedTier,omitempty"`
}

// SelectVolumeDiscount picks the applicable quantity tier and applies it to
// the unit price. When several tiers match, the one with the largest raw
// discount value wins regardless of tier kind, so a fixed tier of 20 beats a
// percentage tier of 15 even when 15% would discount more. This mirrors the
// behaviour pricing parity requires; callers who need amount-based selection
// must pre-filter the tiers. No matching tier means zero discount.
func SelectVolumeDiscount(unitPrice decimal.Decimal, qty int, tiers []VolumeTier) VolumeResult {
	unitPrice = clampAmount(unitPrice)
	var chosen *VolumeTier
	for i := range tiers {
		if !tiers[i].Matches(qty) {
			continue
		}
		if chosen == nil || tiers[i].Value.GreaterThan(chosen.Value) {
			chosen = &tiers[i]
		}
	}
	if chosen == nil {
		return VolumeResult{FinalPrice: unitPrice.Round(2)}
	}
	value := clampAmount(chosen.Value)
	var amount decimal.Decimal
	if chosen.Kind == KindPercentage {
		amount = percentOf(unitPrice, value)
	} else {
		amount = value
	}
	if amount.GreaterThan(unitPrice) {
		amount = unitPrice
	}
	amount = amount.Round(2)
	tier := *chosen
	return VolumeResult{
		DiscountAmount:  amount,
		DiscountPercent: ratioPercent(amount, unitPrice).Round(2),
		FinalPrice:      unitPrice.Sub(amount).Round(2),
		Applied:         &tier,
	}
}
