package pricing

import "github.com/shopspring/decimal"

// Rule is one step in a sequential discount stack. Percentage rules compound
// against the running price; fixed rules subtract directly from it.
type Rule struct {
	Kind    Kind            `json:"kind"`
	Percent decimal.Decimal `json:"percentage,omitempty"`
	Amount  decimal.Decimal `json:"amount,omitempty"`
	Label   string          `json:"label,omitempty"`
}

// AppliedRule records the outcome of a single stacking step.
// EffectivePercent is derived once at construction time from the price the
// rule actually saw, and is zero when that price was already zero.
type AppliedRule struct {
	Label            string          `json:"label,omitempty"`
	Kind             Kind            `json:"kind"`
	Amount           decimal.Decimal `json:"amount"`
	EffectivePercent decimal.Decimal `json:"effectivePercentage"`
}

// ApplyRules walks the rule list in order, computing each discount against
// the running price (not the original) and clamping the running price to
// zero after every step, so an exhausted price yields nothing further to
// later fixed rules. The returned descriptors correspond one to one, in
// order, with the input rules.
func ApplyRules(startingPrice decimal.Decimal, rules []Rule) (decimal.Decimal, []AppliedRule) {
	price := clampAmount(startingPrice)
	applied := make([]AppliedRule, 0, len(rules))
	for _, rule := range rules {
		before := price
		var amount decimal.Decimal
		if rule.Kind == KindPercentage {
			amount = percentOf(before, clampAmount(rule.Percent))
		} else {
			amount = clampAmount(rule.Amount)
		}
		if amount.GreaterThan(before) {
			amount = before
		}
		price = before.Sub(amount)

		effective := clampAmount(rule.Percent)
		if rule.Kind != KindPercentage {
			effective = ratioPercent(amount, before).Round(2)
		}
		applied = append(applied, AppliedRule{
			Label:            rule.Label,
			Kind:             rule.Kind,
			Amount:           amount,
			EffectivePercent: effective,
		})
	}
	return price, applied
}
