package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/noah-isme/pricing-engine/internal/pricing"
)

// Formatter renders monetary amounts with locale aware number formatting.
// Output strings are display-only and never re-parsed.
type Formatter struct{}

var _ pricing.Formatter = Formatter{}

// Format renders the amount with the currency symbol for the given locale.
// Unknown currency codes or locales return an error; callers fall back to
// the engine's locale-free rendering.
func (Formatter) Format(amount decimal.Decimal, currencyCode, locale string) (string, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(currencyCode))
	if err != nil {
		return "", fmt.Errorf("parse currency %q: %w", currencyCode, err)
	}
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return "", fmt.Errorf("parse locale %q: %w", locale, err)
	}
	printer := message.NewPrinter(tag)
	return printer.Sprint(currency.Symbol(unit.Amount(amount.InexactFloat64()))), nil
}
