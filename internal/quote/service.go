package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/pricing-engine/internal/catalog"
	"github.com/noah-isme/pricing-engine/internal/obs"
	"github.com/noah-isme/pricing-engine/internal/pricing"
)

// LineInput is one line item to price. Either an inline table or a catalog
// SKU must be present; an inline table wins when both are given.
type LineInput struct {
	SKU     string
	Table   *pricing.Table
	Context pricing.Context
	Options pricing.Options
}

// CartInput bundles line items with cart-level adjustments.
type CartInput struct {
	Lines   []LineInput
	Options pricing.CartOptions
}

// CartResult pairs the aggregated totals with the per-line breakdowns.
type CartResult struct {
	Totals pricing.CartTotals  `json:"totals"`
	Lines  []pricing.Breakdown `json:"lines"`
}

// Service computes price quotes against the catalog. It is stateless and
// safe for concurrent use.
type Service struct {
	Catalog   catalog.Source
	Formatter pricing.Formatter
	Display   pricing.Display
}

// Quote prices a single line item.
func (s *Service) Quote(ctx context.Context, in LineInput) (pricing.Breakdown, error) {
	start := time.Now()
	table, err := s.resolveTable(ctx, in)
	if err != nil {
		s.observeQuote(in.Context.Role, "error", start)
		return pricing.Breakdown{}, err
	}
	b, err := pricing.Quote(table, in.Context, in.Options, s.display(table), s.formatter())
	if err != nil {
		s.observeQuote(in.Context.Role, "error", start)
		return pricing.Breakdown{}, err
	}
	b.QuoteID = uuid.NewString()
	b.SKU = in.SKU
	s.observeQuote(in.Context.Role, "ok", start)
	return b, nil
}

// Cart prices every line independently and aggregates the totals.
func (s *Service) Cart(ctx context.Context, in CartInput) (CartResult, error) {
	start := time.Now()
	lines := make([]pricing.CartLine, 0, len(in.Lines))
	var disp pricing.Display
	for i, li := range in.Lines {
		table, err := s.resolveTable(ctx, li)
		if err != nil {
			s.observeCart("error", start, len(in.Lines))
			return CartResult{}, fmt.Errorf("cart line %d: %w", i, err)
		}
		if i == 0 {
			disp = s.display(table)
		}
		lines = append(lines, pricing.CartLine{Table: table, Context: li.Context, Options: li.Options})
	}
	totals, breakdowns, err := pricing.AggregateCart(lines, in.Options, disp, s.formatter())
	if err != nil {
		s.observeCart("error", start, len(in.Lines))
		return CartResult{}, err
	}
	quoteID := uuid.NewString()
	for i := range breakdowns {
		breakdowns[i].QuoteID = quoteID
		breakdowns[i].SKU = in.Lines[i].SKU
	}
	s.observeCart("ok", start, len(in.Lines))
	return CartResult{Totals: totals, Lines: breakdowns}, nil
}

// Table resolves the pricing table for a SKU, for admin display callers.
func (s *Service) Table(ctx context.Context, sku string) (pricing.Table, error) {
	if s.Catalog == nil {
		return pricing.Table{}, errors.New("quote: catalog not configured")
	}
	return s.Catalog.PricingTable(ctx, sku)
}

func (s *Service) resolveTable(ctx context.Context, in LineInput) (pricing.Table, error) {
	if in.Table != nil {
		return *in.Table, nil
	}
	if s.Catalog == nil {
		return pricing.Table{}, errors.New("quote: catalog not configured")
	}
	return s.Catalog.PricingTable(ctx, in.SKU)
}

func (s *Service) display(table pricing.Table) pricing.Display {
	disp := s.Display
	if table.Currency != "" {
		disp.Currency = table.Currency
	}
	return disp
}

func (s *Service) formatter() pricing.Formatter {
	if s.Formatter == nil {
		return nil
	}
	return countingFormatter{inner: s.Formatter}
}

func (s *Service) observeQuote(role pricing.Role, result string, start time.Time) {
	if obs.QuoteTotal != nil {
		obs.QuoteTotal.WithLabelValues(string(role), result).Inc()
	}
	if obs.QuoteDuration != nil {
		obs.QuoteDuration.WithLabelValues("line").Observe(obs.DurationMillis(time.Since(start)))
	}
}

func (s *Service) observeCart(result string, start time.Time, lines int) {
	if obs.CartQuoteTotal != nil {
		obs.CartQuoteTotal.WithLabelValues(result).Inc()
	}
	if obs.QuoteDuration != nil {
		obs.QuoteDuration.WithLabelValues("cart").Observe(obs.DurationMillis(time.Since(start)))
	}
	if obs.CartQuoteLines != nil {
		obs.CartQuoteLines.Observe(float64(lines))
	}
}

// countingFormatter surfaces formatter failures to the fallback counter
// before handing them back to the engine, which then renders the fallback.
type countingFormatter struct {
	inner pricing.Formatter
}

func (c countingFormatter) Format(amount decimal.Decimal, currencyCode, locale string) (string, error) {
	out, err := c.inner.Format(amount, currencyCode, locale)
	if err != nil && obs.FormatterFallbackTotal != nil {
		obs.FormatterFallbackTotal.Inc()
	}
	return out, err
}
