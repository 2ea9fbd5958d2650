package quote

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pricing-engine/internal/catalog"
	"github.com/noah-isme/pricing-engine/internal/pricing"
)

type failingFormatter struct{}

func (failingFormatter) Format(decimal.Decimal, string, string) (string, error) {
	return "", errors.New("formatter unavailable")
}

func TestServiceFormatterFallback(t *testing.T) {
	svc := &Service{
		Catalog: catalog.NewStaticSource(map[string]pricing.Table{
			"SKU-1": {
				Customer:  decimal.NewFromInt(10000),
				Business:  decimal.NewFromInt(8000),
				Affiliate: decimal.NewFromInt(8500),
				Retailer: pricing.RetailerPrices{
					Gold:    decimal.NewFromInt(7500),
					Premium: decimal.NewFromInt(7000),
					VIP:     decimal.NewFromInt(6500),
				},
				Currency: "KRW",
			},
		}),
		Formatter: failingFormatter{},
		Display:   pricing.Display{Currency: "KRW", Locale: "ko-KR"},
	}

	b, err := svc.Quote(context.Background(), LineInput{
		SKU:     "SKU-1",
		Context: pricing.Context{Role: pricing.RoleCustomer, Quantity: 1},
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(b.FormattedFinalPrice, "₩"),
		"expected fallback formatting, got %q", b.FormattedFinalPrice)
	require.NotEmpty(t, b.QuoteID)
}

func TestServiceInlineTableWins(t *testing.T) {
	svc := &Service{
		Catalog: catalog.NewStaticSource(nil),
		Display: pricing.Display{Currency: "KRW", Locale: "ko-KR"},
	}

	inline := &pricing.Table{
		Customer:  decimal.NewFromInt(500),
		Business:  decimal.NewFromInt(400),
		Affiliate: decimal.NewFromInt(450),
		Retailer: pricing.RetailerPrices{
			Gold:    decimal.NewFromInt(380),
			Premium: decimal.NewFromInt(360),
			VIP:     decimal.NewFromInt(340),
		},
		Currency: "USD",
	}
	b, err := svc.Quote(context.Background(), LineInput{
		SKU:     "not-in-catalog",
		Table:   inline,
		Context: pricing.Context{Role: pricing.RoleCustomer, Quantity: 1},
	})
	require.NoError(t, err)
	require.Equal(t, "USD", b.Currency)
	require.True(t, b.UnitPrice.Equal(decimal.NewFromInt(500)))
}
