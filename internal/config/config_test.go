package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pricing-engine/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"PORT":                     "",
		"PRICING_CURRENCY_CODE":    "",
		"PRICING_LOCALE":           "",
		"PRICING_TAX_RATE_PERCENT": "",
		"RATE_LIMIT_MAX":           "",
	})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "KRW", cfg.CurrencyCode)
	require.Equal(t, "ko-KR", cfg.Locale)
	require.InDelta(t, 10.0, cfg.TaxRatePercent, 0.0001)
	require.Equal(t, int64(300), cfg.RateLimitMax)
	require.Equal(t, 5*time.Minute, cfg.TableCacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"PORT":                     "9090",
		"PRICING_CURRENCY_CODE":    "USD",
		"PRICING_LOCALE":           "en-US",
		"PRICING_TAX_RATE_PERCENT": "7.5",
		"CORS_ALLOWED_ORIGINS":     "https://a.example, https://b.example",
	})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, "USD", cfg.CurrencyCode)
	require.InDelta(t, 7.5, cfg.TaxRatePercent, 0.0001)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestNegativeTaxRateClamped(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"PRICING_TAX_RATE_PERCENT": "-4",
	})
	require.NoError(t, err)
	require.Zero(t, cfg.TaxRatePercent)
}
