package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pricing-engine/internal/catalog"
	"github.com/noah-isme/pricing-engine/internal/pricing"
)

func sampleTable() pricing.Table {
	return pricing.Table{
		Customer:  decimal.NewFromInt(10000),
		Business:  decimal.NewFromInt(8000),
		Affiliate: decimal.NewFromInt(8500),
		Retailer: pricing.RetailerPrices{
			Gold:    decimal.NewFromInt(7500),
			Premium: decimal.NewFromInt(7000),
			VIP:     decimal.NewFromInt(6500),
		},
		Currency: "KRW",
	}
}

func TestStaticSourceLookup(t *testing.T) {
	src := catalog.NewStaticSource(map[string]pricing.Table{"SKU-001": sampleTable()})

	table, err := src.PricingTable(context.Background(), "sku-001")
	require.NoError(t, err)
	require.True(t, table.Customer.Equal(decimal.NewFromInt(10000)))

	_, err = src.PricingTable(context.Background(), "missing")
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestLoadTablesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.json")
	payload := `{
		"sku-001": {
			"customer": "10000",
			"business": "8000",
			"affiliate": "8500",
			"retailer": {"gold": "7500", "premium": "7000", "vip": "6500"},
			"currency": "KRW"
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	tables, err := catalog.LoadTables(path)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.True(t, tables["sku-001"].Retailer.VIP.Equal(decimal.NewFromInt(6500)))
}

func TestLoadTablesMissingFile(t *testing.T) {
	_, err := catalog.LoadTables(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

type countingSource struct {
	inner catalog.Source
	calls int
}

func (c *countingSource) PricingTable(ctx context.Context, sku string) (pricing.Table, error) {
	c.calls++
	return c.inner.PricingTable(ctx, sku)
}

func TestCachedSourceReadThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	counting := &countingSource{inner: catalog.NewStaticSource(map[string]pricing.Table{"sku-001": sampleTable()})}
	src := &catalog.CachedSource{
		Inner: counting,
		Cache: catalog.NewCache(client, time.Minute),
	}

	ctx := context.Background()
	first, err := src.PricingTable(ctx, "sku-001")
	require.NoError(t, err)
	second, err := src.PricingTable(ctx, "sku-001")
	require.NoError(t, err)

	require.Equal(t, 1, counting.calls, "second lookup must hit the cache")
	require.True(t, first.Customer.Equal(second.Customer))
}

func TestCachedSourceSurvivesCacheOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	src := &catalog.CachedSource{
		Inner: catalog.NewStaticSource(map[string]pricing.Table{"sku-001": sampleTable()}),
		Cache: catalog.NewCache(client, time.Minute),
	}
	mr.Close()

	table, err := src.PricingTable(context.Background(), "sku-001")
	require.NoError(t, err, "cache faults must not fail lookups")
	require.True(t, table.Business.Equal(decimal.NewFromInt(8000)))
}

func TestCachedSourcePropagatesNotFound(t *testing.T) {
	src := &catalog.CachedSource{
		Inner: catalog.NewStaticSource(nil),
	}
	_, err := src.PricingTable(context.Background(), "sku-404")
	require.True(t, errors.Is(err, catalog.ErrNotFound))
}
