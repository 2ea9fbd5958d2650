package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/noah-isme/pricing-engine/internal/pricing"
)

// ErrNotFound is returned when no pricing table exists for a SKU.
var ErrNotFound = errors.New("catalog: pricing table not found")

// Source supplies per-product pricing tables. Returned tables are read-only
// snapshots; implementations must not mutate them after returning.
type Source interface {
	PricingTable(ctx context.Context, sku string) (pricing.Table, error)
}

// StaticSource serves pricing tables from an in-memory map keyed by SKU.
type StaticSource struct {
	tables map[string]pricing.Table
}

// NewStaticSource constructs a source over the given tables. The map is
// copied so later caller mutations cannot leak into lookups.
func NewStaticSource(tables map[string]pricing.Table) *StaticSource {
	copied := make(map[string]pricing.Table, len(tables))
	for sku, table := range tables {
		copied[normaliseSKU(sku)] = table
	}
	return &StaticSource{tables: copied}
}

// PricingTable implements Source.
func (s *StaticSource) PricingTable(_ context.Context, sku string) (pricing.Table, error) {
	table, ok := s.tables[normaliseSKU(sku)]
	if !ok {
		return pricing.Table{}, fmt.Errorf("%w: %s", ErrNotFound, sku)
	}
	return table, nil
}

// SKUs returns the known SKUs in sorted order.
func (s *StaticSource) SKUs() []string {
	out := make([]string, 0, len(s.tables))
	for sku := range s.tables {
		out = append(out, sku)
	}
	sort.Strings(out)
	return out
}

func normaliseSKU(sku string) string {
	return strings.ToLower(strings.TrimSpace(sku))
}

// LoadTables reads a JSON file mapping SKU to pricing table.
func LoadTables(path string) (map[string]pricing.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing tables: %w", err)
	}
	var tables map[string]pricing.Table
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parse pricing tables: %w", err)
	}
	return tables, nil
}

// CachedSource fronts another source with a Redis JSON cache. Cache faults
// never fail a lookup; the inner source remains authoritative.
type CachedSource struct {
	Inner Source
	Cache *Cache
}

// PricingTable implements Source with read-through caching.
func (c *CachedSource) PricingTable(ctx context.Context, sku string) (pricing.Table, error) {
	if c.Inner == nil {
		return pricing.Table{}, errors.New("catalog: cached source not configured")
	}
	key := cacheKey(sku)
	var cached pricing.Table
	if ok, err := c.Cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}
	table, err := c.Inner.PricingTable(ctx, sku)
	if err != nil {
		return pricing.Table{}, err
	}
	_ = c.Cache.SetJSON(ctx, key, table)
	return table, nil
}

func cacheKey(sku string) string {
	return "pricing:table:" + normaliseSKU(sku)
}
