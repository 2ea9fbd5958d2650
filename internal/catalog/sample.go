package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/pricing-engine/internal/pricing"
)

// SampleTables returns a small built-in catalog so the service can boot and
// serve quotes before a real table file is provisioned. The seeder writes
// the same data to disk as a starting template.
func SampleTables() map[string]pricing.Table {
	table := func(customer, business, affiliate, gold, premium, vip int64) pricing.Table {
		return pricing.Table{
			Customer:  decimal.NewFromInt(customer),
			Business:  decimal.NewFromInt(business),
			Affiliate: decimal.NewFromInt(affiliate),
			Retailer: pricing.RetailerPrices{
				Gold:    decimal.NewFromInt(gold),
				Premium: decimal.NewFromInt(premium),
				VIP:     decimal.NewFromInt(vip),
			},
			Currency: "KRW",
		}
	}
	return map[string]pricing.Table{
		"tumbler-500":   table(24000, 19200, 20400, 18000, 16800, 15600),
		"mug-classic":   table(12000, 9600, 10200, 9000, 8400, 7800),
		"bottle-steel":  table(32000, 25600, 27200, 24000, 22400, 20800),
		"lunchbox-duo":  table(18500, 14800, 15700, 13900, 13000, 12000),
		"thermos-1l":    table(45000, 36000, 38250, 33750, 31500, 29250),
		"cup-set-gift":  table(56000, 44800, 47600, 42000, 39200, 36400),
		"straw-silicon": table(3500, 2800, 2975, 2625, 2450, 2275),
	}
}
