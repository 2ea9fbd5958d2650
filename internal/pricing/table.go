package pricing

import "github.com/shopspring/decimal"

// Role identifies the buyer segment used for base price resolution.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleBusiness  Role = "business"
	RoleAffiliate Role = "affiliate"
	RoleRetailer  Role = "retailer"
	RoleSupplier  Role = "supplier"
	RoleAdmin     Role = "admin"
)

// Grade is the sub-tier within the retailer role.
type Grade string

const (
	GradeGold    Grade = "gold"
	GradePremium Grade = "premium"
	GradeVIP     Grade = "vip"
)

// RetailerPrices holds the per-grade retailer price points.
type RetailerPrices struct {
	Gold    decimal.Decimal `json:"gold"`
	Premium decimal.Decimal `json:"premium"`
	VIP     decimal.Decimal `json:"vip"`
}

// Table is the per-product price set keyed by buyer segment. All six price
// points share a single currency.
type Table struct {
	Customer  decimal.Decimal `json:"customer"`
	Business  decimal.Decimal `json:"business"`
	Affiliate decimal.Decimal `json:"affiliate"`
	Retailer  RetailerPrices  `json:"retailer"`
	Currency  string          `json:"currency,omitempty"`
}

// ResolveRolePrice maps a buyer segment to its base unit price. Supplier and
// admin resolve to the lowest of the six concrete price points (the best
// internal price, not a missing-data fallback); an unrecognised role resolves
// to the customer price. A missing retailer grade defaults to gold. Negative
// table values are treated as zero. Never errors.
func ResolveRolePrice(t Table, role Role, grade Grade) decimal.Decimal {
	switch role {
	case RoleCustomer:
		return clampAmount(t.Customer)
	case RoleBusiness:
		return clampAmount(t.Business)
	case RoleAffiliate:
		return clampAmount(t.Affiliate)
	case RoleRetailer:
		return clampAmount(retailerPrice(t.Retailer, grade))
	case RoleSupplier, RoleAdmin:
		return clampAmount(decimal.Min(
			t.Customer,
			t.Business,
			t.Affiliate,
			t.Retailer.Gold,
			t.Retailer.Premium,
			t.Retailer.VIP,
		))
	default:
		return clampAmount(t.Customer)
	}
}

func retailerPrice(p RetailerPrices, grade Grade) decimal.Decimal {
	switch grade {
	case GradePremium:
		return p.Premium
	case GradeVIP:
		return p.VIP
	default:
		return p.Gold
	}
}

// RoleLabel returns a human readable name for a role/grade pair, used by
// discount descriptors.
func RoleLabel(role Role, grade Grade) string {
	if role != RoleRetailer {
		return string(role)
	}
	if grade == "" {
		grade = GradeGold
	}
	return string(role) + " " + string(grade)
}
