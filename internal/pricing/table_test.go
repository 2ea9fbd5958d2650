package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", v, err)
	}
	return d
}

func testTable(t *testing.T) Table {
	t.Helper()
	return Table{
		Customer:  dec(t, "10000"),
		Business:  dec(t, "8000"),
		Affiliate: dec(t, "8500"),
		Retailer: RetailerPrices{
			Gold:    dec(t, "7500"),
			Premium: dec(t, "7000"),
			VIP:     dec(t, "6500"),
		},
		Currency: "KRW",
	}
}

func TestResolveRolePriceBySegment(t *testing.T) {
	table := testTable(t)
	cases := []struct {
		role  Role
		grade Grade
		want  string
	}{
		{RoleCustomer, "", "10000"},
		{RoleBusiness, "", "8000"},
		{RoleAffiliate, "", "8500"},
		{RoleRetailer, GradeGold, "7500"},
		{RoleRetailer, GradePremium, "7000"},
		{RoleRetailer, GradeVIP, "6500"},
	}
	for _, tc := range cases {
		got := ResolveRolePrice(table, tc.role, tc.grade)
		if !got.Equal(dec(t, tc.want)) {
			t.Fatalf("role %s/%s: expected %s, got %s", tc.role, tc.grade, tc.want, got)
		}
	}
}

func TestResolveRolePriceRetailerDefaultsToGold(t *testing.T) {
	table := testTable(t)
	got := ResolveRolePrice(table, RoleRetailer, "")
	if !got.Equal(dec(t, "7500")) {
		t.Fatalf("expected gold price 7500 for missing grade, got %s", got)
	}
}

func TestResolveRolePriceInternalRolesTakeMinimum(t *testing.T) {
	table := testTable(t)
	for _, role := range []Role{RoleSupplier, RoleAdmin} {
		got := ResolveRolePrice(table, role, "")
		if !got.Equal(dec(t, "6500")) {
			t.Fatalf("role %s: expected best internal price 6500, got %s", role, got)
		}
	}
}

func TestResolveRolePriceAdminNeverAboveAnySegment(t *testing.T) {
	table := testTable(t)
	admin := ResolveRolePrice(table, RoleAdmin, "")
	others := []decimal.Decimal{
		ResolveRolePrice(table, RoleCustomer, ""),
		ResolveRolePrice(table, RoleBusiness, ""),
		ResolveRolePrice(table, RoleAffiliate, ""),
		ResolveRolePrice(table, RoleRetailer, GradeGold),
		ResolveRolePrice(table, RoleRetailer, GradePremium),
		ResolveRolePrice(table, RoleRetailer, GradeVIP),
	}
	for _, price := range others {
		if admin.GreaterThan(price) {
			t.Fatalf("admin price %s exceeds segment price %s", admin, price)
		}
	}
}

func TestResolveRolePriceUnknownRoleFallsBackToCustomer(t *testing.T) {
	table := testTable(t)
	got := ResolveRolePrice(table, Role("reseller"), "")
	if !got.Equal(table.Customer) {
		t.Fatalf("expected customer fallback %s, got %s", table.Customer, got)
	}
}

func TestResolveRolePriceClampsNegativeValues(t *testing.T) {
	table := testTable(t)
	table.Business = dec(t, "-50")
	got := ResolveRolePrice(table, RoleBusiness, "")
	if !got.IsZero() {
		t.Fatalf("expected negative price clamped to zero, got %s", got)
	}
}
