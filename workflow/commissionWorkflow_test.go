package workflow

import (
	"testing"

	"bitbucket.org/mmdatafocus/bizmanager_backend/models"
	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestCommissionForEmployee_OnlyConfirmedSalesCount(t *testing.T) {
	sales := []*models.DailySale{
		{TotalSales: decimal.NewFromInt(100), Status: models.SaleStatusConfirmed},
		{TotalSales: decimal.NewFromInt(250), Status: models.SaleStatusPending},
		{TotalSales: decimal.NewFromInt(300), Status: models.SaleStatusConfirmed},
	}

	got := CommissionForEmployee(sales, dec(t, "10"))
	if !got.Equal(dec(t, "40.00")) {
		t.Fatalf("commission = %s, want 40.00 (pending sales must not count)", got)
	}
}

func TestCommissionForEmployee_RoundsToCents(t *testing.T) {
	sales := []*models.DailySale{
		{TotalSales: dec(t, "99.99"), Status: models.SaleStatusConfirmed},
	}

	// 99.99 * 7.5% = 7.49925, rounded to 7.50
	got := CommissionForEmployee(sales, dec(t, "7.5"))
	if !got.Equal(dec(t, "7.50")) {
		t.Fatalf("commission = %s, want 7.50", got)
	}
}

func TestCommissionForEmployee_ZeroRateAndNoSales(t *testing.T) {
	if got := CommissionForEmployee(nil, dec(t, "15")); !got.IsZero() {
		t.Errorf("no sales should accrue nothing, got %s", got)
	}

	sales := []*models.DailySale{
		{TotalSales: decimal.NewFromInt(500), Status: models.SaleStatusConfirmed},
	}
	if got := CommissionForEmployee(sales, decimal.Zero); !got.IsZero() {
		t.Errorf("zero rate should accrue nothing, got %s", got)
	}
}
