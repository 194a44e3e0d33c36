package reports

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/models"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testBusinesses() []*models.Business {
	return []*models.Business{
		{ID: "biz-1", Name: "Fade Factory", Type: models.BusinessTypeBarbershop},
		{ID: "biz-2", Name: "Corner Mart", Type: models.BusinessTypeRetail},
		{ID: "biz-3", Name: "Idle Shop", Type: models.BusinessTypeOther},
	}
}

func TestTotalRevenue_EmptyAndOrderInvariant(t *testing.T) {
	if got := TotalRevenue(nil); !got.IsZero() {
		t.Errorf("no sales should total zero, got %s", got)
	}
	if got := TotalRevenue([]*models.DailySale{}); !got.IsZero() {
		t.Errorf("empty slice should total zero, got %s", got)
	}

	sales := []*models.DailySale{
		{TotalSales: dec("100.50")},
		{TotalSales: dec("0.00")},
		{TotalSales: dec("49.50")},
	}
	reversed := []*models.DailySale{sales[2], sales[1], sales[0]}
	if !TotalRevenue(sales).Equal(dec("150.00")) {
		t.Errorf("total = %s, want 150.00", TotalRevenue(sales))
	}
	if !TotalRevenue(sales).Equal(TotalRevenue(reversed)) {
		t.Errorf("total must not depend on input order")
	}
}

func TestBusinessDistribution_PercentagesSumToHundred(t *testing.T) {
	businesses := testBusinesses()
	sales := []*models.DailySale{
		{BusinessId: "biz-1", TotalSales: dec("300.00")},
		{BusinessId: "biz-2", TotalSales: dec("100.00")},
		{BusinessId: "biz-1", TotalSales: dec("100.00")},
	}

	dist := BusinessDistribution(businesses, sales)
	if len(dist) != 3 {
		t.Fatalf("expected every business in the distribution, got %d slices", len(dist))
	}

	sum := decimal.Zero
	for _, d := range dist {
		sum = sum.Add(d.Percent)
	}
	if !sum.Equal(dec("100")) {
		t.Fatalf("percentages should sum to 100, got %s", sum)
	}

	if !dist[0].Percent.Equal(dec("80")) {
		t.Errorf("biz-1 percent = %s, want 80", dist[0].Percent)
	}
	if !dist[2].Revenue.IsZero() || !dist[2].Percent.IsZero() {
		t.Errorf("idle business should carry zero revenue and percent, got %s / %s", dist[2].Revenue, dist[2].Percent)
	}
}

func TestBusinessDistribution_ZeroGrandTotal(t *testing.T) {
	dist := BusinessDistribution(testBusinesses(), nil)
	for _, d := range dist {
		if !d.Percent.IsZero() {
			t.Fatalf("percent for %s should be zero with no revenue, got %s", d.Name, d.Percent)
		}
	}
}

func TestBusinessDistribution_Colors(t *testing.T) {
	dist := BusinessDistribution(testBusinesses(), nil)
	if dist[0].Color != "#3b82f6" {
		t.Errorf("barbershop color = %s, want #3b82f6", dist[0].Color)
	}
	if dist[1].Color != "#8b5cf6" {
		t.Errorf("retail color = %s, want #8b5cf6", dist[1].Color)
	}
	if BusinessTypeColor("no-such-type") != "#64748b" {
		t.Errorf("unknown type should fall back to the Other color")
	}
}

func TestBusinessTypeDistribution(t *testing.T) {
	businesses := []*models.Business{
		{ID: "b1", Type: models.BusinessTypeRetail},
		{ID: "b2", Type: models.BusinessTypeBarbershop},
		{ID: "b3", Type: models.BusinessTypeRetail},
		{ID: "b4", Type: ""},
	}

	dist := BusinessTypeDistribution(businesses)
	if len(dist) != 3 {
		t.Fatalf("expected 3 type slices, got %d", len(dist))
	}
	// First-encountered order.
	if dist[0].Type != "Retail" || dist[1].Type != "Barbershop" || dist[2].Type != "Other" {
		t.Fatalf("type order = %s, %s, %s", dist[0].Type, dist[1].Type, dist[2].Type)
	}
	if dist[0].Count != 2 || !dist[0].Percent.Equal(dec("50")) {
		t.Errorf("retail slice = count %d percent %s, want 2 / 50", dist[0].Count, dist[0].Percent)
	}
	// Blank type lands in Other with the Other color.
	if dist[2].Count != 1 || dist[2].Color != "#64748b" {
		t.Errorf("blank-type slice = count %d color %s", dist[2].Count, dist[2].Color)
	}

	if got := BusinessTypeDistribution(nil); len(got) != 0 {
		t.Errorf("no businesses should yield no slices, got %d", len(got))
	}
}

func TestTopEmployees_UnknownEmployeeBucket(t *testing.T) {
	businesses := testBusinesses()
	employees := []*models.Employee{{ID: 1, BusinessId: "biz-1", Name: "Aye"}}
	sales := []*models.DailySale{
		{EmployeeId: 1, BusinessId: "biz-1", TotalSales: dec("100.00")},
		{EmployeeId: 99, BusinessId: "biz-1", TotalSales: dec("700.00"), ServicesCount: 2},
	}

	top := TopEmployees(employees, businesses, sales, 5)
	if len(top) != 2 {
		t.Fatalf("expected the unknown bucket to appear, got %d rankings", len(top))
	}
	if top[0].Name != "Unknown" || !top[0].Revenue.Equal(dec("700.00")) {
		t.Errorf("unknown bucket = %q / %s, want Unknown / 700.00", top[0].Name, top[0].Revenue)
	}
}

func TestTopEmployees_OrderAndLimit(t *testing.T) {
	businesses := testBusinesses()
	employees := []*models.Employee{
		{ID: 1, BusinessId: "biz-1", Name: "Aye"},
		{ID: 2, BusinessId: "biz-1", Name: "Bo"},
		{ID: 3, BusinessId: "biz-2", Name: "Chit"},
		{ID: 4, BusinessId: "biz-2", Name: "Dway"},
	}
	sales := []*models.DailySale{
		{EmployeeId: 2, BusinessId: "biz-1", TotalSales: dec("500.00"), ServicesCount: 5},
		{EmployeeId: 1, BusinessId: "biz-1", TotalSales: dec("200.00"), ServicesCount: 2},
		{EmployeeId: 3, BusinessId: "biz-2", TotalSales: dec("200.00"), ServicesCount: 1},
	}

	top := TopEmployees(employees, businesses, sales, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 rankings, got %d", len(top))
	}
	if top[0].EmployeeId != 2 {
		t.Errorf("top earner should be employee 2, got %d", top[0].EmployeeId)
	}
	// Tie between employees 1 and 3: stable sort keeps input order.
	if top[1].EmployeeId != 1 || top[2].EmployeeId != 3 {
		t.Errorf("tied employees should keep input order, got %d then %d", top[1].EmployeeId, top[2].EmployeeId)
	}
	if top[0].BusinessName != "Fade Factory" {
		t.Errorf("business name not resolved, got %q", top[0].BusinessName)
	}

	// n <= 0 falls back to 5.
	all := TopEmployees(employees, businesses, sales, 0)
	if len(all) != 4 {
		t.Errorf("default limit should include all 4 employees, got %d", len(all))
	}
}

func TestRecentSales_LimitAndNameResolution(t *testing.T) {
	businesses := testBusinesses()
	employees := []*models.Employee{{ID: 7, BusinessId: "biz-1", Name: "Aye"}}

	var sales []*models.DailySale
	for i := 0; i < 15; i++ {
		sales = append(sales, &models.DailySale{
			ID:         100 - i,
			BusinessId: "biz-1",
			EmployeeId: 7,
			SaleDate:   day("2026-03-15").AddDate(0, 0, -i),
			TotalSales: dec("10.00"),
			Status:     models.SaleStatusPending,
		})
	}

	recent := RecentSales(sales, businesses, employees, 10)
	if len(recent) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(recent))
	}
	if recent[0].SaleId != 100 {
		t.Errorf("input order should be preserved, first entry = %d", recent[0].SaleId)
	}
	if recent[0].BusinessName != "Fade Factory" || recent[0].EmployeeName != "Aye" {
		t.Errorf("names not resolved: %q / %q", recent[0].BusinessName, recent[0].EmployeeName)
	}
}

func TestMonthlyRevenueSeries_ZeroFills(t *testing.T) {
	sales := []*models.DailySale{
		{SaleDate: day("2026-01-10"), TotalSales: dec("100.00")},
		{SaleDate: day("2026-03-02"), TotalSales: dec("50.00")},
	}
	expenses := []*models.Expense{
		{ExpenseDate: day("2026-02-20"), Amount: dec("30.00")},
	}

	series := MonthlyRevenueSeries(sales, expenses, day("2026-01-01"), day("2026-03-31"))
	if len(series) != 3 {
		t.Fatalf("expected 3 monthly buckets, got %d", len(series))
	}
	if series[0].Month != "2026-01" || series[1].Month != "2026-02" || series[2].Month != "2026-03" {
		t.Fatalf("months out of order: %v", []string{series[0].Month, series[1].Month, series[2].Month})
	}
	if !series[1].Revenue.IsZero() {
		t.Errorf("february revenue should be zero-filled, got %s", series[1].Revenue)
	}
	if !series[1].Expenses.Equal(dec("30.00")) {
		t.Errorf("february expenses = %s, want 30.00", series[1].Expenses)
	}
	if !series[2].Revenue.Equal(dec("50.00")) {
		t.Errorf("march revenue = %s, want 50.00", series[2].Revenue)
	}
}

func TestMonthlyRevenueSeries_InvertedRange(t *testing.T) {
	series := MonthlyRevenueSeries(nil, nil, day("2026-03-01"), day("2026-01-01"))
	if len(series) != 0 {
		t.Fatalf("inverted range should produce an empty series, got %d points", len(series))
	}
}

func TestExpensesByCategory_FixedOrderZeroFilled(t *testing.T) {
	expenses := []*models.Expense{
		{Category: models.ExpenseCategoryTravel, Amount: dec("25.00")},
		{Category: models.ExpenseCategorySupplies, Amount: dec("10.00")},
		{Category: models.ExpenseCategoryTravel, Amount: dec("5.00")},
	}

	totals := ExpensesByCategory(expenses)
	if len(totals) != 5 {
		t.Fatalf("expected all 5 categories, got %d", len(totals))
	}
	want := []string{"Supplies", "Equipment", "Marketing", "Travel", "Other"}
	for i, w := range want {
		if totals[i].Category != w {
			t.Fatalf("category order mismatch at %d: got %s, want %s", i, totals[i].Category, w)
		}
	}
	if !totals[3].Amount.Equal(dec("30.00")) {
		t.Errorf("travel total = %s, want 30.00", totals[3].Amount)
	}
	if !totals[1].Amount.IsZero() {
		t.Errorf("equipment should be zero-filled, got %s", totals[1].Amount)
	}
}

func TestNetProfit(t *testing.T) {
	sales := []*models.DailySale{
		{TotalSales: dec("100.00"), ServicesCount: 3},
		{TotalSales: dec("40.50"), ServicesCount: 1},
	}
	expenses := []*models.Expense{{Amount: dec("60.25")}}

	if got := NetProfit(sales, expenses); !got.Equal(dec("80.25")) {
		t.Errorf("net profit = %s, want 80.25", got)
	}
	if got := TotalServices(sales); got != 4 {
		t.Errorf("total services = %d, want 4", got)
	}
}
