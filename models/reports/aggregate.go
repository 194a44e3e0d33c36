package reports

import (
	"sort"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/models"
	"github.com/shopspring/decimal"
)

// Pure aggregation over already-loaded rows. Nothing in this file touches the
// database; the report endpoints load the slices and hand them over.

// Chart colors keyed by business type.
var businessTypeColors = map[models.BusinessType]string{
	models.BusinessTypeBarbershop: "#3b82f6",
	models.BusinessTypeRetail:     "#8b5cf6",
	models.BusinessTypeRestaurant: "#ec4899",
	models.BusinessTypeService:    "#14b8a6",
	models.BusinessTypeOther:      "#64748b",
}

func BusinessTypeColor(t models.BusinessType) string {
	if c, ok := businessTypeColors[t]; ok {
		return c
	}
	return businessTypeColors[models.BusinessTypeOther]
}

type TypeDistributionSlice struct {
	Type    string          `json:"type"`
	Count   int             `json:"count"`
	Percent decimal.Decimal `json:"percent"`
	Color   string          `json:"color"`
}

type DistributionSlice struct {
	BusinessId string          `json:"business_id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Color      string          `json:"color"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percent    decimal.Decimal `json:"percent"`
}

type EmployeeRanking struct {
	EmployeeId   int             `json:"employee_id"`
	Name         string          `json:"name"`
	BusinessId   string          `json:"business_id"`
	BusinessName string          `json:"business_name"`
	Revenue      decimal.Decimal `json:"revenue"`
	Services     int             `json:"services"`
}

type RecentSaleEntry struct {
	SaleId       int             `json:"sale_id"`
	BusinessId   string          `json:"business_id"`
	BusinessName string          `json:"business_name"`
	EmployeeId   int             `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	SaleDate     time.Time       `json:"sale_date"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	Services     int             `json:"services"`
	Status       string          `json:"status"`
}

type MonthlyRevenuePoint struct {
	Month    string          `json:"month"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
}

func TotalRevenue(sales []*models.DailySale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.TotalSales)
	}
	return total
}

func TotalExpenses(expenses []*models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

func NetProfit(sales []*models.DailySale, expenses []*models.Expense) decimal.Decimal {
	return TotalRevenue(sales).Sub(TotalExpenses(expenses))
}

func TotalServices(sales []*models.DailySale) int {
	total := 0
	for _, s := range sales {
		total += s.ServicesCount
	}
	return total
}

// BusinessTypeDistribution counts businesses per type for the type pie chart.
// A blank type counts as Other; types appear in first-encountered order and
// percentages are zero when there are no businesses.
func BusinessTypeDistribution(businesses []*models.Business) []TypeDistributionSlice {
	countByType := make(map[models.BusinessType]int)
	var order []models.BusinessType
	for _, b := range businesses {
		t := b.Type
		if t == "" {
			t = models.BusinessTypeOther
		}
		if _, seen := countByType[t]; !seen {
			order = append(order, t)
		}
		countByType[t]++
	}

	total := len(businesses)
	hundred := decimal.NewFromInt(100)
	result := make([]TypeDistributionSlice, 0, len(order))
	for _, t := range order {
		count := countByType[t]
		percent := decimal.Zero
		if total > 0 {
			percent = decimal.NewFromInt(int64(count)).Mul(hundred).DivRound(decimal.NewFromInt(int64(total)), 2)
		}
		result = append(result, TypeDistributionSlice{
			Type:    string(t),
			Count:   count,
			Percent: percent,
			Color:   BusinessTypeColor(t),
		})
	}
	return result
}

// BusinessDistribution splits revenue across businesses for the pie chart.
// Every business appears even with zero revenue; percentages are zero when
// the grand total is zero. Order follows the input businesses.
func BusinessDistribution(businesses []*models.Business, sales []*models.DailySale) []DistributionSlice {
	revenueByBusiness := make(map[string]decimal.Decimal, len(businesses))
	for _, s := range sales {
		revenueByBusiness[s.BusinessId] = revenueByBusiness[s.BusinessId].Add(s.TotalSales)
	}

	grandTotal := decimal.Zero
	for _, b := range businesses {
		grandTotal = grandTotal.Add(revenueByBusiness[b.ID])
	}

	hundred := decimal.NewFromInt(100)
	result := make([]DistributionSlice, 0, len(businesses))
	for _, b := range businesses {
		revenue := revenueByBusiness[b.ID]
		percent := decimal.Zero
		if grandTotal.IsPositive() {
			percent = revenue.Mul(hundred).DivRound(grandTotal, 2)
		}
		result = append(result, DistributionSlice{
			BusinessId: b.ID,
			Name:       b.Name,
			Type:       string(b.Type),
			Color:      BusinessTypeColor(b.Type),
			Revenue:    revenue,
			Percent:    percent,
		})
	}
	return result
}

// TopEmployees ranks employees by revenue, highest first. Ties keep the input
// order of the employees slice (stable sort). n <= 0 defaults to 5.
func TopEmployees(employees []*models.Employee, businesses []*models.Business, sales []*models.DailySale, n int) []EmployeeRanking {
	if n <= 0 {
		n = 5
	}

	revenueByEmployee := make(map[int]decimal.Decimal, len(employees))
	servicesByEmployee := make(map[int]int, len(employees))
	for _, s := range sales {
		revenueByEmployee[s.EmployeeId] = revenueByEmployee[s.EmployeeId].Add(s.TotalSales)
		servicesByEmployee[s.EmployeeId] += s.ServicesCount
	}

	businessNames := make(map[string]string, len(businesses))
	for _, b := range businesses {
		businessNames[b.ID] = b.Name
	}

	rankings := make([]EmployeeRanking, 0, len(employees))
	known := make(map[int]bool, len(employees))
	for _, e := range employees {
		known[e.ID] = true
		rankings = append(rankings, EmployeeRanking{
			EmployeeId:   e.ID,
			Name:         e.Name,
			BusinessId:   e.BusinessId,
			BusinessName: businessNames[e.BusinessId],
			Revenue:      revenueByEmployee[e.ID],
			Services:     servicesByEmployee[e.ID],
		})
	}

	// Sales whose employee record is gone still carry revenue; bucket them
	// under a single Unknown entry rather than dropping them.
	unknownRevenue := decimal.Zero
	unknownServices := 0
	for _, s := range sales {
		if !known[s.EmployeeId] {
			unknownRevenue = unknownRevenue.Add(s.TotalSales)
			unknownServices += s.ServicesCount
		}
	}
	if unknownRevenue.IsPositive() || unknownServices > 0 {
		rankings = append(rankings, EmployeeRanking{
			Name:     "Unknown",
			Revenue:  unknownRevenue,
			Services: unknownServices,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Revenue.GreaterThan(rankings[j].Revenue)
	})

	if len(rankings) > n {
		rankings = rankings[:n]
	}
	return rankings
}

// RecentSales resolves the newest n sales into display entries. The sales
// slice is expected newest-first (the query orders it); order is preserved.
// n <= 0 defaults to 10.
func RecentSales(sales []*models.DailySale, businesses []*models.Business, employees []*models.Employee, n int) []RecentSaleEntry {
	if n <= 0 {
		n = 10
	}

	businessNames := make(map[string]string, len(businesses))
	for _, b := range businesses {
		businessNames[b.ID] = b.Name
	}
	employeeNames := make(map[int]string, len(employees))
	for _, e := range employees {
		employeeNames[e.ID] = e.Name
	}

	limit := n
	if len(sales) < limit {
		limit = len(sales)
	}
	result := make([]RecentSaleEntry, 0, limit)
	for _, s := range sales[:limit] {
		result = append(result, RecentSaleEntry{
			SaleId:       s.ID,
			BusinessId:   s.BusinessId,
			BusinessName: businessNames[s.BusinessId],
			EmployeeId:   s.EmployeeId,
			EmployeeName: employeeNames[s.EmployeeId],
			SaleDate:     s.SaleDate,
			TotalSales:   s.TotalSales,
			Services:     s.ServicesCount,
			Status:       string(s.Status),
		})
	}
	return result
}

// MonthlyRevenueSeries buckets revenue and expenses per calendar month from
// from to to inclusive, zero-filling months with no rows. Months are keyed as
// "2006-01" and returned in ascending order.
func MonthlyRevenueSeries(sales []*models.DailySale, expenses []*models.Expense, from time.Time, to time.Time) []MonthlyRevenuePoint {
	if to.Before(from) {
		return []MonthlyRevenuePoint{}
	}

	revenueByMonth := make(map[string]decimal.Decimal)
	for _, s := range sales {
		key := s.SaleDate.Format("2006-01")
		revenueByMonth[key] = revenueByMonth[key].Add(s.TotalSales)
	}
	expensesByMonth := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		key := e.ExpenseDate.Format("2006-01")
		expensesByMonth[key] = expensesByMonth[key].Add(e.Amount)
	}

	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)

	var series []MonthlyRevenuePoint
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		key := cursor.Format("2006-01")
		series = append(series, MonthlyRevenuePoint{
			Month:    key,
			Revenue:  revenueByMonth[key],
			Expenses: expensesByMonth[key],
		})
	}
	return series
}
