package reports

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/models"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("bizmanager/reports")

type RangedReportResponse struct {
	RangeType            string                `json:"range_type"`
	From                 time.Time             `json:"from"`
	To                   time.Time             `json:"to"`
	TotalRevenue         decimal.Decimal       `json:"total_revenue"`
	TotalExpenses        decimal.Decimal       `json:"total_expenses"`
	NetProfit            decimal.Decimal       `json:"net_profit"`
	TotalServices        int                   `json:"total_services"`
	BusinessDistribution []DistributionSlice   `json:"business_distribution"`
	TopEmployees         []EmployeeRanking     `json:"top_employees"`
	RecentSales          []RecentSaleEntry     `json:"recent_sales"`
	MonthlyRevenue       []MonthlyRevenuePoint `json:"monthly_revenue"`
	ExpensesByCategory   []CategoryTotal       `json:"expenses_by_category"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpensesByCategory totals expenses per category in the fixed category
// order, zero-filling empty categories.
func ExpensesByCategory(expenses []*models.Expense) []CategoryTotal {
	byCategory := make(map[models.ExpenseCategory]decimal.Decimal)
	for _, e := range expenses {
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}

	categories := []models.ExpenseCategory{
		models.ExpenseCategorySupplies,
		models.ExpenseCategoryEquipment,
		models.ExpenseCategoryMarketing,
		models.ExpenseCategoryTravel,
		models.ExpenseCategoryOther,
	}
	result := make([]CategoryTotal, 0, len(categories))
	for _, c := range categories {
		result = append(result, CategoryTotal{Category: string(c), Amount: byCategory[c]})
	}
	return result
}

// GetRangedReport aggregates the calling admin's businesses over a daily,
// weekly or monthly window.
func GetRangedReport(ctx context.Context, rangeType string) (*RangedReportResponse, error) {
	ctx, span := tracer.Start(ctx, "GetRangedReport",
		trace.WithAttributes(attribute.String("report.range", rangeType)))
	defer span.End()

	from, to, err := utils.GetReportDateRange(rangeType, time.Now().UTC())
	if err != nil {
		return nil, utils.NewValidationError(err.Error())
	}

	businesses, employees, sales, expenses, err := loadAdminData(ctx, &from, &to)
	if err != nil {
		return nil, err
	}

	return &RangedReportResponse{
		RangeType:            rangeType,
		From:                 from,
		To:                   to,
		TotalRevenue:         TotalRevenue(sales),
		TotalExpenses:        TotalExpenses(expenses),
		NetProfit:            NetProfit(sales, expenses),
		TotalServices:        TotalServices(sales),
		BusinessDistribution: BusinessDistribution(businesses, sales),
		TopEmployees:         TopEmployees(employees, businesses, sales, 5),
		RecentSales:          RecentSales(sales, businesses, employees, 10),
		MonthlyRevenue:       MonthlyRevenueSeries(sales, expenses, from, to.AddDate(0, 0, -1)),
		ExpensesByCategory:   ExpensesByCategory(expenses),
	}, nil
}
