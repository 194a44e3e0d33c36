package reports

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
	"bitbucket.org/mmdatafocus/bizmanager_backend/models"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"github.com/shopspring/decimal"
)

type AdminOverviewResponse struct {
	TotalRevenue         decimal.Decimal       `json:"total_revenue"`
	TotalExpenses        decimal.Decimal       `json:"total_expenses"`
	NetProfit            decimal.Decimal       `json:"net_profit"`
	TotalServices        int                   `json:"total_services"`
	BusinessCount        int                   `json:"business_count"`
	EmployeeCount        int                   `json:"employee_count"`
	BusinessDistribution []DistributionSlice     `json:"business_distribution"`
	TypeDistribution     []TypeDistributionSlice `json:"type_distribution"`
	TopEmployees         []EmployeeRanking       `json:"top_employees"`
	RecentSales          []RecentSaleEntry       `json:"recent_sales"`
	MonthlyRevenue       []MonthlyRevenuePoint   `json:"monthly_revenue"`
}

type BusinessDetailResponse struct {
	Business       *models.Business      `json:"business"`
	TotalRevenue   decimal.Decimal       `json:"total_revenue"`
	TotalExpenses  decimal.Decimal       `json:"total_expenses"`
	NetProfit      decimal.Decimal       `json:"net_profit"`
	TotalServices  int                   `json:"total_services"`
	Employees      []*models.Employee    `json:"employees"`
	TopEmployees   []EmployeeRanking     `json:"top_employees"`
	RecentSales    []RecentSaleEntry     `json:"recent_sales"`
	MonthlyRevenue []MonthlyRevenuePoint `json:"monthly_revenue"`
}

func loadAdminData(ctx context.Context, from *time.Time, to *time.Time) ([]*models.Business, []*models.Employee, []*models.DailySale, []*models.Expense, error) {
	businesses, err := models.GetBusinesses(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	businessIds := make([]string, len(businesses))
	for i, b := range businesses {
		businessIds[i] = b.ID
	}

	var employees []*models.Employee
	if len(businessIds) > 0 {
		db := config.GetDB()
		if err := db.WithContext(ctx).Where("business_id IN ?", businessIds).Find(&employees).Error; err != nil {
			return nil, nil, nil, nil, err
		}
	}

	sales, err := models.GetSalesByBusinesses(ctx, businessIds, from, to)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	expenses, err := models.GetExpensesByBusinesses(ctx, businessIds, from, to)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return businesses, employees, sales, expenses, nil
}

// GetAdminOverview aggregates all of the calling admin's businesses. The
// monthly series covers the last six calendar months.
func GetAdminOverview(ctx context.Context) (*AdminOverviewResponse, error) {
	businesses, employees, sales, expenses, err := loadAdminData(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	seriesFrom := now.AddDate(0, -5, 0)

	return &AdminOverviewResponse{
		TotalRevenue:         TotalRevenue(sales),
		TotalExpenses:        TotalExpenses(expenses),
		NetProfit:            NetProfit(sales, expenses),
		TotalServices:        TotalServices(sales),
		BusinessCount:        len(businesses),
		EmployeeCount:        len(employees),
		BusinessDistribution: BusinessDistribution(businesses, sales),
		TypeDistribution:     BusinessTypeDistribution(businesses),
		TopEmployees:         TopEmployees(employees, businesses, sales, 5),
		RecentSales:          RecentSales(sales, businesses, employees, 10),
		MonthlyRevenue:       MonthlyRevenueSeries(sales, expenses, seriesFrom, now),
	}, nil
}

// GetBusinessDetail aggregates one business owned by the calling admin.
func GetBusinessDetail(ctx context.Context, businessId string) (*BusinessDetailResponse, error) {
	business, err := models.GetBusiness(ctx, businessId)
	if err != nil {
		return nil, err
	}
	employees, err := models.GetEmployeesByBusiness(ctx, businessId)
	if err != nil {
		return nil, err
	}

	businessIds := []string{businessId}
	sales, err := models.GetSalesByBusinesses(ctx, businessIds, nil, nil)
	if err != nil {
		return nil, err
	}
	expenses, err := models.GetExpensesByBusinesses(ctx, businessIds, nil, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	seriesFrom := now.AddDate(0, -5, 0)
	businesses := []*models.Business{business}

	return &BusinessDetailResponse{
		Business:       business,
		TotalRevenue:   TotalRevenue(sales),
		TotalExpenses:  TotalExpenses(expenses),
		NetProfit:      NetProfit(sales, expenses),
		TotalServices:  TotalServices(sales),
		Employees:      employees,
		TopEmployees:   TopEmployees(employees, businesses, sales, 5),
		RecentSales:    RecentSales(sales, businesses, employees, 10),
		MonthlyRevenue: MonthlyRevenueSeries(sales, expenses, seriesFrom, now),
	}, nil
}

type EmployeeHomeResponse struct {
	Employee          *models.Employee          `json:"employee"`
	BusinessName      string                    `json:"business_name"`
	TodaySale         *models.DailySale         `json:"today_sale"`
	RecentSales       []*models.DailySale       `json:"recent_sales"`
	RecentExpenses    []*models.Expense         `json:"recent_expenses"`
	MonthRevenue      decimal.Decimal           `json:"month_revenue"`
	PendingCommission *models.MonthlyCommission `json:"pending_commission"`
}

// GetEmployeeHome builds the employee's landing view: today's submission,
// recent history, the running month's revenue and any pending commission.
func GetEmployeeHome(ctx context.Context) (*EmployeeHomeResponse, error) {
	employeeId, ok := utils.GetEmployeeIdFromContext(ctx)
	if !ok || employeeId == 0 {
		return nil, utils.NewAuthError("employee session required")
	}
	employee, err := models.GetEmployee(ctx, employeeId)
	if err != nil {
		return nil, err
	}

	todaySale, err := models.GetTodaySale(ctx)
	if err != nil {
		return nil, err
	}
	recentSales, err := models.GetSalesByEmployee(ctx, 20)
	if err != nil {
		return nil, err
	}
	recentExpenses, err := models.GetExpensesByEmployee(ctx, 10)
	if err != nil {
		return nil, err
	}

	// Sum the running month from its own range query; the recent list is
	// capped and can miss early days of a busy month.
	monthKey := utils.MonthKey(time.Now().UTC())
	monthFrom, monthTo, err := utils.MonthRange(monthKey)
	if err != nil {
		return nil, err
	}
	monthSales, err := models.GetSalesByEmployeeBetween(ctx, monthFrom, monthTo)
	if err != nil {
		return nil, err
	}
	monthRevenue := TotalRevenue(monthSales)

	pendingCommission, err := models.GetPendingCommission(ctx, employeeId, monthKey)
	if err != nil {
		return nil, err
	}

	businessName := ""
	db := config.GetDB()
	var business models.Business
	if err := db.WithContext(ctx).Where("id = ?", employee.BusinessId).Take(&business).Error; err == nil {
		businessName = business.Name
	}

	return &EmployeeHomeResponse{
		Employee:          employee,
		BusinessName:      businessName,
		TodaySale:         todaySale,
		RecentSales:       recentSales,
		RecentExpenses:    recentExpenses,
		MonthRevenue:      monthRevenue,
		PendingCommission: pendingCommission,
	}, nil
}
