package workflow

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
	"bitbucket.org/mmdatafocus/bizmanager_backend/models"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CommissionForEmployee computes the commission accrued from a set of sales
// at the given rate (percent). Only confirmed sales count.
func CommissionForEmployee(sales []*models.DailySale, rate decimal.Decimal) decimal.Decimal {
	confirmed := decimal.Zero
	for _, s := range sales {
		if s.Status == models.SaleStatusConfirmed {
			confirmed = confirmed.Add(s.TotalSales)
		}
	}
	return confirmed.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
}

// RunMonthlyCommission recomputes pending commissions for every business for
// the given month ("2006-01"). Each business is processed under its Redis
// lock so a concurrent run cannot interleave writes for the same tenant.
func RunMonthlyCommission(ctx context.Context, month string) error {
	logger := config.GetLogger()

	from, to, err := utils.MonthRange(month)
	if err != nil {
		return err
	}

	// worker context, not a tenant session
	ctx = utils.SetSkipTenantScopeInContext(ctx, true)

	db := config.GetDB()
	var businesses []*models.Business
	if err := db.WithContext(ctx).Find(&businesses).Error; err != nil {
		return err
	}

	for _, business := range businesses {
		if err := runCommissionForBusiness(ctx, db, business, month, from, to); err != nil {
			config.LogError(logger, moduleName, "RunMonthlyCommission", "business commission run failed", business.ID, err)
			// keep going, one broken tenant must not stall the rest
			continue
		}
		logger.WithFields(logrus.Fields{
			"business_id": business.ID,
			"month":       month,
		}).Info("commission run completed")
	}
	return nil
}

func runCommissionForBusiness(ctx context.Context, db *gorm.DB, business *models.Business, month string, from, to time.Time) error {
	lock, err := utils.BusinessLock(ctx, business.ID, "CommissionLock", moduleName, "runCommissionForBusiness")
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release(ctx) }()

	var employees []*models.Employee
	if err := db.WithContext(ctx).Where("business_id = ?", business.ID).Find(&employees).Error; err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, employee := range employees {
			var sales []*models.DailySale
			err := tx.
				Where("employee_id = ? AND sale_date >= ? AND sale_date < ?", employee.ID, from, to).
				Find(&sales).Error
			if err != nil {
				return err
			}

			amount := CommissionForEmployee(sales, employee.CommissionRate)
			if err := models.UpsertCommissionForMonth(tx, business.ID, employee.ID, month, amount); err != nil {
				return err
			}
		}
		return nil
	})
}
