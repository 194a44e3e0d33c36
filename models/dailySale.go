package models

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailySale is one employee's sales submission for one calendar day. At most
// one row exists per (employee_id, sale_date); resubmitting the same day
// overwrites the numbers and resets the row to pending.
type DailySale struct {
	ID            int             `gorm:"primary_key" json:"id"`
	BusinessId    string          `gorm:"size:36;index;not null" json:"business_id"`
	EmployeeId    int             `gorm:"index;not null;index:uniq_sale_day,unique,priority:1" json:"employee_id"`
	SaleDate      time.Time       `gorm:"type:date;not null;index;index:uniq_sale_day,unique,priority:2" json:"sale_date"`
	TotalSales    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total_sales"`
	ServicesCount int             `gorm:"not null;default:0" json:"services_count"`
	Status        SaleStatus      `gorm:"type:enum('pending','confirmed');default:'pending';index" json:"status"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDailySale struct {
	SaleDate      string `json:"sale_date"`
	TotalSales    string `json:"total_sales" binding:"required"`
	ServicesCount int    `json:"services_count"`
}

// newPendingSale builds the row for a first submission. Submissions never
// start in any state but pending.
func newPendingSale(businessId string, employeeId int, saleDate time.Time, total decimal.Decimal, services int) DailySale {
	return DailySale{
		BusinessId:    businessId,
		EmployeeId:    employeeId,
		SaleDate:      saleDate,
		TotalSales:    total,
		ServicesCount: services,
		Status:        SaleStatusPending,
	}
}

// resubmissionUpdates overwrites an existing day's numbers and drops any
// earlier confirmation back to pending.
func resubmissionUpdates(total decimal.Decimal, services int) map[string]interface{} {
	return map[string]interface{}{
		"total_sales":    total,
		"services_count": services,
		"status":         SaleStatusPending,
	}
}

// CreateDailySale records the calling employee's sales for a day. A new
// submission always lands as pending, even when it replaces an earlier row
// for the same day.
func CreateDailySale(ctx context.Context, input *NewDailySale) (*DailySale, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.NewAuthError("employee session required")
	}
	employeeId, ok := utils.GetEmployeeIdFromContext(ctx)
	if !ok || employeeId == 0 {
		return nil, utils.NewAuthError("employee session required")
	}

	// validation surfaces before any write
	total, err := utils.ParseDecimal(input.TotalSales)
	if err != nil {
		return nil, utils.NewValidationError("invalid total sales amount")
	}
	if total.IsNegative() {
		return nil, utils.NewValidationError("total sales cannot be negative")
	}
	if input.ServicesCount < 0 {
		return nil, utils.NewValidationError("services count cannot be negative")
	}
	saleDate := time.Now().UTC().Truncate(24 * time.Hour)
	if input.SaleDate != "" {
		saleDate, err = utils.ParseDate(input.SaleDate)
		if err != nil {
			return nil, utils.NewValidationError("invalid sale date")
		}
	}

	db := config.GetDB()
	if err := utils.ValidateResourceId[Employee](ctx, businessId, employeeId); err != nil {
		return nil, utils.NewNotFoundError("employee not found")
	}

	var sale DailySale
	txErr := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing DailySale
		err := tx.Where("employee_id = ? AND sale_date = ?", employeeId, saleDate).Take(&existing).Error
		if err != nil && !utils.IsRecordMissing(err) {
			return err
		}
		if err == nil {
			existing.TotalSales = total
			existing.ServicesCount = input.ServicesCount
			existing.Status = SaleStatusPending
			if err := tx.Model(&DailySale{}).Where("id = ?", existing.ID).
				Updates(resubmissionUpdates(total, input.ServicesCount)).Error; err != nil {
				return err
			}
			sale = existing
		} else {
			sale = newPendingSale(businessId, employeeId, saleDate, total, input.ServicesCount)
			if err := tx.Create(&sale).Error; err != nil {
				return err
			}
		}

		description := fmt.Sprintf("Recorded sales of %s for %s", total.StringFixed(2), saleDate.Format(utils.DateLayout))
		if err := SaveActivity(tx, "CREATE", fmt.Sprint(sale.ID), "daily_sale", description, businessId); err != nil {
			return err
		}
		return PublishDashboardRecord(tx, businessId, sale.ID, DashboardReferenceTypeSale, DashboardMessageActionCreate, &sale)
	})
	if txErr != nil {
		return nil, txErr
	}
	return &sale, nil
}

// GetTodaySale returns the calling employee's submission for today, or nil
// when nothing has been recorded yet.
func GetTodaySale(ctx context.Context) (*DailySale, error) {
	employeeId, ok := utils.GetEmployeeIdFromContext(ctx)
	if !ok || employeeId == 0 {
		return nil, utils.NewAuthError("employee session required")
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	db := config.GetDB()
	var sale DailySale
	err := db.WithContext(ctx).
		Where("employee_id = ? AND sale_date = ?", employeeId, today).
		Take(&sale).Error
	if err != nil {
		if utils.IsRecordMissing(err) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// GetSalesByEmployee lists the calling employee's recent submissions, newest
// day first.
func GetSalesByEmployee(ctx context.Context, limit int) ([]*DailySale, error) {
	employeeId, ok := utils.GetEmployeeIdFromContext(ctx)
	if !ok || employeeId == 0 {
		return nil, utils.NewAuthError("employee session required")
	}
	if limit <= 0 {
		limit = 20
	}

	db := config.GetDB()
	var results []*DailySale
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeId).
		Order("sale_date DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetSalesByEmployeeBetween loads the calling employee's sales with
// sale_date in [from, to). Unlike GetSalesByEmployee there is no row cap, so
// a full month can be summed without undercounting.
func GetSalesByEmployeeBetween(ctx context.Context, from time.Time, to time.Time) ([]*DailySale, error) {
	employeeId, ok := utils.GetEmployeeIdFromContext(ctx)
	if !ok || employeeId == 0 {
		return nil, utils.NewAuthError("employee session required")
	}

	db := config.GetDB()
	var results []*DailySale
	err := db.WithContext(ctx).
		Where("employee_id = ? AND sale_date >= ? AND sale_date < ?", employeeId, from, to).
		Order("sale_date DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetSalesByBusinesses loads sales across the given businesses, optionally
// bounded to [from, to), newest day first. Admin reporting path; the caller
// has already resolved ownership.
func GetSalesByBusinesses(ctx context.Context, businessIds []string, from *time.Time, to *time.Time) ([]*DailySale, error) {
	if len(businessIds) == 0 {
		return []*DailySale{}, nil
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("business_id IN ?", businessIds)
	if from != nil {
		dbCtx = dbCtx.Where("sale_date >= ?", *from)
	}
	if to != nil {
		dbCtx = dbCtx.Where("sale_date < ?", *to)
	}

	var results []*DailySale
	if err := dbCtx.Order("sale_date DESC, id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ConfirmSale marks a sale confirmed inside the given transaction. Confirming
// a sale that is already confirmed is a no-op.
func ConfirmSale(tx *gorm.DB, businessId string, saleId int) (*DailySale, error) {
	var sale DailySale
	err := tx.Where("id = ? AND business_id = ?", saleId, businessId).Take(&sale).Error
	if err != nil {
		if utils.IsRecordMissing(err) {
			return nil, utils.NewNotFoundError("sale not found")
		}
		return nil, err
	}
	if sale.Status == SaleStatusConfirmed {
		return &sale, nil
	}

	if err := tx.Model(&DailySale{}).Where("id = ?", sale.ID).Update("status", SaleStatusConfirmed).Error; err != nil {
		return nil, err
	}
	sale.Status = SaleStatusConfirmed

	description := fmt.Sprintf("Confirmed sales of %s for %s", sale.TotalSales.StringFixed(2), sale.SaleDate.Format(utils.DateLayout))
	if err := SaveActivity(tx, "CONFIRM", fmt.Sprint(sale.ID), "daily_sale", description, businessId); err != nil {
		return nil, err
	}
	return &sale, nil
}
