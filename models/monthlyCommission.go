package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MonthlyCommission is the accrued commission for one employee and month.
// Month is stored as "2006-01". The commission worker recomputes the pending
// amount from confirmed sales; paid rows are never touched again.
type MonthlyCommission struct {
	ID         int              `gorm:"primary_key" json:"id"`
	BusinessId string           `gorm:"size:36;index;not null" json:"business_id"`
	EmployeeId int              `gorm:"not null;index:uniq_commission_month,unique,priority:1" json:"employee_id"`
	Month      string           `gorm:"size:7;not null;index:uniq_commission_month,unique,priority:2" json:"month"`
	Amount     decimal.Decimal  `gorm:"type:decimal(20,2);not null" json:"amount"`
	Status     CommissionStatus `gorm:"type:enum('pending','paid');default:'pending';index" json:"status"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetPendingCommission returns the pending commission row for the employee
// and month, or nil when none has been accrued.
func GetPendingCommission(ctx context.Context, employeeId int, month string) (*MonthlyCommission, error) {
	db := config.GetDB()
	var result MonthlyCommission
	err := db.WithContext(ctx).
		Where("employee_id = ? AND month = ? AND status = ?", employeeId, month, CommissionStatusPending).
		Take(&result).Error
	if err != nil {
		if utils.IsRecordMissing(err) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// UpsertCommissionForMonth writes the recomputed amount for (employee, month)
// inside the given transaction. A row already marked paid is left alone.
func UpsertCommissionForMonth(tx *gorm.DB, businessId string, employeeId int, month string, amount decimal.Decimal) error {
	var existing MonthlyCommission
	err := tx.Where("employee_id = ? AND month = ?", employeeId, month).Take(&existing).Error
	if err != nil && !utils.IsRecordMissing(err) {
		return err
	}
	if err == nil {
		if existing.Status == CommissionStatusPaid {
			return nil
		}
		return tx.Model(&MonthlyCommission{}).Where("id = ?", existing.ID).Update("amount", amount).Error
	}

	record := MonthlyCommission{
		BusinessId: businessId,
		EmployeeId: employeeId,
		Month:      month,
		Amount:     amount,
		Status:     CommissionStatusPending,
	}
	// concurrent workers may race on the unique key
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount"}),
	}).Create(&record).Error
}

// MarkCommissionPaid flips a pending commission to paid. The calling admin
// must own the commission's business.
func MarkCommissionPaid(ctx context.Context, id int) (*MonthlyCommission, error) {
	db := config.GetDB()
	var record MonthlyCommission
	if err := db.WithContext(ctx).First(&record, id).Error; err != nil {
		if utils.IsRecordMissing(err) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	if _, err := GetBusiness(ctx, record.BusinessId); err != nil {
		return nil, err
	}
	if record.Status == CommissionStatusPaid {
		return &record, nil
	}
	if err := db.WithContext(ctx).Model(&MonthlyCommission{}).Where("id = ?", id).Update("status", CommissionStatusPaid).Error; err != nil {
		return nil, err
	}
	record.Status = CommissionStatusPaid
	return &record, nil
}
