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

type Expense struct {
	ID          int             `gorm:"primary_key" json:"id"`
	BusinessId  string          `gorm:"size:36;index;not null" json:"business_id"`
	EmployeeId  int             `gorm:"index;not null" json:"employee_id"`
	Category    ExpenseCategory `gorm:"type:enum('Supplies','Equipment','Marketing','Travel','Other');default:'Other'" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Description string          `gorm:"size:255" json:"description"`
	ReceiptUrl  string          `gorm:"size:500" json:"receipt_url"`
	ExpenseDate time.Time       `gorm:"type:date;not null;index" json:"expense_date"`
	Status      ExpenseStatus   `gorm:"type:enum('pending','approved');default:'pending';index" json:"status"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewExpense struct {
	Category    string `json:"category" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
	ReceiptUrl  string `json:"receipt_url"`
	ExpenseDate string `json:"expense_date"`
}

// CreateExpense records an expense for the calling employee. The outbox row
// is staged in the same transaction.
func CreateExpense(ctx context.Context, input *NewExpense) (*Expense, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.NewAuthError("employee session required")
	}
	employeeId, ok := utils.GetEmployeeIdFromContext(ctx)
	if !ok || employeeId == 0 {
		return nil, utils.NewAuthError("employee session required")
	}

	var category ExpenseCategory
	if err := category.Parse(input.Category); err != nil {
		return nil, utils.NewValidationError(err.Error())
	}
	amount, err := utils.ParseDecimal(input.Amount)
	if err != nil {
		return nil, utils.NewValidationError("invalid expense amount")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, utils.NewValidationError("expense amount must be positive")
	}
	expenseDate := time.Now().UTC().Truncate(24 * time.Hour)
	if input.ExpenseDate != "" {
		expenseDate, err = utils.ParseDate(input.ExpenseDate)
		if err != nil {
			return nil, utils.NewValidationError("invalid expense date")
		}
	}

	if err := utils.ValidateResourceId[Employee](ctx, businessId, employeeId); err != nil {
		return nil, utils.NewNotFoundError("employee not found")
	}

	expense := Expense{
		BusinessId:  businessId,
		EmployeeId:  employeeId,
		Category:    category,
		Amount:      amount,
		Description: input.Description,
		ReceiptUrl:  input.ReceiptUrl,
		ExpenseDate: expenseDate,
		Status:      ExpenseStatusPending,
	}

	db := config.GetDB()
	txErr := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		description := fmt.Sprintf("Logged %s expense of %s", category, amount.StringFixed(2))
		if err := SaveActivity(tx, "CREATE", fmt.Sprint(expense.ID), "expense", description, businessId); err != nil {
			return err
		}
		return PublishDashboardRecord(tx, businessId, expense.ID, DashboardReferenceTypeExpense, DashboardMessageActionCreate, &expense)
	})
	if txErr != nil {
		return nil, txErr
	}
	return &expense, nil
}

// GetExpensesByEmployee lists the calling employee's recent expenses, newest
// first.
func GetExpensesByEmployee(ctx context.Context, limit int) ([]*Expense, error) {
	employeeId, ok := utils.GetEmployeeIdFromContext(ctx)
	if !ok || employeeId == 0 {
		return nil, utils.NewAuthError("employee session required")
	}
	if limit <= 0 {
		limit = 10
	}

	db := config.GetDB()
	var results []*Expense
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeId).
		Order("expense_date DESC, id DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetExpensesByBusinesses loads expenses across the given businesses,
// optionally bounded to [from, to). Admin reporting path.
func GetExpensesByBusinesses(ctx context.Context, businessIds []string, from *time.Time, to *time.Time) ([]*Expense, error) {
	if len(businessIds) == 0 {
		return []*Expense{}, nil
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("business_id IN ?", businessIds)
	if from != nil {
		dbCtx = dbCtx.Where("expense_date >= ?", *from)
	}
	if to != nil {
		dbCtx = dbCtx.Where("expense_date < ?", *to)
	}

	var results []*Expense
	if err := dbCtx.Order("expense_date DESC, id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ApproveExpense marks an expense approved inside the given transaction.
// Approving an already-approved expense is a no-op.
func ApproveExpense(tx *gorm.DB, businessId string, expenseId int) (*Expense, error) {
	var expense Expense
	err := tx.Where("id = ? AND business_id = ?", expenseId, businessId).Take(&expense).Error
	if err != nil {
		if utils.IsRecordMissing(err) {
			return nil, utils.NewNotFoundError("expense not found")
		}
		return nil, err
	}
	if expense.Status == ExpenseStatusApproved {
		return &expense, nil
	}

	if err := tx.Model(&Expense{}).Where("id = ?", expense.ID).Update("status", ExpenseStatusApproved).Error; err != nil {
		return nil, err
	}
	expense.Status = ExpenseStatusApproved

	description := fmt.Sprintf("Approved %s expense of %s", expense.Category, expense.Amount.StringFixed(2))
	if err := SaveActivity(tx, "APPROVE", fmt.Sprint(expense.ID), "expense", description, businessId); err != nil {
		return nil, err
	}
	return &expense, nil
}
