package models

import "errors"

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleEmployee UserRole = "employee"
)

func (r *UserRole) Parse(s string) error {
	switch s {
	case "admin":
		*r = UserRoleAdmin
	case "employee":
		*r = UserRoleEmployee
	default:
		return errors.New("invalid user role")
	}
	return nil
}

type BusinessType string

const (
	BusinessTypeBarbershop BusinessType = "Barbershop"
	BusinessTypeRetail     BusinessType = "Retail"
	BusinessTypeRestaurant BusinessType = "Restaurant"
	BusinessTypeService    BusinessType = "Service"
	BusinessTypeOther      BusinessType = "Other"
)

func (t *BusinessType) Parse(s string) error {
	businessTypes := map[string]BusinessType{
		"Barbershop": BusinessTypeBarbershop,
		"Retail":     BusinessTypeRetail,
		"Restaurant": BusinessTypeRestaurant,
		"Service":    BusinessTypeService,
		"Other":      BusinessTypeOther,
	}
	v, ok := businessTypes[s]
	if !ok {
		return errors.New("invalid business type")
	}
	*t = v
	return nil
}

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusConfirmed SaleStatus = "confirmed"
)

type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "pending"
	ExpenseStatusApproved ExpenseStatus = "approved"
)

type ExpenseCategory string

const (
	ExpenseCategorySupplies  ExpenseCategory = "Supplies"
	ExpenseCategoryEquipment ExpenseCategory = "Equipment"
	ExpenseCategoryMarketing ExpenseCategory = "Marketing"
	ExpenseCategoryTravel    ExpenseCategory = "Travel"
	ExpenseCategoryOther     ExpenseCategory = "Other"
)

func (c *ExpenseCategory) Parse(s string) error {
	expenseCategories := map[string]ExpenseCategory{
		"Supplies":  ExpenseCategorySupplies,
		"Equipment": ExpenseCategoryEquipment,
		"Marketing": ExpenseCategoryMarketing,
		"Travel":    ExpenseCategoryTravel,
		"Other":     ExpenseCategoryOther,
	}
	v, ok := expenseCategories[s]
	if !ok {
		return errors.New("invalid expense category")
	}
	*c = v
	return nil
}

type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "pending"
	CommissionStatusPaid    CommissionStatus = "paid"
)

// Dashboard event reference types carried on outbox rows and Pub/Sub messages.
type DashboardReferenceType string

const (
	DashboardReferenceTypeSale    DashboardReferenceType = "SL"
	DashboardReferenceTypeExpense DashboardReferenceType = "EX"
)

// DashboardMessageAction distinguishes outbound record events (create,
// update, delete) from inbound review decisions (confirm, approve). Only the
// decisions may flip a record's status.
type DashboardMessageAction string

const (
	DashboardMessageActionCreate  DashboardMessageAction = "C"
	DashboardMessageActionUpdate  DashboardMessageAction = "U"
	DashboardMessageActionDelete  DashboardMessageAction = "D"
	DashboardMessageActionConfirm DashboardMessageAction = "CF"
	DashboardMessageActionApprove DashboardMessageAction = "AP"
)

// Outbox publish statuses for DashboardMessageRecord.PublishStatus.
// Keep these as strings (DB values).
const (
	OutboxPublishStatusPending    = "PENDING"
	OutboxPublishStatusProcessing = "PROCESSING"
	OutboxPublishStatusSent       = "SENT"
	OutboxPublishStatusFailed     = "FAILED"
	OutboxPublishStatusDead       = "DEAD"
)
