package models

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
)

// These tests cover the validate-before-write paths: every rejection below
// must surface before any database handle is touched.

func adminCtx() context.Context {
	return utils.SetUserIdInContext(context.Background(), "admin-1")
}

func employeeCtx() context.Context {
	ctx := utils.SetBusinessIdInContext(context.Background(), "biz-1")
	return utils.SetEmployeeIdInContext(ctx, 7)
}

func wantAuthError(t *testing.T, err error) {
	t.Helper()
	var authErr *utils.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
}

func wantValidationError(t *testing.T, err error) {
	t.Helper()
	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestCreateBusiness_RequiresSession(t *testing.T) {
	_, err := CreateBusiness(context.Background(), &NewBusiness{Name: "Shop", Type: "Retail", Location: "Yangon"})
	wantAuthError(t, err)
}

func TestCreateBusiness_RejectsBlankName(t *testing.T) {
	_, err := CreateBusiness(adminCtx(), &NewBusiness{Name: "   ", Type: "Retail", Location: "Yangon"})
	wantValidationError(t, err)
}

func TestCreateBusiness_RejectsBlankLocation(t *testing.T) {
	_, err := CreateBusiness(adminCtx(), &NewBusiness{Name: "Shop", Type: "Retail", Location: " "})
	wantValidationError(t, err)
}

func TestCreateBusiness_RejectsUnknownType(t *testing.T) {
	_, err := CreateBusiness(adminCtx(), &NewBusiness{Name: "Shop", Type: "Bakery", Location: "Yangon"})
	wantValidationError(t, err)
}

func TestCreateDailySale_RequiresEmployeeSession(t *testing.T) {
	_, err := CreateDailySale(context.Background(), &NewDailySale{TotalSales: "100"})
	wantAuthError(t, err)

	// An admin session has no business/employee pinning either.
	_, err = CreateDailySale(adminCtx(), &NewDailySale{TotalSales: "100"})
	wantAuthError(t, err)
}

func TestCreateDailySale_RejectsBadInput(t *testing.T) {
	ctx := employeeCtx()

	_, err := CreateDailySale(ctx, &NewDailySale{TotalSales: "abc"})
	wantValidationError(t, err)

	_, err = CreateDailySale(ctx, &NewDailySale{TotalSales: "-5"})
	wantValidationError(t, err)

	_, err = CreateDailySale(ctx, &NewDailySale{TotalSales: "100", ServicesCount: -1})
	wantValidationError(t, err)

	_, err = CreateDailySale(ctx, &NewDailySale{TotalSales: "100", SaleDate: "31-12-2026"})
	wantValidationError(t, err)
}

func TestCreateExpense_RequiresEmployeeSession(t *testing.T) {
	_, err := CreateExpense(context.Background(), &NewExpense{Category: "Supplies", Amount: "10"})
	wantAuthError(t, err)
}

func TestCreateExpense_RejectsBadInput(t *testing.T) {
	ctx := employeeCtx()

	_, err := CreateExpense(ctx, &NewExpense{Category: "Food", Amount: "10"})
	wantValidationError(t, err)

	_, err = CreateExpense(ctx, &NewExpense{Category: "Supplies", Amount: "0"})
	wantValidationError(t, err)

	_, err = CreateExpense(ctx, &NewExpense{Category: "Supplies", Amount: "-3"})
	wantValidationError(t, err)

	_, err = CreateExpense(ctx, &NewExpense{Category: "Supplies", Amount: "10", ExpenseDate: "next tuesday"})
	wantValidationError(t, err)
}
