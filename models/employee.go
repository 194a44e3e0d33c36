package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID             int             `gorm:"primary_key" json:"id"`
	BusinessId     string          `gorm:"size:36;index;not null" json:"business_id"`
	UserId         string          `gorm:"size:36;index;not null" json:"user_id"`
	Name           string          `gorm:"size:100;not null" json:"name" binding:"required"`
	JobRole        string          `gorm:"size:100" json:"job_role"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"commission_rate"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewEmployee struct {
	BusinessId     string `json:"business_id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	JobRole        string `json:"job_role"`
	CommissionRate string `json:"commission_rate" binding:"required"`
	Username       string `json:"username" binding:"required"`
	Email          string `json:"email"`
	Password       string `json:"password" binding:"required"`
}

// GetEmployeesByBusiness lists the employees of one business owned by the
// calling admin.
func GetEmployeesByBusiness(ctx context.Context, businessId string) ([]*Employee, error) {
	if _, err := GetBusiness(ctx, businessId); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var results []*Employee
	err := db.WithContext(ctx).
		Where("business_id = ?", businessId).
		Order("created_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func GetEmployee(ctx context.Context, id int) (*Employee, error) {
	db := config.GetDB()
	var result Employee
	if err := db.WithContext(ctx).First(&result, id).Error; err != nil {
		if utils.IsRecordMissing(err) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

func GetEmployeeByUserId(ctx context.Context, userId string) (*Employee, error) {
	db := config.GetDB()
	var result Employee
	if err := db.WithContext(ctx).Where("user_id = ?", userId).Take(&result).Error; err != nil {
		if utils.IsRecordMissing(err) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

// CreateEmployee creates the login account and the employee record in a
// single transaction. Either both rows exist afterwards or neither does.
func CreateEmployee(ctx context.Context, input *NewEmployee) (*Employee, error) {

	// ownership of the target business
	if _, err := GetBusiness(ctx, input.BusinessId); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, utils.NewValidationError("employee name is required")
	}
	rate, err := utils.ParseDecimal(input.CommissionRate)
	if err != nil {
		return nil, utils.NewValidationError("invalid commission rate")
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, utils.NewValidationError("commission rate must be between 0 and 100")
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	user, err := CreateUser(tx, &NewUser{
		Username: input.Username,
		Name:     name,
		Email:    input.Email,
		Password: input.Password,
		Role:     UserRoleEmployee,
	})
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	employee := Employee{
		BusinessId:     input.BusinessId,
		UserId:         user.ID,
		Name:           name,
		JobRole:        strings.TrimSpace(input.JobRole),
		CommissionRate: rate,
	}
	if err := tx.Create(&employee).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := SaveActivity(tx, "CREATE", fmt.Sprint(employee.ID), "employee", "Added employee "+employee.Name, employee.BusinessId); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// DeleteEmployee removes the employee, their login account and any live
// sessions. The calling admin must own the employee's business. Deleting an
// employee that is already gone is a no-op.
func DeleteEmployee(ctx context.Context, id int) (*Employee, error) {
	db := config.GetDB()

	var employee Employee
	if err := db.WithContext(ctx).First(&employee, id).Error; err != nil {
		if utils.IsRecordMissing(err) {
			return nil, nil
		}
		return nil, err
	}
	if _, err := GetBusiness(ctx, employee.BusinessId); err != nil {
		return nil, err
	}

	var user User
	userErr := db.WithContext(ctx).Where("id = ?", employee.UserId).Take(&user).Error
	if userErr != nil && !utils.IsRecordMissing(userErr) {
		return nil, userErr
	}
	hasUser := userErr == nil

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	if err := tx.Delete(&Employee{}, id).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if hasUser {
		if err := tx.Where("id = ?", user.ID).Delete(&User{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := SaveActivity(tx, "DELETE", fmt.Sprint(employee.ID), "employee", "Removed employee "+employee.Name, employee.BusinessId); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if hasUser {
		_ = user.DestroyAllSessions(ctx)
	}
	return &employee, nil
}
