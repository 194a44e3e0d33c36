package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"github.com/google/uuid"
)

type Business struct {
	ID          string       `gorm:"primary_key;size:36" json:"id"`
	AdminId     string       `gorm:"size:36;index;not null" json:"admin_id"`
	Name        string       `gorm:"size:100;not null" json:"name" binding:"required"`
	Type        BusinessType `gorm:"type:enum('Barbershop','Retail','Restaurant','Service','Other');default:'Other'" json:"type"`
	Location    string       `gorm:"size:255;not null" json:"location"`
	Description string       `gorm:"size:500" json:"description"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBusiness struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Description string `json:"description"`
}

// GetBusinesses lists the calling admin's businesses, newest first.
func GetBusinesses(ctx context.Context) ([]*Business, error) {
	adminId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || adminId == "" {
		return nil, utils.NewAuthError("unauthenticated")
	}

	db := config.GetDB()
	var results []*Business
	err := db.WithContext(ctx).
		Where("admin_id = ?", adminId).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetBusiness loads one business owned by the calling admin.
func GetBusiness(ctx context.Context, id string) (*Business, error) {
	adminId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || adminId == "" {
		return nil, utils.NewAuthError("unauthenticated")
	}

	db := config.GetDB()
	var result Business
	err := db.WithContext(ctx).
		Where("id = ? AND admin_id = ?", id, adminId).
		Take(&result).Error
	if err != nil {
		if utils.IsRecordMissing(err) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

func CreateBusiness(ctx context.Context, input *NewBusiness) (*Business, error) {
	adminId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || adminId == "" {
		return nil, utils.NewAuthError("unauthenticated")
	}

	// all validation surfaces before any write
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, utils.NewValidationError("business name is required")
	}
	location := strings.TrimSpace(input.Location)
	if location == "" {
		return nil, utils.NewValidationError("business location is required")
	}
	var businessType BusinessType
	if err := businessType.Parse(input.Type); err != nil {
		return nil, utils.NewValidationError(err.Error())
	}

	business := Business{
		ID:          uuid.NewString(),
		AdminId:     adminId,
		Name:        name,
		Type:        businessType,
		Location:    location,
		Description: strings.TrimSpace(input.Description),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// DeleteBusiness removes a business and everything under it in one
// transaction: sales, expenses, commissions, activities, employees and their
// login accounts. Deleting a business that is already gone is a no-op.
func DeleteBusiness(ctx context.Context, id string) (*Business, error) {
	adminId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || adminId == "" {
		return nil, utils.NewAuthError("unauthenticated")
	}

	db := config.GetDB()
	var business Business
	err := db.WithContext(ctx).
		Where("id = ? AND admin_id = ?", id, adminId).
		Take(&business).Error
	if err != nil {
		// idempotent: a missing business is already deleted
		if utils.IsRecordMissing(err) {
			return nil, nil
		}
		return nil, err
	}

	var employees []Employee
	if err := db.WithContext(ctx).Where("business_id = ?", id).Find(&employees).Error; err != nil {
		return nil, err
	}
	userIds := make([]string, 0, len(employees))
	for _, e := range employees {
		if e.UserId != "" {
			userIds = append(userIds, e.UserId)
		}
	}
	var users []User
	if len(userIds) > 0 {
		if err := db.WithContext(ctx).Where("id IN ?", userIds).Find(&users).Error; err != nil {
			return nil, err
		}
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	for _, model := range []interface{}{
		&DailySale{}, &Expense{}, &MonthlyCommission{}, &Activity{}, &DashboardMessageRecord{}, &Employee{},
	} {
		if err := tx.Where("business_id = ?", id).Delete(model).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if len(userIds) > 0 {
		if err := tx.Where("id IN ?", userIds).Delete(&User{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Where("id = ?", id).Delete(&Business{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// the deleted accounts must not keep usable tokens
	for i := range users {
		_ = users[i].DestroyAllSessions(ctx)
	}

	return &business, nil
}
