package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"gorm.io/gorm"
)

// Activity is the audit trail behind the admin dashboard's recent activity
// feed: who recorded or reviewed what, and when.
type Activity struct {
	ID            int       `gorm:"primary_key" json:"id"`
	BusinessId    string    `gorm:"size:36;index;not null" json:"business_id"`
	ActionType    string    `gorm:"size:10;not null" json:"action_type"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	ReferenceId   string    `gorm:"size:64;index" json:"reference_id"`
	ReferenceType string    `gorm:"size:50" json:"reference_type"`
	UserId        string    `gorm:"size:36;index" json:"user_id"`
	UserName      string    `gorm:"size:100" json:"user_name"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SaveActivity records one audit row inside the caller's transaction. The
// acting user comes from the transaction's context; worker-driven writes
// carry no user and are recorded as system activity.
func SaveActivity(tx *gorm.DB, actionType string, referenceId string, referenceType string, description string, businessId string) error {

	ctx := tx.Statement.Context

	activity := Activity{
		BusinessId:    businessId,
		ActionType:    actionType,
		Description:   description,
		ReferenceId:   referenceId,
		ReferenceType: referenceType,
	}
	if ctx != nil {
		if userId, ok := utils.GetUserIdFromContext(ctx); ok {
			activity.UserId = userId
		}
		if userName, ok := utils.GetUserNameFromContext(ctx); ok {
			activity.UserName = userName
		}
	}
	if activity.UserName == "" {
		activity.UserName = "system"
	}

	return tx.Create(&activity).Error
}

// GetActivities returns the newest audit rows across all businesses owned by
// the calling admin.
func GetActivities(ctx context.Context, limit int) ([]*Activity, error) {
	businesses, err := GetBusinesses(ctx)
	if err != nil {
		return nil, err
	}
	if len(businesses) == 0 {
		return []*Activity{}, nil
	}
	businessIds := make([]string, len(businesses))
	for i, b := range businesses {
		businessIds[i] = b.ID
	}

	if limit <= 0 {
		limit = 20
	}

	db := config.GetDB()
	var results []*Activity
	err = db.WithContext(ctx).
		Where("business_id IN ?", businessIds).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
