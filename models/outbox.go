package models

import (
	"encoding/json"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"gorm.io/gorm"
)

// DashboardMessageRecord is the transactional outbox row for dashboard
// events. Sale and expense submissions write one of these in the same
// transaction as the domain row; the dispatcher publishes them to Pub/Sub
// after commit.
type DashboardMessageRecord struct {
	ID            int                    `gorm:"primary_key;index:idx_outbox_dispatch,priority:3" json:"id"`
	BusinessId    string                 `gorm:"size:36;not null;index" json:"business_id"`
	OccurredAt    time.Time              `gorm:"index;not null" json:"occurred_at"`
	ReferenceId   int                    `json:"reference_id"`
	ReferenceType DashboardReferenceType `gorm:"type:enum('SL','EX')" json:"reference_type"`
	Action        DashboardMessageAction `gorm:"type:enum('C','U','D')" json:"action"`
	Payload       []byte                 `gorm:"type:blob" json:"payload"`

	// Publish metadata (publish happens after commit via dispatcher).
	PublishStatus    string     `gorm:"size:20;index;not null;default:'PENDING';index:idx_outbox_dispatch,priority:1" json:"publish_status"` // PENDING|PROCESSING|SENT|FAILED|DEAD
	PublishedAt      *time.Time `gorm:"index" json:"published_at"`
	PubSubMessageId  *string    `gorm:"size:255" json:"pubsub_message_id"`
	PublishAttempts  int        `gorm:"not null;default:0" json:"publish_attempts"`
	NextAttemptAt    *time.Time `gorm:"index;index:idx_outbox_dispatch,priority:2" json:"next_attempt_at"`
	LockedAt         *time.Time `gorm:"index" json:"locked_at"`
	LockedBy         *string    `gorm:"size:100" json:"locked_by"`
	LastPublishError *string    `gorm:"type:text" json:"last_publish_error"`

	CorrelationId string    `gorm:"size:64;index" json:"correlation_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func ConvertToPubSubMessage(record DashboardMessageRecord) config.PubSubMessage {
	return config.PubSubMessage{
		ID:            record.ID,
		BusinessId:    record.BusinessId,
		OccurredAt:    record.OccurredAt,
		ReferenceId:   record.ReferenceId,
		ReferenceType: string(record.ReferenceType),
		Action:        string(record.Action),
		Payload:       record.Payload,
		CorrelationId: record.CorrelationId,
	}
}

// PublishDashboardRecord stages an outbox row inside the caller's
// transaction. The payload is stored as JSON; correlation id comes from the
// request context when present.
func PublishDashboardRecord(tx *gorm.DB,
	businessId string,
	referenceId int,
	referenceType DashboardReferenceType,
	action DashboardMessageAction,
	payload interface{}) error {

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	record := DashboardMessageRecord{
		BusinessId:    businessId,
		OccurredAt:    time.Now().UTC(),
		ReferenceId:   referenceId,
		ReferenceType: referenceType,
		Action:        action,
		Payload:       body,
		PublishStatus: OutboxPublishStatusPending,
	}
	if ctx := tx.Statement.Context; ctx != nil {
		if correlationId, ok := utils.GetCorrelationIdFromContext(ctx); ok {
			record.CorrelationId = correlationId
		}
	}

	return tx.Create(&record).Error
}
