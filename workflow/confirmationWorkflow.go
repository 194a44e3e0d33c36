package workflow

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
	"bitbucket.org/mmdatafocus/bizmanager_backend/models"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"gorm.io/gorm"
)

const moduleName = "Workflow"

// Handler names recorded in idempotency keys.
const (
	handlerSaleConfirm    = "sale_confirm"
	handlerExpenseApprove = "expense_approve"
)

// ProcessDashboardMessage applies a review decision pushed back from
// Pub/Sub: confirm a sale or approve an expense. Redelivery is safe, the
// idempotency key short-circuits duplicates and the domain updates are
// themselves no-ops when already applied. Work on one business is serialized
// with a Redis lock.
func ProcessDashboardMessage(ctx context.Context, messageId string, msg config.PubSubMessage) error {
	if msg.BusinessId == "" {
		return fmt.Errorf("message %s has no business id", messageId)
	}

	// Only review decisions transition a record. The outbox publishes this
	// system's own create/update events onto the same topic family; those
	// must be acked untouched or every new sale would confirm itself.
	action := models.DashboardMessageAction(msg.Action)
	var handlerName string
	switch models.DashboardReferenceType(msg.ReferenceType) {
	case models.DashboardReferenceTypeSale:
		if action != models.DashboardMessageActionConfirm {
			return nil
		}
		handlerName = handlerSaleConfirm
	case models.DashboardReferenceTypeExpense:
		if action != models.DashboardMessageActionApprove {
			return nil
		}
		handlerName = handlerExpenseApprove
	default:
		// Unknown types are acked, not retried. Nothing here can handle them.
		logger := config.GetLogger()
		config.LogError(logger, moduleName, "ProcessDashboardMessage", "unknown reference type", msg.ReferenceType,
			fmt.Errorf("unhandled reference type %q", msg.ReferenceType))
		return nil
	}

	lock, err := utils.BusinessLock(ctx, msg.BusinessId, "DashboardLock", moduleName, "ProcessDashboardMessage")
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release(ctx) }()

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skip, err := BeginIdempotency(tx, msg.BusinessId, handlerName, messageId)
		if err != nil {
			return err
		}
		if skip {
			return nil
		}

		switch handlerName {
		case handlerSaleConfirm:
			if _, err := models.ConfirmSale(tx, msg.BusinessId, msg.ReferenceId); err != nil {
				return err
			}
		case handlerExpenseApprove:
			if _, err := models.ApproveExpense(tx, msg.BusinessId, msg.ReferenceId); err != nil {
				return err
			}
		}

		return MarkIdempotencySucceeded(tx, msg.BusinessId, handlerName, messageId)
	})
	if err != nil && err != ErrIdempotencyInProgress {
		// Record the failure outside the rolled-back transaction so retries
		// can see it.
		_ = MarkIdempotencyFailed(db.WithContext(ctx), msg.BusinessId, handlerName, messageId, err)
	}
	return err
}
