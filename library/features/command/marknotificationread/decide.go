package marknotificationread

import (
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	failureReasonNotRecipient = "notification does not belong to the user"
)

// Decide implements the business logic of marking a notification as read.
//
// Business Rules:
//
//	GIVEN: An unread notification addressed to the actor
//	WHEN: MarkNotificationRead command is received
//	THEN: NotificationRead event is generated
//	ERROR: ErrNotFound if the notification belongs to somebody else
//	IDEMPOTENCY: If the notification is already read, no event is generated (no-op)
func Decide(notification core.Notification, command Command) core.DecisionResult {
	if notification.UserID != command.Actor.UserID {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNotRecipient, core.ErrNotFound))
	}

	if notification.IsRead() {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildNotificationRead(notification.ID, command.Actor.UserID, command.OccurredAt),
		core.NoLedgerEffect,
	)
}
