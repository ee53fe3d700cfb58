package core

import "time"

// NotificationReadEventType is the type identifier of NotificationRead.
const NotificationReadEventType = "NotificationRead"

// NotificationRead is emitted when a user opens a notification of their inbox.
type NotificationRead struct {
	EventType      string
	NotificationID int64
	UserID         int64
	OccurredAt     OccurredAt
}

// BuildNotificationRead creates a new NotificationRead event.
func BuildNotificationRead(notificationID, userID int64, occurredAt time.Time) NotificationRead {
	return NotificationRead{
		EventType:      NotificationReadEventType,
		NotificationID: notificationID,
		UserID:         userID,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

func (e NotificationRead) IsEventType() string {
	return NotificationReadEventType
}

func (e NotificationRead) HasOccurredAt() OccurredAt {
	return e.OccurredAt
}

func (e NotificationRead) IsErrorEvent() bool {
	return false
}
