package core

import "time"

// NotificationType is the severity shown with a notification.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationDanger  NotificationType = "danger"
)

// Notification is a message in a user's inbox.
type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	Type      NotificationType
	ActionURL string
	EventType string
	Payload   []byte
	ReadAt    *time.Time
	CreatedAt time.Time
}

// IsRead reports whether the recipient has seen the notification.
func (n Notification) IsRead() bool {
	return n.ReadAt != nil
}
