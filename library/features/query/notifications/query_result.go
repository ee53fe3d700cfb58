package notifications

import (
	"encoding/json"
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

// NotificationInfo is one inbox entry.
type NotificationInfo struct {
	ID        int64
	Title     string
	Message   string
	Type      core.NotificationType
	ActionURL string
	EventType string
	Payload   json.RawMessage
	Read      bool
	ReadAt    *time.Time
	CreatedAt time.Time
}

// Inbox is the query result.
type Inbox struct {
	Notifications []NotificationInfo
	Count         int
	UnreadCount   int
}
