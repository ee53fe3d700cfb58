package notifications

import (
	"encoding/json"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

// Project turns the stored notifications into the inbox, keeping their order.
func Project(stored []core.Notification, unreadCount int) Inbox {
	infos := make([]NotificationInfo, 0, len(stored))

	for _, n := range stored {
		payload := json.RawMessage(n.Payload)
		if len(payload) == 0 {
			payload = json.RawMessage("{}")
		}

		infos = append(infos, NotificationInfo{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			ActionURL: n.ActionURL,
			EventType: n.EventType,
			Payload:   payload,
			Read:      n.IsRead(),
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}

	return Inbox{
		Notifications: infos,
		Count:         len(infos),
		UnreadCount:   unreadCount,
	}
}
