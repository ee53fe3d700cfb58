package marknotificationread

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	commandType = "MarkNotificationRead"
)

// Command represents the intent of a user to mark a notification as read.
type Command struct {
	Actor          core.Actor
	NotificationID int64
	OccurredAt     core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(actor core.Actor, notificationID int64, occurredAt time.Time) Command {
	return Command{
		Actor:          actor,
		NotificationID: notificationID,
		OccurredAt:     core.ToOccurredAt(occurredAt),
	}
}
