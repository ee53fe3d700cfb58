package markallnotificationsread

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	commandType = "MarkAllNotificationsRead"
)

// Command represents the intent of a user to clear their unread notifications.
type Command struct {
	Actor      core.Actor
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(actor core.Actor, occurredAt time.Time) Command {
	return Command{
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
