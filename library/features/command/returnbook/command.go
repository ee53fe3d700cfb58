package returnbook

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent of a librarian to take back a lent copy.
type Command struct {
	Actor       core.Actor
	BorrowingID int64
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(actor core.Actor, borrowingID int64, occurredAt time.Time) Command {
	return Command{
		Actor:       actor,
		BorrowingID: borrowingID,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
