package changebookcopies

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	commandType = "ChangeBookCopies"
)

// Command represents the intent of staff to set the number of physical copies of a book.
type Command struct {
	Actor       core.Actor
	BookID      int64
	TotalCopies int
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(actor core.Actor, bookID int64, totalCopies int, occurredAt time.Time) Command {
	return Command{
		Actor:       actor,
		BookID:      bookID,
		TotalCopies: totalCopies,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
