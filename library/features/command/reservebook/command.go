package reservebook

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	commandType = "ReserveBook"
)

// Command represents the intent of a member to reserve a copy of a book.
type Command struct {
	Actor          core.Actor
	BookID         int64
	Notes          string
	ReservationRef string
	OccurredAt     core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command and generates the external reservation reference.
func BuildCommand(actor core.Actor, bookID int64, notes string, occurredAt time.Time) Command {
	return Command{
		Actor:          actor,
		BookID:         bookID,
		Notes:          notes,
		ReservationRef: core.NewReservationID(occurredAt),
		OccurredAt:     core.ToOccurredAt(occurredAt),
	}
}
