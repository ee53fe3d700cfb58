package fulfilreservation

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	commandType = "FulfilReservation"
)

// Command represents the intent of a librarian to close an approved reservation.
type Command struct {
	Actor          core.Actor
	ReservationID  int64
	LibrarianNotes string
	OccurredAt     core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(actor core.Actor, reservationID int64, librarianNotes string, occurredAt time.Time) Command {
	return Command{
		Actor:          actor,
		ReservationID:  reservationID,
		LibrarianNotes: librarianNotes,
		OccurredAt:     core.ToOccurredAt(occurredAt),
	}
}
