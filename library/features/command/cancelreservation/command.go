package cancelreservation

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	commandType = "CancelReservation"
)

// Command represents the intent of a member to cancel their reservation.
type Command struct {
	Actor         core.Actor
	ReservationID int64
	OccurredAt    core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(actor core.Actor, reservationID int64, occurredAt time.Time) Command {
	return Command{
		Actor:         actor,
		ReservationID: reservationID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
