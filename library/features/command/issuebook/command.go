package issuebook

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	commandType = "IssueBook"
)

// Command represents the intent of a librarian to lend a copy.
// ReservationID is zero for walk-in loans, then BookID and MemberID name the loan.
type Command struct {
	Actor         core.Actor
	BookID        int64
	MemberID      int64
	ReservationID int64
	DueDate       time.Time
	OccurredAt    core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// IsWalkIn reports whether the loan is not backed by a reservation.
func (c Command) IsWalkIn() bool {
	return c.ReservationID == 0
}

// BuildCommand creates a new Command for a walk-in loan due after loanPeriod.
func BuildCommand(actor core.Actor, bookID, memberID int64, loanPeriod time.Duration, occurredAt time.Time) Command {
	occurredAt = core.ToOccurredAt(occurredAt)

	return Command{
		Actor:      actor,
		BookID:     bookID,
		MemberID:   memberID,
		DueDate:    occurredAt.Add(loanPeriod),
		OccurredAt: occurredAt,
	}
}

// BuildCommandForReservation creates a new Command that lends the copy held by an approved reservation.
func BuildCommandForReservation(actor core.Actor, reservationID int64, loanPeriod time.Duration, occurredAt time.Time) Command {
	occurredAt = core.ToOccurredAt(occurredAt)

	return Command{
		Actor:         actor,
		ReservationID: reservationID,
		DueDate:       occurredAt.Add(loanPeriod),
		OccurredAt:    occurredAt,
	}
}
