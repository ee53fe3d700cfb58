package reservebook

import (
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	failureReasonNotAMember     = "only members can reserve books"
	failureReasonOtherLibrary   = "book is not part of the member's library"
	failureReasonAlreadyPending = "member already has a pending reservation for this book"
	failureReasonNoCopyLeft     = "no copy of the book is available"
)

// State is what the handler loaded under the book's row lock.
type State struct {
	Book              core.Book
	HasPendingForBook bool
}

// Decide implements the business logic of reserving a book. It is a pure function: the
// reservation it returns in the event is not yet persisted.
//
// Business Rules:
//
//	GIVEN: An active book with available copies and a member of the same library
//	WHEN: ReserveBook command is received
//	THEN: ReservationCreated event is generated and one copy is held
//	ERROR: ErrForbidden if the actor is not a member
//	ERROR: ErrNotFound if the book belongs to another library
//	ERROR: ErrAlreadyExists if the member already has a pending reservation for the book
//	ERROR: ErrUnavailable if the book is inactive or no copy is left
func Decide(s State, command Command) core.DecisionResult {
	if command.Actor.RequireRole(core.RoleMember) != nil {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNotAMember, core.ErrForbidden))
	}

	if s.Book.LibraryID != command.Actor.LibraryID {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonOtherLibrary, core.ErrNotFound))
	}

	if s.HasPendingForBook {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonAlreadyPending, core.ErrAlreadyExists))
	}

	if !s.Book.CanHold() {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNoCopyLeft, core.ErrUnavailable))
	}

	reservation := NewReservation(command)

	return core.SuccessDecision(
		core.BuildReservationCreated(core.FactsOf(reservation, s.Book), reservation.ExpiryDate, command.OccurredAt),
		core.HoldCopy,
	)
}

// NewReservation builds the pending reservation the command creates.
func NewReservation(command Command) core.Reservation {
	return core.NewPendingReservation(
		command.ReservationRef,
		command.BookID,
		command.Actor.UserID,
		command.Notes,
		command.OccurredAt,
	)
}
