package rejectreservation

import (
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	failureReasonNotLibrarian = "only librarians can reject reservations"
	failureReasonOtherLibrary = "reservation is not part of the librarian's library"
	failureReasonNotPending   = "only pending reservations can be rejected"
)

// State is the locked reservation and the book it claims a copy of.
type State struct {
	Reservation core.Reservation
	Book        core.Book
}

// Decide implements the business logic of rejecting a reservation.
//
// Business Rules:
//
//	GIVEN: A pending reservation on a book of the librarian's library
//	WHEN: RejectReservation command is received
//	THEN: ReservationWasRejected event is generated and the held copy is released
//	ERROR: ErrForbidden if the actor is not a librarian
//	ERROR: ErrNotFound if the book belongs to another library
//	ERROR: ErrInvalidState if the reservation is not pending
func Decide(s State, command Command) core.DecisionResult {
	if err := command.Actor.RequireRole(core.RoleLibrarian); err != nil {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNotLibrarian, err))
	}

	if !command.Actor.CanManageLibrary(s.Book.LibraryID) {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonOtherLibrary, core.ErrNotFound))
	}

	if !s.Reservation.Status.CanTransitionTo(core.ReservationRejected) {
		return core.ErrorDecision(
			fmt.Errorf("%s, status is %s: %w", failureReasonNotPending, s.Reservation.Status, core.ErrInvalidState),
		)
	}

	return core.SuccessDecision(
		core.BuildReservationWasRejected(
			core.FactsOf(s.Reservation, s.Book),
			command.Actor.UserID,
			command.Reason,
			command.LibrarianNotes,
			command.OccurredAt,
		),
		core.LedgerEffectOf(s.Reservation.Status, core.ReservationRejected),
	)
}
