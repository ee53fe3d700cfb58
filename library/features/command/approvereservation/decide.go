package approvereservation

import (
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	failureReasonNotLibrarian = "only librarians can approve reservations"
	failureReasonOtherLibrary = "reservation is not part of the librarian's library"
	failureReasonNotPending   = "only pending reservations can be approved"
	failureReasonPastExpiry   = "reservation is past its expiry date"
)

// State is the locked reservation and the book it claims a copy of.
type State struct {
	Reservation core.Reservation
	Book        core.Book
}

// Decide implements the business logic of approving a reservation.
//
// Business Rules:
//
//	GIVEN: A pending, not yet expired reservation on a book of the librarian's library
//	WHEN: ApproveReservation command is received
//	THEN: ReservationWasApproved event is generated, the held copy stays held
//	ERROR: ErrForbidden if the actor is not a librarian
//	ERROR: ErrNotFound if the book belongs to another library
//	ERROR: ErrInvalidState if the reservation is not pending or already past its expiry day
func Decide(s State, command Command) core.DecisionResult {
	if err := command.Actor.RequireRole(core.RoleLibrarian); err != nil {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNotLibrarian, err))
	}

	if !command.Actor.CanManageLibrary(s.Book.LibraryID) {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonOtherLibrary, core.ErrNotFound))
	}

	if !s.Reservation.Status.CanTransitionTo(core.ReservationApproved) {
		return core.ErrorDecision(
			fmt.Errorf("%s, status is %s: %w", failureReasonNotPending, s.Reservation.Status, core.ErrInvalidState),
		)
	}

	if s.Reservation.IsExpiredAt(command.OccurredAt) {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonPastExpiry, core.ErrInvalidState))
	}

	return core.SuccessDecision(
		core.BuildReservationWasApproved(
			core.FactsOf(s.Reservation, s.Book),
			command.Actor.UserID,
			command.LibrarianNotes,
			command.OccurredAt,
		),
		core.LedgerEffectOf(s.Reservation.Status, core.ReservationApproved),
	)
}
