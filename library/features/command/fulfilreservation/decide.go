package fulfilreservation

import (
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	failureReasonNotStaff     = "only library staff can fulfil reservations"
	failureReasonOtherLibrary = "reservation is not part of the librarian's library"
	failureReasonNotApproved  = "only approved reservations can be fulfilled"
)

// State is the locked reservation and the book it claims a copy of.
type State struct {
	Reservation core.Reservation
	Book        core.Book
}

// Decide implements the business logic of fulfilling a reservation.
//
// Business Rules:
//
//	GIVEN: An approved reservation on a book of the librarian's library
//	WHEN: FulfilReservation command is received
//	THEN: ReservationWasFulfilled event is generated and the held copy is released
//	ERROR: ErrForbidden if the actor is not staff
//	ERROR: ErrNotFound if the book belongs to another library
//	ERROR: ErrInvalidState if the reservation is not approved
func Decide(s State, command Command) core.DecisionResult {
	if !command.Actor.IsStaff() {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNotStaff, core.ErrForbidden))
	}

	if !command.Actor.CanManageLibrary(s.Book.LibraryID) {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonOtherLibrary, core.ErrNotFound))
	}

	if !s.Reservation.Status.CanTransitionTo(core.ReservationFulfilled) {
		return core.ErrorDecision(
			fmt.Errorf("%s, status is %s: %w", failureReasonNotApproved, s.Reservation.Status, core.ErrInvalidState),
		)
	}

	return core.SuccessDecision(
		core.BuildReservationWasFulfilled(
			core.FactsOf(s.Reservation, s.Book),
			command.Actor.UserID,
			command.LibrarianNotes,
			command.OccurredAt,
		),
		core.LedgerEffectOf(s.Reservation.Status, core.ReservationFulfilled),
	)
}
