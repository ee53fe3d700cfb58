package cancelreservation

import (
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	failureReasonNotOwner   = "reservation does not belong to the member"
	failureReasonNotPending = "only pending reservations can be cancelled"
)

// State is the locked reservation and the book it claims a copy of.
type State struct {
	Reservation core.Reservation
	Book        core.Book
}

// Decide implements the business logic of cancelling a reservation.
//
// Business Rules:
//
//	GIVEN: A pending reservation owned by the actor
//	WHEN: CancelReservation command is received
//	THEN: ReservationWasCancelled event is generated and the held copy is released
//	ERROR: ErrNotFound if the reservation belongs to somebody else
//	ERROR: ErrInvalidState if the reservation is not pending
func Decide(s State, command Command) core.DecisionResult {
	if s.Reservation.MemberID != command.Actor.UserID {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNotOwner, core.ErrNotFound))
	}

	if !s.Reservation.Status.CanTransitionTo(core.ReservationCancelled) {
		return core.ErrorDecision(
			fmt.Errorf("%s, status is %s: %w", failureReasonNotPending, s.Reservation.Status, core.ErrInvalidState),
		)
	}

	return core.SuccessDecision(
		core.BuildReservationWasCancelled(core.FactsOf(s.Reservation, s.Book), command.OccurredAt),
		core.LedgerEffectOf(s.Reservation.Status, core.ReservationCancelled),
	)
}
