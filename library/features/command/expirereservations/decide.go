package expirereservations

import (
	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

// State is the locked reservation and the book it claims a copy of.
type State struct {
	Reservation core.Reservation
	Book        core.Book
}

// Decide implements the business logic of expiring one reservation.
//
// Business Rules:
//
//	GIVEN: A pending reservation whose expiry date lies before the start of the current day
//	WHEN: the sweep reaches it
//	THEN: ReservationWasExpired event is generated and the held copy is released
//	IDEMPOTENCY: a reservation that is no longer pending or not yet due is left alone
func Decide(s State, command Command) core.DecisionResult {
	if !s.Reservation.IsExpiredAt(command.Now) {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildReservationWasExpired(core.FactsOf(s.Reservation, s.Book), s.Reservation.ExpiryDate, command.Now),
		core.LedgerEffectOf(s.Reservation.Status, core.ReservationExpired),
	)
}
