package sendduereminders

import (
	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

// State is the locked loan with the book and, if the loan fulfilled one, the reservation.
type State struct {
	Borrowing   core.Borrowing
	Reservation *core.Reservation
	Book        core.Book
}

// Decide implements the business logic of reminding one loan.
//
// Business Rules:
//
//	GIVEN: An active loan due within the window that was not reminded yet
//	WHEN: the sweep reaches it
//	THEN: BookDueSoon event is generated
//	IDEMPOTENCY: a returned or already reminded loan is left alone
func Decide(s State, command Command) core.DecisionResult {
	if !s.Borrowing.NeedsDueReminder(command.Now, command.Window) {
		return core.IdempotentDecision()
	}

	subject := core.Reservation{BookID: s.Book.ID, MemberID: s.Borrowing.MemberID}
	if s.Reservation != nil {
		subject = *s.Reservation
	}

	return core.SuccessDecision(
		core.BuildBookDueSoon(core.FactsOf(subject, s.Book), s.Borrowing.ID, s.Borrowing.DueDate, command.Now),
		core.NoLedgerEffect,
	)
}
