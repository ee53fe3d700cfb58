package returnbook

import (
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	failureReasonNotStaff     = "only library staff can take returns"
	failureReasonOtherLibrary = "loan is not part of the librarian's library"
)

// State is the locked loan, the reservation it fulfilled (nil for walk-in loans) and the book.
type State struct {
	Borrowing   core.Borrowing
	Reservation *core.Reservation
	Book        core.Book
}

// Decide implements the business logic of returning a book.
//
// Business Rules:
//
//	GIVEN: An active loan of the librarian's library
//	WHEN: ReturnBook command is received
//	THEN: BookReturned event is generated and the copy is released
//	ERROR: ErrForbidden if the actor is not staff
//	ERROR: ErrNotFound if the loan belongs to another library
//	IDEMPOTENCY: If the loan was already returned, no event is generated (no-op)
func Decide(s State, command Command) core.DecisionResult {
	if !command.Actor.IsStaff() {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNotStaff, core.ErrForbidden))
	}

	if !command.Actor.CanManageLibrary(s.Book.LibraryID) {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonOtherLibrary, core.ErrNotFound))
	}

	if s.Borrowing.Status == core.BorrowingReturned {
		return core.IdempotentDecision()
	}

	subject := core.Reservation{BookID: s.Book.ID, MemberID: s.Borrowing.MemberID}
	if s.Reservation != nil {
		subject = *s.Reservation
	}

	return core.SuccessDecision(
		core.BuildBookReturned(
			core.FactsOf(subject, s.Book),
			s.Borrowing.ID,
			command.Actor.UserID,
			command.OccurredAt.After(s.Borrowing.DueDate),
			command.OccurredAt,
		),
		core.ReleaseCopy,
	)
}
