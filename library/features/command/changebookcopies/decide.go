package changebookcopies

import (
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	failureReasonNotStaff       = "only library staff can change copies"
	failureReasonOtherLibrary   = "book is not part of the actor's library"
	failureReasonNegativeCopies = "total copies must not be negative"
)

// Decide implements the business logic of changing the copies of a book.
// Whether enough copies remain for the current holds is checked by the ledger.
//
// Business Rules:
//
//	GIVEN: A book of the actor's library
//	WHEN: ChangeBookCopies command is received
//	THEN: BookCopiesChanged event is generated
//	ERROR: ErrForbidden if the actor is not staff
//	ERROR: ErrNotFound if the book belongs to another library
//	ERROR: ErrInvalidState if the new total is negative
//	IDEMPOTENCY: If the book already has the requested total, no event is generated (no-op)
func Decide(book core.Book, command Command) core.DecisionResult {
	if !command.Actor.IsStaff() {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNotStaff, core.ErrForbidden))
	}

	if !command.Actor.CanManageLibrary(book.LibraryID) {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonOtherLibrary, core.ErrNotFound))
	}

	if command.TotalCopies < 0 {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNegativeCopies, core.ErrInvalidState))
	}

	if book.TotalCopies == command.TotalCopies {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildBookCopiesChanged(book, command.TotalCopies, command.Actor.UserID, command.OccurredAt),
		core.NoLedgerEffect,
	)
}
