package addbook

import (
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	failureReasonNotStaff        = "only library staff can add books"
	failureReasonOtherLibrary    = "library is not managed by the actor"
	failureReasonMissingRef      = "book id must not be empty"
	failureReasonMissingTitle    = "title must not be empty"
	failureReasonNegativeCopies  = "total copies must not be negative"
	failureReasonLibraryRequired = "library must be named"
)

// Decide implements the business logic of adding a book. The event carries no book id yet,
// the handler sets it after the insert.
//
// Business Rules:
//
//	GIVEN: A staff member of the target library and a complete book description
//	WHEN: AddBook command is received
//	THEN: BookAdded event is generated
//	ERROR: ErrForbidden if the actor is not staff
//	ERROR: ErrNotFound if the actor does not manage the library
//	ERROR: ErrInvalidState if the library, the book id or the title is missing, or copies are negative
func Decide(command Command) core.DecisionResult {
	if !command.Actor.IsStaff() {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNotStaff, core.ErrForbidden))
	}

	if command.LibraryID == 0 {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonLibraryRequired, core.ErrInvalidState))
	}

	if !command.Actor.CanManageLibrary(command.LibraryID) {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonOtherLibrary, core.ErrNotFound))
	}

	switch {
	case command.BookRef == "":
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonMissingRef, core.ErrInvalidState))
	case command.Title == "":
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonMissingTitle, core.ErrInvalidState))
	case command.TotalCopies < 0:
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNegativeCopies, core.ErrInvalidState))
	}

	return core.SuccessDecision(
		core.BuildBookAdded(
			command.BookRef,
			command.LibraryID,
			command.Title,
			command.AuthorName,
			command.TotalCopies,
			command.Actor.UserID,
			command.OccurredAt,
		),
		core.NoLedgerEffect,
	)
}

// NewBook builds the catalog entry described by event, with every copy available.
func NewBook(event core.BookAdded) core.Book {
	return core.Book{
		LibraryID:       event.LibraryID,
		BookID:          event.BookRef,
		Title:           event.Title,
		AuthorName:      event.AuthorName,
		TotalCopies:     event.TotalCopies,
		AvailableCopies: event.TotalCopies,
		Status:          core.BookActive,
		CreatedAt:       event.OccurredAt,
		UpdatedAt:       event.OccurredAt,
	}
}
