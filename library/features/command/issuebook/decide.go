package issuebook

import (
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	failureReasonNotStaff          = "only library staff can issue books"
	failureReasonOtherLibrary      = "book is not part of the librarian's library"
	failureReasonNotAMember        = "borrower is not a member of the library"
	failureReasonMemberInactive    = "borrower account is inactive"
	failureReasonNotApproved       = "only approved reservations can be issued"
	failureReasonNoCopyLeft        = "no copy of the book is available"
	failureReasonDueBeforeIssueDay = "due date must lie after the issue date"
)

// State is what the handler loaded for the loan. Reservation is nil for walk-in loans.
type State struct {
	Book        core.Book
	Member      core.User
	Reservation *core.Reservation
}

// Decide implements the business logic of issuing a book.
//
// Business Rules:
//
//	GIVEN: An active member of the librarian's library and either an approved reservation or a free copy
//	WHEN: IssueBook command is received
//	THEN: BookIssued event is generated, a walk-in loan holds one copy
//	ERROR: ErrForbidden if the actor is not staff
//	ERROR: ErrNotFound if the book or the member belong to another library
//	ERROR: ErrInvalidState if the member is inactive, the reservation is not approved or the due date is not after now
//	ERROR: ErrUnavailable if a walk-in loan finds no copy left
func Decide(s State, command Command) core.DecisionResult {
	if !command.Actor.IsStaff() {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNotStaff, core.ErrForbidden))
	}

	if !command.Actor.CanManageLibrary(s.Book.LibraryID) {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonOtherLibrary, core.ErrNotFound))
	}

	if s.Member.Role != core.RoleMember || s.Member.LibraryID == nil || *s.Member.LibraryID != s.Book.LibraryID {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNotAMember, core.ErrNotFound))
	}

	if s.Member.Status != core.UserActive {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonMemberInactive, core.ErrInvalidState))
	}

	if !command.DueDate.After(command.OccurredAt) {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonDueBeforeIssueDay, core.ErrInvalidState))
	}

	if s.Reservation != nil {
		if !s.Reservation.Status.CanTransitionTo(core.ReservationBorrowed) {
			return core.ErrorDecision(
				fmt.Errorf("%s, status is %s: %w", failureReasonNotApproved, s.Reservation.Status, core.ErrInvalidState),
			)
		}

		return core.SuccessDecision(
			core.BuildBookIssued(core.FactsOf(*s.Reservation, s.Book), 0, command.Actor.UserID, command.DueDate, command.OccurredAt),
			core.LedgerEffectOf(s.Reservation.Status, core.ReservationBorrowed),
		)
	}

	if !s.Book.CanHold() {
		return core.ErrorDecision(fmt.Errorf("%s: %w", failureReasonNoCopyLeft, core.ErrUnavailable))
	}

	walkIn := core.Reservation{BookID: s.Book.ID, MemberID: s.Member.ID}

	return core.SuccessDecision(
		core.BuildBookIssued(core.FactsOf(walkIn, s.Book), 0, command.Actor.UserID, command.DueDate, command.OccurredAt),
		core.HoldCopy,
	)
}

// NewBorrowing builds the active loan the command creates.
func NewBorrowing(s State, command Command) core.Borrowing {
	borrowing := core.Borrowing{
		BookID:    s.Book.ID,
		MemberID:  s.Member.ID,
		IssuedBy:  command.Actor.UserID,
		IssueDate: command.OccurredAt,
		DueDate:   command.DueDate,
		Status:    core.BorrowingActive,
	}

	if s.Reservation != nil {
		reservationID := s.Reservation.ID
		borrowing.ReservationID = &reservationID
	}

	return borrowing
}
