package libraryloans

import (
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// Project turns the active loans into the staff view, keeping their order.
//
// Query Logic:
//
//	GIVEN: The active loans of the library joined with book and member, earliest due first
//	WHEN: LibraryLoans query is executed
//	THEN: LibraryLoans is returned
//	DETAILS: A loan is overdue once its due date lies before Now
func Project(libraryID int64, views []shell.BorrowingView, query Query) LibraryLoans {
	result := LibraryLoans{
		LibraryID: libraryID,
		Loans:     make([]LoanInfo, 0, len(views)),
	}

	for _, view := range views {
		overdue := view.DueDate.Before(query.Now)
		if overdue {
			result.Overdue++
		}

		result.Loans = append(result.Loans, LoanInfo{
			BorrowingID:   view.ID,
			BookID:        view.BookID,
			BookRef:       view.BookRef,
			BookTitle:     view.BookTitle,
			MemberID:      view.MemberID,
			MemberUserID:  view.MemberUserID,
			MemberName:    view.MemberName,
			ReservationID: view.ReservationID,
			IssueDate:     view.IssueDate,
			DueDate:       view.DueDate,
			Overdue:       overdue,
			Reminded:      view.ReminderSentAt != nil,
		})
	}

	result.Count = len(result.Loans)

	return result
}
