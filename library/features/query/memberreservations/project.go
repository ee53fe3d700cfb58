package memberreservations

import (
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// Project turns the stored reservations into the member's view.
//
// Query Logic:
//
//	GIVEN: The member's reservations joined with their books, newest first
//	WHEN: MemberReservations query is executed
//	THEN: MemberReservations is returned in the same order
//	DETAILS: PastExpiry marks pending reservations the expiry sweep has not reached yet
func Project(views []shell.ReservationView, query Query) MemberReservations {
	infos := make([]ReservationInfo, 0, len(views))

	for _, view := range views {
		infos = append(infos, ReservationInfo{
			ID:              view.ID,
			ReservationRef:  view.ReservationID,
			BookID:          view.BookID,
			BookRef:         view.BookRef,
			BookTitle:       view.BookTitle,
			Status:          view.Status,
			ReservationDate: view.ReservationDate,
			ExpiryDate:      view.ExpiryDate,
			Notes:           view.Notes,
			LibrarianNotes:  view.LibrarianNotes,
			RejectionReason: view.RejectionReason,
			CancelledDate:   view.CancelledDate,
			PastExpiry:      view.IsExpiredAt(query.Now),
		})
	}

	return MemberReservations{
		Reservations: infos,
		Count:        len(infos),
	}
}
