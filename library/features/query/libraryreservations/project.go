package libraryreservations

import (
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// Project turns the stored reservations of a library into the staff queue, keeping their order.
func Project(libraryID int64, views []shell.ReservationView, query Query) LibraryReservations {
	infos := make([]ReservationInfo, 0, len(views))

	for _, view := range views {
		infos = append(infos, ReservationInfo{
			ID:              view.ID,
			ReservationRef:  view.ReservationID,
			BookID:          view.BookID,
			BookRef:         view.BookRef,
			BookTitle:       view.BookTitle,
			MemberID:        view.MemberID,
			MemberUserID:    view.MemberUserID,
			MemberName:      view.MemberName,
			Status:          view.Status,
			ReservationDate: view.ReservationDate,
			ExpiryDate:      view.ExpiryDate,
			Notes:           view.Notes,
			LibrarianNotes:  view.LibrarianNotes,
			PastExpiry:      view.IsExpiredAt(query.Now),
		})
	}

	return LibraryReservations{
		LibraryID:    libraryID,
		Reservations: infos,
		Count:        len(infos),
	}
}
