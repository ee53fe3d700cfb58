package librarydashboard

import (
	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

// Project computes the dashboard figures.
//
// Query Logic:
//
//	GIVEN: The books of the library, its reservation counts per status and its loan counts
//	WHEN: LibraryDashboard query is executed
//	THEN: Dashboard is returned
//	DETAILS: Reserved is pending plus approved, every status appears in ByStatus, zero when unused
func Project(
	libraryID int64,
	books []core.Book,
	statusCounts map[core.ReservationStatus]int,
	activeLoans int,
	overdueLoans int,
) Dashboard {

	dashboard := Dashboard{
		LibraryID:    libraryID,
		TotalBooks:   len(books),
		ByStatus:     make(map[core.ReservationStatus]int, len(core.AllReservationStatuses)),
		ActiveLoans:  activeLoans,
		OverdueLoans: overdueLoans,
	}

	for _, book := range books {
		if book.Status == core.BookActive {
			dashboard.ActiveBooks++
		}
		dashboard.TotalCopies += book.TotalCopies
		dashboard.AvailableCopies += book.AvailableCopies
	}

	for _, status := range core.AllReservationStatuses {
		dashboard.ByStatus[status] = statusCounts[status]
		dashboard.Reservations += statusCounts[status]
	}

	dashboard.Reserved = statusCounts[core.ReservationPending] + statusCounts[core.ReservationApproved]

	return dashboard
}
