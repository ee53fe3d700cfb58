package librarydashboard

import (
	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

// Dashboard is the query result.
type Dashboard struct {
	LibraryID       int64
	TotalBooks      int
	ActiveBooks     int
	TotalCopies     int
	AvailableCopies int
	Reserved        int
	ByStatus        map[core.ReservationStatus]int
	ActiveLoans     int
	OverdueLoans    int
	Reservations    int
}
