package memberreservations

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

// ReservationInfo is one reservation as the member sees it.
type ReservationInfo struct {
	ID              int64
	ReservationRef  string
	BookID          int64
	BookRef         string
	BookTitle       string
	Status          core.ReservationStatus
	ReservationDate time.Time
	ExpiryDate      time.Time
	Notes           string
	LibrarianNotes  string
	RejectionReason string
	CancelledDate   *time.Time
	PastExpiry      bool
}

// MemberReservations is the query result.
type MemberReservations struct {
	Reservations []ReservationInfo
	Count        int
}
