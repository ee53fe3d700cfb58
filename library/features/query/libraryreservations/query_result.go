package libraryreservations

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

// ReservationInfo is one entry of the queue.
type ReservationInfo struct {
	ID              int64
	ReservationRef  string
	BookID          int64
	BookRef         string
	BookTitle       string
	MemberID        int64
	MemberUserID    string
	MemberName      string
	Status          core.ReservationStatus
	ReservationDate time.Time
	ExpiryDate      time.Time
	Notes           string
	LibrarianNotes  string
	PastExpiry      bool
}

// LibraryReservations is the query result.
type LibraryReservations struct {
	LibraryID    int64
	Reservations []ReservationInfo
	Count        int
}
