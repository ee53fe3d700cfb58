package libraryreservations

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	queryType = "LibraryReservations"
)

// Query represents the input for the reservation queue of a library.
// LibraryID is only needed for admins, Status empty means all statuses.
type Query struct {
	Actor     core.Actor
	LibraryID int64
	Status    core.ReservationStatus
	Now       time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(actor core.Actor, libraryID int64, status core.ReservationStatus, now time.Time) Query {
	return Query{
		Actor:     actor,
		LibraryID: libraryID,
		Status:    status,
		Now:       now,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
