package memberreservations

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	queryType = "MemberReservations"
)

// Query represents the input for listing the reservations of the calling member.
// An empty Status lists all statuses.
type Query struct {
	Actor  core.Actor
	Status core.ReservationStatus
	Now    time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(actor core.Actor, status core.ReservationStatus, now time.Time) Query {
	return Query{
		Actor:  actor,
		Status: status,
		Now:    now,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
