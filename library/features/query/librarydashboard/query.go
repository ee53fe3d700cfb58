package librarydashboard

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	queryType = "LibraryDashboard"
)

// Query represents the input for the dashboard of a library. LibraryID is only needed for admins.
type Query struct {
	Actor     core.Actor
	LibraryID int64
	Now       time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(actor core.Actor, libraryID int64, now time.Time) Query {
	return Query{
		Actor:     actor,
		LibraryID: libraryID,
		Now:       now,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
