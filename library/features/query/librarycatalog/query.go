package librarycatalog

import (
	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	queryType = "LibraryCatalog"
)

// Query represents the input for listing the catalog. LibraryID is only needed for admins.
// ActiveOnly hides books that cannot be reserved.
type Query struct {
	Actor      core.Actor
	LibraryID  int64
	ActiveOnly bool
}

// BuildQuery creates a new Query.
func BuildQuery(actor core.Actor, libraryID int64, activeOnly bool) Query {
	return Query{
		Actor:      actor,
		LibraryID:  libraryID,
		ActiveOnly: activeOnly,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
