package ledgeraudit

import (
	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	queryType = "LedgerAudit"
)

// Query represents the input for auditing the copies of a library. LibraryID is only needed for admins.
type Query struct {
	Actor     core.Actor
	LibraryID int64
}

// BuildQuery creates a new Query.
func BuildQuery(actor core.Actor, libraryID int64) Query {
	return Query{
		Actor:     actor,
		LibraryID: libraryID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
