package notifications

import (
	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	queryType = "Notifications"

	// DefaultLimit is used when the caller asks for no limit or a negative one.
	DefaultLimit = 50

	// MaxLimit caps how many notifications one query returns.
	MaxLimit = 200
)

// Query represents the input for reading the actor's inbox.
type Query struct {
	Actor      core.Actor
	UnreadOnly bool
	Limit      int
}

// BuildQuery creates a new Query. The limit is clamped to (0, MaxLimit].
func BuildQuery(actor core.Actor, unreadOnly bool, limit int) Query {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Query{
		Actor:      actor,
		UnreadOnly: unreadOnly,
		Limit:      limit,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
