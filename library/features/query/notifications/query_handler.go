package notifications

import (
	"context"

	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	"github.com/snowRepo/LMS-sub006/store"
)

// QueryHandler reads the actor's own inbox. Every authenticated role has one.
type QueryHandler struct {
	transactor shell.Transactor
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(transactor shell.Transactor) QueryHandler {
	return QueryHandler{transactor: transactor}
}

// Handle executes the query: Load -> Count -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Inbox, error) {
	ctx = store.WithEventualConsistency(ctx)
	repos := h.transactor.Repositories()

	stored, err := repos.Notifications.ListByUser(ctx, query.Actor.UserID, query.UnreadOnly, query.Limit)
	if err != nil {
		return Inbox{}, err
	}

	unread, err := repos.Notifications.CountUnread(ctx, query.Actor.UserID)
	if err != nil {
		return Inbox{}, err
	}

	return Project(stored, unread), nil
}
