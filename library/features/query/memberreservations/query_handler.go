package memberreservations

import (
	"context"
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	"github.com/snowRepo/LMS-sub006/store"
)

// QueryHandler reads the member's reservations. Observability is added by observable.QueryWrapper.
type QueryHandler struct {
	transactor shell.Transactor
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(transactor shell.Transactor) QueryHandler {
	return QueryHandler{transactor: transactor}
}

// Handle executes the query: Load -> Project. Reads may be served by a replica.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberReservations, error) {
	if err := query.Actor.RequireRole(core.RoleMember); err != nil {
		return MemberReservations{}, fmt.Errorf("only members have reservations: %w", err)
	}

	if query.Status != "" && !query.Status.Valid() {
		return MemberReservations{}, fmt.Errorf("unknown status %q: %w", query.Status, core.ErrInvalidState)
	}

	views, err := h.transactor.Repositories().Reservations.ListByMember(
		store.WithEventualConsistency(ctx),
		query.Actor.UserID,
		query.Status,
	)
	if err != nil {
		return MemberReservations{}, err
	}

	return Project(views, query), nil
}
