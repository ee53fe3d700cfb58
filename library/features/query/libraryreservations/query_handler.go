package libraryreservations

import (
	"context"
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	"github.com/snowRepo/LMS-sub006/store"
)

// QueryHandler reads the reservation queue of a library.
type QueryHandler struct {
	transactor shell.Transactor
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(transactor shell.Transactor) QueryHandler {
	return QueryHandler{transactor: transactor}
}

// Handle executes the query: Authorize -> Load -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LibraryReservations, error) {
	if !query.Actor.IsStaff() {
		return LibraryReservations{}, fmt.Errorf("only library staff see the queue: %w", core.ErrForbidden)
	}

	libraryID, err := query.Actor.ScopeLibrary(query.LibraryID)
	if err != nil {
		return LibraryReservations{}, err
	}

	if query.Status != "" && !query.Status.Valid() {
		return LibraryReservations{}, fmt.Errorf("unknown status %q: %w", query.Status, core.ErrInvalidState)
	}

	views, err := h.transactor.Repositories().Reservations.ListByLibrary(
		store.WithEventualConsistency(ctx),
		libraryID,
		query.Status,
	)
	if err != nil {
		return LibraryReservations{}, err
	}

	return Project(libraryID, views, query), nil
}
