package librarydashboard

import (
	"context"
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	"github.com/snowRepo/LMS-sub006/store"
)

// QueryHandler reads the dashboard figures of a library.
type QueryHandler struct {
	transactor shell.Transactor
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(transactor shell.Transactor) QueryHandler {
	return QueryHandler{transactor: transactor}
}

// Handle executes the query: Authorize -> Load -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Dashboard, error) {
	if !query.Actor.IsStaff() {
		return Dashboard{}, fmt.Errorf("only library staff see the dashboard: %w", core.ErrForbidden)
	}

	libraryID, err := query.Actor.ScopeLibrary(query.LibraryID)
	if err != nil {
		return Dashboard{}, err
	}

	ctx = store.WithEventualConsistency(ctx)
	repos := h.transactor.Repositories()

	books, err := repos.Books.ListByLibrary(ctx, libraryID)
	if err != nil {
		return Dashboard{}, err
	}

	statusCounts, err := repos.Reservations.CountByStatus(ctx, libraryID)
	if err != nil {
		return Dashboard{}, err
	}

	active, overdue, err := repos.Borrowings.CountActive(ctx, libraryID, query.Now)
	if err != nil {
		return Dashboard{}, err
	}

	return Project(libraryID, books, statusCounts, active, overdue), nil
}
