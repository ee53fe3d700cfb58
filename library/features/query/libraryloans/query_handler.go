package libraryloans

import (
	"context"
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	"github.com/snowRepo/LMS-sub006/store"
)

// QueryHandler lists the active loans of a library.
type QueryHandler struct {
	transactor shell.Transactor
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(transactor shell.Transactor) QueryHandler {
	return QueryHandler{transactor: transactor}
}

// Handle executes the query: Authorize -> Load -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LibraryLoans, error) {
	if !query.Actor.IsStaff() {
		return LibraryLoans{}, fmt.Errorf("only library staff see loans: %w", core.ErrForbidden)
	}

	libraryID, err := query.Actor.ScopeLibrary(query.LibraryID)
	if err != nil {
		return LibraryLoans{}, err
	}

	views, err := h.transactor.Repositories().Borrowings.ListActiveByLibrary(store.WithEventualConsistency(ctx), libraryID)
	if err != nil {
		return LibraryLoans{}, err
	}

	return Project(libraryID, views, query), nil
}
