package librarycatalog

import (
	"context"

	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	"github.com/snowRepo/LMS-sub006/store"
)

// QueryHandler lists the catalog of a library.
type QueryHandler struct {
	transactor shell.Transactor
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(transactor shell.Transactor) QueryHandler {
	return QueryHandler{transactor: transactor}
}

// Handle executes the query: Scope -> Load -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Catalog, error) {
	libraryID, err := query.Actor.ScopeLibrary(query.LibraryID)
	if err != nil {
		return Catalog{}, err
	}

	books, err := h.transactor.Repositories().Books.ListByLibrary(store.WithEventualConsistency(ctx), libraryID)
	if err != nil {
		return Catalog{}, err
	}

	return Project(libraryID, books, query), nil
}
