package ledgeraudit

import (
	"context"
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// QueryHandler audits the copy counters of a library.
type QueryHandler struct {
	transactor shell.Transactor
	ledger     ledger.Ledger
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(transactor shell.Transactor, ledger ledger.Ledger) QueryHandler {
	return QueryHandler{
		transactor: transactor,
		ledger:     ledger,
	}
}

// Handle executes the query: Authorize -> Audit -> Project.
// The audit runs inside a transaction on the primary, never on a replica.
func (h QueryHandler) Handle(ctx context.Context, query Query) (AuditReport, error) {
	if err := query.Actor.RequireRole(core.RoleSupervisor, core.RoleAdmin); err != nil {
		return AuditReport{}, fmt.Errorf("auditing copies: %w", err)
	}

	libraryID, err := query.Actor.ScopeLibrary(query.LibraryID)
	if err != nil {
		return AuditReport{}, err
	}

	var balances []ledger.BookBalance

	err = h.transactor.WithinTransaction(ctx, func(ctx context.Context, repos shell.Repositories) error {
		var auditErr error
		balances, auditErr = h.ledger.Audit(ctx, repos, libraryID)

		return auditErr
	})
	if err != nil {
		return AuditReport{}, err
	}

	return Project(libraryID, balances), nil
}
