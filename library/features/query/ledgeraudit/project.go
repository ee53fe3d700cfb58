package ledgeraudit

import (
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
)

// Project builds the audit report from the balances.
//
// Query Logic:
//
//	GIVEN: The balance of every book of the library
//	WHEN: LedgerAudit query is executed
//	THEN: AuditReport is returned
//	DETAILS: Drifting lists the books whose held copies differ from their holding records
func Project(libraryID int64, balances []ledger.BookBalance) AuditReport {
	drifting := make([]ledger.BookBalance, 0)

	for _, balance := range balances {
		if balance.Drift() != 0 {
			drifting = append(drifting, balance)
		}
	}

	return AuditReport{
		LibraryID:  libraryID,
		Books:      balances,
		Drifting:   drifting,
		BookCount:  len(balances),
		DriftCount: len(drifting),
	}
}
