package ledgeraudit

import (
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
)

// AuditReport is the query result.
type AuditReport struct {
	LibraryID  int64
	Books      []ledger.BookBalance
	Drifting   []ledger.BookBalance
	BookCount  int
	DriftCount int
}
