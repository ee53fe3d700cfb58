package libraryloans

import (
	"time"
)

// LoanInfo is one active loan.
type LoanInfo struct {
	BorrowingID   int64
	BookID        int64
	BookRef       string
	BookTitle     string
	MemberID      int64
	MemberUserID  string
	MemberName    string
	ReservationID *int64
	IssueDate     time.Time
	DueDate       time.Time
	Overdue       bool
	Reminded      bool
}

// LibraryLoans is the query result.
type LibraryLoans struct {
	LibraryID int64
	Loans     []LoanInfo
	Count     int
	Overdue   int
}
