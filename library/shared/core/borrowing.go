package core

import "time"

// BorrowingStatus is the state of a loan.
type BorrowingStatus string

const (
	BorrowingActive   BorrowingStatus = "active"
	BorrowingReturned BorrowingStatus = "returned"
)

// LoanPeriod is the default time a member may keep a copy.
const LoanPeriod = 14 * 24 * time.Hour

// Borrowing is a copy handed to a member. ReservationID is set when the loan fulfils an
// approved reservation, nil for walk-in loans.
type Borrowing struct {
	ID             int64
	BookID         int64
	MemberID       int64
	ReservationID  *int64
	IssuedBy       int64
	IssueDate      time.Time
	DueDate        time.Time
	ReturnDate     *time.Time
	Status         BorrowingStatus
	ReminderSentAt *time.Time
}

// IsWalkIn reports whether the loan holds its own copy instead of a reservation's.
func (b Borrowing) IsWalkIn() bool {
	return b.ReservationID == nil
}

// NeedsDueReminder reports whether an active, not yet reminded loan falls due within window of now.
// Overdue loans are included so a missed sweep still reminds once.
func (b Borrowing) NeedsDueReminder(now time.Time, window time.Duration) bool {
	return b.Status == BorrowingActive && b.ReminderSentAt == nil && !b.DueDate.After(now.Add(window))
}

// Apply returns b with the state change described by event.
func (b Borrowing) Apply(event DomainEvent) Borrowing {
	switch e := event.(type) {
	case BookReturned:
		returnedAt := e.OccurredAt
		b.Status = BorrowingReturned
		b.ReturnDate = &returnedAt

	case BookDueSoon:
		remindedAt := e.OccurredAt
		b.ReminderSentAt = &remindedAt
	}

	return b
}
