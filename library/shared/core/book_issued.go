package core

import "time"

// BookIssuedEventType is the type identifier of BookIssued.
const BookIssuedEventType = "BookIssued"

// BookIssued is emitted when a copy is handed to a member. ReservationFacts.ReservationID
// is zero for walk-in loans.
type BookIssued struct {
	EventType string
	ReservationFacts
	BorrowingID int64
	IssuedBy    int64
	DueDate     time.Time
	OccurredAt  OccurredAt
}

// BuildBookIssued creates a new BookIssued event.
func BuildBookIssued(
	facts ReservationFacts,
	borrowingID int64,
	issuedBy int64,
	dueDate time.Time,
	occurredAt time.Time,
) BookIssued {

	return BookIssued{
		EventType:        BookIssuedEventType,
		ReservationFacts: facts,
		BorrowingID:      borrowingID,
		IssuedBy:         issuedBy,
		DueDate:          dueDate,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

func (e BookIssued) IsEventType() string {
	return BookIssuedEventType
}

func (e BookIssued) HasOccurredAt() OccurredAt {
	return e.OccurredAt
}

func (e BookIssued) IsErrorEvent() bool {
	return false
}
