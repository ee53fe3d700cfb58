package core

import "time"

// BookDueSoonEventType is the type identifier of BookDueSoon.
const BookDueSoonEventType = "BookDueSoon"

// BookDueSoon is emitted once per loan when its due date comes close.
type BookDueSoon struct {
	EventType string
	ReservationFacts
	BorrowingID int64
	DueDate     time.Time
	OccurredAt  OccurredAt
}

// BuildBookDueSoon creates a new BookDueSoon event.
func BuildBookDueSoon(facts ReservationFacts, borrowingID int64, dueDate time.Time, occurredAt time.Time) BookDueSoon {
	return BookDueSoon{
		EventType:        BookDueSoonEventType,
		ReservationFacts: facts,
		BorrowingID:      borrowingID,
		DueDate:          dueDate,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

func (e BookDueSoon) IsEventType() string {
	return BookDueSoonEventType
}

func (e BookDueSoon) HasOccurredAt() OccurredAt {
	return e.OccurredAt
}

func (e BookDueSoon) IsErrorEvent() bool {
	return false
}
