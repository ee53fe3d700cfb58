package core

import "time"

// BookReturnedEventType is the type identifier of BookReturned.
const BookReturnedEventType = "BookReturned"

// BookReturned is emitted when a borrowed copy comes back to the library.
type BookReturned struct {
	EventType string
	ReservationFacts
	BorrowingID int64
	ReceivedBy  int64
	Overdue     bool
	OccurredAt  OccurredAt
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(
	facts ReservationFacts,
	borrowingID int64,
	receivedBy int64,
	overdue bool,
	occurredAt time.Time,
) BookReturned {

	return BookReturned{
		EventType:        BookReturnedEventType,
		ReservationFacts: facts,
		BorrowingID:      borrowingID,
		ReceivedBy:       receivedBy,
		Overdue:          overdue,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

func (e BookReturned) IsEventType() string {
	return BookReturnedEventType
}

func (e BookReturned) HasOccurredAt() OccurredAt {
	return e.OccurredAt
}

func (e BookReturned) IsErrorEvent() bool {
	return false
}
