package core

import "time"

// BookCopiesChangedEventType is the type identifier of BookCopiesChanged.
const BookCopiesChangedEventType = "BookCopiesChanged"

// BookCopiesChanged is emitted when the number of physical copies of a book changes.
type BookCopiesChanged struct {
	EventType     string
	BookID        int64
	LibraryID     int64
	PreviousTotal int
	TotalCopies   int
	ChangedBy     int64
	OccurredAt    OccurredAt
}

// BuildBookCopiesChanged creates a new BookCopiesChanged event.
func BuildBookCopiesChanged(
	book Book,
	totalCopies int,
	changedBy int64,
	occurredAt time.Time,
) BookCopiesChanged {

	return BookCopiesChanged{
		EventType:     BookCopiesChangedEventType,
		BookID:        book.ID,
		LibraryID:     book.LibraryID,
		PreviousTotal: book.TotalCopies,
		TotalCopies:   totalCopies,
		ChangedBy:     changedBy,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e BookCopiesChanged) IsEventType() string {
	return BookCopiesChangedEventType
}

func (e BookCopiesChanged) HasOccurredAt() OccurredAt {
	return e.OccurredAt
}

func (e BookCopiesChanged) IsErrorEvent() bool {
	return false
}
