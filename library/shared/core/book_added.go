package core

import "time"

// BookAddedEventType is the type identifier of BookAdded.
const BookAddedEventType = "BookAdded"

// BookAdded is emitted when staff add a title to the catalog of a library.
type BookAdded struct {
	EventType   string
	BookRef     string
	LibraryID   int64
	Title       string
	AuthorName  string
	TotalCopies int
	AddedBy     int64
	OccurredAt  OccurredAt
}

// BuildBookAdded creates a new BookAdded event.
func BuildBookAdded(
	bookRef string,
	libraryID int64,
	title string,
	authorName string,
	totalCopies int,
	addedBy int64,
	occurredAt time.Time,
) BookAdded {

	return BookAdded{
		EventType:   BookAddedEventType,
		BookRef:     bookRef,
		LibraryID:   libraryID,
		Title:       title,
		AuthorName:  authorName,
		TotalCopies: totalCopies,
		AddedBy:     addedBy,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e BookAdded) IsEventType() string {
	return BookAddedEventType
}

func (e BookAdded) HasOccurredAt() OccurredAt {
	return e.OccurredAt
}

func (e BookAdded) IsErrorEvent() bool {
	return false
}
