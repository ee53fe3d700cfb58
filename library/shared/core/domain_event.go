package core

// DomainEvent represents any state change in the library domain.
type DomainEvent interface {
	IsEventType() string
	HasOccurredAt() OccurredAt
	IsErrorEvent() bool
}

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// ReservationFacts carries what every reservation event knows about its reservation.
// Notification fan-out renders its messages from these fields.
type ReservationFacts struct {
	ReservationID  int64
	ReservationRef string
	BookID         int64
	BookTitle      string
	LibraryID      int64
	MemberID       int64
}

// FactsOf collects the ReservationFacts of r for book.
func FactsOf(r Reservation, book Book) ReservationFacts {
	return ReservationFacts{
		ReservationID:  r.ID,
		ReservationRef: r.ReservationID,
		BookID:         book.ID,
		BookTitle:      book.Title,
		LibraryID:      book.LibraryID,
		MemberID:       r.MemberID,
	}
}
