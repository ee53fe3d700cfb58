package core

import "time"

// ReservationWasFulfilledEventType is the type identifier of ReservationWasFulfilled.
const ReservationWasFulfilledEventType = "ReservationWasFulfilled"

// ReservationWasFulfilled is emitted when an approved reservation is closed without a loan,
// for example because the member read the copy on site.
type ReservationWasFulfilled struct {
	EventType string
	ReservationFacts
	FulfilledBy    int64
	LibrarianNotes string
	OccurredAt     OccurredAt
}

// BuildReservationWasFulfilled creates a new ReservationWasFulfilled event.
func BuildReservationWasFulfilled(
	facts ReservationFacts,
	fulfilledBy int64,
	librarianNotes string,
	occurredAt time.Time,
) ReservationWasFulfilled {

	return ReservationWasFulfilled{
		EventType:        ReservationWasFulfilledEventType,
		ReservationFacts: facts,
		FulfilledBy:      fulfilledBy,
		LibrarianNotes:   librarianNotes,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

func (e ReservationWasFulfilled) IsEventType() string {
	return ReservationWasFulfilledEventType
}

func (e ReservationWasFulfilled) HasOccurredAt() OccurredAt {
	return e.OccurredAt
}

func (e ReservationWasFulfilled) IsErrorEvent() bool {
	return false
}
