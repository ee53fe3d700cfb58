package core

import "time"

// ReservationWasRejectedEventType is the type identifier of ReservationWasRejected.
const ReservationWasRejectedEventType = "ReservationWasRejected"

// ReservationWasRejected is emitted when library staff decline a pending reservation.
type ReservationWasRejected struct {
	EventType string
	ReservationFacts
	RejectedBy     int64
	Reason         string
	LibrarianNotes string
	OccurredAt     OccurredAt
}

// BuildReservationWasRejected creates a new ReservationWasRejected event.
func BuildReservationWasRejected(
	facts ReservationFacts,
	rejectedBy int64,
	reason string,
	librarianNotes string,
	occurredAt time.Time,
) ReservationWasRejected {

	return ReservationWasRejected{
		EventType:        ReservationWasRejectedEventType,
		ReservationFacts: facts,
		RejectedBy:       rejectedBy,
		Reason:           reason,
		LibrarianNotes:   librarianNotes,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

func (e ReservationWasRejected) IsEventType() string {
	return ReservationWasRejectedEventType
}

func (e ReservationWasRejected) HasOccurredAt() OccurredAt {
	return e.OccurredAt
}

func (e ReservationWasRejected) IsErrorEvent() bool {
	return false
}
