package core

import "time"

// ReservationWasCancelledEventType is the type identifier of ReservationWasCancelled.
const ReservationWasCancelledEventType = "ReservationWasCancelled"

// ReservationWasCancelled is emitted when the member withdraws a pending reservation.
type ReservationWasCancelled struct {
	EventType string
	ReservationFacts
	OccurredAt OccurredAt
}

// BuildReservationWasCancelled creates a new ReservationWasCancelled event.
func BuildReservationWasCancelled(facts ReservationFacts, occurredAt time.Time) ReservationWasCancelled {
	return ReservationWasCancelled{
		EventType:        ReservationWasCancelledEventType,
		ReservationFacts: facts,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

func (e ReservationWasCancelled) IsEventType() string {
	return ReservationWasCancelledEventType
}

func (e ReservationWasCancelled) HasOccurredAt() OccurredAt {
	return e.OccurredAt
}

func (e ReservationWasCancelled) IsErrorEvent() bool {
	return false
}
