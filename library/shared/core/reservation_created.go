package core

import "time"

// ReservationCreatedEventType is the type identifier of ReservationCreated.
const ReservationCreatedEventType = "ReservationCreated"

// ReservationCreated is emitted when a member reserves a copy.
type ReservationCreated struct {
	EventType string
	ReservationFacts
	ExpiryDate time.Time
	OccurredAt OccurredAt
}

// BuildReservationCreated creates a new ReservationCreated event.
func BuildReservationCreated(facts ReservationFacts, expiryDate time.Time, occurredAt time.Time) ReservationCreated {
	return ReservationCreated{
		EventType:        ReservationCreatedEventType,
		ReservationFacts: facts,
		ExpiryDate:       expiryDate,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ReservationCreated) IsEventType() string {
	return ReservationCreatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationCreated) HasOccurredAt() OccurredAt {
	return e.OccurredAt
}

// IsErrorEvent returns false as this is a success event.
func (e ReservationCreated) IsErrorEvent() bool {
	return false
}
