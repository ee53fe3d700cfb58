package core

import "time"

// ReservationWasExpiredEventType is the type identifier of ReservationWasExpired.
const ReservationWasExpiredEventType = "ReservationWasExpired"

// ReservationWasExpired is emitted when the expiry sweep closes a pending reservation.
type ReservationWasExpired struct {
	EventType string
	ReservationFacts
	ExpiryDate time.Time
	OccurredAt OccurredAt
}

// BuildReservationWasExpired creates a new ReservationWasExpired event.
func BuildReservationWasExpired(facts ReservationFacts, expiryDate time.Time, occurredAt time.Time) ReservationWasExpired {
	return ReservationWasExpired{
		EventType:        ReservationWasExpiredEventType,
		ReservationFacts: facts,
		ExpiryDate:       expiryDate,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

func (e ReservationWasExpired) IsEventType() string {
	return ReservationWasExpiredEventType
}

func (e ReservationWasExpired) HasOccurredAt() OccurredAt {
	return e.OccurredAt
}

func (e ReservationWasExpired) IsErrorEvent() bool {
	return false
}
