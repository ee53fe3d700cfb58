package core

import "time"

// ReservationWasApprovedEventType is the type identifier of ReservationWasApproved.
const ReservationWasApprovedEventType = "ReservationWasApproved"

// ReservationWasApproved is emitted when library staff confirm a pending reservation.
type ReservationWasApproved struct {
	EventType string
	ReservationFacts
	ApprovedBy     int64
	LibrarianNotes string
	OccurredAt     OccurredAt
}

// BuildReservationWasApproved creates a new ReservationWasApproved event.
func BuildReservationWasApproved(
	facts ReservationFacts,
	approvedBy int64,
	librarianNotes string,
	occurredAt time.Time,
) ReservationWasApproved {

	return ReservationWasApproved{
		EventType:        ReservationWasApprovedEventType,
		ReservationFacts: facts,
		ApprovedBy:       approvedBy,
		LibrarianNotes:   librarianNotes,
		OccurredAt:       ToOccurredAt(occurredAt),
	}
}

func (e ReservationWasApproved) IsEventType() string {
	return ReservationWasApprovedEventType
}

func (e ReservationWasApproved) HasOccurredAt() OccurredAt {
	return e.OccurredAt
}

func (e ReservationWasApproved) IsErrorEvent() bool {
	return false
}
