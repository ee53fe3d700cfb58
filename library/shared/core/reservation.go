package core

import (
	"encoding/hex"
	"regexp"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is a state of the reservation lifecycle.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationApproved  ReservationStatus = "approved"
	ReservationRejected  ReservationStatus = "rejected"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationExpired   ReservationStatus = "expired"
	ReservationFulfilled ReservationStatus = "fulfilled"
	ReservationBorrowed  ReservationStatus = "borrowed"
	ReservationReturned  ReservationStatus = "returned"
)

// ReservationTTL is how long a pending reservation stays valid.
const ReservationTTL = 7 * 24 * time.Hour

// AllReservationStatuses lists every status in lifecycle order.
var AllReservationStatuses = []ReservationStatus{
	ReservationPending,
	ReservationApproved,
	ReservationRejected,
	ReservationCancelled,
	ReservationExpired,
	ReservationFulfilled,
	ReservationBorrowed,
	ReservationReturned,
}

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:  {ReservationApproved, ReservationRejected, ReservationCancelled, ReservationExpired},
	ReservationApproved: {ReservationBorrowed, ReservationFulfilled},
	ReservationBorrowed: {ReservationReturned},
}

// Valid reports whether s is a known status.
func (s ReservationStatus) Valid() bool {
	return slices.Contains(AllReservationStatuses, s)
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	return slices.Contains(reservationTransitions[s], next)
}

// IsTerminal reports whether no transition leaves s.
func (s ReservationStatus) IsTerminal() bool {
	return len(reservationTransitions[s]) == 0
}

// HoldsCopy reports whether a reservation in s claims a copy of its book.
func (s ReservationStatus) HoldsCopy() bool {
	return s == ReservationPending || s == ReservationApproved || s == ReservationBorrowed
}

// LedgerEffectOf returns what moving from one status to another does to the book's available copies.
// Leaving a copy-holding status for one that holds nothing gives the copy back. Approved to borrowed
// hands the claim over to the loan.
func LedgerEffectOf(from, to ReservationStatus) LedgerEffect {
	if from.HoldsCopy() && !to.HoldsCopy() {
		return ReleaseCopy
	}

	return NoLedgerEffect
}

// Reservation is a member's claim on one copy of a book.
type Reservation struct {
	ID              int64
	ReservationID   string
	BookID          int64
	MemberID        int64
	ReservationDate time.Time
	ExpiryDate      time.Time
	Status          ReservationStatus
	Notes           string
	LibrarianNotes  string
	RejectionReason string
	CancelledDate   *time.Time
	UpdatedAt       time.Time
}

// NewPendingReservation builds the reservation a member creates at reservedAt.
func NewPendingReservation(reference string, bookID, memberID int64, notes string, reservedAt time.Time) Reservation {
	reservedAt = ToOccurredAt(reservedAt)

	return Reservation{
		ReservationID:   reference,
		BookID:          bookID,
		MemberID:        memberID,
		ReservationDate: reservedAt,
		ExpiryDate:      reservedAt.Add(ReservationTTL),
		Status:          ReservationPending,
		Notes:           notes,
		UpdatedAt:       reservedAt,
	}
}

// IsExpiredAt reports whether a pending reservation is past its expiry day at now.
// A reservation expires once its expiry date lies before the start of the current day.
func (r Reservation) IsExpiredAt(now time.Time) bool {
	return r.Status == ReservationPending && r.ExpiryDate.Before(StartOfDay(now))
}

// Apply returns r with the state change described by event. Events that do not concern
// reservations leave r untouched.
func (r Reservation) Apply(event DomainEvent) Reservation {
	switch e := event.(type) {
	case ReservationWasCancelled:
		cancelledAt := e.OccurredAt
		r.Status = ReservationCancelled
		r.CancelledDate = &cancelledAt

	case ReservationWasExpired:
		r.Status = ReservationExpired

	case ReservationWasApproved:
		r.Status = ReservationApproved
		r.LibrarianNotes = e.LibrarianNotes

	case ReservationWasRejected:
		r.Status = ReservationRejected
		r.RejectionReason = e.Reason
		r.LibrarianNotes = e.LibrarianNotes

	case ReservationWasFulfilled:
		r.Status = ReservationFulfilled
		if e.LibrarianNotes != "" {
			r.LibrarianNotes = e.LibrarianNotes
		}

	case BookIssued:
		r.Status = ReservationBorrowed

	case BookReturned:
		r.Status = ReservationReturned

	default:
		return r
	}

	r.UpdatedAt = event.HasOccurredAt()

	return r
}

var reservationIDPattern = regexp.MustCompile(`^RES-[0-9a-f]{8}-\d{8}$`)

// NewReservationID generates the external reference RES-<8 lowercase hex>-<YYYYMMDD>.
func NewReservationID(reservedAt time.Time) string {
	random := uuid.New()

	return "RES-" + hex.EncodeToString(random[:4]) + "-" + reservedAt.UTC().Format("20060102")
}

// IsValidReservationID reports whether reference has the external reference format.
func IsValidReservationID(reference string) bool {
	return reservationIDPattern.MatchString(reference)
}
