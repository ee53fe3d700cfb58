package core_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

func Test_ReservationStatus_CanTransitionTo(t *testing.T) {
	allowed := map[core.ReservationStatus][]core.ReservationStatus{
		core.ReservationPending: {
			core.ReservationApproved, core.ReservationRejected, core.ReservationCancelled, core.ReservationExpired,
		},
		core.ReservationApproved: {core.ReservationBorrowed, core.ReservationFulfilled},
		core.ReservationBorrowed: {core.ReservationReturned},
	}

	for _, from := range core.AllReservationStatuses {
		for _, to := range core.AllReservationStatuses {
			expected := false
			for _, candidate := range allowed[from] {
				if candidate == to {
					expected = true
				}
			}

			assert.Equal(t, expected, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func Test_ReservationStatus_IsTerminal(t *testing.T) {
	assert.False(t, core.ReservationPending.IsTerminal())
	assert.False(t, core.ReservationApproved.IsTerminal())
	assert.False(t, core.ReservationBorrowed.IsTerminal())
	assert.True(t, core.ReservationRejected.IsTerminal())
	assert.True(t, core.ReservationCancelled.IsTerminal())
	assert.True(t, core.ReservationExpired.IsTerminal())
	assert.True(t, core.ReservationFulfilled.IsTerminal())
	assert.True(t, core.ReservationReturned.IsTerminal())
}

func Test_LedgerEffectOf(t *testing.T) {
	testCases := []struct {
		from     core.ReservationStatus
		to       core.ReservationStatus
		expected core.LedgerEffect
	}{
		{core.ReservationPending, core.ReservationCancelled, core.ReleaseCopy},
		{core.ReservationPending, core.ReservationExpired, core.ReleaseCopy},
		{core.ReservationPending, core.ReservationRejected, core.ReleaseCopy},
		{core.ReservationPending, core.ReservationApproved, core.NoLedgerEffect},
		{core.ReservationApproved, core.ReservationBorrowed, core.NoLedgerEffect},
		{core.ReservationApproved, core.ReservationFulfilled, core.ReleaseCopy},
		{core.ReservationBorrowed, core.ReservationReturned, core.ReleaseCopy},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.expected, core.LedgerEffectOf(tc.from, tc.to))
		})
	}
}

func Test_NewReservationID_Has_Expected_Format(t *testing.T) {
	// arrange
	reservedAt := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)

	// act
	reference := core.NewReservationID(reservedAt)

	// assert
	assert.True(t, core.IsValidReservationID(reference), reference)
	assert.True(t, strings.HasSuffix(reference, "-20250309"))
	assert.Len(t, reference, len("RES-00000000-20250309"))
	assert.NotEqual(t, reference, core.NewReservationID(reservedAt))
}

func Test_IsValidReservationID_Rejects_Malformed_References(t *testing.T) {
	assert.False(t, core.IsValidReservationID("RES-ABCDEF12-20250309"))
	assert.False(t, core.IsValidReservationID("RES-abcdef1-20250309"))
	assert.False(t, core.IsValidReservationID("RSV-abcdef12-20250309"))
	assert.False(t, core.IsValidReservationID("RES-abcdef12-2025039"))
}

func Test_NewPendingReservation_Expires_After_Seven_Days(t *testing.T) {
	// arrange
	reservedAt := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)

	// act
	reservation := core.NewPendingReservation("RES-abcdef12-20250309", 7, 42, "pick up friday", reservedAt)

	// assert
	assert.Equal(t, core.ReservationPending, reservation.Status)
	assert.Equal(t, reservedAt.Add(7*24*time.Hour), reservation.ExpiryDate)
	assert.Equal(t, int64(7), reservation.BookID)
	assert.Equal(t, int64(42), reservation.MemberID)
}

func Test_Reservation_IsExpiredAt(t *testing.T) {
	reservation := core.NewPendingReservation("RES-abcdef12-20250301", 1, 1, "", time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC))

	// expiry is 2025-03-08 15:00, so it expires from 2025-03-09 on
	assert.False(t, reservation.IsExpiredAt(time.Date(2025, 3, 8, 23, 59, 0, 0, time.UTC)))
	assert.True(t, reservation.IsExpiredAt(time.Date(2025, 3, 9, 0, 0, 1, 0, time.UTC)))

	reservation.Status = core.ReservationApproved
	assert.False(t, reservation.IsExpiredAt(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func Test_Reservation_Apply(t *testing.T) {
	// arrange
	reservedAt := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	reservation := core.NewPendingReservation("RES-abcdef12-20250301", 1, 2, "", reservedAt)
	book := core.Book{ID: 1, LibraryID: 3, Title: "Dune"}
	facts := core.FactsOf(reservation, book)
	cancelledAt := reservedAt.Add(time.Hour)

	// act
	cancelled := reservation.Apply(core.BuildReservationWasCancelled(facts, cancelledAt))
	rejected := reservation.Apply(core.BuildReservationWasRejected(facts, 9, "damaged", "sorry", cancelledAt))
	unchanged := reservation.Apply(core.BuildBookDueSoon(facts, 1, cancelledAt, cancelledAt))

	// assert
	assert.Equal(t, core.ReservationCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledDate)
	assert.Equal(t, cancelledAt, *cancelled.CancelledDate)
	assert.Equal(t, cancelledAt, cancelled.UpdatedAt)

	assert.Equal(t, core.ReservationRejected, rejected.Status)
	assert.Equal(t, "damaged", rejected.RejectionReason)
	assert.Equal(t, "sorry", rejected.LibrarianNotes)

	assert.Equal(t, reservation, unchanged)
}
