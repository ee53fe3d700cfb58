package approvereservation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/command/approvereservation"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
)

func givenState(status core.ReservationStatus, reservedAt time.Time) approvereservation.State {
	reservation := core.NewPendingReservation("RES-0a1b2c3d-20250310", 7, 42, "", reservedAt)
	reservation.ID = 3
	reservation.Status = status

	return approvereservation.State{
		Reservation: reservation,
		Book:        core.Book{ID: 7, LibraryID: 1, Title: "Parable of the Sower", TotalCopies: 1, Status: core.BookActive},
	}
}

func Test_Decide(t *testing.T) {
	librarian := core.Actor{UserID: 5, Role: core.RoleLibrarian, LibraryID: 1}
	foreignLibrarian := core.Actor{UserID: 6, Role: core.RoleLibrarian, LibraryID: 2}
	supervisor := core.Actor{UserID: 7, Role: core.RoleSupervisor, LibraryID: 1}
	admin := core.Actor{UserID: 1, Role: core.RoleAdmin}
	member := core.Actor{UserID: 42, Role: core.RoleMember, LibraryID: 1}

	testCases := []struct {
		name     string
		actor    core.Actor
		state    approvereservation.State
		expected error
	}{
		{name: "librarian approves pending", actor: librarian, state: givenState(core.ReservationPending, FixedNow)},
		{
			name:     "supervisor is forbidden",
			actor:    supervisor,
			state:    givenState(core.ReservationPending, FixedNow),
			expected: core.ErrForbidden,
		},
		{
			name:     "admin is forbidden",
			actor:    admin,
			state:    givenState(core.ReservationPending, FixedNow),
			expected: core.ErrForbidden,
		},
		{
			name:     "member is forbidden",
			actor:    member,
			state:    givenState(core.ReservationPending, FixedNow),
			expected: core.ErrForbidden,
		},
		{
			name:     "other library is not found",
			actor:    foreignLibrarian,
			state:    givenState(core.ReservationPending, FixedNow),
			expected: core.ErrNotFound,
		},
		{
			name:     "cancelled is invalid",
			actor:    librarian,
			state:    givenState(core.ReservationCancelled, FixedNow),
			expected: core.ErrInvalidState,
		},
		{
			name:     "approved again is invalid",
			actor:    librarian,
			state:    givenState(core.ReservationApproved, FixedNow),
			expected: core.ErrInvalidState,
		},
		{
			name:     "pending past expiry is invalid",
			actor:    librarian,
			state:    givenState(core.ReservationPending, FixedNow.AddDate(0, 0, -9)),
			expected: core.ErrInvalidState,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := approvereservation.Decide(tc.state, approvereservation.BuildCommand(tc.actor, 3, "shelf B", FixedNow))

			// assert
			if tc.expected != nil {
				assert.ErrorIs(t, result.HasError(), tc.expected)
				return
			}

			require.NoError(t, result.HasError())
			assert.Equal(t, core.NoLedgerEffect, result.Effect)
			event, ok := result.Event.(core.ReservationWasApproved)
			require.True(t, ok)
			assert.Equal(t, tc.actor.UserID, event.ApprovedBy)
			assert.Equal(t, "shelf B", event.LibrarianNotes)
		})
	}
}
