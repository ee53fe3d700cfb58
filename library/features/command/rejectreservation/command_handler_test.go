package rejectreservation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/command/rejectreservation"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_CommandHandler_Reject_Releases_The_Copy(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	member := GivenMember(t, repos, libraryID)
	librarian := GivenLibrarian(t, repos, libraryID)
	reservation := GivenReservation(t, repos, book, member, core.ReservationPending, FixedNow)

	handler := rejectreservation.NewCommandHandler(db, ledger.New(), notify.NewInlineQueue(notify.NewFanout(repos)))

	// act
	_, err := handler.Handle(ctx, rejectreservation.BuildCommand(
		librarian.Actor(), reservation.ID, "membership suspended", "", FixedNow,
	))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, AvailableCopies(t, repos, book.ID))

	stored, err := repos.Reservations.FindByID(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ReservationRejected, stored.Status)
	assert.Equal(t, "membership suspended", stored.RejectionReason)

	inbox := Notifications(t, repos, member.ID)
	require.Len(t, inbox, 1)
	assert.Contains(t, inbox[0].Message, "membership suspended")
	assert.Equal(t, core.NotificationDanger, inbox[0].Type)
}

func Test_CommandHandler_Reject_Refusals_Leave_Copies_Unchanged(t *testing.T) {
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 3)
	member := GivenMember(t, repos, libraryID)
	librarian := GivenLibrarian(t, repos, libraryID)
	supervisor := GivenSupervisor(t, repos, libraryID)
	admin := GivenAdmin(t, repos)
	handler := rejectreservation.NewCommandHandler(db, ledger.New(), NewRecordingQueue())

	approved := GivenReservation(t, repos, book, member, core.ReservationApproved, FixedNow)
	pending := GivenReservation(t, repos, book, GivenMember(t, repos, libraryID), core.ReservationPending, FixedNow)

	testCases := []struct {
		name          string
		actor         core.Actor
		reservationID int64
		expected      error
	}{
		{name: "approved reservation", actor: librarian.Actor(), reservationID: approved.ID, expected: core.ErrInvalidState},
		{name: "member is forbidden", actor: member.Actor(), reservationID: pending.ID, expected: core.ErrForbidden},
		{name: "supervisor is forbidden", actor: supervisor.Actor(), reservationID: pending.ID, expected: core.ErrForbidden},
		{name: "admin is forbidden", actor: admin.Actor(), reservationID: pending.ID, expected: core.ErrForbidden},
		{name: "missing reservation", actor: librarian.Actor(), reservationID: 9999, expected: core.ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := handler.Handle(ctx, rejectreservation.BuildCommand(tc.actor, tc.reservationID, "", "", FixedNow))

			// assert
			assert.ErrorIs(t, err, tc.expected)
			assert.Equal(t, 1, AvailableCopies(t, repos, book.ID))
		})
	}
}
