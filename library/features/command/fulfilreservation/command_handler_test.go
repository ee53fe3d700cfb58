package fulfilreservation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/command/fulfilreservation"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_CommandHandler_Fulfil_Releases_The_Hold_Of_An_Approved_Reservation(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	member := GivenMember(t, repos, libraryID)
	librarian := GivenLibrarian(t, repos, libraryID)
	reservation := GivenReservation(t, repos, book, member, core.ReservationApproved, FixedNow)
	queue := NewRecordingQueue()

	handler := fulfilreservation.NewCommandHandler(db, ledger.New(), queue)

	// act
	_, err := handler.Handle(ctx, fulfilreservation.BuildCommand(librarian.Actor(), reservation.ID, "picked up", FixedNow))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, AvailableCopies(t, repos, book.ID))
	assert.Equal(t, 1, queue.CountOfType(core.ReservationWasFulfilledEventType))

	stored, err := repos.Reservations.FindByID(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ReservationFulfilled, stored.Status)
	assert.Equal(t, "picked up", stored.LibrarianNotes)
}

func Test_CommandHandler_Fulfil_Of_Pending_Reservation_Is_Invalid(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	reservation := GivenReservation(t, repos, book, GivenMember(t, repos, libraryID), core.ReservationPending, FixedNow)

	handler := fulfilreservation.NewCommandHandler(db, ledger.New(), NewRecordingQueue())

	// act
	_, err := handler.Handle(ctx, fulfilreservation.BuildCommand(GivenLibrarian(t, repos, libraryID).Actor(), reservation.ID, "", FixedNow))

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidState)
	assert.Equal(t, 0, AvailableCopies(t, repos, book.ID))
}
