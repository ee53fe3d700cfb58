package cancelreservation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/command/cancelreservation"
	"github.com/snowRepo/LMS-sub006/library/features/command/reservebook"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_CommandHandler_Cancel_Releases_The_Copy_And_Notifies_Librarians(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	member := GivenMember(t, repos, libraryID)
	librarian := GivenLibrarian(t, repos, libraryID)
	reservation := GivenReservation(t, repos, book, member, core.ReservationPending, FixedNow)

	handler := cancelreservation.NewCommandHandler(db, ledger.New(), notify.NewInlineQueue(notify.NewFanout(repos)))
	cancelledAt := FixedNow.Add(time.Hour)

	// act
	_, err := handler.Handle(ctx, cancelreservation.BuildCommand(member.Actor(), reservation.ID, cancelledAt))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, AvailableCopies(t, repos, book.ID))

	stored, err := repos.Reservations.FindByID(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ReservationCancelled, stored.Status)
	require.NotNil(t, stored.CancelledDate)
	assert.Equal(t, cancelledAt, *stored.CancelledDate)

	inbox := Notifications(t, repos, librarian.ID)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Reservation Cancelled", inbox[0].Title)
	assert.Empty(t, Notifications(t, repos, member.ID))
}

func Test_CommandHandler_Cancel_Of_Non_Pending_Reservation_Leaves_Copies_Unchanged(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 2)
	member := GivenMember(t, repos, libraryID)
	reservation := GivenReservation(t, repos, book, member, core.ReservationApproved, FixedNow)
	queue := NewRecordingQueue()

	handler := cancelreservation.NewCommandHandler(db, ledger.New(), queue)

	// act
	_, err := handler.Handle(ctx, cancelreservation.BuildCommand(member.Actor(), reservation.ID, FixedNow))

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidState)
	assert.Equal(t, 1, AvailableCopies(t, repos, book.ID))
	assert.Empty(t, queue.Events())
}

func Test_CommandHandler_Cancel_Twice_Releases_Once(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 2)
	member := GivenMember(t, repos, libraryID)
	reservation := GivenReservation(t, repos, book, member, core.ReservationPending, FixedNow)

	handler := cancelreservation.NewCommandHandler(db, ledger.New(), NewRecordingQueue())
	command := cancelreservation.BuildCommand(member.Actor(), reservation.ID, FixedNow)

	_, err := handler.Handle(ctx, command)
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidState)
	assert.Equal(t, 2, AvailableCopies(t, repos, book.ID))
}

func Test_CommandHandler_Cancel_By_Another_Member_Is_Not_Found(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	owner := GivenMember(t, repos, libraryID)
	stranger := GivenMember(t, repos, libraryID)
	reservation := GivenReservation(t, repos, book, owner, core.ReservationPending, FixedNow)

	handler := cancelreservation.NewCommandHandler(db, ledger.New(), NewRecordingQueue())

	// act
	_, err := handler.Handle(ctx, cancelreservation.BuildCommand(stranger.Actor(), reservation.ID, FixedNow))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 0, AvailableCopies(t, repos, book.ID))
}

func Test_CommandHandler_Cancel_Of_Missing_Reservation_Is_Not_Found(t *testing.T) {
	// arrange
	db := memstore.New()
	repos := db.Repositories()
	member := GivenMember(t, repos, GivenLibrary(t, repos))
	handler := cancelreservation.NewCommandHandler(db, ledger.New(), NewRecordingQueue())

	// act
	_, err := handler.Handle(context.Background(), cancelreservation.BuildCommand(member.Actor(), 404, FixedNow))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func Test_Reserve_And_Cancel_Hand_The_Last_Copy_Over(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	memberA := GivenMember(t, repos, libraryID)
	memberB := GivenMember(t, repos, libraryID)

	l := ledger.New()
	queue := NewRecordingQueue()
	reserve := reservebook.NewCommandHandler(db, l, queue)
	cancel := cancelreservation.NewCommandHandler(db, l, queue)

	// act + assert
	_, err := reserve.Handle(ctx, reservebook.BuildCommand(memberA.Actor(), book.ID, "", FixedNow))
	require.NoError(t, err)
	assert.Equal(t, 0, AvailableCopies(t, repos, book.ID))

	_, err = reserve.Handle(ctx, reservebook.BuildCommand(memberB.Actor(), book.ID, "", FixedNow))
	require.ErrorIs(t, err, core.ErrUnavailable)

	r1, err := repos.Reservations.FindPendingByMemberAndBook(ctx, memberA.ID, book.ID)
	require.NoError(t, err)

	_, err = cancel.Handle(ctx, cancelreservation.BuildCommand(memberA.Actor(), r1.ID, FixedNow))
	require.NoError(t, err)
	assert.Equal(t, 1, AvailableCopies(t, repos, book.ID))

	_, err = reserve.Handle(ctx, reservebook.BuildCommand(memberB.Actor(), book.ID, "", FixedNow))
	require.NoError(t, err)
	assert.Equal(t, 0, AvailableCopies(t, repos, book.ID))

	assert.Equal(t, 2, queue.CountOfType(core.ReservationCreatedEventType))
	assert.Equal(t, 1, queue.CountOfType(core.ReservationWasCancelledEventType))
}

func Test_Held_Copies_Match_Holding_Reservations_After_Any_Sequence(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	books := []core.Book{GivenBook(t, repos, libraryID, 3), GivenBook(t, repos, libraryID, 1)}
	members := []core.User{GivenMember(t, repos, libraryID), GivenMember(t, repos, libraryID), GivenMember(t, repos, libraryID)}

	l := ledger.New()
	reserve := reservebook.NewCommandHandler(db, l, NewRecordingQueue())
	cancel := cancelreservation.NewCommandHandler(db, l, NewRecordingQueue())

	// act
	for round := 0; round < 3; round++ {
		for _, member := range members {
			for _, book := range books {
				_, _ = reserve.Handle(ctx, reservebook.BuildCommand(member.Actor(), book.ID, "", FixedNow))
			}
		}

		for i, member := range members {
			if (i+round)%2 == 0 {
				continue
			}
			for _, book := range books {
				if pending, err := repos.Reservations.FindPendingByMemberAndBook(ctx, member.ID, book.ID); err == nil {
					_, _ = cancel.Handle(ctx, cancelreservation.BuildCommand(member.Actor(), pending.ID, FixedNow))
				}
			}
		}
	}

	// assert
	balances, err := l.Audit(ctx, repos, libraryID)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	for _, balance := range balances {
		assert.Zero(t, balance.Drift(), "book %s", balance.BookRef)
		assert.GreaterOrEqual(t, balance.AvailableCopies, 0)
		assert.LessOrEqual(t, balance.AvailableCopies, balance.TotalCopies)
	}
}
