package reservebook_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/command/reservebook"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	"github.com/snowRepo/LMS-sub006/store"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	queue := NewRecordingQueue()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 2)
	reader := GivenMember(t, repos, libraryID)

	handler := reservebook.NewCommandHandler(db, ledger.New(), queue)
	command := reservebook.BuildCommand(reader.Actor(), book.ID, "", FixedNow)

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, 1, result.RetryAttempts)
	assert.Equal(t, 1, AvailableCopies(t, repos, book.ID))

	reservation, err := repos.Reservations.FindPendingByMemberAndBook(ctx, reader.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, command.ReservationRef, reservation.ReservationID)
	assert.Equal(t, FixedNow.Add(core.ReservationTTL), reservation.ExpiryDate)

	require.Len(t, queue.Events(), 1)
	created, ok := queue.Events()[0].(core.ReservationCreated)
	require.True(t, ok)
	assert.Equal(t, reservation.ID, created.ReservationID)
}

func Test_CommandHandler_Handle_SecondPendingReservation_LeavesCopiesUnchanged(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	queue := NewRecordingQueue()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 3)
	reader := GivenMember(t, repos, libraryID)
	handler := reservebook.NewCommandHandler(db, ledger.New(), queue)

	_, err := handler.Handle(ctx, reservebook.BuildCommand(reader.Actor(), book.ID, "", FixedNow))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, reservebook.BuildCommand(reader.Actor(), book.ID, "", FixedNow))

	// assert
	assert.ErrorIs(t, err, core.ErrAlreadyExists)
	assert.Equal(t, 2, AvailableCopies(t, repos, book.ID))
	assert.Len(t, queue.Events(), 1, "a refused reservation notifies nobody")
}

func Test_CommandHandler_Handle_NoCopyLeft(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	first := GivenMember(t, repos, libraryID)
	second := GivenMember(t, repos, libraryID)
	handler := reservebook.NewCommandHandler(db, ledger.New(), NewRecordingQueue())

	_, err := handler.Handle(ctx, reservebook.BuildCommand(first.Actor(), book.ID, "", FixedNow))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, reservebook.BuildCommand(second.Actor(), book.ID, "", FixedNow))

	// assert
	assert.ErrorIs(t, err, core.ErrUnavailable)
	assert.Equal(t, 0, AvailableCopies(t, repos, book.ID))

	_, findErr := repos.Reservations.FindPendingByMemberAndBook(ctx, second.ID, book.ID)
	assert.ErrorIs(t, findErr, core.ErrNotFound)
}

func Test_CommandHandler_Handle_UnknownBook(t *testing.T) {
	// arrange
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	reader := GivenMember(t, repos, libraryID)
	handler := reservebook.NewCommandHandler(db, ledger.New(), NewRecordingQueue())

	// act
	_, err := handler.Handle(context.Background(), reservebook.BuildCommand(reader.Actor(), 9999, "", FixedNow))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func Test_CommandHandler_Handle_ConcurrentReservationsOfTheLastCopy(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	handler := reservebook.NewCommandHandler(db, ledger.New(), NewRecordingQueue())

	const contenders = 8
	members := make([]core.User, contenders)
	for i := range members {
		members[i] = GivenMember(t, repos, libraryID)
	}

	var wg sync.WaitGroup
	errs := make([]error, contenders)

	// act
	for i := range members {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = handler.Handle(ctx, reservebook.BuildCommand(members[i].Actor(), book.ID, "", FixedNow))
		}(i)
	}
	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, core.ErrUnavailable)
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, AvailableCopies(t, repos, book.ID))
}

func Test_CommandHandler_Handle_RetriesTransactionConflicts(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	reader := GivenMember(t, repos, libraryID)
	db.FailNextTransactions(store.ErrTransactionConflict, store.ErrTransactionConflict)

	handler := reservebook.NewCommandHandler(db, ledger.New(), NewRecordingQueue(),
		reservebook.WithRetryOptions(shell.WithBaseDelay(0)),
	)

	// act
	result, err := handler.Handle(ctx, reservebook.BuildCommand(reader.Actor(), book.ID, "", FixedNow))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.RetryAttempts)
	assert.Equal(t, 0, AvailableCopies(t, repos, book.ID))
}

func Test_CommandHandler_Handle_NotificationFailureDoesNotUndoTheReservation(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	otherLibraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	reader := GivenMember(t, repos, libraryID)
	GivenLibrarian(t, repos, libraryID)
	GivenLibrarian(t, repos, otherLibraryID)
	db.FailNotificationInserts(errors.New("inbox unavailable"))

	logSpy := NewLogHandlerSpy(false)
	queue := notify.NewInlineQueue(notify.NewFanout(repos), notify.WithLogger(slog.New(logSpy)))
	handler := reservebook.NewCommandHandler(db, ledger.New(), queue)

	// act
	_, err := handler.Handle(ctx, reservebook.BuildCommand(reader.Actor(), book.ID, "", FixedNow))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, AvailableCopies(t, repos, book.ID))
	assert.True(t, logSpy.HasWarnLogWithMessage("notification delivery failed").Assert())
}

func Test_CommandHandler_Handle_NotifiesEveryActiveLibrarianOfTheLibrary(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	otherLibraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	reader := GivenMember(t, repos, libraryID)
	librarians := []core.User{GivenLibrarian(t, repos, libraryID), GivenLibrarian(t, repos, libraryID)}
	inactive := GivenInactiveLibrarian(t, repos, libraryID)
	foreign := GivenLibrarian(t, repos, otherLibraryID)

	handler := reservebook.NewCommandHandler(db, ledger.New(), notify.NewInlineQueue(notify.NewFanout(repos)))

	// act
	_, err := handler.Handle(ctx, reservebook.BuildCommand(reader.Actor(), book.ID, "", FixedNow))

	// assert
	require.NoError(t, err)
	for _, librarian := range librarians {
		notifications := Notifications(t, repos, librarian.ID)
		require.Len(t, notifications, 1)
		assert.Contains(t, notifications[0].Message, reader.Name)
		assert.Contains(t, notifications[0].Message, book.Title)
	}
	assert.Empty(t, Notifications(t, repos, inactive.ID))
	assert.Empty(t, Notifications(t, repos, foreign.ID))
}
