package returnbook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/command/issuebook"
	"github.com/snowRepo/LMS-sub006/library/features/command/returnbook"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func givenLoan(t *testing.T, db *memstore.Store, command issuebook.Command) core.BookIssued {
	t.Helper()

	queue := NewRecordingQueue()
	_, err := issuebook.NewCommandHandler(db, ledger.New(), queue).Handle(context.Background(), command)
	require.NoError(t, err, "error in arranging test data")

	issued, ok := queue.Events()[0].(core.BookIssued)
	require.True(t, ok, "error in arranging test data")

	return issued
}

func Test_CommandHandler_Return_Closes_Reservation_Loan_And_Releases(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	member := GivenMember(t, repos, libraryID)
	librarian := GivenLibrarian(t, repos, libraryID)
	reservation := GivenReservation(t, repos, book, member, core.ReservationApproved, FixedNow)
	loan := givenLoan(t, db, issuebook.BuildCommandForReservation(librarian.Actor(), reservation.ID, core.LoanPeriod, FixedNow))
	l := ledger.New()

	handler := returnbook.NewCommandHandler(db, l, notify.NewInlineQueue(notify.NewFanout(repos)))

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(librarian.Actor(), loan.BorrowingID, FixedNow.Add(core.LoanPeriod/2)))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, 1, AvailableCopies(t, repos, book.ID))

	stored, err := repos.Reservations.FindByID(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ReservationReturned, stored.Status)

	inbox := Notifications(t, repos, member.ID)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Book Returned", inbox[0].Title)
	assert.Equal(t, core.NotificationSuccess, inbox[0].Type)

	balances, err := l.Audit(ctx, repos, libraryID)
	require.NoError(t, err)
	assert.Zero(t, balances[0].Drift())
}

func Test_CommandHandler_Return_Twice_Is_Idempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 2)
	member := GivenMember(t, repos, libraryID)
	librarian := GivenLibrarian(t, repos, libraryID)
	loan := givenLoan(t, db, issuebook.BuildCommand(librarian.Actor(), book.ID, member.ID, core.LoanPeriod, FixedNow))
	queue := NewRecordingQueue()

	handler := returnbook.NewCommandHandler(db, ledger.New(), queue)
	command := returnbook.BuildCommand(librarian.Actor(), loan.BorrowingID, FixedNow.Add(core.LoanPeriod*2))

	_, err := handler.Handle(ctx, command)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Equal(t, 2, AvailableCopies(t, repos, book.ID))
	require.Len(t, queue.Events(), 1)

	returned, ok := queue.Events()[0].(core.BookReturned)
	require.True(t, ok)
	assert.True(t, returned.Overdue)
}

func Test_CommandHandler_Return_In_Another_Library_Is_Not_Found(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	librarian := GivenLibrarian(t, repos, libraryID)
	loan := givenLoan(t, db, issuebook.BuildCommand(librarian.Actor(), book.ID, GivenMember(t, repos, libraryID).ID, core.LoanPeriod, FixedNow))
	foreign := GivenLibrarian(t, repos, GivenLibrary(t, repos))

	handler := returnbook.NewCommandHandler(db, ledger.New(), NewRecordingQueue())

	// act
	_, err := handler.Handle(ctx, returnbook.BuildCommand(foreign.Actor(), loan.BorrowingID, FixedNow))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 0, AvailableCopies(t, repos, book.ID))
}
