package issuebook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/command/issuebook"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_CommandHandler_Issue_Walk_In_Holds_A_Copy(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 2)
	member := GivenMember(t, repos, libraryID)
	librarian := GivenLibrarian(t, repos, libraryID)
	l := ledger.New()

	handler := issuebook.NewCommandHandler(db, l, notify.NewInlineQueue(notify.NewFanout(repos)))

	// act
	_, err := handler.Handle(ctx, issuebook.BuildCommand(librarian.Actor(), book.ID, member.ID, core.LoanPeriod, FixedNow))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, AvailableCopies(t, repos, book.ID))

	inbox := Notifications(t, repos, member.ID)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Book Issued", inbox[0].Title)
	assert.Contains(t, inbox[0].Message, "Mar 24, 2025")

	balances, err := l.Audit(ctx, repos, libraryID)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Zero(t, balances[0].Drift())
}

func Test_CommandHandler_Issue_From_Approved_Reservation_Transfers_The_Hold(t *testing.T) {
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
	l := ledger.New()

	handler := issuebook.NewCommandHandler(db, l, queue)

	// act
	_, err := handler.Handle(ctx, issuebook.BuildCommandForReservation(librarian.Actor(), reservation.ID, core.LoanPeriod, FixedNow))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, AvailableCopies(t, repos, book.ID))

	stored, err := repos.Reservations.FindByID(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ReservationBorrowed, stored.Status)

	require.Len(t, queue.Events(), 1)
	issued, ok := queue.Events()[0].(core.BookIssued)
	require.True(t, ok)
	assert.NotZero(t, issued.BorrowingID)
	assert.Equal(t, reservation.ReservationID, issued.ReservationRef)
	assert.Equal(t, FixedNow.Add(core.LoanPeriod), issued.DueDate)

	balances, err := l.Audit(ctx, repos, libraryID)
	require.NoError(t, err)
	assert.Zero(t, balances[0].Drift())
}

func Test_CommandHandler_Issue_Refusals(t *testing.T) {
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	otherLibraryID := GivenLibrary(t, repos)
	emptyBook := GivenBook(t, repos, libraryID, 0)
	book := GivenBook(t, repos, libraryID, 1)
	member := GivenMember(t, repos, libraryID)
	foreignMember := GivenMember(t, repos, otherLibraryID)
	librarian := GivenLibrarian(t, repos, libraryID)
	pending := GivenReservation(t, repos, book, member, core.ReservationPending, FixedNow)

	handler := issuebook.NewCommandHandler(db, ledger.New(), NewRecordingQueue())

	testCases := []struct {
		name     string
		command  issuebook.Command
		expected error
	}{
		{
			name:     "no copy left",
			command:  issuebook.BuildCommand(librarian.Actor(), emptyBook.ID, member.ID, core.LoanPeriod, FixedNow),
			expected: core.ErrUnavailable,
		},
		{
			name:     "member of another library",
			command:  issuebook.BuildCommand(librarian.Actor(), book.ID, foreignMember.ID, core.LoanPeriod, FixedNow),
			expected: core.ErrNotFound,
		},
		{
			name:     "members cannot issue",
			command:  issuebook.BuildCommand(member.Actor(), book.ID, member.ID, core.LoanPeriod, FixedNow),
			expected: core.ErrForbidden,
		},
		{
			name:     "pending reservation",
			command:  issuebook.BuildCommandForReservation(librarian.Actor(), pending.ID, core.LoanPeriod, FixedNow),
			expected: core.ErrInvalidState,
		},
		{
			name:     "due date not after issue",
			command:  issuebook.BuildCommand(librarian.Actor(), book.ID, member.ID, 0, FixedNow),
			expected: core.ErrInvalidState,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := handler.Handle(ctx, tc.command)

			// assert
			assert.ErrorIs(t, err, tc.expected)
			assert.Equal(t, 0, AvailableCopies(t, repos, book.ID))
			assert.Equal(t, 0, AvailableCopies(t, repos, emptyBook.ID))
		})
	}
}
