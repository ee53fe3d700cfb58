package librarydashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/query/librarydashboard"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_QueryHandler_Sums_Up_Books_Reservations_And_Loans(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	otherLibraryID := GivenLibrary(t, repos)
	member := GivenMember(t, repos, libraryID)
	librarian := GivenLibrarian(t, repos, libraryID)

	popular := GivenBook(t, repos, libraryID, 3)
	_, err := repos.Books.Insert(ctx, core.Book{
		LibraryID:       libraryID,
		BookID:          "BK-RETIRED",
		Title:           "Retired",
		TotalCopies:     2,
		AvailableCopies: 2,
		Status:          core.BookInactive,
	})
	require.NoError(t, err)
	foreign := GivenBook(t, repos, otherLibraryID, 5)

	GivenReservation(t, repos, popular, member, core.ReservationPending, FixedNow)
	GivenReservation(t, repos, popular, member, core.ReservationApproved, FixedNow)
	GivenReservation(t, repos, popular, member, core.ReservationCancelled, FixedNow)

	givenLoan(t, db, popular.ID, member.ID, librarian.ID, FixedNow.Add(-24*time.Hour))
	givenLoan(t, db, popular.ID, member.ID, librarian.ID, FixedNow.Add(24*time.Hour))
	givenLoan(t, db, foreign.ID, member.ID, librarian.ID, FixedNow.Add(-24*time.Hour))

	handler := librarydashboard.NewQueryHandler(db)

	// act
	dashboard, err := handler.Handle(ctx, librarydashboard.BuildQuery(librarian.Actor(), 0, FixedNow))

	// assert
	require.NoError(t, err)
	assert.Equal(t, libraryID, dashboard.LibraryID)
	assert.Equal(t, 2, dashboard.TotalBooks)
	assert.Equal(t, 1, dashboard.ActiveBooks)
	assert.Equal(t, 5, dashboard.TotalCopies)
	assert.Equal(t, 3, dashboard.AvailableCopies)
	assert.Equal(t, 2, dashboard.Reserved)
	assert.Equal(t, 3, dashboard.Reservations)
	assert.Equal(t, 1, dashboard.ByStatus[core.ReservationCancelled])
	assert.Equal(t, 0, dashboard.ByStatus[core.ReservationExpired])
	assert.Len(t, dashboard.ByStatus, len(core.AllReservationStatuses))
	assert.Equal(t, 2, dashboard.ActiveLoans)
	assert.Equal(t, 1, dashboard.OverdueLoans)
}

func Test_QueryHandler_Dashboard_Is_Staff_Only(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	member := GivenMember(t, repos, libraryID)

	handler := librarydashboard.NewQueryHandler(db)

	// act
	_, err := handler.Handle(ctx, librarydashboard.BuildQuery(member.Actor(), 0, FixedNow))

	// assert
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func givenLoan(t *testing.T, db *memstore.Store, bookID, memberID, issuedBy int64, dueDate time.Time) {
	t.Helper()

	_, err := db.Repositories().Borrowings.Insert(context.Background(), core.Borrowing{
		BookID:    bookID,
		MemberID:  memberID,
		IssuedBy:  issuedBy,
		IssueDate: dueDate.Add(-core.LoanPeriod),
		DueDate:   dueDate,
		Status:    core.BorrowingActive,
	})
	require.NoError(t, err, "error in arranging test data")
}
