package ledger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_Ledger_Hold_Decrements_Available_Copies(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	book := GivenBook(t, repos, GivenLibrary(t, repos), 2)
	metrics := NewMetricsCollectorSpy()
	l := ledger.New(ledger.WithMetrics(metrics))

	// act
	var held core.Book
	err := db.WithinTransaction(ctx, func(ctx context.Context, tx shell.Repositories) error {
		var holdErr error
		held, holdErr = l.Hold(ctx, tx.Books, book.ID, FixedNow)
		return holdErr
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, held.AvailableCopies)
	assert.Equal(t, 1, AvailableCopies(t, repos, book.ID))
	assert.Equal(t, 1, metrics.CountCounterRecordsForMetric(ledger.CopyMutationsMetric))
}

func Test_Ledger_Hold_Fails_When_No_Copy_Is_Left(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	book := GivenBook(t, repos, GivenLibrary(t, repos), 0)
	l := ledger.New()

	// act
	_, err := l.Hold(ctx, repos.Books, book.ID, FixedNow)

	// assert
	assert.ErrorIs(t, err, core.ErrUnavailable)
	assert.Equal(t, 0, AvailableCopies(t, repos, book.ID))
}

func Test_Ledger_Hold_Fails_For_Inactive_Book(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	book, err := repos.Books.Insert(ctx, core.Book{
		LibraryID:       GivenLibrary(t, repos),
		BookID:          "BK-INACTIVE",
		Title:           "Withdrawn",
		TotalCopies:     3,
		AvailableCopies: 3,
		Status:          core.BookInactive,
	})
	require.NoError(t, err)

	// act
	_, err = ledger.New().Hold(ctx, repos.Books, book.ID, FixedNow)

	// assert
	assert.ErrorIs(t, err, core.ErrUnavailable)
	assert.Equal(t, 3, AvailableCopies(t, repos, book.ID))
}

func Test_Ledger_Release_Never_Exceeds_Total(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	book := GivenBook(t, repos, GivenLibrary(t, repos), 1)
	logSpy := NewLogHandlerSpy(false)
	l := ledger.New(ledger.WithLogger(slog.New(logSpy)))

	// act
	released, err := l.Release(ctx, repos.Books, book.ID, FixedNow)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, released.AvailableCopies)
	assert.Equal(t, 1, AvailableCopies(t, repos, book.ID))
	assert.True(t, logSpy.HasWarnLogWithMessage("ledger release ignored, all copies already available").Assert())
}

func Test_Ledger_Apply_Pairs_Hold_And_Release(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	book := GivenBook(t, repos, GivenLibrary(t, repos), 1)
	l := ledger.New()

	// act
	holdErr := l.Apply(ctx, repos.Books, core.HoldCopy, book.ID, FixedNow)
	afterHold := AvailableCopies(t, repos, book.ID)
	releaseErr := l.Apply(ctx, repos.Books, core.ReleaseCopy, book.ID, FixedNow)
	noopErr := l.Apply(ctx, repos.Books, core.NoLedgerEffect, book.ID, FixedNow)

	// assert
	assert.NoError(t, holdErr)
	assert.NoError(t, releaseErr)
	assert.NoError(t, noopErr)
	assert.Equal(t, 0, afterHold)
	assert.Equal(t, 1, AvailableCopies(t, repos, book.ID))
	assert.Error(t, l.Apply(ctx, repos.Books, core.LedgerEffect("borrow"), book.ID, FixedNow))
}

func Test_Ledger_AdjustTotal(t *testing.T) {
	testCases := []struct {
		name              string
		newTotal          int
		expectedErr       error
		expectedTotal     int
		expectedAvailable int
	}{
		{"increase keeps held copies", 5, nil, 5, 4},
		{"decrease down to held copies", 1, nil, 1, 0},
		{"decrease below held copies", 0, core.ErrUnavailable, 3, 2},
		{"negative total", -1, core.ErrInvalidState, 3, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			db := memstore.New()
			repos := db.Repositories()
			libraryID := GivenLibrary(t, repos)
			book := GivenBook(t, repos, libraryID, 3)
			GivenReservation(t, repos, book, GivenMember(t, repos, libraryID), core.ReservationPending, FixedNow)

			// act
			_, err := ledger.New().AdjustTotal(ctx, repos.Books, book.ID, tc.newTotal, FixedNow)

			// assert
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}

			current, findErr := repos.Books.FindByID(ctx, book.ID)
			require.NoError(t, findErr)
			assert.Equal(t, tc.expectedTotal, current.TotalCopies)
			assert.Equal(t, tc.expectedAvailable, current.AvailableCopies)
		})
	}
}

func Test_Ledger_Hold_Is_Rolled_Back_With_The_Transaction(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	book := GivenBook(t, repos, GivenLibrary(t, repos), 1)
	l := ledger.New()

	// act
	err := db.WithinTransaction(ctx, func(ctx context.Context, tx shell.Repositories) error {
		if _, holdErr := l.Hold(ctx, tx.Books, book.ID, FixedNow); holdErr != nil {
			return holdErr
		}
		return core.ErrInvalidState
	})

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidState)
	assert.Equal(t, 1, AvailableCopies(t, repos, book.ID))
}

func Test_Ledger_Audit_Reports_Drift(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	member := GivenMember(t, repos, libraryID)
	consistent := GivenBook(t, repos, libraryID, 2)
	drifted := GivenBook(t, repos, libraryID, 2)
	GivenReservation(t, repos, consistent, member, core.ReservationApproved, FixedNow)
	require.NoError(t, repos.Books.SaveCopies(ctx, drifted.ID, 2, 1, FixedNow))

	// act
	balances, err := ledger.New().Audit(ctx, repos, libraryID)

	// assert
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, consistent.ID, balances[0].BookID)
	assert.Equal(t, 0, balances[0].Drift())
	assert.Equal(t, 1, balances[0].HoldingRecords)
	assert.Equal(t, drifted.ID, balances[1].BookID)
	assert.Equal(t, 1, balances[1].Drift())
}
