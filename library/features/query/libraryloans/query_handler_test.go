package libraryloans_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/command/issuebook"
	"github.com/snowRepo/LMS-sub006/library/features/query/libraryloans"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_QueryHandler_Lists_Issued_Loans_And_Flags_Overdue_Ones(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 3)
	member := GivenMember(t, repos, libraryID)
	librarian := GivenLibrarian(t, repos, libraryID)

	issue := issuebook.NewCommandHandler(db, ledger.New(), NewRecordingQueue())
	_, err := issue.Handle(ctx, issuebook.BuildCommand(librarian.Actor(), book.ID, member.ID, 7*24*time.Hour, FixedNow))
	require.NoError(t, err)
	_, err = issue.Handle(ctx, issuebook.BuildCommand(librarian.Actor(), book.ID, member.ID, core.LoanPeriod, FixedNow))
	require.NoError(t, err)

	handler := libraryloans.NewQueryHandler(db)

	// act
	loans, err := handler.Handle(ctx, libraryloans.BuildQuery(librarian.Actor(), 0, FixedNow.Add(10*24*time.Hour)))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, loans.Count)
	assert.Equal(t, 1, loans.Overdue)
	assert.True(t, loans.Loans[0].Overdue)
	assert.Equal(t, FixedNow.Add(7*24*time.Hour), loans.Loans[0].DueDate)
	assert.False(t, loans.Loans[1].Overdue)
	assert.Equal(t, member.Name, loans.Loans[0].MemberName)
	assert.Nil(t, loans.Loans[0].ReservationID)
}

func Test_QueryHandler_Loans_Are_Staff_Only(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	member := GivenMember(t, repos, libraryID)

	handler := libraryloans.NewQueryHandler(db)

	// act
	_, err := handler.Handle(ctx, libraryloans.BuildQuery(member.Actor(), 0, FixedNow))

	// assert
	assert.ErrorIs(t, err, core.ErrForbidden)
}
