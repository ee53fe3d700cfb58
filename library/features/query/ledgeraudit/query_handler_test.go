package ledgeraudit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/query/ledgeraudit"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_QueryHandler_Reports_Books_Whose_Counter_Drifted(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	member := GivenMember(t, repos, libraryID)
	supervisor := GivenSupervisor(t, repos, libraryID)

	consistent := GivenBook(t, repos, libraryID, 2)
	GivenReservation(t, repos, consistent, member, core.ReservationPending, FixedNow)

	drifted := GivenBook(t, repos, libraryID, 3)
	require.NoError(t, repos.Books.SaveCopies(ctx, drifted.ID, 3, 1, FixedNow))

	handler := ledgeraudit.NewQueryHandler(db, ledger.New())

	// act
	report, err := handler.Handle(ctx, ledgeraudit.BuildQuery(supervisor.Actor(), 0))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, report.BookCount)
	require.Equal(t, 1, report.DriftCount)
	assert.Equal(t, drifted.ID, report.Drifting[0].BookID)
	assert.Equal(t, 2, report.Drifting[0].Drift())
}

func Test_QueryHandler_Audit_Is_For_Supervisors_And_Admins(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	GivenBook(t, repos, libraryID, 1)
	librarian := GivenLibrarian(t, repos, libraryID)
	member := GivenMember(t, repos, libraryID)
	admin := GivenAdmin(t, repos)

	handler := ledgeraudit.NewQueryHandler(db, ledger.New())

	// act
	_, librarianErr := handler.Handle(ctx, ledgeraudit.BuildQuery(librarian.Actor(), 0))
	_, memberErr := handler.Handle(ctx, ledgeraudit.BuildQuery(member.Actor(), 0))
	report, adminErr := handler.Handle(ctx, ledgeraudit.BuildQuery(admin.Actor(), libraryID))

	// assert
	assert.ErrorIs(t, librarianErr, core.ErrForbidden)
	assert.ErrorIs(t, memberErr, core.ErrForbidden)
	require.NoError(t, adminErr)
	assert.Equal(t, 1, report.BookCount)
	assert.Zero(t, report.DriftCount)
}
