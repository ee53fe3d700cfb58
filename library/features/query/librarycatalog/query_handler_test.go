package librarycatalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/query/librarycatalog"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_QueryHandler_Lists_The_Catalog_Of_The_Members_Library(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	otherLibraryID := GivenLibrary(t, repos)
	member := GivenMember(t, repos, libraryID)

	available := GivenBook(t, repos, libraryID, 2)
	exhausted := GivenBook(t, repos, libraryID, 1)
	GivenReservation(t, repos, exhausted, member, core.ReservationPending, FixedNow)
	GivenBook(t, repos, otherLibraryID, 4)

	handler := librarycatalog.NewQueryHandler(db)

	// act
	catalog, err := handler.Handle(ctx, librarycatalog.BuildQuery(member.Actor(), 0, false))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, catalog.Count)

	byID := map[int64]librarycatalog.BookInfo{}
	for _, info := range catalog.Books {
		byID[info.ID] = info
	}
	assert.True(t, byID[available.ID].Reservable)
	assert.Equal(t, 2, byID[available.ID].AvailableCopies)
	assert.False(t, byID[exhausted.ID].Reservable)
	assert.Equal(t, 0, byID[exhausted.ID].AvailableCopies)
}

func Test_QueryHandler_Active_Only_Hides_Inactive_Books(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	librarian := GivenLibrarian(t, repos, libraryID)
	active := GivenBook(t, repos, libraryID, 1)
	_, err := repos.Books.Insert(ctx, core.Book{
		LibraryID:   libraryID,
		BookID:      "BK-OLD",
		Title:       "Withdrawn",
		TotalCopies: 1,
		Status:      core.BookInactive,
	})
	require.NoError(t, err)

	handler := librarycatalog.NewQueryHandler(db)

	// act
	catalog, err := handler.Handle(ctx, librarycatalog.BuildQuery(librarian.Actor(), 0, true))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, catalog.Count)
	assert.Equal(t, active.ID, catalog.Books[0].ID)
}

func Test_QueryHandler_Catalog_Of_A_Foreign_Library_Is_Not_Found(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	otherLibraryID := GivenLibrary(t, repos)
	member := GivenMember(t, repos, libraryID)

	handler := librarycatalog.NewQueryHandler(db)

	// act
	_, err := handler.Handle(ctx, librarycatalog.BuildQuery(member.Actor(), otherLibraryID, false))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
