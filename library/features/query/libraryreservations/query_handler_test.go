package libraryreservations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/query/libraryreservations"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_QueryHandler_Lists_The_Queue_Of_The_Librarians_Library(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	otherLibraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 2)
	foreignBook := GivenBook(t, repos, otherLibraryID, 2)
	member := GivenMember(t, repos, libraryID)
	foreignMember := GivenMember(t, repos, otherLibraryID)
	librarian := GivenLibrarian(t, repos, libraryID)

	reservation := GivenReservation(t, repos, book, member, core.ReservationPending, FixedNow)
	GivenReservation(t, repos, foreignBook, foreignMember, core.ReservationPending, FixedNow)

	handler := libraryreservations.NewQueryHandler(db)

	// act
	result, err := handler.Handle(ctx, libraryreservations.BuildQuery(librarian.Actor(), 0, "", FixedNow))

	// assert
	require.NoError(t, err)
	assert.Equal(t, libraryID, result.LibraryID)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, reservation.ID, result.Reservations[0].ID)
	assert.Equal(t, member.Name, result.Reservations[0].MemberName)
	assert.Equal(t, member.UserID, result.Reservations[0].MemberUserID)
	assert.Equal(t, book.Title, result.Reservations[0].BookTitle)
}

func Test_QueryHandler_Filters_The_Queue_By_Status(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 3)
	member := GivenMember(t, repos, libraryID)
	supervisor := GivenSupervisor(t, repos, libraryID)

	GivenReservation(t, repos, book, member, core.ReservationPending, FixedNow)
	approved := GivenReservation(t, repos, book, member, core.ReservationApproved, FixedNow)

	handler := libraryreservations.NewQueryHandler(db)

	// act
	result, err := handler.Handle(
		ctx,
		libraryreservations.BuildQuery(supervisor.Actor(), 0, core.ReservationApproved, FixedNow),
	)

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, approved.ID, result.Reservations[0].ID)
}

func Test_QueryHandler_Admin_Must_Name_A_Library(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 1)
	member := GivenMember(t, repos, libraryID)
	admin := GivenAdmin(t, repos)
	GivenReservation(t, repos, book, member, core.ReservationPending, FixedNow)

	handler := libraryreservations.NewQueryHandler(db)

	// act
	_, withoutLibraryErr := handler.Handle(ctx, libraryreservations.BuildQuery(admin.Actor(), 0, "", FixedNow))
	result, err := handler.Handle(ctx, libraryreservations.BuildQuery(admin.Actor(), libraryID, "", FixedNow))

	// assert
	assert.ErrorIs(t, withoutLibraryErr, core.ErrInvalidState)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
}

func Test_QueryHandler_Refuses_Members_And_Foreign_Libraries(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	otherLibraryID := GivenLibrary(t, repos)
	member := GivenMember(t, repos, libraryID)
	librarian := GivenLibrarian(t, repos, libraryID)

	handler := libraryreservations.NewQueryHandler(db)

	// act
	_, memberErr := handler.Handle(ctx, libraryreservations.BuildQuery(member.Actor(), 0, "", FixedNow))
	_, foreignErr := handler.Handle(ctx, libraryreservations.BuildQuery(librarian.Actor(), otherLibraryID, "", FixedNow))

	// assert
	assert.ErrorIs(t, memberErr, core.ErrForbidden)
	assert.ErrorIs(t, foreignErr, core.ErrNotFound)
}
