package helper

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

var sequence atomic.Int64

// FixedNow is the clock value the command tests run at.
var FixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func nextSuffix() string {
	return fmt.Sprintf("%04d", sequence.Add(1))
}

// GivenLibrary creates a library and returns its id.
func GivenLibrary(t testing.TB, repos shell.Repositories) int64 {
	t.Helper()

	id, err := repos.Libraries.Insert(context.Background(), "Library "+nextSuffix())
	require.NoError(t, err, "error in arranging test data")

	return id
}

// GivenBook creates an active book with copies available copies in the library.
func GivenBook(t testing.TB, repos shell.Repositories, libraryID int64, copies int) core.Book {
	t.Helper()

	suffix := nextSuffix()

	book, err := repos.Books.Insert(context.Background(), core.Book{
		LibraryID:       libraryID,
		BookID:          "BK-" + suffix,
		Title:           "Book " + suffix,
		AuthorName:      "Author " + suffix,
		TotalCopies:     copies,
		AvailableCopies: copies,
		Status:          core.BookActive,
		CreatedAt:       FixedNow,
		UpdatedAt:       FixedNow,
	})
	require.NoError(t, err, "error in arranging test data")

	return book
}

// GivenMember creates an active member of the library.
func GivenMember(t testing.TB, repos shell.Repositories, libraryID int64) core.User {
	t.Helper()

	return givenUser(t, repos, core.RoleMember, &libraryID, core.UserActive)
}

// GivenLibrarian creates an active librarian of the library.
func GivenLibrarian(t testing.TB, repos shell.Repositories, libraryID int64) core.User {
	t.Helper()

	return givenUser(t, repos, core.RoleLibrarian, &libraryID, core.UserActive)
}

// GivenInactiveLibrarian creates a librarian whose account is disabled.
func GivenInactiveLibrarian(t testing.TB, repos shell.Repositories, libraryID int64) core.User {
	t.Helper()

	return givenUser(t, repos, core.RoleLibrarian, &libraryID, core.UserInactive)
}

// GivenSupervisor creates an active supervisor of the library.
func GivenSupervisor(t testing.TB, repos shell.Repositories, libraryID int64) core.User {
	t.Helper()

	return givenUser(t, repos, core.RoleSupervisor, &libraryID, core.UserActive)
}

// GivenAdmin creates an admin, who belongs to no library.
func GivenAdmin(t testing.TB, repos shell.Repositories) core.User {
	t.Helper()

	return givenUser(t, repos, core.RoleAdmin, nil, core.UserActive)
}

func givenUser(t testing.TB, repos shell.Repositories, role core.Role, libraryID *int64, status core.UserStatus) core.User {
	t.Helper()

	suffix := nextSuffix()

	user, err := repos.Users.Insert(context.Background(), core.User{
		UserID:    "USR-" + suffix,
		Name:      string(role) + " " + suffix,
		Email:     string(role) + suffix + "@example.org",
		Role:      role,
		LibraryID: libraryID,
		Status:    status,
	})
	require.NoError(t, err, "error in arranging test data")

	return user
}

// GivenReservation inserts a reservation with the given status and takes its hold directly in the
// books table, bypassing the ledger. Use it to arrange states the commands cannot reach quickly.
func GivenReservation(
	t testing.TB,
	repos shell.Repositories,
	book core.Book,
	member core.User,
	status core.ReservationStatus,
	reservedAt time.Time,
) core.Reservation {

	t.Helper()
	ctx := context.Background()

	reservation := core.NewPendingReservation(core.NewReservationID(reservedAt), book.ID, member.ID, "", reservedAt)
	reservation.Status = status

	reservation, err := repos.Reservations.Insert(ctx, reservation)
	require.NoError(t, err, "error in arranging test data")

	if status.HoldsCopy() {
		current, findErr := repos.Books.FindByID(ctx, book.ID)
		require.NoError(t, findErr, "error in arranging test data")

		err = repos.Books.SaveCopies(ctx, book.ID, current.TotalCopies, current.AvailableCopies-1, reservedAt)
		require.NoError(t, err, "error in arranging test data")
	}

	return reservation
}

// AvailableCopies reads the current counter of the book.
func AvailableCopies(t testing.TB, repos shell.Repositories, bookID int64) int {
	t.Helper()

	book, err := repos.Books.FindByID(context.Background(), bookID)
	require.NoError(t, err)

	return book.AvailableCopies
}

// Notifications returns all notifications of the user, newest first.
func Notifications(t testing.TB, repos shell.Repositories, userID int64) []core.Notification {
	t.Helper()

	notifications, err := repos.Notifications.ListByUser(context.Background(), userID, false, 0)
	require.NoError(t, err)

	return notifications
}
