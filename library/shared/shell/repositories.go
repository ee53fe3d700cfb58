package shell

import (
	"context"
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

// LibraryRepository persists libraries, the tenant boundary.
type LibraryRepository interface {
	Insert(ctx context.Context, name string) (int64, error)
}

// BookRepository persists books. SaveCopies is reserved for the availability ledger,
// no other component writes copy counts.
type BookRepository interface {
	FindByID(ctx context.Context, id int64) (core.Book, error)

	// LockByID reads the book with SELECT ... FOR UPDATE. It must be called inside a transaction.
	LockByID(ctx context.Context, id int64) (core.Book, error)

	Insert(ctx context.Context, book core.Book) (core.Book, error)
	SaveCopies(ctx context.Context, id int64, totalCopies, availableCopies int, at time.Time) error
	ListByLibrary(ctx context.Context, libraryID int64) ([]core.Book, error)
}

// ReservationView is a reservation joined with the book and member it refers to.
type ReservationView struct {
	core.Reservation
	BookRef      string
	BookTitle    string
	LibraryID    int64
	MemberUserID string
	MemberName   string
}

// ReservationRepository persists reservations. Rows are never deleted.
type ReservationRepository interface {
	FindByID(ctx context.Context, id int64) (core.Reservation, error)

	// LockByID reads the reservation with SELECT ... FOR UPDATE. It must be called inside a transaction.
	LockByID(ctx context.Context, id int64) (core.Reservation, error)

	// FindPendingByMemberAndBook returns core.ErrNotFound when the member has no pending reservation on the book.
	FindPendingByMemberAndBook(ctx context.Context, memberID, bookID int64) (core.Reservation, error)

	// Insert returns core.ErrAlreadyExists when the member already has a pending reservation on the book.
	Insert(ctx context.Context, reservation core.Reservation) (core.Reservation, error)

	Update(ctx context.Context, reservation core.Reservation) error

	// ListPendingExpiredBefore returns pending reservations with expiry_date < cutoff, oldest first.
	ListPendingExpiredBefore(ctx context.Context, cutoff time.Time) ([]core.Reservation, error)

	// ListByMember returns the member's reservations, newest first. An empty status means all statuses.
	ListByMember(ctx context.Context, memberID int64, status core.ReservationStatus) ([]ReservationView, error)

	// ListByLibrary returns the reservations on books of the library, newest first.
	ListByLibrary(ctx context.Context, libraryID int64, status core.ReservationStatus) ([]ReservationView, error)

	CountByStatus(ctx context.Context, libraryID int64) (map[core.ReservationStatus]int, error)

	// CountHoldingByBook counts pending, approved and borrowed reservations per book of the library.
	CountHoldingByBook(ctx context.Context, libraryID int64) (map[int64]int, error)
}

// BorrowingView is a loan joined with the book and member it refers to.
type BorrowingView struct {
	core.Borrowing
	BookRef      string
	BookTitle    string
	LibraryID    int64
	MemberUserID string
	MemberName   string
}

// BorrowingRepository persists loans.
type BorrowingRepository interface {
	Insert(ctx context.Context, borrowing core.Borrowing) (core.Borrowing, error)

	// LockByID reads the borrowing with SELECT ... FOR UPDATE. It must be called inside a transaction.
	LockByID(ctx context.Context, id int64) (core.Borrowing, error)

	Update(ctx context.Context, borrowing core.Borrowing) error

	// ListDueForReminder returns active, not yet reminded loans with due_date <= dueBefore.
	ListDueForReminder(ctx context.Context, dueBefore time.Time) ([]core.Borrowing, error)

	// ListActiveByLibrary returns the active loans on books of the library, earliest due first.
	ListActiveByLibrary(ctx context.Context, libraryID int64) ([]BorrowingView, error)

	// CountActive returns the active loans of the library and how many of them are past due at now.
	CountActive(ctx context.Context, libraryID int64, now time.Time) (active int, overdue int, err error)

	// CountWalkInHoldingByBook counts active loans without a reservation per book of the library.
	CountWalkInHoldingByBook(ctx context.Context, libraryID int64) (map[int64]int, error)
}

// UserRepository persists users.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (core.User, error)
	FindByExternalID(ctx context.Context, userID string) (core.User, error)

	// ListActiveLibrarians returns the active users with role librarian of the library.
	ListActiveLibrarians(ctx context.Context, libraryID int64) ([]core.User, error)

	Insert(ctx context.Context, user core.User) (core.User, error)
}

// NotificationRepository persists the inbox of every user.
type NotificationRepository interface {
	Insert(ctx context.Context, notification core.Notification) (core.Notification, error)
	FindByID(ctx context.Context, id int64) (core.Notification, error)

	// ListByUser returns the user's notifications, newest first, at most limit rows.
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]core.Notification, error)

	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, id int64, at time.Time) error

	// MarkAllRead marks every unread notification of the user and returns how many changed.
	MarkAllRead(ctx context.Context, userID int64, at time.Time) (int, error)
}

// Repositories bundles one repository per entity, all bound to the same connection or transaction.
type Repositories struct {
	Libraries     LibraryRepository
	Books         BookRepository
	Reservations  ReservationRepository
	Borrowings    BorrowingRepository
	Users         UserRepository
	Notifications NotificationRepository
}

// TxFunc is executed inside one database transaction. Returning an error rolls the transaction back.
type TxFunc func(ctx context.Context, repos Repositories) error

// Transactor runs units of work atomically and hands out repositories for plain reads.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn TxFunc) error
	Repositories() Repositories
}
