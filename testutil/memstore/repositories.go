package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

type libraryRepository struct{ binding }

func (r libraryRepository) Insert(ctx context.Context, name string) (int64, error) {
	var id int64

	err := r.run(ctx, func(d *data) error {
		id = d.newID()
		d.libraries[id] = name
		return nil
	})

	return id, err
}

type bookRepository struct{ binding }

func (r bookRepository) FindByID(ctx context.Context, id int64) (core.Book, error) {
	var book core.Book

	err := r.run(ctx, func(d *data) error {
		found, ok := d.books[id]
		if !ok {
			return fmt.Errorf("book %d: %w", id, core.ErrNotFound)
		}
		book = found
		return nil
	})

	return book, err
}

// LockByID needs no lock of its own, transactions already run one at a time.
func (r bookRepository) LockByID(ctx context.Context, id int64) (core.Book, error) {
	return r.FindByID(ctx, id)
}

func (r bookRepository) Insert(ctx context.Context, book core.Book) (core.Book, error) {
	err := r.run(ctx, func(d *data) error {
		if _, ok := d.libraries[book.LibraryID]; !ok {
			return fmt.Errorf("library %d: %w", book.LibraryID, core.ErrNotFound)
		}

		for _, existing := range d.books {
			if existing.LibraryID == book.LibraryID && existing.BookID == book.BookID {
				return fmt.Errorf("book %q: %w", book.BookID, core.ErrAlreadyExists)
			}
		}

		book.ID = d.newID()
		d.books[book.ID] = book
		return nil
	})

	return book, err
}

func (r bookRepository) SaveCopies(ctx context.Context, id int64, totalCopies, availableCopies int, at time.Time) error {
	return r.run(ctx, func(d *data) error {
		book, ok := d.books[id]
		if !ok {
			return fmt.Errorf("book %d: %w", id, core.ErrNotFound)
		}

		if availableCopies < 0 || availableCopies > totalCopies {
			return fmt.Errorf("books_available_copies_range violated for book %d", id)
		}

		book.TotalCopies = totalCopies
		book.AvailableCopies = availableCopies
		book.UpdatedAt = at
		d.books[id] = book
		return nil
	})
}

func (r bookRepository) ListByLibrary(ctx context.Context, libraryID int64) ([]core.Book, error) {
	var books []core.Book

	err := r.run(ctx, func(d *data) error {
		for _, book := range d.books {
			if book.LibraryID == libraryID {
				books = append(books, book)
			}
		}
		return nil
	})

	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })

	return books, err
}

type reservationRepository struct{ binding }

func (r reservationRepository) FindByID(ctx context.Context, id int64) (core.Reservation, error) {
	var reservation core.Reservation

	err := r.run(ctx, func(d *data) error {
		found, ok := d.reservations[id]
		if !ok {
			return fmt.Errorf("reservation %d: %w", id, core.ErrNotFound)
		}
		reservation = found
		return nil
	})

	return reservation, err
}

func (r reservationRepository) LockByID(ctx context.Context, id int64) (core.Reservation, error) {
	return r.FindByID(ctx, id)
}

func (r reservationRepository) FindPendingByMemberAndBook(
	ctx context.Context,
	memberID, bookID int64,
) (core.Reservation, error) {

	var reservation core.Reservation

	err := r.run(ctx, func(d *data) error {
		for _, candidate := range d.reservations {
			if candidate.MemberID == memberID && candidate.BookID == bookID && candidate.Status == core.ReservationPending {
				reservation = candidate
				return nil
			}
		}
		return fmt.Errorf("pending reservation of member %d on book %d: %w", memberID, bookID, core.ErrNotFound)
	})

	return reservation, err
}

func (r reservationRepository) Insert(ctx context.Context, reservation core.Reservation) (core.Reservation, error) {
	err := r.run(ctx, func(d *data) error {
		for _, existing := range d.reservations {
			if existing.ReservationID == reservation.ReservationID {
				return fmt.Errorf("reservation %q: %w", reservation.ReservationID, core.ErrAlreadyExists)
			}

			if reservation.Status == core.ReservationPending &&
				existing.Status == core.ReservationPending &&
				existing.MemberID == reservation.MemberID &&
				existing.BookID == reservation.BookID {

				return fmt.Errorf("pending reservation on book %d: %w", reservation.BookID, core.ErrAlreadyExists)
			}
		}

		reservation.ID = d.newID()
		d.reservations[reservation.ID] = reservation
		return nil
	})

	return reservation, err
}

func (r reservationRepository) Update(ctx context.Context, reservation core.Reservation) error {
	return r.run(ctx, func(d *data) error {
		if _, ok := d.reservations[reservation.ID]; !ok {
			return fmt.Errorf("reservation %d: %w", reservation.ID, core.ErrNotFound)
		}
		d.reservations[reservation.ID] = reservation
		return nil
	})
}

func (r reservationRepository) ListPendingExpiredBefore(ctx context.Context, cutoff time.Time) ([]core.Reservation, error) {
	var reservations []core.Reservation

	err := r.run(ctx, func(d *data) error {
		for _, reservation := range d.reservations {
			if reservation.Status == core.ReservationPending && reservation.ExpiryDate.Before(cutoff) {
				reservations = append(reservations, reservation)
			}
		}
		return nil
	})

	sort.Slice(reservations, func(i, j int) bool {
		if reservations[i].ExpiryDate.Equal(reservations[j].ExpiryDate) {
			return reservations[i].ID < reservations[j].ID
		}
		return reservations[i].ExpiryDate.Before(reservations[j].ExpiryDate)
	})

	return reservations, err
}

func (r reservationRepository) ListByMember(
	ctx context.Context,
	memberID int64,
	status core.ReservationStatus,
) ([]shell.ReservationView, error) {

	return r.listViews(ctx, status, func(d *data, reservation core.Reservation) bool {
		return reservation.MemberID == memberID
	})
}

func (r reservationRepository) ListByLibrary(
	ctx context.Context,
	libraryID int64,
	status core.ReservationStatus,
) ([]shell.ReservationView, error) {

	return r.listViews(ctx, status, func(d *data, reservation core.Reservation) bool {
		return d.books[reservation.BookID].LibraryID == libraryID
	})
}

func (r reservationRepository) listViews(
	ctx context.Context,
	status core.ReservationStatus,
	match func(d *data, reservation core.Reservation) bool,
) ([]shell.ReservationView, error) {

	var views []shell.ReservationView

	err := r.run(ctx, func(d *data) error {
		for _, reservation := range d.reservations {
			if status != "" && reservation.Status != status {
				continue
			}

			if !match(d, reservation) {
				continue
			}

			book := d.books[reservation.BookID]
			member := d.users[reservation.MemberID]

			views = append(views, shell.ReservationView{
				Reservation:  reservation,
				BookRef:      book.BookID,
				BookTitle:    book.Title,
				LibraryID:    book.LibraryID,
				MemberUserID: member.UserID,
				MemberName:   member.Name,
			})
		}
		return nil
	})

	sort.Slice(views, func(i, j int) bool {
		if views[i].ReservationDate.Equal(views[j].ReservationDate) {
			return views[i].ID > views[j].ID
		}
		return views[i].ReservationDate.After(views[j].ReservationDate)
	})

	return views, err
}

func (r reservationRepository) CountByStatus(ctx context.Context, libraryID int64) (map[core.ReservationStatus]int, error) {
	counts := map[core.ReservationStatus]int{}

	err := r.run(ctx, func(d *data) error {
		for _, reservation := range d.reservations {
			if d.books[reservation.BookID].LibraryID == libraryID {
				counts[reservation.Status]++
			}
		}
		return nil
	})

	return counts, err
}

func (r reservationRepository) CountHoldingByBook(ctx context.Context, libraryID int64) (map[int64]int, error) {
	counts := map[int64]int{}

	err := r.run(ctx, func(d *data) error {
		for _, reservation := range d.reservations {
			if reservation.Status.HoldsCopy() && d.books[reservation.BookID].LibraryID == libraryID {
				counts[reservation.BookID]++
			}
		}
		return nil
	})

	return counts, err
}

type borrowingRepository struct{ binding }

func (r borrowingRepository) Insert(ctx context.Context, borrowing core.Borrowing) (core.Borrowing, error) {
	err := r.run(ctx, func(d *data) error {
		borrowing.ID = d.newID()
		d.borrowings[borrowing.ID] = borrowing
		return nil
	})

	return borrowing, err
}

func (r borrowingRepository) LockByID(ctx context.Context, id int64) (core.Borrowing, error) {
	var borrowing core.Borrowing

	err := r.run(ctx, func(d *data) error {
		found, ok := d.borrowings[id]
		if !ok {
			return fmt.Errorf("borrowing %d: %w", id, core.ErrNotFound)
		}
		borrowing = found
		return nil
	})

	return borrowing, err
}

func (r borrowingRepository) Update(ctx context.Context, borrowing core.Borrowing) error {
	return r.run(ctx, func(d *data) error {
		if _, ok := d.borrowings[borrowing.ID]; !ok {
			return fmt.Errorf("borrowing %d: %w", borrowing.ID, core.ErrNotFound)
		}
		d.borrowings[borrowing.ID] = borrowing
		return nil
	})
}

func (r borrowingRepository) ListDueForReminder(ctx context.Context, dueBefore time.Time) ([]core.Borrowing, error) {
	var borrowings []core.Borrowing

	err := r.run(ctx, func(d *data) error {
		for _, borrowing := range d.borrowings {
			if borrowing.Status == core.BorrowingActive && borrowing.ReminderSentAt == nil && !borrowing.DueDate.After(dueBefore) {
				borrowings = append(borrowings, borrowing)
			}
		}
		return nil
	})

	sort.Slice(borrowings, func(i, j int) bool { return borrowings[i].DueDate.Before(borrowings[j].DueDate) })

	return borrowings, err
}

func (r borrowingRepository) ListActiveByLibrary(ctx context.Context, libraryID int64) ([]shell.BorrowingView, error) {
	var views []shell.BorrowingView

	err := r.run(ctx, func(d *data) error {
		for _, borrowing := range d.borrowings {
			book := d.books[borrowing.BookID]
			if borrowing.Status != core.BorrowingActive || book.LibraryID != libraryID {
				continue
			}

			member := d.users[borrowing.MemberID]

			views = append(views, shell.BorrowingView{
				Borrowing:    borrowing,
				BookRef:      book.BookID,
				BookTitle:    book.Title,
				LibraryID:    book.LibraryID,
				MemberUserID: member.UserID,
				MemberName:   member.Name,
			})
		}
		return nil
	})

	sort.Slice(views, func(i, j int) bool {
		if views[i].DueDate.Equal(views[j].DueDate) {
			return views[i].ID < views[j].ID
		}
		return views[i].DueDate.Before(views[j].DueDate)
	})

	return views, err
}

func (r borrowingRepository) CountActive(ctx context.Context, libraryID int64, now time.Time) (int, int, error) {
	var active, overdue int

	err := r.run(ctx, func(d *data) error {
		for _, borrowing := range d.borrowings {
			if borrowing.Status != core.BorrowingActive || d.books[borrowing.BookID].LibraryID != libraryID {
				continue
			}
			active++
			if borrowing.DueDate.Before(now) {
				overdue++
			}
		}
		return nil
	})

	return active, overdue, err
}

func (r borrowingRepository) CountWalkInHoldingByBook(ctx context.Context, libraryID int64) (map[int64]int, error) {
	counts := map[int64]int{}

	err := r.run(ctx, func(d *data) error {
		for _, borrowing := range d.borrowings {
			if borrowing.Status == core.BorrowingActive &&
				borrowing.IsWalkIn() &&
				d.books[borrowing.BookID].LibraryID == libraryID {

				counts[borrowing.BookID]++
			}
		}
		return nil
	})

	return counts, err
}

type userRepository struct{ binding }

func (r userRepository) FindByID(ctx context.Context, id int64) (core.User, error) {
	var user core.User

	err := r.run(ctx, func(d *data) error {
		found, ok := d.users[id]
		if !ok {
			return fmt.Errorf("user %d: %w", id, core.ErrNotFound)
		}
		user = found
		return nil
	})

	return user, err
}

func (r userRepository) FindByExternalID(ctx context.Context, userID string) (core.User, error) {
	var user core.User

	err := r.run(ctx, func(d *data) error {
		for _, candidate := range d.users {
			if candidate.UserID == userID {
				user = candidate
				return nil
			}
		}
		return fmt.Errorf("user %q: %w", userID, core.ErrNotFound)
	})

	return user, err
}

func (r userRepository) ListActiveLibrarians(ctx context.Context, libraryID int64) ([]core.User, error) {
	var users []core.User

	err := r.run(ctx, func(d *data) error {
		for _, user := range d.users {
			if user.Role == core.RoleLibrarian &&
				user.Status == core.UserActive &&
				user.LibraryID != nil && *user.LibraryID == libraryID {

				users = append(users, user)
			}
		}
		return nil
	})

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, err
}

func (r userRepository) Insert(ctx context.Context, user core.User) (core.User, error) {
	err := r.run(ctx, func(d *data) error {
		for _, existing := range d.users {
			if existing.UserID == user.UserID {
				return fmt.Errorf("user %q: %w", user.UserID, core.ErrAlreadyExists)
			}
		}

		user.ID = d.newID()
		d.users[user.ID] = user
		return nil
	})

	return user, err
}

type notificationRepository struct{ binding }

func (r notificationRepository) Insert(ctx context.Context, notification core.Notification) (core.Notification, error) {
	if err := r.store.notificationFailure(); err != nil {
		return core.Notification{}, err
	}

	err := r.run(ctx, func(d *data) error {
		if _, ok := d.users[notification.UserID]; !ok {
			return fmt.Errorf("user %d: %w", notification.UserID, core.ErrNotFound)
		}

		notification.ID = d.newID()
		d.notifications[notification.ID] = notification
		return nil
	})

	return notification, err
}

func (r notificationRepository) FindByID(ctx context.Context, id int64) (core.Notification, error) {
	var notification core.Notification

	err := r.run(ctx, func(d *data) error {
		found, ok := d.notifications[id]
		if !ok {
			return fmt.Errorf("notification %d: %w", id, core.ErrNotFound)
		}
		notification = found
		return nil
	})

	return notification, err
}

func (r notificationRepository) ListByUser(
	ctx context.Context,
	userID int64,
	unreadOnly bool,
	limit int,
) ([]core.Notification, error) {

	var notifications []core.Notification

	err := r.run(ctx, func(d *data) error {
		for _, notification := range d.notifications {
			if notification.UserID != userID || (unreadOnly && notification.IsRead()) {
				continue
			}
			notifications = append(notifications, notification)
		}
		return nil
	})

	sort.Slice(notifications, func(i, j int) bool { return notifications[i].ID > notifications[j].ID })

	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}

	return notifications, err
}

func (r notificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	count := 0

	err := r.run(ctx, func(d *data) error {
		for _, notification := range d.notifications {
			if notification.UserID == userID && !notification.IsRead() {
				count++
			}
		}
		return nil
	})

	return count, err
}

func (r notificationRepository) MarkRead(ctx context.Context, id int64, at time.Time) error {
	return r.run(ctx, func(d *data) error {
		notification, ok := d.notifications[id]
		if !ok {
			return fmt.Errorf("notification %d: %w", id, core.ErrNotFound)
		}

		if !notification.IsRead() {
			notification.ReadAt = &at
			d.notifications[id] = notification
		}
		return nil
	})
}

func (r notificationRepository) MarkAllRead(ctx context.Context, userID int64, at time.Time) (int, error) {
	changed := 0

	err := r.run(ctx, func(d *data) error {
		for id, notification := range d.notifications {
			if notification.UserID == userID && !notification.IsRead() {
				notification.ReadAt = &at
				d.notifications[id] = notification
				changed++
			}
		}
		return nil
	})

	return changed, err
}
