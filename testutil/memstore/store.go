package memstore

import (
	"context"
	"maps"
	"sync"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

type data struct {
	nextID        int64
	libraries     map[int64]string
	books         map[int64]core.Book
	reservations  map[int64]core.Reservation
	borrowings    map[int64]core.Borrowing
	users         map[int64]core.User
	notifications map[int64]core.Notification
}

func newData() *data {
	return &data{
		libraries:     map[int64]string{},
		books:         map[int64]core.Book{},
		reservations:  map[int64]core.Reservation{},
		borrowings:    map[int64]core.Borrowing{},
		users:         map[int64]core.User{},
		notifications: map[int64]core.Notification{},
	}
}

func (d *data) clone() *data {
	return &data{
		nextID:        d.nextID,
		libraries:     maps.Clone(d.libraries),
		books:         maps.Clone(d.books),
		reservations:  maps.Clone(d.reservations),
		borrowings:    maps.Clone(d.borrowings),
		users:         maps.Clone(d.users),
		notifications: maps.Clone(d.notifications),
	}
}

func (d *data) newID() int64 {
	d.nextID++
	return d.nextID
}

// Store is the in-memory database.
type Store struct {
	mu   sync.Mutex
	data *data

	failMu               sync.Mutex
	failTransactions     []error
	failNotificationSave error
	commits              int
}

// New creates an empty Store.
func New() *Store {
	return &Store{data: newData()}
}

// WithinTransaction runs fn on a copy of the data and keeps the copy when fn succeeds.
func (s *Store) WithinTransaction(ctx context.Context, fn shell.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.nextInjectedFailure(); err != nil {
		return err
	}

	snapshot := s.data.clone()

	if err := fn(ctx, s.repositories(snapshot)); err != nil {
		return err
	}

	s.data = snapshot
	s.commits++

	return nil
}

// Repositories returns repositories that run every call as its own short transaction.
func (s *Store) Repositories() shell.Repositories {
	return s.repositories(nil)
}

// FailNextTransactions makes the next len(errs) transactions fail with the given errors before fn runs.
func (s *Store) FailNextTransactions(errs ...error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()

	s.failTransactions = append(s.failTransactions, errs...)
}

// FailNotificationInserts makes every notification insert fail with err, nil restores normal behavior.
func (s *Store) FailNotificationInserts(err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()

	s.failNotificationSave = err
}

// Commits returns how many transactions committed.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commits
}

func (s *Store) nextInjectedFailure() error {
	s.failMu.Lock()
	defer s.failMu.Unlock()

	if len(s.failTransactions) == 0 {
		return nil
	}

	err := s.failTransactions[0]
	s.failTransactions = s.failTransactions[1:]

	return err
}

func (s *Store) notificationFailure() error {
	s.failMu.Lock()
	defer s.failMu.Unlock()

	return s.failNotificationSave
}

func (s *Store) repositories(tx *data) shell.Repositories {
	b := binding{store: s, tx: tx}

	return shell.Repositories{
		Libraries:     libraryRepository{b},
		Books:         bookRepository{b},
		Reservations:  reservationRepository{b},
		Borrowings:    borrowingRepository{b},
		Users:         userRepository{b},
		Notifications: notificationRepository{b},
	}
}

// binding runs repository calls either on the transaction's copy or, outside a transaction,
// on the committed data while holding the store lock.
type binding struct {
	store *Store
	tx    *data
}

func (b binding) run(ctx context.Context, fn func(d *data) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if b.tx != nil {
		return fn(b.tx)
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	return fn(b.store.data)
}
