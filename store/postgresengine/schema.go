package postgresengine

import (
	"context"
)

// schemaStatements creates the library tables. Every statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS libraries (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id         BIGSERIAL PRIMARY KEY,
		user_id    TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		role       TEXT NOT NULL CHECK (role IN ('member', 'librarian', 'supervisor', 'admin')),
		library_id BIGINT REFERENCES libraries (id),
		status     TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS books (
		id               BIGSERIAL PRIMARY KEY,
		library_id       BIGINT NOT NULL REFERENCES libraries (id),
		book_id          TEXT NOT NULL,
		title            TEXT NOT NULL,
		author_name      TEXT NOT NULL DEFAULT '',
		total_copies     INTEGER NOT NULL CHECK (total_copies >= 0),
		available_copies INTEGER NOT NULL,
		status           TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT books_available_copies_range CHECK (available_copies >= 0 AND available_copies <= total_copies),
		CONSTRAINT books_library_book_id_unique UNIQUE (library_id, book_id)
	)`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id               BIGSERIAL PRIMARY KEY,
		reservation_id   TEXT NOT NULL UNIQUE,
		book_id          BIGINT NOT NULL REFERENCES books (id),
		member_id        BIGINT NOT NULL REFERENCES users (id),
		reservation_date TIMESTAMPTZ NOT NULL,
		expiry_date      TIMESTAMPTZ NOT NULL,
		status           TEXT NOT NULL CHECK (status IN
			('pending', 'approved', 'rejected', 'cancelled', 'expired', 'fulfilled', 'borrowed', 'returned')),
		notes            TEXT NOT NULL DEFAULT '',
		librarian_notes  TEXT NOT NULL DEFAULT '',
		rejection_reason TEXT NOT NULL DEFAULT '',
		cancelled_date   TIMESTAMPTZ,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS reservations_one_pending_per_member
		ON reservations (book_id, member_id) WHERE status = 'pending'`,

	`CREATE INDEX IF NOT EXISTS reservations_status_expiry ON reservations (status, expiry_date)`,

	`CREATE TABLE IF NOT EXISTS borrowings (
		id               BIGSERIAL PRIMARY KEY,
		book_id          BIGINT NOT NULL REFERENCES books (id),
		member_id        BIGINT NOT NULL REFERENCES users (id),
		reservation_id   BIGINT REFERENCES reservations (id),
		issued_by        BIGINT NOT NULL REFERENCES users (id),
		issue_date       TIMESTAMPTZ NOT NULL,
		due_date         TIMESTAMPTZ NOT NULL,
		return_date      TIMESTAMPTZ,
		status           TEXT NOT NULL CHECK (status IN ('active', 'returned')),
		reminder_sent_at TIMESTAMPTZ
	)`,

	`CREATE INDEX IF NOT EXISTS borrowings_active_due ON borrowings (due_date) WHERE status = 'active'`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users (id),
		title      TEXT NOT NULL,
		message    TEXT NOT NULL,
		type       TEXT NOT NULL CHECK (type IN ('info', 'success', 'warning', 'danger')),
		action_url TEXT NOT NULL DEFAULT '',
		event_type TEXT NOT NULL DEFAULT '',
		payload    JSONB NOT NULL DEFAULT '{}',
		read_at    TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS notifications_user_unread ON notifications (user_id) WHERE read_at IS NULL`,
}

// rawStatement is a statement without arguments, used for DDL.
type rawStatement string

func (s rawStatement) ToSQL() (string, []any, error) {
	return string(s), nil, nil
}

// Migrate creates the tables and indexes the repositories rely on.
func (e Engine) Migrate(ctx context.Context) error {
	for _, ddl := range schemaStatements {
		if _, err := e.Exec(ctx, rawStatement(ddl)); err != nil {
			return err
		}
	}

	return nil
}

// Truncate removes all rows from the library tables. Intended for integration tests.
func (e Engine) Truncate(ctx context.Context) error {
	_, err := e.Exec(ctx, rawStatement(
		`TRUNCATE TABLE notifications, borrowings, reservations, books, users, libraries RESTART IDENTITY CASCADE`,
	))

	return err
}
