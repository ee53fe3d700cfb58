package persistence

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	"github.com/snowRepo/LMS-sub006/store/postgresengine"
)

var borrowingColumns = []string{
	"id", "book_id", "member_id", "reservation_id", "issued_by",
	"issue_date", "due_date", "return_date", "status", "reminder_sent_at",
}

type borrowingRow struct {
	borrowing core.Borrowing
	status    string
}

func (r *borrowingRow) dest() []any {
	b := &r.borrowing

	return []any{
		&b.ID, &b.BookID, &b.MemberID, &b.ReservationID, &b.IssuedBy,
		&b.IssueDate, &b.DueDate, &b.ReturnDate, &r.status, &b.ReminderSentAt,
	}
}

func (r *borrowingRow) toBorrowing() core.Borrowing {
	borrowing := r.borrowing
	borrowing.Status = core.BorrowingStatus(r.status)
	borrowing.IssueDate = utc(borrowing.IssueDate)
	borrowing.DueDate = utc(borrowing.DueDate)
	borrowing.ReturnDate = utcPtr(borrowing.ReturnDate)
	borrowing.ReminderSentAt = utcPtr(borrowing.ReminderSentAt)

	return borrowing
}

func scanBorrowing(rows postgresengine.Rows) (core.Borrowing, error) {
	var row borrowingRow
	if err := rows.Scan(row.dest()...); err != nil {
		return core.Borrowing{}, err
	}

	return row.toBorrowing(), nil
}

func scanBorrowingView(rows postgresengine.Rows) (shell.BorrowingView, error) {
	var row borrowingRow
	var view shell.BorrowingView

	dest := append(row.dest(), &view.BookRef, &view.BookTitle, &view.LibraryID, &view.MemberUserID, &view.MemberName)
	if err := rows.Scan(dest...); err != nil {
		return shell.BorrowingView{}, err
	}

	view.Borrowing = row.toBorrowing()

	return view, nil
}

type borrowingRepository struct {
	q postgresengine.Querier
}

func (r borrowingRepository) Insert(ctx context.Context, borrowing core.Borrowing) (core.Borrowing, error) {
	stmt := dialect.Insert("borrowings").
		Rows(goqu.Record{
			"book_id":          borrowing.BookID,
			"member_id":        borrowing.MemberID,
			"reservation_id":   borrowing.ReservationID,
			"issued_by":        borrowing.IssuedBy,
			"issue_date":       borrowing.IssueDate,
			"due_date":         borrowing.DueDate,
			"return_date":      borrowing.ReturnDate,
			"status":           string(borrowing.Status),
			"reminder_sent_at": borrowing.ReminderSentAt,
		}).
		Returning("id").
		Prepared(true)

	if err := postgresengine.QueryRow(ctx, r.q, stmt, &borrowing.ID); err != nil {
		return core.Borrowing{}, domainError(err, "borrowing of book %d", borrowing.BookID)
	}

	return borrowing, nil
}

func (r borrowingRepository) LockByID(ctx context.Context, id int64) (core.Borrowing, error) {
	stmt := dialect.From("borrowings").
		Select(qualified("borrowings", borrowingColumns)...).
		Where(goqu.C("id").Eq(id)).
		ForUpdate(exp.Wait).
		Prepared(true)

	var row borrowingRow
	if err := postgresengine.QueryRow(ctx, r.q, stmt, row.dest()...); err != nil {
		return core.Borrowing{}, domainError(err, "borrowing %d", id)
	}

	return row.toBorrowing(), nil
}

func (r borrowingRepository) Update(ctx context.Context, borrowing core.Borrowing) error {
	stmt := dialect.Update("borrowings").
		Set(goqu.Record{
			"due_date":         borrowing.DueDate,
			"return_date":      borrowing.ReturnDate,
			"status":           string(borrowing.Status),
			"reminder_sent_at": borrowing.ReminderSentAt,
		}).
		Where(goqu.C("id").Eq(borrowing.ID)).
		Prepared(true)

	affected, err := r.q.Exec(ctx, stmt)

	return expectOneRow(affected, err, "borrowing %d", borrowing.ID)
}

func (r borrowingRepository) ListDueForReminder(ctx context.Context, dueBefore time.Time) ([]core.Borrowing, error) {
	stmt := dialect.From("borrowings").
		Select(qualified("borrowings", borrowingColumns)...).
		Where(
			goqu.C("status").Eq(string(core.BorrowingActive)),
			goqu.C("reminder_sent_at").IsNull(),
			goqu.C("due_date").Lte(dueBefore),
		).
		Order(goqu.C("due_date").Asc(), goqu.C("id").Asc()).
		Prepared(true)

	return collect(ctx, r.q, stmt, scanBorrowing)
}

func (r borrowingRepository) ListActiveByLibrary(ctx context.Context, libraryID int64) ([]shell.BorrowingView, error) {
	columns := append(
		qualified("l", borrowingColumns),
		goqu.I("b.book_id"), goqu.I("b.title"), goqu.I("b.library_id"), goqu.I("u.user_id"), goqu.I("u.name"),
	)

	stmt := dialect.From(goqu.T("borrowings").As("l")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("l.member_id")))).
		Select(columns...).
		Where(
			goqu.I("b.library_id").Eq(libraryID),
			goqu.I("l.status").Eq(string(core.BorrowingActive)),
		).
		Order(goqu.I("l.due_date").Asc(), goqu.I("l.id").Asc()).
		Prepared(true)

	return collect(ctx, r.q, stmt, scanBorrowingView)
}

func (r borrowingRepository) CountActive(ctx context.Context, libraryID int64, now time.Time) (int, int, error) {
	stmt := dialect.From(goqu.T("borrowings").As("l")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Select(
			goqu.COUNT("*"),
			goqu.L("COUNT(*) FILTER (WHERE ? < ?)", goqu.I("l.due_date"), now),
		).
		Where(
			goqu.I("b.library_id").Eq(libraryID),
			goqu.I("l.status").Eq(string(core.BorrowingActive)),
		).
		Prepared(true)

	var active, overdue int
	if err := postgresengine.QueryRow(ctx, r.q, stmt, &active, &overdue); err != nil {
		return 0, 0, err
	}

	return active, overdue, nil
}

func (r borrowingRepository) CountWalkInHoldingByBook(ctx context.Context, libraryID int64) (map[int64]int, error) {
	stmt := dialect.From(goqu.T("borrowings").As("l")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Select(goqu.I("l.book_id"), goqu.COUNT("*")).
		Where(
			goqu.I("b.library_id").Eq(libraryID),
			goqu.I("l.status").Eq(string(core.BorrowingActive)),
			goqu.I("l.reservation_id").IsNull(),
		).
		GroupBy(goqu.I("l.book_id")).
		Prepared(true)

	return countPerBook(ctx, r.q, stmt)
}
