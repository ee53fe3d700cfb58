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

var reservationColumns = []string{
	"id", "reservation_id", "book_id", "member_id", "reservation_date", "expiry_date",
	"status", "notes", "librarian_notes", "rejection_reason", "cancelled_date", "updated_at",
}

var holdingStatuses = []string{
	string(core.ReservationPending),
	string(core.ReservationApproved),
	string(core.ReservationBorrowed),
}

type reservationRow struct {
	reservation core.Reservation
	status      string
}

func (r *reservationRow) dest() []any {
	res := &r.reservation

	return []any{
		&res.ID, &res.ReservationID, &res.BookID, &res.MemberID, &res.ReservationDate, &res.ExpiryDate,
		&r.status, &res.Notes, &res.LibrarianNotes, &res.RejectionReason, &res.CancelledDate, &res.UpdatedAt,
	}
}

func (r *reservationRow) toReservation() core.Reservation {
	reservation := r.reservation
	reservation.Status = core.ReservationStatus(r.status)
	reservation.ReservationDate = utc(reservation.ReservationDate)
	reservation.ExpiryDate = utc(reservation.ExpiryDate)
	reservation.CancelledDate = utcPtr(reservation.CancelledDate)
	reservation.UpdatedAt = utc(reservation.UpdatedAt)

	return reservation
}

func scanReservation(rows postgresengine.Rows) (core.Reservation, error) {
	var row reservationRow
	if err := rows.Scan(row.dest()...); err != nil {
		return core.Reservation{}, err
	}

	return row.toReservation(), nil
}

func scanReservationView(rows postgresengine.Rows) (shell.ReservationView, error) {
	var row reservationRow
	var view shell.ReservationView

	dest := append(row.dest(), &view.BookRef, &view.BookTitle, &view.LibraryID, &view.MemberUserID, &view.MemberName)
	if err := rows.Scan(dest...); err != nil {
		return shell.ReservationView{}, err
	}

	view.Reservation = row.toReservation()

	return view, nil
}

type reservationRepository struct {
	q postgresengine.Querier
}

func (r reservationRepository) FindByID(ctx context.Context, id int64) (core.Reservation, error) {
	return r.findOne(ctx, goqu.C("id").Eq(id), false, "reservation %d", id)
}

func (r reservationRepository) LockByID(ctx context.Context, id int64) (core.Reservation, error) {
	return r.findOne(ctx, goqu.C("id").Eq(id), true, "reservation %d", id)
}

func (r reservationRepository) FindPendingByMemberAndBook(
	ctx context.Context,
	memberID, bookID int64,
) (core.Reservation, error) {

	where := goqu.Ex{
		"member_id": memberID,
		"book_id":   bookID,
		"status":    string(core.ReservationPending),
	}

	return r.findOne(ctx, where, false, "pending reservation of member %d on book %d", memberID, bookID)
}

func (r reservationRepository) findOne(
	ctx context.Context,
	where exp.Expression,
	lock bool,
	format string,
	args ...any,
) (core.Reservation, error) {

	stmt := dialect.From("reservations").
		Select(qualified("reservations", reservationColumns)...).
		Where(where).
		Prepared(true)

	if lock {
		stmt = stmt.ForUpdate(exp.Wait)
	}

	var row reservationRow
	if err := postgresengine.QueryRow(ctx, r.q, stmt, row.dest()...); err != nil {
		return core.Reservation{}, domainError(err, format, args...)
	}

	return row.toReservation(), nil
}

func (r reservationRepository) Insert(ctx context.Context, reservation core.Reservation) (core.Reservation, error) {
	stmt := dialect.Insert("reservations").
		Rows(goqu.Record{
			"reservation_id":   reservation.ReservationID,
			"book_id":          reservation.BookID,
			"member_id":        reservation.MemberID,
			"reservation_date": reservation.ReservationDate,
			"expiry_date":      reservation.ExpiryDate,
			"status":           string(reservation.Status),
			"notes":            reservation.Notes,
			"librarian_notes":  reservation.LibrarianNotes,
			"rejection_reason": reservation.RejectionReason,
			"cancelled_date":   reservation.CancelledDate,
			"updated_at":       reservation.UpdatedAt,
		}).
		Returning("id").
		Prepared(true)

	if err := postgresengine.QueryRow(ctx, r.q, stmt, &reservation.ID); err != nil {
		return core.Reservation{}, domainError(err, "reservation %q", reservation.ReservationID)
	}

	return reservation, nil
}

func (r reservationRepository) Update(ctx context.Context, reservation core.Reservation) error {
	stmt := dialect.Update("reservations").
		Set(goqu.Record{
			"status":           string(reservation.Status),
			"expiry_date":      reservation.ExpiryDate,
			"notes":            reservation.Notes,
			"librarian_notes":  reservation.LibrarianNotes,
			"rejection_reason": reservation.RejectionReason,
			"cancelled_date":   reservation.CancelledDate,
			"updated_at":       reservation.UpdatedAt,
		}).
		Where(goqu.C("id").Eq(reservation.ID)).
		Prepared(true)

	affected, err := r.q.Exec(ctx, stmt)

	return expectOneRow(affected, err, "reservation %d", reservation.ID)
}

func (r reservationRepository) ListPendingExpiredBefore(ctx context.Context, cutoff time.Time) ([]core.Reservation, error) {
	stmt := dialect.From("reservations").
		Select(qualified("reservations", reservationColumns)...).
		Where(
			goqu.C("status").Eq(string(core.ReservationPending)),
			goqu.C("expiry_date").Lt(cutoff),
		).
		Order(goqu.C("expiry_date").Asc(), goqu.C("id").Asc()).
		Prepared(true)

	return collect(ctx, r.q, stmt, scanReservation)
}

func (r reservationRepository) ListByMember(
	ctx context.Context,
	memberID int64,
	status core.ReservationStatus,
) ([]shell.ReservationView, error) {

	return r.listViews(ctx, goqu.I("r.member_id").Eq(memberID), status)
}

func (r reservationRepository) ListByLibrary(
	ctx context.Context,
	libraryID int64,
	status core.ReservationStatus,
) ([]shell.ReservationView, error) {

	return r.listViews(ctx, goqu.I("b.library_id").Eq(libraryID), status)
}

func (r reservationRepository) listViews(
	ctx context.Context,
	scope exp.Expression,
	status core.ReservationStatus,
) ([]shell.ReservationView, error) {

	columns := append(
		qualified("r", reservationColumns),
		goqu.I("b.book_id"), goqu.I("b.title"), goqu.I("b.library_id"), goqu.I("u.user_id"), goqu.I("u.name"),
	)

	conditions := []exp.Expression{scope}
	if status != "" {
		conditions = append(conditions, goqu.I("r.status").Eq(string(status)))
	}

	stmt := dialect.From(goqu.T("reservations").As("r")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("r.book_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("r.member_id")))).
		Select(columns...).
		Where(conditions...).
		Order(goqu.I("r.reservation_date").Desc(), goqu.I("r.id").Desc()).
		Prepared(true)

	return collect(ctx, r.q, stmt, scanReservationView)
}

func (r reservationRepository) CountByStatus(ctx context.Context, libraryID int64) (map[core.ReservationStatus]int, error) {
	stmt := dialect.From(goqu.T("reservations").As("r")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("r.book_id")))).
		Select(goqu.I("r.status"), goqu.COUNT("*")).
		Where(goqu.I("b.library_id").Eq(libraryID)).
		GroupBy(goqu.I("r.status")).
		Prepared(true)

	type statusCount struct {
		status string
		count  int
	}

	rows, err := collect(ctx, r.q, stmt, func(rows postgresengine.Rows) (statusCount, error) {
		var sc statusCount
		err := rows.Scan(&sc.status, &sc.count)
		return sc, err
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[core.ReservationStatus]int, len(rows))
	for _, row := range rows {
		counts[core.ReservationStatus(row.status)] = row.count
	}

	return counts, nil
}

func (r reservationRepository) CountHoldingByBook(ctx context.Context, libraryID int64) (map[int64]int, error) {
	stmt := dialect.From(goqu.T("reservations").As("r")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("r.book_id")))).
		Select(goqu.I("r.book_id"), goqu.COUNT("*")).
		Where(
			goqu.I("b.library_id").Eq(libraryID),
			goqu.I("r.status").In(holdingStatuses),
		).
		GroupBy(goqu.I("r.book_id")).
		Prepared(true)

	return countPerBook(ctx, r.q, stmt)
}

func countPerBook(ctx context.Context, q postgresengine.Querier, stmt postgresengine.Statement) (map[int64]int, error) {
	type bookCount struct {
		bookID int64
		count  int
	}

	rows, err := collect(ctx, q, stmt, func(rows postgresengine.Rows) (bookCount, error) {
		var bc bookCount
		err := rows.Scan(&bc.bookID, &bc.count)
		return bc, err
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.bookID] = row.count
	}

	return counts, nil
}
