package persistence

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/store/postgresengine"
)

var bookColumns = []string{
	"id", "library_id", "book_id", "title", "author_name",
	"total_copies", "available_copies", "status", "created_at", "updated_at",
}

type bookRow struct {
	book   core.Book
	status string
}

func (r *bookRow) dest() []any {
	return []any{
		&r.book.ID, &r.book.LibraryID, &r.book.BookID, &r.book.Title, &r.book.AuthorName,
		&r.book.TotalCopies, &r.book.AvailableCopies, &r.status, &r.book.CreatedAt, &r.book.UpdatedAt,
	}
}

func (r *bookRow) toBook() core.Book {
	book := r.book
	book.Status = core.BookStatus(r.status)
	book.CreatedAt = utc(book.CreatedAt)
	book.UpdatedAt = utc(book.UpdatedAt)

	return book
}

func scanBook(rows postgresengine.Rows) (core.Book, error) {
	var row bookRow
	if err := rows.Scan(row.dest()...); err != nil {
		return core.Book{}, err
	}

	return row.toBook(), nil
}

type bookRepository struct {
	q postgresengine.Querier
}

func (r bookRepository) FindByID(ctx context.Context, id int64) (core.Book, error) {
	return r.findOne(ctx, id, false)
}

func (r bookRepository) LockByID(ctx context.Context, id int64) (core.Book, error) {
	return r.findOne(ctx, id, true)
}

func (r bookRepository) findOne(ctx context.Context, id int64, lock bool) (core.Book, error) {
	stmt := dialect.From("books").
		Select(qualified("books", bookColumns)...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true)

	if lock {
		stmt = stmt.ForUpdate(exp.Wait)
	}

	var row bookRow
	if err := postgresengine.QueryRow(ctx, r.q, stmt, row.dest()...); err != nil {
		return core.Book{}, domainError(err, "book %d", id)
	}

	return row.toBook(), nil
}

func (r bookRepository) Insert(ctx context.Context, book core.Book) (core.Book, error) {
	stmt := dialect.Insert("books").
		Rows(goqu.Record{
			"library_id":       book.LibraryID,
			"book_id":          book.BookID,
			"title":            book.Title,
			"author_name":      book.AuthorName,
			"total_copies":     book.TotalCopies,
			"available_copies": book.AvailableCopies,
			"status":           string(book.Status),
			"created_at":       book.CreatedAt,
			"updated_at":       book.UpdatedAt,
		}).
		Returning("id").
		Prepared(true)

	if err := postgresengine.QueryRow(ctx, r.q, stmt, &book.ID); err != nil {
		return core.Book{}, domainError(err, "book %q", book.BookID)
	}

	return book, nil
}

func (r bookRepository) SaveCopies(ctx context.Context, id int64, totalCopies, availableCopies int, at time.Time) error {
	stmt := dialect.Update("books").
		Set(goqu.Record{
			"total_copies":     totalCopies,
			"available_copies": availableCopies,
			"updated_at":       at,
		}).
		Where(goqu.C("id").Eq(id)).
		Prepared(true)

	affected, err := r.q.Exec(ctx, stmt)

	return expectOneRow(affected, err, "book %d", id)
}

func (r bookRepository) ListByLibrary(ctx context.Context, libraryID int64) ([]core.Book, error) {
	stmt := dialect.From("books").
		Select(qualified("books", bookColumns)...).
		Where(goqu.C("library_id").Eq(libraryID)).
		Order(goqu.C("title").Asc(), goqu.C("id").Asc()).
		Prepared(true)

	return collect(ctx, r.q, stmt, scanBook)
}
