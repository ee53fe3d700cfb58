package ledger

import (
	"context"
	"sort"

	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// BookBalance compares a book's counter with the records that hold its copies.
type BookBalance struct {
	BookID          int64
	BookRef         string
	Title           string
	TotalCopies     int
	AvailableCopies int
	HeldCopies      int
	HoldingRecords  int
}

// Drift is HeldCopies minus HoldingRecords, zero for a consistent book.
func (b BookBalance) Drift() int {
	return b.HeldCopies - b.HoldingRecords
}

// Audit returns the balance of every book of the library, ordered by book id.
func (l Ledger) Audit(ctx context.Context, repos shell.Repositories, libraryID int64) ([]BookBalance, error) {
	books, err := repos.Books.ListByLibrary(ctx, libraryID)
	if err != nil {
		return nil, err
	}

	reservationHolds, err := repos.Reservations.CountHoldingByBook(ctx, libraryID)
	if err != nil {
		return nil, err
	}

	walkInHolds, err := repos.Borrowings.CountWalkInHoldingByBook(ctx, libraryID)
	if err != nil {
		return nil, err
	}

	balances := make([]BookBalance, 0, len(books))
	for _, book := range books {
		balances = append(balances, BookBalance{
			BookID:          book.ID,
			BookRef:         book.BookID,
			Title:           book.Title,
			TotalCopies:     book.TotalCopies,
			AvailableCopies: book.AvailableCopies,
			HeldCopies:      book.HeldCopies(),
			HoldingRecords:  reservationHolds[book.ID] + walkInHolds[book.ID],
		})
	}

	sort.Slice(balances, func(i, j int) bool { return balances[i].BookID < balances[j].BookID })

	return balances, nil
}
