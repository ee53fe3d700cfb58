package core

import "time"

// BookStatus tells whether a book can be reserved or lent.
type BookStatus string

const (
	BookActive   BookStatus = "active"
	BookInactive BookStatus = "inactive"
)

// Book is a title held by one library with a number of physical copies.
// At rest 0 <= AvailableCopies <= TotalCopies holds.
type Book struct {
	ID              int64
	LibraryID       int64
	BookID          string
	Title           string
	AuthorName      string
	TotalCopies     int
	AvailableCopies int
	Status          BookStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HeldCopies is the number of copies currently claimed by reservations or loans.
func (b Book) HeldCopies() int {
	return b.TotalCopies - b.AvailableCopies
}

// CanHold reports whether one more copy can be claimed.
func (b Book) CanHold() bool {
	return b.Status == BookActive && b.AvailableCopies > 0
}
