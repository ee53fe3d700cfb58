package librarycatalog

import (
	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

// BookInfo is one catalog entry.
type BookInfo struct {
	ID              int64
	BookRef         string
	Title           string
	AuthorName      string
	TotalCopies     int
	AvailableCopies int
	Status          core.BookStatus
	Reservable      bool
}

// Catalog is the query result.
type Catalog struct {
	LibraryID int64
	Books     []BookInfo
	Count     int
}
