package librarycatalog

import (
	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

// Project builds the catalog from the books of the library.
//
// Query Logic:
//
//	GIVEN: The books of the library
//	WHEN: LibraryCatalog query is executed
//	THEN: Catalog is returned
//	DETAILS: Reservable means active with at least one available copy
func Project(libraryID int64, books []core.Book, query Query) Catalog {
	infos := make([]BookInfo, 0, len(books))

	for _, book := range books {
		if query.ActiveOnly && book.Status != core.BookActive {
			continue
		}

		infos = append(infos, BookInfo{
			ID:              book.ID,
			BookRef:         book.BookID,
			Title:           book.Title,
			AuthorName:      book.AuthorName,
			TotalCopies:     book.TotalCopies,
			AvailableCopies: book.AvailableCopies,
			Status:          book.Status,
			Reservable:      book.CanHold(),
		})
	}

	return Catalog{
		LibraryID: libraryID,
		Books:     infos,
		Count:     len(infos),
	}
}
