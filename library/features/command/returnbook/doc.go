// Package returnbook implements the Return Book use case.
//
// A librarian takes a lent copy back. The loan is closed, a reservation the loan fulfilled moves
// from borrowed to returned, and the copy is released through the ledger. Returning a loan twice
// changes nothing.
package returnbook
