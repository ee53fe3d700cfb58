// Package issuebook implements the Issue Book use case.
//
// A librarian lends a copy to a member. When the loan fulfils an approved reservation, the
// reservation moves to borrowed and its hold passes to the loan, so the ledger is not touched.
// A walk-in loan claims its own copy through the ledger under the book's row lock.
package issuebook
