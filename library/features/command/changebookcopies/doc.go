// Package changebookcopies implements the Change Book Copies use case.
//
// Staff record copies bought or withdrawn. The availability ledger shifts total and available
// copies by the same delta under the book's row lock and refuses to go below the copies that are
// currently held by reservations and loans.
package changebookcopies
