// Package approvereservation implements the Approve Reservation use case.
//
// A librarian confirms a pending reservation of their library. The copy held since creation stays
// held for pickup, so approval does not touch the availability ledger.
package approvereservation
