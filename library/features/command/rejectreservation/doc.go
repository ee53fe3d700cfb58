// Package rejectreservation implements the Reject Reservation use case.
//
// A librarian refuses a pending reservation of their library, optionally with a reason that is shown
// to the member. The copy held since creation is released in the same transaction.
package rejectreservation
