// Package ledger is the availability ledger, the only component that writes books.available_copies.
//
// Every copy-holding record (a pending, approved or borrowed reservation, or an active walk-in loan)
// is backed by exactly one Hold. Cancel, reject, expire, fulfil and return give the copy back with
// exactly one Release. All methods lock the book row and must run inside the caller's transaction,
// so the counter and the status change commit or roll back together.
//
// Audit recomputes the holds from the reservation and borrowing tables and reports books whose
// counter drifted from them.
package ledger
