// Package reservebook implements the Reserve Book use case.
//
// A member claims one copy of a book of their library. The book row is locked before the
// availability check, so concurrent reservations of the last copy are serialized and exactly one
// of them succeeds. The claim is taken through the availability ledger in the same transaction
// that inserts the pending reservation, and the librarians of the library are notified after commit.
package reservebook
