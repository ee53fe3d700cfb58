// Package expirereservations implements the reservation expiry sweep.
//
// The sweep selects every pending reservation whose expiry date lies before the start of the
// current day and expires each one in its own transaction: the reservation row is locked and
// re-checked, its status set to expired and its copy released. A reservation that was cancelled,
// approved or already expired by a concurrent actor is skipped. Running the sweep again finds
// nothing left to do. The owning member is notified after each commit.
package expirereservations
