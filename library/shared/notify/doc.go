// Package notify turns domain events into inbox notifications.
//
// Fanout computes the audience of an event and writes one notification per recipient:
//   - reservation created or cancelled: every active librarian of the book's library
//   - every other event: the member the reservation or loan belongs to
//
// Command handlers hand their events to a Queue after the transaction committed. Delivery is
// best-effort, a failure is logged and never undoes the state change that caused the event.
// InlineQueue delivers before Enqueue returns, AsyncQueue delivers from a background worker.
package notify
