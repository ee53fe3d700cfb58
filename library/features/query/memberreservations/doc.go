// Package memberreservations implements the My Reservations query use case.
//
// A member sees their own reservations, newest first, optionally filtered by status. Pending
// reservations that are past their expiry day but not yet swept are flagged.
package memberreservations
