// Package cancelreservation implements the Cancel Reservation use case.
//
// A member withdraws one of their own pending reservations. The reservation row is locked before
// its status is checked, so a cancel racing with the expiry sweep releases the copy exactly once.
package cancelreservation
