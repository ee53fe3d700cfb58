// Package libraryreservations implements the Library Reservations query use case.
//
// Staff see the reservation queue of their library with the member and book of each entry.
package libraryreservations
