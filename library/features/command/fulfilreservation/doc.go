// Package fulfilreservation implements the Fulfil Reservation use case.
//
// A librarian closes an approved reservation whose copy was handed over without a loan record.
// The reservation's hold ends with it.
package fulfilreservation
