// Package core contains the domain model of the library management system:
// books and their copy counts, reservations and their lifecycle, borrowings, users with
// their request-scoped Actor, notifications, and the domain events every state change emits.
//
// Everything in this package is pure: no I/O, no clocks, no randomness except the reservation
// reference generator. Feature slices decide on state changes with the types defined here and
// the shell persists them.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
