// Package ledgeraudit implements the Ledger Audit query use case.
//
// It compares every book's held copies with the reservations and loans that claim them.
// Supervisors and admins use it to find books whose counter drifted.
package ledgeraudit
