// Package librarydashboard implements the Library Dashboard query use case.
//
// The dashboard sums up the catalog, the reservation counts per status and the loans of a library.
// Pending and approved reservations both count as reserved.
package librarydashboard
