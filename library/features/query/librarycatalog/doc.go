// Package librarycatalog implements the Library Catalog query use case.
//
// Members and staff list the books of their library with the copies left to reserve.
package librarycatalog
