// Package libraryloans implements the Library Loans query use case.
//
// Staff list the copies currently lent out by their library, earliest due first.
package libraryloans
