// Package addbook implements the Add Book use case.
//
// Staff add a title to the catalog of a library with all of its copies available. Librarians and
// supervisors add to their own library, admins name the library explicitly. The external book id
// is unique per library.
package addbook
