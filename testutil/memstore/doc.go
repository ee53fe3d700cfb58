// Package memstore is an in-memory implementation of every repository and of shell.Transactor.
//
// Transactions run one at a time on a copy of the data, commit replaces the data with the copy and
// rollback drops it. Reads and writes outside a transaction wait for the running transaction, so
// the store behaves like a serializable database for the command handlers under test.
package memstore
