// Package adapters provide database adapter implementations for the PostgreSQL storage engine.
//
// This package implements the adapter pattern to support multiple PostgreSQL database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, including transactions, so the engine and every repository
// built on it work with any supported connection type.
package adapters
