// Package persistence implements the repositories of the library domain on PostgreSQL.
//
// Statements are built with goqu using the postgres dialect and prepared arguments, and executed
// through a postgresengine.Engine, so every adapter the engine supports (pgx pool, database/sql,
// sqlx) works unchanged. Driver sentinels are mapped onto the domain errors: store.ErrNoRows
// becomes core.ErrNotFound and store.ErrUniqueViolation becomes core.ErrAlreadyExists.
// store.ErrTransactionConflict passes through so command handlers can retry.
package persistence
