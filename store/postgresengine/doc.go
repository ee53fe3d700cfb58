// Package postgresengine provides the PostgreSQL storage engine of the library management system.
//
// The engine executes goqu statements against one of three interchangeable connection types
// (pgx.Pool, sql.DB, sqlx.DB) and runs units of work inside transactions. Driver errors are
// mapped onto the store sentinels so callers can retry serialization failures and detect
// unique constraint violations without depending on a particular driver.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - Transactions with rollback on error or panic
//   - Optional read replica for eventually consistent queries (pgx only)
//   - Logging, metrics and tracing through dependency-free interfaces
//   - Schema migration for the library tables
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	engine, _ := postgresengine.NewEngineFromPGXPool(db, postgresengine.WithLogger(slogLogger))
//
//	err := engine.WithinTransaction(ctx, func(ctx context.Context, tx postgresengine.Querier) error {
//		_, err := tx.Exec(ctx, dialect.Update("books").Set(record).Where(...).Prepared(true))
//		return err
//	})
package postgresengine
