// Package store provides the database-agnostic abstractions used by the library management system's
// persistence layer.
//
// This package defines the sentinel errors every storage engine maps its driver errors onto,
// the consistency context that routes read queries to a replica, and the dependency-free
// observability interfaces (Logger, ContextualLogger, MetricsCollector, TracingCollector)
// that engines and command handlers accept through functional options.
//
// Key error sentinels:
//   - ErrTransactionConflict: serialization failure or deadlock, safe to retry
//   - ErrUniqueViolation: a unique constraint rejected the write
//   - ErrNoRows: a single-row lookup found nothing
//
// Common usage pattern:
//
//	err := engine.WithinTransaction(ctx, func(ctx context.Context, tx postgresengine.Querier) error {
//		rows, err := tx.Query(ctx, stmt)
//		// ...
//	})
//	if errors.Is(err, store.ErrTransactionConflict) {
//		// retry
//	}
package store
