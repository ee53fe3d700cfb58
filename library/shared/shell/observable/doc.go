// Package observable decorates command and query handlers with metrics, tracing and logging.
//
// The wrappers implement the same handler contracts as the handlers they wrap, so callers do not
// know whether a handler is instrumented:
//
//	handler, err := observable.NewCommandWrapper[reservebook.Command](
//		reservebook.NewCommandHandler(transactor, ledger, queue),
//		observable.WithCommandMetrics[reservebook.Command](metricsCollector),
//		observable.WithCommandTracing[reservebook.Command](tracingCollector),
//		observable.WithCommandContextualLogging[reservebook.Command](contextualLogger),
//	)
//
// Business rule violations (not found, invalid state, unavailable, already exists, forbidden) are
// recorded with status "rejected" and logged as warnings. Everything else that fails is an error.
package observable
