package postgresengine

import (
	"github.com/snowRepo/LMS-sub006/store"
)

// Logger is the basic logger accepted by the engine.
type Logger = store.Logger

// ContextualLogger is the context-aware logger accepted by the engine.
type ContextualLogger = store.ContextualLogger

// MetricsCollector is the metrics collector accepted by the engine.
type MetricsCollector = store.MetricsCollector

// TracingCollector is the tracing collector accepted by the engine.
type TracingCollector = store.TracingCollector

// SpanContext is an active span created through the TracingCollector.
type SpanContext = store.SpanContext

// Option defines a functional option for configuring Engine.
type Option func(*Engine) error

// WithLogger sets the logger for the Engine.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: transaction outcomes and durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Engine.
// It receives statement and transaction durations, database errors and transaction conflicts.
func WithMetrics(collector MetricsCollector) Option {
	return func(e *Engine) error {
		e.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Engine.
// Every transaction gets its own span, statements executed inside it inherit the span context.
func WithTracing(collector TracingCollector) Option {
	return func(e *Engine) error {
		e.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Engine.
// When set, it is preferred over the basic logger so log records carry trace correlation.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger
		return nil
	}
}
