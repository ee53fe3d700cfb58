package postgresengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/snowRepo/LMS-sub006/store"
)

const (
	metricQueryDuration        = "store_query_duration_seconds"
	metricExecDuration         = "store_exec_duration_seconds"
	metricTransactionDuration  = "store_transaction_duration_seconds"
	metricDatabaseErrors       = "store_database_errors_total"
	metricTransactionConflicts = "store_transaction_conflicts_total"
	spanNameTransaction        = "store.transaction"
	spanAttrOperation          = "operation"
	spanAttrErrorType          = "error_type"
	spanAttrDurationMS         = "duration_ms"
	spanAttrError              = "error"
	labelStatus                = "status"
	operationQuery             = "query"
	operationExec              = "exec"
	operationBegin             = "begin"
	operationCommit            = "commit"
	operationTransaction       = "transaction"
	statusSuccess              = "success"
	statusError                = "error"
	statusRolledBack           = "rolled_back"
	statusConflict             = "conflict"
	errorTypeConflict          = "transaction_conflict"
	errorTypeUniqueViolation   = "unique_violation"
	errorTypeCanceled          = "context_canceled"
	errorTypeTimeout           = "context_deadline_exceeded"
	errorTypeDatabase          = "database_error"
)

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (e Engine) logQueryWithDuration(
	ctx context.Context,
	sqlQuery string,
	argCount int,
	action string,
	duration time.Duration,
) {
	e.logDebug(ctx, logMsgSQLExecuted+action,
		logAttrDurationMS, toMilliseconds(duration),
		logAttrQuery, sqlQuery,
		logAttrArgCount, argCount,
	)
}

func (e Engine) logDebug(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.DebugContext(ctx, msg, args...)
	} else if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func (e Engine) logInfo(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.InfoContext(ctx, msg, args...)
	} else if e.logger != nil {
		e.logger.Info(msg, args...)
	}
}

func (e Engine) logWarn(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.WarnContext(ctx, msg, args...)
	} else if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (e Engine) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if e.contextualLogger != nil {
		e.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	} else if e.logger != nil {
		e.logger.Error(msg, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordErrorMetrics records database errors with context if the collector supports it.
func (e Engine) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	}

	if contextualCollector, ok := e.metricsCollector.(store.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		e.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

// recordConflictMetrics counts transactions aborted by postgres for retry.
func (e Engine) recordConflictMetrics(ctx context.Context) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operationTransaction,
	}

	if contextualCollector, ok := e.metricsCollector.(store.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricTransactionConflicts, labels)
	} else {
		e.metricsCollector.IncrementCounter(metricTransactionConflicts, labels)
	}
}

// recordDurationMetrics records duration metrics with context if the collector supports it.
func (e Engine) recordDurationMetrics(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	operation, status string,
) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	if contextualCollector, ok := e.metricsCollector.(store.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
	} else {
		e.metricsCollector.RecordDuration(metricName, duration, labels)
	}
}

// startTransactionSpan starts a tracing span if the tracing collector is configured.
func (e Engine) startTransactionSpan(ctx context.Context) (context.Context, SpanContext) {
	if e.tracingCollector == nil {
		return ctx, nil
	}

	return e.tracingCollector.StartSpan(ctx, spanNameTransaction, map[string]string{
		spanAttrOperation: operationTransaction,
	})
}

// finishTransactionSpan finishes a tracing span if the tracing collector is configured.
func (e Engine) finishTransactionSpan(span SpanContext, status string, duration time.Duration, err error) {
	if e.tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		spanAttrDurationMS: fmt.Sprintf("%.2f", float64(duration.Nanoseconds())/1e6),
	}

	if err != nil {
		attrs[spanAttrError] = err.Error()
		attrs[spanAttrErrorType] = errorTypeFor(err)
	}

	e.tracingCollector.FinishSpan(span, status, attrs)
}
