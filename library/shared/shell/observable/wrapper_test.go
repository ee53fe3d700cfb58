package observable_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	"github.com/snowRepo/LMS-sub006/library/shared/shell/observable"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
)

type pingCommand struct{}

func (pingCommand) CommandType() string { return "Ping" }

type stubCommandHandler struct {
	result shell.HandlerResult
	err    error
}

func (h stubCommandHandler) Handle(_ context.Context, _ pingCommand) (shell.HandlerResult, error) {
	return h.result, h.err
}

type countQuery struct{}

func (countQuery) QueryType() string { return "Count" }

type stubQueryHandler struct {
	count int
	err   error
}

func (h stubQueryHandler) Handle(_ context.Context, _ countQuery) (int, error) {
	return h.count, h.err
}

func Test_CommandWrapper_Success_Records_Metrics_Span_And_Logs(t *testing.T) {
	// arrange
	metrics := NewMetricsCollectorSpy()
	tracing := NewTracingCollectorSpy()
	logSpy := NewLogHandlerSpy(false)

	wrapper, err := observable.NewCommandWrapper[pingCommand](
		stubCommandHandler{result: shell.HandlerResult{RetryAttempts: 1}},
		observable.WithCommandMetrics[pingCommand](metrics),
		observable.WithCommandTracing[pingCommand](tracing),
		observable.WithCommandLogging[pingCommand](slog.New(logSpy)),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), pingCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t, metrics.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithStatus(shell.StatusSuccess).WithLabel(shell.LogAttrCommandType, "Ping").Assert())
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).WithStatus(shell.StatusSuccess).Assert())
	assert.True(t, tracing.HasFinishedSpan(shell.SpanNameCommandHandle, shell.StatusSuccess))
	assert.True(t, logSpy.HasInfoLogWithMessage(shell.LogMsgCommandStarted).WithAttr(shell.LogAttrCommandType, "Ping").Assert())
	assert.True(t, logSpy.HasInfoLogWithMessage(shell.LogMsgCommandCompleted).
		WithAttr(shell.LogAttrBusinessOutcome, shell.StatusSuccess).
		WithDurationMS().
		Assert())
	assert.Zero(t, metrics.CountCounterRecordsForMetric(shell.CommandHandlerRetriesMetric))
}

func Test_CommandWrapper_Idempotent_Result(t *testing.T) {
	// arrange
	metrics := NewContextualMetricsCollectorSpy()
	logSpy := NewLogHandlerSpy(false)

	wrapper, err := observable.NewCommandWrapper[pingCommand](
		stubCommandHandler{result: shell.HandlerResult{Idempotent: true, RetryAttempts: 1}},
		observable.WithCommandMetrics[pingCommand](metrics),
		observable.WithCommandContextualLogging[pingCommand](slog.New(logSpy)),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), pingCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerIdempotentMetric).Assert())
	assert.True(t, logSpy.HasInfoLogWithMessage(shell.LogMsgCommandCompleted).
		WithAttr(shell.LogAttrBusinessOutcome, shell.StatusIdempotent).
		Assert())
}

func Test_CommandWrapper_Business_Refusal_Is_Logged_As_Warning(t *testing.T) {
	// arrange
	metrics := NewMetricsCollectorSpy()
	tracing := NewTracingCollectorSpy()
	logSpy := NewLogHandlerSpy(false)
	refusal := fmt.Errorf("reserve: %w", core.ErrUnavailable)

	wrapper, err := observable.NewCommandWrapper[pingCommand](
		stubCommandHandler{result: shell.HandlerResult{RetryAttempts: 1, LastErrorType: shell.StatusRejected}, err: refusal},
		observable.WithCommandMetrics[pingCommand](metrics),
		observable.WithCommandTracing[pingCommand](tracing),
		observable.WithCommandLogging[pingCommand](slog.New(logSpy)),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), pingCommand{})

	// assert
	assert.ErrorIs(t, err, core.ErrUnavailable)
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerRejectedMetric).Assert())
	assert.True(t, tracing.HasFinishedSpan(shell.SpanNameCommandHandle, shell.StatusRejected))
	assert.True(t, logSpy.HasWarnLogWithMessage(shell.LogMsgCommandRejected).
		WithAttr(shell.LogAttrError, refusal.Error()).
		Assert())
	assert.False(t, logSpy.HasErrorLogWithMessage(shell.LogMsgCommandFailed).Assert())
}

func Test_CommandWrapper_Technical_Error_Is_Logged_As_Error(t *testing.T) {
	// arrange
	logSpy := NewLogHandlerSpy(false)
	wrapper, err := observable.NewCommandWrapper[pingCommand](
		stubCommandHandler{err: errors.New("connection reset")},
		observable.WithCommandLogging[pingCommand](slog.New(logSpy)),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), pingCommand{})

	// assert
	assert.Error(t, err)
	assert.True(t, logSpy.HasErrorLogWithMessage(shell.LogMsgCommandFailed).
		WithAttr(shell.LogAttrError, "connection reset").
		Assert())
}

func Test_CommandWrapper_Records_Retries_From_The_Result(t *testing.T) {
	// arrange
	metrics := NewMetricsCollectorSpy()
	wrapper, err := observable.NewCommandWrapper[pingCommand](
		stubCommandHandler{result: shell.HandlerResult{
			RetryAttempts:    3,
			TotalRetryDelay:  30 * time.Millisecond,
			LastErrorType:    shell.StatusTransactionConflict,
			RetriesExhausted: true,
		}},
		observable.WithCommandMetrics[pingCommand](metrics),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), pingCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithLabel("attempt_number", "2").
		WithLabel("error_type", shell.StatusTransactionConflict).
		Assert())
	assert.True(t, metrics.HasDurationRecordForMetric(shell.CommandHandlerRetryDelayMetric).Assert())
	assert.Equal(t, 1, metrics.CountCounterRecordsForMetric(shell.CommandHandlerMaxRetriesReachedMetric))
}

func Test_CommandWrapper_Without_Options_Only_Delegates(t *testing.T) {
	// arrange
	wrapper, err := observable.NewCommandWrapper[pingCommand](stubCommandHandler{})
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), pingCommand{})

	// assert
	assert.NoError(t, err)
}

func Test_QueryWrapper_Success_And_Failure(t *testing.T) {
	// arrange
	metrics := NewMetricsCollectorSpy()
	tracing := NewTracingCollectorSpy()
	logSpy := NewLogHandlerSpy(false)

	ok, err := observable.NewQueryWrapper[countQuery, int](
		stubQueryHandler{count: 7},
		observable.WithQueryMetrics[countQuery, int](metrics),
		observable.WithQueryTracing[countQuery, int](tracing),
		observable.WithQueryLogging[countQuery, int](slog.New(logSpy)),
	)
	require.NoError(t, err)

	failing, err := observable.NewQueryWrapper[countQuery, int](
		stubQueryHandler{err: context.DeadlineExceeded},
		observable.WithQueryMetrics[countQuery, int](metrics),
		observable.WithQueryLogging[countQuery, int](slog.New(logSpy)),
	)
	require.NoError(t, err)

	// act
	count, okErr := ok.Handle(context.Background(), countQuery{})
	_, failErr := failing.Handle(context.Background(), countQuery{})

	// assert
	require.NoError(t, okErr)
	assert.Equal(t, 7, count)
	assert.ErrorIs(t, failErr, context.DeadlineExceeded)

	assert.True(t, metrics.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).WithStatus(shell.StatusSuccess).Assert())
	assert.True(t, metrics.HasCounterRecordForMetric(shell.QueryHandlerTimeoutMetric).Assert())
	assert.True(t, tracing.HasFinishedSpan(shell.SpanNameQueryHandle, shell.StatusSuccess))
	assert.True(t, logSpy.HasInfoLogWithMessage(shell.LogMsgQueryCompleted).WithAttr(shell.LogAttrQueryType, "Count").Assert())
	assert.True(t, logSpy.HasErrorLogWithMessage(shell.LogMsgQueryFailed).Assert())
}
