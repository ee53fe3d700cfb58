package notify

import (
	"context"
	"sync"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

const (
	// NotificationsDeliveredMetric counts notifications written, by event type.
	NotificationsDeliveredMetric = "notifications_delivered_total"

	// NotificationFailuresMetric counts events whose delivery failed at least partially.
	NotificationFailuresMetric = "notification_failures_total"

	logMsgDeliveryFailed   = "notification delivery failed"
	logMsgQueueFull        = "notification queue full, delivering inline"
	logMsgQueueClosed      = "notification queue closed, event dropped"
	logMsgWorkerStopped    = "notification worker stopped"
	logAttrEventType       = "event_type"
	logAttrReservationRef  = "reservation_ref"
	logAttrDeliveredCount  = "delivered"
	logAttrError           = "error"
	defaultAsyncBufferSize = 256
)

// Queue accepts events for best-effort delivery. Enqueue never fails and never blocks on the database
// for longer than one delivery.
type Queue interface {
	Enqueue(ctx context.Context, event core.DomainEvent)
}

// Deliverer writes the notifications of one event.
type Deliverer interface {
	Deliver(ctx context.Context, event core.DomainEvent) (int, error)
}

// Option configures the observability of a queue.
type Option func(*observer)

// WithLogger sets the logger used to report failed deliveries.
func WithLogger(logger shell.Logger) Option {
	return func(o *observer) {
		o.logger = logger
	}
}

// WithContextualLogger sets the contextual logger used to report failed deliveries.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(o *observer) {
		o.contextualLogger = logger
	}
}

// WithMetrics sets the metrics collector for delivery counters.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(o *observer) {
		o.metricsCollector = collector
	}
}

type observer struct {
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
}

func newObserver(opts []Option) observer {
	o := observer{}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// deliver runs one delivery and reports its outcome, errors end here.
func (o observer) deliver(ctx context.Context, deliverer Deliverer, event core.DomainEvent) {
	delivered, err := deliverer.Deliver(ctx, event)

	labels := map[string]string{logAttrEventType: event.IsEventType()}

	if delivered > 0 {
		o.record(ctx, NotificationsDeliveredMetric, float64(delivered), labels)
	}

	if err == nil {
		return
	}

	o.record(ctx, NotificationFailuresMetric, 1, labels)

	args := []any{
		logAttrEventType, event.IsEventType(),
		logAttrDeliveredCount, delivered,
		logAttrError, err.Error(),
	}
	if facts, ok := factsOf(event); ok {
		args = append(args, logAttrReservationRef, facts.ReservationRef)
	}

	o.warn(ctx, logMsgDeliveryFailed, args...)
}

func (o observer) record(ctx context.Context, metric string, value float64, labels map[string]string) {
	if o.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := o.metricsCollector.(shell.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	o.metricsCollector.RecordValue(metric, value, labels)
}

func (o observer) warn(ctx context.Context, msg string, args ...any) {
	if o.contextualLogger != nil {
		o.contextualLogger.WarnContext(ctx, msg, args...)
	} else if o.logger != nil {
		o.logger.Warn(msg, args...)
	}
}

func (o observer) info(ctx context.Context, msg string, args ...any) {
	if o.contextualLogger != nil {
		o.contextualLogger.InfoContext(ctx, msg, args...)
	} else if o.logger != nil {
		o.logger.Info(msg, args...)
	}
}

// InlineQueue delivers on the caller's goroutine before Enqueue returns. The sweeps use it,
// they exit right after their last transition.
type InlineQueue struct {
	deliverer Deliverer
	observer  observer
}

// NewInlineQueue creates an InlineQueue.
func NewInlineQueue(deliverer Deliverer, opts ...Option) InlineQueue {
	return InlineQueue{deliverer: deliverer, observer: newObserver(opts)}
}

// Enqueue delivers event. A canceled request does not cancel the delivery.
func (q InlineQueue) Enqueue(ctx context.Context, event core.DomainEvent) {
	q.observer.deliver(context.WithoutCancel(ctx), q.deliverer, event)
}

// AsyncQueue delivers from a background worker started with Run.
type AsyncQueue struct {
	deliverer Deliverer
	observer  observer
	events    chan queuedEvent

	mu     sync.RWMutex
	closed bool
}

type queuedEvent struct {
	ctx   context.Context
	event core.DomainEvent
}

// NewAsyncQueue creates an AsyncQueue buffering up to bufferSize events. A non-positive size uses the default.
func NewAsyncQueue(deliverer Deliverer, bufferSize int, opts ...Option) *AsyncQueue {
	if bufferSize <= 0 {
		bufferSize = defaultAsyncBufferSize
	}

	return &AsyncQueue{
		deliverer: deliverer,
		observer:  newObserver(opts),
		events:    make(chan queuedEvent, bufferSize),
	}
}

// Enqueue hands event to the worker. When the buffer is full the event is delivered inline instead of
// being dropped. After Close events are dropped and logged.
func (q *AsyncQueue) Enqueue(ctx context.Context, event core.DomainEvent) {
	ctx = context.WithoutCancel(ctx)

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.observer.warn(ctx, logMsgQueueClosed, logAttrEventType, event.IsEventType())
		return
	}

	select {
	case q.events <- queuedEvent{ctx: ctx, event: event}:
	default:
		q.observer.warn(ctx, logMsgQueueFull, logAttrEventType, event.IsEventType())
		q.observer.deliver(ctx, q.deliverer, event)
	}
}

// Run delivers queued events until Close was called and the buffer is drained, or ctx is done.
func (q *AsyncQueue) Run(ctx context.Context) error {
	for {
		select {
		case queued, ok := <-q.events:
			if !ok {
				q.observer.info(ctx, logMsgWorkerStopped)
				return nil
			}
			q.observer.deliver(queued.ctx, q.deliverer, queued.event)

		case <-ctx.Done():
			q.drain()
			q.observer.info(ctx, logMsgWorkerStopped)
			return nil
		}
	}
}

// Close stops accepting events. Run delivers what is still buffered and returns.
func (q *AsyncQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	close(q.events)
}

func (q *AsyncQueue) drain() {
	for {
		select {
		case queued, ok := <-q.events:
			if !ok {
				return
			}
			q.observer.deliver(queued.ctx, q.deliverer, queued.event)
		default:
			return
		}
	}
}
