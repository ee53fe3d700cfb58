package helper

import (
	"context"
	"sync"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

// RecordingQueue is a notify.Queue that only records the events it receives.
type RecordingQueue struct {
	mu     sync.Mutex
	events []core.DomainEvent
}

// NewRecordingQueue creates an empty RecordingQueue.
func NewRecordingQueue() *RecordingQueue {
	return &RecordingQueue{}
}

// Enqueue implements notify.Queue.
func (q *RecordingQueue) Enqueue(_ context.Context, event core.DomainEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, event)
}

// Events returns a copy of the recorded events.
func (q *RecordingQueue) Events() []core.DomainEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	events := make([]core.DomainEvent, len(q.events))
	copy(events, q.events)

	return events
}

// CountOfType counts the recorded events with the given event type.
func (q *RecordingQueue) CountOfType(eventType string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	count := 0
	for _, event := range q.events {
		if event.IsEventType() == eventType {
			count++
		}
	}

	return count
}
