package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

// RecordingHandler keeps every event delivered to it
type RecordingHandler struct {
	eventTypes []string
	mu         sync.Mutex
	handled    []shared.DomainEvent
	err        error
}

// NewRecordingHandler records the given event types, or all events when none are given
func NewRecordingHandler(eventTypes ...string) *RecordingHandler {
	return &RecordingHandler{eventTypes: eventTypes}
}

// EventTypes implements shared.EventHandler
func (h *RecordingHandler) EventTypes() []string {
	return h.eventTypes
}

// Handle implements shared.EventHandler
func (h *RecordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

// SetError makes subsequent deliveries fail with err
func (h *RecordingHandler) SetError(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
}

// Handled returns a copy of the recorded events
func (h *RecordingHandler) Handled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]shared.DomainEvent, len(h.handled))
	copy(out, h.handled)
	return out
}

// ForAggregate returns the recorded events of one aggregate, in delivery order
func (h *RecordingHandler) ForAggregate(id uuid.UUID) []shared.DomainEvent {
	var out []shared.DomainEvent
	for _, e := range h.Handled() {
		if e.AggregateID() == id {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops the recorded events
func (h *RecordingHandler) Reset() {
	h.mu.Lock()
	h.handled = nil
	h.mu.Unlock()
}

// WaitForEvents waits until the handler recorded at least n events
func WaitForEvents(t *testing.T, h *RecordingHandler, n int, timeout time.Duration) bool {
	t.Helper()
	return assert.Eventually(t, func() bool { return len(h.Handled()) >= n }, timeout, 10*time.Millisecond)
}
