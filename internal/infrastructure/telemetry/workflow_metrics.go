package telemetry

import (
	"context"

	"github.com/grafica/backend/internal/domain/production"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// WorkflowMetrics counts workflow transitions. It is an event handler on the
// domain event bus so services never call it directly.
type WorkflowMetrics struct {
	transitions    metric.Int64Counter
	quotesApproved metric.Int64Counter
}

// NewWorkflowMetrics registers the workflow counters on meter
func NewWorkflowMetrics(meter metric.Meter) (*WorkflowMetrics, error) {
	transitions, err := Int64Counter(meter,
		"grafica_status_transition_total",
		"Status transitions applied to quotes, service orders, purchase items and production orders",
		"{transitions}")
	if err != nil {
		return nil, err
	}
	approved, err := Int64Counter(meter,
		"grafica_quote_approved_total",
		"Quotes approved (each creates a service order and a receivable)",
		"{quotes}")
	if err != nil {
		return nil, err
	}
	return &WorkflowMetrics{transitions: transitions, quotesApproved: approved}, nil
}

// EventTypes implements shared.EventHandler
func (m *WorkflowMetrics) EventTypes() []string {
	return []string{
		trade.EventTypeQuoteStatusChanged,
		trade.EventTypeServiceOrderStatusChanged,
		trade.EventTypePurchaseItemStatusChanged,
		production.EventTypeOrderMoved,
	}
}

// Handle implements shared.EventHandler
func (m *WorkflowMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	attrs := []attribute.KeyValue{
		AttrTenantID.String(event.TenantID().String()),
		AttrAggregate.String(event.AggregateType()),
		AttrEventType.String(event.EventType()),
	}
	if e, ok := event.(*trade.QuoteStatusChangedEvent); ok {
		attrs = append(attrs, AttrStatus.String(string(e.ToStatus)))
		if e.ToStatus == trade.QuoteStatusApproved {
			m.quotesApproved.Add(ctx, 1, metric.WithAttributes(AttrTenantID.String(event.TenantID().String())))
		}
	}
	m.transitions.Add(ctx, 1, metric.WithAttributes(attrs...))
	return nil
}

var _ shared.EventHandler = (*WorkflowMetrics)(nil)
