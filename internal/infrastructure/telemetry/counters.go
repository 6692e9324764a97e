package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys shared by the workflow and HTTP instruments
var (
	AttrTenantID  = attribute.Key("tenant_id")
	AttrAggregate = attribute.Key("aggregate")
	AttrEventType = attribute.Key("event_type")
	AttrStatus    = attribute.Key("status")
)

// Int64Counter registers a monotonic counter
func Int64Counter(meter metric.Meter, name, description, unit string) (metric.Int64Counter, error) {
	return meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
}
