package production

import "github.com/grafica/backend/internal/domain/shared"

// EventTypeOrderMoved is published when a card changes column
const EventTypeOrderMoved = "ProductionOrderMoved"

// OrderMovedEvent is raised on every MoveTo
type OrderMovedEvent struct {
	shared.BaseDomainEvent
	Number    int64 `json:"number"`
	FromStage Stage `json:"from_stage"`
	ToStage   Stage `json:"to_stage"`
}

// NewOrderMovedEvent creates an OrderMovedEvent
func NewOrderMovedEvent(o *Order, from Stage) *OrderMovedEvent {
	return &OrderMovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderMoved, "ProductionOrder", o.ID, o.TenantID),
		Number:          o.Number,
		FromStage:       from,
		ToStage:         o.Status,
	}
}
