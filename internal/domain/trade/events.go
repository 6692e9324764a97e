package trade

import (
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types published by the trade aggregates
const (
	EventTypeQuoteStatusChanged        = "QuoteStatusChanged"
	EventTypeServiceOrderStatusChanged = "ServiceOrderStatusChanged"
	EventTypeChecklistChanged          = "ChecklistChanged"
	EventTypePurchaseItemStatusChanged = "PurchaseItemStatusChanged"
)

// QuoteStatusChangedEvent is raised on every quote transition
type QuoteStatusChangedEvent struct {
	shared.BaseDomainEvent
	Number     int64           `json:"number"`
	FromStatus QuoteStatus     `json:"from_status"`
	ToStatus   QuoteStatus     `json:"to_status"`
	Final      decimal.Decimal `json:"final"`
}

// NewQuoteStatusChangedEvent creates a QuoteStatusChangedEvent
func NewQuoteStatusChangedEvent(q *Quote, from QuoteStatus) *QuoteStatusChangedEvent {
	return &QuoteStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteStatusChanged, "Quote", q.ID, q.TenantID),
		Number:          q.Number,
		FromStatus:      from,
		ToStatus:        q.Status,
		Final:           q.Final,
	}
}

// ServiceOrderStatusChangedEvent is raised when a card moves between columns
type ServiceOrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	Number     int64              `json:"number"`
	FromStatus ServiceOrderStatus `json:"from_status"`
	ToStatus   ServiceOrderStatus `json:"to_status"`
}

// NewServiceOrderStatusChangedEvent creates a ServiceOrderStatusChangedEvent
func NewServiceOrderStatusChangedEvent(so *ServiceOrder, from ServiceOrderStatus) *ServiceOrderStatusChangedEvent {
	return &ServiceOrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceOrderStatusChanged, "ServiceOrder", so.ID, so.TenantID),
		Number:          so.Number,
		FromStatus:      from,
		ToStatus:        so.Status,
	}
}

// ChecklistChangedEvent carries the order's progress after a checklist edit
type ChecklistChangedEvent struct {
	shared.BaseDomainEvent
	Progress float64 `json:"progress"`
	Items    int     `json:"items"`
}

// NewChecklistChangedEvent creates a ChecklistChangedEvent
func NewChecklistChangedEvent(so *ServiceOrder) *ChecklistChangedEvent {
	return &ChecklistChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeChecklistChanged, "ServiceOrder", so.ID, so.TenantID),
		Progress:        so.Progress(),
		Items:           len(so.Checklist),
	}
}

// PurchaseItemStatusChangedEvent is raised when an item changes status
type PurchaseItemStatusChangedEvent struct {
	shared.BaseDomainEvent
	ItemID   uuid.UUID      `json:"item_id"`
	ToStatus PurchaseStatus `json:"to_status"`
}

// NewPurchaseItemStatusChangedEvent creates a PurchaseItemStatusChangedEvent
func NewPurchaseItemStatusChangedEvent(l *PurchaseList, item PurchaseItem) *PurchaseItemStatusChangedEvent {
	return &PurchaseItemStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseItemStatusChanged, "PurchaseList", l.ID, l.TenantID),
		ItemID:          item.ID,
		ToStatus:        item.Status,
	}
}
