package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
)

// ServiceOrderStatus represents the Kanban column of a service order
type ServiceOrderStatus string

const (
	ServiceOrderStatusOpen       ServiceOrderStatus = "open"
	ServiceOrderStatusInProgress ServiceOrderStatus = "in_progress"
	ServiceOrderStatusPaused     ServiceOrderStatus = "paused"
	ServiceOrderStatusDone       ServiceOrderStatus = "done"
	ServiceOrderStatusCancelled  ServiceOrderStatus = "cancelled"
)

// ServiceOrderStatuses lists the board columns in display order
var ServiceOrderStatuses = []ServiceOrderStatus{
	ServiceOrderStatusOpen,
	ServiceOrderStatusInProgress,
	ServiceOrderStatusPaused,
	ServiceOrderStatusDone,
	ServiceOrderStatusCancelled,
}

// IsValid checks if the status is a valid ServiceOrderStatus
func (s ServiceOrderStatus) IsValid() bool {
	switch s {
	case ServiceOrderStatusOpen, ServiceOrderStatusInProgress, ServiceOrderStatusPaused,
		ServiceOrderStatusDone, ServiceOrderStatusCancelled:
		return true
	}
	return false
}

// IsClosed reports whether the order no longer counts as pending work
func (s ServiceOrderStatus) IsClosed() bool {
	return s == ServiceOrderStatusDone || s == ServiceOrderStatusCancelled
}

// CanTransitionTo is the single transition rule for service orders.
// Every column is reachable from every other one.
func (s ServiceOrderStatus) CanTransitionTo(target ServiceOrderStatus) bool {
	return target.IsValid()
}

// Priority of a service order
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid checks if the priority is known
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ServiceOrderDetails are the editable fields of a service order
type ServiceOrderDetails struct {
	Title       string
	ClientID    *uuid.UUID
	Priority    Priority
	OpenedAt    *time.Time
	ExpectedAt  *time.Time
	Responsible string
	Description string
	Notes       string
}

// ServiceOrder is a unit of work tracked on a free-form board plus a checklist
type ServiceOrder struct {
	shared.TenantAggregateRoot
	Number      int64
	Title       string
	ClientID    *uuid.UUID
	QuoteID     *uuid.UUID
	Status      ServiceOrderStatus
	Priority    Priority
	OpenedAt    time.Time
	ExpectedAt  *time.Time
	CompletedAt *time.Time
	Responsible string
	Description string
	Notes       string
	Checklist   []ChecklistItem

	// ClientName is filled by enriched reads only
	ClientName string
}

// NewServiceOrder creates an open service order
func NewServiceOrder(tenantID uuid.UUID, number int64, details ServiceOrderDetails) (*ServiceOrder, error) {
	so := &ServiceOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		Status:              ServiceOrderStatusOpen,
		OpenedAt:            time.Now(),
	}
	if err := so.apply(details); err != nil {
		return nil, err
	}
	return so, nil
}

// NewServiceOrderFromQuote derives the service order created when a quote is approved
func NewServiceOrderFromQuote(q *Quote, number int64) (*ServiceOrder, error) {
	so, err := NewServiceOrder(q.TenantID, number, ServiceOrderDetails{
		Title:       q.ServiceOrderTitle(),
		ClientID:    q.ClientID,
		Priority:    PriorityNormal,
		ExpectedAt:  q.DeliveryDate,
		Responsible: q.Responsible,
		Description: q.DeliveryTerms,
		Notes:       q.Notes,
	})
	if err != nil {
		return nil, err
	}
	quoteID := q.ID
	so.QuoteID = &quoteID
	return so, nil
}

// Update replaces the editable fields
func (so *ServiceOrder) Update(details ServiceOrderDetails) error {
	if err := so.apply(details); err != nil {
		return err
	}
	so.Touch()
	return nil
}

func (so *ServiceOrder) apply(d ServiceOrderDetails) error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return shared.NewValidationError("Service order title cannot be empty")
	}
	priority := d.Priority
	if priority == "" {
		priority = PriorityNormal
	}
	if !priority.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid priority: %s", d.Priority))
	}
	so.Title = title
	so.ClientID = d.ClientID
	so.Priority = priority
	if d.OpenedAt != nil {
		so.OpenedAt = *d.OpenedAt
	}
	so.ExpectedAt = d.ExpectedAt
	so.Responsible = d.Responsible
	so.Description = d.Description
	so.Notes = d.Notes
	return nil
}

// SetStatus moves the order to another column. Entering done stamps the
// completion date; other moves leave dates alone.
func (so *ServiceOrder) SetStatus(target ServiceOrderStatus, now time.Time) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid service order status: %s", target))
	}
	if !so.Status.CanTransitionTo(target) {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot change service order from %s to %s", so.Status, target))
	}
	from := so.Status
	so.Status = target
	if target == ServiceOrderStatusDone {
		so.CompletedAt = &now
	}
	so.Touch()
	so.AddDomainEvent(NewServiceOrderStatusChangedEvent(so, from))
	return nil
}

// IsOverdue reports whether the expected date is a calendar day strictly
// before now and the order is still pending. Never persisted.
func (so *ServiceOrder) IsOverdue(now time.Time) bool {
	if so.ExpectedAt == nil || so.Status.IsClosed() {
		return false
	}
	return dateOf(*so.ExpectedAt, now.Location()).Before(dateOf(now, now.Location()))
}

// Progress is the fraction of checklist items done, 0 when empty
func (so *ServiceOrder) Progress() float64 {
	if len(so.Checklist) == 0 {
		return 0
	}
	done := 0
	for _, item := range so.Checklist {
		if item.Done {
			done++
		}
	}
	return float64(done) / float64(len(so.Checklist))
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
