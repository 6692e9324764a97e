package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ReceivableStatus represents the status of money owed to the tenant
type ReceivableStatus string

const (
	ReceivableStatusPending   ReceivableStatus = "pending"
	ReceivableStatusReceived  ReceivableStatus = "received"
	ReceivableStatusOverdue   ReceivableStatus = "overdue"
	ReceivableStatusCancelled ReceivableStatus = "cancelled"
)

// IsValid checks if the status is known
func (s ReceivableStatus) IsValid() bool {
	switch s {
	case ReceivableStatusPending, ReceivableStatusReceived, ReceivableStatusOverdue, ReceivableStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo is the single transition table for receivables
func (s ReceivableStatus) CanTransitionTo(target ReceivableStatus) bool {
	switch s {
	case ReceivableStatusPending, ReceivableStatusOverdue:
		return target.IsValid() && target != s
	case ReceivableStatusReceived, ReceivableStatusCancelled:
		return target == ReceivableStatusPending
	}
	return false
}

// Receivable is money owed to the tenant (conta a receber)
type Receivable struct {
	shared.TenantAggregateRoot
	ClientID      *uuid.UUID
	CategoryID    *uuid.UUID
	QuoteID       *uuid.UUID
	Description   string
	Amount        decimal.Decimal
	DueDate       time.Time
	ReceivedAt    *time.Time
	Status        ReceivableStatus
	PaymentMethod string

	// ClientName is filled by enriched reads only
	ClientName string
}

// NewReceivable creates a pending receivable
func NewReceivable(tenantID uuid.UUID, d EntryDetails) (*Receivable, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	return newPendingReceivable(tenantID, d), nil
}

func newPendingReceivable(tenantID uuid.UUID, d EntryDetails) *Receivable {
	r := &Receivable{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Status:              ReceivableStatusPending,
	}
	r.apply(d)
	return r
}

// NewReceivableFromQuote creates the receivable for an approved quote: the
// quote's final amount, due on its delivery date or today when absent. A
// final of zero still yields a receivable.
func NewReceivableFromQuote(q *trade.Quote, today time.Time) (*Receivable, error) {
	due := dateOnly(today)
	if q.DeliveryDate != nil {
		due = dateOnly(*q.DeliveryDate)
	}
	d := EntryDetails{
		CounterpartID: q.ClientID,
		Description:   q.ServiceOrderTitle(),
		Amount:        q.Final,
		DueDate:       due,
		PaymentMethod: q.PaymentTerms,
	}
	if err := d.check(true); err != nil {
		return nil, err
	}
	r := newPendingReceivable(q.TenantID, d)
	quoteID := q.ID
	r.QuoteID = &quoteID
	return r, nil
}

// Update replaces the editable fields
func (r *Receivable) Update(d EntryDetails) error {
	if err := d.check(r.QuoteID != nil); err != nil {
		return err
	}
	r.apply(d)
	r.Touch()
	return nil
}

func (r *Receivable) apply(d EntryDetails) {
	r.ClientID = d.CounterpartID
	r.CategoryID = d.CategoryID
	r.Description = strings.TrimSpace(d.Description)
	r.Amount = d.Amount
	r.DueDate = d.DueDate
	r.PaymentMethod = d.PaymentMethod
}

// SetStatus moves the receivable through its status table. Received stamps
// the received date when none is given; leaving received clears it.
func (r *Receivable) SetStatus(target ReceivableStatus, at time.Time) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid receivable status: %s", target))
	}
	if !r.Status.CanTransitionTo(target) {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot change receivable from %s to %s", r.Status, target))
	}
	r.Status = target
	if target == ReceivableStatusReceived {
		r.ReceivedAt = &at
	} else {
		r.ReceivedAt = nil
	}
	r.Touch()
	return nil
}
