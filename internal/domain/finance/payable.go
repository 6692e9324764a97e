package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PayableStatus represents the status of money the tenant owes
type PayableStatus string

const (
	PayableStatusPending   PayableStatus = "pending"
	PayableStatusPaid      PayableStatus = "paid"
	PayableStatusOverdue   PayableStatus = "overdue"
	PayableStatusCancelled PayableStatus = "cancelled"
)

// IsValid checks if the status is known
func (s PayableStatus) IsValid() bool {
	switch s {
	case PayableStatusPending, PayableStatusPaid, PayableStatusOverdue, PayableStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo is the single transition table for payables
func (s PayableStatus) CanTransitionTo(target PayableStatus) bool {
	switch s {
	case PayableStatusPending, PayableStatusOverdue:
		return target.IsValid() && target != s
	case PayableStatusPaid, PayableStatusCancelled:
		return target == PayableStatusPending
	}
	return false
}

// Payable is money the tenant owes (conta a pagar)
type Payable struct {
	shared.TenantAggregateRoot
	SupplierID    *uuid.UUID
	CategoryID    *uuid.UUID
	Description   string
	Amount        decimal.Decimal
	DueDate       time.Time
	PaidAt        *time.Time
	Status        PayableStatus
	PaymentMethod string

	// SupplierName is filled by enriched reads only
	SupplierName string
}

// NewPayable creates a pending payable
func NewPayable(tenantID uuid.UUID, d EntryDetails) (*Payable, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	p := &Payable{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Status:              PayableStatusPending,
	}
	p.apply(d)
	return p, nil
}

// Update replaces the editable fields
func (p *Payable) Update(d EntryDetails) error {
	if err := d.validate(); err != nil {
		return err
	}
	p.apply(d)
	p.Touch()
	return nil
}

func (p *Payable) apply(d EntryDetails) {
	p.SupplierID = d.CounterpartID
	p.CategoryID = d.CategoryID
	p.Description = strings.TrimSpace(d.Description)
	p.Amount = d.Amount
	p.DueDate = d.DueDate
	p.PaymentMethod = d.PaymentMethod
}

// SetStatus moves the payable through its status table
func (p *Payable) SetStatus(target PayableStatus, at time.Time) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid payable status: %s", target))
	}
	if !p.Status.CanTransitionTo(target) {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot change payable from %s to %s", p.Status, target))
	}
	p.Status = target
	if target == PayableStatusPaid {
		p.PaidAt = &at
	} else {
		p.PaidAt = nil
	}
	p.Touch()
	return nil
}
