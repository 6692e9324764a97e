package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseStatus is shared by purchase lists and their items
type PurchaseStatus string

const (
	PurchaseStatusPending    PurchaseStatus = "pending"
	PurchaseStatusPurchased  PurchaseStatus = "purchased"
	PurchaseStatusDelivered  PurchaseStatus = "delivered"
	PurchaseStatusIncomplete PurchaseStatus = "incomplete"
)

// IsValid checks if the status is a valid PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusPurchased, PurchaseStatusDelivered, PurchaseStatusIncomplete:
		return true
	}
	return false
}

// CanTransitionTo is the single transition rule for purchases. Partial or
// damaged deliveries mean any status can follow any other.
func (s PurchaseStatus) CanTransitionTo(target PurchaseStatus) bool {
	return target.IsValid()
}

// PurchaseItem is one material to buy
type PurchaseItem struct {
	ID          uuid.UUID
	ListID      uuid.UUID
	Description string
	Quantity    decimal.Decimal
	Status      PurchaseStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PurchaseList is a shopping list, optionally tied to a service order
type PurchaseList struct {
	shared.TenantAggregateRoot
	ServiceOrderID *uuid.UUID
	Title          string
	Status         PurchaseStatus
	Items          []PurchaseItem
}

// NewPurchaseList creates a pending list
func NewPurchaseList(tenantID uuid.UUID, serviceOrderID *uuid.UUID, title string) *PurchaseList {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Lista de compras"
	}
	return &PurchaseList{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ServiceOrderID:      serviceOrderID,
		Title:               title,
		Status:              PurchaseStatusPending,
	}
}

// Rename changes the list title
func (l *PurchaseList) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewValidationError("Purchase list title cannot be empty")
	}
	l.Title = title
	l.Touch()
	return nil
}

// SetStatus changes the list's own status
func (l *PurchaseList) SetStatus(target PurchaseStatus) error {
	if err := checkPurchaseTransition(l.Status, target); err != nil {
		return err
	}
	l.Status = target
	l.Touch()
	return nil
}

// AddItem appends a pending item. A zero quantity defaults to 1.
func (l *PurchaseList) AddItem(description string, quantity decimal.Decimal) (*PurchaseItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewValidationError("Purchase item description cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewValidationError("Quantity cannot be negative")
	}
	if quantity.IsZero() {
		quantity = decimal.NewFromInt(1)
	}
	now := time.Now()
	l.Items = append(l.Items, PurchaseItem{
		ID:          uuid.New(),
		ListID:      l.ID,
		Description: description,
		Quantity:    quantity,
		Status:      PurchaseStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	l.Touch()
	return &l.Items[len(l.Items)-1], nil
}

// SetItemStatus changes one item's status
func (l *PurchaseList) SetItemStatus(itemID uuid.UUID, target PurchaseStatus) error {
	idx := l.itemIndex(itemID)
	if idx < 0 {
		return shared.NewNotFoundError("Purchase item")
	}
	item := &l.Items[idx]
	if err := checkPurchaseTransition(item.Status, target); err != nil {
		return err
	}
	item.Status = target
	item.UpdatedAt = time.Now()
	l.Touch()
	l.AddDomainEvent(NewPurchaseItemStatusChangedEvent(l, *item))
	return nil
}

// RemoveItem deletes one item
func (l *PurchaseList) RemoveItem(itemID uuid.UUID) error {
	idx := l.itemIndex(itemID)
	if idx < 0 {
		return shared.NewNotFoundError("Purchase item")
	}
	l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
	l.Touch()
	return nil
}

func (l *PurchaseList) itemIndex(itemID uuid.UUID) int {
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func checkPurchaseTransition(from, to PurchaseStatus) error {
	if !to.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid purchase status: %s", to))
	}
	if !from.CanTransitionTo(to) {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot change purchase status from %s to %s", from, to))
	}
	return nil
}
