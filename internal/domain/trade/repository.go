package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
)

// QuoteFilter narrows quote listings
type QuoteFilter struct {
	shared.Filter
	Status   QuoteStatus
	ClientID *uuid.UUID
}

// QuoteRepository persists quotes and their lines
type QuoteRepository interface {
	// FindByIDForTenant loads a quote with its lines
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Quote, error)
	// FindAllForTenant lists quotes (lines not loaded)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter QuoteFilter) ([]Quote, int64, error)
	// Save inserts or updates a quote, replacing all of its lines
	Save(ctx context.Context, quote *Quote) error
	// SaveWithLock is Save conditioned on the stored version matching quote.Version
	SaveWithLock(ctx context.Context, quote *Quote) error
	// DeleteForTenant removes a quote and its lines
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	// NextNumber returns the next per-tenant sequence number
	NextNumber(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// QuoteFinder loads one quote of a tenant
type QuoteFinder interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Quote, error)
}

// VerifyQuoteReference checks that an optional quote id names a quote of the
// tenant. A nil id is always valid.
func VerifyQuoteReference(ctx context.Context, quotes QuoteFinder, tenantID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	q, err := quotes.FindByIDForTenant(ctx, tenantID, *id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewValidationError("Referenced quote does not exist")
		}
		return err
	}
	if q.TenantID != tenantID {
		return shared.NewValidationError("Referenced quote does not exist")
	}
	return nil
}

// ServiceOrderFilter narrows service order listings
type ServiceOrderFilter struct {
	shared.Filter
	Status   ServiceOrderStatus
	Priority Priority
	ClientID *uuid.UUID
	QuoteID  *uuid.UUID
}

// ServiceOrderRepository persists service orders and their checklists
type ServiceOrderRepository interface {
	// FindByIDForTenant loads the order with client name and checklist
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ServiceOrder, error)
	// FindBaseByIDForTenant loads only the order row
	FindBaseByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ServiceOrder, error)
	// FindAllForTenant lists orders with client names and checklists
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ServiceOrderFilter) ([]ServiceOrder, error)
	// FindAllBaseForTenant lists only order rows
	FindAllBaseForTenant(ctx context.Context, tenantID uuid.UUID, filter ServiceOrderFilter) ([]ServiceOrder, error)
	// FindChecklistItem finds a checklist item to locate its order
	FindChecklistItem(ctx context.Context, tenantID, itemID uuid.UUID) (*ChecklistItem, error)
	// ExistsForQuote reports whether any order references the quote
	ExistsForQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (bool, error)
	// Create inserts a new order with its initial checklist
	Create(ctx context.Context, so *ServiceOrder) error
	// Save inserts or updates the order row only; checklist rows are left alone
	Save(ctx context.Context, so *ServiceOrder) error
	// SaveWithLock is Save conditioned on the stored version
	SaveWithLock(ctx context.Context, so *ServiceOrder) error
	// AddChecklistItem appends an item after the stored ones and sets its position
	AddChecklistItem(ctx context.Context, tenantID uuid.UUID, item *ChecklistItem) error
	// UpdateChecklistItem writes one item's done flag and completion time
	UpdateChecklistItem(ctx context.Context, tenantID uuid.UUID, item *ChecklistItem) error
	// RemoveChecklistItem deletes one item and closes the position gap
	RemoveChecklistItem(ctx context.Context, tenantID, orderID, itemID uuid.UUID) error
	// ReorderChecklist rewrites positions to follow itemIDs
	ReorderChecklist(ctx context.Context, tenantID, orderID uuid.UUID, itemIDs []uuid.UUID) error
	// DeleteForTenant removes an order and its checklist
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	// NextNumber returns the next per-tenant sequence number
	NextNumber(ctx context.Context, tenantID uuid.UUID) (int64, error)
	// CountByStatus counts orders per status
	CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[ServiceOrderStatus]int64, error)
}

// PurchaseListRepository persists purchase lists and their items
type PurchaseListRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseList, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, serviceOrderID *uuid.UUID) ([]PurchaseList, error)
	// FindItem finds an item to locate its list
	FindItem(ctx context.Context, tenantID, itemID uuid.UUID) (*PurchaseItem, error)
	Save(ctx context.Context, list *PurchaseList) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
