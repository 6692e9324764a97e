package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
)

// EntryFilter narrows receivable and payable listings
type EntryFilter struct {
	shared.Filter
	Status        string
	CounterpartID *uuid.UUID
	CategoryID    *uuid.UUID
}

// ReceivableRepository persists receivables
type ReceivableRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Receivable, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter EntryFilter) ([]Receivable, int64, error)
	// ExistsForQuote reports whether a receivable was already raised for the quote
	ExistsForQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (bool, error)
	Save(ctx context.Context, r *Receivable) error
	SaveWithLock(ctx context.Context, r *Receivable) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// PayableRepository persists payables
type PayableRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Payable, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter EntryFilter) ([]Payable, int64, error)
	Save(ctx context.Context, p *Payable) error
	SaveWithLock(ctx context.Context, p *Payable) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
