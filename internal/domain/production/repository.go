package production

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
)

// OrderFilter narrows production order listings
type OrderFilter struct {
	shared.Filter
	Status   Stage
	ClientID *uuid.UUID
}

// OrderRepository persists production orders
type OrderRepository interface {
	// FindByIDForTenant loads an order with its client name
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)
	// FindAllForTenant lists orders with client names
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter OrderFilter) ([]Order, error)
	// FindAllBaseForTenant lists orders without joins
	FindAllBaseForTenant(ctx context.Context, tenantID uuid.UUID, filter OrderFilter) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	SaveWithLock(ctx context.Context, order *Order) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	NextNumber(ctx context.Context, tenantID uuid.UUID) (int64, error)
	// CountByStage counts orders per pipeline column
	CountByStage(ctx context.Context, tenantID uuid.UUID) (map[Stage]int64, error)
}
