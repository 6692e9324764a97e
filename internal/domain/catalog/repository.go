package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
)

// ProductRepository persists products
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, int64, error)
	// FindLowStock returns products with quantity <= minimum_quantity
	FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]Product, error)
	Save(ctx context.Context, p *Product) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// CategoryRepository persists categories
type CategoryRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Category, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, kind CategoryKind) ([]Category, error)
	Save(ctx context.Context, c *Category) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// VerifyCategory checks that an optional category id names a category of the
// tenant with the expected kind
func VerifyCategory(ctx context.Context, repo CategoryRepository, tenantID uuid.UUID, id *uuid.UUID, kind CategoryKind) error {
	if id == nil {
		return nil
	}
	c, err := repo.FindByIDForTenant(ctx, tenantID, *id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewValidationError("Referenced category does not exist")
		}
		return err
	}
	if c.Kind != kind {
		return shared.NewValidationError(fmt.Sprintf("Category %q is not an %s category", c.Name, kind))
	}
	return nil
}
