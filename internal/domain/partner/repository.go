package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
)

// PartyRepository persists clients or suppliers; each instance is bound to one Kind
type PartyRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Party, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Party, int64, error)
	Save(ctx context.Context, p *Party) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// VerifyReference checks that an optional client or supplier id names a
// party of the tenant. A nil id is always valid.
func VerifyReference(ctx context.Context, repo PartyRepository, tenantID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	p, err := repo.FindByIDForTenant(ctx, tenantID, *id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewValidationError("Referenced client or supplier does not exist")
		}
		return err
	}
	if p.TenantID != tenantID {
		return shared.NewValidationError("Referenced client or supplier does not exist")
	}
	return nil
}
