package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/catalog"
	"github.com/grafica/backend/internal/domain/finance"
	"github.com/grafica/backend/internal/domain/partner"
	"github.com/grafica/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PayableService handles accounts payable
type PayableService struct {
	repo         finance.PayableRepository
	supplierRepo partner.PartyRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewPayableService creates a new PayableService
func NewPayableService(
	repo finance.PayableRepository,
	supplierRepo partner.PartyRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *PayableService {
	return &PayableService{
		repo:         repo,
		supplierRepo: supplierRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Create records a pending payable
func (s *PayableService) Create(ctx context.Context, scope shared.TenantScope, req EntryRequest) (*PayableResponse, error) {
	if err := partner.VerifyReference(ctx, s.supplierRepo, scope.TenantID(), req.CounterpartID); err != nil {
		return nil, err
	}
	if err := catalog.VerifyCategory(ctx, s.categoryRepo, scope.TenantID(), req.CategoryID, catalog.CategoryKindExpense); err != nil {
		return nil, err
	}
	p, err := finance.NewPayable(scope.TenantID(), req.toDetails())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToPayableResponse(p)
	return &resp, nil
}

// Get retrieves a payable
func (s *PayableService) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*PayableResponse, error) {
	p, err := s.repo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	resp := ToPayableResponse(p)
	return &resp, nil
}

// List retrieves payables with filtering and pagination
func (s *PayableService) List(ctx context.Context, scope shared.TenantScope, filter EntryListFilter) (*shared.Paginated[PayableResponse], error) {
	domainFilter := filter.toDomain()
	items, total, err := s.repo.FindAllForTenant(ctx, scope.TenantID(), domainFilter)
	if err != nil {
		return nil, err
	}
	result := make([]PayableResponse, len(items))
	for i := range items {
		result[i] = ToPayableResponse(&items[i])
	}
	page := shared.NewPaginated(result, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update replaces the editable fields
func (s *PayableService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req UpdateEntryRequest) (*PayableResponse, error) {
	if err := partner.VerifyReference(ctx, s.supplierRepo, scope.TenantID(), req.CounterpartID); err != nil {
		return nil, err
	}
	if err := catalog.VerifyCategory(ctx, s.categoryRepo, scope.TenantID(), req.CategoryID, catalog.CategoryKindExpense); err != nil {
		return nil, err
	}
	return s.mutate(ctx, scope, id, req.Version, func(p *finance.Payable) error {
		return p.Update(req.toDetails())
	})
}

// Settle marks the payable paid
func (s *PayableService) Settle(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req SettleRequest) (*PayableResponse, error) {
	at := s.now()
	if req.At != nil {
		at = *req.At
	}
	return s.mutate(ctx, scope, id, req.Version, func(p *finance.Payable) error {
		return p.SetStatus(finance.PayableStatusPaid, at)
	})
}

// Cancel marks the payable cancelled
func (s *PayableService) Cancel(ctx context.Context, scope shared.TenantScope, id uuid.UUID, version *int) (*PayableResponse, error) {
	return s.mutate(ctx, scope, id, version, func(p *finance.Payable) error {
		return p.SetStatus(finance.PayableStatusCancelled, s.now())
	})
}

// SetStatus applies any transition of the payable status table
func (s *PayableService) SetStatus(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req SetEntryStatusRequest) (*PayableResponse, error) {
	return s.mutate(ctx, scope, id, req.Version, func(p *finance.Payable) error {
		return p.SetStatus(finance.PayableStatus(req.Status), s.now())
	})
}

// Delete removes a payable
func (s *PayableService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForTenant(ctx, scope.TenantID(), id); err != nil {
		return err
	}
	return s.repo.DeleteForTenant(ctx, scope.TenantID(), id)
}

func (s *PayableService) mutate(ctx context.Context, scope shared.TenantScope, id uuid.UUID, version *int, fn func(*finance.Payable) error) (*PayableResponse, error) {
	p, err := s.repo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	if version != nil {
		if err := p.CheckVersion(*version); err != nil {
			return nil, err
		}
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	p.IncrementVersion()
	if version != nil {
		err = s.repo.SaveWithLock(ctx, p)
	} else {
		err = s.repo.Save(ctx, p)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Payable updated",
		zap.String("tenant_id", scope.TenantID().String()),
		zap.String("payable_id", p.ID.String()),
		zap.String("status", string(p.Status)),
	)
	resp := ToPayableResponse(p)
	return &resp, nil
}
