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

// ReceivableService handles accounts receivable
type ReceivableService struct {
	repo         finance.ReceivableRepository
	clientRepo   partner.PartyRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(
	repo finance.ReceivableRepository,
	clientRepo partner.PartyRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ReceivableService {
	return &ReceivableService{
		repo:         repo,
		clientRepo:   clientRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Create records a pending receivable
func (s *ReceivableService) Create(ctx context.Context, scope shared.TenantScope, req EntryRequest) (*ReceivableResponse, error) {
	if err := s.verifyReferences(ctx, scope, req); err != nil {
		return nil, err
	}
	r, err := finance.NewReceivable(scope.TenantID(), req.toDetails())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToReceivableResponse(r)
	return &resp, nil
}

// Get retrieves a receivable
func (s *ReceivableService) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*ReceivableResponse, error) {
	r, err := s.repo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	resp := ToReceivableResponse(r)
	return &resp, nil
}

// List retrieves receivables with filtering and pagination
func (s *ReceivableService) List(ctx context.Context, scope shared.TenantScope, filter EntryListFilter) (*shared.Paginated[ReceivableResponse], error) {
	domainFilter := filter.toDomain()
	items, total, err := s.repo.FindAllForTenant(ctx, scope.TenantID(), domainFilter)
	if err != nil {
		return nil, err
	}
	result := make([]ReceivableResponse, len(items))
	for i := range items {
		result[i] = ToReceivableResponse(&items[i])
	}
	page := shared.NewPaginated(result, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update replaces the editable fields
func (s *ReceivableService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req UpdateEntryRequest) (*ReceivableResponse, error) {
	if err := s.verifyReferences(ctx, scope, req.EntryRequest); err != nil {
		return nil, err
	}
	return s.mutate(ctx, scope, id, req.Version, func(r *finance.Receivable) error {
		return r.Update(req.toDetails())
	})
}

// Settle marks the receivable received
func (s *ReceivableService) Settle(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req SettleRequest) (*ReceivableResponse, error) {
	at := s.now()
	if req.At != nil {
		at = *req.At
	}
	return s.mutate(ctx, scope, id, req.Version, func(r *finance.Receivable) error {
		return r.SetStatus(finance.ReceivableStatusReceived, at)
	})
}

// Cancel marks the receivable cancelled
func (s *ReceivableService) Cancel(ctx context.Context, scope shared.TenantScope, id uuid.UUID, version *int) (*ReceivableResponse, error) {
	return s.mutate(ctx, scope, id, version, func(r *finance.Receivable) error {
		return r.SetStatus(finance.ReceivableStatusCancelled, s.now())
	})
}

// SetStatus applies any transition of the receivable status table
func (s *ReceivableService) SetStatus(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req SetEntryStatusRequest) (*ReceivableResponse, error) {
	return s.mutate(ctx, scope, id, req.Version, func(r *finance.Receivable) error {
		return r.SetStatus(finance.ReceivableStatus(req.Status), s.now())
	})
}

// Delete removes a receivable
func (s *ReceivableService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForTenant(ctx, scope.TenantID(), id); err != nil {
		return err
	}
	return s.repo.DeleteForTenant(ctx, scope.TenantID(), id)
}

func (s *ReceivableService) verifyReferences(ctx context.Context, scope shared.TenantScope, req EntryRequest) error {
	if err := partner.VerifyReference(ctx, s.clientRepo, scope.TenantID(), req.CounterpartID); err != nil {
		return err
	}
	return catalog.VerifyCategory(ctx, s.categoryRepo, scope.TenantID(), req.CategoryID, catalog.CategoryKindIncome)
}

func (s *ReceivableService) mutate(ctx context.Context, scope shared.TenantScope, id uuid.UUID, version *int, fn func(*finance.Receivable) error) (*ReceivableResponse, error) {
	r, err := s.repo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	if version != nil {
		if err := r.CheckVersion(*version); err != nil {
			return nil, err
		}
	}
	if err := fn(r); err != nil {
		return nil, err
	}
	r.IncrementVersion()
	if version != nil {
		err = s.repo.SaveWithLock(ctx, r)
	} else {
		err = s.repo.Save(ctx, r)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Receivable updated",
		zap.String("tenant_id", scope.TenantID().String()),
		zap.String("receivable_id", r.ID.String()),
		zap.String("status", string(r.Status)),
	)
	resp := ToReceivableResponse(r)
	return &resp, nil
}
