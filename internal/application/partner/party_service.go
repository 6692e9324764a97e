package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/partner"
	"github.com/grafica/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PartyService handles client or supplier registration. One instance serves
// one kind; the repository passed in must be bound to the same kind.
type PartyService struct {
	kind   partner.Kind
	repo   partner.PartyRepository
	logger *zap.Logger
}

// NewClientService creates a PartyService for clients
func NewClientService(repo partner.PartyRepository, logger *zap.Logger) *PartyService {
	return &PartyService{kind: partner.KindClient, repo: repo, logger: logger}
}

// NewSupplierService creates a PartyService for suppliers
func NewSupplierService(repo partner.PartyRepository, logger *zap.Logger) *PartyService {
	return &PartyService{kind: partner.KindSupplier, repo: repo, logger: logger}
}

// Kind returns the kind this service manages
func (s *PartyService) Kind() partner.Kind {
	return s.kind
}

// Create registers a party
func (s *PartyService) Create(ctx context.Context, scope shared.TenantScope, req PartyRequest) (*PartyResponse, error) {
	var (
		party *partner.Party
		err   error
	)
	if s.kind == partner.KindSupplier {
		party, err = partner.NewSupplier(scope.TenantID(), req.toDetails())
	} else {
		party, err = partner.NewClient(scope.TenantID(), req.toDetails())
	}
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, party); err != nil {
		return nil, err
	}

	s.logger.Info("Party created",
		zap.String("tenant_id", scope.TenantID().String()),
		zap.String("kind", string(s.kind)),
		zap.String("party_id", party.ID.String()),
	)
	resp := ToPartyResponse(party)
	return &resp, nil
}

// Get retrieves a party
func (s *PartyService) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*PartyResponse, error) {
	party, err := s.repo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	resp := ToPartyResponse(party)
	return &resp, nil
}

// List retrieves parties ordered by name
func (s *PartyService) List(ctx context.Context, scope shared.TenantScope, filter PartyListFilter) (*shared.Paginated[PartyResponse], error) {
	domainFilter := filter.toDomain()
	parties, total, err := s.repo.FindAllForTenant(ctx, scope.TenantID(), domainFilter)
	if err != nil {
		return nil, err
	}
	items := make([]PartyResponse, len(parties))
	for i := range parties {
		items[i] = ToPartyResponse(&parties[i])
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update replaces a party's fields
func (s *PartyService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req UpdatePartyRequest) (*PartyResponse, error) {
	party, err := s.repo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	if req.Version != nil {
		if err := party.CheckVersion(*req.Version); err != nil {
			return nil, err
		}
	}
	if err := party.Update(req.toDetails()); err != nil {
		return nil, err
	}
	party.IncrementVersion()
	if err := s.repo.Save(ctx, party); err != nil {
		return nil, err
	}
	resp := ToPartyResponse(party)
	return &resp, nil
}

// Delete removes a party. Quotes, orders and ledger entries that referenced
// it keep their rows with the reference cleared.
func (s *PartyService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForTenant(ctx, scope.TenantID(), id); err != nil {
		return err
	}
	return s.repo.DeleteForTenant(ctx, scope.TenantID(), id)
}
