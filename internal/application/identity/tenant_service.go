package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TenantService resolves, switches, creates and deletes the tenants a user
// works in. The active selection lives in an ActiveTenantStore so it
// survives restarts and new logins.
type TenantService struct {
	tenantRepo     identity.TenantRepository
	membershipRepo identity.MembershipRepository
	activeStore    identity.ActiveTenantStore
	txManager      shared.TransactionManager
	logger         *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo identity.TenantRepository,
	membershipRepo identity.MembershipRepository,
	activeStore identity.ActiveTenantStore,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo:     tenantRepo,
		membershipRepo: membershipRepo,
		activeStore:    activeStore,
		txManager:      txManager,
		logger:         logger,
	}
}

// ListMemberships returns every tenant the user belongs to
func (s *TenantService) ListMemberships(ctx context.Context, userID uuid.UUID) ([]MembershipDTO, error) {
	memberships, err := s.membershipRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]MembershipDTO, len(memberships))
	for i, m := range memberships {
		result[i] = ToMembershipDTO(m)
	}
	return result, nil
}

// SelectActive binds the user's active tenant after checking membership
func (s *TenantService) SelectActive(ctx context.Context, userID, tenantID uuid.UUID) (*MembershipDTO, error) {
	m, err := s.requireMembership(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.activeStore.Set(ctx, userID, tenantID); err != nil {
		return nil, shared.AsStoreError(err)
	}

	s.logger.Info("Active tenant selected",
		zap.String("user_id", userID.String()),
		zap.String("tenant_id", tenantID.String()),
	)
	dto := ToMembershipDTO(identity.TenantMembership{Tenant: *tenant, Role: m.Role})
	return &dto, nil
}

// RestoreActive returns the persisted selection while the user is still a
// member of it, otherwise the first membership (which becomes the new
// selection). Returns nil when the user has no tenants at all.
func (s *TenantService) RestoreActive(ctx context.Context, userID uuid.UUID) (*MembershipDTO, error) {
	memberships, err := s.membershipRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, nil
	}

	stored, err := s.activeStore.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("Active tenant store unavailable, using first membership",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
	for _, m := range memberships {
		if m.Tenant.ID == stored {
			dto := ToMembershipDTO(m)
			return &dto, nil
		}
	}

	first := memberships[0]
	if err := s.activeStore.Set(ctx, userID, first.Tenant.ID); err != nil {
		s.logger.Warn("Failed to persist active tenant", zap.String("user_id", userID.String()), zap.Error(err))
	}
	dto := ToMembershipDTO(first)
	return &dto, nil
}

// ResolveScope builds the tenant scope for a request. An explicitly requested
// tenant must be one of the user's memberships; otherwise the persisted
// selection is restored.
func (s *TenantService) ResolveScope(ctx context.Context, userID, requested uuid.UUID) (shared.TenantScope, error) {
	if userID == uuid.Nil {
		return shared.TenantScope{}, shared.ErrNotAuthenticated
	}
	if requested != uuid.Nil {
		if _, err := s.requireMembership(ctx, requested, userID); err != nil {
			return shared.TenantScope{}, err
		}
		return shared.NewTenantScope(requested, userID)
	}

	active, err := s.RestoreActive(ctx, userID)
	if err != nil {
		return shared.TenantScope{}, err
	}
	if active == nil {
		return shared.NewTenantScope(uuid.Nil, userID)
	}
	return shared.NewTenantScope(active.Tenant.ID, userID)
}

// Create inserts a tenant with the caller as admin, then makes it active
func (s *TenantService) Create(ctx context.Context, userID uuid.UUID, input CreateTenantInput) (*MembershipDTO, error) {
	tenant, err := identity.NewTenant(input.Name, input.Code)
	if err != nil {
		return nil, err
	}
	tenant.ContactName = input.ContactName
	tenant.ContactPhone = input.ContactPhone
	tenant.ContactEmail = input.ContactEmail
	tenant.Address = input.Address

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.tenantRepo.Create(txCtx, tenant); err != nil {
			return err
		}
		return s.membershipRepo.Create(txCtx, identity.NewMembership(tenant.ID, userID, identity.RoleAdmin))
	})
	if err != nil {
		return nil, err
	}

	if err := s.activeStore.Set(ctx, userID, tenant.ID); err != nil {
		s.logger.Warn("Failed to persist active tenant", zap.String("user_id", userID.String()), zap.Error(err))
	}

	s.logger.Info("Tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("code", tenant.Code),
		zap.String("created_by", userID.String()),
	)
	dto := ToMembershipDTO(identity.TenantMembership{Tenant: *tenant, Role: identity.RoleAdmin})
	return &dto, nil
}

// Update edits name and contact fields. Admin only.
func (s *TenantService) Update(ctx context.Context, userID, tenantID uuid.UUID, input UpdateTenantInput) (*TenantDTO, error) {
	if err := s.requireAdmin(ctx, tenantID, userID); err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if input.Version != nil && *input.Version != tenant.Version {
		return nil, shared.ErrConcurrencyConflict
	}
	if err := tenant.Update(input.Name, identity.TenantContact{
		Name:    input.ContactName,
		Phone:   input.ContactPhone,
		Email:   input.ContactEmail,
		Address: input.Address,
	}); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	dto := ToTenantDTO(tenant)
	return &dto, nil
}

// Delete removes a tenant and everything it owns. The caller must be an
// admin of it and must keep at least one other tenant. When the deleted
// tenant was active, the first remaining membership becomes active.
func (s *TenantService) Delete(ctx context.Context, userID, tenantID uuid.UUID) (*MembershipDTO, error) {
	memberships, err := s.membershipRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) <= 1 {
		return nil, shared.NewPreconditionError("Cannot delete your only company")
	}
	if err := s.requireAdmin(ctx, tenantID, userID); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.tenantRepo.Delete(txCtx, tenantID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Tenant deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("deleted_by", userID.String()),
	)

	active, err := s.activeStore.Get(ctx, userID)
	if err != nil || active == tenantID {
		if err := s.activeStore.Clear(ctx, userID); err != nil {
			s.logger.Warn("Failed to clear active tenant", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
	return s.RestoreActive(ctx, userID)
}

func (s *TenantService) requireMembership(ctx context.Context, tenantID, userID uuid.UUID) (*identity.Membership, error) {
	return requireMembership(ctx, s.membershipRepo, tenantID, userID)
}

func (s *TenantService) requireAdmin(ctx context.Context, tenantID, userID uuid.UUID) error {
	return requireAdmin(ctx, s.membershipRepo, tenantID, userID)
}

func requireMembership(ctx context.Context, repo identity.MembershipRepository, tenantID, userID uuid.UUID) (*identity.Membership, error) {
	m, err := repo.Find(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewForbiddenError("You are not a member of this company")
		}
		return nil, err
	}
	return m, nil
}

func requireAdmin(ctx context.Context, repo identity.MembershipRepository, tenantID, userID uuid.UUID) error {
	m, err := requireMembership(ctx, repo, tenantID, userID)
	if err != nil {
		return err
	}
	if !m.IsAdmin() {
		return shared.NewForbiddenError("Only company administrators can do this")
	}
	return nil
}
