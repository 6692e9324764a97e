package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MemberService is the privileged provisioning interface behind the
// configuration screens. Every operation requires the caller to be an admin
// of the target tenant, regardless of any permission grant they hold.
type MemberService struct {
	userRepo       identity.UserRepository
	membershipRepo identity.MembershipRepository
	provider       identity.IdentityProvider
	txManager      shared.TransactionManager
	logger         *zap.Logger
}

// NewMemberService creates a new member service
func NewMemberService(
	userRepo identity.UserRepository,
	membershipRepo identity.MembershipRepository,
	provider identity.IdentityProvider,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *MemberService {
	return &MemberService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		provider:       provider,
		txManager:      txManager,
		logger:         logger,
	}
}

// Provision creates a new identity and makes it a member of the tenant with
// the requested permissions
func (s *MemberService) Provision(ctx context.Context, scope shared.TenantScope, input ProvisionUserInput) (*MemberDTO, error) {
	tenantID := scope.TenantID()
	if input.TenantID != nil {
		tenantID = *input.TenantID
	}
	if err := requireAdmin(ctx, s.membershipRepo, tenantID, scope.UserID()); err != nil {
		s.logger.Warn("Provisioning refused",
			zap.String("caller_id", scope.UserID().String()),
			zap.String("tenant_id", tenantID.String()),
		)
		return nil, err
	}

	perms, err := identity.ParsePermissions(input.Permissions)
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(input.Email, input.DisplayName)
	if err != nil {
		return nil, err
	}

	_, err = s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "A user with this email already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.provider.Register(ctx, user, input.Password); err != nil {
		return nil, err
	}

	membership := identity.NewMembership(tenantID, user.ID, identity.RoleMember)
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		if err := s.membershipRepo.Create(txCtx, membership); err != nil {
			return err
		}
		return s.membershipRepo.ReplaceGrants(txCtx, tenantID, user.ID, perms)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Member provisioned",
		zap.String("tenant_id", tenantID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("provisioned_by", scope.UserID().String()),
		zap.Strings("permissions", permissionStrings(perms)),
	)
	return &MemberDTO{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(identity.RoleMember),
		Permissions: permissionStrings(perms),
		JoinedAt:    membership.CreatedAt,
	}, nil
}

// ListMembers lists the active tenant's members with their effective permissions
func (s *MemberService) ListMembers(ctx context.Context, scope shared.TenantScope) ([]MemberDTO, error) {
	if err := requireAdmin(ctx, s.membershipRepo, scope.TenantID(), scope.UserID()); err != nil {
		return nil, err
	}
	memberships, err := s.membershipRepo.ListForTenant(ctx, scope.TenantID())
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(memberships))
	for i, m := range memberships {
		ids[i] = m.UserID
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]identity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	result := make([]MemberDTO, 0, len(memberships))
	for _, m := range memberships {
		var grants []identity.PermissionGrant
		if !m.IsAdmin() {
			grants, err = s.membershipRepo.Grants(ctx, m.TenantID, m.UserID)
			if err != nil {
				return nil, err
			}
		}
		u := byID[m.UserID]
		result = append(result, MemberDTO{
			UserID:      m.UserID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Role:        string(m.Role),
			Permissions: permissionStrings(identity.NewPrincipal(m.Role, grants).Effective()),
			JoinedAt:    m.CreatedAt,
		})
	}
	return result, nil
}

// SetPermissions replaces a member's grants
func (s *MemberService) SetPermissions(ctx context.Context, scope shared.TenantScope, userID uuid.UUID, input SetPermissionsInput) (*MemberDTO, error) {
	if err := requireAdmin(ctx, s.membershipRepo, scope.TenantID(), scope.UserID()); err != nil {
		return nil, err
	}
	target, err := s.membershipRepo.Find(ctx, scope.TenantID(), userID)
	if err != nil {
		return nil, err
	}
	if target.IsAdmin() {
		return nil, shared.NewPreconditionError("Administrators already hold every permission")
	}
	perms, err := identity.ParsePermissions(input.Permissions)
	if err != nil {
		return nil, err
	}
	if err := s.membershipRepo.ReplaceGrants(ctx, scope.TenantID(), userID, perms); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MemberDTO{
		UserID:      userID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(target.Role),
		Permissions: permissionStrings(perms),
		JoinedAt:    target.CreatedAt,
	}, nil
}

// Remove deletes a member and their grants from the active tenant
func (s *MemberService) Remove(ctx context.Context, scope shared.TenantScope, userID uuid.UUID) error {
	if err := requireAdmin(ctx, s.membershipRepo, scope.TenantID(), scope.UserID()); err != nil {
		return err
	}
	if userID == scope.UserID() {
		return shared.NewPreconditionError("You cannot remove yourself from the company")
	}
	if _, err := s.membershipRepo.Find(ctx, scope.TenantID(), userID); err != nil {
		return err
	}
	if err := s.membershipRepo.Delete(ctx, scope.TenantID(), userID); err != nil {
		return err
	}
	s.logger.Info("Member removed",
		zap.String("tenant_id", scope.TenantID().String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}
