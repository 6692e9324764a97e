package identity

import (
	"context"

	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/domain/shared"
)

// AccessService loads the caller's principal in the active tenant and
// evaluates the module gate
type AccessService struct {
	membershipRepo identity.MembershipRepository
}

// NewAccessService creates a new access service
func NewAccessService(membershipRepo identity.MembershipRepository) *AccessService {
	return &AccessService{membershipRepo: membershipRepo}
}

// Principal returns the caller's role and grants inside scope's tenant
func (s *AccessService) Principal(ctx context.Context, scope shared.TenantScope) (*identity.Principal, error) {
	m, err := requireMembership(ctx, s.membershipRepo, scope.TenantID(), scope.UserID())
	if err != nil {
		return nil, err
	}
	if m.IsAdmin() {
		return identity.NewPrincipal(m.Role, nil), nil
	}
	grants, err := s.membershipRepo.Grants(ctx, scope.TenantID(), scope.UserID())
	if err != nil {
		return nil, err
	}
	return identity.NewPrincipal(m.Role, grants), nil
}

// Check evaluates the gate for a client route. A nil principal means no session.
func (s *AccessService) Check(principal *identity.Principal, path string) AccessDecisionDTO {
	dto := AccessDecisionDTO{Path: path, Permissions: []string{}}
	module, ok := identity.FindModule(path)
	if !ok {
		// unknown routes only need a session
		module = identity.Module{Path: path}
	}
	dto.Module = module.Name

	decision := identity.Authorize(principal, module)
	dto.Allowed = decision.Allowed()
	dto.Decision = string(decision.Kind)
	dto.RedirectTo = decision.RedirectTo
	dto.Restricted = decision.Kind == identity.DecisionRestricted
	if principal != nil {
		dto.Role = string(principal.Role)
		dto.Permissions = permissionStrings(principal.Effective())
	}
	return dto
}
