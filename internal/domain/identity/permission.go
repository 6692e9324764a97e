package identity

import (
	"slices"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
)

// Permission is a functional-module access grant, independent of role
type Permission string

const (
	PermissionDashboard     Permission = "dashboard"
	PermissionCadastros     Permission = "cadastros"
	PermissionComercial     Permission = "comercial"
	PermissionFinanceiro    Permission = "financeiro"
	PermissionProducao      Permission = "producao"
	PermissionConfiguracoes Permission = "configuracoes"
)

// AllPermissions lists every permission in display order
var AllPermissions = []Permission{
	PermissionDashboard,
	PermissionCadastros,
	PermissionComercial,
	PermissionFinanceiro,
	PermissionProducao,
	PermissionConfiguracoes,
}

// IsValid checks if the permission is part of the fixed set
func (p Permission) IsValid() bool {
	return slices.Contains(AllPermissions, p)
}

// ParsePermissions validates and de-duplicates a list of permission names
func ParsePermissions(names []string) ([]Permission, error) {
	out := make([]Permission, 0, len(names))
	for _, name := range names {
		p := Permission(name)
		if !p.IsValid() {
			return nil, shared.NewValidationError("Unknown permission: " + name)
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// PermissionGrant is one (tenant, user, permission) row
type PermissionGrant struct {
	TenantID   uuid.UUID
	UserID     uuid.UUID
	Permission Permission
}

// Principal is what the access gate knows about a caller inside the active tenant
type Principal struct {
	Role        Role
	Permissions []Permission
}

// NewPrincipal builds the effective principal from a membership and its grant rows
func NewPrincipal(role Role, grants []PermissionGrant) *Principal {
	perms := make([]Permission, 0, len(grants))
	for _, g := range grants {
		if !slices.Contains(perms, g.Permission) {
			perms = append(perms, g.Permission)
		}
	}
	return &Principal{Role: role, Permissions: perms}
}

// IsAdmin reports whether the principal has the admin role
func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Has reports whether the principal holds the permission. Admin holds all.
func (p *Principal) Has(perm Permission) bool {
	if p.IsAdmin() {
		return true
	}
	return slices.Contains(p.Permissions, perm)
}

// Effective returns the full permission set, expanding admin to every permission
func (p *Principal) Effective() []Permission {
	if p.IsAdmin() {
		return slices.Clone(AllPermissions)
	}
	return slices.Clone(p.Permissions)
}
