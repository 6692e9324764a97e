package identity

import (
	"context"

	"github.com/google/uuid"
)

// TenantRepository persists tenants
type TenantRepository interface {
	// FindByID finds a tenant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	// Create inserts a new tenant
	Create(ctx context.Context, tenant *Tenant) error
	// Save updates an existing tenant
	Save(ctx context.Context, tenant *Tenant) error
	// Delete removes a tenant and every row it owns
	Delete(ctx context.Context, id uuid.UUID) error
}

// MembershipRepository persists memberships and permission grants
type MembershipRepository interface {
	// ListForUser returns the user's tenants, oldest membership first
	ListForUser(ctx context.Context, userID uuid.UUID) ([]TenantMembership, error)
	// Find returns the membership for (tenant, user)
	Find(ctx context.Context, tenantID, userID uuid.UUID) (*Membership, error)
	// ListForTenant returns every membership of a tenant
	ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]Membership, error)
	// Create inserts a membership
	Create(ctx context.Context, m Membership) error
	// Delete removes a membership and its grants
	Delete(ctx context.Context, tenantID, userID uuid.UUID) error
	// Grants returns the permission rows for (tenant, user)
	Grants(ctx context.Context, tenantID, userID uuid.UUID) ([]PermissionGrant, error)
	// ReplaceGrants replaces the permission rows for (tenant, user)
	ReplaceGrants(ctx context.Context, tenantID, userID uuid.UUID, perms []Permission) error
}

// UserRepository persists local user records
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
	Create(ctx context.Context, user *User) error
}

// ActiveTenantStore keeps each user's active-tenant selection across sessions
type ActiveTenantStore interface {
	// Get returns the stored selection, or uuid.Nil when there is none
	Get(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	Set(ctx context.Context, userID, tenantID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

// IdentityProvider owns user credentials
type IdentityProvider interface {
	// Register creates credentials for a new user and fills provider-owned fields
	Register(ctx context.Context, user *User, password string) error
	// Authenticate checks a password for an existing user
	Authenticate(ctx context.Context, user *User, password string) error
}
