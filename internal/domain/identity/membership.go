package identity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the baseline access level a user has within a tenant
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Membership links a user to a tenant with a role
type Membership struct {
	TenantID  uuid.UUID
	UserID    uuid.UUID
	Role      Role
	CreatedAt time.Time
}

// NewMembership creates a membership
func NewMembership(tenantID, userID uuid.UUID, role Role) Membership {
	return Membership{
		TenantID:  tenantID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now(),
	}
}

// IsAdmin reports whether the membership carries the admin role
func (m Membership) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// TenantMembership is a tenant together with the caller's role in it
type TenantMembership struct {
	Tenant Tenant
	Role   Role
}
