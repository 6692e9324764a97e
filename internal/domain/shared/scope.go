package shared

import (
	"github.com/google/uuid"
)

// TenantScope is the explicit (tenant, user) pair every tenant-owned
// operation runs under. It is built once per request from the verified
// session and passed down; nothing reads the active tenant from globals.
type TenantScope struct {
	tenantID uuid.UUID
	userID   uuid.UUID
}

// NewTenantScope builds a scope, rejecting an anonymous user or an empty tenant
func NewTenantScope(tenantID, userID uuid.UUID) (TenantScope, error) {
	if userID == uuid.Nil {
		return TenantScope{}, ErrNotAuthenticated
	}
	if tenantID == uuid.Nil {
		return TenantScope{}, NewPreconditionError("No active company selected")
	}
	return TenantScope{tenantID: tenantID, userID: userID}, nil
}

// MustTenantScope is NewTenantScope for tests and fixtures
func MustTenantScope(tenantID, userID uuid.UUID) TenantScope {
	s, err := NewTenantScope(tenantID, userID)
	if err != nil {
		panic(err)
	}
	return s
}

// TenantID returns the active tenant
func (s TenantScope) TenantID() uuid.UUID {
	return s.tenantID
}

// UserID returns the authenticated user
func (s TenantScope) UserID() uuid.UUID {
	return s.userID
}

// IsZero reports whether the scope was never initialized
func (s TenantScope) IsZero() bool {
	return s.tenantID == uuid.Nil
}
