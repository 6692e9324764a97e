package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/infrastructure/auth"
)

// TenantDTO represents a tenant in API responses
type TenantDTO struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Address      string    `json:"address,omitempty"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MembershipDTO is a tenant with the caller's role in it
type MembershipDTO struct {
	Tenant TenantDTO `json:"tenant"`
	Role   string    `json:"role"`
}

// CreateTenantInput contains input for creating a tenant
type CreateTenantInput struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	Code         string `json:"code" binding:"required,tenantcode"`
	ContactName  string `json:"contact_name" binding:"max=200"`
	ContactPhone string `json:"contact_phone" binding:"max=50"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	Address      string `json:"address" binding:"max=500"`
}

// UpdateTenantInput contains input for updating a tenant. Code is immutable.
type UpdateTenantInput struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	ContactName  string `json:"contact_name" binding:"max=200"`
	ContactPhone string `json:"contact_phone" binding:"max=50"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	Address      string `json:"address" binding:"max=500"`
	Version      *int   `json:"version"`
}

// SelectTenantInput selects the active tenant
type SelectTenantInput struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
}

// AccessDecisionDTO is the gate's answer for one route
type AccessDecisionDTO struct {
	Path        string   `json:"path"`
	Module      string   `json:"module,omitempty"`
	Allowed     bool     `json:"allowed"`
	Decision    string   `json:"decision"`
	RedirectTo  string   `json:"redirect_to,omitempty"`
	Restricted  bool     `json:"restricted"`
	Role        string   `json:"role,omitempty"`
	Permissions []string `json:"permissions"`
}

// MemberDTO is a member of the active tenant
type MemberDTO struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	JoinedAt    time.Time `json:"joined_at"`
}

// ProvisionUserInput creates a member account inside a tenant
type ProvisionUserInput struct {
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required,min=8,max=72"`
	DisplayName string     `json:"display_name" binding:"max=200"`
	TenantID    *uuid.UUID `json:"tenant_id"`
	Permissions []string   `json:"permissions" binding:"dive,permission"`
}

// SetPermissionsInput replaces a member's permission grants
type SetPermissionsInput struct {
	Permissions []string `json:"permissions" binding:"dive,permission"`
}

// RegisterInput signs up a new user
type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"display_name" binding:"max=200"`
}

// LoginInput signs a user in
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the public view of a user
type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	User  UserDTO           `json:"user"`
	Token *auth.AccessToken `json:"token"`
}

// ToTenantDTO converts a domain tenant
func ToTenantDTO(t *identity.Tenant) TenantDTO {
	return TenantDTO{
		ID:           t.ID,
		Code:         t.Code,
		Name:         t.Name,
		ContactName:  t.ContactName,
		ContactPhone: t.ContactPhone,
		ContactEmail: t.ContactEmail,
		Address:      t.Address,
		Version:      t.Version,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// ToMembershipDTO converts a tenant membership
func ToMembershipDTO(m identity.TenantMembership) MembershipDTO {
	return MembershipDTO{Tenant: ToTenantDTO(&m.Tenant), Role: string(m.Role)}
}

// ToUserDTO converts a domain user
func ToUserDTO(u *identity.User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}

func permissionStrings(perms []identity.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}
