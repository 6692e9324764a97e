package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/domain/shared"
)

// TenantModel is the persistence model for identity.Tenant
type TenantModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code         string    `gorm:"type:varchar(3);not null"`
	Name         string    `gorm:"type:varchar(200);not null"`
	ContactName  string    `gorm:"type:varchar(200)"`
	ContactPhone string    `gorm:"type:varchar(50)"`
	ContactEmail string    `gorm:"type:varchar(200)"`
	Address      string    `gorm:"type:text"`
	Version      int       `gorm:"not null;default:1"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the model to a domain tenant
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Version:      m.Version,
		Code:         m.Code,
		Name:         m.Name,
		ContactName:  m.ContactName,
		ContactPhone: m.ContactPhone,
		ContactEmail: m.ContactEmail,
		Address:      m.Address,
	}
}

// TenantModelFromDomain creates a model from a domain tenant
func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	return &TenantModel{
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

// UserModel is the persistence model for identity.User
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(200);not null;uniqueIndex"`
	DisplayName  string    `gorm:"type:varchar(200)"`
	PasswordHash string    `gorm:"type:varchar(255)"`
	ExternalID   string    `gorm:"type:varchar(200);index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Email:        m.Email,
		DisplayName:  m.DisplayName,
		PasswordHash: m.PasswordHash,
		ExternalID:   m.ExternalID,
	}
}

// UserModelFromDomain creates a model from a domain user
func UserModelFromDomain(u *identity.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		ExternalID:   u.ExternalID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// MembershipModel links a user to a tenant with a role
type MembershipModel struct {
	TenantID  uuid.UUID     `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID     `gorm:"type:uuid;primaryKey;index"`
	Role      identity.Role `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MembershipModel) TableName() string {
	return "memberships"
}

// ToDomain converts the model to a domain membership
func (m *MembershipModel) ToDomain() identity.Membership {
	return identity.Membership{
		TenantID:  m.TenantID,
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}

// PermissionGrantModel is one granted section for (tenant, user)
type PermissionGrantModel struct {
	TenantID   uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Permission identity.Permission `gorm:"type:varchar(30);primaryKey"`
}

// TableName returns the table name for GORM
func (PermissionGrantModel) TableName() string {
	return "permission_grants"
}

// ActiveTenantModel stores a user's last selected tenant
type ActiveTenantModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ActiveTenantModel) TableName() string {
	return "active_tenants"
}
