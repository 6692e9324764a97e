package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMembershipRepository implements identity.MembershipRepository using GORM
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GormMembershipRepository
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

type tenantMembershipRow struct {
	models.TenantModel
	Role        identity.Role
	MemberSince time.Time
}

// ListForUser returns the user's tenants, oldest membership first
func (r *GormMembershipRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]identity.TenantMembership, error) {
	var rows []tenantMembershipRow
	err := getDB(ctx, r.db).Table("memberships").
		Select("tenants.*, memberships.role AS role, memberships.created_at AS member_since").
		Joins("JOIN tenants ON tenants.id = memberships.tenant_id").
		Where("memberships.user_id = ?", userID).
		Order("memberships.created_at ASC").
		Order("tenants.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, shared.AsStoreError(err)
	}
	result := make([]identity.TenantMembership, len(rows))
	for i := range rows {
		result[i] = identity.TenantMembership{Tenant: *rows[i].ToDomain(), Role: rows[i].Role}
	}
	return result, nil
}

// Find returns the membership for (tenant, user)
func (r *GormMembershipRepository) Find(ctx context.Context, tenantID, userID uuid.UUID) (*identity.Membership, error) {
	var model models.MembershipModel
	err := getDB(ctx, r.db).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Take(&model).Error
	if err != nil {
		return nil, translate(err, "Membership")
	}
	m := model.ToDomain()
	return &m, nil
}

// ListForTenant returns every membership of a tenant, oldest first
func (r *GormMembershipRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]identity.Membership, error) {
	var rows []models.MembershipModel
	err := getDB(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, shared.AsStoreError(err)
	}
	result := make([]identity.Membership, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// Create inserts a membership
func (r *GormMembershipRepository) Create(ctx context.Context, m identity.Membership) error {
	err := getDB(ctx, r.db).Create(&models.MembershipModel{
		TenantID:  m.TenantID,
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}).Error
	return translateWrite(err, "User is already a member of this company")
}

// Delete removes a membership and its grants
func (r *GormMembershipRepository) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND user_id = ?", tenantID, userID).
			Delete(&models.PermissionGrantModel{}).Error; err != nil {
			return shared.AsStoreError(err)
		}
		if err := tx.Where("tenant_id = ? AND user_id = ?", tenantID, userID).
			Delete(&models.ActiveTenantModel{}).Error; err != nil {
			return shared.AsStoreError(err)
		}
		result := tx.Where("tenant_id = ? AND user_id = ?", tenantID, userID).Delete(&models.MembershipModel{})
		return requireAffected(result, "Membership")
	})
}

// Grants returns the permission rows for (tenant, user)
func (r *GormMembershipRepository) Grants(ctx context.Context, tenantID, userID uuid.UUID) ([]identity.PermissionGrant, error) {
	var rows []models.PermissionGrantModel
	err := getDB(ctx, r.db).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("permission ASC").
		Find(&rows).Error
	if err != nil {
		return nil, shared.AsStoreError(err)
	}
	grants := make([]identity.PermissionGrant, len(rows))
	for i, row := range rows {
		grants[i] = identity.PermissionGrant{TenantID: row.TenantID, UserID: row.UserID, Permission: row.Permission}
	}
	return grants, nil
}

// ReplaceGrants replaces the permission rows for (tenant, user)
func (r *GormMembershipRepository) ReplaceGrants(ctx context.Context, tenantID, userID uuid.UUID, perms []identity.Permission) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND user_id = ?", tenantID, userID).
			Delete(&models.PermissionGrantModel{}).Error; err != nil {
			return shared.AsStoreError(err)
		}
		if len(perms) == 0 {
			return nil
		}
		rows := make([]models.PermissionGrantModel, 0, len(perms))
		seen := make(map[identity.Permission]bool, len(perms))
		for _, p := range perms {
			if seen[p] {
				continue
			}
			seen[p] = true
			rows = append(rows, models.PermissionGrantModel{TenantID: tenantID, UserID: userID, Permission: p})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return shared.AsStoreError(err)
		}
		return nil
	})
}
