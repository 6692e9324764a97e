package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// tenantOwnedTables lists every table carrying tenant_id, children before
// parents. Quote lines have no tenant_id and are removed through their quote.
var tenantOwnedTables = []string{
	"service_order_checklist_items",
	"purchase_items",
	"purchase_lists",
	"receivables",
	"payables",
	"production_orders",
	"service_orders",
	"quotes",
	"products",
	"categories",
	"clients",
	"suppliers",
	"tenant_sequences",
	"permission_grants",
	"memberships",
	"active_tenants",
}

// GormTenantRepository implements identity.TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	var model models.TenantModel
	if err := getDB(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Tenant")
	}
	return model.ToDomain(), nil
}

// Create inserts a new tenant
func (r *GormTenantRepository) Create(ctx context.Context, tenant *identity.Tenant) error {
	err := getDB(ctx, r.db).Create(models.TenantModelFromDomain(tenant)).Error
	return translateWrite(err, "Tenant already exists")
}

// Save updates an existing tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	result := getDB(ctx, r.db).Model(&models.TenantModel{}).
		Where("id = ?", tenant.ID).
		Updates(map[string]any{
			"code":          tenant.Code,
			"name":          tenant.Name,
			"contact_name":  tenant.ContactName,
			"contact_phone": tenant.ContactPhone,
			"contact_email": tenant.ContactEmail,
			"address":       tenant.Address,
			"version":       tenant.Version,
			"updated_at":    tenant.UpdatedAt,
		})
	return requireAffected(result, "Tenant")
}

// Delete removes a tenant and every row it owns. active_tenants is keyed by
// user, so selections pointing at the tenant are cleared by tenant_id.
func (r *GormTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM quote_lines WHERE quote_id IN (SELECT id FROM quotes WHERE tenant_id = ?)", id).Error; err != nil {
			return shared.AsStoreError(err)
		}
		for _, table := range tenantOwnedTables {
			if err := tx.Exec("DELETE FROM "+table+" WHERE tenant_id = ?", id).Error; err != nil {
				return shared.AsStoreError(err)
			}
		}
		result := tx.Delete(&models.TenantModel{}, "id = ?", id)
		return requireAffected(result, "Tenant")
	})
}
