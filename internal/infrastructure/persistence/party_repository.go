package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/partner"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPartyRepository implements partner.PartyRepository for one kind.
// Clients and suppliers share a shape but live in separate tables.
type GormPartyRepository struct {
	db    *gorm.DB
	kind  partner.Kind
	table string
}

// NewGormClientRepository creates a repository over the clients table
func NewGormClientRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db, kind: partner.KindClient, table: models.PartyTable(partner.KindClient)}
}

// NewGormSupplierRepository creates a repository over the suppliers table
func NewGormSupplierRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db, kind: partner.KindSupplier, table: models.PartyTable(partner.KindSupplier)}
}

func (r *GormPartyRepository) scoped(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return getDB(ctx, r.db).Table(r.table).Where("tenant_id = ?", tenantID)
}

// FindByIDForTenant finds a party of the tenant
func (r *GormPartyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Party, error) {
	var model models.PartyModel
	if err := r.scoped(ctx, tenantID).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translate(err, r.entity())
	}
	return model.ToDomain(r.kind), nil
}

// FindAllForTenant lists parties with search and pagination
func (r *GormPartyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Party, int64, error) {
	query := r.scoped(ctx, tenantID)
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(document) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, shared.AsStoreError(err)
	}

	var rows []models.PartyModel
	query = applyOrder(query, r.table, filter, PartySortFields, "name")
	if err := applyPagination(query, filter).Find(&rows).Error; err != nil {
		return nil, 0, shared.AsStoreError(err)
	}
	parties := make([]partner.Party, len(rows))
	for i := range rows {
		parties[i] = *rows[i].ToDomain(r.kind)
	}
	return parties, total, nil
}

// Save inserts or updates a party
func (r *GormPartyRepository) Save(ctx context.Context, p *partner.Party) error {
	if err := getDB(ctx, r.db).Table(r.table).Save(models.PartyModelFromDomain(p)).Error; err != nil {
		return shared.AsStoreError(err)
	}
	return nil
}

// DeleteForTenant removes a party. References from other rows are cleared
// first so history survives without the counterpart.
func (r *GormPartyRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		for _, ref := range r.references() {
			if err := tx.Table(ref.table).
				Where("tenant_id = ? AND "+ref.column+" = ?", tenantID, id).
				UpdateColumn(ref.column, nil).Error; err != nil {
				return shared.AsStoreError(err)
			}
		}
		result := tx.Table(r.table).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.PartyModel{})
		return requireAffected(result, r.entity())
	})
}

func (r *GormPartyRepository) entity() string {
	if r.kind == partner.KindSupplier {
		return "Supplier"
	}
	return "Client"
}

type reference struct {
	table  string
	column string
}

func (r *GormPartyRepository) references() []reference {
	if r.kind == partner.KindSupplier {
		return []reference{{"payables", "supplier_id"}}
	}
	return []reference{
		{"quotes", "client_id"},
		{"service_orders", "client_id"},
		{"production_orders", "client_id"},
		{"receivables", "client_id"},
	}
}
