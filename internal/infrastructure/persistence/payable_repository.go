package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/finance"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPayableRepository implements finance.PayableRepository using GORM
type GormPayableRepository struct {
	db *gorm.DB
}

// NewGormPayableRepository creates a new GormPayableRepository
func NewGormPayableRepository(db *gorm.DB) *GormPayableRepository {
	return &GormPayableRepository{db: db}
}

func (r *GormPayableRepository) joined(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return getDB(ctx, r.db).Model(&models.PayableModel{}).
		Joins("LEFT JOIN suppliers ON suppliers.id = payables.supplier_id AND suppliers.tenant_id = payables.tenant_id").
		Where("payables.tenant_id = ?", tenantID)
}

// FindByIDForTenant loads a payable with its supplier name
func (r *GormPayableRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Payable, error) {
	var model models.PayableModel
	err := r.joined(ctx, tenantID).
		Select("payables.*, suppliers.name AS supplier_name").
		Where("payables.id = ?", id).
		First(&model).Error
	if err != nil {
		return nil, translate(err, "Payable")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists payables with filtering and pagination
func (r *GormPayableRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.EntryFilter) ([]finance.Payable, int64, error) {
	query := applyEntryFilter(r.joined(ctx, tenantID), "payables", "supplier_id", "suppliers", filter)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, shared.AsStoreError(err)
	}

	var rows []models.PayableModel
	query = applyOrder(query.Select("payables.*, suppliers.name AS supplier_name"), "payables", filter.Filter, EntrySortFields, "due_date")
	if err := applyPagination(query, filter.Filter).Find(&rows).Error; err != nil {
		return nil, 0, shared.AsStoreError(err)
	}
	items := make([]finance.Payable, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, total, nil
}

// Save inserts or updates a payable
func (r *GormPayableRepository) Save(ctx context.Context, p *finance.Payable) error {
	if err := getDB(ctx, r.db).Save(models.PayableModelFromDomain(p)).Error; err != nil {
		return shared.AsStoreError(err)
	}
	return nil
}

// SaveWithLock is Save conditioned on the stored version
func (r *GormPayableRepository) SaveWithLock(ctx context.Context, p *finance.Payable) error {
	model := models.PayableModelFromDomain(p)
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := claimVersion(tx, &models.PayableModel{}, p.TenantID, p.ID, p.Version); err != nil {
			return err
		}
		if err := tx.Save(model).Error; err != nil {
			return shared.AsStoreError(err)
		}
		return nil
	})
}

// DeleteForTenant removes a payable
func (r *GormPayableRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteScoped(ctx, r.db, &models.PayableModel{}, tenantID, id, "Payable")
}
