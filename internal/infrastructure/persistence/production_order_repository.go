package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/production"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductionOrderRepository implements production.OrderRepository using GORM
type GormProductionOrderRepository struct {
	db *gorm.DB
}

// NewGormProductionOrderRepository creates a new GormProductionOrderRepository
func NewGormProductionOrderRepository(db *gorm.DB) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{db: db}
}

func (r *GormProductionOrderRepository) enriched(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return getDB(ctx, r.db).Model(&models.ProductionOrderModel{}).
		Select("production_orders.*, clients.name AS client_name").
		Joins("LEFT JOIN clients ON clients.id = production_orders.client_id AND clients.tenant_id = production_orders.tenant_id").
		Where("production_orders.tenant_id = ?", tenantID)
}

// FindByIDForTenant loads an order with its client name
func (r *GormProductionOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*production.Order, error) {
	var model models.ProductionOrderModel
	err := r.enriched(ctx, tenantID).
		Where("production_orders.id = ?", id).
		First(&model).Error
	if err != nil {
		return nil, translate(err, "Production order")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists orders with client names
func (r *GormProductionOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter production.OrderFilter) ([]production.Order, error) {
	return r.find(r.applyFilter(r.enriched(ctx, tenantID), filter, true))
}

// FindAllBaseForTenant lists orders without joins
func (r *GormProductionOrderRepository) FindAllBaseForTenant(ctx context.Context, tenantID uuid.UUID, filter production.OrderFilter) ([]production.Order, error) {
	query := getDB(ctx, r.db).Model(&models.ProductionOrderModel{}).
		Where("production_orders.tenant_id = ?", tenantID)
	return r.find(r.applyFilter(query, filter, false))
}

func (r *GormProductionOrderRepository) find(query *gorm.DB) ([]production.Order, error) {
	var rows []models.ProductionOrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, shared.AsStoreError(err)
	}
	orders := make([]production.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

func (r *GormProductionOrderRepository) applyFilter(query *gorm.DB, filter production.OrderFilter, joined bool) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("production_orders.status = ?", filter.Status)
	}
	if filter.ClientID != nil {
		query = query.Where("production_orders.client_id = ?", *filter.ClientID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		if joined {
			query = query.Where("LOWER(production_orders.description) LIKE ? OR LOWER(clients.name) LIKE ? OR CAST(production_orders.number AS TEXT) LIKE ?",
				pattern, pattern, pattern)
		} else {
			query = query.Where("LOWER(production_orders.description) LIKE ? OR CAST(production_orders.number AS TEXT) LIKE ?",
				pattern, pattern)
		}
	}
	return applyOrder(query, "production_orders", filter.Filter, ProductionOrderSortFields, "created_at")
}

// Save inserts or updates an order
func (r *GormProductionOrderRepository) Save(ctx context.Context, order *production.Order) error {
	if err := getDB(ctx, r.db).Save(models.ProductionOrderModelFromDomain(order)).Error; err != nil {
		return shared.AsStoreError(err)
	}
	return nil
}

// SaveWithLock is Save conditioned on the stored version
func (r *GormProductionOrderRepository) SaveWithLock(ctx context.Context, order *production.Order) error {
	model := models.ProductionOrderModelFromDomain(order)
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := claimVersion(tx, &models.ProductionOrderModel{}, order.TenantID, order.ID, order.Version); err != nil {
			return err
		}
		if err := tx.Save(model).Error; err != nil {
			return shared.AsStoreError(err)
		}
		return nil
	})
}

// DeleteForTenant removes an order
func (r *GormProductionOrderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteScoped(ctx, r.db, &models.ProductionOrderModel{}, tenantID, id, "Production order")
}

// NextNumber returns the next production order number of the tenant
func (r *GormProductionOrderRepository) NextNumber(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return nextSequence(ctx, r.db, tenantID, sequenceProductionOrder)
}

// CountByStage counts orders per pipeline column
func (r *GormProductionOrderRepository) CountByStage(ctx context.Context, tenantID uuid.UUID) (map[production.Stage]int64, error) {
	var rows []statusCount
	err := getDB(ctx, r.db).Model(&models.ProductionOrderModel{}).
		Select("status, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, shared.AsStoreError(err)
	}
	counts := make(map[production.Stage]int64, len(rows))
	for _, row := range rows {
		counts[production.Stage(row.Status)] = row.Count
	}
	return counts, nil
}
