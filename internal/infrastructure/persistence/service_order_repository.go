package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormServiceOrderRepository implements trade.ServiceOrderRepository using GORM
type GormServiceOrderRepository struct {
	db *gorm.DB
}

// NewGormServiceOrderRepository creates a new GormServiceOrderRepository
func NewGormServiceOrderRepository(db *gorm.DB) *GormServiceOrderRepository {
	return &GormServiceOrderRepository{db: db}
}

func orderChecklist(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindByIDForTenant loads the order with client name and checklist
func (r *GormServiceOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.ServiceOrder, error) {
	var model models.ServiceOrderModel
	err := getDB(ctx, r.db).Model(&models.ServiceOrderModel{}).
		Select("service_orders.*, clients.name AS client_name").
		Joins("LEFT JOIN clients ON clients.id = service_orders.client_id AND clients.tenant_id = service_orders.tenant_id").
		Preload("Checklist", orderChecklist).
		Where("service_orders.tenant_id = ? AND service_orders.id = ?", tenantID, id).
		First(&model).Error
	if err != nil {
		return nil, translate(err, "Service order")
	}
	return model.ToDomain(), nil
}

// FindBaseByIDForTenant loads only the order row
func (r *GormServiceOrderRepository) FindBaseByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.ServiceOrder, error) {
	var model models.ServiceOrderModel
	err := getDB(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error
	if err != nil {
		return nil, translate(err, "Service order")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists orders with client names and checklists. Boards
// show every card, so the filter's page is ignored.
func (r *GormServiceOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter trade.ServiceOrderFilter) ([]trade.ServiceOrder, error) {
	query := getDB(ctx, r.db).Model(&models.ServiceOrderModel{}).
		Select("service_orders.*, clients.name AS client_name").
		Joins("LEFT JOIN clients ON clients.id = service_orders.client_id AND clients.tenant_id = service_orders.tenant_id").
		Preload("Checklist", orderChecklist).
		Where("service_orders.tenant_id = ?", tenantID)
	query = r.applyFilter(query, filter, true)

	var rows []models.ServiceOrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, shared.AsStoreError(err)
	}
	return serviceOrdersToDomain(rows), nil
}

// FindAllBaseForTenant lists only order rows
func (r *GormServiceOrderRepository) FindAllBaseForTenant(ctx context.Context, tenantID uuid.UUID, filter trade.ServiceOrderFilter) ([]trade.ServiceOrder, error) {
	query := getDB(ctx, r.db).Model(&models.ServiceOrderModel{}).
		Where("service_orders.tenant_id = ?", tenantID)
	query = r.applyFilter(query, filter, false)

	var rows []models.ServiceOrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, shared.AsStoreError(err)
	}
	return serviceOrdersToDomain(rows), nil
}

func (r *GormServiceOrderRepository) applyFilter(query *gorm.DB, filter trade.ServiceOrderFilter, joined bool) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("service_orders.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("service_orders.priority = ?", filter.Priority)
	}
	if filter.ClientID != nil {
		query = query.Where("service_orders.client_id = ?", *filter.ClientID)
	}
	if filter.QuoteID != nil {
		query = query.Where("service_orders.quote_id = ?", *filter.QuoteID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		if joined {
			query = query.Where("LOWER(service_orders.title) LIKE ? OR LOWER(clients.name) LIKE ? OR CAST(service_orders.number AS TEXT) LIKE ?",
				pattern, pattern, pattern)
		} else {
			query = query.Where("LOWER(service_orders.title) LIKE ? OR CAST(service_orders.number AS TEXT) LIKE ?",
				pattern, pattern)
		}
	}
	return applyOrder(query, "service_orders", filter.Filter, ServiceOrderSortFields, "created_at")
}

func serviceOrdersToDomain(rows []models.ServiceOrderModel) []trade.ServiceOrder {
	orders := make([]trade.ServiceOrder, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders
}

// FindChecklistItem finds a checklist item of the tenant
func (r *GormServiceOrderRepository) FindChecklistItem(ctx context.Context, tenantID, itemID uuid.UUID) (*trade.ChecklistItem, error) {
	var model models.ChecklistItemModel
	err := getDB(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, itemID).
		First(&model).Error
	if err != nil {
		return nil, translate(err, "Checklist item")
	}
	item := model.ToDomain()
	return &item, nil
}

// ExistsForQuote reports whether any order references the quote
func (r *GormServiceOrderRepository) ExistsForQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (bool, error) {
	return existsScoped(ctx, r.db, &models.ServiceOrderModel{}, tenantID, "quote_id", quoteID)
}

// Create inserts a new order together with its initial checklist
func (r *GormServiceOrderRepository) Create(ctx context.Context, so *trade.ServiceOrder) error {
	model, items := models.ServiceOrderModelFromDomain(so)
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return shared.AsStoreError(err)
		}
		if len(items) == 0 {
			return nil
		}
		if err := tx.Create(&items).Error; err != nil {
			return shared.AsStoreError(err)
		}
		return nil
	})
}

// Save inserts or updates the order row. Checklist rows are never written
// here; they change only through the checklist methods below.
func (r *GormServiceOrderRepository) Save(ctx context.Context, so *trade.ServiceOrder) error {
	model, _ := models.ServiceOrderModelFromDomain(so)
	if err := getDB(ctx, r.db).Omit(clause.Associations).Save(model).Error; err != nil {
		return shared.AsStoreError(err)
	}
	return nil
}

// SaveWithLock is Save conditioned on the stored version
func (r *GormServiceOrderRepository) SaveWithLock(ctx context.Context, so *trade.ServiceOrder) error {
	model, _ := models.ServiceOrderModelFromDomain(so)
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := claimVersion(tx, &models.ServiceOrderModel{}, so.TenantID, so.ID, so.Version); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return shared.AsStoreError(err)
		}
		return nil
	})
}

// lockOrder touches the order row so concurrent checklist writers of the
// same order queue behind each other
func lockOrder(tx *gorm.DB, tenantID, orderID uuid.UUID) error {
	result := tx.Model(&models.ServiceOrderModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, orderID).
		UpdateColumn("updated_at", time.Now())
	return requireAffected(result, "Service order")
}

// AddChecklistItem appends the item after the stored items. item.Position is
// set to the position it was written at.
func (r *GormServiceOrderRepository) AddChecklistItem(ctx context.Context, tenantID uuid.UUID, item *trade.ChecklistItem) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := lockOrder(tx, tenantID, item.ServiceOrderID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.ChecklistItemModel{}).
			Where("tenant_id = ? AND service_order_id = ?", tenantID, item.ServiceOrderID).
			Count(&count).Error; err != nil {
			return shared.AsStoreError(err)
		}
		item.Position = int(count)
		model := models.ChecklistItemModelFromDomain(tenantID, *item)
		if err := tx.Create(&model).Error; err != nil {
			return shared.AsStoreError(err)
		}
		return nil
	})
}

// UpdateChecklistItem writes one item's done flag and completion time
func (r *GormServiceOrderRepository) UpdateChecklistItem(ctx context.Context, tenantID uuid.UUID, item *trade.ChecklistItem) error {
	result := getDB(ctx, r.db).Model(&models.ChecklistItemModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, item.ID).
		Updates(map[string]any{"done": item.Done, "completed_at": item.CompletedAt})
	return requireAffected(result, "Checklist item")
}

// RemoveChecklistItem deletes one item and shifts the later ones up
func (r *GormServiceOrderRepository) RemoveChecklistItem(ctx context.Context, tenantID, orderID, itemID uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := lockOrder(tx, tenantID, orderID); err != nil {
			return err
		}
		var item models.ChecklistItemModel
		if err := tx.Where("tenant_id = ? AND service_order_id = ? AND id = ?", tenantID, orderID, itemID).
			First(&item).Error; err != nil {
			return translate(err, "Checklist item")
		}
		if err := tx.Delete(&item).Error; err != nil {
			return shared.AsStoreError(err)
		}
		if err := tx.Model(&models.ChecklistItemModel{}).
			Where("service_order_id = ? AND position > ?", orderID, item.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error; err != nil {
			return shared.AsStoreError(err)
		}
		return nil
	})
}

// ReorderChecklist rewrites positions to follow itemIDs, which must name
// every stored item of the order exactly once
func (r *GormServiceOrderRepository) ReorderChecklist(ctx context.Context, tenantID, orderID uuid.UUID, itemIDs []uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := lockOrder(tx, tenantID, orderID); err != nil {
			return err
		}
		var stored int64
		if err := tx.Model(&models.ChecklistItemModel{}).
			Where("tenant_id = ? AND service_order_id = ?", tenantID, orderID).
			Count(&stored).Error; err != nil {
			return shared.AsStoreError(err)
		}
		seen := make(map[uuid.UUID]bool, len(itemIDs))
		for _, id := range itemIDs {
			seen[id] = true
		}
		if stored != int64(len(itemIDs)) || len(seen) != len(itemIDs) {
			return shared.NewValidationError("Reorder must list every checklist item exactly once")
		}
		for position, id := range itemIDs {
			result := tx.Model(&models.ChecklistItemModel{}).
				Where("tenant_id = ? AND service_order_id = ? AND id = ?", tenantID, orderID, id).
				UpdateColumn("position", position)
			if result.Error != nil {
				return shared.AsStoreError(result.Error)
			}
			if result.RowsAffected == 0 {
				return shared.NewValidationError("Reorder must list every checklist item exactly once")
			}
		}
		return nil
	})
}

// DeleteForTenant removes an order and its checklist
func (r *GormServiceOrderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND service_order_id = ?", tenantID, id).
			Delete(&models.ChecklistItemModel{}).Error; err != nil {
			return shared.AsStoreError(err)
		}
		if err := tx.Model(&models.PurchaseListModel{}).
			Where("tenant_id = ? AND service_order_id = ?", tenantID, id).
			UpdateColumn("service_order_id", nil).Error; err != nil {
			return shared.AsStoreError(err)
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.ServiceOrderModel{})
		return requireAffected(result, "Service order")
	})
}

// NextNumber returns the next service order number of the tenant
func (r *GormServiceOrderRepository) NextNumber(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return nextSequence(ctx, r.db, tenantID, sequenceServiceOrder)
}

type statusCount struct {
	Status string
	Count  int64
}

// CountByStatus counts orders per status
func (r *GormServiceOrderRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[trade.ServiceOrderStatus]int64, error) {
	var rows []statusCount
	err := getDB(ctx, r.db).Model(&models.ServiceOrderModel{}).
		Select("status, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, shared.AsStoreError(err)
	}
	counts := make(map[trade.ServiceOrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[trade.ServiceOrderStatus(row.Status)] = row.Count
	}
	return counts, nil
}
