package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseListRepository implements trade.PurchaseListRepository using GORM
type GormPurchaseListRepository struct {
	db *gorm.DB
}

// NewGormPurchaseListRepository creates a new GormPurchaseListRepository
func NewGormPurchaseListRepository(db *gorm.DB) *GormPurchaseListRepository {
	return &GormPurchaseListRepository{db: db}
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

// FindByIDForTenant loads a list with its items
func (r *GormPurchaseListRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.PurchaseList, error) {
	var model models.PurchaseListModel
	err := getDB(ctx, r.db).
		Preload("Items", orderItems).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error
	if err != nil {
		return nil, translate(err, "Purchase list")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists lists with items, newest first, optionally only
// those of one service order
func (r *GormPurchaseListRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, serviceOrderID *uuid.UUID) ([]trade.PurchaseList, error) {
	query := getDB(ctx, r.db).
		Preload("Items", orderItems).
		Where("tenant_id = ?", tenantID)
	if serviceOrderID != nil {
		query = query.Where("service_order_id = ?", *serviceOrderID)
	}

	var rows []models.PurchaseListModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, shared.AsStoreError(err)
	}
	lists := make([]trade.PurchaseList, len(rows))
	for i := range rows {
		lists[i] = *rows[i].ToDomain()
	}
	return lists, nil
}

// FindItem finds an item of the tenant
func (r *GormPurchaseListRepository) FindItem(ctx context.Context, tenantID, itemID uuid.UUID) (*trade.PurchaseItem, error) {
	var model models.PurchaseItemModel
	err := getDB(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, itemID).
		First(&model).Error
	if err != nil {
		return nil, translate(err, "Purchase item")
	}
	item := model.ToDomain()
	return &item, nil
}

// Save inserts or updates a list and replaces its items
func (r *GormPurchaseListRepository) Save(ctx context.Context, list *trade.PurchaseList) error {
	model, items := models.PurchaseListModelFromDomain(list)
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return shared.AsStoreError(err)
		}
		if err := tx.Where("list_id = ?", list.ID).Delete(&models.PurchaseItemModel{}).Error; err != nil {
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

// DeleteForTenant removes a list and its items
func (r *GormPurchaseListRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND list_id = ?", tenantID, id).
			Delete(&models.PurchaseItemModel{}).Error; err != nil {
			return shared.AsStoreError(err)
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.PurchaseListModel{})
		return requireAffected(result, "Purchase list")
	})
}
