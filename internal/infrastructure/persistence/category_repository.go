package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/catalog"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByIDForTenant finds a category of the tenant
func (r *GormCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := getDB(ctx, r.db).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translate(err, "Category")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists categories by name; an empty kind lists all of them
func (r *GormCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, kind catalog.CategoryKind) ([]catalog.Category, error) {
	query := getDB(ctx, r.db).Where("tenant_id = ?", tenantID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	var rows []models.CategoryModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, shared.AsStoreError(err)
	}
	categories := make([]catalog.Category, len(rows))
	for i := range rows {
		categories[i] = *rows[i].ToDomain()
	}
	return categories, nil
}

// Save inserts or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	if err := getDB(ctx, r.db).Save(models.CategoryModelFromDomain(c)).Error; err != nil {
		return shared.AsStoreError(err)
	}
	return nil
}

// DeleteForTenant removes a category and clears references to it
func (r *GormCategoryRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		for _, table := range []string{"products", "receivables", "payables"} {
			if err := tx.Table(table).
				Where("tenant_id = ? AND category_id = ?", tenantID, id).
				UpdateColumn("category_id", nil).Error; err != nil {
				return shared.AsStoreError(err)
			}
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.CategoryModel{})
		return requireAffected(result, "Category")
	})
}
