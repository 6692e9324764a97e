package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/catalog"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForTenant finds a product of the tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := getDB(ctx, r.db).Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
		return nil, translate(err, "Product")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists products with search and pagination
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, int64, error) {
	query := getDB(ctx, r.db).Model(&models.ProductModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	if categoryID, ok := filter.Filters["category_id"]; ok {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, shared.AsStoreError(err)
	}

	var rows []models.ProductModel
	query = applyOrder(query, "products", filter, ProductSortFields, "name")
	if err := applyPagination(query, filter).Find(&rows).Error; err != nil {
		return nil, 0, shared.AsStoreError(err)
	}
	return productsToDomain(rows), total, nil
}

// FindLowStock returns products with quantity <= minimum_quantity
func (r *GormProductRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]catalog.Product, error) {
	var rows []models.ProductModel
	err := getDB(ctx, r.db).
		Where("tenant_id = ? AND quantity <= minimum_quantity", tenantID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, shared.AsStoreError(err)
	}
	return productsToDomain(rows), nil
}

func productsToDomain(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products
}

// Save inserts or updates a product
func (r *GormProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	if err := getDB(ctx, r.db).Save(models.ProductModelFromDomain(p)).Error; err != nil {
		return shared.AsStoreError(err)
	}
	return nil
}

// DeleteForTenant removes a product
func (r *GormProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteScoped(ctx, r.db, &models.ProductModel{}, tenantID, id, "Product")
}
