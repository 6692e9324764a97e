package models

import (
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for catalog.Product
type ProductModel struct {
	TenantAggregateModel
	Name            string          `gorm:"type:varchar(200);not null"`
	SKU             string          `gorm:"column:sku;type:varchar(50)"`
	Unit            string          `gorm:"type:varchar(20);not null"`
	Price           decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Quantity        decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	MinimumQuantity decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Name:                m.Name,
		SKU:                 m.SKU,
		Unit:                m.Unit,
		Price:               m.Price,
		Quantity:            m.Quantity,
		MinimumQuantity:     m.MinimumQuantity,
		CategoryID:          m.CategoryID,
	}
}

// ProductModelFromDomain creates a model from a domain product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:            p.Name,
		SKU:             p.SKU,
		Unit:            p.Unit,
		Price:           p.Price,
		Quantity:        p.Quantity,
		MinimumQuantity: p.MinimumQuantity,
		CategoryID:      p.CategoryID,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}

// CategoryModel is the persistence model for catalog.Category
type CategoryModel struct {
	TenantAggregateModel
	Name string               `gorm:"type:varchar(100);not null"`
	Kind catalog.CategoryKind `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the model to a domain category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Name:                m.Name,
		Kind:                m.Kind,
	}
}

// CategoryModelFromDomain creates a model from a domain category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{Name: c.Name, Kind: c.Kind}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}
