package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/catalog"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductRequest represents a request to create or replace a product
type ProductRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=200"`
	SKU             string          `json:"sku" binding:"max=50"`
	Unit            string          `json:"unit" binding:"max=20"`
	Price           decimal.Decimal `json:"price"`
	Quantity        decimal.Decimal `json:"quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	CategoryID      *uuid.UUID      `json:"category_id"`
}

// UpdateProductRequest replaces a product; Version makes the write conditional
type UpdateProductRequest struct {
	ProductRequest
	Version *int `json:"version"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by" binding:"omitempty,oneof=name created_at quantity"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku,omitempty"`
	Unit            string          `json:"unit"`
	Price           decimal.Decimal `json:"price"`
	Quantity        decimal.Decimal `json:"quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	LowStock        bool            `json:"low_stock"`
	CategoryID      *uuid.UUID      `json:"category_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// CategoryRequest represents a request to create or rename a category
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Kind string `json:"kind" binding:"required,oneof=income expense product"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		TenantID:        p.TenantID,
		Name:            p.Name,
		SKU:             p.SKU,
		Unit:            p.Unit,
		Price:           p.Price,
		Quantity:        p.Quantity,
		MinimumQuantity: p.MinimumQuantity,
		LowStock:        p.IsLowStock(),
		CategoryID:      p.CategoryID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.Version,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ToCategoryResponse converts a domain category
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Kind:      string(c.Kind),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r ProductRequest) toDetails() catalog.ProductDetails {
	return catalog.ProductDetails{
		Name:            r.Name,
		SKU:             r.SKU,
		Unit:            r.Unit,
		Price:           r.Price,
		Quantity:        r.Quantity,
		MinimumQuantity: r.MinimumQuantity,
		CategoryID:      r.CategoryID,
	}
}

func (f ProductListFilter) toDomain() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = f.Search
	if f.CategoryID != nil {
		filter.Filters["category_id"] = *f.CategoryID
	}
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	return filter
}
