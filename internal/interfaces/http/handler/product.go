package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/application/catalog"
	"github.com/grafica/backend/internal/domain/shared"
)

// ProductService manages the tenant's stock items
type ProductService interface {
	Create(ctx context.Context, scope shared.TenantScope, req catalog.ProductRequest) (*catalog.ProductResponse, error)
	Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*catalog.ProductResponse, error)
	List(ctx context.Context, scope shared.TenantScope, filter catalog.ProductListFilter) (*shared.Paginated[catalog.ProductResponse], error)
	LowStock(ctx context.Context, scope shared.TenantScope) ([]catalog.ProductResponse, error)
	Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req catalog.UpdateProductRequest) (*catalog.ProductResponse, error)
	Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error
}

// ProductHandler handles product endpoints
type ProductHandler struct {
	BaseHandler
	productService ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) Create(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var req catalog.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

func (h *ProductHandler) Get(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.Get(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

func (h *ProductHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var filter catalog.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.productService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// LowStock lists products at or below their minimum quantity
func (h *ProductHandler) LowStock(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	products, err := h.productService.LowStock(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

func (h *ProductHandler) Update(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
