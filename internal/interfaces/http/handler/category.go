package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/application/catalog"
	"github.com/grafica/backend/internal/domain/shared"
)

// CategoryService manages income, expense and product categories
type CategoryService interface {
	Create(ctx context.Context, scope shared.TenantScope, req catalog.CategoryRequest) (*catalog.CategoryResponse, error)
	List(ctx context.Context, scope shared.TenantScope, kind string) ([]catalog.CategoryResponse, error)
	Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req catalog.CategoryRequest) (*catalog.CategoryResponse, error)
	Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error
}

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryQuery struct {
	Kind string `form:"kind" binding:"omitempty,oneof=income expense product"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var req catalog.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// List returns categories, optionally only those of ?kind=
func (h *CategoryHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var q categoryQuery
	if !h.bindQuery(c, &q) {
		return
	}
	categories, err := h.categoryService.List(c.Request.Context(), scope, q.Kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
