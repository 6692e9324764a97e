package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/application/production"
	"github.com/grafica/backend/internal/domain/shared"
)

// ProductionService is the production pipeline
type ProductionService interface {
	Create(ctx context.Context, scope shared.TenantScope, req production.CreateOrderRequest) (*production.OrderResponse, error)
	Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*production.OrderResponse, error)
	List(ctx context.Context, scope shared.TenantScope, filter production.OrderListFilter) ([]production.OrderResponse, error)
	Board(ctx context.Context, scope shared.TenantScope) (*production.BoardResponse, error)
	Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req production.UpdateOrderRequest) (*production.OrderResponse, error)
	MoveTo(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req production.MoveOrderRequest) (*production.OrderResponse, error)
	Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error
}

// ProductionHandler handles production order endpoints
type ProductionHandler struct {
	BaseHandler
	productionService ProductionService
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(productionService ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService}
}

func (h *ProductionHandler) Create(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var req production.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.productionService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

func (h *ProductionHandler) Get(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.productionService.Get(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

func (h *ProductionHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var filter production.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	orders, err := h.productionService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Board returns the orders grouped into pipeline columns
func (h *ProductionHandler) Board(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	board, err := h.productionService.Board(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, board)
}

func (h *ProductionHandler) Update(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req production.UpdateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.productionService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Move drags an order to another column
func (h *ProductionHandler) Move(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req production.MoveOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.productionService.MoveTo(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

func (h *ProductionHandler) Delete(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.productionService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
