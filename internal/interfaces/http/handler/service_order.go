package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/application/trade"
	"github.com/grafica/backend/internal/domain/shared"
)

// ServiceOrderService is the service order and checklist workflow
type ServiceOrderService interface {
	Create(ctx context.Context, scope shared.TenantScope, req trade.CreateServiceOrderRequest) (*trade.ServiceOrderResponse, error)
	Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*trade.ServiceOrderResult, error)
	List(ctx context.Context, scope shared.TenantScope, filter trade.ServiceOrderListFilter) (*trade.ServiceOrderListResult, error)
	Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.UpdateServiceOrderRequest) (*trade.ServiceOrderResponse, error)
	SetStatus(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.SetServiceOrderStatusRequest) (*trade.ServiceOrderResponse, error)
	Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error
	AddChecklistItem(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.AddChecklistItemRequest) (*trade.ServiceOrderResponse, error)
	ToggleChecklistItem(ctx context.Context, scope shared.TenantScope, itemID uuid.UUID, req trade.ToggleChecklistItemRequest) (*trade.ServiceOrderResponse, error)
	RemoveChecklistItem(ctx context.Context, scope shared.TenantScope, itemID uuid.UUID) (*trade.ServiceOrderResponse, error)
	ReorderChecklist(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.ReorderChecklistRequest) (*trade.ServiceOrderResponse, error)
}

// ServiceOrderHandler handles service order endpoints
type ServiceOrderHandler struct {
	BaseHandler
	orderService ServiceOrderService
}

// NewServiceOrderHandler creates a new ServiceOrderHandler
func NewServiceOrderHandler(orderService ServiceOrderService) *ServiceOrderHandler {
	return &ServiceOrderHandler{orderService: orderService}
}

// Create opens a service order
func (h *ServiceOrderHandler) Create(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var req trade.CreateServiceOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get returns one order; degraded is set when only the base row was readable
func (h *ServiceOrderHandler) Get(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.orderService.Get(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns the board's orders
func (h *ServiceOrderHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var filter trade.ServiceOrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	result, err := h.orderService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update replaces the editable fields
func (h *ServiceOrderHandler) Update(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.UpdateServiceOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// SetStatus moves the order to another column
func (h *ServiceOrderHandler) SetStatus(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.SetServiceOrderStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.SetStatus(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete removes an order and its checklist
func (h *ServiceOrderHandler) Delete(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddChecklistItem appends an item
func (h *ServiceOrderHandler) AddChecklistItem(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.AddChecklistItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.AddChecklistItem(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// ReorderChecklist rewrites item positions
func (h *ServiceOrderHandler) ReorderChecklist(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.ReorderChecklistRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.ReorderChecklist(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ToggleChecklistItem sets an item's done flag
func (h *ServiceOrderHandler) ToggleChecklistItem(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}
	var req trade.ToggleChecklistItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.ToggleChecklistItem(c.Request.Context(), scope, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// RemoveChecklistItem deletes an item
func (h *ServiceOrderHandler) RemoveChecklistItem(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}
	order, err := h.orderService.RemoveChecklistItem(c.Request.Context(), scope, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
