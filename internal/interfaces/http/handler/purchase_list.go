package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/application/trade"
	"github.com/grafica/backend/internal/domain/shared"
)

// PurchaseListService is the purchase list workflow
type PurchaseListService interface {
	Create(ctx context.Context, scope shared.TenantScope, req trade.CreatePurchaseListRequest) (*trade.PurchaseListResponse, error)
	Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*trade.PurchaseListResponse, error)
	List(ctx context.Context, scope shared.TenantScope, serviceOrderID *uuid.UUID) ([]trade.PurchaseListResponse, error)
	Rename(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.UpdatePurchaseListRequest) (*trade.PurchaseListResponse, error)
	SetStatus(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.SetPurchaseStatusRequest) (*trade.PurchaseListResponse, error)
	AddItem(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.AddPurchaseItemRequest) (*trade.PurchaseListResponse, error)
	SetItemStatus(ctx context.Context, scope shared.TenantScope, itemID uuid.UUID, req trade.SetPurchaseStatusRequest) (*trade.PurchaseListResponse, error)
	DeleteItem(ctx context.Context, scope shared.TenantScope, itemID uuid.UUID) (*trade.PurchaseListResponse, error)
	Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error
}

// PurchaseListHandler handles purchase list endpoints
type PurchaseListHandler struct {
	BaseHandler
	listService PurchaseListService
}

// NewPurchaseListHandler creates a new PurchaseListHandler
func NewPurchaseListHandler(listService PurchaseListService) *PurchaseListHandler {
	return &PurchaseListHandler{listService: listService}
}

type purchaseListQuery struct {
	ServiceOrderID string `form:"service_order_id"`
}

// Create creates a list, optionally tied to a service order
func (h *PurchaseListHandler) Create(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var req trade.CreatePurchaseListRequest
	if !h.bindJSON(c, &req) {
		return
	}
	list, err := h.listService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, list)
}

// Get returns a list with its items
func (h *PurchaseListHandler) Get(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.listService.Get(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// List returns every list, or only those of ?service_order_id=
func (h *PurchaseListHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var q purchaseListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	var serviceOrderID *uuid.UUID
	if q.ServiceOrderID != "" {
		id, err := uuid.Parse(q.ServiceOrderID)
		if err != nil {
			h.Error(c, shared.CodeValidationFailed, "Invalid service_order_id format")
			return
		}
		serviceOrderID = &id
	}
	lists, err := h.listService.List(c.Request.Context(), scope, serviceOrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lists)
}

// Update renames a list
func (h *PurchaseListHandler) Update(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.UpdatePurchaseListRequest
	if !h.bindJSON(c, &req) {
		return
	}
	list, err := h.listService.Rename(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// SetStatus sets the list's own status
func (h *PurchaseListHandler) SetStatus(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.SetPurchaseStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	list, err := h.listService.SetStatus(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// Delete removes a list and its items
func (h *PurchaseListHandler) Delete(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.listService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem appends a pending item
func (h *PurchaseListHandler) AddItem(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.AddPurchaseItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	list, err := h.listService.AddItem(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, list)
}

// SetItemStatus changes one item's status
func (h *PurchaseListHandler) SetItemStatus(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}
	var req trade.SetPurchaseStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	list, err := h.listService.SetItemStatus(c.Request.Context(), scope, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// DeleteItem removes one item
func (h *PurchaseListHandler) DeleteItem(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}
	list, err := h.listService.DeleteItem(c.Request.Context(), scope, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}
