package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/application/finance"
	"github.com/grafica/backend/internal/domain/shared"
)

// EntryService is the ledger surface shared by receivables and payables. R is
// the response type of the concrete ledger.
type EntryService[R any] interface {
	Create(ctx context.Context, scope shared.TenantScope, req finance.EntryRequest) (*R, error)
	Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*R, error)
	List(ctx context.Context, scope shared.TenantScope, filter finance.EntryListFilter) (*shared.Paginated[R], error)
	Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req finance.UpdateEntryRequest) (*R, error)
	Settle(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req finance.SettleRequest) (*R, error)
	Cancel(ctx context.Context, scope shared.TenantScope, id uuid.UUID, version *int) (*R, error)
	SetStatus(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req finance.SetEntryStatusRequest) (*R, error)
	Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error
}

// ReceivableService is the receivables ledger
type ReceivableService = EntryService[finance.ReceivableResponse]

// PayableService is the payables ledger
type PayableService = EntryService[finance.PayableResponse]

// EntryHandler serves either ledger
type EntryHandler[R any] struct {
	BaseHandler
	entryService EntryService[R]
}

// NewReceivableHandler creates the handler for /receivables
func NewReceivableHandler(service ReceivableService) *EntryHandler[finance.ReceivableResponse] {
	return &EntryHandler[finance.ReceivableResponse]{entryService: service}
}

// NewPayableHandler creates the handler for /payables
func NewPayableHandler(service PayableService) *EntryHandler[finance.PayableResponse] {
	return &EntryHandler[finance.PayableResponse]{entryService: service}
}

type cancelEntryRequest struct {
	Version *int `json:"version"`
}

func (h *EntryHandler[R]) Create(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var req finance.EntryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	entry, err := h.entryService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

func (h *EntryHandler[R]) Get(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	entry, err := h.entryService.Get(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

func (h *EntryHandler[R]) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var filter finance.EntryListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.entryService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

func (h *EntryHandler[R]) Update(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req finance.UpdateEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	entry, err := h.entryService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Settle marks the entry received or paid
func (h *EntryHandler[R]) Settle(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req finance.SettleRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	entry, err := h.entryService.Settle(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

func (h *EntryHandler[R]) Cancel(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req cancelEntryRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	entry, err := h.entryService.Cancel(c.Request.Context(), scope, id, req.Version)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

func (h *EntryHandler[R]) SetStatus(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req finance.SetEntryStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	entry, err := h.entryService.SetStatus(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

func (h *EntryHandler[R]) Delete(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.entryService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
