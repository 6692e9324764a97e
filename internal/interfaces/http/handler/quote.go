package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/application/trade"
	"github.com/grafica/backend/internal/domain/shared"
)

// QuoteService is the quote workflow used by QuoteHandler
type QuoteService interface {
	Create(ctx context.Context, scope shared.TenantScope, req trade.CreateQuoteRequest) (*trade.QuoteResponse, error)
	Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*trade.QuoteResponse, error)
	List(ctx context.Context, scope shared.TenantScope, filter trade.QuoteListFilter) (*shared.Paginated[trade.QuoteResponse], error)
	Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.UpdateQuoteRequest) (*trade.QuoteResponse, error)
	SetStatus(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.SetQuoteStatusRequest) (*trade.QuoteResponse, error)
	Approve(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.ApproveQuoteRequest) (*trade.ApprovalResponse, error)
	Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error
}

// QuoteHandler handles quote endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// Create creates a draft quote
func (h *QuoteHandler) Create(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var req trade.CreateQuoteRequest
	if !h.bindJSON(c, &req) {
		return
	}
	quote, err := h.quoteService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, quote)
}

// Get returns one quote with its lines
func (h *QuoteHandler) Get(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	quote, err := h.quoteService.Get(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// List returns a page of quotes
func (h *QuoteHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var filter trade.QuoteListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.quoteService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Update replaces a quote's fields and lines
func (h *QuoteHandler) Update(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.UpdateQuoteRequest
	if !h.bindJSON(c, &req) {
		return
	}
	quote, err := h.quoteService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// SetStatus changes the status; approved runs the approval cascade
func (h *QuoteHandler) SetStatus(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.SetQuoteStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	quote, err := h.quoteService.SetStatus(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// Approve approves the quote and returns the service order and receivable it raised
func (h *QuoteHandler) Approve(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.ApproveQuoteRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	result, err := h.quoteService.Approve(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a draft or rejected quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.quoteService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
