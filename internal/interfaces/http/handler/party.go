package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/application/partner"
	"github.com/grafica/backend/internal/domain/shared"
)

// PartyService manages clients or suppliers
type PartyService interface {
	Create(ctx context.Context, scope shared.TenantScope, req partner.PartyRequest) (*partner.PartyResponse, error)
	Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*partner.PartyResponse, error)
	List(ctx context.Context, scope shared.TenantScope, filter partner.PartyListFilter) (*shared.Paginated[partner.PartyResponse], error)
	Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req partner.UpdatePartyRequest) (*partner.PartyResponse, error)
	Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error
}

// PartyHandler serves /clients and /suppliers; the service decides the kind
type PartyHandler struct {
	BaseHandler
	partyService PartyService
}

// NewPartyHandler creates a new PartyHandler
func NewPartyHandler(partyService PartyService) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

func (h *PartyHandler) Create(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var req partner.PartyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	party, err := h.partyService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, party)
}

func (h *PartyHandler) Get(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	party, err := h.partyService.Get(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, party)
}

func (h *PartyHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var filter partner.PartyListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.partyService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

func (h *PartyHandler) Update(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req partner.UpdatePartyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	party, err := h.partyService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, party)
}

// Delete removes the party; references to it are cleared
func (h *PartyHandler) Delete(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.partyService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
