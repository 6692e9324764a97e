package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/application/identity"
	domainidentity "github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/interfaces/http/middleware"
)

// TenantService is the active-tenant and tenant admin surface
type TenantService interface {
	ListMemberships(ctx context.Context, userID uuid.UUID) ([]identity.MembershipDTO, error)
	SelectActive(ctx context.Context, userID, tenantID uuid.UUID) (*identity.MembershipDTO, error)
	RestoreActive(ctx context.Context, userID uuid.UUID) (*identity.MembershipDTO, error)
	ResolveScope(ctx context.Context, userID, requested uuid.UUID) (shared.TenantScope, error)
	Create(ctx context.Context, userID uuid.UUID, input identity.CreateTenantInput) (*identity.MembershipDTO, error)
	Update(ctx context.Context, userID, tenantID uuid.UUID, input identity.UpdateTenantInput) (*identity.TenantDTO, error)
	Delete(ctx context.Context, userID, tenantID uuid.UUID) (*identity.MembershipDTO, error)
}

// TenantHandler handles session tenant selection and tenant administration
type TenantHandler struct {
	BaseHandler
	tenantService TenantService
	gate          middleware.AccessGate
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService TenantService, gate middleware.AccessGate) *TenantHandler {
	return &TenantHandler{tenantService: tenantService, gate: gate}
}

// activeTenantResponse is the session's active tenant; Active is nil when the
// user has no memberships yet
type activeTenantResponse struct {
	Active *identity.MembershipDTO `json:"active"`
}

// ListMemberships lists the caller's tenants with their role in each
func (h *TenantHandler) ListMemberships(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	memberships, err := h.tenantService.ListMemberships(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, memberships)
}

// GetActive restores the persisted selection, falling back to the first membership
func (h *TenantHandler) GetActive(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	active, err := h.tenantService.RestoreActive(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, activeTenantResponse{Active: active})
}

// SelectActive switches the session's active tenant
func (h *TenantHandler) SelectActive(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req identity.SelectTenantInput
	if !h.bindJSON(c, &req) {
		return
	}
	active, err := h.tenantService.SelectActive(c.Request.Context(), userID, req.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, activeTenantResponse{Active: active})
}

// Create inserts a tenant owned by the caller and makes it active
func (h *TenantHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req identity.CreateTenantInput
	if !h.bindJSON(c, &req) {
		return
	}
	membership, err := h.tenantService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, membership)
}

// Update edits name and contact fields; admin only
func (h *TenantHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	tenantID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req identity.UpdateTenantInput
	if !h.bindJSON(c, &req) {
		return
	}
	tenant, err := h.tenantService.Update(c.Request.Context(), userID, tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenant)
}

// Delete removes a tenant with everything it owns and returns the new active tenant
func (h *TenantHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	tenantID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	active, err := h.tenantService.Delete(c.Request.Context(), userID, tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, activeTenantResponse{Active: active})
}

// CheckAccess reports the gate decision for a client route. A caller without
// an active tenant is evaluated with no role and no grants.
func (h *TenantHandler) CheckAccess(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	path := c.DefaultQuery("path", "/")

	requested := uuid.Nil
	if header := c.GetHeader(middleware.TenantHeaderKey); header != "" {
		id, err := uuid.Parse(header)
		if err != nil {
			h.Error(c, shared.CodeValidationFailed, "Invalid tenant ID format")
			return
		}
		requested = id
	}

	var principal *domainidentity.Principal
	scope, err := h.tenantService.ResolveScope(c.Request.Context(), userID, requested)
	switch {
	case err == nil:
		principal, err = h.gate.Principal(c.Request.Context(), scope)
		if err != nil {
			h.HandleError(c, err)
			return
		}
	case errors.Is(err, shared.ErrPreconditionFailed):
		principal = domainidentity.NewPrincipal("", nil)
	default:
		h.HandleError(c, err)
		return
	}

	h.Success(c, h.gate.Check(principal, path))
}
