package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/application/identity"
	"github.com/grafica/backend/internal/domain/shared"
)

// MemberService provisions and manages members of the active tenant
type MemberService interface {
	Provision(ctx context.Context, scope shared.TenantScope, input identity.ProvisionUserInput) (*identity.MemberDTO, error)
	ListMembers(ctx context.Context, scope shared.TenantScope) ([]identity.MemberDTO, error)
	SetPermissions(ctx context.Context, scope shared.TenantScope, userID uuid.UUID, input identity.SetPermissionsInput) (*identity.MemberDTO, error)
	Remove(ctx context.Context, scope shared.TenantScope, userID uuid.UUID) error
}

// MemberHandler serves the member settings screen
type MemberHandler struct {
	BaseHandler
	memberService MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List returns the tenant's members with their grants
func (h *MemberHandler) List(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	members, err := h.memberService.ListMembers(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, members)
}

// Provision creates an account, or attaches an existing one, as a member
func (h *MemberHandler) Provision(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	var req identity.ProvisionUserInput
	if !h.bindJSON(c, &req) {
		return
	}
	member, err := h.memberService.Provision(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, member)
}

// SetPermissions replaces a member's grants
func (h *MemberHandler) SetPermissions(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	var req identity.SetPermissionsInput
	if !h.bindJSON(c, &req) {
		return
	}
	member, err := h.memberService.SetPermissions(c.Request.Context(), scope, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// Remove deletes a membership
func (h *MemberHandler) Remove(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	if err := h.memberService.Remove(c.Request.Context(), scope, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
