package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	identityapp "github.com/grafica/backend/internal/application/identity"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// PrincipalKey holds the caller's role and grants in the active tenant
const PrincipalKey = "principal"

// AccessGate loads principals and evaluates the module gate
type AccessGate interface {
	Principal(ctx context.Context, scope shared.TenantScope) (*identity.Principal, error)
	Check(principal *identity.Principal, path string) identityapp.AccessDecisionDTO
}

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	Gate   AccessGate
	Logger *zap.Logger
}

// RequireModule guards an API group with the gate decision for the client
// route that owns it, e.g. "/orcamentos" for the quote endpoints. Must run
// after TenantMiddleware.
func RequireModule(cfg PermissionConfig, modulePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := GetTenantScope(c)
		if !ok {
			abortWithDomainError(c, shared.ErrNotAuthenticated)
			return
		}

		principal, err := cfg.Gate.Principal(c.Request.Context(), scope)
		if err != nil {
			abortWithDomainError(c, err)
			return
		}

		decision := cfg.Gate.Check(principal, modulePath)
		if !decision.Allowed {
			if cfg.Logger != nil {
				cfg.Logger.Debug("Module access denied",
					zap.String("user_id", scope.UserID().String()),
					zap.String("tenant_id", scope.TenantID().String()),
					zap.String("module", modulePath),
					zap.String("decision", decision.Decision),
				)
			}
			abortDenied(c, decision)
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// GetPrincipal returns the principal loaded by RequireModule
func GetPrincipal(c *gin.Context) *identity.Principal {
	if v, exists := c.Get(PrincipalKey); exists {
		if p, ok := v.(*identity.Principal); ok {
			return p
		}
	}
	return nil
}

func abortDenied(c *gin.Context, decision identityapp.AccessDecisionDTO) {
	if decision.Decision == string(identity.DecisionRedirectLogin) {
		abortWithDomainError(c, shared.ErrNotAuthenticated)
		return
	}

	resp := dto.NewErrorResponseWithRequestID(shared.CodeForbidden, "You do not have access to this module", requestID(c))
	resp.Error.Restricted = decision.Restricted
	switch {
	case decision.RedirectTo != "":
		resp.Error.RedirectTo = decision.RedirectTo
	case !decision.Restricted:
		resp.Error.RedirectTo = "/"
	}
	abortWithError(c, http.StatusForbidden, resp)
}
