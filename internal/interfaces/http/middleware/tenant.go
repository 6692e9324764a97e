package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/logger"
	"github.com/grafica/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	TenantScopeKey  = "tenant_scope"
	TenantHeaderKey = "X-Tenant-ID"
)

// ScopeResolver turns the caller and an optional requested tenant into a
// verified tenant scope
type ScopeResolver interface {
	ResolveScope(ctx context.Context, userID, requested uuid.UUID) (shared.TenantScope, error)
}

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	Resolver ScopeResolver
	Logger   *zap.Logger
}

// TenantMiddleware resolves the active tenant for an authenticated request.
// X-Tenant-ID wins over the persisted selection but must name one of the
// caller's memberships. Must run after JWTAuthMiddleware.
func TenantMiddleware(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetJWTUserID(c)
		if userID == uuid.Nil {
			abortWithDomainError(c, shared.ErrNotAuthenticated)
			return
		}

		requested := uuid.Nil
		if header := c.GetHeader(TenantHeaderKey); header != "" {
			id, err := uuid.Parse(header)
			if err != nil {
				abortWithDomainError(c, shared.NewValidationError("Invalid tenant ID format"))
				return
			}
			requested = id
		}

		scope, err := cfg.Resolver.ResolveScope(c.Request.Context(), userID, requested)
		if err != nil {
			if cfg.Logger != nil && !errors.Is(err, shared.ErrPreconditionFailed) {
				cfg.Logger.Warn("Tenant resolution failed",
					zap.String("user_id", userID.String()),
					zap.String("requested_tenant", requested.String()),
					zap.Error(err),
				)
			}
			abortWithDomainError(c, err)
			return
		}

		c.Set(TenantScopeKey, scope)
		c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), scope.TenantID().String()))
		c.Next()
	}
}

// GetTenantScope returns the scope resolved by TenantMiddleware
func GetTenantScope(c *gin.Context) (shared.TenantScope, bool) {
	if v, exists := c.Get(TenantScopeKey); exists {
		if scope, ok := v.(shared.TenantScope); ok && !scope.IsZero() {
			return scope, true
		}
	}
	return shared.TenantScope{}, false
}

func abortWithDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		abortWithError(c, http.StatusInternalServerError,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An unexpected error occurred", requestID(c)))
		return
	}
	abortWithError(c, dto.GetHTTPStatus(domainErr.Code),
		dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, requestID(c)))
}
