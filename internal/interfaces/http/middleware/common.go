package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/grafica/backend/internal/infrastructure/config"
	"github.com/grafica/backend/internal/infrastructure/logger"
	"github.com/grafica/backend/internal/interfaces/http/dto"
)

// CORS builds the cross-origin policy from HTTP config. An empty origin list
// rejects every cross-origin request.
func CORS(cfg config.HTTPConfig) gin.HandlerFunc {
	methods := cfg.CORSAllowMethods
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	headers := cfg.CORSAllowHeaders
	if len(headers) == 0 {
		headers = []string{"Content-Type", "Authorization", logger.RequestIDHeader, TenantHeaderKey, "Accept", "Origin"}
	}

	corsCfg := cors.Config{
		AllowMethods:     methods,
		AllowHeaders:     headers,
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range cfg.CORSAllowOrigins {
		if o == "*" {
			corsCfg.AllowAllOrigins = true
			corsCfg.AllowCredentials = false
			break
		}
	}
	if !corsCfg.AllowAllOrigins {
		allowed := make(map[string]bool, len(cfg.CORSAllowOrigins))
		for _, o := range cfg.CORSAllowOrigins {
			allowed[o] = true
		}
		corsCfg.AllowOriginFunc = func(origin string) bool { return allowed[origin] }
	}
	return cors.New(corsCfg)
}

// Secure adds the baseline security headers
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), geolocation=(), microphone=(), payment=()")
		c.Next()
	}
}

// requestID returns the id assigned by logger.GinMiddleware
func requestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader(logger.RequestIDHeader)
}

func abortWithError(c *gin.Context, status int, body dto.Response) {
	c.AbortWithStatusJSON(status, body)
}
