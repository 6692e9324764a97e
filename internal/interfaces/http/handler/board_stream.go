package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grafica/backend/internal/infrastructure/logger"
	"github.com/grafica/backend/internal/infrastructure/realtime"
	"go.uber.org/zap"
)

// BoardStreamer upgrades a request into a tenant-scoped board subscription
type BoardStreamer interface {
	Serve(w http.ResponseWriter, r *http.Request, tenantID, userID uuid.UUID) error
}

// BoardStreamHandler pushes production and service order changes over websocket
type BoardStreamHandler struct {
	BaseHandler
	streamer BoardStreamer
}

// NewBoardStreamHandler creates a new BoardStreamHandler
func NewBoardStreamHandler(streamer BoardStreamer) *BoardStreamHandler {
	return &BoardStreamHandler{streamer: streamer}
}

// Stream handles GET /ws/board
func (h *BoardStreamHandler) Stream(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	// The connection is hijacked before any failure is reported, so errors can
	// only be logged.
	if err := h.streamer.Serve(c.Writer, c.Request, scope.TenantID(), scope.UserID()); err != nil {
		log := logger.FromContext(c.Request.Context())
		if errors.Is(err, realtime.ErrHubStopped) {
			log.Info("Board stream rejected during shutdown")
			return
		}
		log.Debug("Board stream upgrade failed", zap.Error(err))
	}
}
