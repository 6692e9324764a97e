package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/grafica/backend/internal/domain/report"
	"github.com/grafica/backend/internal/domain/shared"
)

// LedgerService builds the dashboard aggregates
type LedgerService interface {
	Dashboard(ctx context.Context, scope shared.TenantScope) (*report.Dashboard, error)
}

// ReportHandler serves the dashboard
type ReportHandler struct {
	BaseHandler
	ledgerService LedgerService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(ledgerService LedgerService) *ReportHandler {
	return &ReportHandler{ledgerService: ledgerService}
}

// Dashboard returns the current month's totals, the six month series, low
// stock, recent activity and workload counts
func (h *ReportHandler) Dashboard(c *gin.Context) {
	scope, ok := h.scope(c)
	if !ok {
		return
	}
	dashboard, err := h.ledgerService.Dashboard(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}
