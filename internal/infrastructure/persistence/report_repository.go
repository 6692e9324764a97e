package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/finance"
	"github.com/grafica/backend/internal/domain/production"
	"github.com/grafica/backend/internal/domain/report"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements report.LedgerReader and
// report.WorkloadReader with aggregate queries
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

type totalRow struct {
	Total decimal.Decimal
}

type monthRow struct {
	Month string
	Total decimal.Decimal
}

// monthBuckets renders a CASE labelling column with the YYYY-MM of the month
// it falls in. The boundaries are computed from from's location, the same
// instants the monthly range sums use, so a row near midnight lands in the
// same month in both. from must be the first instant of a month.
func monthBuckets(column string, from, to time.Time) (string, []any) {
	var b strings.Builder
	var args []any
	b.WriteString("CASE")
	for start := from; start.Before(to); {
		end := start.AddDate(0, 1, 0)
		b.WriteString(" WHEN " + column + " < ? THEN ?")
		args = append(args, end, report.MonthKey(start))
		start = end
	}
	b.WriteString(" END")
	return b.String(), args
}

func (r *GormReportRepository) sum(ctx context.Context, model any, dateColumn, status string, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var row totalRow
	err := getDB(ctx, r.db).Model(model).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Where(dateColumn+" >= ? AND "+dateColumn+" < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, shared.AsStoreError(err)
	}
	return row.Total, nil
}

func (r *GormReportRepository) byMonth(ctx context.Context, model any, dateColumn, status string, tenantID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	var rows []monthRow
	month, args := monthBuckets(dateColumn, from, to)
	err := getDB(ctx, r.db).Model(model).
		Select(month+" AS month, COALESCE(SUM(amount), 0) AS total", args...).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Where(dateColumn+" >= ? AND "+dateColumn+" < ?", from, to).
		Group("month").
		Scan(&rows).Error
	if err != nil {
		return nil, shared.AsStoreError(err)
	}
	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Month] = row.Total
	}
	return totals, nil
}

// SumReceived totals received receivables by received date
func (r *GormReportRepository) SumReceived(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx, &models.ReceivableModel{}, "received_at", string(finance.ReceivableStatusReceived), tenantID, from, to)
}

// SumPaid totals paid payables by paid date
func (r *GormReportRepository) SumPaid(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx, &models.PayableModel{}, "paid_at", string(finance.PayableStatusPaid), tenantID, from, to)
}

// ReceivedByMonth groups received totals by YYYY-MM
func (r *GormReportRepository) ReceivedByMonth(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	return r.byMonth(ctx, &models.ReceivableModel{}, "received_at", string(finance.ReceivableStatusReceived), tenantID, from, to)
}

// PaidByMonth groups paid totals by YYYY-MM
func (r *GormReportRepository) PaidByMonth(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error) {
	return r.byMonth(ctx, &models.PayableModel{}, "paid_at", string(finance.PayableStatusPaid), tenantID, from, to)
}

// PendingTotals sums pending receivables and payables regardless of date
func (r *GormReportRepository) PendingTotals(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	var recv, pay totalRow
	db := getDB(ctx, r.db)
	if err := db.Model(&models.ReceivableModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("tenant_id = ? AND status = ?", tenantID, finance.ReceivableStatusPending).
		Scan(&recv).Error; err != nil {
		return decimal.Zero, decimal.Zero, shared.AsStoreError(err)
	}
	if err := db.Model(&models.PayableModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("tenant_id = ? AND status = ?", tenantID, finance.PayableStatusPending).
		Scan(&pay).Error; err != nil {
		return decimal.Zero, decimal.Zero, shared.AsStoreError(err)
	}
	return recv.Total, pay.Total, nil
}

// LowStock lists products with quantity <= minimum_quantity
func (r *GormReportRepository) LowStock(ctx context.Context, tenantID uuid.UUID) ([]report.LowStockItem, error) {
	var rows []models.ProductModel
	err := getDB(ctx, r.db).
		Where("tenant_id = ? AND quantity <= minimum_quantity", tenantID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, shared.AsStoreError(err)
	}
	items := make([]report.LowStockItem, len(rows))
	for i, row := range rows {
		items[i] = report.LowStockItem{
			ProductID:       row.ID,
			Name:            row.Name,
			Unit:            row.Unit,
			Quantity:        row.Quantity,
			MinimumQuantity: row.MinimumQuantity,
		}
	}
	return items, nil
}

// RecentReceivables returns the newest n receivables by creation time
func (r *GormReportRepository) RecentReceivables(ctx context.Context, tenantID uuid.UUID, n int) ([]report.Activity, error) {
	var rows []models.ReceivableModel
	err := getDB(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(n).
		Find(&rows).Error
	if err != nil {
		return nil, shared.AsStoreError(err)
	}
	out := make([]report.Activity, len(rows))
	for i, row := range rows {
		out[i] = report.Activity{
			Kind:        report.ActivityReceivable,
			ID:          row.ID,
			Description: row.Description,
			Amount:      row.Amount,
			Status:      string(row.Status),
			DueDate:     row.DueDate,
			CreatedAt:   row.CreatedAt,
		}
	}
	return out, nil
}

// RecentPayables returns the newest n payables by creation time
func (r *GormReportRepository) RecentPayables(ctx context.Context, tenantID uuid.UUID, n int) ([]report.Activity, error) {
	var rows []models.PayableModel
	err := getDB(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(n).
		Find(&rows).Error
	if err != nil {
		return nil, shared.AsStoreError(err)
	}
	out := make([]report.Activity, len(rows))
	for i, row := range rows {
		out[i] = report.Activity{
			Kind:        report.ActivityPayable,
			ID:          row.ID,
			Description: row.Description,
			Amount:      row.Amount,
			Status:      string(row.Status),
			DueDate:     row.DueDate,
			CreatedAt:   row.CreatedAt,
		}
	}
	return out, nil
}

// Workload counts open work across the boards. today is truncated to its
// date before comparing expected dates.
func (r *GormReportRepository) Workload(ctx context.Context, tenantID uuid.UUID, today time.Time) (report.Workload, error) {
	db := getDB(ctx, r.db)
	w := report.Workload{
		ServiceOrdersByStatus: make(map[string]int64),
		ProductionByStage:     make(map[string]int64),
	}

	var byStatus []statusCount
	if err := db.Model(&models.ServiceOrderModel{}).
		Select("status, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return w, shared.AsStoreError(err)
	}
	for _, row := range byStatus {
		w.ServiceOrdersByStatus[row.Status] = row.Count
	}

	y, m, d := today.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	if err := db.Model(&models.ServiceOrderModel{}).
		Where("tenant_id = ? AND expected_at IS NOT NULL AND expected_at < ?", tenantID, startOfDay).
		Where("status NOT IN ?", []trade.ServiceOrderStatus{trade.ServiceOrderStatusDone, trade.ServiceOrderStatusCancelled}).
		Count(&w.OverdueServiceOrders).Error; err != nil {
		return w, shared.AsStoreError(err)
	}

	var byStage []statusCount
	if err := db.Model(&models.ProductionOrderModel{}).
		Select("status, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&byStage).Error; err != nil {
		return w, shared.AsStoreError(err)
	}
	for _, stage := range production.Pipeline {
		w.ProductionByStage[string(stage)] = 0
	}
	for _, row := range byStage {
		w.ProductionByStage[row.Status] = row.Count
	}

	if err := db.Model(&models.QuoteModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, trade.QuoteStatusSent).
		Count(&w.QuotesAwaitingAnswer).Error; err != nil {
		return w, shared.AsStoreError(err)
	}
	return w, nil
}
