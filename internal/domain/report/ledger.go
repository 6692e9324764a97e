package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeriesMonths is the length of the rolling revenue/expense series
const SeriesMonths = 6

// RecentActivityLimit is the size of the merged activity feed
const RecentActivityLimit = 10

// MonthTotals is revenue and expense booked within one calendar month
type MonthTotals struct {
	Month   string          `json:"month"` // YYYY-MM
	Revenue decimal.Decimal `json:"revenue"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// ActivityKind tells which ledger an activity entry comes from
type ActivityKind string

const (
	ActivityReceivable ActivityKind = "receivable"
	ActivityPayable    ActivityKind = "payable"
)

// Activity is one line of the recent-activity feed
type Activity struct {
	Kind        ActivityKind    `json:"kind"`
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	DueDate     time.Time       `json:"due_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LowStockItem is a product at or below its minimum
type LowStockItem struct {
	ProductID       uuid.UUID       `json:"product_id"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	Quantity        decimal.Decimal `json:"quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
}

// Workload counts open work across the boards
type Workload struct {
	ServiceOrdersByStatus map[string]int64 `json:"service_orders_by_status"`
	OverdueServiceOrders  int64            `json:"overdue_service_orders"`
	ProductionByStage     map[string]int64 `json:"production_by_stage"`
	QuotesAwaitingAnswer  int64            `json:"quotes_awaiting_answer"`
}

// Dashboard is the read-only ledger summary for one tenant
type Dashboard struct {
	Month             string          `json:"month"`
	Revenue           decimal.Decimal `json:"revenue"`
	Expense           decimal.Decimal `json:"expense"`
	Net               decimal.Decimal `json:"net"`
	PendingReceivable decimal.Decimal `json:"pending_receivable"`
	PendingPayable    decimal.Decimal `json:"pending_payable"`
	Series            []MonthTotals   `json:"series"`
	LowStock          []LowStockItem  `json:"low_stock"`
	RecentActivity    []Activity      `json:"recent_activity"`
	Workload          Workload        `json:"workload"`
}

// LedgerReader is the read side the aggregator needs from the store.
// Ranges are half-open: from <= t < to.
type LedgerReader interface {
	// SumReceived totals received receivables by received date
	SumReceived(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	// SumPaid totals paid payables by paid date
	SumPaid(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	// ReceivedByMonth groups received totals by YYYY-MM in one query
	ReceivedByMonth(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error)
	// PaidByMonth groups paid totals by YYYY-MM in one query
	PaidByMonth(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (map[string]decimal.Decimal, error)
	// PendingTotals sums pending receivables and payables regardless of date
	PendingTotals(ctx context.Context, tenantID uuid.UUID) (receivable, payable decimal.Decimal, err error)
	// LowStock lists products with quantity <= minimum_quantity
	LowStock(ctx context.Context, tenantID uuid.UUID) ([]LowStockItem, error)
	// RecentReceivables and RecentPayables return the newest n entries by creation time
	RecentReceivables(ctx context.Context, tenantID uuid.UUID, n int) ([]Activity, error)
	RecentPayables(ctx context.Context, tenantID uuid.UUID, n int) ([]Activity, error)
}

// WorkloadReader counts open work for the dashboard
type WorkloadReader interface {
	Workload(ctx context.Context, tenantID uuid.UUID, today time.Time) (Workload, error)
}

// MonthStart returns midnight on the first day of t's month
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// MonthKey formats a month as YYYY-MM
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// TrailingMonths returns the first instant of each of the last n months,
// oldest first, ending with now's month
func TrailingMonths(now time.Time, n int) []time.Time {
	start := MonthStart(now)
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = start.AddDate(0, i-n+1, 0)
	}
	return out
}

// MergeActivity merges two feeds newest first and keeps at most limit entries
func MergeActivity(a, b []Activity, limit int) []Activity {
	merged := make([]Activity, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
