package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/report"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerService assembles the read-only dashboard from the ledgers, the
// product catalog and the boards
type LedgerService struct {
	ledger   report.LedgerReader
	workload report.WorkloadReader
	logger   *zap.Logger
	now      func() time.Time
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledger report.LedgerReader, workload report.WorkloadReader, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		ledger:   ledger,
		workload: workload,
		logger:   logger,
		now:      time.Now,
	}
}

// Dashboard returns the tenant's summary for the current month
func (s *LedgerService) Dashboard(ctx context.Context, scope shared.TenantScope) (*report.Dashboard, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "dashboard",
		"tenant.id", scope.TenantID().String(),
	)
	defer span.End()

	dashboard, err := s.build(ctx, scope.TenantID(), s.now())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return dashboard, nil
}

func (s *LedgerService) build(ctx context.Context, tenantID uuid.UUID, now time.Time) (*report.Dashboard, error) {
	monthStart := report.MonthStart(now)
	monthEnd := monthStart.AddDate(0, 1, 0)

	revenue, err := s.ledger.SumReceived(ctx, tenantID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	expense, err := s.ledger.SumPaid(ctx, tenantID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	pendingReceivable, pendingPayable, err := s.ledger.PendingTotals(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	series, err := s.series(ctx, tenantID, now)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.ledger.LowStock(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	recent, err := s.recentActivity(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	workload, err := s.workload.Workload(ctx, tenantID, now)
	if err != nil {
		return nil, err
	}

	if lowStock == nil {
		lowStock = []report.LowStockItem{}
	}
	return &report.Dashboard{
		Month:             report.MonthKey(monthStart),
		Revenue:           revenue,
		Expense:           expense,
		Net:               revenue.Sub(expense),
		PendingReceivable: pendingReceivable,
		PendingPayable:    pendingPayable,
		Series:            series,
		LowStock:          lowStock,
		RecentActivity:    recent,
		Workload:          workload,
	}, nil
}

// series builds the trailing months from one grouped query per ledger. When
// grouping fails it falls back to one range query per month.
func (s *LedgerService) series(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]report.MonthTotals, error) {
	months := report.TrailingMonths(now, report.SeriesMonths)
	from := months[0]
	to := months[len(months)-1].AddDate(0, 1, 0)

	received, errReceived := s.ledger.ReceivedByMonth(ctx, tenantID, from, to)
	paid, errPaid := s.ledger.PaidByMonth(ctx, tenantID, from, to)
	if errReceived == nil && errPaid == nil {
		out := make([]report.MonthTotals, len(months))
		for i, m := range months {
			key := report.MonthKey(m)
			out[i] = monthTotals(key, received[key], paid[key])
		}
		return out, nil
	}

	cause := errReceived
	if cause == nil {
		cause = errPaid
	}
	s.logger.Warn("Grouped ledger series failed, querying month by month",
		zap.String("tenant_id", tenantID.String()),
		zap.Error(cause),
	)

	out := make([]report.MonthTotals, len(months))
	for i, m := range months {
		end := m.AddDate(0, 1, 0)
		rev, err := s.ledger.SumReceived(ctx, tenantID, m, end)
		if err != nil {
			return nil, err
		}
		exp, err := s.ledger.SumPaid(ctx, tenantID, m, end)
		if err != nil {
			return nil, err
		}
		out[i] = monthTotals(report.MonthKey(m), rev, exp)
	}
	return out, nil
}

func (s *LedgerService) recentActivity(ctx context.Context, tenantID uuid.UUID) ([]report.Activity, error) {
	receivables, err := s.ledger.RecentReceivables(ctx, tenantID, report.RecentActivityLimit)
	if err != nil {
		return nil, err
	}
	payables, err := s.ledger.RecentPayables(ctx, tenantID, report.RecentActivityLimit)
	if err != nil {
		return nil, err
	}
	return report.MergeActivity(receivables, payables, report.RecentActivityLimit), nil
}

// monthTotals treats a month missing from the grouped result as zero
func monthTotals(key string, revenue, expense decimal.Decimal) report.MonthTotals {
	return report.MonthTotals{
		Month:   key,
		Revenue: revenue,
		Expense: expense,
		Net:     revenue.Sub(expense),
	}
}
