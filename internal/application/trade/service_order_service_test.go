package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type serviceOrderFixture struct {
	orders    *MockServiceOrderRepository
	clients   *MockPartyRepository
	publisher *MockEventPublisher
	svc       *ServiceOrderService
	scope     shared.TenantScope
	now       time.Time
}

func newServiceOrderFixture() *serviceOrderFixture {
	f := &serviceOrderFixture{
		orders:    new(MockServiceOrderRepository),
		clients:   new(MockPartyRepository),
		publisher: new(MockEventPublisher),
		scope:     shared.MustTenantScope(uuid.New(), uuid.New()),
		now:       time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC),
	}
	f.svc = NewServiceOrderService(f.orders, f.clients, &inlineTxManager{}, zap.NewNop())
	f.svc.SetEventPublisher(f.publisher)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func newOrder(t *testing.T, tenantID uuid.UUID, number int64, expected *time.Time, items ...string) *trade.ServiceOrder {
	t.Helper()
	so, err := trade.NewServiceOrder(tenantID, number, trade.ServiceOrderDetails{Title: "Folders", ExpectedAt: expected})
	require.NoError(t, err)
	for _, d := range items {
		_, err := so.AddChecklistItem(d)
		require.NoError(t, err)
	}
	so.PullDomainEvents()
	return so
}

func TestServiceOrderService_Create(t *testing.T) {
	ctx := context.Background()
	f := newServiceOrderFixture()
	f.orders.On("NextNumber", ctx, f.scope.TenantID()).Return(int64(12), nil)
	f.orders.On("Create", ctx, mock.AnythingOfType("*trade.ServiceOrder")).Return(nil)

	got, err := f.svc.Create(ctx, f.scope, CreateServiceOrderRequest{
		Title:     "Adesivos",
		Checklist: []string{"Arte", "Impressão", "Corte"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12), got.Number)
	assert.Equal(t, "open", got.Status)
	assert.Equal(t, "normal", got.Priority)
	require.Len(t, got.Checklist, 3)
	for i, item := range got.Checklist {
		assert.Equal(t, i, item.Position)
	}
	assert.Zero(t, got.Progress)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestServiceOrderService_Get_Degraded(t *testing.T) {
	ctx := context.Background()

	t.Run("enriched read", func(t *testing.T) {
		f := newServiceOrderFixture()
		so := newOrder(t, f.scope.TenantID(), 1, nil, "Arte")
		so.ClientName = "Padaria Sol"
		f.orders.On("FindByIDForTenant", ctx, f.scope.TenantID(), so.ID).Return(so, nil)

		got, err := f.svc.Get(ctx, f.scope, so.ID)

		require.NoError(t, err)
		assert.False(t, got.Degraded)
		assert.Equal(t, "Padaria Sol", got.ServiceOrder.ClientName)
		assert.Len(t, got.ServiceOrder.Checklist, 1)
	})

	t.Run("falls back to base row", func(t *testing.T) {
		f := newServiceOrderFixture()
		so := newOrder(t, f.scope.TenantID(), 1, nil)
		f.orders.On("FindByIDForTenant", ctx, f.scope.TenantID(), so.ID).Return(nil, shared.NewStoreUnavailableError(errors.New("join failed")))
		f.orders.On("FindBaseByIDForTenant", ctx, f.scope.TenantID(), so.ID).Return(so, nil)

		got, err := f.svc.Get(ctx, f.scope, so.ID)

		require.NoError(t, err)
		assert.True(t, got.Degraded)
		assert.Equal(t, so.ID, got.ServiceOrder.ID)
	})

	t.Run("not found does not fall back", func(t *testing.T) {
		f := newServiceOrderFixture()
		id := uuid.New()
		f.orders.On("FindByIDForTenant", ctx, f.scope.TenantID(), id).Return(nil, shared.NewNotFoundError("Service order"))

		_, err := f.svc.Get(ctx, f.scope, id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.orders.AssertNotCalled(t, "FindBaseByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestServiceOrderService_List(t *testing.T) {
	ctx := context.Background()
	f := newServiceOrderFixture()
	yesterday := f.now.AddDate(0, 0, -1)
	today := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	late := newOrder(t, f.scope.TenantID(), 1, &yesterday)
	dueToday := newOrder(t, f.scope.TenantID(), 2, &today)
	doneLate := newOrder(t, f.scope.TenantID(), 3, &yesterday)
	require.NoError(t, doneLate.SetStatus(trade.ServiceOrderStatusDone, f.now))
	noDate := newOrder(t, f.scope.TenantID(), 4, nil)
	all := []trade.ServiceOrder{*late, *dueToday, *doneLate, *noDate}

	t.Run("overdue filter is derived", func(t *testing.T) {
		f.orders.On("FindAllForTenant", ctx, f.scope.TenantID(), mock.Anything).Return(all, nil).Once()
		overdue := true

		got, err := f.svc.List(ctx, f.scope, ServiceOrderListFilter{Overdue: &overdue})

		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, int64(1), got.Items[0].Number)
		assert.True(t, got.Items[0].Overdue)
	})

	t.Run("degraded list", func(t *testing.T) {
		f.orders.On("FindAllForTenant", ctx, f.scope.TenantID(), mock.Anything).Return(nil, errors.New("timeout")).Once()
		f.orders.On("FindAllBaseForTenant", ctx, f.scope.TenantID(), mock.Anything).Return(all, nil).Once()

		got, err := f.svc.List(ctx, f.scope, ServiceOrderListFilter{})

		require.NoError(t, err)
		assert.True(t, got.Degraded)
		assert.Len(t, got.Items, 4)
	})
}

func TestServiceOrderService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("done stamps completion and publishes", func(t *testing.T) {
		f := newServiceOrderFixture()
		so := newOrder(t, f.scope.TenantID(), 1, nil)
		f.orders.On("FindByIDForTenant", ctx, f.scope.TenantID(), so.ID).Return(so, nil)
		f.orders.On("Save", ctx, so).Return(nil)
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == trade.EventTypeServiceOrderStatusChanged
		})).Return(nil)

		got, err := f.svc.SetStatus(ctx, f.scope, so.ID, SetServiceOrderStatusRequest{Status: "done"})

		require.NoError(t, err)
		assert.Equal(t, "done", got.Status)
		require.NotNil(t, got.CompletedAt)
		assert.Equal(t, f.now, *got.CompletedAt)
		f.publisher.AssertExpectations(t)
	})

	t.Run("version conflict", func(t *testing.T) {
		f := newServiceOrderFixture()
		so := newOrder(t, f.scope.TenantID(), 1, nil)
		f.orders.On("FindByIDForTenant", ctx, f.scope.TenantID(), so.ID).Return(so, nil)
		stale := so.Version + 3

		_, err := f.svc.SetStatus(ctx, f.scope, so.ID, SetServiceOrderStatusRequest{Status: "paused", Version: &stale})

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("matching version saves conditionally", func(t *testing.T) {
		f := newServiceOrderFixture()
		so := newOrder(t, f.scope.TenantID(), 1, nil)
		f.orders.On("FindByIDForTenant", ctx, f.scope.TenantID(), so.ID).Return(so, nil)
		f.orders.On("SaveWithLock", ctx, so).Return(shared.ErrConcurrencyConflict)
		version := so.Version

		_, err := f.svc.SetStatus(ctx, f.scope, so.ID, SetServiceOrderStatusRequest{Status: "paused", Version: &version})

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestServiceOrderService_Checklist(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle resolves the order through the item", func(t *testing.T) {
		f := newServiceOrderFixture()
		so := newOrder(t, f.scope.TenantID(), 1, nil, "Arte", "Impressão")
		item := so.Checklist[1]
		f.orders.On("FindChecklistItem", ctx, f.scope.TenantID(), item.ID).Return(&item, nil)
		f.orders.On("FindByIDForTenant", ctx, f.scope.TenantID(), so.ID).Return(so, nil)
		f.orders.On("UpdateChecklistItem", ctx, f.scope.TenantID(), mock.MatchedBy(func(it *trade.ChecklistItem) bool {
			return it.ID == item.ID && it.Done && it.CompletedAt != nil
		})).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)
		done := true

		got, err := f.svc.ToggleChecklistItem(ctx, f.scope, item.ID, ToggleChecklistItemRequest{Done: &done})

		require.NoError(t, err)
		assert.Equal(t, 0.5, got.Progress)
		assert.True(t, got.Checklist[1].Done)
		assert.Equal(t, f.now, *got.Checklist[1].CompletedAt)
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("repeating the current value writes nothing", func(t *testing.T) {
		f := newServiceOrderFixture()
		so := newOrder(t, f.scope.TenantID(), 1, nil, "Arte")
		item := so.Checklist[0]
		f.orders.On("FindChecklistItem", ctx, f.scope.TenantID(), item.ID).Return(&item, nil)
		f.orders.On("FindByIDForTenant", ctx, f.scope.TenantID(), so.ID).Return(so, nil)
		done := false

		_, err := f.svc.ToggleChecklistItem(ctx, f.scope, item.ID, ToggleChecklistItemRequest{Done: &done})

		require.NoError(t, err)
		f.orders.AssertNotCalled(t, "UpdateChecklistItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("remove re-densifies positions", func(t *testing.T) {
		f := newServiceOrderFixture()
		so := newOrder(t, f.scope.TenantID(), 1, nil, "A", "B", "C")
		first := so.Checklist[0]
		f.orders.On("FindChecklistItem", ctx, f.scope.TenantID(), first.ID).Return(&first, nil)
		f.orders.On("FindByIDForTenant", ctx, f.scope.TenantID(), so.ID).Return(so, nil)
		f.orders.On("RemoveChecklistItem", ctx, f.scope.TenantID(), so.ID, first.ID).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		got, err := f.svc.RemoveChecklistItem(ctx, f.scope, first.ID)

		require.NoError(t, err)
		require.Len(t, got.Checklist, 2)
		assert.Equal(t, "B", got.Checklist[0].Description)
		assert.Equal(t, 0, got.Checklist[0].Position)
		assert.Equal(t, 1, got.Checklist[1].Position)
	})

	t.Run("add appends at the end", func(t *testing.T) {
		f := newServiceOrderFixture()
		so := newOrder(t, f.scope.TenantID(), 1, nil, "A")
		f.orders.On("FindByIDForTenant", ctx, f.scope.TenantID(), so.ID).Return(so, nil)
		f.orders.On("AddChecklistItem", ctx, f.scope.TenantID(), mock.AnythingOfType("*trade.ChecklistItem")).
			Run(func(args mock.Arguments) {
				args.Get(2).(*trade.ChecklistItem).Position = 1
			}).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		got, err := f.svc.AddChecklistItem(ctx, f.scope, so.ID, AddChecklistItemRequest{Description: "Entrega"})

		require.NoError(t, err)
		require.Len(t, got.Checklist, 2)
		assert.Equal(t, "Entrega", got.Checklist[1].Description)
		assert.Equal(t, 1, got.Checklist[1].Position)
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("reorder writes the new positions", func(t *testing.T) {
		f := newServiceOrderFixture()
		so := newOrder(t, f.scope.TenantID(), 1, nil, "A", "B")
		order := []uuid.UUID{so.Checklist[1].ID, so.Checklist[0].ID}
		f.orders.On("FindByIDForTenant", ctx, f.scope.TenantID(), so.ID).Return(so, nil)
		f.orders.On("ReorderChecklist", ctx, f.scope.TenantID(), so.ID, order).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		got, err := f.svc.ReorderChecklist(ctx, f.scope, so.ID, ReorderChecklistRequest{ItemIDs: order})

		require.NoError(t, err)
		assert.Equal(t, "B", got.Checklist[0].Description)
		f.orders.AssertExpectations(t)
	})

	t.Run("reorder must name every item", func(t *testing.T) {
		f := newServiceOrderFixture()
		so := newOrder(t, f.scope.TenantID(), 1, nil, "A", "B")
		f.orders.On("FindByIDForTenant", ctx, f.scope.TenantID(), so.ID).Return(so, nil)

		_, err := f.svc.ReorderChecklist(ctx, f.scope, so.ID, ReorderChecklistRequest{ItemIDs: []uuid.UUID{so.Checklist[1].ID}})

		assert.ErrorIs(t, err, shared.ErrValidationFailed)
	})
}
