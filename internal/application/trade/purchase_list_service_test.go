package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPurchaseListFixture() (*PurchaseListService, *MockPurchaseListRepository, *MockServiceOrderRepository, shared.TenantScope) {
	lists := new(MockPurchaseListRepository)
	orders := new(MockServiceOrderRepository)
	svc := NewPurchaseListService(lists, orders, zap.NewNop())
	return svc, lists, orders, shared.MustTenantScope(uuid.New(), uuid.New())
}

func TestPurchaseListService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("service order must belong to the tenant", func(t *testing.T) {
		svc, lists, orders, scope := newPurchaseListFixture()
		foreign := uuid.New()
		orders.On("FindBaseByIDForTenant", ctx, scope.TenantID(), foreign).Return(nil, shared.NewNotFoundError("Service order"))

		_, err := svc.Create(ctx, scope, CreatePurchaseListRequest{ServiceOrderID: &foreign})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		lists.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("default title", func(t *testing.T) {
		svc, lists, _, scope := newPurchaseListFixture()
		lists.On("Save", ctx, mock.AnythingOfType("*trade.PurchaseList")).Return(nil)

		got, err := svc.Create(ctx, scope, CreatePurchaseListRequest{})

		require.NoError(t, err)
		assert.Equal(t, "Lista de compras", got.Title)
		assert.Equal(t, "pending", got.Status)
	})
}

func TestPurchaseListService_Items(t *testing.T) {
	ctx := context.Background()
	svc, lists, _, scope := newPurchaseListFixture()
	publisher := new(MockEventPublisher)
	svc.SetEventPublisher(publisher)

	list := trade.NewPurchaseList(scope.TenantID(), nil, "Papel")
	lists.On("FindByIDForTenant", ctx, scope.TenantID(), list.ID).Return(list, nil)
	lists.On("Save", ctx, list).Return(nil)

	got, err := svc.AddItem(ctx, scope, list.ID, AddPurchaseItemRequest{Description: "Couché 150g"})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, decimal.NewFromInt(1).Equal(got.Items[0].Quantity))

	item := list.Items[0]
	lists.On("FindItem", ctx, scope.TenantID(), item.ID).Return(&item, nil)
	publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == trade.EventTypePurchaseItemStatusChanged
	})).Return(nil)

	// any status may follow any other
	for _, status := range []string{"delivered", "incomplete", "pending", "purchased"} {
		got, err = svc.SetItemStatus(ctx, scope, item.ID, SetPurchaseStatusRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, got.Items[0].Status)
	}
	assert.Equal(t, "pending", got.Status, "list status is never derived from items")

	got, err = svc.SetStatus(ctx, scope, list.ID, SetPurchaseStatusRequest{Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, "delivered", got.Status)

	got, err = svc.DeleteItem(ctx, scope, item.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestPurchaseListService_SetItemStatus_Invalid(t *testing.T) {
	ctx := context.Background()
	svc, lists, _, scope := newPurchaseListFixture()
	list := trade.NewPurchaseList(scope.TenantID(), nil, "")
	item, err := list.AddItem("Tinta", decimal.NewFromInt(2))
	require.NoError(t, err)
	lists.On("FindItem", ctx, scope.TenantID(), item.ID).Return(item, nil)
	lists.On("FindByIDForTenant", ctx, scope.TenantID(), list.ID).Return(list, nil)

	_, err = svc.SetItemStatus(ctx, scope, item.ID, SetPurchaseStatusRequest{Status: "lost"})

	assert.ErrorIs(t, err, shared.ErrValidationFailed)
	lists.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
