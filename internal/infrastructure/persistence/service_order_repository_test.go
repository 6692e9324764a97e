package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceOrder(t *testing.T, tenantID uuid.UUID, number int64, title string, checklist ...string) *trade.ServiceOrder {
	t.Helper()
	so, err := trade.NewServiceOrder(tenantID, number, trade.ServiceOrderDetails{Title: title, Priority: trade.PriorityNormal})
	require.NoError(t, err)
	for _, c := range checklist {
		_, err := so.AddChecklistItem(c)
		require.NoError(t, err)
	}
	return so
}

func TestGormServiceOrderRepository_Checklist(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormServiceOrderRepository(db)
	tenantID := uuid.New()

	so := newServiceOrder(t, tenantID, 1, "Banner fachada", "Arte", "Impressão", "Instalação")
	require.NoError(t, repo.Create(ctx, so))

	found, err := repo.FindByIDForTenant(ctx, tenantID, so.ID)
	require.NoError(t, err)
	require.Len(t, found.Checklist, 3)
	assert.Equal(t, "Arte", found.Checklist[0].Description)
	assert.Equal(t, 2, found.Checklist[2].Position)

	t.Run("FindChecklistItem locates the order", func(t *testing.T) {
		item, err := repo.FindChecklistItem(ctx, tenantID, found.Checklist[1].ID)
		require.NoError(t, err)
		assert.Equal(t, so.ID, item.ServiceOrderID)

		_, err = repo.FindChecklistItem(ctx, uuid.New(), found.Checklist[1].ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("toggle writes a single item", func(t *testing.T) {
		now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
		changed, err := found.ToggleChecklistItem(found.Checklist[0].ID, true, now)
		require.NoError(t, err)
		require.True(t, changed)
		require.NoError(t, repo.UpdateChecklistItem(ctx, tenantID, found.ChecklistItem(found.Checklist[0].ID)))

		reloaded, err := repo.FindByIDForTenant(ctx, tenantID, so.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.Checklist[0].Done)
		require.NotNil(t, reloaded.Checklist[0].CompletedAt)
		assert.False(t, reloaded.Checklist[1].Done)
	})

	t.Run("remove closes the position gap", func(t *testing.T) {
		require.NoError(t, repo.RemoveChecklistItem(ctx, tenantID, so.ID, found.Checklist[1].ID))

		reloaded, err := repo.FindByIDForTenant(ctx, tenantID, so.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.Checklist, 2)
		assert.Equal(t, "Instalação", reloaded.Checklist[1].Description)
		assert.Equal(t, 1, reloaded.Checklist[1].Position)

		err = repo.RemoveChecklistItem(ctx, tenantID, so.ID, found.Checklist[1].ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("add appends after the stored items", func(t *testing.T) {
		// the caller's snapshot still holds three items
		item := &trade.ChecklistItem{ID: uuid.New(), ServiceOrderID: so.ID, Position: 3, Description: "Entrega", CreatedAt: time.Now()}
		require.NoError(t, repo.AddChecklistItem(ctx, tenantID, item))
		assert.Equal(t, 2, item.Position)

		err := repo.AddChecklistItem(ctx, uuid.New(), &trade.ChecklistItem{ID: uuid.New(), ServiceOrderID: so.ID, Description: "x"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("reorder rewrites positions", func(t *testing.T) {
		current, err := repo.FindByIDForTenant(ctx, tenantID, so.ID)
		require.NoError(t, err)
		require.Len(t, current.Checklist, 3)
		ids := []uuid.UUID{current.Checklist[2].ID, current.Checklist[0].ID, current.Checklist[1].ID}

		err = repo.ReorderChecklist(ctx, tenantID, so.ID, ids[:2])
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
		err = repo.ReorderChecklist(ctx, tenantID, so.ID, []uuid.UUID{ids[0], ids[0], ids[1]})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)

		require.NoError(t, repo.ReorderChecklist(ctx, tenantID, so.ID, ids))
		reloaded, err := repo.FindByIDForTenant(ctx, tenantID, so.ID)
		require.NoError(t, err)
		for i, id := range ids {
			assert.Equal(t, id, reloaded.Checklist[i].ID)
			assert.Equal(t, i, reloaded.Checklist[i].Position)
		}
	})

	t.Run("base read skips the checklist", func(t *testing.T) {
		base, err := repo.FindBaseByIDForTenant(ctx, tenantID, so.ID)
		require.NoError(t, err)
		assert.Empty(t, base.Checklist)
		assert.Equal(t, "Banner fachada", base.Title)
	})
}

func TestGormServiceOrderRepository_SaveLeavesChecklistAlone(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormServiceOrderRepository(db)
	tenantID := uuid.New()

	so := newServiceOrder(t, tenantID, 1, "Folders", "Arte")
	require.NoError(t, repo.Create(ctx, so))

	stale, err := repo.FindByIDForTenant(ctx, tenantID, so.ID)
	require.NoError(t, err)

	// another caller adds and completes items after the snapshot was taken
	fresh, err := repo.FindByIDForTenant(ctx, tenantID, so.ID)
	require.NoError(t, err)
	added, err := fresh.AddChecklistItem("Impressão")
	require.NoError(t, err)
	require.NoError(t, repo.AddChecklistItem(ctx, tenantID, added))
	_, err = fresh.ToggleChecklistItem(fresh.Checklist[0].ID, true, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.UpdateChecklistItem(ctx, tenantID, &fresh.Checklist[0]))

	require.NoError(t, stale.SetStatus(trade.ServiceOrderStatusInProgress, time.Now()))
	stale.IncrementVersion()
	require.NoError(t, repo.Save(ctx, stale))

	reloaded, err := repo.FindByIDForTenant(ctx, tenantID, so.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.ServiceOrderStatusInProgress, reloaded.Status)
	require.Len(t, reloaded.Checklist, 2)
	assert.True(t, reloaded.Checklist[0].Done)
	assert.Equal(t, "Impressão", reloaded.Checklist[1].Description)
	assert.Equal(t, 1, reloaded.Checklist[1].Position)
}

func TestGormServiceOrderRepository_QueriesAndCounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormServiceOrderRepository(db)
	tenantID := uuid.New()
	quoteID := uuid.New()

	open := newServiceOrder(t, tenantID, 1, "Cardápios")
	open.QuoteID = &quoteID
	require.NoError(t, repo.Save(ctx, open))

	done := newServiceOrder(t, tenantID, 2, "Placas")
	require.NoError(t, done.SetStatus(trade.ServiceOrderStatusInProgress, time.Now()))
	require.NoError(t, done.SetStatus(trade.ServiceOrderStatusDone, time.Now()))
	require.NoError(t, repo.Save(ctx, done))

	exists, err := repo.ExistsForQuote(ctx, tenantID, quoteID)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsForQuote(ctx, uuid.New(), quoteID)
	require.NoError(t, err)
	assert.False(t, exists)

	counts, err := repo.CountByStatus(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[trade.ServiceOrderStatusOpen])
	assert.Equal(t, int64(1), counts[trade.ServiceOrderStatusDone])

	filter := trade.ServiceOrderFilter{Filter: shared.DefaultFilter(), Status: trade.ServiceOrderStatusOpen}
	orders, err := repo.FindAllForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, open.ID, orders[0].ID)

	filter = trade.ServiceOrderFilter{Filter: shared.DefaultFilter()}
	filter.Search = "plac"
	orders, err = repo.FindAllBaseForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, done.ID, orders[0].ID)
}

func TestGormServiceOrderRepository_DeleteUnlinksPurchaseLists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	orders := NewGormServiceOrderRepository(db)
	lists := NewGormPurchaseListRepository(db)
	tenantID := uuid.New()

	so := newServiceOrder(t, tenantID, 1, "Convites", "Papel")
	require.NoError(t, orders.Create(ctx, so))
	list := trade.NewPurchaseList(tenantID, &so.ID, "Materiais")
	_, err := list.AddItem("Papel couché 300g", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, lists.Save(ctx, list))

	require.NoError(t, orders.DeleteForTenant(ctx, tenantID, so.ID))

	reloaded, err := lists.FindByIDForTenant(ctx, tenantID, list.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ServiceOrderID)
	assert.Len(t, reloaded.Items, 1)

	var items int64
	require.NoError(t, db.Table("service_order_checklist_items").Where("service_order_id = ?", so.ID).Count(&items).Error)
	assert.Zero(t, items)
	assert.ErrorIs(t, orders.DeleteForTenant(ctx, tenantID, so.ID), shared.ErrNotFound)
}

func TestGormPurchaseListRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormPurchaseListRepository(db)
	tenantID := uuid.New()
	orderID := uuid.New()

	linked := trade.NewPurchaseList(tenantID, &orderID, "Tintas")
	item, err := linked.AddItem("Tinta ciano", decimal.NewFromInt(2))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, linked))
	require.NoError(t, repo.Save(ctx, trade.NewPurchaseList(tenantID, nil, "Avulsa")))

	all, err := repo.FindAllForTenant(ctx, tenantID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byOrder, err := repo.FindAllForTenant(ctx, tenantID, &orderID)
	require.NoError(t, err)
	require.Len(t, byOrder, 1)
	assert.Equal(t, linked.ID, byOrder[0].ID)

	found, err := repo.FindItem(ctx, tenantID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, linked.ID, found.ListID)

	require.NoError(t, linked.SetItemStatus(item.ID, trade.PurchaseStatusPurchased))
	linked.IncrementVersion()
	require.NoError(t, repo.Save(ctx, linked))
	reloaded, err := repo.FindByIDForTenant(ctx, tenantID, linked.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, trade.PurchaseStatusPurchased, reloaded.Items[0].Status)
	assert.Equal(t, trade.PurchaseStatusPending, reloaded.Status)

	require.NoError(t, repo.DeleteForTenant(ctx, tenantID, linked.ID))
	_, err = repo.FindItem(ctx, tenantID, item.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
