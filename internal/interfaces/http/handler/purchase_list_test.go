package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/application/trade"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPurchaseListHandler(t *testing.T) {
	listID, itemID, orderID := uuid.New(), uuid.New(), uuid.New()
	list := &trade.PurchaseListResponse{ID: listID, ServiceOrderID: &orderID, Title: "Papel", Status: "pending"}

	svc := new(mockPurchaseListService)
	h := NewPurchaseListHandler(svc)
	r := scopedEngine()
	g := r.Group("/purchase-lists")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PUT("/:id/status", h.SetStatus)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/items", h.AddItem)
	g.PUT("/items/:itemId/status", h.SetItemStatus)
	g.DELETE("/items/:itemId", h.DeleteItem)

	t.Run("create for service order", func(t *testing.T) {
		svc.On("Create", mock.Anything, testScope(), trade.CreatePurchaseListRequest{ServiceOrderID: &orderID, Title: "Papel"}).
			Return(list, nil).Once()
		w := doRequest(r, http.MethodPost, "/purchase-lists", map[string]any{"service_order_id": orderID, "title": "Papel"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("list filtered by service order", func(t *testing.T) {
		svc.On("List", mock.Anything, testScope(), &orderID).Return([]trade.PurchaseListResponse{*list}, nil).Once()
		w := doRequest(r, http.MethodGet, "/purchase-lists?service_order_id="+orderID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeData[[]trade.PurchaseListResponse](t, w), 1)
	})

	t.Run("list all", func(t *testing.T) {
		svc.On("List", mock.Anything, testScope(), (*uuid.UUID)(nil)).Return([]trade.PurchaseListResponse{}, nil).Once()
		w := doRequest(r, http.MethodGet, "/purchase-lists", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rename requires a title", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/purchase-lists/"+listID.String(), map[string]any{"title": ""})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("add item", func(t *testing.T) {
		svc.On("AddItem", mock.Anything, testScope(), listID, mock.MatchedBy(func(req trade.AddPurchaseItemRequest) bool {
			return req.Description == "Couché 150g" && req.Quantity.Equal(decimal.NewFromInt(500))
		})).Return(list, nil).Once()
		w := doRequest(r, http.MethodPost, "/purchase-lists/"+listID.String()+"/items", map[string]any{"description": "Couché 150g", "quantity": 500})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("item status", func(t *testing.T) {
		svc.On("SetItemStatus", mock.Anything, testScope(), itemID, trade.SetPurchaseStatusRequest{Status: "purchased"}).
			Return(list, nil).Once()
		w := doRequest(r, http.MethodPut, "/purchase-lists/items/"+itemID.String()+"/status", map[string]any{"status": "purchased"})
		assert.Equal(t, http.StatusOK, w.Code)

		w = doRequest(r, http.MethodPut, "/purchase-lists/items/"+itemID.String()+"/status", map[string]any{"status": "lost"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete item of another tenant", func(t *testing.T) {
		svc.On("DeleteItem", mock.Anything, testScope(), itemID).Return(nil, shared.NewNotFoundError("Purchase item")).Once()
		w := doRequest(r, http.MethodDelete, "/purchase-lists/items/"+itemID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete list", func(t *testing.T) {
		svc.On("Delete", mock.Anything, testScope(), listID).Return(nil).Once()
		w := doRequest(r, http.MethodDelete, "/purchase-lists/"+listID.String(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	svc.AssertExpectations(t)
}
