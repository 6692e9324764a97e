package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	identityapp "github.com/grafica/backend/internal/application/identity"
	partnerapp "github.com/grafica/backend/internal/application/partner"
	productionapp "github.com/grafica/backend/internal/application/production"
	tradeapp "github.com/grafica/backend/internal/application/trade"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantIsolation(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	_, scopeA := s.signUp(t, "dora@grafica.com", "GDA")
	userB, scopeB := s.signUp(t, "enzo@grafica.com", "GDB")

	quote, err := s.quotes.Create(ctx, scopeA, quoteRequest(nil))
	require.NoError(t, err)

	t.Run("quote is invisible to another tenant", func(t *testing.T) {
		_, err := s.quotes.Get(ctx, scopeB, quote.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		page, err := s.quotes.List(ctx, scopeB, tradeapp.QuoteListFilter{})
		require.NoError(t, err)
		assert.Zero(t, page.Total)
		assert.Empty(t, page.Items)
	})

	t.Run("another tenant cannot approve", func(t *testing.T) {
		_, err := s.quotes.Approve(ctx, scopeB, quote.ID, tradeapp.ApproveQuoteRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)

		stored, err := s.quotes.Get(ctx, scopeA, quote.ID)
		require.NoError(t, err)
		assert.Equal(t, "draft", stored.Status)
	})

	t.Run("numbering is per tenant", func(t *testing.T) {
		other, err := s.quotes.Create(ctx, scopeB, quoteRequest(nil))
		require.NoError(t, err)
		assert.Equal(t, int64(1), other.Number)
	})

	t.Run("foreign client is rejected", func(t *testing.T) {
		client, err := s.clients.Create(ctx, scopeA, partnerapp.PartyRequest{Name: "Livraria Sol"})
		require.NoError(t, err)

		_, err = s.quotes.Create(ctx, scopeB, quoteRequest(client))
		assert.Error(t, err)
	})

	t.Run("production order cannot link a foreign quote", func(t *testing.T) {
		_, err := s.production.Create(ctx, scopeB, productionapp.CreateOrderRequest{
			Description: "Panfletos",
			QuoteID:     &quote.ID,
		})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
		assert.Zero(t, s.db.Count("production_orders", "quote_id = ?", quote.ID))

		own, err := s.production.Create(ctx, scopeB, productionapp.CreateOrderRequest{Description: "Panfletos"})
		require.NoError(t, err)
		_, err = s.production.Update(ctx, scopeB, own.ID, productionapp.UpdateOrderRequest{
			CreateOrderRequest: productionapp.CreateOrderRequest{Description: "Panfletos", QuoteID: &quote.ID},
		})
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
	})

	t.Run("requesting a tenant without membership is forbidden", func(t *testing.T) {
		_, err := s.tenants.ResolveScope(ctx, userB, scopeA.TenantID())
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestTenantDelete_CascadesOwnedRows(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	userID, first := s.signUp(t, "fabi@grafica.com", "GFA")

	second, err := s.tenants.Create(ctx, userID, identityapp.CreateTenantInput{Name: "Gráfica Filial", Code: "gfb"})
	require.NoError(t, err)
	assert.Equal(t, "GFB", second.Tenant.Code)

	scope, err := s.tenants.ResolveScope(ctx, userID, uuid.Nil)
	require.NoError(t, err)
	require.Equal(t, second.Tenant.ID, scope.TenantID())

	quote, err := s.quotes.Create(ctx, scope, quoteRequest(nil))
	require.NoError(t, err)
	_, err = s.quotes.Approve(ctx, scope, quote.ID, tradeapp.ApproveQuoteRequest{})
	require.NoError(t, err)

	active, err := s.tenants.Delete(ctx, userID, second.Tenant.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, first.TenantID(), active.Tenant.ID)

	for _, table := range []string{"quotes", "service_orders", "receivables", "memberships"} {
		assert.Zero(t, s.db.Count(table, "tenant_id = ?", second.Tenant.ID), table)
	}

	_, err = s.tenants.Delete(ctx, userID, first.TenantID())
	assert.ErrorIs(t, err, shared.ErrPreconditionFailed)
}
