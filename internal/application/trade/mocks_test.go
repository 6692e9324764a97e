package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/finance"
	"github.com/grafica/backend/internal/domain/partner"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// MockQuoteRepository is a mock implementation of trade.QuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Quote, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter trade.QuoteFilter) ([]trade.Quote, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]trade.Quote), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuoteRepository) Save(ctx context.Context, quote *trade.Quote) error {
	return m.Called(ctx, quote).Error(0)
}

func (m *MockQuoteRepository) SaveWithLock(ctx context.Context, quote *trade.Quote) error {
	return m.Called(ctx, quote).Error(0)
}

func (m *MockQuoteRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockQuoteRepository) NextNumber(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockServiceOrderRepository is a mock implementation of trade.ServiceOrderRepository
type MockServiceOrderRepository struct {
	mock.Mock
}

func (m *MockServiceOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.ServiceOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.ServiceOrder), args.Error(1)
}

func (m *MockServiceOrderRepository) FindBaseByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.ServiceOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.ServiceOrder), args.Error(1)
}

func (m *MockServiceOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter trade.ServiceOrderFilter) ([]trade.ServiceOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.ServiceOrder), args.Error(1)
}

func (m *MockServiceOrderRepository) FindAllBaseForTenant(ctx context.Context, tenantID uuid.UUID, filter trade.ServiceOrderFilter) ([]trade.ServiceOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.ServiceOrder), args.Error(1)
}

func (m *MockServiceOrderRepository) FindChecklistItem(ctx context.Context, tenantID, itemID uuid.UUID) (*trade.ChecklistItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.ChecklistItem), args.Error(1)
}

func (m *MockServiceOrderRepository) ExistsForQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, quoteID)
	return args.Bool(0), args.Error(1)
}

func (m *MockServiceOrderRepository) Create(ctx context.Context, so *trade.ServiceOrder) error {
	return m.Called(ctx, so).Error(0)
}

func (m *MockServiceOrderRepository) Save(ctx context.Context, so *trade.ServiceOrder) error {
	return m.Called(ctx, so).Error(0)
}

func (m *MockServiceOrderRepository) AddChecklistItem(ctx context.Context, tenantID uuid.UUID, item *trade.ChecklistItem) error {
	return m.Called(ctx, tenantID, item).Error(0)
}

func (m *MockServiceOrderRepository) UpdateChecklistItem(ctx context.Context, tenantID uuid.UUID, item *trade.ChecklistItem) error {
	return m.Called(ctx, tenantID, item).Error(0)
}

func (m *MockServiceOrderRepository) RemoveChecklistItem(ctx context.Context, tenantID, orderID, itemID uuid.UUID) error {
	return m.Called(ctx, tenantID, orderID, itemID).Error(0)
}

func (m *MockServiceOrderRepository) ReorderChecklist(ctx context.Context, tenantID, orderID uuid.UUID, itemIDs []uuid.UUID) error {
	return m.Called(ctx, tenantID, orderID, itemIDs).Error(0)
}

func (m *MockServiceOrderRepository) SaveWithLock(ctx context.Context, so *trade.ServiceOrder) error {
	return m.Called(ctx, so).Error(0)
}

func (m *MockServiceOrderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockServiceOrderRepository) NextNumber(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockServiceOrderRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[trade.ServiceOrderStatus]int64, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[trade.ServiceOrderStatus]int64), args.Error(1)
}

// MockPurchaseListRepository is a mock implementation of trade.PurchaseListRepository
type MockPurchaseListRepository struct {
	mock.Mock
}

func (m *MockPurchaseListRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.PurchaseList, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseList), args.Error(1)
}

func (m *MockPurchaseListRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, serviceOrderID *uuid.UUID) ([]trade.PurchaseList, error) {
	args := m.Called(ctx, tenantID, serviceOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PurchaseList), args.Error(1)
}

func (m *MockPurchaseListRepository) FindItem(ctx context.Context, tenantID, itemID uuid.UUID) (*trade.PurchaseItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseItem), args.Error(1)
}

func (m *MockPurchaseListRepository) Save(ctx context.Context, list *trade.PurchaseList) error {
	return m.Called(ctx, list).Error(0)
}

func (m *MockPurchaseListRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// MockReceivableRepository is a mock implementation of finance.ReceivableRepository
type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Receivable, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.EntryFilter) ([]finance.Receivable, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]finance.Receivable), args.Get(1).(int64), args.Error(2)
}

func (m *MockReceivableRepository) ExistsForQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, quoteID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReceivableRepository) Save(ctx context.Context, r *finance.Receivable) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReceivableRepository) SaveWithLock(ctx context.Context, r *finance.Receivable) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReceivableRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// MockPartyRepository is a mock implementation of partner.PartyRepository
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Party, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Party), args.Error(1)
}

func (m *MockPartyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Party, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]partner.Party), args.Get(1).(int64), args.Error(2)
}

func (m *MockPartyRepository) Save(ctx context.Context, p *partner.Party) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPartyRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// inlineTxManager runs the callback directly
type inlineTxManager struct {
	calls int
}

func (t *inlineTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.calls++
	return fn(ctx)
}
