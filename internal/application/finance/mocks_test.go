package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/catalog"
	"github.com/grafica/backend/internal/domain/finance"
	"github.com/grafica/backend/internal/domain/partner"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

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

type MockPayableRepository struct {
	mock.Mock
}

func (m *MockPayableRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Payable, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Payable), args.Error(1)
}

func (m *MockPayableRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.EntryFilter) ([]finance.Payable, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]finance.Payable), args.Get(1).(int64), args.Error(2)
}

func (m *MockPayableRepository) Save(ctx context.Context, p *finance.Payable) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPayableRepository) SaveWithLock(ctx context.Context, p *finance.Payable) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPayableRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

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
	return args.Get(0).([]partner.Party), args.Get(1).(int64), args.Error(2)
}

func (m *MockPartyRepository) Save(ctx context.Context, p *partner.Party) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPartyRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, kind catalog.CategoryKind) ([]catalog.Category, error) {
	args := m.Called(ctx, tenantID, kind)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}
