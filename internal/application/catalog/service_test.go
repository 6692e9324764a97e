package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/catalog"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
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

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	scope := shared.MustTenantScope(uuid.New(), uuid.New())

	tests := []struct {
		name     string
		kind     catalog.CategoryKind
		wantErr  error
		lowStock bool
	}{
		{name: "product category", kind: catalog.CategoryKindProduct, lowStock: true},
		{name: "ledger category rejected", kind: catalog.CategoryKindIncome, wantErr: shared.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(MockProductRepository)
			categories := new(MockCategoryRepository)
			svc := NewProductService(products, categories, zap.NewNop())

			category, err := catalog.NewCategory(scope.TenantID(), "Papel", tt.kind)
			require.NoError(t, err)
			categories.On("FindByIDForTenant", ctx, scope.TenantID(), category.ID).Return(category, nil)
			products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

			resp, err := svc.Create(ctx, scope, ProductRequest{
				Name:            "Couché 150g",
				Quantity:        decimal.NewFromInt(3),
				MinimumQuantity: decimal.NewFromInt(10),
				CategoryID:      &category.ID,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lowStock, resp.LowStock)
			assert.Equal(t, "un", resp.Unit)
		})
	}
}

func TestProductService_Update_VersionConflict(t *testing.T) {
	ctx := context.Background()
	scope := shared.MustTenantScope(uuid.New(), uuid.New())
	products := new(MockProductRepository)
	svc := NewProductService(products, new(MockCategoryRepository), zap.NewNop())

	product, err := catalog.NewProduct(scope.TenantID(), catalog.ProductDetails{Name: "Tinta"})
	require.NoError(t, err)
	products.On("FindByIDForTenant", ctx, scope.TenantID(), product.ID).Return(product, nil)

	stale := 0
	_, err = svc.Update(ctx, scope, product.ID, UpdateProductRequest{
		ProductRequest: ProductRequest{Name: "Tinta preta"},
		Version:        &stale,
	})

	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_LowStock(t *testing.T) {
	ctx := context.Background()
	scope := shared.MustTenantScope(uuid.New(), uuid.New())
	products := new(MockProductRepository)
	svc := NewProductService(products, new(MockCategoryRepository), zap.NewNop())

	low, err := catalog.NewProduct(scope.TenantID(), catalog.ProductDetails{
		Name:            "Lona",
		Quantity:        decimal.NewFromInt(2),
		MinimumQuantity: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	products.On("FindLowStock", ctx, scope.TenantID()).Return([]catalog.Product{*low}, nil)

	result, err := svc.LowStock(ctx, scope)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.True(t, result[0].LowStock)
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()
	scope := shared.MustTenantScope(uuid.New(), uuid.New())

	t.Run("list rejects unknown kind", func(t *testing.T) {
		svc := NewCategoryService(new(MockCategoryRepository))
		_, err := svc.List(ctx, scope, "assets")
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
	})

	t.Run("list all kinds", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)
		repo.On("FindAllForTenant", ctx, scope.TenantID(), catalog.CategoryKind("")).Return([]catalog.Category{}, nil)

		result, err := svc.List(ctx, scope, "")

		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("update reclassifies", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)
		category, err := catalog.NewCategory(scope.TenantID(), "Outros", catalog.CategoryKindIncome)
		require.NoError(t, err)
		repo.On("FindByIDForTenant", ctx, scope.TenantID(), category.ID).Return(category, nil)
		repo.On("Save", ctx, category).Return(nil)

		resp, err := svc.Update(ctx, scope, category.ID, CategoryRequest{Name: "Outros", Kind: "expense"})

		require.NoError(t, err)
		assert.Equal(t, "expense", resp.Kind)
	})
}
