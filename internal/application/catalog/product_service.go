package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/catalog"
	"github.com/grafica/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a product
func (s *ProductService) Create(ctx context.Context, scope shared.TenantScope, req ProductRequest) (*ProductResponse, error) {
	if err := catalog.VerifyCategory(ctx, s.categoryRepo, scope.TenantID(), req.CategoryID, catalog.CategoryKindProduct); err != nil {
		return nil, err
	}
	product, err := catalog.NewProduct(scope.TenantID(), req.toDetails())
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Get retrieves a product
func (s *ProductService) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves products with search and pagination
func (s *ProductService) List(ctx context.Context, scope shared.TenantScope, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := filter.toDomain()
	products, total, err := s.productRepo.FindAllForTenant(ctx, scope.TenantID(), domainFilter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToProductResponses(products), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// LowStock lists products at or below their minimum quantity
func (s *ProductService) LowStock(ctx context.Context, scope shared.TenantScope) ([]ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx, scope.TenantID())
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update replaces a product's fields
func (s *ProductService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	if err := catalog.VerifyCategory(ctx, s.categoryRepo, scope.TenantID(), req.CategoryID, catalog.CategoryKindProduct); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	if req.Version != nil {
		if err := product.CheckVersion(*req.Version); err != nil {
			return nil, err
		}
	}
	if err := product.Update(req.toDetails()); err != nil {
		return nil, err
	}
	product.IncrementVersion()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if product.IsLowStock() {
		s.logger.Info("Product at or below minimum quantity",
			zap.String("tenant_id", scope.TenantID().String()),
			zap.String("product_id", product.ID.String()),
			zap.String("quantity", product.Quantity.String()),
		)
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	if _, err := s.productRepo.FindByIDForTenant(ctx, scope.TenantID(), id); err != nil {
		return err
	}
	return s.productRepo.DeleteForTenant(ctx, scope.TenantID(), id)
}
