package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/catalog"
	"github.com/grafica/backend/internal/domain/shared"
)

// CategoryService handles category business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a category
func (s *CategoryService) Create(ctx context.Context, scope shared.TenantScope, req CategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(scope.TenantID(), req.Name, catalog.CategoryKind(req.Kind))
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List retrieves categories, optionally of one kind
func (s *CategoryService) List(ctx context.Context, scope shared.TenantScope, kind string) ([]CategoryResponse, error) {
	if kind != "" && !catalog.CategoryKind(kind).IsValid() {
		return nil, shared.NewValidationError("Invalid category kind: " + kind)
	}
	categories, err := s.categoryRepo.FindAllForTenant(ctx, scope.TenantID(), catalog.CategoryKind(kind))
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out, nil
}

// Update renames or reclassifies a category
func (s *CategoryService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, catalog.CategoryKind(req.Kind)); err != nil {
		return nil, err
	}
	category.IncrementVersion()
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category; entries and products referencing it keep a null category
func (s *CategoryService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByIDForTenant(ctx, scope.TenantID(), id); err != nil {
		return err
	}
	return s.categoryRepo.DeleteForTenant(ctx, scope.TenantID(), id)
}
