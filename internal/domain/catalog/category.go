package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
)

// CategoryKind tells which records a category classifies
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindProduct CategoryKind = "product"
)

// IsValid checks if the kind is known
func (k CategoryKind) IsValid() bool {
	return k == CategoryKindIncome || k == CategoryKindExpense || k == CategoryKindProduct
}

// Category classifies products and ledger entries
type Category struct {
	shared.TenantAggregateRoot
	Name string
	Kind CategoryKind
}

// NewCategory creates a category
func NewCategory(tenantID uuid.UUID, name string, kind CategoryKind) (*Category, error) {
	c := &Category{TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID)}
	if err := c.Update(name, kind); err != nil {
		return nil, err
	}
	return c, nil
}

// Update renames or reclassifies the category
func (c *Category) Update(name string, kind CategoryKind) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Category name cannot be empty")
	}
	if !kind.IsValid() {
		return shared.NewValidationError("Invalid category kind: " + string(kind))
	}
	c.Name = name
	c.Kind = kind
	c.Touch()
	return nil
}
