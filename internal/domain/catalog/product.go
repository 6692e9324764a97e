package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductDetails are the editable fields of a product
type ProductDetails struct {
	Name            string
	SKU             string
	Unit            string
	Price           decimal.Decimal
	Quantity        decimal.Decimal
	MinimumQuantity decimal.Decimal
	CategoryID      *uuid.UUID
}

// Product is a stocked material or item
type Product struct {
	shared.TenantAggregateRoot
	Name            string
	SKU             string
	Unit            string
	Price           decimal.Decimal
	Quantity        decimal.Decimal
	MinimumQuantity decimal.Decimal
	CategoryID      *uuid.UUID
}

// NewProduct creates a product
func NewProduct(tenantID uuid.UUID, d ProductDetails) (*Product, error) {
	p := &Product{TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID)}
	if err := p.apply(d); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields
func (p *Product) Update(d ProductDetails) error {
	if err := p.apply(d); err != nil {
		return err
	}
	p.Touch()
	return nil
}

func (p *Product) apply(d ProductDetails) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewValidationError("Product name cannot be empty")
	}
	if d.Price.IsNegative() {
		return shared.NewValidationError("Price cannot be negative")
	}
	if d.MinimumQuantity.IsNegative() {
		return shared.NewValidationError("Minimum quantity cannot be negative")
	}
	unit := strings.TrimSpace(d.Unit)
	if unit == "" {
		unit = "un"
	}
	p.Name = name
	p.SKU = strings.TrimSpace(d.SKU)
	p.Unit = unit
	p.Price = d.Price
	p.Quantity = d.Quantity
	p.MinimumQuantity = d.MinimumQuantity
	p.CategoryID = d.CategoryID
	return nil
}

// IsLowStock reports quantity at or below the minimum
func (p *Product) IsLowStock() bool {
	return p.Quantity.LessThanOrEqual(p.MinimumQuantity)
}
