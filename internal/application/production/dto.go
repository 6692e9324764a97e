package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/production"
)

// CreateOrderRequest represents a request to create a production order
type CreateOrderRequest struct {
	ClientID    *uuid.UUID `json:"client_id"`
	QuoteID     *uuid.UUID `json:"quote_id"`
	Description string     `json:"description" binding:"required,min=1,max=1000"`
	EntryDate   *time.Time `json:"entry_date"`
	ExpectedAt  *time.Time `json:"expected_at"`
}

// UpdateOrderRequest replaces the editable fields
type UpdateOrderRequest struct {
	CreateOrderRequest
	Version *int `json:"version"`
}

// MoveOrderRequest moves an order to another pipeline column
type MoveOrderRequest struct {
	Status  string `json:"status" binding:"required,oneof=waiting in_production finishing ready delivered"`
	Version *int   `json:"version"`
}

// OrderListFilter represents filter options for production order list
type OrderListFilter struct {
	Search   string     `form:"search"`
	Status   string     `form:"status" binding:"omitempty,oneof=waiting in_production finishing ready delivered"`
	ClientID *uuid.UUID `form:"client_id"`
}

// OrderResponse represents a production order in API responses
type OrderResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Number      int64      `json:"number"`
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	ClientName  string     `json:"client_name,omitempty"`
	QuoteID     *uuid.UUID `json:"quote_id,omitempty"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	EntryDate   time.Time  `json:"entry_date"`
	ExpectedAt  *time.Time `json:"expected_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// ColumnResponse is one board column
type ColumnResponse struct {
	Status string          `json:"status"`
	Orders []OrderResponse `json:"orders"`
}

// BoardResponse is the production board; Degraded is set when client names
// could not be loaded
type BoardResponse struct {
	Columns  []ColumnResponse `json:"columns"`
	Degraded bool             `json:"degraded"`
}

// ToOrderResponse converts a domain production order
func ToOrderResponse(o *production.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		TenantID:    o.TenantID,
		Number:      o.Number,
		ClientID:    o.ClientID,
		ClientName:  o.ClientName,
		QuoteID:     o.QuoteID,
		Description: o.Description,
		Status:      string(o.Status),
		EntryDate:   o.EntryDate,
		ExpectedAt:  o.ExpectedAt,
		DeliveredAt: o.DeliveredAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Version:     o.Version,
	}
}

// ToOrderResponses converts a slice of domain production orders
func ToOrderResponses(orders []production.Order) []OrderResponse {
	result := make([]OrderResponse, len(orders))
	for i := range orders {
		result[i] = ToOrderResponse(&orders[i])
	}
	return result
}

func (r CreateOrderRequest) toDetails() production.OrderDetails {
	return production.OrderDetails{
		ClientID:    r.ClientID,
		QuoteID:     r.QuoteID,
		Description: r.Description,
		EntryDate:   r.EntryDate,
		ExpectedAt:  r.ExpectedAt,
	}
}
