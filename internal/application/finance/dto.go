package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/finance"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryRequest holds the editable fields shared by receivables and payables.
// CounterpartID is the client for receivables and the supplier for payables.
type EntryRequest struct {
	CounterpartID *uuid.UUID      `json:"counterpart_id"`
	CategoryID    *uuid.UUID      `json:"category_id"`
	Description   string          `json:"description" binding:"required,min=1,max=500"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	DueDate       time.Time       `json:"due_date" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"max=50"`
}

// UpdateEntryRequest replaces the editable fields
type UpdateEntryRequest struct {
	EntryRequest
	Version *int `json:"version"`
}

// SettleRequest marks an entry received or paid. At defaults to now.
type SettleRequest struct {
	At      *time.Time `json:"at"`
	Version *int       `json:"version"`
}

// SetEntryStatusRequest sets any status allowed by the transition table
type SetEntryStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Version *int   `json:"version"`
}

// EntryListFilter represents filter options for ledger lists
type EntryListFilter struct {
	Search        string     `form:"search"`
	Status        string     `form:"status"`
	CounterpartID *uuid.UUID `form:"counterpart_id"`
	CategoryID    *uuid.UUID `form:"category_id"`
	From          *time.Time `form:"from" time_format:"2006-01-02"`
	To            *time.Time `form:"to" time_format:"2006-01-02"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by" binding:"omitempty,oneof=due_date created_at amount"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ReceivableResponse represents a receivable in API responses
type ReceivableResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	ClientID      *uuid.UUID      `json:"client_id,omitempty"`
	ClientName    string          `json:"client_name,omitempty"`
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
	QuoteID       *uuid.UUID      `json:"quote_id,omitempty"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	ReceivedAt    *time.Time      `json:"received_at,omitempty"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// PayableResponse represents a payable in API responses
type PayableResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	SupplierID    *uuid.UUID      `json:"supplier_id,omitempty"`
	SupplierName  string          `json:"supplier_name,omitempty"`
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ToReceivableResponse converts a domain receivable
func ToReceivableResponse(r *finance.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ID:            r.ID,
		TenantID:      r.TenantID,
		ClientID:      r.ClientID,
		ClientName:    r.ClientName,
		CategoryID:    r.CategoryID,
		QuoteID:       r.QuoteID,
		Description:   r.Description,
		Amount:        r.Amount,
		DueDate:       r.DueDate,
		ReceivedAt:    r.ReceivedAt,
		Status:        string(r.Status),
		PaymentMethod: r.PaymentMethod,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Version:       r.Version,
	}
}

// ToPayableResponse converts a domain payable
func ToPayableResponse(p *finance.Payable) PayableResponse {
	return PayableResponse{
		ID:            p.ID,
		TenantID:      p.TenantID,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		CategoryID:    p.CategoryID,
		Description:   p.Description,
		Amount:        p.Amount,
		DueDate:       p.DueDate,
		PaidAt:        p.PaidAt,
		Status:        string(p.Status),
		PaymentMethod: p.PaymentMethod,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

func (r EntryRequest) toDetails() finance.EntryDetails {
	return finance.EntryDetails{
		CounterpartID: r.CounterpartID,
		CategoryID:    r.CategoryID,
		Description:   r.Description,
		Amount:        r.Amount,
		DueDate:       r.DueDate,
		PaymentMethod: r.PaymentMethod,
	}
}

func (f EntryListFilter) toDomain() finance.EntryFilter {
	filter := finance.EntryFilter{
		Filter:        shared.DefaultFilter(),
		Status:        f.Status,
		CounterpartID: f.CounterpartID,
		CategoryID:    f.CategoryID,
	}
	filter.Search = f.Search
	filter.From = f.From
	filter.To = f.To
	filter.OrderBy = "due_date"
	filter.OrderDir = "asc"
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	return filter
}
