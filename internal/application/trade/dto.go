package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ==================== Quote DTOs ====================

// QuoteLineInput is one line of a create or update request
type QuoteLineInput struct {
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Unit        string          `json:"unit" binding:"max=20"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateQuoteRequest represents a request to create a quote
type CreateQuoteRequest struct {
	ClientID      *uuid.UUID       `json:"client_id"`
	ManualNumber  string           `json:"manual_number" binding:"max=50"`
	Lines         []QuoteLineInput `json:"lines" binding:"required,min=1,dive"`
	Discount      decimal.Decimal  `json:"discount"`
	DeliveryTerms string           `json:"delivery_terms"`
	DeliveryDate  *time.Time       `json:"delivery_date"`
	ValidUntil    *time.Time       `json:"valid_until"`
	PaymentTerms  string           `json:"payment_terms" binding:"max=200"`
	Responsible   string           `json:"responsible" binding:"max=200"`
	Notes         string           `json:"notes"`
}

// UpdateQuoteRequest replaces every editable field. Lines are replaced wholesale.
type UpdateQuoteRequest struct {
	CreateQuoteRequest
	Version *int `json:"version"`
}

// SetQuoteStatusRequest changes a quote's status; approved runs the approval cascade
type SetQuoteStatusRequest struct {
	Status  string `json:"status" binding:"required,oneof=draft sent approved rejected"`
	Version *int   `json:"version"`
}

// ApproveQuoteRequest carries the optional revision token for approval
type ApproveQuoteRequest struct {
	Version *int `json:"version"`
}

// QuoteListFilter represents filter options for quote list
type QuoteListFilter struct {
	Search   string     `form:"search"`
	Status   string     `form:"status" binding:"omitempty,oneof=draft sent approved rejected"`
	ClientID *uuid.UUID `form:"client_id"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by" binding:"omitempty,oneof=number created_at final delivery_date"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// QuoteLineResponse represents a quote line in API responses
type QuoteLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// QuoteResponse represents a quote in API responses. Number and ManualNumber
// are independent; clients choose which to display.
type QuoteResponse struct {
	ID            uuid.UUID           `json:"id"`
	TenantID      uuid.UUID           `json:"tenant_id"`
	Number        int64               `json:"number"`
	ManualNumber  string              `json:"manual_number,omitempty"`
	ClientID      *uuid.UUID          `json:"client_id,omitempty"`
	ClientName    string              `json:"client_name,omitempty"`
	Status        string              `json:"status"`
	Lines         []QuoteLineResponse `json:"lines,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	Discount      decimal.Decimal     `json:"discount"`
	Final         decimal.Decimal     `json:"final"`
	DeliveryTerms string              `json:"delivery_terms,omitempty"`
	DeliveryDate  *time.Time          `json:"delivery_date,omitempty"`
	ValidUntil    *time.Time          `json:"valid_until,omitempty"`
	PaymentTerms  string              `json:"payment_terms,omitempty"`
	Responsible   string              `json:"responsible,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	ApprovedAt    *time.Time          `json:"approved_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Version       int                 `json:"version"`
}

// ReceivableSummary is the receivable raised by an approval
type ReceivableSummary struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	Status      string          `json:"status"`
}

// ApprovalResponse is everything written by one approval
type ApprovalResponse struct {
	Quote        QuoteResponse        `json:"quote"`
	ServiceOrder ServiceOrderResponse `json:"service_order"`
	Receivable   *ReceivableSummary   `json:"receivable,omitempty"`
}

// ToQuoteResponse converts a domain quote
func ToQuoteResponse(q *trade.Quote) QuoteResponse {
	resp := QuoteResponse{
		ID:            q.ID,
		TenantID:      q.TenantID,
		Number:        q.Number,
		ManualNumber:  q.ManualNumber,
		ClientID:      q.ClientID,
		ClientName:    q.ClientName,
		Status:        string(q.Status),
		Total:         q.Total,
		Discount:      q.Discount,
		Final:         q.Final,
		DeliveryTerms: q.DeliveryTerms,
		DeliveryDate:  q.DeliveryDate,
		ValidUntil:    q.ValidUntil,
		PaymentTerms:  q.PaymentTerms,
		Responsible:   q.Responsible,
		Notes:         q.Notes,
		ApprovedAt:    q.ApprovedAt,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
		Version:       q.Version,
	}
	if len(q.Lines) > 0 {
		resp.Lines = make([]QuoteLineResponse, len(q.Lines))
		for i, l := range q.Lines {
			resp.Lines[i] = QuoteLineResponse{
				ID:          l.ID,
				Position:    l.Position,
				Description: l.Description,
				Quantity:    l.Quantity,
				Unit:        l.Unit,
				UnitPrice:   l.UnitPrice,
				LineTotal:   l.LineTotal,
			}
		}
	}
	return resp
}

// ToQuoteResponses converts a slice of domain quotes
func ToQuoteResponses(quotes []trade.Quote) []QuoteResponse {
	result := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		result[i] = ToQuoteResponse(&quotes[i])
	}
	return result
}

func (r CreateQuoteRequest) toDetails() trade.QuoteDetails {
	lines := make([]trade.QuoteLineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = trade.QuoteLineInput{
			Description: l.Description,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			UnitPrice:   l.UnitPrice,
		}
	}
	return trade.QuoteDetails{
		ClientID:      r.ClientID,
		ManualNumber:  r.ManualNumber,
		Lines:         lines,
		Discount:      r.Discount,
		DeliveryTerms: r.DeliveryTerms,
		DeliveryDate:  r.DeliveryDate,
		ValidUntil:    r.ValidUntil,
		PaymentTerms:  r.PaymentTerms,
		Responsible:   r.Responsible,
		Notes:         r.Notes,
	}
}

// ==================== Service Order DTOs ====================

// CreateServiceOrderRequest represents a request to create a service order
type CreateServiceOrderRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	ClientID    *uuid.UUID `json:"client_id"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	OpenedAt    *time.Time `json:"opened_at"`
	ExpectedAt  *time.Time `json:"expected_at"`
	Responsible string     `json:"responsible" binding:"max=200"`
	Description string     `json:"description"`
	Notes       string     `json:"notes"`
	Checklist   []string   `json:"checklist" binding:"dive,min=1,max=500"`
}

// UpdateServiceOrderRequest replaces the editable fields
type UpdateServiceOrderRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	ClientID    *uuid.UUID `json:"client_id"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	OpenedAt    *time.Time `json:"opened_at"`
	ExpectedAt  *time.Time `json:"expected_at"`
	Responsible string     `json:"responsible" binding:"max=200"`
	Description string     `json:"description"`
	Notes       string     `json:"notes"`
	Version     *int       `json:"version"`
}

// SetServiceOrderStatusRequest moves a card to another column
type SetServiceOrderStatusRequest struct {
	Status  string `json:"status" binding:"required,oneof=open in_progress paused done cancelled"`
	Version *int   `json:"version"`
}

// AddChecklistItemRequest appends a checklist item
type AddChecklistItemRequest struct {
	Description string `json:"description" binding:"required,min=1,max=500"`
}

// ToggleChecklistItemRequest sets an item's done flag
type ToggleChecklistItemRequest struct {
	Done *bool `json:"done" binding:"required"`
}

// ReorderChecklistRequest lists every item id in the new order
type ReorderChecklistRequest struct {
	ItemIDs []uuid.UUID `json:"item_ids" binding:"required"`
}

// ServiceOrderListFilter represents filter options for service order list
type ServiceOrderListFilter struct {
	Search   string     `form:"search"`
	Status   string     `form:"status" binding:"omitempty,oneof=open in_progress paused done cancelled"`
	Priority string     `form:"priority" binding:"omitempty,oneof=low normal high urgent"`
	ClientID *uuid.UUID `form:"client_id"`
	QuoteID  *uuid.UUID `form:"quote_id"`
	Overdue  *bool      `form:"overdue"`
	OrderBy  string     `form:"order_by" binding:"omitempty,oneof=number created_at expected_at priority"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ChecklistItemResponse represents a checklist item in API responses
type ChecklistItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	Position    int        `json:"position"`
	Description string     `json:"description"`
	Done        bool       `json:"done"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ServiceOrderResponse represents a service order in API responses.
// Overdue and Progress are derived on every read.
type ServiceOrderResponse struct {
	ID          uuid.UUID               `json:"id"`
	TenantID    uuid.UUID               `json:"tenant_id"`
	Number      int64                   `json:"number"`
	Title       string                  `json:"title"`
	ClientID    *uuid.UUID              `json:"client_id,omitempty"`
	ClientName  string                  `json:"client_name,omitempty"`
	QuoteID     *uuid.UUID              `json:"quote_id,omitempty"`
	Status      string                  `json:"status"`
	Priority    string                  `json:"priority"`
	OpenedAt    time.Time               `json:"opened_at"`
	ExpectedAt  *time.Time              `json:"expected_at,omitempty"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
	Responsible string                  `json:"responsible,omitempty"`
	Description string                  `json:"description,omitempty"`
	Notes       string                  `json:"notes,omitempty"`
	Checklist   []ChecklistItemResponse `json:"checklist"`
	Overdue     bool                    `json:"overdue"`
	Progress    float64                 `json:"progress"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	Version     int                     `json:"version"`
}

// ServiceOrderResult wraps a single read; Degraded is set when the enriched
// query failed and only the base row was returned
type ServiceOrderResult struct {
	ServiceOrder ServiceOrderResponse `json:"service_order"`
	Degraded     bool                 `json:"degraded"`
}

// ServiceOrderListResult wraps a list read
type ServiceOrderListResult struct {
	Items    []ServiceOrderResponse `json:"items"`
	Degraded bool                   `json:"degraded"`
}

// ToServiceOrderResponse converts a domain service order, deriving overdue against now
func ToServiceOrderResponse(so *trade.ServiceOrder, now time.Time) ServiceOrderResponse {
	resp := ServiceOrderResponse{
		ID:          so.ID,
		TenantID:    so.TenantID,
		Number:      so.Number,
		Title:       so.Title,
		ClientID:    so.ClientID,
		ClientName:  so.ClientName,
		QuoteID:     so.QuoteID,
		Status:      string(so.Status),
		Priority:    string(so.Priority),
		OpenedAt:    so.OpenedAt,
		ExpectedAt:  so.ExpectedAt,
		CompletedAt: so.CompletedAt,
		Responsible: so.Responsible,
		Description: so.Description,
		Notes:       so.Notes,
		Checklist:   make([]ChecklistItemResponse, len(so.Checklist)),
		Overdue:     so.IsOverdue(now),
		Progress:    so.Progress(),
		CreatedAt:   so.CreatedAt,
		UpdatedAt:   so.UpdatedAt,
		Version:     so.Version,
	}
	for i, item := range so.Checklist {
		resp.Checklist[i] = ChecklistItemResponse{
			ID:          item.ID,
			Position:    item.Position,
			Description: item.Description,
			Done:        item.Done,
			CompletedAt: item.CompletedAt,
		}
	}
	return resp
}

func (r UpdateServiceOrderRequest) toDetails() trade.ServiceOrderDetails {
	return trade.ServiceOrderDetails{
		Title:       r.Title,
		ClientID:    r.ClientID,
		Priority:    trade.Priority(r.Priority),
		OpenedAt:    r.OpenedAt,
		ExpectedAt:  r.ExpectedAt,
		Responsible: r.Responsible,
		Description: r.Description,
		Notes:       r.Notes,
	}
}

// ==================== Purchase List DTOs ====================

// CreatePurchaseListRequest represents a request to create a purchase list
type CreatePurchaseListRequest struct {
	ServiceOrderID *uuid.UUID `json:"service_order_id"`
	Title          string     `json:"title" binding:"max=200"`
}

// UpdatePurchaseListRequest renames a list
type UpdatePurchaseListRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
}

// AddPurchaseItemRequest appends an item
type AddPurchaseItemRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// SetPurchaseStatusRequest sets a list or item status
type SetPurchaseStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending purchased delivered incomplete"`
}

// PurchaseItemResponse represents a purchase item in API responses
type PurchaseItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ListID      uuid.UUID       `json:"list_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Status      string          `json:"status"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PurchaseListResponse represents a purchase list in API responses
type PurchaseListResponse struct {
	ID             uuid.UUID              `json:"id"`
	TenantID       uuid.UUID              `json:"tenant_id"`
	ServiceOrderID *uuid.UUID             `json:"service_order_id,omitempty"`
	Title          string                 `json:"title"`
	Status         string                 `json:"status"`
	Items          []PurchaseItemResponse `json:"items"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToPurchaseListResponse converts a domain purchase list
func ToPurchaseListResponse(l *trade.PurchaseList) PurchaseListResponse {
	resp := PurchaseListResponse{
		ID:             l.ID,
		TenantID:       l.TenantID,
		ServiceOrderID: l.ServiceOrderID,
		Title:          l.Title,
		Status:         string(l.Status),
		Items:          make([]PurchaseItemResponse, len(l.Items)),
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
	for i, item := range l.Items {
		resp.Items[i] = PurchaseItemResponse{
			ID:          item.ID,
			ListID:      item.ListID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Status:      string(item.Status),
			UpdatedAt:   item.UpdatedAt,
		}
	}
	return resp
}
