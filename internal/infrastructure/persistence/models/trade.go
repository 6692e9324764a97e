package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// QuoteModel is the persistence model for trade.Quote
type QuoteModel struct {
	TenantAggregateModel
	Number        int64             `gorm:"not null"`
	ManualNumber  string            `gorm:"type:varchar(50)"`
	ClientID      *uuid.UUID        `gorm:"type:uuid;index"`
	Status        trade.QuoteStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Total         decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0"`
	Discount      decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0"`
	Final         decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0"`
	DeliveryTerms string            `gorm:"type:text"`
	DeliveryDate  *time.Time
	ValidUntil    *time.Time
	PaymentTerms  string `gorm:"type:varchar(200)"`
	Responsible   string `gorm:"type:varchar(200)"`
	Notes         string `gorm:"type:text"`
	ApprovedAt    *time.Time

	ClientName string           `gorm:"->;-:migration"`
	Lines      []QuoteLineModel `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (QuoteModel) TableName() string {
	return "quotes"
}

// QuoteLineModel is one priced line of a quote
type QuoteLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	QuoteID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	Description string          `gorm:"type:text;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// TableName returns the table name for GORM
func (QuoteLineModel) TableName() string {
	return "quote_lines"
}

// ToDomain converts the model to a domain quote
func (m *QuoteModel) ToDomain() *trade.Quote {
	q := &trade.Quote{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Number:              m.Number,
		ManualNumber:        m.ManualNumber,
		ClientID:            m.ClientID,
		Status:              m.Status,
		Total:               m.Total,
		Discount:            m.Discount,
		Final:               m.Final,
		DeliveryTerms:       m.DeliveryTerms,
		DeliveryDate:        m.DeliveryDate,
		ValidUntil:          m.ValidUntil,
		PaymentTerms:        m.PaymentTerms,
		Responsible:         m.Responsible,
		Notes:               m.Notes,
		ApprovedAt:          m.ApprovedAt,
		ClientName:          m.ClientName,
		Lines:               make([]trade.QuoteLine, len(m.Lines)),
	}
	for i, l := range m.Lines {
		q.Lines[i] = trade.QuoteLine{
			ID:          l.ID,
			QuoteID:     l.QuoteID,
			Position:    l.Position,
			Description: l.Description,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		}
	}
	return q
}

// QuoteModelFromDomain creates a model from a domain quote; lines are
// returned separately so the row can be written without them
func QuoteModelFromDomain(q *trade.Quote) (*QuoteModel, []QuoteLineModel) {
	m := &QuoteModel{
		Number:        q.Number,
		ManualNumber:  q.ManualNumber,
		ClientID:      q.ClientID,
		Status:        q.Status,
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
	}
	m.FromDomainTenantAggregateRoot(q.TenantAggregateRoot)

	lines := make([]QuoteLineModel, len(q.Lines))
	for i, l := range q.Lines {
		lines[i] = QuoteLineModel{
			ID:          l.ID,
			QuoteID:     q.ID,
			Position:    l.Position,
			Description: l.Description,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		}
	}
	return m, lines
}

// ServiceOrderModel is the persistence model for trade.ServiceOrder
type ServiceOrderModel struct {
	TenantAggregateModel
	Number      int64                    `gorm:"not null"`
	Title       string                   `gorm:"type:varchar(300);not null"`
	ClientID    *uuid.UUID               `gorm:"type:uuid;index"`
	QuoteID     *uuid.UUID               `gorm:"type:uuid;index"`
	Status      trade.ServiceOrderStatus `gorm:"type:varchar(20);not null;default:'open';index"`
	Priority    trade.Priority           `gorm:"type:varchar(20);not null;default:'normal'"`
	OpenedAt    time.Time                `gorm:"not null"`
	ExpectedAt  *time.Time
	CompletedAt *time.Time
	Responsible string `gorm:"type:varchar(200)"`
	Description string `gorm:"type:text"`
	Notes       string `gorm:"type:text"`

	ClientName string               `gorm:"->;-:migration"`
	Checklist  []ChecklistItemModel `gorm:"foreignKey:ServiceOrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ServiceOrderModel) TableName() string {
	return "service_orders"
}

// ChecklistItemModel is one checklist entry of a service order
type ChecklistItemModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position       int       `gorm:"not null"`
	Description    string    `gorm:"type:text;not null"`
	Done           bool      `gorm:"not null;default:false"`
	CompletedAt    *time.Time
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ChecklistItemModel) TableName() string {
	return "service_order_checklist_items"
}

// ToDomain converts the model to a domain checklist item
func (m *ChecklistItemModel) ToDomain() trade.ChecklistItem {
	return trade.ChecklistItem{
		ID:             m.ID,
		ServiceOrderID: m.ServiceOrderID,
		Position:       m.Position,
		Description:    m.Description,
		Done:           m.Done,
		CompletedAt:    m.CompletedAt,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomain converts the model to a domain service order
func (m *ServiceOrderModel) ToDomain() *trade.ServiceOrder {
	so := &trade.ServiceOrder{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Number:              m.Number,
		Title:               m.Title,
		ClientID:            m.ClientID,
		QuoteID:             m.QuoteID,
		Status:              m.Status,
		Priority:            m.Priority,
		OpenedAt:            m.OpenedAt,
		ExpectedAt:          m.ExpectedAt,
		CompletedAt:         m.CompletedAt,
		Responsible:         m.Responsible,
		Description:         m.Description,
		Notes:               m.Notes,
		ClientName:          m.ClientName,
		Checklist:           make([]trade.ChecklistItem, len(m.Checklist)),
	}
	for i := range m.Checklist {
		so.Checklist[i] = m.Checklist[i].ToDomain()
	}
	return so
}

// ServiceOrderModelFromDomain creates a model and its checklist rows
func ServiceOrderModelFromDomain(so *trade.ServiceOrder) (*ServiceOrderModel, []ChecklistItemModel) {
	m := &ServiceOrderModel{
		Number:      so.Number,
		Title:       so.Title,
		ClientID:    so.ClientID,
		QuoteID:     so.QuoteID,
		Status:      so.Status,
		Priority:    so.Priority,
		OpenedAt:    so.OpenedAt,
		ExpectedAt:  so.ExpectedAt,
		CompletedAt: so.CompletedAt,
		Responsible: so.Responsible,
		Description: so.Description,
		Notes:       so.Notes,
	}
	m.FromDomainTenantAggregateRoot(so.TenantAggregateRoot)

	items := make([]ChecklistItemModel, len(so.Checklist))
	for i, it := range so.Checklist {
		it.ServiceOrderID = so.ID
		items[i] = ChecklistItemModelFromDomain(so.TenantID, it)
	}
	return m, items
}

// ChecklistItemModelFromDomain creates the row of one checklist item
func ChecklistItemModelFromDomain(tenantID uuid.UUID, it trade.ChecklistItem) ChecklistItemModel {
	return ChecklistItemModel{
		ID:             it.ID,
		TenantID:       tenantID,
		ServiceOrderID: it.ServiceOrderID,
		Position:       it.Position,
		Description:    it.Description,
		Done:           it.Done,
		CompletedAt:    it.CompletedAt,
		CreatedAt:      it.CreatedAt,
	}
}

// PurchaseListModel is the persistence model for trade.PurchaseList
type PurchaseListModel struct {
	TenantAggregateModel
	ServiceOrderID *uuid.UUID           `gorm:"type:uuid;index"`
	Title          string               `gorm:"type:varchar(200);not null"`
	Status         trade.PurchaseStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	Items []PurchaseItemModel `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PurchaseListModel) TableName() string {
	return "purchase_lists"
}

// PurchaseItemModel is one line of a purchase list
type PurchaseItemModel struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	ListID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	Description string               `gorm:"type:text;not null"`
	Quantity    decimal.Decimal      `gorm:"type:decimal(14,3);not null"`
	Status      trade.PurchaseStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time            `gorm:"not null"`
	UpdatedAt   time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}

// ToDomain converts the model to a domain purchase item
func (m *PurchaseItemModel) ToDomain() trade.PurchaseItem {
	return trade.PurchaseItem{
		ID:          m.ID,
		ListID:      m.ListID,
		Description: m.Description,
		Quantity:    m.Quantity,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToDomain converts the model to a domain purchase list
func (m *PurchaseListModel) ToDomain() *trade.PurchaseList {
	list := &trade.PurchaseList{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		ServiceOrderID:      m.ServiceOrderID,
		Title:               m.Title,
		Status:              m.Status,
		Items:               make([]trade.PurchaseItem, len(m.Items)),
	}
	for i := range m.Items {
		list.Items[i] = m.Items[i].ToDomain()
	}
	return list
}

// PurchaseListModelFromDomain creates a model and its item rows
func PurchaseListModelFromDomain(l *trade.PurchaseList) (*PurchaseListModel, []PurchaseItemModel) {
	m := &PurchaseListModel{
		ServiceOrderID: l.ServiceOrderID,
		Title:          l.Title,
		Status:         l.Status,
	}
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)

	items := make([]PurchaseItemModel, len(l.Items))
	for i, it := range l.Items {
		items[i] = PurchaseItemModel{
			ID:          it.ID,
			TenantID:    l.TenantID,
			ListID:      l.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Status:      it.Status,
			CreatedAt:   it.CreatedAt,
			UpdatedAt:   it.UpdatedAt,
		}
	}
	return m, items
}
