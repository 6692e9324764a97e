package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// ReceivableModel is the persistence model for finance.Receivable
type ReceivableModel struct {
	TenantAggregateModel
	ClientID      *uuid.UUID               `gorm:"type:uuid;index"`
	CategoryID    *uuid.UUID               `gorm:"type:uuid;index"`
	QuoteID       *uuid.UUID               `gorm:"type:uuid;index"`
	Description   string                   `gorm:"type:text;not null"`
	Amount        decimal.Decimal          `gorm:"type:decimal(14,2);not null"`
	DueDate       time.Time                `gorm:"not null;index"`
	ReceivedAt    *time.Time               `gorm:"index"`
	Status        finance.ReceivableStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod string                   `gorm:"type:varchar(50)"`

	ClientName string `gorm:"->;-:migration"`
}

// TableName returns the table name for GORM
func (ReceivableModel) TableName() string {
	return "receivables"
}

// ToDomain converts the model to a domain receivable
func (m *ReceivableModel) ToDomain() *finance.Receivable {
	return &finance.Receivable{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		ClientID:            m.ClientID,
		CategoryID:          m.CategoryID,
		QuoteID:             m.QuoteID,
		Description:         m.Description,
		Amount:              m.Amount,
		DueDate:             m.DueDate,
		ReceivedAt:          m.ReceivedAt,
		Status:              m.Status,
		PaymentMethod:       m.PaymentMethod,
		ClientName:          m.ClientName,
	}
}

// ReceivableModelFromDomain creates a model from a domain receivable
func ReceivableModelFromDomain(r *finance.Receivable) *ReceivableModel {
	m := &ReceivableModel{
		ClientID:      r.ClientID,
		CategoryID:    r.CategoryID,
		QuoteID:       r.QuoteID,
		Description:   r.Description,
		Amount:        r.Amount,
		DueDate:       r.DueDate,
		ReceivedAt:    r.ReceivedAt,
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
	}
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	return m
}

// PayableModel is the persistence model for finance.Payable
type PayableModel struct {
	TenantAggregateModel
	SupplierID    *uuid.UUID            `gorm:"type:uuid;index"`
	CategoryID    *uuid.UUID            `gorm:"type:uuid;index"`
	Description   string                `gorm:"type:text;not null"`
	Amount        decimal.Decimal       `gorm:"type:decimal(14,2);not null"`
	DueDate       time.Time             `gorm:"not null;index"`
	PaidAt        *time.Time            `gorm:"index"`
	Status        finance.PayableStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod string                `gorm:"type:varchar(50)"`

	SupplierName string `gorm:"->;-:migration"`
}

// TableName returns the table name for GORM
func (PayableModel) TableName() string {
	return "payables"
}

// ToDomain converts the model to a domain payable
func (m *PayableModel) ToDomain() *finance.Payable {
	return &finance.Payable{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		SupplierID:          m.SupplierID,
		CategoryID:          m.CategoryID,
		Description:         m.Description,
		Amount:              m.Amount,
		DueDate:             m.DueDate,
		PaidAt:              m.PaidAt,
		Status:              m.Status,
		PaymentMethod:       m.PaymentMethod,
		SupplierName:        m.SupplierName,
	}
}

// PayableModelFromDomain creates a model from a domain payable
func PayableModelFromDomain(p *finance.Payable) *PayableModel {
	m := &PayableModel{
		SupplierID:    p.SupplierID,
		CategoryID:    p.CategoryID,
		Description:   p.Description,
		Amount:        p.Amount,
		DueDate:       p.DueDate,
		PaidAt:        p.PaidAt,
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}
