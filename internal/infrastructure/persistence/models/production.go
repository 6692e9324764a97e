package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/production"
)

// ProductionOrderModel is the persistence model for production.Order
type ProductionOrderModel struct {
	TenantAggregateModel
	Number      int64            `gorm:"not null"`
	ClientID    *uuid.UUID       `gorm:"type:uuid;index"`
	QuoteID     *uuid.UUID       `gorm:"type:uuid;index"`
	Description string           `gorm:"type:text;not null"`
	Status      production.Stage `gorm:"type:varchar(20);not null;default:'waiting';index"`
	EntryDate   time.Time        `gorm:"not null"`
	ExpectedAt  *time.Time
	DeliveredAt *time.Time

	ClientName string `gorm:"->;-:migration"`
}

// TableName returns the table name for GORM
func (ProductionOrderModel) TableName() string {
	return "production_orders"
}

// ToDomain converts the model to a domain production order
func (m *ProductionOrderModel) ToDomain() *production.Order {
	return &production.Order{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Number:              m.Number,
		ClientID:            m.ClientID,
		QuoteID:             m.QuoteID,
		Description:         m.Description,
		Status:              m.Status,
		EntryDate:           m.EntryDate,
		ExpectedAt:          m.ExpectedAt,
		DeliveredAt:         m.DeliveredAt,
		ClientName:          m.ClientName,
	}
}

// ProductionOrderModelFromDomain creates a model from a domain production order
func ProductionOrderModelFromDomain(o *production.Order) *ProductionOrderModel {
	m := &ProductionOrderModel{
		Number:      o.Number,
		ClientID:    o.ClientID,
		QuoteID:     o.QuoteID,
		Description: o.Description,
		Status:      o.Status,
		EntryDate:   o.EntryDate,
		ExpectedAt:  o.ExpectedAt,
		DeliveredAt: o.DeliveredAt,
	}
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	return m
}
