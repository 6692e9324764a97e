package models

import (
	"github.com/grafica/backend/internal/domain/partner"
)

// PartyModel backs both the clients and suppliers tables; repositories pick
// the table with db.Table
type PartyModel struct {
	TenantAggregateModel
	Name     string `gorm:"type:varchar(200);not null"`
	Document string `gorm:"type:varchar(30)"`
	Email    string `gorm:"type:varchar(200)"`
	Phone    string `gorm:"type:varchar(50)"`
	Address  string `gorm:"type:text"`
	Notes    string `gorm:"type:text"`
}

// PartyTable returns the table holding parties of kind
func PartyTable(kind partner.Kind) string {
	if kind == partner.KindSupplier {
		return "suppliers"
	}
	return "clients"
}

// ToDomain converts the model to a domain party of kind
func (m *PartyModel) ToDomain(kind partner.Kind) *partner.Party {
	return &partner.Party{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Kind:                kind,
		Name:                m.Name,
		Document:            m.Document,
		Email:               m.Email,
		Phone:               m.Phone,
		Address:             m.Address,
		Notes:               m.Notes,
	}
}

// PartyModelFromDomain creates a model from a domain party
func PartyModelFromDomain(p *partner.Party) *PartyModel {
	m := &PartyModel{
		Name:     p.Name,
		Document: p.Document,
		Email:    p.Email,
		Phone:    p.Phone,
		Address:  p.Address,
		Notes:    p.Notes,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}
