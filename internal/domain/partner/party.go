package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
)

// Kind distinguishes clients from suppliers; both share the same shape
type Kind string

const (
	KindClient   Kind = "client"
	KindSupplier Kind = "supplier"
)

// Details are the editable fields of a client or supplier
type Details struct {
	Name     string
	Document string
	Email    string
	Phone    string
	Address  string
	Notes    string
}

// Party is a client or supplier (reference data, CRUD only)
type Party struct {
	shared.TenantAggregateRoot
	Kind     Kind
	Name     string
	Document string
	Email    string
	Phone    string
	Address  string
	Notes    string
}

// NewClient creates a client
func NewClient(tenantID uuid.UUID, d Details) (*Party, error) {
	return newParty(tenantID, KindClient, d)
}

// NewSupplier creates a supplier
func NewSupplier(tenantID uuid.UUID, d Details) (*Party, error) {
	return newParty(tenantID, KindSupplier, d)
}

func newParty(tenantID uuid.UUID, kind Kind, d Details) (*Party, error) {
	p := &Party{TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID), Kind: kind}
	if err := p.Update(d); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields
func (p *Party) Update(d Details) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewValidationError("Name cannot be empty")
	}
	p.Name = name
	p.Document = onlyDigits(d.Document)
	p.Email = strings.ToLower(strings.TrimSpace(d.Email))
	p.Phone = strings.TrimSpace(d.Phone)
	p.Address = strings.TrimSpace(d.Address)
	p.Notes = d.Notes
	p.Touch()
	return nil
}

// onlyDigits strips CPF/CNPJ punctuation
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
