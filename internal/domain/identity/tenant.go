package identity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/grafica/backend/internal/domain/shared"
)

// Tenant is an isolated organization ("empresa"). Every other record
// belongs to exactly one tenant.
type Tenant struct {
	shared.BaseEntity
	Version      int
	Code         string
	Name         string
	ContactName  string
	ContactPhone string
	ContactEmail string
	Address      string
}

// TenantContact groups the editable contact fields
type TenantContact struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// NewTenant creates a new tenant. The code is 2 or 3 letters and is stored upper-cased.
func NewTenant(name, code string) (*Tenant, error) {
	if err := validateTenantName(name); err != nil {
		return nil, err
	}
	normalized, err := NormalizeTenantCode(code)
	if err != nil {
		return nil, err
	}
	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		Version:    1,
		Code:       normalized,
		Name:       strings.TrimSpace(name),
	}, nil
}

// Update changes the display name and contact fields. The code is immutable.
func (t *Tenant) Update(name string, contact TenantContact) error {
	if err := validateTenantName(name); err != nil {
		return err
	}
	t.Name = strings.TrimSpace(name)
	t.ContactName = contact.Name
	t.ContactPhone = contact.Phone
	t.ContactEmail = contact.Email
	t.Address = contact.Address
	t.Touch()
	t.Version++
	return nil
}

// NormalizeTenantCode validates a 2-3 letter code and upper-cases it
func NormalizeTenantCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	n := utf8.RuneCountInString(code)
	if n < 2 || n > 3 {
		return "", shared.NewValidationError("Company code must have 2 or 3 letters")
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return "", shared.NewValidationError("Company code must contain only letters")
		}
	}
	return strings.ToUpper(code), nil
}

func validateTenantName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Company name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 200 {
		return shared.NewValidationError("Company name cannot exceed 200 characters")
	}
	return nil
}
