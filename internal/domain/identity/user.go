package identity

import (
	"net/mail"
	"strings"

	"github.com/grafica/backend/internal/domain/shared"
)

// User is an authenticated identity. Credentials live with the identity
// provider; PasswordHash is only set for locally managed accounts.
type User struct {
	shared.BaseEntity
	Email        string
	DisplayName  string
	PasswordHash string
	ExternalID   string
}

// NewUser creates a user with a validated, lower-cased email
func NewUser(email, displayName string) (*User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = normalized
	}
	return &User{
		BaseEntity:  shared.NewBaseEntity(),
		Email:       normalized,
		DisplayName: displayName,
	}, nil
}

// NormalizeEmail validates and lower-cases an email address
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", shared.NewValidationError("Invalid email address")
	}
	return email, nil
}
