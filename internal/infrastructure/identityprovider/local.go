package identityprovider

import (
	"context"
	"errors"

	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/auth"
)

// LocalProvider keeps bcrypt password hashes on the user row
type LocalProvider struct{}

// NewLocalProvider creates a new LocalProvider
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

// Register hashes the password onto the user
func (p *LocalProvider) Register(_ context.Context, user *identity.User, password string) error {
	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return shared.NewValidationError("Password must be at least 8 characters")
	}
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return nil
}

// Authenticate compares the password with the stored hash
func (p *LocalProvider) Authenticate(_ context.Context, user *identity.User, password string) error {
	if !auth.CheckPassword(user.PasswordHash, password) {
		return shared.ErrNotAuthenticated
	}
	return nil
}

var _ identity.IdentityProvider = (*LocalProvider)(nil)
