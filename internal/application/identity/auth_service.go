package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var errInvalidCredentials = shared.NewDomainError(shared.CodeNotAuthenticated, "Invalid email or password")

// AuthService handles sign-up, sign-in and sign-out
type AuthService struct {
	userRepo   identity.UserRepository
	provider   identity.IdentityProvider
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	provider identity.IdentityProvider,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		provider:   provider,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates an account and signs it in. The new user has no tenants
// until they create one or an admin provisions them.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	user, err := identity.NewUser(input.Email, input.DisplayName)
	if err != nil {
		return nil, err
	}

	_, err = s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "A user with this email already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.provider.Register(ctx, user, input.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

// Login checks credentials and returns an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email, err := identity.NormalizeEmail(input.Email)
	if err != nil {
		return nil, errInvalidCredentials
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email")
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := s.provider.Authenticate(ctx, user, input.Password); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

// Logout revokes the presented token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return shared.AsStoreError(err)
	}
	return nil
}

// IsRevoked reports whether a token id was revoked by Logout
func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.blacklist.IsRevoked(ctx, jti)
}

// Me returns the current user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

func (s *AuthService) issue(user *identity.User) (*AuthResult, error) {
	token, err := s.jwtService.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: ToUserDTO(user), Token: token}, nil
}
