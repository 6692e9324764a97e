package identityprovider

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCognito struct {
	mock.Mock
}

func (m *mockCognito) AdminCreateUser(ctx context.Context, in *cognito.AdminCreateUserInput, _ ...func(*cognito.Options)) (*cognito.AdminCreateUserOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cognito.AdminCreateUserOutput), args.Error(1)
}

func (m *mockCognito) AdminSetUserPassword(ctx context.Context, in *cognito.AdminSetUserPasswordInput, _ ...func(*cognito.Options)) (*cognito.AdminSetUserPasswordOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cognito.AdminSetUserPasswordOutput), args.Error(1)
}

func (m *mockCognito) AdminDeleteUser(ctx context.Context, in *cognito.AdminDeleteUserInput, _ ...func(*cognito.Options)) (*cognito.AdminDeleteUserOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cognito.AdminDeleteUserOutput), args.Error(1)
}

func (m *mockCognito) InitiateAuth(ctx context.Context, in *cognito.InitiateAuthInput, _ ...func(*cognito.Options)) (*cognito.InitiateAuthOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cognito.InitiateAuthOutput), args.Error(1)
}

func newUser(t *testing.T) *identity.User {
	user, err := identity.NewUser("ana@grafica.test", "Ana")
	require.NoError(t, err)
	return user
}

func TestLocalProvider(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider()
	user := newUser(t)

	err := p.Register(ctx, user, "short")
	assert.ErrorIs(t, err, shared.ErrValidationFailed)
	assert.Empty(t, user.PasswordHash)

	require.NoError(t, p.Register(ctx, user, "segredo-forte"))
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "segredo-forte", user.PasswordHash)

	assert.NoError(t, p.Authenticate(ctx, user, "segredo-forte"))
	assert.ErrorIs(t, p.Authenticate(ctx, user, "errado-errado"), shared.ErrNotAuthenticated)
}

func TestCognitoProvider_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the pool sub", func(t *testing.T) {
		client := new(mockCognito)
		p := NewCognitoProvider(client, "pool", "app", zap.NewNop())
		user := newUser(t)

		client.On("AdminCreateUser", ctx, mock.MatchedBy(func(in *cognito.AdminCreateUserInput) bool {
			return aws.ToString(in.Username) == "ana@grafica.test" && aws.ToString(in.UserPoolId) == "pool"
		})).Return(&cognito.AdminCreateUserOutput{User: &types.UserType{
			Username:   aws.String("ana@grafica.test"),
			Attributes: []types.AttributeType{{Name: aws.String("sub"), Value: aws.String("sub-123")}},
		}}, nil)
		client.On("AdminSetUserPassword", ctx, mock.MatchedBy(func(in *cognito.AdminSetUserPasswordInput) bool {
			return in.Permanent && aws.ToString(in.Password) == "segredo-forte"
		})).Return(&cognito.AdminSetUserPasswordOutput{}, nil)

		require.NoError(t, p.Register(ctx, user, "segredo-forte"))
		assert.Equal(t, "sub-123", user.ExternalID)
		assert.Empty(t, user.PasswordHash)
		client.AssertExpectations(t)
	})

	t.Run("existing username", func(t *testing.T) {
		client := new(mockCognito)
		p := NewCognitoProvider(client, "pool", "app", zap.NewNop())
		client.On("AdminCreateUser", ctx, mock.Anything).
			Return(nil, &types.UsernameExistsException{Message: aws.String("exists")})

		err := p.Register(ctx, newUser(t), "segredo-forte")

		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, shared.CodeAlreadyExists, de.Code)
	})

	t.Run("weak password removes the pool user", func(t *testing.T) {
		client := new(mockCognito)
		p := NewCognitoProvider(client, "pool", "app", zap.NewNop())
		client.On("AdminCreateUser", ctx, mock.Anything).Return(&cognito.AdminCreateUserOutput{}, nil)
		client.On("AdminSetUserPassword", ctx, mock.Anything).
			Return(nil, &types.InvalidPasswordException{Message: aws.String("weak")})
		client.On("AdminDeleteUser", ctx, mock.Anything).Return(&cognito.AdminDeleteUserOutput{}, nil)

		err := p.Register(ctx, newUser(t), "fraca")

		assert.ErrorIs(t, err, shared.ErrValidationFailed)
		client.AssertCalled(t, "AdminDeleteUser", ctx, mock.Anything)
	})
}

func TestCognitoProvider_Authenticate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "success"},
		{name: "wrong password", err: &types.NotAuthorizedException{}, wantErr: shared.ErrNotAuthenticated},
		{name: "unknown user", err: &types.UserNotFoundException{}, wantErr: shared.ErrNotAuthenticated},
		{name: "service failure", err: errors.New("throttled"), wantErr: shared.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockCognito)
			p := NewCognitoProvider(client, "pool", "app", zap.NewNop())
			call := client.On("InitiateAuth", ctx, mock.MatchedBy(func(in *cognito.InitiateAuthInput) bool {
				return in.AuthFlow == types.AuthFlowTypeUserPasswordAuth && in.AuthParameters["USERNAME"] == "ana@grafica.test"
			}))
			if tt.err != nil {
				call.Return(nil, tt.err)
			} else {
				call.Return(&cognito.InitiateAuthOutput{}, nil)
			}

			err := p.Authenticate(ctx, newUser(t), "segredo-forte")

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNew(t *testing.T) {
	p, err := New(context.Background(), config.IdentityConfig{Provider: "local"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LocalProvider{}, p)

	_, err = New(context.Background(), config.IdentityConfig{Provider: "ldap"}, zap.NewNop())
	assert.Error(t, err)
}
