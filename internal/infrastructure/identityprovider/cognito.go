package identityprovider

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CognitoAPI is the subset of the Cognito client the provider calls
type CognitoAPI interface {
	AdminCreateUser(ctx context.Context, in *cognito.AdminCreateUserInput, optFns ...func(*cognito.Options)) (*cognito.AdminCreateUserOutput, error)
	AdminSetUserPassword(ctx context.Context, in *cognito.AdminSetUserPasswordInput, optFns ...func(*cognito.Options)) (*cognito.AdminSetUserPasswordOutput, error)
	AdminDeleteUser(ctx context.Context, in *cognito.AdminDeleteUserInput, optFns ...func(*cognito.Options)) (*cognito.AdminDeleteUserOutput, error)
	InitiateAuth(ctx context.Context, in *cognito.InitiateAuthInput, optFns ...func(*cognito.Options)) (*cognito.InitiateAuthOutput, error)
}

// CognitoProvider keeps credentials in an AWS Cognito user pool. Accounts are
// created confirmed with a permanent password, so admins can provision
// members who sign in immediately.
type CognitoProvider struct {
	client     CognitoAPI
	userPoolID string
	clientID   string
	logger     *zap.Logger
}

// NewCognitoProvider creates a provider over a Cognito client
func NewCognitoProvider(client CognitoAPI, userPoolID, clientID string, logger *zap.Logger) *CognitoProvider {
	return &CognitoProvider{
		client:     client,
		userPoolID: userPoolID,
		clientID:   clientID,
		logger:     logger,
	}
}

// Register creates the pool user and stores its sub as ExternalID
func (p *CognitoProvider) Register(ctx context.Context, user *identity.User, password string) error {
	out, err := p.client.AdminCreateUser(ctx, &cognito.AdminCreateUserInput{
		UserPoolId:    aws.String(p.userPoolID),
		Username:      aws.String(user.Email),
		MessageAction: types.MessageActionTypeSuppress,
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(user.Email)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
			{Name: aws.String("name"), Value: aws.String(user.DisplayName)},
		},
	})
	if err != nil {
		return p.mapError(err)
	}

	_, err = p.client.AdminSetUserPassword(ctx, &cognito.AdminSetUserPasswordInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(user.Email),
		Password:   aws.String(password),
		Permanent:  true,
	})
	if err != nil {
		// a pool user without a usable password would block a retry
		if _, derr := p.client.AdminDeleteUser(ctx, &cognito.AdminDeleteUserInput{
			UserPoolId: aws.String(p.userPoolID),
			Username:   aws.String(user.Email),
		}); derr != nil {
			p.logger.Warn("Failed to remove half-created Cognito user", zap.String("email", user.Email), zap.Error(derr))
		}
		return p.mapError(err)
	}

	user.ExternalID = subOf(out.User)
	return nil
}

// Authenticate runs the USER_PASSWORD_AUTH flow
func (p *CognitoProvider) Authenticate(ctx context.Context, user *identity.User, password string) error {
	_, err := p.client.InitiateAuth(ctx, &cognito.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": user.Email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return p.mapError(err)
	}
	return nil
}

var (
	invalidPassword *types.InvalidPasswordException
	usernameExists  *types.UsernameExistsException
	userNotFound    *types.UserNotFoundException
	notConfirmed    *types.UserNotConfirmedException
	notAuthorized   *types.NotAuthorizedException
	invalidParam    *types.InvalidParameterException
)

func (p *CognitoProvider) mapError(err error) error {
	switch {
	case errors.As(err, &invalidPassword):
		return shared.NewValidationError("Password does not meet the pool policy")
	case errors.As(err, &invalidParam):
		return shared.NewValidationError("Invalid identity parameters")
	case errors.As(err, &usernameExists):
		return shared.NewDomainError(shared.CodeAlreadyExists, "A user with this email already exists")
	case errors.As(err, &userNotFound), errors.As(err, &notAuthorized), errors.As(err, &notConfirmed):
		return shared.ErrNotAuthenticated
	default:
		p.logger.Error("Unmapped Cognito error", zap.Error(err))
		return shared.NewStoreUnavailableError(err)
	}
}

func subOf(u *types.UserType) string {
	if u == nil {
		return ""
	}
	for _, attr := range u.Attributes {
		if aws.ToString(attr.Name) == "sub" {
			return aws.ToString(attr.Value)
		}
	}
	return aws.ToString(u.Username)
}

var _ identity.IdentityProvider = (*CognitoProvider)(nil)
