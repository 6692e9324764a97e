package identityprovider

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New builds the configured identity provider
func New(ctx context.Context, cfg config.IdentityConfig, logger *zap.Logger) (identity.IdentityProvider, error) {
	switch cfg.Provider {
	case "", "local":
		logger.Info("Using local identity provider")
		return NewLocalProvider(), nil
	case "cognito":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.CognitoRegion))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		logger.Info("Using Cognito identity provider",
			zap.String("region", cfg.CognitoRegion),
			zap.String("user_pool_id", cfg.CognitoUserPoolID),
		)
		return NewCognitoProvider(cognito.NewFromConfig(awsCfg), cfg.CognitoUserPoolID, cfg.CognitoClientID, logger), nil
	default:
		return nil, fmt.Errorf("unknown identity provider %q", cfg.Provider)
	}
}
