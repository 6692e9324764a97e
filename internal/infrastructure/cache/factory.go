package cache

import (
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SessionStoreFactory picks the active-tenant store from configuration
type SessionStoreFactory struct {
	cfg     config.SessionConfig
	client  redis.UniversalClient
	durable identity.ActiveTenantStore
	logger  *zap.Logger
}

// SessionStoreFactoryOption is a functional option for configuring the factory
type SessionStoreFactoryOption func(*SessionStoreFactory)

// WithLogger sets the logger for the factory and the stores it creates
func WithLogger(logger *zap.Logger) SessionStoreFactoryOption {
	return func(f *SessionStoreFactory) {
		f.logger = logger
	}
}

// WithRedisClient provides the shared Redis client. Without one the factory
// always returns the durable store.
func WithRedisClient(client redis.UniversalClient) SessionStoreFactoryOption {
	return func(f *SessionStoreFactory) {
		f.client = client
	}
}

// NewSessionStoreFactory creates a new factory
func NewSessionStoreFactory(cfg config.SessionConfig, durable identity.ActiveTenantStore, opts ...SessionStoreFactoryOption) *SessionStoreFactory {
	f := &SessionStoreFactory{
		cfg:     cfg,
		durable: durable,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns the Redis-fronted store when configured and a client is
// available, otherwise the durable store
func (f *SessionStoreFactory) CreateStore() identity.ActiveTenantStore {
	if f.cfg.Store != "redis" {
		f.logger.Info("Using database session store")
		return f.durable
	}
	if f.client == nil {
		f.logger.Warn("Redis session store requested but Redis is unavailable, using database store")
		return f.durable
	}
	f.logger.Info("Using Redis session store", zap.Duration("ttl", f.cfg.TTL))
	return NewRedisSessionStore(f.client, f.durable,
		WithSessionTTL(f.cfg.TTL),
		WithSessionLogger(f.logger),
	)
}
