package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultSessionKeyPrefix = "grafica:session:active-tenant:"

// RedisSessionStore keeps the active-tenant selection in Redis in front of a
// durable store. Reads go Redis -> durable (warming Redis on a hit), writes go
// durable -> Redis. A Redis failure never fails the request; the durable
// store stays authoritative.
type RedisSessionStore struct {
	client    redis.UniversalClient
	durable   identity.ActiveTenantStore
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisSessionStoreOption is a functional option for configuring the store
type RedisSessionStoreOption func(*RedisSessionStore)

// WithSessionTTL sets the Redis key expiry (0 keeps keys forever)
func WithSessionTTL(ttl time.Duration) RedisSessionStoreOption {
	return func(s *RedisSessionStore) {
		s.ttl = ttl
	}
}

// WithSessionLogger sets the logger for the store
func WithSessionLogger(logger *zap.Logger) RedisSessionStoreOption {
	return func(s *RedisSessionStore) {
		s.logger = logger
	}
}

// WithSessionKeyPrefix overrides the key prefix
func WithSessionKeyPrefix(prefix string) RedisSessionStoreOption {
	return func(s *RedisSessionStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// NewRedisSessionStore creates a session store on an existing Redis client
func NewRedisSessionStore(client redis.UniversalClient, durable identity.ActiveTenantStore, opts ...RedisSessionStoreOption) *RedisSessionStore {
	s := &RedisSessionStore{
		client:    client,
		durable:   durable,
		keyPrefix: defaultSessionKeyPrefix,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisSessionStore) key(userID uuid.UUID) string {
	return s.keyPrefix + userID.String()
}

// Get returns the stored selection, or uuid.Nil when there is none
func (s *RedisSessionStore) Get(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	value, err := s.client.Get(ctx, s.key(userID)).Result()
	switch {
	case err == nil:
		if tenantID, perr := uuid.Parse(value); perr == nil {
			return tenantID, nil
		}
		s.logger.Warn("Discarding malformed session entry", zap.String("user_id", userID.String()))
	case errors.Is(err, redis.Nil):
	default:
		s.logger.Warn("Session cache read failed", zap.String("user_id", userID.String()), zap.Error(err))
	}

	tenantID, err := s.durable.Get(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if tenantID != uuid.Nil {
		s.write(ctx, userID, tenantID)
	}
	return tenantID, nil
}

// Set stores the selection durably, then refreshes Redis
func (s *RedisSessionStore) Set(ctx context.Context, userID, tenantID uuid.UUID) error {
	if err := s.durable.Set(ctx, userID, tenantID); err != nil {
		return err
	}
	s.write(ctx, userID, tenantID)
	return nil
}

// Clear forgets the selection in both tiers
func (s *RedisSessionStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.durable.Clear(ctx, userID); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		s.logger.Warn("Session cache delete failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
	return nil
}

func (s *RedisSessionStore) write(ctx context.Context, userID, tenantID uuid.UUID) {
	if err := s.client.Set(ctx, s.key(userID), tenantID.String(), s.ttl).Err(); err != nil {
		s.logger.Warn("Session cache write failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// Ping reports whether Redis is reachable
func (s *RedisSessionStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

var _ identity.ActiveTenantStore = (*RedisSessionStore)(nil)
