package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"session-hub/app/domain"
	"session-hub/app/port"
)

const keyPrefix = "session:"

// SessionCache is a Redis-backed session cache. It carries the same
// contract as the in-process cache, so deployments with more than one
// replica can share session state.
// Implements port.SessionCache.
type SessionCache struct {
	client *goredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewSessionCache connects to Redis and verifies the connection.
// A TTL of zero stores bindings without expiry.
func NewSessionCache(addr, password string, ttl time.Duration, logger *slog.Logger) (*SessionCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("redis session cache initialized", "addr", addr, "ttl", ttl)

	return &SessionCache{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "redis_session_cache"),
	}, nil
}

var _ port.SessionCache = (*SessionCache)(nil)

func key(sessionID string) string {
	return keyPrefix + sessionID
}

// Get retrieves the user ID bound to sessionID. redis.Nil maps to
// domain.ErrSessionNotFound; every other error is surfaced as-is so
// transport failures are never mistaken for absence.
func (c *SessionCache) Get(ctx context.Context, sessionID string) (string, error) {
	userID, err := c.client.Get(ctx, key(sessionID)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", domain.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return userID, nil
}

// Set binds sessionID to userID, overwriting any previous binding.
func (c *SessionCache) Set(ctx context.Context, sessionID, userID string) error {
	if err := c.client.Set(ctx, key(sessionID), userID, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Delete removes the binding. Absent keys are a no-op.
func (c *SessionCache) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *SessionCache) Close() error {
	return c.client.Close()
}
