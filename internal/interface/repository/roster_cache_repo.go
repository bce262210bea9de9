package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"findmymechanic-service/internal/domain/entity"
	"findmymechanic-service/internal/domain/repository"
	"findmymechanic-service/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const rosterKey = "match:roster"

// RedisRosterCache implements RosterCache on Redis. Failures degrade to a
// cache miss; the matching engine falls back to the profile repository.
type RedisRosterCache struct {
	rdb    *redis.Client
	logger logger.Logger
}

// NewRedisRosterCache connects to Redis and returns a roster cache.
func NewRedisRosterCache(url string, logger logger.Logger) (repository.RosterCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisRosterCache{rdb: rdb, logger: logger}, nil
}

// GetRoster returns the cached roster and true on a hit.
func (c *RedisRosterCache) GetRoster(ctx context.Context) ([]*entity.Profile, bool) {
	data, err := c.rdb.Get(ctx, rosterKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Roster cache read failed", "error", err)
		}
		return nil, false
	}

	var roster []*entity.Profile
	if err := json.Unmarshal(data, &roster); err != nil {
		c.logger.Warn("Roster cache entry corrupt, dropping", "error", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return roster, true
}

// SetRoster stores the roster with the given TTL.
func (c *RedisRosterCache) SetRoster(ctx context.Context, roster []*entity.Profile, ttl time.Duration) {
	data, err := json.Marshal(roster)
	if err != nil {
		c.logger.Warn("Roster cache encode failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, rosterKey, data, ttl).Err(); err != nil {
		c.logger.Warn("Roster cache write failed", "error", err)
	}
}

// Invalidate drops the cached roster.
func (c *RedisRosterCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, rosterKey).Err(); err != nil {
		c.logger.Warn("Roster cache invalidate failed", "error", err)
	}
}

// Close closes the underlying Redis connection.
func (c *RedisRosterCache) Close() error {
	return c.rdb.Close()
}
