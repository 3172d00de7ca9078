package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisListCache implements ListCache on a Redis backend.
type RedisListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisListCache creates a list cache backed by the given Redis client.
// A non-positive ttl falls back to DefaultTTL.
func NewRedisListCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisListCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisListCache{client: client, ttl: ttl, logger: logger}
}

var _ ListCache = (*RedisListCache)(nil)

func versionKey(entity Entity) string {
	return fmt.Sprintf("listcache:ver:%s", entity)
}

func dataKey(entity Entity, ver Version, key string) string {
	return fmt.Sprintf("listcache:%s:v%d:%s", entity, ver, key)
}

// currentVersion reads the entity's invalidation counter. A missing key
// means the entity was never invalidated and counts as version zero.
func (c *RedisListCache) currentVersion(ctx context.Context, entity Entity) (Version, error) {
	ver, err := c.client.Get(ctx, versionKey(entity)).Int64()
	if err != nil && err != redis.Nil {
		return VersionUnknown, err
	}
	return Version(ver), nil
}

func (c *RedisListCache) Get(ctx context.Context, entity Entity, key string, dest any) (Version, bool) {
	ver, err := c.currentVersion(ctx, entity)
	if err != nil {
		c.logger.Warn("list cache version lookup failed", slog.String("entity", string(entity)), slog.String("error", err.Error()))
		return VersionUnknown, false
	}
	raw, err := c.client.Get(ctx, dataKey(entity, ver, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("list cache read failed", slog.String("entity", string(entity)), slog.String("error", err.Error()))
		}
		return ver, false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("list cache entry unmarshal failed", slog.String("entity", string(entity)), slog.String("error", err.Error()))
		return ver, false
	}
	return ver, true
}

// Set stores value under the version pinned by the preceding Get. If a
// mutation invalidated the entity in between, the write lands in the
// superseded namespace and is never served.
func (c *RedisListCache) Set(ctx context.Context, entity Entity, key string, ver Version, value any) {
	if ver < 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("list cache entry marshal failed", slog.String("entity", string(entity)), slog.String("error", err.Error()))
		return
	}
	if err := c.client.Set(ctx, dataKey(entity, ver, key), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("list cache write failed", slog.String("entity", string(entity)), slog.String("error", err.Error()))
	}
}

func (c *RedisListCache) Invalidate(ctx context.Context, entities ...Entity) {
	for _, entity := range entities {
		if err := c.client.Incr(ctx, versionKey(entity)).Err(); err != nil {
			c.logger.Warn("list cache invalidation failed", slog.String("entity", string(entity)), slog.String("error", err.Error()))
		}
	}
}
