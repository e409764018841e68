package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ListCache caches query results under version-stamped keys. Invalidation
// bumps a single version counter, which orphans every key written under the
// previous version; orphans age out via TTL. Concurrent misses for the same
// key are collapsed through singleflight.
type ListCache struct {
	rdb    *redis.Client
	sf     *singleflight.Group
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

func NewListCache(rdb *redis.Client, prefix string, ttl time.Duration, logger ...*zap.Logger) *ListCache {
	l := zap.L().Named("cache." + prefix)
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cache." + prefix)
	}
	return &ListCache{
		rdb:    rdb,
		sf:     &singleflight.Group{},
		prefix: prefix,
		ttl:    ttl,
		logger: l,
	}
}

func (c *ListCache) version(ctx context.Context) int64 {
	v, err := c.rdb.Get(ctx, c.prefix+":ver").Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("read cache version failed", zap.Error(err))
	}
	return v
}

func (c *ListCache) entryKey(version int64, key string) string {
	return fmt.Sprintf("%s:list:v%d:%s", c.prefix, version, key)
}

// Invalidate bumps the version so every cached list becomes unreachable.
// Called after any write to the cached collection.
func (c *ListCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, c.prefix+":ver").Err(); err != nil {
		c.logger.Warn("bump cache version failed", zap.Error(err))
	}
}

// GetOrLoad returns the cached value for key, or runs load and caches the
// result. A nil cache or redis failure degrades to calling load directly.
func GetOrLoad[T any](ctx context.Context, c *ListCache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if c == nil || c.rdb == nil {
		return load(ctx)
	}

	fullKey := c.entryKey(c.version(ctx), key)

	if raw, err := c.rdb.Get(ctx, fullKey).Bytes(); err == nil {
		var out T
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		c.logger.Warn("cache entry unmarshal failed", zap.String("key", fullKey), zap.Error(err))
	}

	v, err, _ := c.sf.Do(fullKey, func() (any, error) {
		out, err := load(ctx)
		if err != nil {
			return zero, err
		}
		if raw, marshalErr := json.Marshal(out); marshalErr == nil {
			if setErr := c.rdb.Set(ctx, fullKey, raw, c.ttl).Err(); setErr != nil {
				c.logger.Warn("cache entry set failed", zap.String("key", fullKey), zap.Error(setErr))
			}
		}
		return out, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}
