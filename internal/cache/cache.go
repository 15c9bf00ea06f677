package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	analysisKeyPrefix = "analysis:" // analysis:{building_design_id}:{city}
	DefaultTTL        = time.Hour
	scanBatch         = 100
)

// Cache stores derived analysis results. It is an optimisation only: every
// caller must be able to recompute on a miss.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	DeleteMultiple(ctx context.Context, keys []string) error
	InvalidateBuilding(ctx context.Context, buildingDesignID string) error
}

// AnalysisKey is the cache key of one design analysed in one city.
func AnalysisKey(buildingDesignID, city string) string {
	return fmt.Sprintf("%s%s:%s", analysisKeyPrefix, buildingDesignID, city)
}

// AllAnalysesPattern matches every cached analysis.
const AllAnalysesPattern = analysisKeyPrefix + "*"

func buildingPattern(buildingDesignID string) string {
	return fmt.Sprintf("%s%s:*", analysisKeyPrefix, buildingDesignID)
}

// RedisCache keeps JSON-encoded values in Redis with a fixed expiry.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache. A non-positive ttl falls back to DefaultTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get decodes the value at key into dst and reports whether it was present.
func (c *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores value at key for the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Keys lists keys matching a glob pattern using SCAN.
func (c *RedisCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("cache scan %s: %w", pattern, err)
	}
	return keys, nil
}

// DeleteMultiple removes keys; an empty list is a no-op.
func (c *RedisCache) DeleteMultiple(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// InvalidateBuilding drops every cached city result of a design.
func (c *RedisCache) InvalidateBuilding(ctx context.Context, buildingDesignID string) error {
	keys, err := c.Keys(ctx, buildingPattern(buildingDesignID))
	if err != nil {
		return err
	}
	return c.DeleteMultiple(ctx, keys)
}

// Noop is used when Redis is disabled; every lookup misses.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, any) error { return nil }
func (Noop) Keys(context.Context, string) ([]string, error) { return nil, nil }
func (Noop) DeleteMultiple(context.Context, []string) error { return nil }
func (Noop) InvalidateBuilding(context.Context, string) error { return nil }
