package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"product-pricing-service/internal/marketdata"
	domain "product-pricing-service/pkg/types"
)

const defaultSnapshotTTL = 15 * time.Minute

// RedisCache implements SnapshotCache on redis with per-key TTL expiry.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOption configures the RedisCache.
type RedisOption func(*RedisCache)

// WithTTL overrides the default snapshot TTL.
func WithTTL(ttl time.Duration) RedisOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewRedisCache creates a snapshot cache against the given redis address.
func NewRedisCache(addr, password string, db int, opts ...RedisOption) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	c := &RedisCache{client: client, ttl: defaultSnapshotTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewRedisCacheFromClient wraps an existing client; used in tests.
func NewRedisCacheFromClient(client *redis.Client, opts ...RedisOption) *RedisCache {
	c := &RedisCache{client: client, ttl: defaultSnapshotTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get implements SnapshotCache.
func (c *RedisCache) Get(
	ctx context.Context,
	platform domain.Platform,
	query string,
) ([]marketdata.RawListing, bool, error) {
	raw, err := c.client.Get(ctx, snapshotKey(platform, query)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var records []marketdata.RawListing
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		// A corrupt entry reads as a miss; it will be overwritten.
		return nil, false, nil
	}

	return records, true, nil
}

// Set implements SnapshotCache.
func (c *RedisCache) Set(
	ctx context.Context,
	platform domain.Platform,
	query string,
	records []marketdata.RawListing,
) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := c.client.Set(ctx, snapshotKey(platform, query), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping implements SnapshotCache.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close implements SnapshotCache.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func snapshotKey(platform domain.Platform, query string) string {
	q := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return fmt.Sprintf("snapshot:%s:%s", platform, q)
}
