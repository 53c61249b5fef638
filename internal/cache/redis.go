package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "feed:response:"

// RedisResponseCache shares rendered feeds across replicas. TTL is
// enforced by Redis key expiry rather than a read-time check.
type RedisResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisResponseCache wraps an existing Redis client.
func NewRedisResponseCache(client *redis.Client, ttl time.Duration) *RedisResponseCache {
	return &RedisResponseCache{client: client, ttl: ttl}
}

// Get returns the live entry for a URL, if any.
func (c *RedisResponseCache) Get(ctx context.Context, url string) (Entry, bool, error) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+url).Result()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return Entry{}, false, err
	}
	return entry, true, nil
}

// Put stores a rendered document for a URL with the cache TTL.
func (c *RedisResponseCache) Put(ctx context.Context, url string, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKeyPrefix+url, raw, c.ttl).Err()
}
