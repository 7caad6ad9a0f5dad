package funkos

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements CacheStore over a shared redis deployment
type RedisCache struct {
	client *redis.Client
}

var _ CacheStore = (*RedisCache)(nil)

// NewRedisCache wraps an existing client
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// NewRedisCacheURL connects using a redis URL
func NewRedisCacheURL(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	return &RedisCache{client: redis.NewClient(opts)}, nil
}

// Get retrieves a value; a missing key is a miss, not an error
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Set stores a value with the given TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Remove deletes an entry, a no-op when absent
func (c *RedisCache) Remove(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the underlying connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
