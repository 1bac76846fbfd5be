package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQuoteCache implements QuoteCache using Redis.
// Suitable for distributed deployments where multiple instances should
// serve the same cached quotes.
type RedisQuoteCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisQuoteCache creates a new Redis-backed quote cache
func NewRedisQuoteCache(cfg RedisConfig) (*RedisQuoteCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisQuoteCache{
		client:    client,
		keyPrefix: "rating:quote:",
	}, nil
}

// NewRedisQuoteCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisQuoteCacheWithClient(client *redis.Client, keyPrefix string) *RedisQuoteCache {
	if keyPrefix == "" {
		keyPrefix = "rating:quote:"
	}
	return &RedisQuoteCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached payload for the key if present
func (c *RedisQuoteCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached quote: %w", err)
	}
	return payload, true, nil
}

// Set stores the payload under the key with a TTL
func (c *RedisQuoteCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache quote: %w", err)
	}
	return nil
}

// Delete removes the key if present
func (c *RedisQuoteCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete cached quote: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisQuoteCache) Close() error {
	return c.client.Close()
}

// Ensure RedisQuoteCache implements QuoteCache
var _ QuoteCache = (*RedisQuoteCache)(nil)
