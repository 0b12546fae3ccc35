// Package redis implements the Redis response cache for the analytics
// read side. Dashboard aggregations are expensive multi-table scans that
// repeat with identical filters, so responses are cached as JSON under a
// filter-derived key and flushed whenever an upload changes the data.
//
// The cache is strictly best-effort: a circuit breaker guards every call
// and a degraded Redis only costs latency, never availability.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spj-hub/placement-analytics/pkg/circuitbreaker"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// PoolSize is the maximum number of socket connections.
	PoolSize int

	// MinIdleConns is the minimum number of idle connections.
	MinIdleConns int

	// MaxRetries is the maximum number of retries before giving up.
	MaxRetries int

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         6379,
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Addr returns the Redis address in "host:port" format.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrCacheMiss is returned when the requested key is not found in cache.
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrCacheConnection is returned when Redis connection fails.
	ErrCacheConnection = errors.New("cache: connection failed")

	// ErrCacheSerialization is returned when serialization/deserialization fails.
	ErrCacheSerialization = errors.New("cache: serialization failed")

	// ErrCacheKeyEmpty is returned when an empty key is provided.
	ErrCacheKeyEmpty = errors.New("cache: key cannot be empty")
)

// ══════════════════════════════════════════════════════════════════════════════
// KEYS AND TTLs
// ══════════════════════════════════════════════════════════════════════════════

// PrefixAnalytics namespaces cached analytics responses. Invalidation
// deletes the whole namespace; per-key precision is not worth the
// bookkeeping given how cheap a recompute is.
const PrefixAnalytics = "analytics:"

// TTLAnalytics bounds staleness if an invalidation is ever lost.
const TTLAnalytics = 5 * time.Minute

// ══════════════════════════════════════════════════════════════════════════════
// CACHE
// ══════════════════════════════════════════════════════════════════════════════

// Cache is a JSON-over-Redis response cache guarded by a circuit breaker.
type Cache struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewCache connects to Redis and verifies the connection.
func NewCache(ctx context.Context, cfg Config, breaker *circuitbreaker.CircuitBreaker) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	return &Cache{client: client, breaker: breaker}, nil
}

// NewCacheFromClient wraps an existing client. Used in tests.
func NewCacheFromClient(client *redis.Client, breaker *circuitbreaker.CircuitBreaker) *Cache {
	return &Cache{client: client, breaker: breaker}
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// execute routes a call through the breaker when one is configured.
func (c *Cache) execute(ctx context.Context, fn func(context.Context) error) error {
	if c.breaker == nil {
		return fn(ctx)
	}
	return c.breaker.Execute(ctx, fn)
}

// GetJSON fetches the key and unmarshals it into dest. Returns
// ErrCacheMiss when the key does not exist.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) error {
	if key == "" {
		return ErrCacheKeyEmpty
	}

	var payload []byte
	err := c.execute(ctx, func(ctx context.Context) error {
		data, err := c.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrCacheMiss
			}
			return fmt.Errorf("%w: %v", ErrCacheConnection, err)
		}
		payload = data
		return nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	return nil
}

// SetJSON marshals the value and stores it under the key with the TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if key == "" {
		return ErrCacheKeyEmpty
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	return c.execute(ctx, func(ctx context.Context) error {
		if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrCacheConnection, err)
		}
		return nil
	})
}

// InvalidatePrefix deletes every key under the prefix. SCAN keeps the
// server responsive; the key count here is small.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) error {
	if prefix == "" {
		return ErrCacheKeyEmpty
	}

	return c.execute(ctx, func(ctx context.Context) error {
		iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
				return fmt.Errorf("%w: %v", ErrCacheConnection, err)
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrCacheConnection, err)
		}
		return nil
	})
}
