package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures [NewRedisCache].
type RedisConfig struct {
	// URL is a redis:// or rediss:// URL. It takes precedence over Addr.
	URL string
	// Addr is host:port, used when URL is empty.
	Addr string
	// Prefix namespaces every key stored by this cache.
	Prefix string
	// DialTimeout bounds the initial ping. Zero means 5s.
	DialTimeout time.Duration
}

// RedisCache stores artifacts in Redis so that several service replicas
// share rendered output. Expiry is delegated to Redis TTLs.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	var opts *redis.Options
	switch {
	case cfg.URL != "":
		var err error
		if opts, err = redis.ParseURL(cfg.URL); err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
	case cfg.Addr != "":
		opts = &redis.Options{Addr: cfg.Addr}
	default:
		return nil, errors.New("redis cache needs a url or address")
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	opts.DialTimeout = cfg.DialTimeout

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping redis: %v", ErrNetwork, err)
	}
	return &RedisCache{client: client, prefix: cfg.Prefix}, nil
}

func (c *RedisCache) key(k string) string { return c.prefix + k }

// classify marks transient network failures as retryable.
func classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	return err
}

// Get retrieves a value, retrying transient network failures.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		b, err := c.client.Get(ctx, c.key(key)).Bytes()
		if err != nil {
			return classify(err)
		}
		data = b
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value with the given TTL (zero keeps it forever).
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return RetryWithBackoff(ctx, func() error {
		return classify(c.client.Set(ctx, c.key(key), data, ttl).Err())
	})
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return classify(c.client.Del(ctx, c.key(key)).Err())
}

// Clear deletes every key under the cache prefix. Without a prefix it
// refuses, since that would wipe unrelated data from the database.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	if c.prefix == "" {
		return 0, errors.New("refusing to clear an unprefixed redis cache")
	}
	count := 0
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 256).Iterator()
	for iter.Next(ctx) {
		n, err := c.client.Del(ctx, iter.Val()).Result()
		if err != nil {
			return count, err
		}
		count += int(n)
	}
	return count, iter.Err()
}

// Close closes the client connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
