package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"geocache-finder/logger"
)

// CacheRedisClient is a RedisClient backed by go-redis.
type CacheRedisClient struct {
	client *redis.Client
}

// NewCacheRedisClient wraps a go-redis client. Unlike the store, a Redis outage is
// not fatal: callers treat every error as a cache miss.
func NewCacheRedisClient(client *redis.Client) *CacheRedisClient {
	return &CacheRedisClient{client: client}
}

// OpenCacheRedisClient connects to addr; an empty addr disables the cache (nil, nil).
func OpenCacheRedisClient(ctx context.Context, addr, password string, database int) (*CacheRedisClient, error) {
	if addr == "" {
		return nil, nil
	}
	c := NewCacheRedisClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	}))
	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", addr, err)
	}
	logger.L().Info("redis_connected", "addr", addr, "db", database)
	return c, nil
}

func (r *CacheRedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *CacheRedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

func (r *CacheRedisClient) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *CacheRedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *CacheRedisClient) Close() error {
	return r.client.Close()
}
