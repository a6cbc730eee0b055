// Package cache provides an optional Redis-backed byte cache for raw
// dataset files, so repeated report runs can skip re-downloading the
// source tables.
//
// All keys are namespaced under the taskatlas prefix so the cache can
// safely share a Redis server with other tools. The client is
// thread-safe; the pipeline itself only ever uses it from one
// goroutine.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DatasetKey returns the Redis key for one cached dataset file.
// Pattern: taskatlas:dataset:{repository}:{file}
func DatasetKey(repository, file string) string {
	return fmt.Sprintf("taskatlas:dataset:%s:%s", repository, file)
}

// Client provides namespaced Redis operations for cached dataset files.
// It implements dataset.Store.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a cache client with the given connection options.
// Cached entries expire after ttl; ttl must be positive.
func NewClient(redisOpts *redis.Options, ttl time.Duration) (*Client, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("cache TTL must be positive, got %s", ttl)
	}

	return &Client{
		rdb: redis.NewClient(redisOpts),
		ttl: ttl,
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
// After calling Close(), the client should not be used.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for failing fast before a run.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Get retrieves the cached bytes for one dataset file.
// Returns (nil, redis.Nil) on a miss; use IsNotFound() to check.
func (c *Client) Get(ctx context.Context, repository, file string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, DatasetKey(repository, file)).Bytes()
	if err == redis.Nil {
		return nil, redis.Nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached dataset: %w", err)
	}
	return data, nil
}

// Set stores the bytes for one dataset file with the client's TTL.
// Overwriting an existing entry refreshes its expiry.
func (c *Client) Set(ctx context.Context, repository, file string, data []byte) error {
	if err := c.rdb.Set(ctx, DatasetKey(repository, file), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache dataset: %w", err)
	}
	return nil
}

// Contains checks whether a dataset file is cached without fetching it.
func (c *Client) Contains(ctx context.Context, repository, file string) (bool, error) {
	exists, err := c.rdb.Exists(ctx, DatasetKey(repository, file)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check cache: %w", err)
	}
	return exists > 0, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error (redis.Nil).
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
