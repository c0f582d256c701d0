// Package redisclient provides the redis-backed run lock. Two concurrent
// reseed runs against one store are a usage error, not a race to tolerate;
// the lock turns the second run into an explicit failure.
package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const runLockKey = "lock:catalog-reseed"

// ErrRunInProgress is returned when another run already holds the lock.
var ErrRunInProgress = errors.New("another reseed run is in progress")

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client and verifies the connection.
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// AcquireRunLock takes the run lock with a TTL guarding against a crashed
// holder. Returns ErrRunInProgress if another run holds it.
func (c *Client) AcquireRunLock(ctx context.Context, ttl time.Duration) error {
	ok, err := c.rdb.SetNX(ctx, runLockKey, "1", ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return ErrRunInProgress
	}
	return nil
}

// ReleaseRunLock releases the run lock.
func (c *Client) ReleaseRunLock(ctx context.Context) error {
	return c.rdb.Del(ctx, runLockKey).Err()
}
