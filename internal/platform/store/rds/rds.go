// Package rds provides a Redis client used for fast-path markers and caches
package rds

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures redis connectivity
type Config struct {
	Addr     string
	DB       int
	Password string
}

// RDS is a thin wrapper over go-redis
type RDS struct {
	C *redis.Client
}

// Open connects and verifies the server is reachable
func Open(ctx context.Context, cfg Config) (*RDS, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return &RDS{C: c}, nil
}

// SetNX sets key to val only if it does not exist, with a TTL.
// Returns true when this caller won the claim
func (r *RDS) SetNX(ctx context.Context, key, val string, ttl time.Duration) (bool, error) {
	return r.C.SetNX(ctx, key, val, ttl).Result()
}

// Del removes keys, ignoring those that do not exist
func (r *RDS) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.C.Del(ctx, keys...).Err()
}

// Ping reports server reachability
func (r *RDS) Ping(ctx context.Context) error { return r.C.Ping(ctx).Err() }

// Close releases the connection pool
func (r *RDS) Close() error { return r.C.Close() }
