// Package cache stores JSON snapshots of hot read endpoints in Redis.
// A Cache with no client is valid and never hits.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyTransactions = "transactions"
	KeyAnalytics    = "analytics"
)

const (
	TransactionsTTL = 60 * time.Second
	AnalyticsTTL    = 5 * time.Minute
)

// client is the part of *redis.Client the cache uses.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

type Cache struct {
	rdb client
}

// New wraps rdb. A nil rdb disables caching.
func New(rdb *redis.Client) *Cache {
	if rdb == nil {
		return &Cache{}
	}
	return &Cache{rdb: rdb}
}

func (c *Cache) Enabled() bool { return c != nil && c.rdb != nil }

// GetJSON decodes key into dst. It reports false on a miss, a disabled cache
// or an undecodable value.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dst) == nil
}

// SetJSON stores v under key for ttl.
func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return c.rdb.SetEx(ctx, key, data, ttl).Err()
}

// Invalidate drops the snapshots derived from transactions.
func (c *Cache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	err := c.rdb.Del(ctx, KeyTransactions, KeyAnalytics).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}
