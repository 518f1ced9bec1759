package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces cache entries so the library can share a Redis
// database with other data.
const redisKeyPrefix = "ipmeta:"

// Redis implements Cache on top of a Redis server, so several processes can
// share one response cache. Values are stored as JSON; expiry is enforced
// server-side through the per-key TTL, and eviction at capacity is left to
// Redis' own maxmemory policy.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	ctx    context.Context
}

// NewRedis connects to the Redis server at addr and verifies the connection
// with a ping. A zero ttl falls back to DefaultTTL.
func NewRedis(addr, password string, db int, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl, ctx: ctx}, nil
}

// Contains implements Cache.
func (c *Redis) Contains(key string) bool {
	n, err := c.client.Exists(c.ctx, redisKeyPrefix+key).Result()
	return err == nil && n > 0
}

// Get implements Cache. Redis errors and undecodable values are treated as
// misses; the Handler then falls through to the network.
func (c *Redis) Get(key string) (map[string]any, bool) {
	val, err := c.client.Get(c.ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return nil, false
	}

	var value map[string]any
	if err := json.Unmarshal([]byte(val), &value); err != nil {
		return nil, false
	}
	return value, true
}

// Set implements Cache. Values that fail to encode and Redis write errors
// are dropped silently: a failed cache write only costs a future network
// request.
func (c *Redis) Set(key string, value map[string]any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(c.ctx, redisKeyPrefix+key, data, c.ttl)
}

// Close closes the Redis connection. Close is not part of the Cache
// interface; callers owning the cache lifecycle call it directly.
func (c *Redis) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
