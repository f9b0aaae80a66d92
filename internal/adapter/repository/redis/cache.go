package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/cashflow/internal/usecase"
)

// Cache implements usecase.Cache on plain Redis strings.
type Cache struct {
	client redis.Cmdable
	ns     keyspace
}

// NewCache creates a Cache under the "cache:" namespace.
func NewCache(client redis.Cmdable) *Cache {
	return &Cache{client: client, ns: cacheKeyspace}
}

// Get returns the value for key or usecase.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.ns.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, usecase.ErrCacheMiss
	case err != nil:
		return nil, err
	}
	return val, nil
}

// Set stores value for ttl. A zero ttl keeps the key until deleted.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.ns.key(key), value, ttl).Err()
}

// Delete removes key. Deleting an absent key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.ns.key(key)).Err()
}
