package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rafaelleal24/smartpantry/internal/core/logger"
	"github.com/rafaelleal24/smartpantry/internal/core/port"
)

// Cache stores JSON-encoded values of one type under "<namespace>:<key>".
// A miss and an undecodable entry both read as (nil, nil).
type Cache[T any] struct {
	client    *Client
	namespace string
}

func NewCache[T any](client *Client, namespace string) port.CachePort[T] {
	return &Cache[T]{client: client, namespace: namespace}
}

func (c *Cache[T]) key(id string) string {
	return c.namespace + ":" + id
}

func (c *Cache[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := c.client.Get(ctx, c.key(id))
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", c.key(id), err)
	}

	value := new(T)
	if err := json.Unmarshal([]byte(data), value); err != nil {
		logger.Warn(ctx, "cache: evicting undecodable entry", map[string]any{
			"cache.key": c.key(id),
			"error":     err.Error(),
		})
		_ = c.client.Del(ctx, c.key(id))
		return nil, nil
	}
	return value, nil
}

// Set stores value for ttl. A nil value clears the entry.
func (c *Cache[T]) Set(ctx context.Context, id string, value *T, ttl time.Duration) error {
	if value == nil {
		return c.Del(ctx, id)
	}
	data, err := c.encode(id, value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(id), data, ttl)
}

func (c *Cache[T]) SetNX(ctx context.Context, id string, value *T, ttl time.Duration) (bool, error) {
	data, err := c.encode(id, value)
	if err != nil {
		return false, err
	}
	return c.client.SetNX(ctx, c.key(id), data, ttl)
}

func (c *Cache[T]) Del(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id))
}

func (c *Cache[T]) encode(id string, value *T) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("cache encode %s: %w", c.key(id), err)
	}
	return string(data), nil
}
