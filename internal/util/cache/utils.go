package cache_utils

import (
	"context"
	"encoding/json"
	"time"

	"tasktracker/internal/cache"

	"github.com/valkey-io/valkey-go"
)

const (
	DefaultCacheTimeout = 10 * time.Second
	DefaultCacheExpiry  = 10 * time.Minute
	DefaultQueueTimeout = 30 * time.Second
)

// CacheUtil stores JSON-encoded values of a single type under a shared key prefix.
type CacheUtil[T any] struct {
	client valkey.Client
	prefix string
	expiry time.Duration
}

func NewCacheUtil[T any](client valkey.Client, prefix string) *CacheUtil[T] {
	return &CacheUtil[T]{
		client: client,
		prefix: prefix,
		expiry: DefaultCacheExpiry,
	}
}

func TestCacheConnection() {
	probe := NewCacheUtil[string](cache.GetCache(), "probe:")

	value := "valkey_is_working"
	probe.Set("connection", &value)

	stored := probe.Get("connection")
	if stored == nil || *stored != value {
		panic("Cache probe failed: stored value could not be read back")
	}

	probe.Invalidate("connection")
	if probe.Get("connection") != nil {
		panic("Cache probe failed: probe key was not invalidated")
	}
}

func (c *CacheUtil[T]) Get(key string) *T {
	ctx, cancel := c.operationContext()
	defer cancel()

	result := c.client.Do(ctx, c.client.B().Get().Key(c.prefix+key).Build())
	if result.Error() != nil {
		return nil
	}

	data, err := result.AsBytes()
	if err != nil {
		return nil
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil
	}

	return &item
}

func (c *CacheUtil[T]) Set(key string, item *T) {
	ctx, cancel := c.operationContext()
	defer cancel()

	data, err := json.Marshal(item)
	if err != nil {
		return
	}

	c.client.Do(ctx, c.client.B().Set().Key(c.prefix+key).Value(string(data)).Ex(c.expiry).Build())
}

func (c *CacheUtil[T]) Invalidate(key string) {
	ctx, cancel := c.operationContext()
	defer cancel()

	c.client.Do(ctx, c.client.B().Del().Key(c.prefix+key).Build())
}

func (c *CacheUtil[T]) operationContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), DefaultCacheTimeout)
}
