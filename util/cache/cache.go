package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultSize = 1024
	DefaultTTL  = 10 * time.Minute
)

// Cache is an in-memory, size bounded cache whose entries expire after a
// fixed TTL. Keys are case insensitive.
type Cache[V any] struct {
	lru *expirable.LRU[string, V]
}

func New[V any](size int, ttl time.Duration) *Cache[V] {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[V]{
		lru: expirable.NewLRU[string, V](size, nil, ttl),
	}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(strings.ToLower(key))
}

func (c *Cache[V]) Set(key string, value V) {
	c.lru.Add(strings.ToLower(key), value)
}

func (c *Cache[V]) Remove(key string) {
	c.lru.Remove(strings.ToLower(key))
}

func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

func (c *Cache[V]) Purge() {
	c.lru.Purge()
}
