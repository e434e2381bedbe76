package cache

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	lru "github.com/gogpu/gg/cache"
)

// MemoryCache is an in-process LRU cache. Entries are spread over the
// shards of a gogpu sharded cache, each with its own lock, so concurrent
// server requests rarely contend.
type MemoryCache struct {
	entries *lru.ShardedCache[string, memoryEntry]
	closed  atomic.Bool
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache returns a cache holding roughly capacity entries. The
// least recently used entries are evicted first.
func NewMemoryCache(capacity int) *MemoryCache {
	perShard := (capacity + lru.DefaultShardCount - 1) / lru.DefaultShardCount
	return &MemoryCache{
		entries: lru.NewSharded[string, memoryEntry](perShard, lru.StringHasher),
		now:     time.Now,
	}
}

// Get implements Cache. The returned slice is a copy.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if c.closed.Load() {
		return nil, false, ErrClosed
	}
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.entries.Delete(key)
		return nil, false, nil
	}
	return slices.Clone(e.data), true, nil
}

// Set implements Cache. data is copied.
func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrClosed
	}
	e := memoryEntry{data: slices.Clone(data)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries.Set(key, e)
	return nil
}

// Delete implements Cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.entries.Delete(key)
	return nil
}

// Clear implements Clearer.
func (c *MemoryCache) Clear(context.Context) error {
	c.entries.Clear()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int { return c.entries.Len() }

// Close drops every entry; later calls fail with ErrClosed.
func (c *MemoryCache) Close() error {
	c.closed.Store(true)
	c.entries.Clear()
	return nil
}

var (
	_ Cache   = (*MemoryCache)(nil)
	_ Clearer = (*MemoryCache)(nil)
)
