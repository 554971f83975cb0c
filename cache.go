package recs

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/go-recs/recs/schema"
)

// Cache is the interface for caching fetched records. Users may plug in
// their preferred caching solution (e.g., Redis, Memcached); MemoryCache
// is a process-local implementation suitable for tests and small setups.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL.
	// If ttl is 0, the value should not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes all values with the given prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// Clear removes all values from the cache.
	Clear(ctx context.Context) error
}

// recordKey is the cache key of one record: table name and identifier.
func recordKey(s *schema.Schema, id uuid.UUID) string {
	return s.TableName() + ":" + id.String()
}

// cacheLoad decodes a cached record into rec. Reports false on miss or
// on any cache failure; failures are logged, never surfaced.
func (c *Client) cacheLoad(ctx context.Context, key string, rec Record) bool {
	if c == nil || c.cache == nil {
		return false
	}
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.WarnContext(ctx, "cache get failed", "key", key, "err", err)
		return false
	}
	if data == nil {
		return false
	}
	if err := msgpack.Unmarshal(data, rec); err != nil {
		c.log.WarnContext(ctx, "cache decode failed", "key", key, "err", err)
		return false
	}
	return true
}

// cacheStore encodes and stores a record. Failures are logged only.
func (c *Client) cacheStore(ctx context.Context, key string, rec Record) {
	if c == nil || c.cache == nil {
		return
	}
	data, err := msgpack.Marshal(rec)
	if err != nil {
		c.log.WarnContext(ctx, "cache encode failed", "key", key, "err", err)
		return
	}
	if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil {
		c.log.WarnContext(ctx, "cache set failed", "key", key, "err", err)
	}
}

func evictKey(ctx context.Context, c *Client, key string) {
	if c == nil || c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, key); err != nil {
		c.log.WarnContext(ctx, "cache delete failed", "key", key, "err", err)
	}
}

// evictRecord drops the record's cache entry after a mutation. Records
// without an identifier have no cache entry.
func evictRecord(ctx context.Context, c *Client, rec Record) {
	if c == nil || c.cache == nil {
		return
	}
	id, err := recordID(rec)
	if err != nil {
		return
	}
	evictKey(ctx, c, recordKey(rec.Schema(), id))
}

// MemoryCache is a process-local Cache with per-entry expiry. The zero
// value is not usable; create one with NewMemoryCache.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]memoryItem
}

type memoryItem struct {
	data    []byte
	expires time.Time // zero means no expiry
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]memoryItem)}
}

// Get implements Cache.
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	if !it.expires.IsZero() && time.Now().After(it.expires) {
		delete(m.items, key)
		return nil, nil
	}
	return it.data, nil
}

// Set implements Cache.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	it := memoryItem{data: value}
	if ttl > 0 {
		it.expires = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = it
	m.mu.Unlock()
	return nil
}

// Delete implements Cache.
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// DeletePrefix implements Cache.
func (m *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
		}
	}
	m.mu.Unlock()
	return nil
}

// Clear implements Cache.
func (m *MemoryCache) Clear(_ context.Context) error {
	m.mu.Lock()
	m.items = make(map[string]memoryItem)
	m.mu.Unlock()
	return nil
}
