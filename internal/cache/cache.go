// Package cache provides the session cache used for decoded thumbnails.
//
// Nothing written here outlives the process: the badger store runs in
// in-memory mode and the fallback is a plain LRU map.
package cache

import (
	"container/list"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/devnullvoid/pixgrid/internal/logger"
	"github.com/devnullvoid/pixgrid/pkg/api/interfaces"
)

// Cache defines the interface for the caching system.
type Cache interface {
	interfaces.Cache

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultMaxEntries bounds the LRU fallback.
const DefaultMaxEntries = 256

// cacheItem is a stored value with its expiry.
type cacheItem struct {
	data      json.RawMessage
	expiresAt time.Time
}

func (i *cacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// lruEntry represents an entry in the LRU cache.
type lruEntry struct {
	key  string
	item *cacheItem
}

// MemoryCache is an in-process LRU cache. Values are stored as JSON so a
// Get always yields an independent copy.
type MemoryCache struct {
	mutex     sync.Mutex
	entries   map[string]*list.Element
	lruList   *list.List
	maxSize   int
	now       func() time.Time
	logger    interfaces.Logger
	hits      int
	misses    int
	evictions int
}

// NewMemoryCache creates an LRU cache holding at most maxSize entries.
// maxSize of 0 means unlimited.
func NewMemoryCache(maxSize int) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*list.Element),
		lruList: list.New(),
		maxSize: maxSize,
		now:     time.Now,
		logger:  logger.GetPackageLogger("cache"),
	}
}

// Get retrieves data from the cache and updates LRU order.
func (c *MemoryCache) Get(key string, dest interface{}) (bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	element, ok := c.entries[key]
	if !ok {
		c.misses++
		return false, nil
	}

	entry := element.Value.(*lruEntry)
	if entry.item.expired(c.now()) {
		c.lruList.Remove(element)
		delete(c.entries, key)
		c.misses++
		c.logger.Debug("Cache item expired: %s", key)

		return false, nil
	}

	c.lruList.MoveToFront(element)
	c.hits++

	if err := json.Unmarshal(entry.item.data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return true, nil
}

// Set stores data under key. A ttl of 0 keeps it until evicted.
func (c *MemoryCache) Set(key string, data interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	item := &cacheItem{data: raw}
	if ttl > 0 {
		item.expiresAt = c.now().Add(ttl)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if element, ok := c.entries[key]; ok {
		element.Value.(*lruEntry).item = item
		c.lruList.MoveToFront(element)

		return nil
	}

	c.entries[key] = c.lruList.PushFront(&lruEntry{key: key, item: item})

	for c.maxSize > 0 && c.lruList.Len() > c.maxSize {
		c.evictLRU()
	}

	return nil
}

// evictLRU removes the least recently used entry. Callers hold the lock.
func (c *MemoryCache) evictLRU() {
	oldest := c.lruList.Back()
	if oldest == nil {
		return
	}

	entry := oldest.Value.(*lruEntry)
	c.lruList.Remove(oldest)
	delete(c.entries, entry.key)
	c.evictions++
	c.logger.Debug("Evicted LRU cache item: %s", entry.key)
}

// Delete removes an item from the cache.
func (c *MemoryCache) Delete(key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if element, ok := c.entries[key]; ok {
		c.lruList.Remove(element)
		delete(c.entries, key)
	}

	return nil
}

// Clear removes all items from the cache.
func (c *MemoryCache) Clear() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]*list.Element)
	c.lruList.Init()

	return nil
}

// Close clears the cache.
func (c *MemoryCache) Close() error {
	return c.Clear()
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.lruList.Len()
}

// Stats reports hit, miss and eviction counts.
type Stats struct {
	Hits      int
	Misses    int
	Evictions int
}

// Stats returns a snapshot of the counters.
func (c *MemoryCache) Stats() Stats {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return Stats{Hits: c.hits, Misses: c.misses, Evictions: c.evictions}
}

// Options selects the cache implementation.
type Options struct {
	// Disabled skips badger and returns an LRU cache.
	Disabled   bool
	MaxEntries int
}

// Open returns the session cache: an in-memory badger store, or an LRU
// cache when badger is disabled or fails to open. A badger failure is
// logged and returned alongside the working fallback.
func Open(opts Options) (Cache, error) {
	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	if opts.Disabled {
		return NewMemoryCache(maxEntries), nil
	}

	bc, err := NewBadgerCache()
	if err != nil {
		logger.GetPackageLogger("cache").Error("Falling back to LRU cache: %v", err)

		return NewMemoryCache(maxEntries), err
	}

	return bc, nil
}

var (
	_ Cache = (*MemoryCache)(nil)
	_ Cache = (*BadgerCache)(nil)
)
