package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thumb struct {
	ID     string
	Pixels []byte
}

func caches(t *testing.T) map[string]Cache {
	t.Helper()

	bc, err := NewBadgerCache()
	require.NoError(t, err)
	t.Cleanup(func() { _ = bc.Close() })

	return map[string]Cache{
		"memory": NewMemoryCache(0),
		"badger": bc,
	}
}

func TestCache_SetGet(t *testing.T) {
	for name, c := range caches(t) {
		t.Run(name, func(t *testing.T) {
			expected := thumb{ID: "abc", Pixels: []byte{1, 2, 3}}
			require.NoError(t, c.Set("thumb:abc", expected, 0))

			var got thumb
			found, err := c.Get("thumb:abc", &got)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, expected, got)

			found, err = c.Get("thumb:missing", &got)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestCache_DeleteAndClear(t *testing.T) {
	for name, c := range caches(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Set("a", "1", 0))
			require.NoError(t, c.Set("b", "2", 0))

			require.NoError(t, c.Delete("a"))
			require.NoError(t, c.Delete("never-set"))

			var v string
			found, _ := c.Get("a", &v)
			assert.False(t, found)
			found, _ = c.Get("b", &v)
			assert.True(t, found)

			require.NoError(t, c.Clear())
			found, _ = c.Get("b", &v)
			assert.False(t, found)
		})
	}
}

func TestMemoryCache_TTL(t *testing.T) {
	c := NewMemoryCache(0)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set("k", "v", time.Minute))

	var s string
	found, err := c.Get("k", &s)
	require.NoError(t, err)
	assert.True(t, found)

	now = now.Add(2 * time.Minute)
	found, err = c.Get("k", &s)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	c := NewMemoryCache(2)

	require.NoError(t, c.Set("a", 1, 0))
	require.NoError(t, c.Set("b", 2, 0))

	// Touch a so b becomes the oldest.
	var n int
	found, _ := c.Get("a", &n)
	require.True(t, found)

	require.NoError(t, c.Set("c", 3, 0))
	assert.Equal(t, 2, c.Len())

	found, _ = c.Get("b", &n)
	assert.False(t, found)
	found, _ = c.Get("a", &n)
	assert.True(t, found)
	found, _ = c.Get("c", &n)
	assert.True(t, found)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Evictions)
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 3, stats.Hits)
}

func TestMemoryCache_OverwriteKeepsSize(t *testing.T) {
	c := NewMemoryCache(2)
	require.NoError(t, c.Set("a", 1, 0))
	require.NoError(t, c.Set("a", 2, 0))

	var n int
	found, err := c.Get("a", &n)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_MarshalError(t *testing.T) {
	c := NewMemoryCache(0)
	assert.Error(t, c.Set("bad", make(chan int), 0))
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c := NewMemoryCache(16)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = c.Set("k", i, 0)
			var n int
			_, _ = c.Get("k", &n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, c.Len())
}

func TestOpen(t *testing.T) {
	c, err := Open(Options{Disabled: true, MaxEntries: 3})
	require.NoError(t, err)
	mc, ok := c.(*MemoryCache)
	require.True(t, ok)
	assert.Equal(t, 3, mc.maxSize)

	c, err = Open(Options{})
	require.NoError(t, err)
	defer c.Close()
	_, ok = c.(*BadgerCache)
	assert.True(t, ok)
}
