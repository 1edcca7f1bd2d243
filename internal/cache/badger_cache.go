package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/devnullvoid/pixgrid/internal/logger"
	"github.com/devnullvoid/pixgrid/pkg/api/interfaces"
)

// BadgerCache implements Cache on an in-memory Badger database.
type BadgerCache struct {
	db     *badger.DB
	logger interfaces.Logger
}

// NewBadgerCache opens a Badger database that lives only in memory.
func NewBadgerCache() (*BadgerCache, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil).
		WithMemTableSize(16 << 20).
		WithNumMemtables(2)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	return &BadgerCache{
		db:     db,
		logger: logger.GetPackageLogger("cache"),
	}, nil
}

// Get retrieves data from the cache. Expired entries are reported as
// missing by Badger itself.
func (c *BadgerCache) Get(key string, dest interface{}) (bool, error) {
	var found bool

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("badger get operation: %w", err)
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, dest); err != nil {
				return fmt.Errorf("unmarshal into destination: %w", err)
			}

			found = true

			return nil
		})
	})

	return found, err
}

// Set stores data in the cache. A ttl of 0 never expires.
func (c *BadgerCache) Set(key string, data interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	entry := badger.NewEntry([]byte(key), raw)
	if ttl > 0 {
		entry = entry.WithTTL(ttl)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("badger set operation: %w", err)
	}

	c.logger.Debug("Cached item: %s (%d bytes)", key, len(raw))

	return nil
}

// Delete removes an item from the cache.
func (c *BadgerCache) Delete(key string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("badger delete operation: %w", err)
	}

	return nil
}

// Clear removes all items from the cache.
func (c *BadgerCache) Clear() error {
	c.logger.Debug("Clearing all cache items")

	return c.db.DropAll()
}

// Close closes the badger database, discarding its contents.
func (c *BadgerCache) Close() error {
	c.logger.Debug("Closing in-memory Badger database")

	return c.db.Close()
}
