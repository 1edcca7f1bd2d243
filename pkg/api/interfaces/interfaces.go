// Package interfaces defines the core interfaces used throughout pixgrid.
//
// These abstractions for logging, caching and configuration let the API
// client and the thumbnail loader be wired with real implementations in the
// application and with no-op or fake ones in tests.
package interfaces

import "time"

// Logger defines the interface for leveled, printf-style logging.
//
// Implementations must be safe for concurrent use. The TUI owns stdout, so
// the application implementation writes to a log file.
//
// Example usage:
//
//	logger.Debug("fetching %d photos", count)
//	logger.Error("fetch failed: %v", err)
type Logger interface {
	// Debug logs debug-level messages, shown only when debug is enabled.
	Debug(format string, args ...interface{})

	// Info logs informational messages about normal application flow.
	Info(format string, args ...interface{})

	// Error logs error messages for conditions that should be investigated.
	Error(format string, args ...interface{})
}

// Cache defines the interface for session-scoped key-value caching.
//
// The dest parameter in Get must be a pointer to the type to unmarshal into.
// A ttl of 0 means the entry does not expire for the life of the cache.
type Cache interface {
	Get(key string, dest interface{}) (bool, error)
	Set(key string, value interface{}, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Config defines the settings the API client reads.
//
// GetAPIKey is called on every request rather than once at construction so
// that a key supplied late, or not at all, surfaces as a request failure
// instead of a startup error.
type Config interface {
	// GetAPIKey returns the Unsplash access key sent as client_id.
	GetAPIKey() string

	// GetBaseURL returns the API root, e.g. "https://api.unsplash.com".
	GetBaseURL() string

	// GetCount returns the number of photos requested per fetch.
	GetCount() int
}

// NoOpLogger is a logger implementation that discards all log messages.
//
// Example usage:
//
//	client, err := api.NewClient(cfg, api.WithLogger(&interfaces.NoOpLogger{}))
type NoOpLogger struct{}

// Debug discards the debug message.
func (n *NoOpLogger) Debug(format string, args ...interface{}) {}

// Info discards the info message.
func (n *NoOpLogger) Info(format string, args ...interface{}) {}

// Error discards the error message.
func (n *NoOpLogger) Error(format string, args ...interface{}) {}

// NoOpCache is a cache implementation that doesn't store anything.
//
// All Get operations report a miss and all mutations succeed immediately.
type NoOpCache struct{}

// Get always returns false (not found) and no error.
func (n *NoOpCache) Get(key string, dest interface{}) (bool, error) { return false, nil }

// Set always succeeds immediately without storing anything.
func (n *NoOpCache) Set(key string, value interface{}, ttl time.Duration) error { return nil }

// Delete always succeeds immediately without doing anything.
func (n *NoOpCache) Delete(key string) error { return nil }

// Clear always succeeds immediately without doing anything.
func (n *NoOpCache) Clear() error { return nil }
