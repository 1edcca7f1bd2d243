package testutils

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockLogger is a mock implementation of the Logger interface
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...interface{}) {
	m.Called(format, args)
}

// MockCache is a mock implementation of the Cache interface
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, dest interface{}) (bool, error) {
	args := m.Called(key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value interface{}, ttl time.Duration) error {
	args := m.Called(key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCache) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// MockConfig is a mock implementation of the Config interface
type MockConfig struct {
	mock.Mock
}

func (m *MockConfig) GetAPIKey() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetBaseURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfig) GetCount() int {
	args := m.Called()
	return args.Int(0)
}

// TestConfig is a simple test implementation of the Config interface
type TestConfig struct {
	APIKey  string
	BaseURL string
	Count   int
}

func (c *TestConfig) GetAPIKey() string  { return c.APIKey }
func (c *TestConfig) GetBaseURL() string { return c.BaseURL }
func (c *TestConfig) GetCount() int      { return c.Count }

// NewTestConfig creates a test configuration pointing at baseURL
func NewTestConfig(baseURL string) *TestConfig {
	return &TestConfig{
		APIKey:  "test-access-key",
		BaseURL: baseURL,
		Count:   20,
	}
}

// TestLogger is a test logger that captures log messages. It is safe for
// concurrent use.
type TestLogger struct {
	mu            sync.Mutex
	DebugMessages []string
	InfoMessages  []string
	ErrorMessages []string
}

func (l *TestLogger) Debug(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.DebugMessages = append(l.DebugMessages, fmt.Sprintf(format, args...))
}

func (l *TestLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.InfoMessages = append(l.InfoMessages, fmt.Sprintf(format, args...))
}

func (l *TestLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ErrorMessages = append(l.ErrorMessages, fmt.Sprintf(format, args...))
}

// Messages returns a copy of the messages logged at level.
func (l *TestLogger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var src []string
	switch level {
	case "debug":
		src = l.DebugMessages
	case "info":
		src = l.InfoMessages
	case "error":
		src = l.ErrorMessages
	}

	return append([]string(nil), src...)
}

func (l *TestLogger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.DebugMessages = nil
	l.InfoMessages = nil
	l.ErrorMessages = nil
}

// NewTestLogger creates a new test logger
func NewTestLogger() *TestLogger {
	return &TestLogger{}
}

// AssertLogContains checks if a log message contains the expected text
func AssertLogContains(t *testing.T, logger *TestLogger, level string, expectedText string) {
	t.Helper()

	switch level {
	case "debug", "info", "error":
	default:
		t.Fatalf("Unknown log level: %s", level)
	}

	messages := logger.Messages(level)
	for _, msg := range messages {
		if strings.Contains(msg, expectedText) {
			return
		}
	}

	t.Errorf("Expected %s log to contain '%s', but it was not found. Messages: %v", level, expectedText, messages)
}

// AssertLogNotContains fails if any message at level contains text.
func AssertLogNotContains(t *testing.T, logger *TestLogger, level string, text string) {
	t.Helper()

	for _, msg := range logger.Messages(level) {
		if strings.Contains(msg, text) {
			t.Errorf("Expected %s log not to contain '%s', found: %s", level, text, msg)
		}
	}
}
