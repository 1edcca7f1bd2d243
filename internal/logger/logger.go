// Package logger provides leveled, printf-style logging for pixgrid.
//
// The TUI owns the terminal, so the application logger writes to
// pixgrid.log in the cache directory. Loggers are safe for concurrent use
// and satisfy interfaces.Logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/devnullvoid/pixgrid/pkg/api/interfaces"
)

// LogFileName is the file created inside the cache directory.
const LogFileName = "pixgrid.log"

const defaultTimeFormat = "2006-01-02 15:04:05"

// Level represents the logging level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LevelFor returns LevelDebug when debug is set and LevelInfo otherwise.
func LevelFor(debug bool) Level {
	if debug {
		return LevelDebug
	}

	return LevelInfo
}

// ParseLevel accepts "debug", "info" or "error" in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Config holds configuration for the logger.
type Config struct {
	Level      Level
	Output     io.Writer
	LogFile    string
	TimeFormat string
	// Component is prepended to each message as "[component]".
	Component string
}

// DefaultConfig logs info and above to stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:      LevelInfo,
		Output:     os.Stderr,
		TimeFormat: defaultTimeFormat,
	}
}

// Logger implements interfaces.Logger.
type Logger struct {
	mu         *sync.Mutex
	out        io.Writer
	closer     io.Closer
	level      *atomic.Int32
	timeFormat string
	component  string
	now        func() time.Time
}

// NewLogger creates a logger from config. When LogFile is set, messages are
// appended to that file instead of Output.
func NewLogger(config *Config) (*Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	var closer io.Closer
	if config.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(config.LogFile), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}

		out = file
		closer = file
	}

	timeFormat := config.TimeFormat
	if timeFormat == "" {
		timeFormat = defaultTimeFormat
	}

	level := &atomic.Int32{}
	level.Store(int32(config.Level))

	return &Logger{
		mu:         &sync.Mutex{},
		out:        out,
		closer:     closer,
		level:      level,
		timeFormat: timeFormat,
		component:  config.Component,
		now:        time.Now,
	}, nil
}

// NewInternalLogger creates a logger writing to LogFileName inside cacheDir.
// An empty or unusable cacheDir falls back to the working directory.
func NewInternalLogger(level Level, cacheDir string) (*Logger, error) {
	dir := cacheDir
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		dir = "."
	}

	return NewLogger(&Config{
		Level:   level,
		LogFile: filepath.Join(dir, LogFileName),
	})
}

// NewSimpleLogger creates a logger that writes to stderr.
func NewSimpleLogger(level Level) *Logger {
	logger, _ := NewLogger(&Config{Level: level, Output: os.Stderr})

	return logger
}

// NewWriterLogger creates a logger that writes to w.
func NewWriterLogger(level Level, w io.Writer) *Logger {
	logger, _ := NewLogger(&Config{Level: level, Output: w})

	return logger
}

// With returns a logger sharing l's output and level that tags every
// message with component.
func (l *Logger) With(component string) *Logger {
	child := *l
	child.closer = nil
	child.component = component

	return &child
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if Level(l.level.Load()) > level {
		return
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(l.now().Format(l.timeFormat))
	b.WriteString("] [")
	b.WriteString(level.String())
	b.WriteString("] ")
	if l.component != "" {
		b.WriteString("[")
		b.WriteString(l.component)
		b.WriteString("] ")
	}
	fmt.Fprintf(&b, format, args...)
	b.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = io.WriteString(l.out, b.String())
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// SetLevel changes the logging level for l and every logger derived with With.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// GetLevel returns the current logging level.
func (l *Logger) GetLevel() Level {
	return Level(l.level.Load())
}

// Close closes the log file, if the logger opened one.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}

	return l.closer.Close()
}

var _ interfaces.Logger = (*Logger)(nil)

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// InitGlobalLogger installs the application logger writing to cacheDir.
// When the file cannot be opened a stderr logger is installed and the
// error is returned.
func InitGlobalLogger(level Level, cacheDir string) error {
	logger, err := NewInternalLogger(level, cacheDir)
	if err != nil {
		logger = NewSimpleLogger(level)
	}

	globalMu.Lock()
	previous := globalLogger
	globalLogger = logger
	globalMu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}

	return err
}

// GetGlobalLogger returns the application logger. Before InitGlobalLogger
// it returns a stderr logger that only reports errors.
func GetGlobalLogger() interfaces.Logger {
	globalMu.RLock()
	logger := globalLogger
	globalMu.RUnlock()

	if logger != nil {
		return logger
	}

	return NewSimpleLogger(LevelError)
}

// GetPackageLogger returns the global logger tagged with packageName.
func GetPackageLogger(packageName string) interfaces.Logger {
	globalMu.RLock()
	logger := globalLogger
	globalMu.RUnlock()

	if logger == nil {
		return NewSimpleLogger(LevelError).With(packageName)
	}

	return logger.With(packageName)
}

// CloseGlobalLogger closes the application log file.
func CloseGlobalLogger() error {
	globalMu.Lock()
	logger := globalLogger
	globalLogger = nil
	globalMu.Unlock()

	if logger == nil {
		return nil
	}

	return logger.Close()
}
