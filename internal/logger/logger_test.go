package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		expected string
	}{
		{"debug level", LevelDebug, "DEBUG"},
		{"info level", LevelInfo, "INFO"},
		{"error level", LevelError, "ERROR"},
		{"unknown level", Level(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{" error ", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, LevelDebug, LevelFor(true))
	assert.Equal(t, LevelInfo, LevelFor(false))
}

func TestNewLogger_WithNilConfig(t *testing.T) {
	logger, err := NewLogger(nil)

	require.NoError(t, err)
	assert.Equal(t, LevelInfo, logger.GetLevel())
}

func TestNewLogger_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "test.log")

	logger, err := NewLogger(&Config{Level: LevelDebug, LogFile: logFile})
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("test file message")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "test file message")
}

func TestNewInternalLogger(t *testing.T) {
	tempDir := t.TempDir()

	logger, err := NewInternalLogger(LevelDebug, tempDir)
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("internal logger test")

	content, err := os.ReadFile(filepath.Join(tempDir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "internal logger test")
}

func TestNewInternalLogger_EmptyCacheDir(t *testing.T) {
	tempDir := t.TempDir()

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		if err := os.Chdir(originalDir); err != nil {
			t.Errorf("Failed to change back to original directory: %v", err)
		}
	}()
	require.NoError(t, os.Chdir(tempDir))

	logger, err := NewInternalLogger(LevelInfo, "")
	require.NoError(t, err)
	defer logger.Close()

	_, err = os.Stat(filepath.Join(tempDir, LogFileName))
	assert.NoError(t, err)
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		present []string
		absent  []string
	}{
		{"debug shows all", LevelDebug, []string{"[DEBUG]", "[INFO]", "[ERROR]"}, nil},
		{"info hides debug", LevelInfo, []string{"[INFO]", "[ERROR]"}, []string{"[DEBUG]"}},
		{"error only", LevelError, []string{"[ERROR]"}, []string{"[DEBUG]", "[INFO]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWriterLogger(tt.level, &buf)

			logger.Debug("debug message")
			logger.Info("info message")
			logger.Error("error message")

			output := buf.String()
			for _, s := range tt.present {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestLogger_FormatMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(LevelInfo, &buf)
	logger.now = func() time.Time { return time.Date(2024, 3, 9, 8, 7, 6, 0, time.UTC) }

	logger.Info("loaded %d images from %s", 20, "unsplash")

	assert.Equal(t, "[2024-03-09 08:07:06] [INFO] loaded 20 images from unsplash\n", buf.String())
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(LevelInfo, &buf)
	child := logger.With("store")

	child.Info("hello")
	assert.Contains(t, buf.String(), "[INFO] [store] hello")

	// Children share the parent's level.
	buf.Reset()
	logger.SetLevel(LevelDebug)
	child.Debug("visible now")
	assert.Contains(t, buf.String(), "visible now")
	assert.NoError(t, child.Close())
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(LevelInfo, &buf)

	logger.Debug("debug message 1")
	assert.Empty(t, buf.String())

	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, logger.GetLevel())

	logger.Debug("debug message 2")
	assert.Contains(t, buf.String(), "debug message 2")
}

func TestLogger_Close_WithoutFile(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(LevelInfo, &buf)

	assert.NoError(t, logger.Close())
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(LevelInfo, &buf)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("concurrent message %d", id)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 10)
}

func TestLogger_AppendToExistingFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "append_test.log")

	logger1, err := NewLogger(&Config{Level: LevelInfo, LogFile: logFile})
	require.NoError(t, err)
	logger1.Info("first message")
	require.NoError(t, logger1.Close())

	logger2, err := NewLogger(&Config{Level: LevelInfo, LogFile: logFile})
	require.NoError(t, err)
	logger2.Info("second message")
	require.NoError(t, logger2.Close())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), "first message"))
	assert.Equal(t, 1, strings.Count(string(content), "second message"))
}

func TestGlobalLogger(t *testing.T) {
	tempDir := t.TempDir()

	require.NoError(t, InitGlobalLogger(LevelDebug, tempDir))
	t.Cleanup(func() { _ = CloseGlobalLogger() })

	GetGlobalLogger().Debug("global debug")
	GetPackageLogger("thumbnail").Info("package info")

	content, err := os.ReadFile(filepath.Join(tempDir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "global debug")
	assert.Contains(t, string(content), "[thumbnail] package info")
}

func TestGetGlobalLogger_BeforeInit(t *testing.T) {
	require.NoError(t, CloseGlobalLogger())

	assert.NotNil(t, GetGlobalLogger())
	assert.NotNil(t, GetPackageLogger("x"))
}
