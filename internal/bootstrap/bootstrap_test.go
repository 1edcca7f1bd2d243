package bootstrap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devnullvoid/pixgrid/internal/config"
	"github.com/devnullvoid/pixgrid/pkg/api"
)

// isolate points every lookup at empty temp dirs and clears the
// environment the config reads.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, key := range []string{
		"UNSPLASH_API_KEY", "PIXGRID_API_KEY", "PIXGRID_BASE_URL", "PIXGRID_COUNT",
		"PIXGRID_DEFAULT_SORT", "PIXGRID_DEBUG", "PIXGRID_CACHE_DIR", "PIXGRID_AGE_DIR",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Chdir(dir)

	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()

	path := filepath.Join(dir, "pixgrid.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestResolveConfigPath(t *testing.T) {
	dir := isolate(t)

	assert.Equal(t, "", ResolveConfigPath(""))

	flagPath := filepath.Join(dir, "custom.yml")
	assert.Equal(t, flagPath, ResolveConfigPath(flagPath))

	_, err := config.CreateDefaultConfigFileAt(config.GetDefaultConfigPath())
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfigPath(), ResolveConfigPath(""))
}

func TestBootstrap_Version(t *testing.T) {
	var out bytes.Buffer

	result, err := Bootstrap(BootstrapOptions{Version: true, Out: &out})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Contains(t, out.String(), "pixgrid version")
}

func TestBootstrap_Defaults(t *testing.T) {
	isolate(t)

	result, err := Bootstrap(BootstrapOptions{Out: &bytes.Buffer{}})
	require.NoError(t, err)

	assert.Equal(t, "", result.ConfigPath)
	assert.Equal(t, config.DefaultBaseURL, result.Config.BaseURL)
	assert.Equal(t, config.DefaultCount, result.Config.Count)
	assert.Equal(t, "date", result.Config.DefaultSort)
	assert.Empty(t, result.Config.APIKey, "a missing key is not an error")
}

func TestBootstrap_Precedence(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "api_key: from-file\ncount: 5\ndefault_sort: title\nbase_url: https://file.example.com\n")
	t.Setenv("PIXGRID_COUNT", "7")

	var out bytes.Buffer
	result, err := Bootstrap(BootstrapOptions{
		ConfigPath: path,
		FlagSort:   "size",
		Out:        &out,
	})
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, path, result.ConfigPath)
	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, 7, cfg.Count, "env beats file")
	assert.Equal(t, "size", cfg.DefaultSort, "flag beats file")
	assert.Equal(t, "https://file.example.com", cfg.BaseURL)
	assert.Contains(t, out.String(), "plain text")
}

func TestBootstrap_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PIXGRID_API_KEY", "env-key")

	result, err := Bootstrap(BootstrapOptions{
		FlagAPIKey:   "flag-key",
		FlagCount:    3,
		FlagDebug:    true,
		FlagCacheDir: "/tmp/pixgrid-cache",
		NoCache:      true,
		Out:          &bytes.Buffer{},
	})
	require.NoError(t, err)

	assert.Equal(t, "flag-key", result.Config.APIKey)
	assert.Equal(t, 3, result.Config.Count)
	assert.True(t, result.Config.Debug)
	assert.Equal(t, "/tmp/pixgrid-cache", result.Config.CacheDir)
	assert.True(t, result.NoCache)
}

func TestBootstrap_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		opts BootstrapOptions
		want string
	}{
		{name: "count too large", opts: BootstrapOptions{FlagCount: 31}, want: "count"},
		{name: "bad sort", opts: BootstrapOptions{FlagSort: "color"}, want: "default_sort"},
		{name: "bad theme", body: "theme:\n  colors:\n    nonsense: red\n", want: "invalid theme"},
		{name: "broken yaml", body: "count: [\n", want: "failed to load config file"},
		{name: "missing file", opts: BootstrapOptions{ConfigPath: "/nonexistent/pixgrid.yml"}, want: "failed to load config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)

			opts := tt.opts
			opts.Out = &bytes.Buffer{}
			if tt.body != "" {
				opts.ConfigPath = writeConfig(t, dir, tt.body)
			}

			result, err := Bootstrap(opts)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStartApplication_NilResult(t *testing.T) {
	assert.Error(t, StartApplication(t.Context(), nil))
}

func TestHandleStartupError(t *testing.T) {
	var out bytes.Buffer

	err := &api.FetchError{StatusCode: 401, Message: "OAuth error"}
	got := handleStartupError(&out, err)

	assert.True(t, errors.Is(got, err))
	assert.Contains(t, out.String(), "config set-key")
}
