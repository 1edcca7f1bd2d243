package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDefaultConfigFileAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	gotPath, err := CreateDefaultConfigFileAt(path)
	require.NoError(t, err)
	assert.Equal(t, path, gotPath)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "key_bindings:")

	// The template is all comments, so it loads as an empty config.
	cfg := &Config{}
	require.NoError(t, cfg.MergeWithFile(path))
	cfg.SetDefaults()
	assert.NoError(t, cfg.Validate())

	require.NoError(t, os.WriteFile(path, []byte("count: 3\n"), 0o600))
	gotPath, err = CreateDefaultConfigFileAt(path)
	require.NoError(t, err)
	assert.Equal(t, path, gotPath)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "count: 3\n", string(data), "existing files are not overwritten")
}

func TestCreateDefaultConfigFileAt_EmptyPath(t *testing.T) {
	_, err := CreateDefaultConfigFileAt("")
	assert.Error(t, err)
}

func TestXDGDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	assert.Equal(t, filepath.Join("/xdg/config", "pixgrid"), getXDGConfigDir())
	assert.Equal(t, filepath.Join("/xdg/cache", "pixgrid"), getXDGCacheDir())
	assert.Equal(t, filepath.Join("/xdg/config", "pixgrid", "config.yml"), GetDefaultConfigPath())
}

func TestFindDefaultConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(t.TempDir())

	_, ok := FindDefaultConfigPath()
	assert.False(t, ok)

	require.NoError(t, os.WriteFile("config.yml", []byte("{}\n"), 0o600))
	path, ok := FindDefaultConfigPath()
	assert.True(t, ok)
	assert.Equal(t, "config.yml", path)

	_, err := CreateDefaultConfigFileAt(GetDefaultConfigPath())
	require.NoError(t, err)
	path, ok = FindDefaultConfigPath()
	assert.True(t, ok)
	assert.Equal(t, GetDefaultConfigPath(), path)
}

func TestExpandHomePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/abs/path", want: "/abs/path"},
		{in: "relative", want: "relative"},
		{in: "~", want: home},
		{in: "~/cache", want: filepath.Join(home, "cache")},
		{in: "~user/cache", want: "~user/cache"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHomePath(tt.in))
		})
	}
}

func TestIsSOPSEncrypted(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{name: "plain", data: "api_key: abc\n", want: false},
		{name: "enc value without sops block", data: "api_key: ENC[AES256_GCM,data:x]\n", want: false},
		{name: "sops block without enc", data: "api_key: abc\nsops:\n  version: 3.8.1\n", want: false},
		{name: "sops file", data: "api_key: ENC[AES256_GCM,data:x]\nsops:\n  version: 3.8.1\n", want: true},
		{name: "not yaml", data: "ENC[ : : [", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSOPSEncrypted("config.yml", []byte(tt.data)))
		})
	}
}

func TestFindSOPSRule(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	assert.False(t, FindSOPSRule(nested))

	require.NoError(t, os.WriteFile(filepath.Join(root, ".sops.yaml"), []byte("creation_rules: []\n"), 0o600))
	assert.True(t, FindSOPSRule(nested))
}
