package config

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/devnullvoid/pixgrid/internal/logger"
)

const appDirName = "pixgrid"

//go:embed config.tpl.yml
var templateFS embed.FS

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getXDGConfigDir(), "config.yml")
}

// FindDefaultConfigPath returns the first existing config file among the
// XDG location and ./config.yml.
func FindDefaultConfigPath() (string, bool) {
	configPath := GetDefaultConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		return configPath, true
	}

	if _, err := os.Stat("config.yml"); err == nil {
		return "config.yml", true
	}

	return "", false
}

// CreateDefaultConfigFileAt writes the commented template to path unless a
// file already exists there.
func CreateDefaultConfigFileAt(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("config path cannot be empty")
	}

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := ensureParentDir(path); err != nil {
		return "", err
	}

	templateData, err := templateFS.ReadFile("config.tpl.yml")
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}

	if err := os.WriteFile(path, templateData, 0o600); err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}

	return path, nil
}

func ensureParentDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	return nil
}

// getXDGConfigDir returns the XDG config directory path.
func getXDGConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appDirName)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", appDirName)
	}

	return filepath.Join(homeDir, ".config", appDirName)
}

// getXDGCacheDir returns the XDG cache directory path.
func getXDGCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, appDirName)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cache", appDirName)
	}

	return filepath.Join(homeDir, ".cache", appDirName)
}

// ExpandHomePath expands a leading "~" to the user's home directory.
func ExpandHomePath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

// IsSOPSEncrypted reports whether data is a SOPS-encrypted YAML document:
// a top-level "sops" mapping alongside ENC[...] values.
func IsSOPSEncrypted(path string, data []byte) bool {
	if !bytes.Contains(data, []byte("ENC[")) {
		return false
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false
	}

	_, hasSops := doc["sops"]
	logger.GetGlobalLogger().Debug("SOPS detection for %s: %v", path, hasSops)

	return hasSops
}

// FindSOPSRule reports whether a .sops.yaml exists in startDir or a parent.
func FindSOPSRule(startDir string) bool {
	current := startDir
	for {
		if _, err := os.Stat(filepath.Join(current, ".sops.yaml")); err == nil {
			return true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return false
		}
		current = parent
	}
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
