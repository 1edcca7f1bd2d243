// Package config provides configuration management for pixgrid.
//
// Configuration is loaded from several sources in precedence order:
//  1. Command-line flags (highest priority)
//  2. Environment variables
//  3. Configuration file (YAML, optionally SOPS-encrypted)
//  4. Default values (lowest priority)
//
// Environment variables:
//   - UNSPLASH_API_KEY: Unsplash access key
//   - PIXGRID_API_KEY: Unsplash access key (takes precedence over UNSPLASH_API_KEY)
//   - PIXGRID_BASE_URL: API root (default "https://api.unsplash.com")
//   - PIXGRID_COUNT: photos per fetch, 1 to 30 (default 20)
//   - PIXGRID_DEFAULT_SORT: date, title or size (default "date")
//   - PIXGRID_DEBUG: enable debug logging ("true"/"false")
//   - PIXGRID_CACHE_DIR: directory for the log file
//   - PIXGRID_AGE_DIR: directory holding the age identity
//
// Configuration file format:
//
//	api_key: "age1:..."      # plain text, age-encrypted, or SOPS-encrypted file
//	base_url: "https://api.unsplash.com"
//	count: 20
//	default_sort: date
//	debug: false
//	cache_dir: ~/.cache/pixgrid
//	key_bindings:
//	  delete: "d"
//	theme:
//	  colors:
//	    selection: blue
//
// A missing API key is not a configuration error. The fetch is still made
// and the provider's authorization failure is shown in the view.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/getsops/sops/v3/decrypt"
	"gopkg.in/yaml.v3"

	"github.com/devnullvoid/pixgrid/internal/keys"
	"github.com/devnullvoid/pixgrid/internal/logger"
)

const (
	DefaultBaseURL = "https://api.unsplash.com"
	DefaultCount   = 20
	MaxCount       = 30
	DefaultSort    = "date"

	trueString = "true"
)

// SortKeys are the accepted default_sort values.
var SortKeys = []string{"date", "title", "size"}

// Config represents the complete application configuration.
type Config struct {
	APIKey      string      `yaml:"api_key,omitempty"`
	BaseURL     string      `yaml:"base_url,omitempty"`
	Count       int         `yaml:"count,omitempty"`
	DefaultSort string      `yaml:"default_sort,omitempty"`
	Debug       bool        `yaml:"debug,omitempty"`
	CacheDir    string      `yaml:"cache_dir,omitempty"`
	AgeDir      string      `yaml:"age_dir,omitempty"`
	NoCache     bool        `yaml:"no_cache,omitempty"`
	KeyBindings KeyBindings `yaml:"key_bindings,omitempty"`
	Theme       ThemeConfig `yaml:"theme,omitempty"`

	// hasCleartextKey tracks whether the last merged file held the API key
	// unencrypted.
	hasCleartextKey bool
}

// KeyBindings defines customizable key mappings. Values use the syntax
// accepted by keys.Parse.
type KeyBindings struct {
	Search    string `yaml:"search,omitempty"`
	Sort      string `yaml:"sort,omitempty"`
	Toggle    string `yaml:"toggle,omitempty"`
	SelectAll string `yaml:"select_all,omitempty"`
	Delete    string `yaml:"delete,omitempty"`
	Reload    string `yaml:"reload,omitempty"`
	CopyURL   string `yaml:"copy_url,omitempty"`
	Help      string `yaml:"help,omitempty"`
	Quit      string `yaml:"quit,omitempty"`
}

// ThemeConfig holds color overrides. Keys are semantic color names such as
// "selection" or "error"; values are any tcell color name or hex code.
type ThemeConfig struct {
	Colors map[string]string `yaml:"colors,omitempty"`
}

// DefaultKeyBindings returns the built-in key mappings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Search:    "/",
		Sort:      "s",
		Toggle:    "Space",
		SelectAll: "a",
		Delete:    "d",
		Reload:    "r",
		CopyURL:   "y",
		Help:      "?",
		Quit:      "q",
	}
}

// Map returns the bindings keyed by their YAML names.
func (kb KeyBindings) Map() map[string]string {
	return map[string]string{
		"search":     kb.Search,
		"sort":       kb.Sort,
		"toggle":     kb.Toggle,
		"select_all": kb.SelectAll,
		"delete":     kb.Delete,
		"reload":     kb.Reload,
		"copy_url":   kb.CopyURL,
		"help":       kb.Help,
		"quit":       kb.Quit,
	}
}

// merge copies every non-empty binding from other.
func (kb *KeyBindings) merge(other KeyBindings) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&kb.Search, other.Search)
	set(&kb.Sort, other.Sort)
	set(&kb.Toggle, other.Toggle)
	set(&kb.SelectAll, other.SelectAll)
	set(&kb.Delete, other.Delete)
	set(&kb.Reload, other.Reload)
	set(&kb.CopyURL, other.CopyURL)
	set(&kb.Help, other.Help)
	set(&kb.Quit, other.Quit)
}

// ValidateKeyBindings checks that every binding parses, that none uses a
// reserved key unless it is the default, and that no two collide.
func ValidateKeyBindings(kb KeyBindings) error {
	defaults := DefaultKeyBindings().Map()
	seen := make(map[string]string)

	for _, name := range sortedNames(kb.Map()) {
		spec := kb.Map()[name]
		if spec == "" {
			continue
		}

		key, r, mod, err := keys.Parse(spec)
		if err != nil {
			return fmt.Errorf("invalid key binding %s: %w", name, err)
		}

		if keys.IsReserved(key, r, mod) && !strings.EqualFold(spec, defaults[name]) {
			return fmt.Errorf("key binding %s uses reserved key %s", name, spec)
		}

		id := keys.CanonicalID(key, r, mod)
		if other, ok := seen[id]; ok {
			return fmt.Errorf("key binding %s duplicates %s", name, other)
		}

		seen[id] = name
	}

	return nil
}

// NewConfig creates a Config populated from environment variables. Fields
// whose variables are unset stay at their zero values until SetDefaults.
func NewConfig() *Config {
	cfg := &Config{
		APIKey:      os.Getenv("UNSPLASH_API_KEY"),
		BaseURL:     os.Getenv("PIXGRID_BASE_URL"),
		DefaultSort: os.Getenv("PIXGRID_DEFAULT_SORT"),
		Debug:       strings.EqualFold(os.Getenv("PIXGRID_DEBUG"), trueString),
		CacheDir:    ExpandHomePath(os.Getenv("PIXGRID_CACHE_DIR")),
		AgeDir:      ExpandHomePath(os.Getenv("PIXGRID_AGE_DIR")),
		KeyBindings: DefaultKeyBindings(),
	}

	if key := os.Getenv("PIXGRID_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	if raw := os.Getenv("PIXGRID_COUNT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.Count = n
		} else {
			// Keep an out-of-range value so Validate reports it.
			cfg.Count = -1
		}
	}

	if cfg.AgeDir != "" {
		SetAgeDirOverride(cfg.AgeDir)
	}

	return cfg
}

// fileConfig mirrors Config with pointers where an explicit false or zero
// must be told apart from an absent key.
type fileConfig struct {
	APIKey      string      `yaml:"api_key"`
	BaseURL     string      `yaml:"base_url"`
	Count       *int        `yaml:"count"`
	DefaultSort string      `yaml:"default_sort"`
	Debug       *bool       `yaml:"debug"`
	CacheDir    string      `yaml:"cache_dir"`
	AgeDir      string      `yaml:"age_dir"`
	NoCache     *bool       `yaml:"no_cache"`
	KeyBindings KeyBindings `yaml:"key_bindings"`
	Theme       ThemeConfig `yaml:"theme"`
}

// MergeWithFile overlays values from the YAML file at path. SOPS-encrypted
// files are decrypted first; an age-encrypted api_key is decrypted after.
// File values only fill fields the environment left empty, so environment
// variables keep their higher precedence.
func (c *Config) MergeWithFile(path string) error {
	if path == "" {
		return nil
	}

	c.hasCleartextKey = false

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	sopsEncrypted := IsSOPSEncrypted(path, data)
	if sopsEncrypted {
		decrypted, derr := decrypt.File(path, "yaml")
		if derr != nil {
			return fmt.Errorf("decrypt config file %s: %w", path, derr)
		}

		data = decrypted
		logger.GetGlobalLogger().Info("Decrypted SOPS config file: %s", path)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.AgeDir != "" && c.AgeDir == "" {
		c.AgeDir = ExpandHomePath(fc.AgeDir)
	}
	if c.AgeDir != "" {
		SetAgeDirOverride(c.AgeDir)
	}

	if c.APIKey == "" && fc.APIKey != "" {
		key, derr := DecryptField(fc.APIKey)
		if derr != nil {
			return fmt.Errorf("decrypt api_key: %w", derr)
		}

		c.APIKey = key
		c.hasCleartextKey = !sopsEncrypted && !isEncrypted(fc.APIKey)
	}

	if c.BaseURL == "" {
		c.BaseURL = fc.BaseURL
	}
	if c.Count == 0 && fc.Count != nil {
		c.Count = *fc.Count
	}
	if c.DefaultSort == "" {
		c.DefaultSort = fc.DefaultSort
	}
	if fc.Debug != nil && !c.Debug {
		c.Debug = *fc.Debug
	}
	if c.CacheDir == "" && fc.CacheDir != "" {
		c.CacheDir = ExpandHomePath(fc.CacheDir)
	}
	if fc.NoCache != nil && !c.NoCache {
		c.NoCache = *fc.NoCache
	}

	c.KeyBindings.merge(fc.KeyBindings)

	if len(fc.Theme.Colors) > 0 {
		c.Theme.Colors = make(map[string]string, len(fc.Theme.Colors))
		for k, v := range fc.Theme.Colors {
			c.Theme.Colors[k] = v
		}
	}

	return nil
}

// HasCleartextAPIKey reports whether the merged file stored the key in
// plain text.
func (c *Config) HasCleartextAPIKey() bool {
	return c.hasCleartextKey
}

// SetDefaults fills every unset field with its default.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.Count == 0 {
		c.Count = DefaultCount
	}

	if c.DefaultSort == "" {
		c.DefaultSort = DefaultSort
	}
	c.DefaultSort = strings.ToLower(c.DefaultSort)

	if c.CacheDir != "" {
		c.CacheDir = ExpandHomePath(c.CacheDir)
	} else {
		c.CacheDir = getXDGCacheDir()
	}

	if c.AgeDir != "" {
		c.AgeDir = ExpandHomePath(c.AgeDir)
		SetAgeDirOverride(c.AgeDir)
	}

	c.KeyBindings = mergedBindings(c.KeyBindings)
}

func mergedBindings(kb KeyBindings) KeyBindings {
	out := DefaultKeyBindings()
	out.merge(kb)

	return out
}

// Validate checks the configuration. The API key is deliberately not
// required.
func (c *Config) Validate() error {
	if c.Count < 1 || c.Count > MaxCount {
		return fmt.Errorf("count must be between 1 and %d, got %d", MaxCount, c.Count)
	}

	if !isSortKey(c.DefaultSort) {
		return fmt.Errorf("default_sort must be one of %s, got %q", strings.Join(SortKeys, ", "), c.DefaultSort)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("base_url must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("base_url %q has no host", c.BaseURL)
	}

	return ValidateKeyBindings(c.KeyBindings)
}

func isSortKey(s string) bool {
	for _, k := range SortKeys {
		if strings.EqualFold(k, s) {
			return true
		}
	}

	return false
}

// GetAPIKey returns the Unsplash access key.
func (c *Config) GetAPIKey() string { return c.APIKey }

// GetBaseURL returns the API root.
func (c *Config) GetBaseURL() string { return c.BaseURL }

// GetCount returns the number of photos per fetch.
func (c *Config) GetCount() int { return c.Count }

// Save writes the configuration to path as YAML. The API key is written
// age-encrypted unless it already is.
func (c *Config) Save(path string) error {
	out := *c
	if out.APIKey != "" {
		encrypted, err := EncryptField(out.APIKey)
		if err != nil {
			return fmt.Errorf("encrypt api_key: %w", err)
		}
		out.APIKey = encrypted
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}
