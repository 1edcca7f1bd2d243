package config

// marshaledConfig is the sanitized structure written to disk. Values equal
// to their defaults are left out so the file stays minimal.
type marshaledConfig struct {
	APIKey      string            `yaml:"api_key,omitempty"`
	BaseURL     string            `yaml:"base_url,omitempty"`
	Count       int               `yaml:"count,omitempty"`
	DefaultSort string            `yaml:"default_sort,omitempty"`
	Debug       bool              `yaml:"debug,omitempty"`
	CacheDir    string            `yaml:"cache_dir,omitempty"`
	AgeDir      string            `yaml:"age_dir,omitempty"`
	NoCache     bool              `yaml:"no_cache,omitempty"`
	KeyBindings map[string]string `yaml:"key_bindings,omitempty"`
	Theme       *ThemeConfig      `yaml:"theme,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (c *Config) MarshalYAML() (any, error) {
	if c == nil {
		return nil, nil
	}

	clean := marshaledConfig{
		APIKey:  c.APIKey,
		Debug:   c.Debug,
		AgeDir:  c.AgeDir,
		NoCache: c.NoCache,
	}

	if c.BaseURL != DefaultBaseURL {
		clean.BaseURL = c.BaseURL
	}
	if c.Count != DefaultCount {
		clean.Count = c.Count
	}
	if c.DefaultSort != DefaultSort {
		clean.DefaultSort = c.DefaultSort
	}
	if c.CacheDir != getXDGCacheDir() {
		clean.CacheDir = c.CacheDir
	}

	defaults := DefaultKeyBindings().Map()
	for name, spec := range c.KeyBindings.Map() {
		if spec == "" || spec == defaults[name] {
			continue
		}
		if clean.KeyBindings == nil {
			clean.KeyBindings = make(map[string]string)
		}
		clean.KeyBindings[name] = spec
	}

	if len(c.Theme.Colors) > 0 {
		theme := c.Theme
		clean.Theme = &theme
	}

	return clean, nil
}
