// Package bootstrap handles application initialization and startup logic.
//
// It resolves the configuration from the file, the environment and the
// command-line flags, and hands the result to the app package.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devnullvoid/pixgrid/internal/app"
	"github.com/devnullvoid/pixgrid/internal/config"
	"github.com/devnullvoid/pixgrid/internal/ui/theme"
	"github.com/devnullvoid/pixgrid/internal/version"
	"github.com/devnullvoid/pixgrid/pkg/api"
)

// BootstrapOptions contains all the options for bootstrapping the application.
type BootstrapOptions struct {
	ConfigPath string
	NoCache    bool
	Version    bool

	// Flag values for config overrides. Zero values leave the config alone.
	FlagAPIKey   string
	FlagBaseURL  string
	FlagCount    int
	FlagSort     string
	FlagDebug    bool
	FlagCacheDir string

	// Out receives status messages. Defaults to os.Stdout.
	Out io.Writer
}

// BootstrapResult contains the result of the bootstrap process.
type BootstrapResult struct {
	Config     *config.Config
	ConfigPath string
	NoCache    bool
	Out        io.Writer
}

// Bootstrap handles the complete application bootstrap process. A nil
// result with a nil error means there is nothing left to do.
func Bootstrap(opts BootstrapOptions) (*BootstrapResult, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if opts.Version {
		fmt.Fprint(out, version.GetBuildInfo().String())
		return nil, nil
	}

	cfg, configPath, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	if cfg.HasCleartextAPIKey() {
		fmt.Fprintf(out, "⚠️  api_key in %s is stored in plain text; run `pixgrid config set-key` to encrypt it\n", configPath)
	}

	return &BootstrapResult{
		Config:     cfg,
		ConfigPath: configPath,
		NoCache:    opts.NoCache || cfg.NoCache,
		Out:        out,
	}, nil
}

// LoadConfig builds the validated configuration: defaults, then the file,
// then the environment, then flags. It also returns the file path used,
// which is empty when no file was found.
func LoadConfig(opts BootstrapOptions) (*config.Config, string, error) {
	cfg := config.NewConfig()

	configPath := ResolveConfigPath(opts.ConfigPath)
	if configPath != "" {
		if err := cfg.MergeWithFile(configPath); err != nil {
			return nil, "", fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyFlagsToConfig(cfg, opts)
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}

	if err := theme.Validate(&cfg.Theme); err != nil {
		return nil, "", fmt.Errorf("invalid theme: %w", err)
	}

	return cfg, configPath, nil
}

// applyFlagsToConfig applies command line flags to the config object
func applyFlagsToConfig(cfg *config.Config, opts BootstrapOptions) {
	if opts.FlagAPIKey != "" {
		cfg.APIKey = opts.FlagAPIKey
	}
	if opts.FlagBaseURL != "" {
		cfg.BaseURL = opts.FlagBaseURL
	}
	if opts.FlagCount != 0 {
		cfg.Count = opts.FlagCount
	}
	if opts.FlagSort != "" {
		cfg.DefaultSort = opts.FlagSort
	}
	if opts.FlagDebug {
		cfg.Debug = true
	}
	if opts.FlagCacheDir != "" {
		cfg.CacheDir = opts.FlagCacheDir
	}
	if opts.NoCache {
		cfg.NoCache = true
	}
}

// StartApplication starts the main application with the given configuration.
func StartApplication(ctx context.Context, result *BootstrapResult) error {
	if result == nil {
		return errors.New("bootstrap result is nil")
	}

	out := result.Out
	if out == nil {
		out = os.Stdout
	}

	if result.ConfigPath != "" {
		fmt.Fprintf(out, "✅ Configuration loaded from %s\n", result.ConfigPath)
	}

	if err := app.Run(ctx, result.Config, app.Options{NoCache: result.NoCache}); err != nil {
		return handleStartupError(out, err)
	}

	return nil
}

// ResolveConfigPath resolves the configuration file path.
func ResolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return config.ExpandHomePath(flagPath)
	}

	if path, found := config.FindDefaultConfigPath(); found {
		return path
	}

	return ""
}

// handleStartupError prints err with a hint where one applies.
func handleStartupError(out io.Writer, err error) error {
	fmt.Fprintf(out, "❌ %v\n", err)

	var fetchErr *api.FetchError
	switch {
	case errors.As(err, &fetchErr) && fetchErr.StatusCode == 401:
		fmt.Fprintln(out, "💡 Check your Unsplash access key (UNSPLASH_API_KEY or `pixgrid config set-key`).")
	case strings.Contains(err.Error(), "terminal"):
		fmt.Fprintln(out, "💡 pixgrid needs an interactive terminal; try `pixgrid list` instead.")
	}

	return err
}
