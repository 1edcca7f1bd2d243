// Package cli defines the pixgrid command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devnullvoid/pixgrid/internal/bootstrap"
	"github.com/devnullvoid/pixgrid/internal/version"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = NewRootCmd()

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Each tree has its own viper instance
// so flag and environment bindings do not leak between trees.
func NewRootCmd() *cobra.Command {
	return newRootCmd(viper.New())
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pixgrid",
		Short: "A terminal grid of random Unsplash photos",
		Long: `pixgrid fetches a batch of random photos from Unsplash and shows them as a
grid of thumbnails in the terminal.

Photos can be searched, sorted by date, title or size, selected, and removed
from the session. Press ? inside the grid for the key bindings.`,
		Version:       version.GetVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMainApplication(cmd, v)
		},
	}

	// Disable cobra's completion command for now
	cmd.CompletionOptions.DisableDefaultCmd = true

	addPersistentFlags(cmd, v)

	cmd.AddCommand(newListCmd(v))
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// runMainApplication runs the main application
func runMainApplication(cmd *cobra.Command, v *viper.Viper) error {
	opts := getBootstrapOptions(cmd, v)
	opts.Out = cmd.OutOrStdout()

	result, err := bootstrap.Bootstrap(opts)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	// A nil result means there is nothing to run (e.g., the version flag).
	if result == nil {
		return nil
	}

	// Application runtime errors are already reported; exit without usage.
	if err := bootstrap.StartApplication(cmd.Context(), result); err != nil {
		os.Exit(1)
	}

	return nil
}

// getBootstrapOptions converts cobra flags to BootstrapOptions
func getBootstrapOptions(cmd *cobra.Command, v *viper.Viper) bootstrap.BootstrapOptions {
	configPath, _ := cmd.Flags().GetString("config")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	showVersion, _ := cmd.Flags().GetBool("version")

	// Config values come from viper, which also reads PIXGRID_* variables.
	return bootstrap.BootstrapOptions{
		ConfigPath:   configPath,
		NoCache:      noCache,
		Version:      showVersion,
		FlagAPIKey:   v.GetString("api_key"),
		FlagBaseURL:  v.GetString("base_url"),
		FlagCount:    v.GetInt("count"),
		FlagSort:     v.GetString("default_sort"),
		FlagDebug:    v.GetBool("debug"),
		FlagCacheDir: v.GetString("cache_dir"),
	}
}

// addPersistentFlags adds all the persistent flags to the root command
func addPersistentFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()

	// Bootstrap flags
	flags.StringP("config", "c", "", "Path to YAML config file")
	flags.BoolP("no-cache", "n", false, "Keep thumbnails in a small LRU instead of badger")
	flags.BoolP("version", "v", false, "Show version information")

	// Config flags
	flags.String("api-key", "", "Unsplash access key")
	flags.String("base-url", "", "Unsplash API root URL")
	flags.Int("count", 0, "Photos per fetch (1-30)")
	flags.String("sort", "", "Initial sort: date, title or size")
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("cache-dir", "", "Directory for the log file")

	v.SetEnvPrefix("PIXGRID")
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"api_key":      "api-key",
		"base_url":     "base-url",
		"count":        "count",
		"default_sort": "sort",
		"debug":        "debug",
		"cache_dir":    "cache-dir",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", key, err))
		}
	}
}
