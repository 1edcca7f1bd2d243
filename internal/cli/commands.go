package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/devnullvoid/pixgrid/internal/app"
	"github.com/devnullvoid/pixgrid/internal/bootstrap"
	"github.com/devnullvoid/pixgrid/internal/config"
	"github.com/devnullvoid/pixgrid/internal/ui/models"
	"github.com/devnullvoid/pixgrid/internal/version"
)

// newListCmd creates the headless list command
func newListCmd(v *viper.Viper) *cobra.Command {
	var search, output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch one batch and print it",
		Long: `Fetch one batch of random photos and print the ones the grid would show
for the given search and sort, without starting the terminal interface.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(output)
			if err != nil {
				return err
			}

			opts := getBootstrapOptions(cmd, v)
			opts.Out = cmd.ErrOrStderr()

			cfg, _, err := bootstrap.LoadConfig(opts)
			if err != nil {
				return err
			}

			key, err := models.ParseSortKey(cfg.DefaultSort)
			if err != nil {
				return err
			}

			svc, err := app.NewServices(cfg, app.Options{NoCache: true})
			if err != nil {
				return err
			}
			defer svc.Close()

			images, err := app.List(cmd.Context(), svc, search, key)
			if err != nil {
				return err
			}

			return writeImages(cmd.OutOrStdout(), images, format, time.Now())
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Only show photos matching this text")
	cmd.Flags().StringVarP(&output, "output", "o", string(formatTable), "Output format: table, json or yaml")

	return cmd
}

// newConfigCmd creates the config command group
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPathFor(cmd)
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Config file already exists: %s\n", path)
				return nil
			}

			if _, err := config.CreateDefaultConfigFileAt(path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s\n", path)

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-key",
		Short: "Store the Unsplash access key encrypted",
		Long: `Prompt for the Unsplash access key and store it age-encrypted in the
config file. Other settings in the file are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPathFor(cmd)

			key, err := readSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Unsplash access key: ")
			if err != nil {
				return err
			}

			if err := saveAPIKey(path, key); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Encrypted key saved to %s\n", path)
			if config.FindSOPSRule(filepath.Dir(path)) {
				fmt.Fprintf(cmd.OutOrStdout(), "💡 A .sops.yaml rule covers this directory; `sops -e -i %s` encrypts the whole file.\n", path)
			}

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), configPathFor(cmd))
		},
	})

	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.GetBuildInfo().String())
		},
	}
}

// configPathFor returns --config, an existing default file, or the XDG
// location.
func configPathFor(cmd *cobra.Command) string {
	flagPath, _ := cmd.Flags().GetString("config")
	if path := bootstrap.ResolveConfigPath(flagPath); path != "" {
		return path
	}

	return config.GetDefaultConfigPath()
}

// readSecret reads one line from in, without echo when in is a terminal.
func readSecret(in io.Reader, out io.Writer, prompt string) (string, error) {
	var raw string

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}
		raw = string(b)
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read key: %w", err)
		}
		raw = line
	}

	key := strings.TrimSpace(raw)
	if key == "" {
		return "", errors.New("no key entered")
	}

	return key, nil
}

// saveAPIKey writes key into the config file at path, keeping the file's
// other settings. SOPS-managed files are refused since saving would
// replace them with plain YAML.
func saveAPIKey(path, key string) error {
	cfg := &config.Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if config.IsSOPSEncrypted(path, data) {
			return fmt.Errorf("%s is SOPS-encrypted; edit it with `sops %s` instead", path, path)
		}
		if err := cfg.MergeWithFile(path); err != nil {
			return err
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("read config file: %w", err)
	}

	cfg.APIKey = key

	return cfg.Save(path)
}
