package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/housepred/internal/config"
)

//go:embed templates/housepred.yaml
var configTemplate []byte

// configFileName is the default configuration file name.
const configFileName = config.DefaultConfigFile

var errInitTargets = errors.New("--output and --xdg cannot be used together")

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented housepred configuration file",
		Long: `Write a configuration template listing every setting with its default:
the backend URL, route, timeout, proxy and headers, the price locale and
currency symbol, batch concurrency, the profile database directory and
the log format.

Examples:
  housepred init                 # ./.housepred
  housepred init --xdg           # $XDG_CONFIG_HOME/housepred/config.yaml
  housepred init --stdout > my.yaml
  housepred init -o team.yaml -f`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := config.ParseFile(configTemplate); err != nil {
				return fmt.Errorf("invalid config template: %w", err)
			}
			if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
				_, err := cmd.OutOrStdout().Write(configTemplate)
				return err
			}

			target, err := initTarget(cmd)
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			if err := writeTemplate(target, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", target)
			fmt.Fprintln(cmd.OutOrStdout(), "Point api.base_url at your prediction backend, then run 'housepred predict --sample'.")
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", configFileName, "Configuration file to write")
	cmd.Flags().Bool("xdg", false, "Write to the XDG config directory instead")
	cmd.Flags().Bool("stdout", false, "Print the template instead of writing a file")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")

	return cmd
}

func initTarget(cmd *cobra.Command) (string, error) {
	output, _ := cmd.Flags().GetString("output")
	useXDG, _ := cmd.Flags().GetBool("xdg")
	if !useXDG {
		return output, nil
	}
	if cmd.Flags().Changed("output") {
		return "", errInitTargets
	}
	return filepath.Join(config.XDGConfigDir(), "config.yaml"), nil
}

func writeTemplate(path string, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, flags, 0600) //nolint:gosec // path comes from the user
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists (use -f to overwrite)", path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(configTemplate); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
