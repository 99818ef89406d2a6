package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/housepred/internal/config"
	"github.com/nao1215/housepred/internal/database"
	"github.com/nao1215/housepred/internal/log"
	"github.com/nao1215/housepred/internal/profile"
	"github.com/nao1215/housepred/internal/report"
)

// addOutputFlags registers the output format flags shared by commands
// that render results.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to the specified file path (creates directories if needed)")
}

// buildConfig loads the configuration file and applies the global flags
// and, when registered on cmd, the output flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(inheritedString(cmd, "config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}

	if dataDir := inheritedString(cmd, "data-dir"); dataDir != "" {
		cfg.DataDir = dataDir
	}

	if cmd.Flags().Lookup("json") != nil {
		if cfg.JSONOutput, err = cmd.Flags().GetBool("json"); err != nil {
			return nil, err
		}
		if cfg.MarkdownOutput, err = cmd.Flags().GetBool("markdown"); err != nil {
			return nil, err
		}
		if cfg.OutputFile, err = cmd.Flags().GetString("output"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// inheritedString returns the value of a string flag defined on cmd or
// one of its parents, or "" when no such flag exists.
func inheritedString(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	if f := cmd.InheritedFlags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the secure logger for cfg. Logs go to stderr so
// they never mix with command output.
func setupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	if cfg.LogFormat == config.LogFormatJSON {
		return log.NewSecureJSONLogger(w, cfg.Verbose)
	}
	return log.NewSecureLogger(w, cfg.Verbose)
}

// openOutput returns the destination for command output: cfg.OutputFile
// when set, stdout otherwise. The returned close function is never nil.
func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func() error, error) {
	if cfg.OutputFile == "" {
		return stdout, func() error { return nil }, nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Output may contain profile data; keep it readable by the owner only.
	f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// newReportWriter selects the writer for the configured format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONOutput:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownOutput:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

// openProfileStore opens the profile database under cfg.DataDir.
// The caller must call the returned close function.
func openProfileStore(cfg *config.Config, logger *slog.Logger) (*profile.Store, func() error, error) {
	db, err := database.Open(cfg.DataDir, database.DefaultOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open profile database: %w", err)
	}
	logger.Debug("profile database opened", "path", db.Path())
	return profile.NewStore(db, profile.WithLogger(logger)), db.Close, nil
}

// runWithOutput loads and validates the configuration, then calls fn with
// a logger and the selected report writer.
func runWithOutput(cmd *cobra.Command, fn func(cfg *config.Config, logger *slog.Logger, w report.Writer) error) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	return runConfigured(cmd, cfg, fn)
}

// runConfigured is runWithOutput for a Config the caller already adjusted.
func runConfigured(cmd *cobra.Command, cfg *config.Config, fn func(cfg *config.Config, logger *slog.Logger, w report.Writer) error) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg, cmd.ErrOrStderr())

	output, closeOutput, err := openOutput(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	err = fn(cfg, logger, newReportWriter(cfg, output))
	if cerr := closeOutput(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close output file: %w", cerr)
	}
	return err
}
