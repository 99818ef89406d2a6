package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/housepred/internal/config"
	"github.com/nao1215/housepred/internal/model"
	"github.com/nao1215/housepred/internal/predict"
	"github.com/nao1215/housepred/internal/report"
)

// errNoFeatures is returned when predict is run without any input.
var errNoFeatures = errors.New("no features given: set feature flags, use --sample or --file")

// errFileWithFeatures is returned when --file is combined with single-row input.
var errFileWithFeatures = errors.New("--file cannot be combined with feature flags, --sample or --label")

// NewPredictCmd creates the predict command.
func NewPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a house price from the 13 housing features",
		Long: `Predict sends the housing features to the prediction backend and prints
the predicted price.

Every feature has its own flag. Values are parsed leniently: a missing,
empty or non-numeric value is sent as 0. Use --sample to start from the
example vector and override individual features.

A failed prediction is printed and the command exits with status 1.

Examples:
  # Predict the sample house
  housepred predict --sample

  # Override features of the sample
  housepred predict --sample --rm 7.1 --lstat 3.2

  # Submit every row of a YAML file, 8 requests at a time
  housepred predict --file rows.yaml --batch 8

  # Output Markdown to a file
  housepred predict --sample --markdown -o prediction.md

Batch file (--file) example:
  rows:
    - label: riverside
      features:
        CRIM: 0.00632
        RM: 6.575
    - label: downtown
      features:
        crim: 3.2
        lstat: 18.1`,
		Args: cobra.NoArgs,
		RunE: runPredictCmd,
	}

	for _, f := range model.AllFeatures() {
		cmd.Flags().String(f.FlagName(), "", fmt.Sprintf("%s (%s)", f.Description(), f))
	}

	cmd.Flags().BoolP("sample", "s", false,
		"Start from the sample feature vector")
	cmd.Flags().StringP("label", "l", "",
		"Label for the prediction in the output")
	cmd.Flags().StringP("file", "f", "",
		"Submit every row of a YAML batch file")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent requests for --file")

	cmd.Flags().String("api-url", "",
		"Prediction backend base URL (default: "+config.DefaultAPIBaseURL+")")
	cmd.Flags().DurationP("timeout", "t", 0,
		"Timeout for each request (0 keeps the transport default)")
	cmd.Flags().String("proxy", "",
		"SOCKS5 proxy (host:port) for backend requests")

	addOutputFlags(cmd)

	return cmd
}

// runPredictCmd executes the predict command.
func runPredictCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyPredictFlags(cmd, cfg); err != nil {
		return err
	}

	rows, err := collectRows(cmd)
	if err != nil {
		return err
	}

	return runConfigured(cmd, cfg, func(cfg *config.Config, logger *slog.Logger, w report.Writer) error {
		flow, err := newFlow(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reports, err := submitRows(ctx, cfg, flow, logger, rows)
		if err != nil {
			return err
		}

		if _, err := w.WritePredictions(reports); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		for _, r := range reports {
			if !r.Result.Succeeded() {
				return errPredictionFailed
			}
		}
		return nil
	})
}

// applyPredictFlags overrides configuration values with the flags the
// user set explicitly.
func applyPredictFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("api-url") {
		if cfg.APIBaseURL, err = flags.GetString("api-url"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("proxy") {
		if cfg.Proxy, err = flags.GetString("proxy"); err != nil {
			return err
		}
	}
	if flags.Changed("batch") {
		if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
			return err
		}
	}
	return nil
}

// collectRows builds the rows to submit from --file or from the feature
// flags.
func collectRows(cmd *cobra.Command) ([]predict.BatchRow, error) {
	flags := cmd.Flags()

	sample, err := flags.GetBool("sample")
	if err != nil {
		return nil, err
	}
	label, err := flags.GetString("label")
	if err != nil {
		return nil, err
	}

	raw := model.RawFields{}
	if sample {
		raw = predict.SampleFields()
	}
	changed := 0
	for _, f := range model.AllFeatures() {
		if !flags.Changed(f.FlagName()) {
			continue
		}
		v, err := flags.GetString(f.FlagName())
		if err != nil {
			return nil, err
		}
		raw[f] = v
		changed++
	}

	file, err := flags.GetString("file")
	if err != nil {
		return nil, err
	}
	if file != "" {
		if sample || changed > 0 || label != "" {
			return nil, errFileWithFeatures
		}
		return predict.LoadBatchFile(file)
	}

	if !sample && changed == 0 {
		return nil, errNoFeatures
	}
	return []predict.BatchRow{{Label: label, Fields: raw}}, nil
}

// newFlow wires the HTTP client and price formatter for cfg.
func newFlow(cfg *config.Config, logger *slog.Logger) (*predict.Flow, error) {
	formatter, err := predict.NewFormatter(cfg.Locale, cfg.CurrencySymbol)
	if err != nil {
		return nil, err
	}

	client, err := predict.NewClient(cfg.APIBaseURL,
		predict.WithPredictPath(cfg.PredictPath),
		predict.WithTimeout(cfg.Timeout),
		predict.WithProxy(cfg.Proxy),
		predict.WithUserAgent(cfg.UserAgent),
		predict.WithHeaders(cfg.Headers),
		predict.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction client: %w", err)
	}

	logger.Debug("prediction client ready", "endpoint", client.Endpoint())
	return predict.NewFlow(client, formatter, predict.WithFlowLogger(logger)), nil
}

// submitRows submits a single row directly and several rows through the
// batch submitter.
func submitRows(
	ctx context.Context,
	cfg *config.Config,
	flow *predict.Flow,
	logger *slog.Logger,
	rows []predict.BatchRow,
) ([]*model.PredictionReport, error) {
	if len(rows) == 1 {
		return []*model.PredictionReport{flow.Report(ctx, rows[0].Label, rows[0].Fields)}, nil
	}

	submitter := predict.NewBatchSubmitter(flow,
		predict.WithConcurrency(cfg.BatchSize),
		predict.WithBatchLogger(logger),
	)
	reports, err := submitter.Submit(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("batch prediction interrupted: %w", err)
	}
	return reports, nil
}
