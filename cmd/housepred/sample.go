package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/housepred/internal/config"
	"github.com/nao1215/housepred/internal/predict"
	"github.com/nao1215/housepred/internal/report"
)

// NewSampleCmd creates the sample command.
func NewSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the sample feature vector",
		Long: `Sample prints the example feature vector used by "predict --sample",
together with a description of every feature.

With --json the output uses the backend's field names and can be posted
to the prediction endpoint directly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithOutput(cmd, func(_ *config.Config, _ *slog.Logger, w report.Writer) error {
				if _, err := w.WriteFeatures(predict.ParseFeatures(predict.SampleFields())); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				return nil
			})
		},
	}

	addOutputFlags(cmd)

	return cmd
}
