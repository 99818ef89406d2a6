package predict

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/housepred/internal/model"
)

// DefaultConcurrency is the number of requests a BatchSubmitter keeps in
// flight when no limit is configured.
const DefaultConcurrency = 4

// BatchRow is one property to score in a batch.
type BatchRow struct {
	Label  string
	Fields model.RawFields
}

// BatchSubmitter submits many rows concurrently through a Flow.
// Each row is an independent request: rows are not deduplicated, and one
// row failing does not stop the others.
type BatchSubmitter struct {
	flow        *Flow
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchSubmitter.
type BatchOption func(*BatchSubmitter)

// WithConcurrency sets the maximum number of requests in flight.
// Values below 1 are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchSubmitter) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets the logger used for batch-level diagnostics.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchSubmitter) {
		b.logger = logger
	}
}

// NewBatchSubmitter creates a BatchSubmitter around flow.
func NewBatchSubmitter(flow *Flow, opts ...BatchOption) *BatchSubmitter {
	b := &BatchSubmitter{
		flow:        flow,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Submit scores every row and returns the reports in input order.
// Rows not started before ctx is cancelled have no report (nil entry) and
// the context error is returned.
func (b *BatchSubmitter) Submit(ctx context.Context, rows []BatchRow) ([]*model.PredictionReport, error) {
	reports := make([]*model.PredictionReport, len(rows))
	err := b.SubmitWithCallback(ctx, rows, func(report *model.PredictionReport, index int) {
		reports[index] = report
	})
	return reports, err
}

// SubmitWithCallback scores every row and calls callback as each finishes.
// The callback runs on the worker goroutine, so it must be safe for
// concurrent use if it touches shared state. Distinct indexes never race.
func (b *BatchSubmitter) SubmitWithCallback(
	ctx context.Context,
	rows []BatchRow,
	callback func(report *model.PredictionReport, index int),
) error {
	b.logger.Info("starting batch prediction",
		"rows", len(rows),
		"concurrency", b.concurrency,
	)
	startTime := time.Now()

	g := new(errgroup.Group)
	g.SetLimit(b.concurrency)

	for i, row := range rows {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			report := b.flow.Report(ctx, row.Label, row.Fields)
			callback(report, i)
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // workers never return errors

	b.logger.Info("batch prediction complete",
		"rows", len(rows),
		"elapsed", time.Since(startTime),
	)

	return ctx.Err()
}
