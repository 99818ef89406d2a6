package predict

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nao1215/housepred/internal/model"
)

// Flow runs the prediction request flow: parse, predict, format.
// Every failure is converted into a failed model.PredictionResult, so the
// caller can always display the outcome and resubmit.
type Flow struct {
	predictor Predictor
	formatter *Formatter
	logger    *slog.Logger

	// now and newID are replaceable for tests.
	now   func() time.Time
	newID func() string
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithFlowLogger sets the logger used for submission diagnostics.
func WithFlowLogger(logger *slog.Logger) FlowOption {
	return func(f *Flow) {
		f.logger = logger
	}
}

// NewFlow creates a Flow that scores with predictor and formats with formatter.
func NewFlow(predictor Predictor, formatter *Formatter, opts ...FlowOption) *Flow {
	f := &Flow{
		predictor: predictor,
		formatter: formatter,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// Submit parses raw, sends it to the backend once and returns the outcome.
func (f *Flow) Submit(ctx context.Context, raw model.RawFields) model.PredictionResult {
	return f.Report(ctx, "", raw).Result
}

// SubmitAsync starts Submit in the background. The returned channel
// receives exactly one result and is then closed. A caller that moves on
// may simply stop listening; the result is dropped.
func (f *Flow) SubmitAsync(ctx context.Context, raw model.RawFields) <-chan model.PredictionResult {
	ch := make(chan model.PredictionResult, 1)
	fields := raw.Clone()
	go func() {
		defer close(ch)
		ch <- f.Submit(ctx, fields)
	}()
	return ch
}

// Report behaves like Submit but also records the inputs, request ID and
// timing of the submission.
func (f *Flow) Report(ctx context.Context, label string, raw model.RawFields) *model.PredictionReport {
	report := &model.PredictionReport{
		RequestID:   f.newID(),
		Label:       label,
		Raw:         model.RawByName(raw),
		Features:    ParseFeatures(raw),
		RequestedAt: f.now(),
	}

	value, err := f.predictor.Predict(WithRequestID(ctx, report.RequestID), report.Features)
	report.Elapsed = f.now().Sub(report.RequestedAt)

	if err != nil {
		f.logger.Warn("prediction failed",
			"request_id", report.RequestID,
			"label", label,
			"error", err,
		)
		report.Result = model.NewFailure(failureMessage(err))
		return report
	}

	report.Result = model.NewSuccess(value, f.formatter.FormatPrice(value))
	f.logger.Debug("prediction succeeded",
		"request_id", report.RequestID,
		"label", label,
		"prediction", value,
		"elapsed", report.Elapsed,
	)
	return report
}

// failureMessage converts a Predictor error into text for the user.
func failureMessage(err error) string {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Message
	}

	var unreachable *UnreachableError
	if errors.As(err, &unreachable) {
		return unreachable.Hint()
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "prediction request timed out"
	case errors.Is(err, context.Canceled):
		return "prediction request cancelled"
	case errors.Is(err, ErrBackendUnreachable):
		return "failed to get prediction: make sure the backend is running"
	default:
		return err.Error()
	}
}
