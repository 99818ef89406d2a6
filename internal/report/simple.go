package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nao1215/housepred/internal/model"
)

// SimpleWriter renders plain text for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds request IDs, timings and parsed inputs.
	verbose bool

	// now is the reference time for relative timestamps.
	now func() time.Time
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables additional detail in the output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithClock sets the reference time used for "3 minutes ago" style output.
func WithClock(now func() time.Time) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.now = now
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WritePredictions prints a single outcome as one line; several outcomes
// are printed as a list followed by a summary.
func (w *SimpleWriter) WritePredictions(reports []*model.PredictionReport) (int, error) {
	var sb strings.Builder

	if len(reports) == 1 {
		w.writeSingle(&sb, reports[0])
		return io.WriteString(w.output, sb.String())
	}

	width := 0
	for i, r := range reports {
		width = max(width, len(rowLabel(r, i)))
	}
	for i, r := range reports {
		label := rowLabel(r, i)
		fmt.Fprintf(&sb, "%-*s  %s\n", width, label, outcome(r.Result))
		if w.verbose {
			w.writeDetails(&sb, r, "    ")
		}
	}

	s := summarize(reports)
	fmt.Fprintf(&sb, "\n%d of %d predictions succeeded", s.Succeeded, s.Total)
	if s.Failed > 0 {
		fmt.Fprintf(&sb, ", %d failed", s.Failed)
	}
	sb.WriteString("\n")

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeSingle(sb *strings.Builder, r *model.PredictionReport) {
	if r.Result.Succeeded() {
		fmt.Fprintf(sb, "Predicted price: %s\n", r.Result.Display)
	} else {
		fmt.Fprintf(sb, "Prediction failed: %s\n", r.Result.Message)
	}
	if w.verbose {
		w.writeDetails(sb, r, "  ")
	}
}

func (w *SimpleWriter) writeDetails(sb *strings.Builder, r *model.PredictionReport, indent string) {
	fmt.Fprintf(sb, "%srequest id: %s\n", indent, r.RequestID)
	fmt.Fprintf(sb, "%selapsed:    %s\n", indent, r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(sb, "%sinputs:     ", indent)
	for i, f := range model.AllFeatures() {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(sb, "%s=%s", f, formatValue(r.Features.Get(f)))
	}
	sb.WriteString("\n")
}

// WriteProfile prints the profile as aligned key/value lines.
func (w *SimpleWriter) WriteProfile(view *model.ProfileView) (int, error) {
	if view == nil {
		return io.WriteString(w.output, "No profile stored (signed out).\n")
	}

	var sb strings.Builder
	p := view.Profile
	fmt.Fprintf(&sb, "Signed in as %s\n\n", view.DisplayName)
	fmt.Fprintf(&sb, "  Name:     %s\n", p.Name)
	fmt.Fprintf(&sb, "  Email:    %s\n", orDash(p.Email))
	fmt.Fprintf(&sb, "  Avatar:   %s\n", orDash(p.Avatar))
	fmt.Fprintf(&sb, "  Provider: %s\n", orDash(p.Provider))
	if !view.ModifiedAt.IsZero() {
		fmt.Fprintf(&sb, "  Saved:    %s\n", humanize.RelTime(view.ModifiedAt, w.now(), "ago", "from now"))
	}
	return io.WriteString(w.output, sb.String())
}

// WriteFeatures prints one feature per line with its description.
func (w *SimpleWriter) WriteFeatures(v model.FeatureVector) (int, error) {
	var sb strings.Builder
	for _, f := range model.AllFeatures() {
		fmt.Fprintf(&sb, "%-8s %-10s %s\n", f, formatValue(v.Get(f)), f.Description())
	}
	return io.WriteString(w.output, sb.String())
}

func outcome(r model.PredictionResult) string {
	if r.Succeeded() {
		return r.Display
	}
	return "FAILED: " + r.Message
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
