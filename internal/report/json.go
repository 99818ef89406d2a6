package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/housepred/internal/model"
)

// JSONWriter renders output as JSON for scripts.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented output with the given prefix and indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// PredictionDocument is the JSON shape of WritePredictions.
type PredictionDocument struct {
	Summary     Summary                   `json:"summary"`
	Predictions []*model.PredictionReport `json:"predictions"`
}

// ProfileDocument is the JSON shape of WriteProfile. The profile fields
// are inlined and absent when signed out.
type ProfileDocument struct {
	SignedIn bool `json:"signed_in"`
	*model.ProfileView
}

// WritePredictions writes a PredictionDocument.
func (w *JSONWriter) WritePredictions(reports []*model.PredictionReport) (int, error) {
	if reports == nil {
		reports = []*model.PredictionReport{}
	}
	return w.writeJSON(PredictionDocument{
		Summary:     summarize(reports),
		Predictions: reports,
	})
}

// WriteProfile writes a ProfileDocument.
func (w *JSONWriter) WriteProfile(view *model.ProfileView) (int, error) {
	return w.writeJSON(ProfileDocument{SignedIn: view != nil, ProfileView: view})
}

// WriteFeatures writes v using the backend's field names, so the output
// can be posted to the prediction endpoint as is.
func (w *JSONWriter) WriteFeatures(v model.FeatureVector) (int, error) {
	return w.writeJSON(v)
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}
	return w.output.Write(append(data, '\n'))
}
