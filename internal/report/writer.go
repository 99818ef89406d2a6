package report

import (
	"io"
	"strconv"

	"github.com/nao1215/housepred/internal/model"
)

// Writer renders command output. Every method returns the number of bytes
// written.
type Writer interface {
	// WritePredictions renders one or more prediction outcomes, in order.
	WritePredictions(reports []*model.PredictionReport) (int, error)

	// WriteProfile renders the stored profile. A nil view means no
	// profile is stored.
	WriteProfile(view *model.ProfileView) (int, error)

	// WriteFeatures renders a feature vector, e.g. the sample inputs.
	WriteFeatures(v model.FeatureVector) (int, error)
}

// baseWriter holds the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Summary counts outcomes in a batch.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

func summarize(reports []*model.PredictionReport) Summary {
	s := Summary{Total: len(reports)}
	for _, r := range reports {
		if r.Result.Succeeded() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// rowLabel returns a display label for the i-th report.
func rowLabel(r *model.PredictionReport, i int) string {
	if r.Label != "" {
		return r.Label
	}
	return "#" + strconv.Itoa(i+1)
}

var (
	_ Writer = (*SimpleWriter)(nil)
	_ Writer = (*JSONWriter)(nil)
	_ Writer = (*MarkdownWriter)(nil)
)
