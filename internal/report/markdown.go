package report

import (
	"io"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/housepred/internal/model"
)

// MarkdownWriter renders GitHub-flavored markdown, suitable for pasting
// into issues and pull requests.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// WritePredictions writes a results table. Batches of more than one row
// also get an outcome chart and an alert when some rows failed.
func (w *MarkdownWriter) WritePredictions(reports []*model.PredictionReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("House Price Predictions")
	md.PlainText("")

	rows := make([][]string, len(reports))
	for i, r := range reports {
		status, value := "✅", r.Result.Display
		if !r.Result.Succeeded() {
			status, value = "❌", r.Result.Message
		}
		rows[i] = []string{
			escapeCell(rowLabel(r, i)),
			status,
			escapeCell(value),
			"`" + r.RequestID + "`",
			r.Elapsed.Round(time.Millisecond).String(),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Row", "Status", "Prediction", "Request ID", "Elapsed"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(reports) > 1 {
		w.writeOutcome(md, summarize(reports))
	}

	w.writeInputs(md, reports)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeOutcome(md *markdown.Markdown, s Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Prediction Outcomes"),
		piechart.WithShowData(true),
	)
	if s.Succeeded > 0 {
		chart.LabelAndIntValue("Succeeded", uint64(s.Succeeded))
	}
	if s.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(s.Failed))
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")

	if s.Failed > 0 {
		md.Warningf("%d of %d predictions failed.", s.Failed, s.Total)
	} else {
		md.Tip("All predictions succeeded.")
	}
	md.PlainText("")
}

// writeInputs writes one column per row with the parsed feature values.
func (w *MarkdownWriter) writeInputs(md *markdown.Markdown, reports []*model.PredictionReport) {
	md.H2("Inputs")
	md.PlainText("")

	header := []string{"Feature"}
	for i, r := range reports {
		header = append(header, escapeCell(rowLabel(r, i)))
	}

	features := model.AllFeatures()
	rows := make([][]string, len(features))
	for fi, f := range features {
		row := []string{"`" + f.String() + "`"}
		for _, r := range reports {
			row = append(row, formatValue(r.Features.Get(f)))
		}
		rows[fi] = row
	}
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}

// WriteProfile writes the profile as a property table.
func (w *MarkdownWriter) WriteProfile(view *model.ProfileView) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Profile")
	md.PlainText("")

	if view == nil {
		md.Note("No profile stored (signed out).")
		return len(md.String()), md.Build()
	}

	p := view.Profile
	rows := [][]string{
		{"Display name", escapeCell(view.DisplayName)},
		{"Name", escapeCell(p.Name)},
		{"Email", escapeCell(orDash(p.Email))},
		{"Avatar", escapeCell(orDash(p.Avatar))},
		{"Provider", orDash(p.Provider)},
	}
	if !view.ModifiedAt.IsZero() {
		rows = append(rows, []string{"Saved", view.ModifiedAt.Format("2006-01-02 15:04:05 MST")})
	}
	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	return len(md.String()), md.Build()
}

// WriteFeatures writes a feature table with descriptions.
func (w *MarkdownWriter) WriteFeatures(v model.FeatureVector) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Features")
	md.PlainText("")

	features := model.AllFeatures()
	rows := make([][]string, len(features))
	for i, f := range features {
		rows[i] = []string{"`" + f.String() + "`", formatValue(v.Get(f)), f.Description()}
	}
	md.Table(markdown.TableSet{Header: []string{"Feature", "Value", "Description"}, Rows: rows})
	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by housepred*")
}

// escapeCell keeps a value from breaking the table layout.
func escapeCell(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '|':
			out = append(out, '\\', '|')
		case '\n', '\r':
			out = append(out, ' ')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
