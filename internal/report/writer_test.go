package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/housepred/internal/model"
)

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func successReport(label string) *model.PredictionReport {
	features := model.FeatureVector{CRIM: 0.00632, ZN: 18, RM: 6.575, LSTAT: 4.98}
	return &model.PredictionReport{
		RequestID:   "11111111-2222-3333-4444-555555555555",
		Label:       label,
		Features:    features,
		Result:      model.NewSuccess(24.5, "$24,500"),
		RequestedAt: testTime,
		Elapsed:     120 * time.Millisecond,
	}
}

func failureReport(label string) *model.PredictionReport {
	return &model.PredictionReport{
		RequestID:   "66666666-7777-8888-9999-000000000000",
		Label:       label,
		Result:      model.NewFailure("model unavailable"),
		RequestedAt: testTime,
		Elapsed:     3 * time.Millisecond,
	}
}

func testProfileView() *model.ProfileView {
	return &model.ProfileView{
		Profile: model.UserProfile{
			Name:     "jane@x.com",
			Email:    "jane@x.com",
			Provider: model.ProviderPassword,
		},
		DisplayName: "jane",
		ModifiedAt:  testTime.Add(-3 * time.Minute),
	}
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("single success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WritePredictions([]*model.PredictionReport{successReport("")}); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != "Predicted price: $24,500\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("single failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WritePredictions([]*model.PredictionReport{failureReport("")}); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != "Prediction failed: model unavailable\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("verbose includes details", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))
		if _, err := w.WritePredictions([]*model.PredictionReport{successReport("")}); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, want := range []string{"request id: 11111111-", "elapsed:    120ms", "CRIM=0.00632", "RM=6.575"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in %q", want, out)
			}
		}
	})

	t.Run("batch lists rows and summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		reports := []*model.PredictionReport{successReport("downtown"), failureReport(""), successReport("suburb")}
		n, err := NewSimpleWriter(&buf).WritePredictions(reports)
		if err != nil {
			t.Fatal(err)
		}
		if n != buf.Len() {
			t.Errorf("returned %d bytes, wrote %d", n, buf.Len())
		}

		out := buf.String()
		lines := strings.Split(out, "\n")
		if !strings.HasPrefix(lines[0], "downtown") || !strings.Contains(lines[0], "$24,500") {
			t.Errorf("first row = %q", lines[0])
		}
		if !strings.HasPrefix(lines[1], "#2") || !strings.Contains(lines[1], "FAILED: model unavailable") {
			t.Errorf("second row = %q", lines[1])
		}
		if !strings.Contains(out, "2 of 3 predictions succeeded, 1 failed") {
			t.Errorf("missing summary in %q", out)
		}
	})

	t.Run("profile with relative time", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithClock(func() time.Time { return testTime }))
		if _, err := w.WriteProfile(testProfileView()); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, want := range []string{"Signed in as jane", "Email:    jane@x.com", "Avatar:   -", "Provider: password", "3 minutes ago"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in %q", want, out)
			}
		}
	})

	t.Run("no profile", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteProfile(nil); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "signed out") {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("features", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteFeatures(model.FeatureVector{B: 396.9}); err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != model.FeatureCount {
			t.Fatalf("expected %d lines, got %d", model.FeatureCount, len(lines))
		}
		if !strings.HasPrefix(lines[0], "CRIM") || !strings.Contains(lines[11], "396.9") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("predictions document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		reports := []*model.PredictionReport{successReport("a"), failureReport("b")}
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).WritePredictions(reports); err != nil {
			t.Fatal(err)
		}

		var doc struct {
			Summary     Summary `json:"summary"`
			Predictions []struct {
				Label    string             `json:"label"`
				Features map[string]float64 `json:"features"`
				Result   struct {
					Success bool    `json:"success"`
					Value   float64 `json:"value"`
					Display string  `json:"display"`
					Error   string  `json:"error"`
				} `json:"result"`
			} `json:"predictions"`
		}
		if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if doc.Summary != (Summary{Total: 2, Succeeded: 1, Failed: 1}) {
			t.Errorf("summary = %+v", doc.Summary)
		}
		first := doc.Predictions[0]
		if !first.Result.Success || first.Result.Display != "$24,500" || first.Result.Value != 24.5 {
			t.Errorf("first = %+v", first)
		}
		if first.Features["RM"] != 6.575 {
			t.Errorf("features = %v", first.Features)
		}
		second := doc.Predictions[1]
		if second.Result.Success || second.Result.Error != "model unavailable" {
			t.Errorf("second = %+v", second)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})

	t.Run("empty predictions encode as array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WritePredictions(nil); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), `"predictions":[]`) {
			t.Errorf("output = %s", buf.String())
		}
	})

	t.Run("profile inlined", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteProfile(testProfileView()); err != nil {
			t.Fatal(err)
		}
		var doc map[string]any
		if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
			t.Fatal(err)
		}
		if doc["signed_in"] != true || doc["display_name"] != "jane" {
			t.Errorf("doc = %v", doc)
		}
		profile, ok := doc["profile"].(map[string]any)
		if !ok || profile["provider"] != "password" {
			t.Errorf("profile = %v", doc["profile"])
		}
		if _, ok := profile["avatar"]; ok {
			t.Error("empty avatar should be omitted")
		}
	})

	t.Run("signed out", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteProfile(nil); err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(buf.String()); got != `{"signed_in":false}` {
			t.Errorf("output = %s", got)
		}
	})

	t.Run("features use wire names", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteFeatures(model.FeatureVector{Age: 65.2}); err != nil {
			t.Fatal(err)
		}
		var got map[string]float64
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if len(got) != model.FeatureCount || got["Age"] != 65.2 {
			t.Errorf("features = %v", got)
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("single prediction", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WritePredictions([]*model.PredictionReport{successReport("")}); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, want := range []string{"# House Price Predictions", "$24,500", "## Inputs", "`LSTAT`"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
		if strings.Contains(out, "pie") {
			t.Error("single prediction should not include a chart")
		}
	})

	t.Run("batch with failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		reports := []*model.PredictionReport{successReport("a"), failureReport("b|c")}
		if _, err := NewMarkdownWriter(&buf).WritePredictions(reports); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, want := range []string{"pie", "Prediction Outcomes", "[!WARNING]", "1 of 2 predictions failed", "model unavailable"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("profile", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteProfile(testProfileView()); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, want := range []string{"# Profile", "Display name", "jane", "2026-03-01 11:57:00 UTC"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("signed out", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteProfile(nil); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "signed out") {
			t.Errorf("output = %s", buf.String())
		}
	})

	t.Run("features", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteFeatures(model.FeatureVector{}); err != nil {
			t.Fatal(err)
		}
		if out := buf.String(); !strings.Contains(out, "Feature") || !strings.Contains(out, "Description") {
			t.Errorf("output = %s", buf.String())
		}
	})
}

func TestEscapeCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a|b", `a\|b`},
		{"line1\nline2", "line1 line2"},
	}
	for _, tt := range tests {
		if got := escapeCell(tt.in); got != tt.want {
			t.Errorf("escapeCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
