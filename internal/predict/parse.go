package predict

import (
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/housepred/internal/model"
)

// ParseFeatures converts raw text fields into a FeatureVector.
//
// Every feature is always present in the result. A field that is missing,
// empty, not a number, or not finite becomes 0 instead of failing the
// submission. Only plain decimal notation counts as a number: "6.5 rooms",
// "1_0" and "0x10" all become 0.
func ParseFeatures(raw model.RawFields) model.FeatureVector {
	var v model.FeatureVector
	for _, f := range model.AllFeatures() {
		v.Set(f, parseLenient(raw[f]))
	}
	return v
}

// parseLenient parses s as a float64, returning 0 on any failure.
func parseLenient(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Only plain decimal notation is accepted. strconv also takes digit
	// separators ("1_0") and hex floats ("0x1p3"), which no form field uses.
	if strings.ContainsAny(s, "_xX") {
		return 0
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// FormatFeature renders a parsed value back to text. ParseFeatures applied
// to the output yields the same value.
func FormatFeature(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
