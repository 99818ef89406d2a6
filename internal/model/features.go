package model

import "strings"

// Feature identifies one of the 13 numeric inputs the prediction backend
// expects. The order of the constants is the wire order.
type Feature int

// Prediction inputs, in the order the backend model was trained on.
const (
	FeatureCRIM Feature = iota
	FeatureZN
	FeatureINDUS
	FeatureCHAS
	FeatureNOX
	FeatureRM
	FeatureAge
	FeatureDIS
	FeatureRAD
	FeatureTAX
	FeaturePTRATIO
	FeatureB
	FeatureLSTAT
)

// FeatureCount is the number of inputs in a FeatureVector.
const FeatureCount = 13

// featureInfo describes how a Feature is named on the wire, on the command
// line and in human-readable output.
type featureInfo struct {
	wire        string
	flag        string
	description string
}

var featureTable = [FeatureCount]featureInfo{
	FeatureCRIM:    {"CRIM", "crim", "Per capita crime rate"},
	FeatureZN:      {"ZN", "zn", "Residential land zoned for large lots (%)"},
	FeatureINDUS:   {"INDUS", "indus", "Non-retail business acres (%)"},
	FeatureCHAS:    {"CHAS", "chas", "Bounds the river (1 = yes, 0 = no)"},
	FeatureNOX:     {"NOX", "nox", "Nitric oxide concentration"},
	FeatureRM:      {"RM", "rm", "Average number of rooms"},
	FeatureAge:     {"Age", "age", "Units built before 1940 (%)"},
	FeatureDIS:     {"DIS", "dis", "Weighted distance to employment centres"},
	FeatureRAD:     {"RAD", "rad", "Radial highway accessibility index"},
	FeatureTAX:     {"TAX", "tax", "Property tax rate per $10,000"},
	FeaturePTRATIO: {"PTRATIO", "ptratio", "Pupil-teacher ratio"},
	FeatureB:       {"B", "b", "Demographic index"},
	FeatureLSTAT:   {"LSTAT", "lstat", "Lower status of the population (%)"},
}

// AllFeatures returns every Feature in wire order.
func AllFeatures() []Feature {
	features := make([]Feature, FeatureCount)
	for i := range features {
		features[i] = Feature(i)
	}
	return features
}

// Valid reports whether f is one of the defined features.
func (f Feature) Valid() bool {
	return f >= 0 && f < FeatureCount
}

// String returns the wire name of the feature (e.g. "PTRATIO").
func (f Feature) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return featureTable[f].wire
}

// FlagName returns the lower-case command line flag name for the feature.
func (f Feature) FlagName() string {
	if !f.Valid() {
		return ""
	}
	return featureTable[f].flag
}

// Description returns a short human-readable description of the feature.
func (f Feature) Description() string {
	if !f.Valid() {
		return ""
	}
	return featureTable[f].description
}

// ParseFeature resolves a wire name or flag name to a Feature.
// Matching is case-insensitive.
func ParseFeature(name string) (Feature, bool) {
	for i, info := range featureTable {
		if strings.EqualFold(name, info.wire) || strings.EqualFold(name, info.flag) {
			return Feature(i), true
		}
	}
	return 0, false
}

// RawFields holds the unparsed text of each input, keyed by Feature.
// A missing key is treated the same as an empty string.
type RawFields map[Feature]string

// Clone returns a copy of the raw fields.
func (r RawFields) Clone() RawFields {
	out := make(RawFields, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FeatureVector is the numeric description of a property sent to the
// prediction backend. JSON field names match what the backend expects.
type FeatureVector struct {
	CRIM    float64 `json:"CRIM" yaml:"CRIM"`
	ZN      float64 `json:"ZN" yaml:"ZN"`
	INDUS   float64 `json:"INDUS" yaml:"INDUS"`
	CHAS    float64 `json:"CHAS" yaml:"CHAS"`
	NOX     float64 `json:"NOX" yaml:"NOX"`
	RM      float64 `json:"RM" yaml:"RM"`
	Age     float64 `json:"Age" yaml:"Age"`
	DIS     float64 `json:"DIS" yaml:"DIS"`
	RAD     float64 `json:"RAD" yaml:"RAD"`
	TAX     float64 `json:"TAX" yaml:"TAX"`
	PTRATIO float64 `json:"PTRATIO" yaml:"PTRATIO"`
	B       float64 `json:"B" yaml:"B"`
	LSTAT   float64 `json:"LSTAT" yaml:"LSTAT"`
}

// field returns a pointer to the struct member backing f, or nil.
func (v *FeatureVector) field(f Feature) *float64 {
	switch f {
	case FeatureCRIM:
		return &v.CRIM
	case FeatureZN:
		return &v.ZN
	case FeatureINDUS:
		return &v.INDUS
	case FeatureCHAS:
		return &v.CHAS
	case FeatureNOX:
		return &v.NOX
	case FeatureRM:
		return &v.RM
	case FeatureAge:
		return &v.Age
	case FeatureDIS:
		return &v.DIS
	case FeatureRAD:
		return &v.RAD
	case FeatureTAX:
		return &v.TAX
	case FeaturePTRATIO:
		return &v.PTRATIO
	case FeatureB:
		return &v.B
	case FeatureLSTAT:
		return &v.LSTAT
	default:
		return nil
	}
}

// Get returns the value of f. Unknown features read as 0.
func (v FeatureVector) Get(f Feature) float64 {
	if p := v.field(f); p != nil {
		return *p
	}
	return 0
}

// Set assigns the value of f. Unknown features are ignored.
func (v *FeatureVector) Set(f Feature, value float64) {
	if p := v.field(f); p != nil {
		*p = value
	}
}

// Values returns the vector as a slice in wire order.
func (v FeatureVector) Values() []float64 {
	values := make([]float64, FeatureCount)
	for i := range values {
		values[i] = v.Get(Feature(i))
	}
	return values
}
