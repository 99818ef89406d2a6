package model

import "time"

// PredictionResult is the outcome of a single prediction request.
// Exactly one of the success fields (Value, Display) or Message is
// populated; use the constructors rather than building it by hand.
type PredictionResult struct {
	// Success is true when the backend returned a prediction.
	Success bool `json:"success"`

	// Value is the predicted price in thousands of currency units.
	Value float64 `json:"value,omitempty"`

	// Display is Value converted for presentation (e.g. "$24,500").
	Display string `json:"display,omitempty"`

	// Message is the human-readable failure reason.
	Message string `json:"error,omitempty"`
}

// NewSuccess creates a successful result.
func NewSuccess(value float64, display string) PredictionResult {
	return PredictionResult{Value: value, Display: display, Success: true}
}

// NewFailure creates a failed result carrying msg.
func NewFailure(msg string) PredictionResult {
	return PredictionResult{Message: msg}
}

// Succeeded reports whether the request produced a prediction.
func (r PredictionResult) Succeeded() bool {
	return r.Success
}

// String returns the display value on success and the message on failure.
func (r PredictionResult) String() string {
	if r.Success {
		return r.Display
	}
	return r.Message
}

// PredictionReport records one submission for output. It is never persisted.
type PredictionReport struct {
	// RequestID is sent to the backend as X-Request-ID.
	RequestID string `json:"request_id"`

	// Label is an optional caller-supplied name for the row.
	Label string `json:"label,omitempty"`

	// Raw is the text as entered, before parsing.
	Raw map[string]string `json:"raw,omitempty"`

	Features FeatureVector    `json:"features"`
	Result   PredictionResult `json:"result"`

	RequestedAt time.Time     `json:"requested_at"`
	Elapsed     time.Duration `json:"elapsed"`
}

// RawByName converts RawFields into a map keyed by wire name, dropping
// fields that were left empty.
func RawByName(raw RawFields) map[string]string {
	out := make(map[string]string, len(raw))
	for f, v := range raw {
		if v == "" || !f.Valid() {
			continue
		}
		out[f.String()] = v
	}
	return out
}
