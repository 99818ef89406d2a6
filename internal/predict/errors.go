package predict

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnreachable is matched (via errors.Is) by errors returned when
	// the prediction service did not respond at all.
	ErrBackendUnreachable = errors.New("prediction backend unreachable")

	// ErrMalformedResponse is returned when the service responded but the body
	// carried neither a usable prediction nor an error message.
	ErrMalformedResponse = errors.New("malformed prediction response")

	// ErrInvalidBaseURL is returned by NewClient when the base URL is not an
	// absolute http or https URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: expected http(s)://host[:port]")

	// ErrInvalidProxy is returned by NewClient when the SOCKS5 proxy address
	// cannot be used.
	ErrInvalidProxy = errors.New("invalid proxy address: expected host:port")

	// ErrInvalidLocale is returned by NewFormatter for an unparseable locale.
	ErrInvalidLocale = errors.New("invalid locale")
)

// UnreachableError reports that no response was received from the backend.
type UnreachableError struct {
	// BaseURL is the backend address that was tried.
	BaseURL string

	// Err is the underlying transport error.
	Err error
}

// Error implements error.
func (e *UnreachableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Hint(), e.Err)
}

// Hint returns the message shown to the user, without transport details.
func (e *UnreachableError) Hint() string {
	return fmt.Sprintf("failed to get prediction: make sure the backend is running at %s", e.BaseURL)
}

// Unwrap returns the underlying transport error.
func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBackendUnreachable) succeed.
func (e *UnreachableError) Is(target error) bool {
	return target == ErrBackendUnreachable
}

// ServiceError is a failure reported by the prediction service itself,
// either through an "error" field in the body or a non-2xx status.
type ServiceError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the text from the "error" field, or a status description
	// when the body had none.
	Message string
}

// Error implements error.
func (e *ServiceError) Error() string {
	return e.Message
}
