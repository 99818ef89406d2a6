package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidBaseURL is returned when the backend URL is not an absolute
	// http or https URL with a host.
	ErrInvalidBaseURL = errors.New("invalid API base URL: expected http(s)://host[:port]")

	// ErrInvalidTimeout is returned when the request timeout is negative.
	// Zero keeps the transport default.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidBatchSize is returned when the batch concurrency is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingFormats is returned when both --json and --markdown are given.
	ErrConflictingFormats = errors.New("conflicting output formats: --json and --markdown cannot be used together")

	// ErrInvalidLocale is returned when the display locale is not a BCP 47 tag.
	ErrInvalidLocale = errors.New("invalid locale: expected a BCP 47 tag such as en-US")

	// ErrInvalidProxy is returned when the SOCKS5 proxy is not host:port.
	ErrInvalidProxy = errors.New("invalid proxy address: expected host:port")

	// ErrInvalidLogFormat is returned for a log format other than text or json.
	ErrInvalidLogFormat = errors.New("invalid log format: expected text or json")
)
