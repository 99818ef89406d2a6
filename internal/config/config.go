package config

import (
	"net"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "housepred"

	// DefaultAPIBaseURL is where the Flask prediction backend listens
	// when started locally.
	DefaultAPIBaseURL = "http://localhost:5000"

	// DefaultPredictPath is the backend route that scores a feature vector.
	DefaultPredictPath = "/predict"

	// DefaultLocale controls digit grouping of displayed prices.
	DefaultLocale = "en-US"

	// DefaultCurrencySymbol is prefixed to displayed prices.
	DefaultCurrencySymbol = "$"

	// DefaultBatchSize is the number of prediction requests in flight
	// when a batch file is submitted.
	DefaultBatchSize = 4

	// DefaultUserAgent identifies housepred in backend access logs.
	DefaultUserAgent = "housepred/1.0"

	// LogFormatText and LogFormatJSON are the accepted log formats.
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all configuration options for housepred. It is populated
// from defaults, the configuration file and CLI flags, then passed to the
// commands explicitly.
type Config struct {
	// APIBaseURL is the scheme and host of the prediction backend.
	APIBaseURL string

	// PredictPath is appended to APIBaseURL for prediction requests.
	PredictPath string

	// Timeout bounds a single prediction request. Zero means no timeout
	// beyond the transport defaults.
	Timeout time.Duration

	// Proxy is an optional SOCKS5 proxy ("host:port") for backend requests.
	Proxy string

	// Headers are extra HTTP headers sent with every backend request.
	Headers map[string]string

	// UserAgent is the User-Agent header sent to the backend.
	UserAgent string

	// Locale selects digit grouping for displayed prices.
	Locale string

	// CurrencySymbol is prefixed to displayed prices.
	CurrencySymbol string

	// BatchSize is the number of concurrent requests for batch files.
	BatchSize int

	// DataDir is where the profile database is stored.
	// Defaults to the XDG data directory (~/.local/share/housepred on Linux).
	DataDir string

	// Verbose enables debug logging.
	Verbose bool

	// LogFormat is LogFormatText or LogFormatJSON.
	LogFormat string

	// ConfigFilePath is an explicit configuration file. When empty,
	// .housepred is looked up in the current and home directories.
	ConfigFilePath string

	// JSONOutput and MarkdownOutput select the output format.
	// Plain text is used when neither is set.
	JSONOutput     bool
	MarkdownOutput bool

	// OutputFile receives command output instead of stdout when set.
	OutputFile string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		APIBaseURL:     DefaultAPIBaseURL,
		PredictPath:    DefaultPredictPath,
		UserAgent:      DefaultUserAgent,
		Locale:         DefaultLocale,
		CurrencySymbol: DefaultCurrencySymbol,
		BatchSize:      DefaultBatchSize,
		DataDir:        XDGDataDir(),
		LogFormat:      LogFormatText,
	}
}

// XDGDataDir returns the XDG data directory for housepred.
// On Linux: ~/.local/share/housepred
// On macOS: ~/Library/Application Support/housepred
// On Windows: %LOCALAPPDATA%\housepred
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for housepred.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONOutput && c.MarkdownOutput {
		return ErrConflictingFormats
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return ErrInvalidLocale
	}

	if c.Proxy != "" {
		if host, port, err := net.SplitHostPort(c.Proxy); err != nil || host == "" || port == "" {
			return ErrInvalidProxy
		}
	}

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return ErrInvalidLogFormat
	}

	return nil
}
