package config

import (
	"fmt"
	"time"
)

// APISection configures the prediction backend.
type APISection struct {
	// BaseURL is the scheme and host of the backend.
	BaseURL string `yaml:"base_url,omitempty"`

	// PredictPath overrides the prediction route.
	PredictPath string `yaml:"predict_path,omitempty"`

	// Timeout is a Go duration string such as "30s".
	Timeout string `yaml:"timeout,omitempty"`

	// Proxy is a SOCKS5 proxy address (host:port).
	Proxy string `yaml:"proxy,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent,omitempty"`

	// Headers are added to every request. Entries here are merged with
	// headers already present in the Config.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// DisplaySection configures how prices are shown.
type DisplaySection struct {
	Locale         string `yaml:"locale,omitempty"`
	CurrencySymbol string `yaml:"currency_symbol,omitempty"`
}

// BatchSection configures batch submission.
type BatchSection struct {
	Concurrency int `yaml:"concurrency,omitempty"`
}

// StorageSection configures the profile database location.
type StorageSection struct {
	DataDir string `yaml:"data_dir,omitempty"`
}

// LogSection configures diagnostic output.
type LogSection struct {
	Format  string `yaml:"format,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// File represents the structure of the .housepred configuration file.
// Every field is optional; unset fields keep the value already in Config.
type File struct {
	API     APISection     `yaml:"api,omitempty"`
	Display DisplaySection `yaml:"display,omitempty"`
	Batch   BatchSection   `yaml:"batch,omitempty"`
	Storage StorageSection `yaml:"storage,omitempty"`
	Log     LogSection     `yaml:"log,omitempty"`
}

// Apply copies the values set in the file onto cfg.
func (f *File) Apply(cfg *Config) error {
	if f.API.BaseURL != "" {
		cfg.APIBaseURL = f.API.BaseURL
	}
	if f.API.PredictPath != "" {
		cfg.PredictPath = f.API.PredictPath
	}
	if f.API.Timeout != "" {
		d, err := time.ParseDuration(f.API.Timeout)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, f.API.Timeout)
		}
		cfg.Timeout = d
	}
	if f.API.Proxy != "" {
		cfg.Proxy = f.API.Proxy
	}
	if f.API.UserAgent != "" {
		cfg.UserAgent = f.API.UserAgent
	}
	if len(f.API.Headers) > 0 {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string, len(f.API.Headers))
		}
		for k, v := range f.API.Headers {
			cfg.Headers[k] = v
		}
	}

	if f.Display.Locale != "" {
		cfg.Locale = f.Display.Locale
	}
	if f.Display.CurrencySymbol != "" {
		cfg.CurrencySymbol = f.Display.CurrencySymbol
	}

	if f.Batch.Concurrency != 0 {
		cfg.BatchSize = f.Batch.Concurrency
	}

	if f.Storage.DataDir != "" {
		cfg.DataDir = f.Storage.DataDir
	}

	if f.Log.Format != "" {
		cfg.LogFormat = f.Log.Format
	}
	if f.Log.Verbose {
		cfg.Verbose = true
	}

	return nil
}
