package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Environment variables that override the configuration file.
const (
	EnvAPIBaseURL = "HOUSEPRED_API_URL"
	EnvTimeout    = "HOUSEPRED_TIMEOUT"
	EnvProxy      = "HOUSEPRED_PROXY"
	EnvLocale     = "HOUSEPRED_LOCALE"
	EnvCurrency   = "HOUSEPRED_CURRENCY_SYMBOL"
	EnvBatchSize  = "HOUSEPRED_BATCH_SIZE"
	EnvDataDir    = "HOUSEPRED_DATA_DIR"
)

// ApplyEnv overrides cfg with the HOUSEPRED_* variables that lookup finds.
// Blank values are ignored. lookup is normally os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvAPIBaseURL); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := get(EnvTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidTimeout, EnvTimeout, v)
		}
		cfg.Timeout = d
	}
	if v, ok := get(EnvProxy); ok {
		cfg.Proxy = v
	}
	if v, ok := get(EnvLocale); ok {
		cfg.Locale = v
	}
	if v, ok := get(EnvCurrency); ok {
		cfg.CurrencySymbol = v
	}
	if v, ok := get(EnvBatchSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidBatchSize, EnvBatchSize, v)
		}
		cfg.BatchSize = n
	}
	if v, ok := get(EnvDataDir); ok {
		cfg.DataDir = v
	}
	return nil
}
