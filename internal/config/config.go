// Package config loads SDK transport configuration from environment
// variables and an optional .env file, using viper.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings of an SDK talking to the evaluation backend.
// Configuration priority: environment variables > .env file > defaults.
type Config struct {
	BaseURL       string        // Evaluation backend base URL
	EnvSecret     string        // Environment secret sent in the Authorization header
	Timeout       time.Duration // Per-request timeout
	RetryCount    int           // Extra attempts on transport errors and 5xx responses
	RetryWait     time.Duration // Initial wait between attempts
	VariationPath string        // Path of the single-flag endpoint
	AllFlagsPath  string        // Path of the all-flags endpoint
	LogLevel      string        // zerolog level name

	explicit map[string]bool // keys set by the environment or .env, not by defaults
}

// Configuration keys.
const (
	KeyBaseURL       = "FFC_BASE_URL"
	KeyEnvSecret     = "FFC_ENV_SECRET"
	KeyTimeout       = "FFC_TIMEOUT"
	KeyRetryCount    = "FFC_RETRY_COUNT"
	KeyRetryWait     = "FFC_RETRY_WAIT"
	KeyVariationPath = "FFC_VARIATION_PATH"
	KeyAllFlagsPath  = "FFC_ALL_FLAGS_PATH"
	KeyLogLevel      = "FFC_LOG_LEVEL"
)

var keys = []string{
	KeyBaseURL, KeyEnvSecret, KeyTimeout, KeyRetryCount,
	KeyRetryWait, KeyVariationPath, KeyAllFlagsPath, KeyLogLevel,
}

const (
	DefaultBaseURL       = "http://localhost:8080"
	DefaultVariationPath = "/api/public/sdk/variation"
	DefaultAllFlagsPath  = "/api/public/sdk/variations"
)

// Load reads configuration from environment variables and .env file (if present).
// It does not validate; call Validate before using the result.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // .env is optional
	v.AutomaticEnv()

	explicit := make(map[string]bool)
	for _, key := range keys {
		if v.IsSet(key) {
			explicit[key] = true
		}
	}

	setConfigDefaults(v)

	return &Config{
		BaseURL:       v.GetString(KeyBaseURL),
		EnvSecret:     v.GetString(KeyEnvSecret),
		Timeout:       v.GetDuration(KeyTimeout),
		RetryCount:    v.GetInt(KeyRetryCount),
		RetryWait:     v.GetDuration(KeyRetryWait),
		VariationPath: v.GetString(KeyVariationPath),
		AllFlagsPath:  v.GetString(KeyAllFlagsPath),
		LogLevel:      v.GetString(KeyLogLevel),
		explicit:      explicit,
	}, nil
}

// IsExplicit reports whether key came from the environment or the .env file
// rather than from a default.
func (c *Config) IsExplicit(key string) bool {
	return c.explicit[key]
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyEnvSecret, "")
	v.SetDefault(KeyTimeout, "10s")
	v.SetDefault(KeyRetryCount, 2)
	v.SetDefault(KeyRetryWait, "100ms")
	v.SetDefault(KeyVariationPath, DefaultVariationPath)
	v.SetDefault(KeyAllFlagsPath, DefaultAllFlagsPath)
	v.SetDefault(KeyLogLevel, "info")
}

// ValidationError represents a configuration validation error with details about what failed.
type ValidationError struct {
	Field   string // Name of the configuration field
	Message string // Human-readable error message
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed [%s]: %s", e.Field, e.Message)
}

// Validate checks that the configuration can drive a transport.
//
// Validation Rules:
//  1. BaseURL must be an absolute http(s) URL
//  2. EnvSecret must be non-empty
//  3. Timeout must be positive
//  4. RetryCount must not be negative
//  5. VariationPath and AllFlagsPath must be non-empty
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ValidationError{
			Field:   "FFC_BASE_URL",
			Message: fmt.Sprintf("must be an absolute http(s) URL, got '%s'", c.BaseURL),
		}
	}

	if c.EnvSecret == "" {
		return ValidationError{
			Field:   "FFC_ENV_SECRET",
			Message: "environment secret cannot be empty",
		}
	}

	if c.Timeout <= 0 {
		return ValidationError{
			Field:   "FFC_TIMEOUT",
			Message: fmt.Sprintf("must be positive, got %s", c.Timeout),
		}
	}

	if c.RetryCount < 0 {
		return ValidationError{
			Field:   "FFC_RETRY_COUNT",
			Message: fmt.Sprintf("cannot be negative, got %d", c.RetryCount),
		}
	}

	if c.VariationPath == "" {
		return ValidationError{Field: "FFC_VARIATION_PATH", Message: "path cannot be empty"}
	}
	if c.AllFlagsPath == "" {
		return ValidationError{Field: "FFC_ALL_FLAGS_PATH", Message: "path cannot be empty"}
	}

	return nil
}
