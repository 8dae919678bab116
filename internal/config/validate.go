package config

import (
	"net/url"

	"github.com/tadata-org/tadata-sdk-go/errors"
)

// Validation errors for configuration fields.
var (
	// ErrInvalidBaseURL indicates base_url is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("base_url must be an absolute http(s) URL")

	// ErrNegativeTimeout indicates timeout is below zero.
	ErrNegativeTimeout = errors.New("timeout must not be negative")

	// ErrInvalidLogFormat indicates an unrecognized log_format value.
	ErrInvalidLogFormat = errors.New(`log_format must be "text" or "json"`)
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, &FieldError{Field: "base_url", Value: cfg.BaseURL, Err: ErrInvalidBaseURL})
		}
	}

	if cfg.Timeout < 0 {
		errs = append(errs, &FieldError{Field: "timeout", Value: cfg.Timeout.String(), Err: ErrNegativeTimeout})
	}

	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, &FieldError{Field: "log_format", Value: cfg.LogFormat, Err: ErrInvalidLogFormat})
	}

	return errs
}

// FieldError represents a validation error for a specific config field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
