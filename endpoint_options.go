package awekas

import (
	"errors"
	"time"
)

// endpointConfig holds mutable state during endpoint construction.
type endpointConfig struct {
	baseURL  string
	language string
	timeout  time.Duration
}

// EndpointOption is a function that configures an [Endpoint] during construction.
//
// Built-in options: [WithBaseURL], [WithLanguage], [WithTimeout].
type EndpointOption func(*endpointConfig) error

// WithBaseURL overrides [DefaultBaseURL], e.g. to point at a mock server.
func WithBaseURL(rawURL string) EndpointOption {
	return func(cfg *endpointConfig) error {
		if rawURL == "" {
			return errors.New("base URL cannot be empty")
		}
		cfg.baseURL = rawURL
		return nil
	}
}

// WithLanguage sets the language for requests and compass labels.
//
// Any BCP 47 tag is accepted and matched against the supported languages;
// see [ResolveRequestLanguage] and [ResolveLabelLanguage]. When unset, the
// system language from the environment is used.
func WithLanguage(lang string) EndpointOption {
	return func(cfg *endpointConfig) error {
		cfg.language = lang
		return nil
	}
}

// WithTimeout bounds each request.
//
// Returns an error if the duration is negative. Zero disables the timeout.
func WithTimeout(d time.Duration) EndpointOption {
	return func(cfg *endpointConfig) error {
		if d < 0 {
			return errors.New("timeout cannot be negative")
		}
		if d > 5*time.Minute {
			return errors.New("timeout cannot exceed 5 minutes")
		}
		cfg.timeout = d
		return nil
	}
}
