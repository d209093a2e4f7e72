// Package config provides YAML configuration parsing for the AWEKAS
// connector.
//
// This package enables running the connector as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	api_key: ${AWEKAS_API_KEY}
//	language: de
//	request_interval: 30s
//	backoff_interval: 5m
//	port: 8080
//
//	backoff_policy:
//	  on_http_status: true
//
//	store:
//	  type: redis
//	  redis_url: ${REDIS_URL:-redis://localhost:6379/0}
//	  key_prefix: weather
package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// minRequestInterval is the shortest interval the API tolerates.
const minRequestInterval = 15 * time.Second

const (
	defaultPort            = 8080
	defaultRequestInterval = 30 * time.Second
	defaultBackoffInterval = 5 * time.Minute
	maxTimeout             = 5 * time.Minute
)

// Store types.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the root configuration structure for the connector.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// APIKey identifies the station. May be empty; the connector then logs
	// an error on every poll until a key is provided.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	APIKey string `yaml:"api_key"`

	// Language is a BCP 47 tag for requests and compass labels.
	// Empty uses the system language.
	Language string `yaml:"language"`

	// BaseURL overrides the AWEKAS API URL, e.g. to point at a mock.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each request. Zero means no timeout.
	Timeout Duration `yaml:"timeout"`

	// RequestInterval is the time between polls. Defaults to 30s, minimum 15s.
	RequestInterval Duration `yaml:"request_interval"`

	// BackoffInterval is the time between polls after a transport failure
	// or fatal API error. Defaults to 5m.
	BackoffInterval Duration `yaml:"backoff_interval"`

	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// DisableServer turns off the HTTP API.
	DisableServer bool `yaml:"disable_server"`

	// BackoffPolicy widens the outcomes that trigger backoff.
	BackoffPolicy BackoffPolicyConfig `yaml:"backoff_policy"`

	// Store selects where states are kept.
	Store StoreConfig `yaml:"store"`
}

// BackoffPolicyConfig mirrors awekas.BackoffPolicy.
type BackoffPolicyConfig struct {
	OnHTTPStatus      bool `yaml:"on_http_status"`
	OnUnknownAPIError bool `yaml:"on_unknown_api_error"`
}

// StoreConfig selects the state store.
type StoreConfig struct {
	// Type is "memory" (default) or "redis".
	Type string `yaml:"type"`

	// RedisURL is a redis:// or rediss:// URL. Required for type redis.
	RedisURL string `yaml:"redis_url"`

	// KeyPrefix namespaces the Redis keys. Defaults to "awekas".
	KeyPrefix string `yaml:"key_prefix"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in api_key, language, base_url and
// store.redis_url. Defaults are applied for Port (8080), RequestInterval
// (30s), BackoffInterval (5m) and Store.Type (memory).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.RequestInterval == 0 {
		cfg.RequestInterval = Duration(defaultRequestInterval)
	}
	if cfg.BackoffInterval == 0 {
		cfg.BackoffInterval = Duration(defaultBackoffInterval)
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = StoreMemory
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	for _, field := range []struct {
		name  string
		value *string
	}{
		{"api_key", &c.APIKey},
		{"language", &c.Language},
		{"base_url", &c.BaseURL},
		{"store.redis_url", &c.Store.RedisURL},
	} {
		expanded, err := expandEnvVars(*field.value)
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.value = strings.TrimSpace(expanded)
	}

	if c.BaseURL != "" {
		parsedURL, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("base_url: invalid url: %w", err)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("base_url: scheme must be http or https, got %q", parsedURL.Scheme)
		}
		if parsedURL.RawQuery != "" {
			return fmt.Errorf("base_url: must not contain a query")
		}
	}

	if c.Timeout.Duration() < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", c.Timeout.Duration())
	}
	if c.Timeout.Duration() > maxTimeout {
		return fmt.Errorf("timeout must not exceed %s, got %s", maxTimeout, c.Timeout.Duration())
	}

	if c.RequestInterval.Duration() < minRequestInterval {
		return fmt.Errorf("request_interval must be at least %s, got %s", minRequestInterval, c.RequestInterval.Duration())
	}
	if c.BackoffInterval.Duration() <= 0 {
		return fmt.Errorf("backoff_interval must be positive, got %s", c.BackoffInterval.Duration())
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	switch c.Store.Type {
	case StoreMemory:
	case StoreRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store: redis_url is required for type %q", StoreRedis)
		}
	default:
		return fmt.Errorf("store: unknown type %q (expected %q or %q)", c.Store.Type, StoreMemory, StoreRedis)
	}

	return nil
}
