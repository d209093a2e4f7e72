package awekas

import (
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// connectorConfig holds mutable state during Connector construction.
type connectorConfig struct {
	endpoint        *Endpoint
	requestInterval time.Duration
	intervalClamped bool
	backoffInterval time.Duration
	port            int
	serverDisabled  bool
	logger          *slog.Logger
	stateCallbacks  []func(State)
	pollCallbacks   []func(PollResult)
	policy          BackoffPolicy
	redisClient     redis.Cmdable
	redisPrefix     string
}

// BackoffPolicy widens the set of outcomes that switch to the backoff
// interval. The zero value backs off only on transport failures and on the
// quota, plus-inactive and invalid-key API errors.
type BackoffPolicy struct {
	// OnHTTPStatus backs off on non-200 responses.
	OnHTTPStatus bool

	// OnUnknownAPIError backs off on unrecognized API error codes.
	OnUnknownAPIError bool
}

// Option is a function that configures a [Connector] during construction.
//
// Built-in options: [WithEndpoint], [WithRequestInterval],
// [WithBackoffInterval], [WithPort], [WithoutServer], [WithLogger],
// [WithStateCallback], [WithPollCallback], [WithRedis], [WithBackoffPolicy].
type Option func(*connectorConfig) error

// WithEndpoint sets the station to poll. Required.
func WithEndpoint(e Endpoint) Option {
	return func(cfg *connectorConfig) error {
		cfg.endpoint = &e
		return nil
	}
}

// WithRequestInterval sets the period between requests in normal mode.
//
// Defaults to 30 seconds. Intervals below 15 seconds are raised to 15
// seconds with a warning, since the API rejects faster polling.
//
// Returns an error if the duration is zero or negative.
func WithRequestInterval(d time.Duration) Option {
	return func(cfg *connectorConfig) error {
		if d <= 0 {
			return errors.New("request interval must be positive")
		}
		cfg.requestInterval, cfg.intervalClamped = clampRequestInterval(d)
		return nil
	}
}

// WithBackoffInterval sets the period between requests after a transport
// failure or fatal API error. Defaults to 5 minutes.
//
// Returns an error if the duration is zero or negative.
func WithBackoffInterval(d time.Duration) Option {
	return func(cfg *connectorConfig) error {
		if d <= 0 {
			return errors.New("backoff interval must be positive")
		}
		cfg.backoffInterval = d
		return nil
	}
}

// WithPort sets the HTTP port for the state API. Defaults to 8080.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *connectorConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithoutServer disables the HTTP API. States remain available through
// [Connector.States] and the callbacks.
func WithoutServer() Option {
	return func(cfg *connectorConfig) error {
		cfg.serverDisabled = true
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified, [slog.Default]
// is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *connectorConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithStateCallback registers a function called after every state write.
//
// Callbacks run synchronously on the polling goroutine, in registration
// order, and must not block. Panics are recovered and logged.
// Nil callbacks are silently ignored.
func WithStateCallback(cb func(State)) Option {
	return func(cfg *connectorConfig) error {
		if cb == nil {
			return nil
		}
		cfg.stateCallbacks = append(cfg.stateCallbacks, cb)
		return nil
	}
}

// WithPollCallback registers a function called after every poll, including
// polls made with [Connector.PollOnce].
//
// Callbacks must not block. Panics are recovered and logged.
// Nil callbacks are silently ignored.
func WithPollCallback(cb func(PollResult)) Option {
	return func(cfg *connectorConfig) error {
		if cb == nil {
			return nil
		}
		cfg.pollCallbacks = append(cfg.pollCallbacks, cb)
		return nil
	}
}

// WithRedis mirrors every state definition and value to Redis under prefix
// (default "awekas"). The connector does not close the client.
//
// Returns an error if the client is nil.
func WithRedis(client redis.Cmdable, prefix string) Option {
	return func(cfg *connectorConfig) error {
		if client == nil {
			return errors.New("redis client cannot be nil")
		}
		cfg.redisClient = client
		cfg.redisPrefix = prefix
		return nil
	}
}

// WithBackoffPolicy widens the outcomes that trigger backoff.
func WithBackoffPolicy(p BackoffPolicy) Option {
	return func(cfg *connectorConfig) error {
		cfg.policy = p
		return nil
	}
}
