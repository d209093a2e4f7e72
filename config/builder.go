package config

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jpalmerr/awekas"
)

// BuildEndpoint converts parsed configuration into an SDK Endpoint.
func BuildEndpoint(cfg *Config) (awekas.Endpoint, error) {
	var opts []awekas.EndpointOption

	if cfg.BaseURL != "" {
		opts = append(opts, awekas.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Language != "" {
		opts = append(opts, awekas.WithLanguage(cfg.Language))
	}
	if cfg.Timeout != 0 {
		opts = append(opts, awekas.WithTimeout(cfg.Timeout.Duration()))
	}

	return awekas.NewEndpoint(cfg.APIKey, opts...)
}

// BuildOptions converts parsed configuration into SDK options.
//
// For a Redis store it opens a client; the returned close function releases
// it and must be called once the connector has stopped. The close function
// is never nil.
func BuildOptions(cfg *Config) ([]awekas.Option, func() error, error) {
	noop := func() error { return nil }

	ep, err := BuildEndpoint(cfg)
	if err != nil {
		return nil, noop, err
	}

	opts := []awekas.Option{
		awekas.WithEndpoint(ep),
		awekas.WithRequestInterval(cfg.RequestInterval.Duration()),
		awekas.WithBackoffInterval(cfg.BackoffInterval.Duration()),
		awekas.WithPort(cfg.Port),
		awekas.WithBackoffPolicy(awekas.BackoffPolicy{
			OnHTTPStatus:      cfg.BackoffPolicy.OnHTTPStatus,
			OnUnknownAPIError: cfg.BackoffPolicy.OnUnknownAPIError,
		}),
	}

	if cfg.DisableServer {
		opts = append(opts, awekas.WithoutServer())
	}

	if cfg.Store.Type != StoreRedis {
		return opts, noop, nil
	}

	redisOpts, err := redis.ParseURL(cfg.Store.RedisURL)
	if err != nil {
		return nil, noop, fmt.Errorf("store: invalid redis_url: %w", err)
	}
	client := redis.NewClient(redisOpts)
	opts = append(opts, awekas.WithRedis(client, cfg.Store.KeyPrefix))

	return opts, client.Close, nil
}
