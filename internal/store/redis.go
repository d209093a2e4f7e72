package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces the Redis keys written by [RedisStore].
const DefaultKeyPrefix = "awekas"

const defaultRedisTimeout = 2 * time.Second

// RedisStore is a [MemoryStore] that mirrors every definition and write to
// Redis, so other processes can read the latest weather states.
//
// Keys, for prefix p:
//
//	HSET    p:objects <name> <definition JSON>
//	HSET    p:states  <name> <state JSON>
//	PUBLISH p:updates <state JSON>
//
// Reads are served from memory. Redis failures are logged and never block
// or fail a write.
type RedisStore struct {
	*MemoryStore

	client  redis.Cmdable
	prefix  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewRedisStore creates a [RedisStore]. An empty prefix uses
// [DefaultKeyPrefix].
func NewRedisStore(client redis.Cmdable, prefix string, logger *slog.Logger) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{
		MemoryStore: NewMemoryStore(),
		client:      client,
		prefix:      prefix,
		timeout:     defaultRedisTimeout,
		logger:      logger,
	}
}

// StatesKey is the hash holding the latest state of every name.
func (r *RedisStore) StatesKey() string { return r.prefix + ":states" }

// ObjectsKey is the hash holding the state definitions.
func (r *RedisStore) ObjectsKey() string { return r.prefix + ":objects" }

// UpdatesChannel is the pub/sub channel that carries every write.
func (r *RedisStore) UpdatesChannel() string { return r.prefix + ":updates" }

// Define registers definitions in memory and in a single HSET.
func (r *RedisStore) Define(defs ...Definition) {
	r.MemoryStore.Define(defs...)
	if len(defs) == 0 {
		return
	}

	fields := make([]any, 0, 2*len(defs))
	for _, d := range defs {
		payload, err := json.Marshal(d)
		if err != nil {
			r.logger.Warn("failed to encode definition", "name", d.Name, "error", err)
			continue
		}
		fields = append(fields, d.Name, string(payload))
	}
	if len(fields) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.client.HSet(ctx, r.ObjectsKey(), fields...).Err(); err != nil {
		r.logger.Warn("failed to mirror definitions to redis", "count", len(defs), "error", err)
	}
}

// Write stores the value in memory and mirrors it to Redis.
func (r *RedisStore) Write(name string, value any, ack bool) {
	state := r.MemoryStore.write(name, value, ack)
	if err := r.mirror(state); err != nil {
		r.logger.Warn("failed to mirror state to redis", "name", name, "error", err)
	}
}

func (r *RedisStore) mirror(state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.HSet(ctx, r.StatesKey(), state.Name, string(payload)).Err(); err != nil {
		return fmt.Errorf("hset: %w", err)
	}
	if err := r.client.Publish(ctx, r.UpdatesChannel(), string(payload)).Err(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
