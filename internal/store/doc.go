// Package store holds the latest value of every weather state.
//
// The main components are:
//
//   - [Store]: Interface defining storage and subscription operations
//   - [MemoryStore]: In-memory implementation of Store with pub/sub
//   - [RedisStore]: MemoryStore that mirrors definitions and values to Redis
//   - [State] and [Definition]: Storage representations of a state
//
// Subscribers receive updates via channels with non-blocking sends (slow
// subscribers will miss updates rather than block the poller).
package store
