package store

import "time"

// State is the stored value of a named state.
//
// State is the storage representation, optimized for JSON serialization
// (used by the REST API, SSE and the Redis mirror).
type State struct {
	// Name is the state identifier, e.g. "current_temperature".
	Name string `json:"name"`

	// Value is a float64, bool, string or nil.
	Value any `json:"value"`

	// Ack marks the value as confirmed by the data source.
	Ack bool `json:"ack"`

	// UpdatedAt is the time of the last write.
	UpdatedAt time.Time `json:"updated_at"`
}

// Definition describes a state before any value is written to it.
type Definition struct {
	Name string `json:"name"`

	// Type is "number", "string" or "boolean".
	Type string `json:"type"`

	// Role classifies the state for consumers; every weather value is "value".
	Role string `json:"role"`

	// Unit is empty for unitless states.
	Unit string `json:"unit,omitempty"`
}

// Store defines the interface for storing and subscribing to state updates.
//
// Store implementations must be safe for concurrent access. The pub/sub
// mechanism allows real-time updates to be pushed to connected clients
// (e.g., via Server-Sent Events).
type Store interface {
	// Define registers state definitions. Redefining a name replaces it.
	Define(defs ...Definition)

	// Definitions returns all registered definitions, sorted by name.
	Definitions() []Definition

	// Write stores a value and notifies all subscribers.
	// Values are keyed by name, so subsequent writes replace previous values.
	Write(name string, value any, ack bool)

	// Get returns the state stored under name.
	Get(name string) (State, bool)

	// GetAll returns all stored states, sorted by name.
	// The returned slice is a snapshot; modifications do not affect the store.
	GetAll() []State

	// Subscribe returns a channel that receives state updates.
	// The returned channel has a buffer; slow consumers may miss updates.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan State

	// Unsubscribe removes a subscription and closes the channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan State)
}
