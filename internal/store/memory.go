package store

import (
	"sort"
	"sync"
	"time"
)

const subscriberBuffer = 100

// MemoryStore is an in-memory implementation of [Store].
//
// Subscribers receive updates via buffered channels (buffer size 100). Updates
// are sent non-blocking; if a subscriber's buffer is full, the update is dropped
// for that subscriber to prevent blocking the poller.
type MemoryStore struct {
	mu          sync.RWMutex
	states      map[string]State
	definitions map[string]Definition
	subscribers map[chan State]struct{}
	subMu       sync.RWMutex

	now func() time.Time
}

// NewMemoryStore creates a new in-memory [Store] implementation.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states:      make(map[string]State),
		definitions: make(map[string]Definition),
		subscribers: make(map[chan State]struct{}),
		now:         time.Now,
	}
}

// Define registers state definitions.
func (m *MemoryStore) Define(defs ...Definition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range defs {
		m.definitions[d.Name] = d
	}
}

// Definitions returns all registered definitions, sorted by name.
func (m *MemoryStore) Definitions() []Definition {
	m.mu.RLock()
	defer m.mu.RUnlock()

	defs := make([]Definition, 0, len(m.definitions))
	for _, d := range m.definitions {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Write stores a value and notifies all subscribers.
func (m *MemoryStore) Write(name string, value any, ack bool) {
	m.write(name, value, ack)
}

func (m *MemoryStore) write(name string, value any, ack bool) State {
	state := State{Name: name, Value: value, Ack: ack, UpdatedAt: m.now()}

	m.mu.Lock()
	m.states[name] = state
	m.mu.Unlock()

	m.notifySubscribers(state)
	return state
}

// Get returns the state stored under name.
func (m *MemoryStore) Get(name string) (State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[name]
	return s, ok
}

// GetAll returns a snapshot of all stored states, sorted by name.
func (m *MemoryStore) GetAll() []State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	states := make([]State, 0, len(m.states))
	for _, s := range m.states {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i].Name < states[j].Name })
	return states
}

// Subscribe creates a new subscription and returns a channel for receiving updates.
//
// The returned channel has a buffer of 100 messages. If the buffer fills
// (slow consumer), new updates are dropped for this subscriber.
//
// Caller must call [MemoryStore.Unsubscribe] when done to prevent resource leaks.
func (m *MemoryStore) Subscribe() <-chan State {
	ch := make(chan State, subscriberBuffer)

	m.subMu.Lock()
	m.subscribers[ch] = struct{}{}
	m.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
//
// Safe to call multiple times or with an unknown channel.
func (m *MemoryStore) Unsubscribe(ch <-chan State) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for subCh := range m.subscribers {
		if subCh == ch {
			delete(m.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// notifySubscribers sends the state to all active subscribers without
// blocking; full buffers drop the update.
func (m *MemoryStore) notifySubscribers(state State) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for ch := range m.subscribers {
		select {
		case ch <- state:
		default:
			// subscriber is slow, drop the message
		}
	}
}
