package awekas

import (
	"log/slog"

	"github.com/jpalmerr/awekas/internal/store"
)

// stateSink writes mapped values to the store, then hands them to the state
// callbacks.
type stateSink struct {
	store     store.Store
	callbacks []func(State)
	logger    *slog.Logger
}

func (s *stateSink) Write(name string, value any, ack bool) {
	s.store.Write(name, value, ack)

	if len(s.callbacks) == 0 {
		return
	}
	st, ok := s.store.Get(name)
	if !ok {
		return
	}
	update := fromStoreState(st)
	for _, cb := range s.callbacks {
		invokeCallbackSafe(cb, update, s.logger, "state", name)
	}
}

func fromStoreState(st store.State) State {
	return State{Name: st.Name, Value: st.Value, Ack: st.Ack, UpdatedAt: st.UpdatedAt}
}

// invokeCallbackSafe calls a callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe[T any](cb func(T), v T, logger *slog.Logger, attrs ...any) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("callback panicked", append([]any{"panic", r}, attrs...)...)
		}
	}()
	cb(v)
}
