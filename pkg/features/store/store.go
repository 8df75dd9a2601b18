// Package store provides session-scoped and global signal storage.
//
// Deprecated: Use reactive.NewSharedSignal and reactive.NewGlobalSignal instead.
// This package is retained for backward compatibility.
//
// Migration:
//
//	// Old:
//	import "github.com/pulseframework/pulse/pkg/features/store"
//	var Cart = store.NewSharedSignal([]Item{})
//
//	// New:
//	import "github.com/pulseframework/pulse/pkg/reactive"
//	var Cart = reactive.NewSharedSignal([]Item{})
package store

import (
	"sync"
	"sync/atomic"

	"github.com/pulseframework/pulse/pkg/reactive"
)

// SessionKey is the context key for the session store.
//
// Deprecated: Use reactive.SessionSignalStoreKey instead.
var SessionKey = &struct{ name string }{"SessionStore"}

// SessionStore holds session-scoped signals.
// It implements reactive.SessionSignalStore for compatibility with the pulse package.
type SessionStore struct {
	signals sync.Map // map[uint64]any
}

// NewSessionStore creates a new session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// GetOrCreateSignal implements reactive.SessionSignalStore.
// This allows SessionStore to be used with reactive.NewSharedSignal.
func (s *SessionStore) GetOrCreateSignal(id uint64, createFn func() any) any {
	// Try to load existing
	if val, ok := s.signals.Load(id); ok {
		return val
	}

	// Create new and try to store
	newVal := createFn()
	actual, _ := s.signals.LoadOrStore(id, newVal)
	return actual
}

// NewGlobalSignal creates a signal shared across all sessions.
//
// Deprecated: Use reactive.NewGlobalSignal instead.
//
//	// Old:
//	var Status = store.NewGlobalSignal("online")
//
//	// New:
//	var Status = reactive.NewGlobalSignal("online")
func NewGlobalSignal[T any](initial T) *Global[T] {
	return &Global[T]{
		Signal: reactive.NewSignal(initial),
	}
}

// Global wraps a reactive.Signal for global state.
//
// Deprecated: Use reactive.GlobalSignal instead.
type Global[T any] struct {
	*reactive.Signal[T]
}

// NewSharedSignal creates a definition for a session-scoped signal.
// Accessing it will look up or create the signal in the current session context.
//
// Deprecated: Use reactive.NewSharedSignal instead.
//
//	// Old:
//	var Cart = store.NewSharedSignal([]Item{})
//
//	// New:
//	var Cart = reactive.NewSharedSignal([]Item{})
func NewSharedSignal[T any](initial T) *Shared[T] {
	return &Shared[T]{
		id:      nextID(),
		initial: initial,
	}
}

// Shared represents a session-scoped signal definition.
//
// Deprecated: Use reactive.SharedSignalDef instead.
type Shared[T any] struct {
	id      uint64
	initial T
}

var idCounter uint64

func nextID() uint64 {
	return atomic.AddUint64(&idCounter, 1)
}

// Get retrieves the current value of the signal for the current session.
// It subscribes the current listener if active.
func (s *Shared[T]) Get() T {
	sig := s.getSignal()
	if sig == nil {
		// Fallback to initial if no session context (e.g. testing without setup)
		return s.initial
	}
	return sig.Get()
}

// Set updates the value of the signal for the current session.
func (s *Shared[T]) Set(val T) {
	sig := s.getSignal()
	if sig != nil {
		sig.Set(val)
	}
}

// Update updates the value using a transformer function.
func (s *Shared[T]) Update(fn func(T) T) {
	sig := s.getSignal()
	if sig != nil {
		val := sig.Peek()
		sig.Set(fn(val))
	}
}

// getSignal retrieves or creates the underlying reactive.Signal for the current session.
func (s *Shared[T]) getSignal() *reactive.Signal[T] {
	// Try store.SessionKey first (legacy), then reactive.SessionSignalStoreKey
	ctxVal := reactive.GetContext(SessionKey)
	if ctxVal == nil {
		ctxVal = reactive.GetContext(reactive.SessionSignalStoreKey)
	}
	if ctxVal == nil {
		return nil
	}

	// Support both SessionStore and reactive.SessionSignalStore interfaces
	var store reactive.SessionSignalStore
	switch v := ctxVal.(type) {
	case *SessionStore:
		store = v
	case reactive.SessionSignalStore:
		store = v
	default:
		return nil
	}

	createFn := func() any {
		return reactive.NewSignal(s.initial)
	}

	sigVal := store.GetOrCreateSignal(s.id, createFn)
	if sigVal == nil {
		return nil
	}
	return sigVal.(*reactive.Signal[T])
}
