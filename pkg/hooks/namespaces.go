package hooks

import "sync"

// valueState adapts an arbitrary value into HookState so namespaces that
// just need "store this once, dispose it on teardown" don't need their
// own wrapper type per call site.
type valueState[T any] struct {
	BaseState
	value   T
	cleanup func()
}

func (v *valueState[T]) Dispose() {
	if v.cleanup != nil {
		v.cleanup()
	}
}

// Init runs fn exactly once for the current component instance and
// returns the same value, by identity, on every subsequent render. This
// is the explicit-builder stand-in for the original runtime's AST
// rewriting of `with init():` blocks: Go closures already capture their
// local variables by reference, so no source transform is needed, only
// a place to remember "has this already run."
func Init[T any](fn func() T) T {
	hc := forCurrentOwner()
	state := Use[*valueState[T]](hc, "pulse:init", IdentityCallsite, "", func() *valueState[T] {
		return &valueState[T]{value: fn()}
	})
	return state.value
}

// InitKeyed is Init with an explicit key, for use inside loops or
// conditionals where callsite identity alone isn't stable.
func InitKeyed[T any](key string, fn func() T) T {
	hc := forCurrentOwner()
	state := Use[*valueState[T]](hc, "pulse:init", IdentityKey, key, func() *valueState[T] {
		return &valueState[T]{value: fn()}
	})
	return state.value
}

// Setup runs fn once per render cycle in which key is first seen (or
// first seen again after having been absent), disposing the previous
// run's cleanup, if any, when key changes or the component unmounts.
// Unlike Init, Setup legitimately reruns when its key changes - it's
// meant for imperative one-shot work keyed by something that can vary
// across the component's lifetime (e.g. a subscription topic).
func Setup(key string, fn func() func()) {
	hc := forCurrentOwner()
	Use[*valueState[struct{}]](hc, "pulse:setup", IdentityKey, key, func() *valueState[struct{}] {
		return &valueState[struct{}]{cleanup: fn()}
	})
}

// stateBox holds a State hook's current value behind a mutex; State
// hooks are plain mutable storage, not reactive signals - reads and
// writes don't participate in dependency tracking. Use a Signal via
// reactive.NewSignal for reactive component state instead.
type stateBox[T any] struct {
	BaseState
	mu    sync.Mutex
	value T
}

func (s *stateBox[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func (s *stateBox[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
}

// State returns cached, render-stable mutable storage for the current
// component, created with initial on first render. Calling State twice
// at the same callsite in one render without distinct keys is an error,
// matching the "no key, no loop" assumption IdentityCallsite relies on.
func State[T any](initial T) *stateBox[T] {
	hc := forCurrentOwner()
	return Use[*stateBox[T]](hc, "pulse:state", IdentityCallsite, "", func() *stateBox[T] {
		return &stateBox[T]{value: initial}
	})
}

// StateKeyed is State with an explicit key.
func StateKeyed[T any](key string, initial T) *stateBox[T] {
	hc := forCurrentOwner()
	return Use[*stateBox[T]](hc, "pulse:state", IdentityKey, key, func() *stateBox[T] {
		return &stateBox[T]{value: initial}
	})
}

// effectsState owns the disposers for one key's set of effects.
type effectsState struct {
	BaseState
	disposers []func()
}

func (e *effectsState) Dispose() {
	for _, d := range e.disposers {
		if d != nil {
			d()
		}
	}
}

// Effects installs a set of cleanup-bearing effects under key, running
// install on first render that sees key and disposing the previous set
// (calling each returned cleanup) when key changes or the component
// unmounts. install is called synchronously, once, not on every render -
// for per-render reactive effects use reactive.CreateEffect directly.
func Effects(key string, install func() []func()) {
	hc := forCurrentOwner()
	Use[*effectsState](hc, "pulse:effects", IdentityKey, key, func() *effectsState {
		return &effectsState{disposers: install()}
	})
}

// ElementRef is a server-side handle to a client DOM element, threaded
// through VDOM props as {"__pulse_ref__": {"channelId": ..., "refId": ...}}
// so the client runtime can bind the live element to it. Commands are
// dispatched to the client over the owning render session's channel;
// the session is responsible for correlating the response, if any.
type ElementRef struct {
	BaseState
	ChannelID string
	RefID     string

	mu      sync.Mutex
	dispatch func(command string, args map[string]any)
}

// Bind attaches the session-level dispatch function used to send ref
// commands to the client. Called by the render session once it knows
// which channel the owning component is rendered into.
func (r *ElementRef) Bind(dispatch func(command string, args map[string]any)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatch = dispatch
}

func (r *ElementRef) send(command string, args map[string]any) {
	r.mu.Lock()
	dispatch := r.dispatch
	r.mu.Unlock()
	if dispatch != nil {
		dispatch(command, args)
	}
}

func (r *ElementRef) Focus()          { r.send("focus", nil) }
func (r *ElementRef) Blur()           { r.send("blur", nil) }
func (r *ElementRef) Click()          { r.send("click", nil) }
func (r *ElementRef) ScrollIntoView() { r.send("scrollIntoView", nil) }
func (r *ElementRef) Measure()        { r.send("measure", nil) }
func (r *ElementRef) SelectText()     { r.send("selectText", nil) }

func (r *ElementRef) PropValue() map[string]any {
	return map[string]any{
		"__pulse_ref__": map[string]any{
			"channelId": r.ChannelID,
			"refId":     r.RefID,
		},
	}
}

var refCounter int64
var refCounterMu sync.Mutex

func nextRefID() string {
	refCounterMu.Lock()
	defer refCounterMu.Unlock()
	refCounter++
	return itoa(refCounter)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Ref creates (or returns, on a later render) a stable ElementRef for the
// current component, scoped to channelID (the render session's channel).
func Ref(channelID string) *ElementRef {
	hc := forCurrentOwner()
	return Use[*ElementRef](hc, "pulse:ref", IdentityCallsite, "", func() *ElementRef {
		return &ElementRef{ChannelID: channelID, RefID: nextRefID()}
	})
}

// RefKeyed is Ref with an explicit key.
func RefKeyed(channelID, key string) *ElementRef {
	hc := forCurrentOwner()
	return Use[*ElementRef](hc, "pulse:ref", IdentityKey, key, func() *ElementRef {
		return &ElementRef{ChannelID: channelID, RefID: nextRefID()}
	})
}
