// Package hooks implements the per-component hook runtime: stable identity
// for values that must survive across renders of the same component
// instance, keyed either by an explicit caller-supplied key or by the
// position of the call within the render (its "callsite").
//
// This generalizes the slot mechanism already used by the reactive engine
// (reactive.UseHookSlot/SetHookSlot) into namespaced storage so unrelated
// hook kinds (state, effects, one-time init, refs) don't share a single
// flat slot array and so identity can be resolved explicitly by key when
// positional identity isn't stable (conditional hooks, loops).
package hooks

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/pulseframework/pulse/pkg/reactive"
)

// HookError is raised for misuse of the hook runtime: calling a hook
// outside of render, or calling a key-required hook twice in one render
// without a key.
type HookError struct {
	msg string
}

func (e *HookError) Error() string { return e.msg }

func newHookError(format string, args ...any) *HookError {
	return &HookError{msg: "hooks: " + fmt.Sprintf(format, args...)}
}

// HookState is the interface hook-held values implement to participate in
// the render lifecycle. Dispose is called once, when the owning component
// is unmounted or when the hook's identity is no longer called (its key
// changed or it was skipped entirely for one render and never recalled).
type HookState interface {
	// OnRenderStart is called before the render that will (or won't) call
	// this hook again, with the 1-based render cycle number.
	OnRenderStart(renderCycle int)

	// OnRenderEnd is called after that render has finished.
	OnRenderEnd(renderCycle int)

	// Dispose releases any resources held by the hook state.
	Dispose()
}

// BaseState is a no-op HookState embeddable by custom hook state types
// that only need to override the methods they care about.
type BaseState struct{}

func (BaseState) OnRenderStart(int) {}
func (BaseState) OnRenderEnd(int)   {}
func (BaseState) Dispose()          {}

// IdentityMode controls how a hook call resolves its identity when the
// caller passes no explicit key.
type IdentityMode int

const (
	// IdentityKey requires an explicit key on every call after the first;
	// calling it twice in the same render without a key is an error.
	IdentityKey IdentityMode = iota

	// IdentityCallsite resolves identity from the call's position within
	// the render (the Go analogue of Python's frame-walking identity),
	// using the owner's per-render hook-slot counter.
	IdentityCallsite
)

type identityTag int

const (
	tagKey identityTag = iota
	tagCallsite
	tagDefault
)

// Identity is the resolved key under which a hook's state is stored for
// one component instance. Two calls with equal Identity values in the
// same HookContext resolve to the same HookState.
type Identity struct {
	tag identityTag
	key any
}

var defaultIdentity = Identity{tag: tagDefault}

func resolveIdentity(mode IdentityMode, explicitKey any, slot int) Identity {
	if explicitKey != nil {
		return Identity{tag: tagKey, key: explicitKey}
	}
	if mode == IdentityCallsite {
		return Identity{tag: tagCallsite, key: slot}
	}
	return defaultIdentity
}

// namespace is the type-erased storage for one hook kind's states, keyed
// by resolved Identity.
type namespace struct {
	mu      sync.Mutex
	mode    IdentityMode
	states  map[Identity]HookState
	seenGen map[Identity]int // last render cycle this identity was touched
	slotCtr int
}

func newNamespace(mode IdentityMode) *namespace {
	return &namespace{
		mode:    mode,
		states:  make(map[Identity]HookState),
		seenGen: make(map[Identity]int),
	}
}

func (ns *namespace) startRender() {
	ns.slotCtr = 0
}

func (ns *namespace) ensure(cycle int, explicitKey any, factory func() HookState) (HookState, error) {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	slot := ns.slotCtr
	ns.slotCtr++

	id := resolveIdentity(ns.mode, explicitKey, slot)

	if id.tag == tagDefault {
		if ns.seenGen[id] == cycle {
			return nil, newHookError("hook called more than once per render without a key")
		}
	}
	ns.seenGen[id] = cycle

	if state, ok := ns.states[id]; ok {
		return state, nil
	}

	state := factory()
	ns.states[id] = state
	state.OnRenderStart(cycle)
	return state, nil
}

// disposeStale disposes and removes every state not touched this render
// cycle, returning their count. Used by namespaces (like Effects) whose
// identity can legitimately disappear between renders (key changed).
func (ns *namespace) disposeStale(cycle int) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	for id, gen := range ns.seenGen {
		if gen != cycle {
			if state, ok := ns.states[id]; ok {
				state.Dispose()
				delete(ns.states, id)
			}
			delete(ns.seenGen, id)
		}
	}
}

func (ns *namespace) onRenderEnd(cycle int) {
	ns.mu.Lock()
	states := make([]HookState, 0, len(ns.states))
	for _, s := range ns.states {
		states = append(states, s)
	}
	ns.mu.Unlock()
	for _, s := range states {
		s.OnRenderEnd(cycle)
	}
}

func (ns *namespace) disposeAll() {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	for _, s := range ns.states {
		s.Dispose()
	}
	ns.states = nil
}

// HookContext is the per-component-instance home for every namespace of
// hook state. One HookContext is created per component owner the first
// time a hook is used during its render, stored in the owner's hook slot
// so it is found again (by position, slot 0) on every subsequent render.
type HookContext struct {
	mu          sync.Mutex
	renderCycle int
	namespaces  map[string]*namespace
}

func newHookContext() *HookContext {
	return &HookContext{namespaces: make(map[string]*namespace)}
}

// contextsByOwner maps each component Owner to its HookContext. Keyed by
// pointer identity rather than stored in a hook slot: a HookContext must
// be reachable from every hook call within a render, not just the first,
// so it can't use the same per-call slot counter those calls themselves
// advance.
var (
	contextsByOwnerMu sync.Mutex
	contextsByOwner   = map[*reactive.Owner]*HookContext{}
)

// forCurrentOwner returns the HookContext for the component currently
// rendering, creating one on first use. Panics if called outside render
// (no current owner set).
func forCurrentOwner() *HookContext {
	owner := reactive.CurrentOwner()
	if owner == nil {
		panic("hooks: called outside a render context (no current owner)")
	}

	contextsByOwnerMu.Lock()
	defer contextsByOwnerMu.Unlock()
	hc, ok := contextsByOwner[owner]
	if !ok {
		hc = newHookContext()
		contextsByOwner[owner] = hc
		owner.OnCleanup(func() {
			contextsByOwnerMu.Lock()
			delete(contextsByOwner, owner)
			contextsByOwnerMu.Unlock()
			hc.Unmount()
		})
	}
	return hc
}

// Enter marks the beginning of a render for the current component owner,
// advancing the render cycle and notifying every namespace. It must be
// the first hook-slot consumer in the render, before any Signal/Memo/
// Resource/etc. call, so that its slot index is stable at 0. Returns the
// context so callers can defer ctx.Exit().
func Enter() *HookContext {
	hc := forCurrentOwner()
	hc.mu.Lock()
	hc.renderCycle++
	cycle := hc.renderCycle
	nss := make([]*namespace, 0, len(hc.namespaces))
	for _, ns := range hc.namespaces {
		ns.startRender()
		nss = append(nss, ns)
	}
	hc.mu.Unlock()
	_ = cycle
	_ = nss
	return hc
}

// Exit marks the end of a render: disposes namespace entries whose
// identity was not touched this cycle and fires OnRenderEnd on the rest.
func (hc *HookContext) Exit() {
	hc.mu.Lock()
	cycle := hc.renderCycle
	nss := make([]*namespace, 0, len(hc.namespaces))
	for _, ns := range hc.namespaces {
		nss = append(nss, ns)
	}
	hc.mu.Unlock()
	for _, ns := range nss {
		ns.disposeStale(cycle)
		ns.onRenderEnd(cycle)
	}
}

// Unmount disposes every HookState in every namespace. Called once when
// the owning component is permanently torn down.
func (hc *HookContext) Unmount() {
	hc.mu.Lock()
	nss := make([]*namespace, 0, len(hc.namespaces))
	for _, ns := range hc.namespaces {
		nss = append(nss, ns)
	}
	hc.namespaces = make(map[string]*namespace)
	hc.mu.Unlock()
	for _, ns := range nss {
		ns.disposeAll()
	}
}

func (hc *HookContext) namespaceFor(name string, mode IdentityMode) *namespace {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	ns, ok := hc.namespaces[name]
	if !ok {
		ns = newNamespace(mode)
		hc.namespaces[name] = ns
	}
	return ns
}

// Use resolves (creating on first call) the HookState for the given
// namespace and optional key within the current component's HookContext.
// If key is empty and mode is IdentityCallsite, identity comes from call
// position; if mode is IdentityKey, key must differ across calls within
// one render or Use panics with a HookError.
func Use[T HookState](hc *HookContext, namespace string, mode IdentityMode, key string, factory func() T) T {
	ns := hc.namespaceFor(namespace, mode)

	var explicitKey any
	if key != "" {
		explicitKey = key
	}

	cycle := hc.renderCycle
	state, err := ns.ensure(cycle, explicitKey, func() HookState {
		return factory()
	})
	if err != nil {
		panic(err)
	}
	return state.(T)
}

// callsiteID returns a string identifying the source location of the
// caller `skip` frames up, used as a stable substitute for an explicit
// key when a hook call's position alone should disambiguate it from a
// sibling call (e.g. distinct ps.hooks.create sites sharing a namespace).
func callsiteID(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}
