// Package errs collects the sentinel errors for every pipeline phase a
// mount can fail in: reactivity, hook setup, reconciliation, an event
// callback, a component's render function, an effect body, a query
// fetch, session-level denial, and hot-reload. Each is surfaced to the
// affected mount only, as a scoped server_error — see
// pkg/server.Session.sendScopedError — never as a session teardown.
package errs

import "errors"

// ErrReactivityCycle is the taxonomy-wide alias for
// reactive.ErrReactivityCycle, kept as one sentinel value rather than
// wrapped again so errors.Is works across either import path.
var ErrReactivityCycle = errors.New("pulse: circular memo dependency detected")

// ErrHookRuntime is raised when a hook (UseState, UseEffect, callback
// registration, ...) is called outside of a component's render pass, or
// when hook call order changes across renders for the same owner slot.
var ErrHookRuntime = errors.New("pulse: hook called outside render or in inconsistent order")

// ErrReconcile is raised when the VDOM reconciler encounters a tree it
// cannot diff against the previous render (structurally incompatible
// roots, a dangling HID reference, a patch that targets a node no
// longer in the tree).
var ErrReconcile = errors.New("pulse: reconciliation failed")

// ErrCallback is raised when a registered event-handler callback panics.
// Scoped to the HID's owning mount; does not affect sibling mounts.
var ErrCallback = errors.New("pulse: callback panicked")

// ErrRender is raised when a component's render function panics.
// Recovered at the render-effect boundary and reported scoped to that
// component's mount path; other dirty components still render.
var ErrRender = errors.New("pulse: render panicked")

// ErrEffect is raised when an Effect's thunk or cleanup panics outside
// of a render pass (e.g. during RunPendingEffects).
var ErrEffect = errors.New("pulse: effect panicked")

// ErrQueryFailure is returned by a Query fetcher's failure path,
// surfaced through QueryResult.Error rather than a panic.
var ErrQueryFailure = errors.New("pulse: query fetch failed")

// ErrSessionDenial is returned when an operation is rejected at the
// session boundary: a closed session, a session over capacity, or a
// CSRF/origin check failure.
var ErrSessionDenial = errors.New("pulse: session denied request")

// ErrHotReload is returned by the hot-reload manager when a requested
// plan cannot be carried out (e.g. the compiler binary is missing, or
// the watched root cannot be walked).
var ErrHotReload = errors.New("pulse: hot reload failed")

// Phase names used in server_error{path, phase} messages. Kept as
// constants so pkg/server and test fixtures agree on the exact string.
const (
	PhaseReactivity    = "reactivity"
	PhaseHookRuntime   = "hook_runtime"
	PhaseReconcile     = "reconcile"
	PhaseCallback      = "callback"
	PhaseRender        = "render"
	PhaseEffect        = "effect"
	PhaseQuery         = "query"
	PhaseSessionDenial = "session_denial"
	PhaseHotReload     = "hot_reload"
)
