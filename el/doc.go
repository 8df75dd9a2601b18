// Package el provides the UI DSL for Pulse.
//
// It re-exports HTML element constructors, attribute helpers, event helpers,
// and common VDOM utilities from github.com/pulseframework/pulse/pkg/vdom.
//
// Typical usage:
//
//	import (
//	    "github.com/pulseframework/pulse/pkg/reactive"
//	    . "github.com/pulseframework/pulse/el"
//	)
//
// This keeps the DSL in a dedicated package while the reactive APIs live in pulse.
package el
