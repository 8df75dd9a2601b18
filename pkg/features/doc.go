// Package features provides higher-level abstractions for building Pulse applications.
//
// This package contains the productive APIs that developers interact with daily,
// built on top of the foundation provided by the pulse, vdom, and server packages.
//
// # Subsystems
//
// The features package is organized into several subsystems:
//
//   - form: Type-safe form binding with validation
//   - resource: Async data loading with loading/error/success states
//   - context: Dependency injection through the component tree
//   - hooks: Client-side 60fps interactions with server state
//   - shared: Session-scoped and global shared state
//   - optimistic: Instant visual feedback for interactions
//   - islands: Third-party JavaScript library integration
//
// Note: For URL query state, use the urlparam package (pulse.URLParam).
//
// # Usage
//
// Each subsystem is in its own sub-package and can be imported independently:
//
//	import "pulse_v2/pkg/features/form"
//	import "pulse_v2/pkg/features/resource"
//	import "pulse_v2/pkg/features/context"
//
// See the individual package documentation for detailed usage examples.
package features
