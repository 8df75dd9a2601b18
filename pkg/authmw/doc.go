// Package authmw provides route-level authentication/authorization middleware.
//
// This package depends on server/router types, while the core auth package
// remains provider-agnostic and server-independent.
package authmw
