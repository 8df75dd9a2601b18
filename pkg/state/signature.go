package state

import (
	"fmt"
	"reflect"
	"strings"
)

// Signature fingerprints T's Define-reflected field set: name and type
// of every field Drain would include, in declaration order. Two
// signatures matching means a DrainedPayload captured against one shape
// can be trusted to Hydrate cleanly into the other; they differ the
// moment a dev adds, removes, renames, or retypes a persisted field,
// which is exactly when a stale snapshot should be discarded instead of
// partially applied.
func Signature[T any]() string {
	typ := reflect.TypeOf(*new(T))
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	meta := typeMetaFor(typ)

	var b strings.Builder
	b.WriteString(typ.Name())
	for _, fm := range meta.fields {
		if fm.computed || fm.effect {
			continue
		}
		fmt.Fprintf(&b, "|%s:%s", fm.name, typ.Field(fm.index).Type.String())
	}
	return b.String()
}

// SignaturesCompatible reports whether a DrainedPayload captured under
// signature `have` can be Hydrated into an Instance whose current shape
// signature is `want`. Go restarts the whole process for every source
// change rather than hot-swapping a running binary, so there's no
// partial-reload case to reconcile - compatibility collapses to exact
// equality of the two fingerprints.
func SignaturesCompatible(have, want string) bool {
	return have != "" && have == want
}
