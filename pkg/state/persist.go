package state

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/pulseframework/pulse/pkg/reactive"
)

// CurrentSchemaVersion is the default schema version for Instances whose
// T doesn't implement Versioned. Mirrors pkg/session/serialize.go's
// CurrentSerializationVersion, one layer up the stack.
const CurrentSchemaVersion = 1

// Versioned is implemented by state structs that declare an explicit
// schema version, the Go stand-in for a `__version__` class attribute.
type Versioned interface {
	SchemaVersion() int
}

// Migratable is implemented by state structs that need to adapt an older
// drained payload forward before Hydrate applies it.
type Migratable interface {
	Migrate(startVersion, targetVersion int, values map[string]any) error
}

// DrainedPayload is the wire shape produced by Drain and consumed by
// Hydrate, matching spec's `{"__version__": N, "values": {...}}` protocol.
type DrainedPayload struct {
	Version int            `json:"__version__"`
	Values  map[string]any `json:"values"`
}

// Drain snapshots every non-transient field into a process-serializable
// map, unwrapping reactive containers (ReactiveMap/ReactiveSlice/
// ReactiveSet) via reactive.Unwrap so the payload holds plain Go values.
// In strict mode, a value whose kind isn't in the allow-list below fails
// the drain rather than silently producing an unusable payload.
func Drain(inst *Instance, zero any) (*DrainedPayload, error) {
	values := make(map[string]any, len(inst.meta.fields))

	inst.mu.RLock()
	defer inst.mu.RUnlock()

	for _, fm := range inst.meta.fields {
		if fm.computed || fm.effect || fm.transient {
			continue
		}
		sig, ok := inst.fields[fm.name]
		if !ok {
			continue
		}
		v := reactive.Unwrap(sig.Get())
		if inst.strict {
			if err := checkSerializable(v); err != nil {
				return nil, fmt.Errorf("state: field %q: %w", fm.name, err)
			}
		}
		values[fm.name] = v
	}

	version := CurrentSchemaVersion
	if vv, ok := zero.(Versioned); ok {
		version = vv.SchemaVersion()
	}

	return &DrainedPayload{Version: version, Values: values}, nil
}

// Hydrate reinstates signal values from a drained payload, migrating it
// forward first if its version doesn't match zero's current schema
// version (requires zero, or *Instance's T, to implement Migratable).
// Unknown field names in the payload are ignored; required fields that
// are neither present in the payload nor already non-zero are reported.
func Hydrate(inst *Instance, zero any, payload *DrainedPayload) error {
	target := CurrentSchemaVersion
	if vv, ok := zero.(Versioned); ok {
		target = vv.SchemaVersion()
	}

	values := payload.Values
	if payload.Version != target {
		mig, ok := zero.(Migratable)
		if !ok {
			return fmt.Errorf("state: %s: payload version %d != %d and no Migrate hook is defined", inst.typ.Name(), payload.Version, target)
		}
		if err := mig.Migrate(payload.Version, target, values); err != nil {
			return fmt.Errorf("state: %s: migrate %d->%d: %w", inst.typ.Name(), payload.Version, target, err)
		}
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	for name, raw := range values {
		sig, ok := inst.fields[name]
		if !ok {
			continue // undeclared field in payload: ignored, not an error
		}
		current := sig.Get()
		// A reactive.ReactiveMap/Slice/Set field keeps its pointer
		// identity across Hydrate: the signal already holds the live
		// collection other code may have captured, so restoring into it
		// in place (via ReplaceFrom) is required, not just convenient -
		// sig.Set(coerce(...)) would instead try to unmarshal the
		// drained plain value into that pointer type and fail.
		if replaceable, ok := current.(interface{ ReplaceFrom(any) error }); ok {
			if err := replaceable.ReplaceFrom(raw); err != nil {
				return fmt.Errorf("state: %s: field %q: %w", inst.typ.Name(), name, err)
			}
			continue
		}
		sig.Set(coerce(raw, current))
	}

	return nil
}

// coerce adapts a JSON-roundtripped value (float64/map[string]any/...)
// back to current's concrete type, reusing encoding/json's own decoder
// rather than hand-rolling a conversion table for every Go kind.
func coerce(raw any, current any) any {
	if raw == nil || current == nil {
		return raw
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return raw
	}
	target := reflect.New(reflect.TypeOf(current))
	if err := json.Unmarshal(encoded, target.Interface()); err != nil {
		return raw
	}
	return target.Elem().Interface()
}

// checkSerializable is a small allow-listed kind switch rather than a
// full reflection-based "is this arbitrarily serializable" check,
// matching the teacher's JSON-first persistence idiom.
func checkSerializable(v any) error {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return nil
	}
	// Fall back to a Marshal probe for composite types (maps/slices/structs
	// already unwrapped from reactive containers above).
	if _, err := json.Marshal(v); err != nil {
		return fmt.Errorf("value of type %T is not process-serializable: %w", v, err)
	}
	return nil
}
