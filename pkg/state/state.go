// Package state is a Go-idiomatic stand-in for a declarative base class
// whose metaclass would normally turn annotated attributes into reactive
// property descriptors. Go has neither metaclasses nor property
// descriptors, so fields aren't intercepted transparently: Define walks a
// struct once via reflection, builds a lazily-materialized Signal per
// exported field, and callers reach those signals through Field[F], an
// explicit, typed accessor rather than plain attribute syntax.
package state

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/pulseframework/pulse/pkg/reactive"
)

// Tag constants recognized in the `state:"..."` struct tag.
const (
	tagSkip      = "-"
	tagComputed  = "computed"
	tagEffect    = "effect"
	tagTransient = "transient"
)

type fieldMeta struct {
	index      int
	name       string
	zero       reflect.Value
	computed   bool
	effect     bool
	transient  bool
	persistKey string
}

type typeMeta struct {
	fields []fieldMeta
	byName map[string]int // field name -> index into fields
}

var typeCache sync.Map // reflect.Type -> *typeMeta

// Define walks T's struct fields once (cached per type, like the teacher's
// own hook-slot-per-Owner caching) and builds an Instance holding one
// lazily-constructed Signal per reactive field. Unexported fields and
// fields tagged `state:"-"` are strictly non-reactive, matching spec's
// underscore-prefix rule.
func Define[T any](owner *reactive.Owner, initial T) *Instance {
	typ := reflect.TypeOf(initial)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	meta := typeMetaFor(typ)

	inst := &Instance{
		owner:  owner,
		typ:    typ,
		meta:   meta,
		fields: make(map[string]*reactive.Signal[any], len(meta.fields)),
		strict: true,
	}

	v := reflect.ValueOf(initial)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	for _, fm := range meta.fields {
		if fm.computed || fm.effect {
			continue
		}
		fv := v.Field(fm.index)
		opts := []reactive.SignalOption{}
		if fm.transient {
			opts = append(opts, reactive.Transient())
		}
		if fm.persistKey != "" {
			opts = append(opts, reactive.PersistKey(fm.persistKey))
		}
		inst.fields[fm.name] = reactive.NewSignal(fv.Interface(), opts...)
	}

	return inst
}

func typeMetaFor(typ reflect.Type) *typeMeta {
	if cached, ok := typeCache.Load(typ); ok {
		return cached.(*typeMeta)
	}

	meta := &typeMeta{byName: make(map[string]int)}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("state")
		parts := strings.Split(tag, ",")
		primary := parts[0]
		if primary == tagSkip {
			continue
		}

		fm := fieldMeta{index: i, name: f.Name, zero: reflect.Zero(f.Type)}
		for _, p := range parts {
			switch p {
			case tagComputed:
				fm.computed = true
			case tagEffect:
				fm.effect = true
			case tagTransient:
				fm.transient = true
			}
		}
		if key, ok := f.Tag.Lookup("persist"); ok {
			fm.persistKey = key
		}

		meta.byName[f.Name] = len(meta.fields)
		meta.fields = append(meta.fields, fm)
	}

	typeCache.Store(typ, meta)
	return meta
}

// Instance is the runtime object backing a Define'd value: a set of
// lazily-constructed Signals plus any Computeds/Effects/QueryParams bound
// to it. It is not generic over T because most callers only need typed
// access to individual fields (via Field[F]), not the struct as a whole.
type Instance struct {
	owner *reactive.Owner
	typ   reflect.Type
	meta  *typeMeta

	mu              sync.RWMutex
	fields          map[string]*reactive.Signal[any]
	computedsByType map[string]any

	strict bool
}

// Strict toggles strict mode. In strict mode (the default) SetField
// rejects undeclared field names and Drain requires every stored value to
// be process-serializable.
func (inst *Instance) Strict(on bool) *Instance {
	inst.strict = on
	return inst
}

// Owner returns the Owner this instance's signals, computeds and effects
// belong to.
func (inst *Instance) Owner() *reactive.Owner { return inst.owner }

func (inst *Instance) signal(name string) (*reactive.Signal[any], bool) {
	inst.mu.RLock()
	defer inst.mu.RUnlock()
	s, ok := inst.fields[name]
	return s, ok
}

// GetField reads a field's current value by name, type-erased. Field[F]
// is the typed convenience wrapper most callers should use instead.
func (inst *Instance) GetField(name string) (any, error) {
	s, ok := inst.signal(name)
	if !ok {
		return nil, fmt.Errorf("state: %s has no reactive field %q", inst.typ.Name(), name)
	}
	return s.Get(), nil
}

// SetField writes a field's value by name, type-erased. In strict mode,
// writing an undeclared field name is an error, mirroring spec's
// after-init attribute-assignment restriction.
func (inst *Instance) SetField(name string, value any) error {
	s, ok := inst.signal(name)
	if !ok {
		if inst.strict {
			return fmt.Errorf("state: %s has no reactive field %q (strict mode)", inst.typ.Name(), name)
		}
		return nil
	}
	s.Set(value)
	return nil
}

// FieldNames returns the reactive field names declared on T, in
// declaration order.
func (inst *Instance) FieldNames() []string {
	names := make([]string, 0, len(inst.meta.fields))
	for _, fm := range inst.meta.fields {
		if fm.computed || fm.effect {
			continue
		}
		names = append(names, fm.name)
	}
	return names
}

// OnDispose mirrors the on_dispose() hook: registers cleanup that runs
// once, when the instance is torn down alongside its Owner.
func (inst *Instance) OnDispose(fn func()) {
	inst.owner.OnCleanup(fn)
}

// Field returns a typed handle onto a reactive field declared on T. It
// panics if name isn't a declared field or F doesn't match the field's
// declared type — both are programmer errors caught at first use, the
// same way a wrong-type hook-slot read panics in pkg/reactive.
func Field[F any](inst *Instance, name string) *FieldHandle[F] {
	if _, ok := inst.signal(name); !ok {
		panic(fmt.Sprintf("state: %s has no reactive field %q", inst.typ.Name(), name))
	}
	return &FieldHandle[F]{inst: inst, name: name}
}

// FieldHandle is the Go stand-in for the attribute-access interception a
// Python descriptor would normally provide: `count: int = 0` becomes
// `state.Field[int](inst, "count")`, with Get/Set in place of `inst.count`
// / `inst.count = v`.
type FieldHandle[F any] struct {
	inst *Instance
	name string
}

func (h *FieldHandle[F]) Get() F {
	v, err := h.inst.GetField(h.name)
	if err != nil {
		panic(err)
	}
	f, ok := v.(F)
	if !ok {
		panic(fmt.Sprintf("state: field %q is not of the requested type", h.name))
	}
	return f
}

func (h *FieldHandle[F]) Set(value F) {
	if err := h.inst.SetField(h.name, value); err != nil {
		panic(err)
	}
}

// Computed is the builder stand-in for @computed: a lazy, per-instance
// Memo bound to the instance's Owner, cached by name (boxed as `any`
// since Go generics can't hold varying *Memo[F] in one map) so repeated
// calls with the same name return the same underlying Memo, mirroring
// ComputedProperty's `__computed_{name}` per-instance caching.
func Computed[F any](inst *Instance, name string, compute func() F) *reactive.Memo[F] {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if existing, ok := inst.computedsByType[name]; ok {
		memo, ok := existing.(*reactive.Memo[F])
		if !ok {
			panic(fmt.Sprintf("state: computed %q requested with a different type than its first use", name))
		}
		return memo
	}
	var memo *reactive.Memo[F]
	reactive.WithOwner(inst.owner, func() {
		memo = reactive.NewMemo(compute)
	})
	if inst.computedsByType == nil {
		inst.computedsByType = make(map[string]any)
	}
	inst.computedsByType[name] = memo
	return memo
}

// Effect is the builder stand-in for @effect: created once, on instance
// init, bound to the instance's Owner.
func Effect(inst *Instance, fn func() reactive.Cleanup) {
	reactive.WithOwner(inst.owner, func() {
		reactive.CreateEffect(fn)
	})
}
