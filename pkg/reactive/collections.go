package reactive

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
)

// roundtripJSON decodes raw - typically a value that has already been
// through one json.Marshal/Unmarshal cycle as part of pkg/state's drain
// payload (so a struct comes back as map[string]any, a slice as
// []any) - into a concrete *T by re-encoding and decoding through
// encoding/json. This is the same trick pkg/state's own coerce()
// uses for plain fields; collections need it too since ReplaceFrom
// receives the same loosely-typed payload.
func roundtripJSON[T any](raw any, out *T) error {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("reactive: encode %T: %w", raw, err)
	}
	if err := json.Unmarshal(encoded, out); err != nil {
		return fmt.Errorf("reactive: decode into %T: %w", *out, err)
	}
	return nil
}

// ReactiveMap is a map whose entries are individually reactive: reading
// one key subscribes only to that key's value, not to the whole map.
// Structural changes (keys added, removed, or the map cleared) bump a
// separate structure signal, which Keys/Values/Range/Len subscribe to -
// and which a Get of a key that doesn't exist yet also subscribes to, so
// that key eventually appearing triggers a re-render of readers that
// observed its absence.
type ReactiveMap[K comparable, V any] struct {
	mu        sync.RWMutex
	values    map[K]*Signal[V]
	structure *Signal[uint64]
}

// NewReactiveMap creates an empty ReactiveMap.
func NewReactiveMap[K comparable, V any]() *ReactiveMap[K, V] {
	return &ReactiveMap[K, V]{
		values:    make(map[K]*Signal[V]),
		structure: NewSignal(uint64(0)),
	}
}

// NewReactiveMapFrom creates a ReactiveMap pre-populated from a plain map.
func NewReactiveMapFrom[K comparable, V any](initial map[K]V) *ReactiveMap[K, V] {
	rm := NewReactiveMap[K, V]()
	for k, v := range initial {
		rm.values[k] = NewSignal(v)
	}
	return rm
}

func (rm *ReactiveMap[K, V]) bumpStructure() {
	rm.structure.Update(func(n uint64) uint64 { return n + 1 })
}

// Get returns the value for key and whether it was present.
func (rm *ReactiveMap[K, V]) Get(key K) (V, bool) {
	rm.mu.RLock()
	sig, ok := rm.values[key]
	rm.mu.RUnlock()

	if !ok {
		rm.structure.Get() // subscribe so a later Set(key, ...) is observed
		var zero V
		return zero, false
	}
	return sig.Get(), true
}

// Set assigns value to key, creating the per-key signal (and bumping the
// structure signal) if key wasn't already present.
func (rm *ReactiveMap[K, V]) Set(key K, value V) {
	rm.mu.RLock()
	sig, ok := rm.values[key]
	rm.mu.RUnlock()

	if ok {
		sig.Set(value)
		return
	}

	rm.mu.Lock()
	sig, ok = rm.values[key]
	if !ok {
		sig = NewSignal(value)
		rm.values[key] = sig
	}
	rm.mu.Unlock()

	if !ok {
		rm.bumpStructure()
	} else {
		sig.Set(value)
	}
}

// Delete removes key, bumping the structure signal if it was present.
func (rm *ReactiveMap[K, V]) Delete(key K) {
	rm.mu.Lock()
	_, ok := rm.values[key]
	if ok {
		delete(rm.values, key)
	}
	rm.mu.Unlock()

	if ok {
		rm.bumpStructure()
	}
}

// Has reports whether key is present, subscribing to the key's own
// signal if present (value changes don't affect presence, but this keeps
// Has and Get consistent about what each key tracks) or to structure
// otherwise.
func (rm *ReactiveMap[K, V]) Has(key K) bool {
	rm.mu.RLock()
	sig, ok := rm.values[key]
	rm.mu.RUnlock()
	if ok {
		sig.Get()
		return true
	}
	rm.structure.Get()
	return false
}

// Len returns the number of entries, subscribing to structure.
func (rm *ReactiveMap[K, V]) Len() int {
	rm.structure.Get()
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.values)
}

// Keys returns a snapshot of the map's keys, subscribing to structure.
func (rm *ReactiveMap[K, V]) Keys() []K {
	rm.structure.Get()
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	keys := make([]K, 0, len(rm.values))
	for k := range rm.values {
		keys = append(keys, k)
	}
	return keys
}

// Values returns a snapshot of the map's values, subscribing to
// structure and to every entry's own signal.
func (rm *ReactiveMap[K, V]) Values() []V {
	rm.structure.Get()
	rm.mu.RLock()
	sigs := make([]*Signal[V], 0, len(rm.values))
	for _, sig := range rm.values {
		sigs = append(sigs, sig)
	}
	rm.mu.RUnlock()

	values := make([]V, len(sigs))
	for i, sig := range sigs {
		values[i] = sig.Get()
	}
	return values
}

// Range calls fn for every key/value pair, subscribing to structure and
// to every visited entry's signal.
func (rm *ReactiveMap[K, V]) Range(fn func(key K, value V)) {
	rm.structure.Get()
	rm.mu.RLock()
	sigs := make(map[K]*Signal[V], len(rm.values))
	for k, sig := range rm.values {
		sigs[k] = sig
	}
	rm.mu.RUnlock()

	for k, sig := range sigs {
		fn(k, sig.Get())
	}
}

// Clear removes every entry, bumping structure once if the map wasn't
// already empty.
func (rm *ReactiveMap[K, V]) Clear() {
	rm.mu.Lock()
	hadEntries := len(rm.values) > 0
	rm.values = make(map[K]*Signal[V])
	rm.mu.Unlock()

	if hadEntries {
		rm.bumpStructure()
	}
}

// Unwrap returns a plain map snapshot of the current values.
func (rm *ReactiveMap[K, V]) Unwrap() map[K]V {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	out := make(map[K]V, len(rm.values))
	for k, sig := range rm.values {
		out[k] = sig.Peek()
	}
	return out
}

// ReplaceFrom decodes raw into a map[K]V and replaces this map's
// contents in place, so a caller holding the original *ReactiveMap
// pointer (e.g. a pkg/state field) observes the restored entries
// without the pointer itself changing. Used by pkg/state.Hydrate to
// resume a drained ReactiveMap field after a hot-reload restart.
func (rm *ReactiveMap[K, V]) ReplaceFrom(raw any) error {
	var values map[K]V
	if err := roundtripJSON(raw, &values); err != nil {
		return err
	}
	rm.Clear()
	for k, v := range values {
		rm.Set(k, v)
	}
	return nil
}

// ReactiveSlice is a slice whose elements are individually reactive:
// reading one index subscribes only to that index's signal. Structural
// changes (length changes) bump a separate structure signal.
type ReactiveSlice[T any] struct {
	mu        sync.RWMutex
	items     []*Signal[T]
	structure *Signal[uint64]
}

// NewReactiveSlice creates a ReactiveSlice pre-populated from a plain slice.
func NewReactiveSlice[T any](initial []T) *ReactiveSlice[T] {
	items := make([]*Signal[T], len(initial))
	for i, v := range initial {
		items[i] = NewSignal(v)
	}
	return &ReactiveSlice[T]{items: items, structure: NewSignal(uint64(0))}
}

func (rs *ReactiveSlice[T]) bumpStructure() {
	rs.structure.Update(func(n uint64) uint64 { return n + 1 })
}

// At returns the element at index, subscribing only to that index.
// Panics if index is out of range, matching plain slice indexing.
func (rs *ReactiveSlice[T]) At(index int) T {
	rs.mu.RLock()
	sig := rs.items[index]
	rs.mu.RUnlock()
	return sig.Get()
}

// SetAt updates the element at index in place without affecting structure.
func (rs *ReactiveSlice[T]) SetAt(index int, value T) {
	rs.mu.RLock()
	sig := rs.items[index]
	rs.mu.RUnlock()
	sig.Set(value)
}

// Len returns the slice length, subscribing to structure.
func (rs *ReactiveSlice[T]) Len() int {
	rs.structure.Get()
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.items)
}

// Range calls fn for every index/value pair in order, subscribing to
// structure and to every visited element's signal.
func (rs *ReactiveSlice[T]) Range(fn func(index int, value T)) {
	rs.structure.Get()
	rs.mu.RLock()
	items := make([]*Signal[T], len(rs.items))
	copy(items, rs.items)
	rs.mu.RUnlock()

	for i, sig := range items {
		fn(i, sig.Get())
	}
}

// Append adds value to the end, bumping structure.
func (rs *ReactiveSlice[T]) Append(value T) {
	rs.mu.Lock()
	rs.items = append(rs.items, NewSignal(value))
	rs.mu.Unlock()
	rs.bumpStructure()
}

// RemoveAt removes the element at index, bumping structure. Does nothing
// if index is out of range.
func (rs *ReactiveSlice[T]) RemoveAt(index int) {
	rs.mu.Lock()
	if index < 0 || index >= len(rs.items) {
		rs.mu.Unlock()
		return
	}
	rs.items = append(rs.items[:index], rs.items[index+1:]...)
	rs.mu.Unlock()
	rs.bumpStructure()
}

// SetRange replaces the whole slice's contents. If values has the same
// length as the current slice, existing per-index signals are updated in
// place (structure is not bumped, so index-level subscribers that aren't
// also watching structure don't needlessly re-render); otherwise the
// slice is rebuilt and structure is bumped.
func (rs *ReactiveSlice[T]) SetRange(values []T) {
	rs.mu.Lock()
	if len(values) == len(rs.items) {
		items := make([]*Signal[T], len(rs.items))
		copy(items, rs.items)
		rs.mu.Unlock()
		for i, v := range values {
			items[i].Set(v)
		}
		return
	}

	rs.items = make([]*Signal[T], len(values))
	for i, v := range values {
		rs.items[i] = NewSignal(v)
	}
	rs.mu.Unlock()
	rs.bumpStructure()
}

// SortBy reorders the slice's elements by comparator less, permuting the
// underlying per-index signals (rather than rebuilding them) so that any
// subscription to a specific index keeps tracking the same value through
// the reorder when only its position, not its content, changed for that
// subscriber's own element. Bumps structure, since element order changed.
func (rs *ReactiveSlice[T]) SortBy(less func(a, b T) bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	values := make([]T, len(rs.items))
	for i, sig := range rs.items {
		values[i] = sig.Peek()
	}

	indices := make([]int, len(values))
	for i := range indices {
		indices[i] = i
	}
	sortIndices(indices, func(a, b int) bool { return less(values[a], values[b]) })

	reordered := make([]*Signal[T], len(rs.items))
	for newPos, oldIdx := range indices {
		reordered[newPos] = rs.items[oldIdx]
	}
	rs.items = reordered

	for i, sig := range rs.items {
		sig.setQuietly(values[indices[i]])
	}

	rs.bumpStructure()
}

// sortIndices is a small insertion sort over index permutations, adequate
// for the UI-sized collections this type targets; avoids pulling in
// sort.Slice's reflection-based comparator indirection for a hot path.
func sortIndices(indices []int, less func(a, b int) bool) {
	for i := 1; i < len(indices); i++ {
		for j := i; j > 0 && less(indices[j], indices[j-1]); j-- {
			indices[j], indices[j-1] = indices[j-1], indices[j]
		}
	}
}

// Unwrap returns a plain slice snapshot of the current values.
func (rs *ReactiveSlice[T]) Unwrap() []T {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	out := make([]T, len(rs.items))
	for i, sig := range rs.items {
		out[i] = sig.Peek()
	}
	return out
}

// ReplaceFrom decodes raw into a []T and replaces this slice's contents
// in place via SetRange, so a caller holding the original
// *ReactiveSlice pointer observes the restored contents without the
// pointer itself changing. Used by pkg/state.Hydrate to resume a
// drained ReactiveSlice field after a hot-reload restart.
func (rs *ReactiveSlice[T]) ReplaceFrom(raw any) error {
	var values []T
	if err := roundtripJSON(raw, &values); err != nil {
		return err
	}
	rs.SetRange(values)
	return nil
}

// ReactiveSet is a set whose membership per element is individually
// reactive. Membership signals are allocated lazily on first query of an
// element, so checking Has on an element never before seen doesn't grow
// the set.
type ReactiveSet[T comparable] struct {
	mu       sync.Mutex
	elements map[T]*Signal[bool]
}

// NewReactiveSet creates a ReactiveSet pre-populated from the given elements.
func NewReactiveSet[T comparable](initial ...T) *ReactiveSet[T] {
	rs := &ReactiveSet[T]{elements: make(map[T]*Signal[bool])}
	for _, v := range initial {
		rs.elements[v] = NewSignal(true)
	}
	return rs
}

func (rs *ReactiveSet[T]) signalFor(v T) *Signal[bool] {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	sig, ok := rs.elements[v]
	if !ok {
		sig = NewSignal(false)
		rs.elements[v] = sig
	}
	return sig
}

// Has reports whether v is a member, subscribing to v's membership signal.
func (rs *ReactiveSet[T]) Has(v T) bool {
	return rs.signalFor(v).Get()
}

// Add inserts v into the set.
func (rs *ReactiveSet[T]) Add(v T) {
	rs.signalFor(v).Set(true)
}

// Remove deletes v from the set.
func (rs *ReactiveSet[T]) Remove(v T) {
	rs.signalFor(v).Set(false)
}

// Unwrap returns the current members as a plain slice, in no particular order.
func (rs *ReactiveSet[T]) Unwrap() []T {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]T, 0, len(rs.elements))
	for v, sig := range rs.elements {
		if sig.Peek() {
			out = append(out, v)
		}
	}
	return out
}

// ReplaceFrom decodes raw into a []T and replaces this set's membership
// in place, so a caller holding the original *ReactiveSet pointer
// observes the restored members without the pointer itself changing.
// Used by pkg/state.Hydrate to resume a drained ReactiveSet field after
// a hot-reload restart.
func (rs *ReactiveSet[T]) ReplaceFrom(raw any) error {
	var values []T
	if err := roundtripJSON(raw, &values); err != nil {
		return err
	}
	rs.mu.Lock()
	rs.elements = make(map[T]*Signal[bool])
	rs.mu.Unlock()
	for _, v := range values {
		rs.Add(v)
	}
	return nil
}

// Unwrap converts a value produced by the reactive collection wrappers
// (*ReactiveMap[K,V], *ReactiveSlice[T], *ReactiveSet[T]) back into its
// plain Go equivalent (map[K]V, []T). Anything else, including a plain
// value that was never wrapped, is returned unchanged. Dispatches via
// reflection, mirroring the teacher's reflection-based approach to
// generic collection operations in signal_slice.go/signal_map.go, since
// Go's type system can't express "any instantiation of this generic
// type" as a single interface to switch on.
func Unwrap(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	method := rv.MethodByName("Unwrap")
	if !method.IsValid() || method.Type().NumIn() != 0 || method.Type().NumOut() != 1 {
		return v
	}
	results := method.Call(nil)
	return results[0].Interface()
}
