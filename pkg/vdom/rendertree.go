package vdom

import "fmt"

// RenderTree owns a normalized tree plus its callback table, and is what
// a session holds onto across renders. The first Render() produces the
// initial document; every subsequent Rerender() diffs the new root
// against the previous normalized tree and returns the ordered list of
// Operations needed to bring the client in sync, generalizing diff.go's
// HID-addressed Patch emission into the dotted-path scheme the session
// layer and client both understand.
type RenderTree struct {
	root      *VNode
	callbacks map[string]Props // path.key -> props of the node holding it
}

// NewRenderTree renders root for the first time.
func NewRenderTree(root *VNode) *RenderTree {
	rt := &RenderTree{}
	rt.root = resolveComponents(root)
	rt.callbacks = collectCallbacks(rt.root, Root, nil)
	return rt
}

// Document returns the current normalized VNode tree (for the initial
// SSR payload; later renders should use Rerender's Operations instead).
func (rt *RenderTree) Document() *VNode { return rt.root }

// Callbacks returns the full current callback table, keyed by "path.key".
func (rt *RenderTree) Callbacks() map[string]Props { return rt.callbacks }

// Rerender diffs newRoot against the tree's previous state and returns
// the ordered Operations to apply, always ending with an
// UpdateCallbacksOp reflecting the full regenerated table's add/remove
// delta against the previous one.
func (rt *RenderTree) Rerender(newRoot *VNode) ([]Operation, error) {
	resolved := resolveComponents(newRoot)

	var ops []Operation
	if err := reconcileInto(&ops, Root, rt.root, resolved); err != nil {
		return nil, err
	}

	nextCallbacks := collectCallbacks(resolved, Root, nil)
	ops = append(ops, UpdateCallbacksOp{Delta: diffCallbacks(rt.callbacks, nextCallbacks)})

	rt.root = resolved
	rt.callbacks = nextCallbacks
	return ops, nil
}

// resolveComponents walks the tree, rendering every KindComponent node
// into its returned subtree so reconciliation operates on the rendered
// shape, the same substitution diff.go's diffComponent performs lazily
// node-by-node (done eagerly here since Rerender needs the full next
// tree up front to diff against).
func resolveComponents(node *VNode) *VNode {
	if node == nil {
		return nil
	}
	if node.Kind == KindComponent && node.Comp != nil {
		rendered := node.Comp.Render()
		out := resolveComponents(rendered)
		if out != nil {
			// Preserve identity markers used by the same-node rule.
			out.Key = node.Key
		}
		return out
	}
	if len(node.Children) == 0 {
		return node
	}
	clone := *node
	clone.Children = make([]*VNode, len(node.Children))
	for i, c := range node.Children {
		clone.Children[i] = resolveComponents(c)
	}
	return &clone
}

// sameNode implements spec's same-node rule: two nodes are reconcilable
// iff they share (tag, key) for elements, or (component identity, key)
// for components. Since resolveComponents substitutes components with
// their rendered output before this runs, "component identity" here is
// approximated by comparing the pre-resolution Comp's concrete type,
// tracked via the Key carried through from resolveComponents.
func sameNode(prev, next *VNode) bool {
	if prev == nil || next == nil {
		return prev == next
	}
	if prev.Kind != next.Kind {
		return false
	}
	switch prev.Kind {
	case KindElement:
		return prev.Tag == next.Tag && getKey(prev) == getKey(next)
	case KindText, KindRaw, KindFragment:
		return true
	default:
		return getKey(prev) == getKey(next)
	}
}

// reconcileInto diffs prev against next at path, appending Operations.
func reconcileInto(ops *[]Operation, path Path, prev, next *VNode) error {
	if prev == nil || next == nil {
		if prev != next {
			*ops = append(*ops, ReplaceOp{At: path, Node: next})
		}
		return nil
	}

	if !sameNode(prev, next) {
		*ops = append(*ops, ReplaceOp{At: path, Node: next})
		return nil
	}

	switch prev.Kind {
	case KindText, KindRaw:
		if prev.Text != next.Text {
			*ops = append(*ops, ReplaceOp{At: path, Node: next})
		}
		return nil
	case KindElement:
		delta := PropsDiff(prev.Props, next.Props)
		if !delta.IsEmpty() {
			*ops = append(*ops, UpdatePropsOp{At: path, Delta: delta})
		}
	}

	return reconcileChildren(ops, path, prev.Children, next.Children)
}

// reconcileChildren implements head/tail common-prefix reconciliation,
// falling back to keyed-by-key matching for the remainder (or pure
// position-based pairing when neither side uses keys), and emits exactly
// one ReconciliationOp for the parent at path if the sibling list
// changed at all.
func reconcileChildren(ops *[]Operation, path Path, prev, next []*VNode) error {
	if err := checkDuplicateKeys(next); err != nil {
		return err
	}

	// Head common prefix.
	start := 0
	for start < len(prev) && start < len(next) && sameNode(prev[start], next[start]) {
		if err := reconcileInto(ops, path.Child(start), prev[start], next[start]); err != nil {
			return err
		}
		start++
	}

	// Tail common suffix (only beyond the head we already consumed).
	endPrev, endNext := len(prev), len(next)
	for endPrev > start && endNext > start && sameNode(prev[endPrev-1], next[endNext-1]) {
		endPrev--
		endNext--
	}

	remPrev := prev[start:endPrev]
	remNext := next[start:endNext]

	if len(remPrev) == 0 && len(remNext) == 0 {
		// Still need to reconcile the tail region we skipped by index
		// shift, since its Dest indices differ from Src when the head
		// grew/shrank. Diff each tail pair in place.
		for i := 0; i < len(prev)-endPrev; i++ {
			srcIdx := endPrev + i
			dstIdx := endNext + i
			if err := reconcileInto(ops, path.Child(dstIdx), prev[srcIdx], next[dstIdx]); err != nil {
				return err
			}
		}
		return nil
	}

	hasKeyed := hasKeys(remPrev) || hasKeys(remNext)

	var newEntries []ReconcileNew
	var reuseEntries []ReconcileReuse
	var unmountedEntries []int

	if hasKeyed {
		prevByKey := make(map[string]int, len(remPrev))
		for i, c := range remPrev {
			if k := getKey(c); k != "" {
				prevByKey[k] = start + i
			}
		}
		matched := make(map[int]bool)

		for i, c := range remNext {
			dst := start + i
			key := getKey(c)
			if key == "" {
				newEntries = append(newEntries, ReconcileNew{Dest: dst, Node: c})
				continue
			}
			src, ok := prevByKey[key]
			if !ok {
				newEntries = append(newEntries, ReconcileNew{Dest: dst, Node: c})
				continue
			}
			matched[src] = true
			if err := reconcileInto(ops, path.Child(dst), prev[src], c); err != nil {
				return err
			}
			if src != dst {
				reuseEntries = append(reuseEntries, ReconcileReuse{Dest: dst, Src: src})
			}
		}
		for i := range remPrev {
			src := start + i
			if !matched[src] {
				unmountedEntries = append(unmountedEntries, src)
			}
		}
	} else {
		// Unkeyed fallback: position-based pairing, tail is pure
		// insertion/removal.
		minLen := len(remPrev)
		if len(remNext) < minLen {
			minLen = len(remNext)
		}
		for i := 0; i < minLen; i++ {
			dst := start + i
			if err := reconcileInto(ops, path.Child(dst), remPrev[i], remNext[i]); err != nil {
				return err
			}
		}
		for i := minLen; i < len(remNext); i++ {
			newEntries = append(newEntries, ReconcileNew{Dest: start + i, Node: remNext[i]})
		}
		for i := minLen; i < len(remPrev); i++ {
			unmountedEntries = append(unmountedEntries, start+i)
		}
	}

	finalLen := len(next)
	if len(newEntries) > 0 || len(reuseEntries) > 0 || len(unmountedEntries) > 0 || len(prev) != len(next) {
		*ops = append(*ops, ReconciliationOp{
			At:        path,
			N:         finalLen,
			New:       newEntries,
			Reuse:     reuseEntries,
			Unmounted: unmountedEntries,
		})
	}
	return nil
}

// DiffOperations computes the Operations transforming prev into next,
// for callers that already maintain their own previous-tree bookkeeping
// (the session's per-component or per-navigation tree) and only need the
// reconciliation result, not a persistent RenderTree. Unlike Rerender, it
// does not resolve KindComponent nodes first: prev and next must already
// be fully expanded, which is the case for every tree the session layer
// diffs (component nodes are substituted in place before diffing so HIDs
// and handler collection see the real element structure).
func DiffOperations(prev, next *VNode) ([]Operation, error) {
	var ops []Operation
	if err := reconcileInto(&ops, Root, prev, next); err != nil {
		return nil, err
	}
	prevCallbacks := collectCallbacks(prev, Root, nil)
	nextCallbacks := collectCallbacks(next, Root, nil)
	ops = append(ops, UpdateCallbacksOp{Delta: diffCallbacks(prevCallbacks, nextCallbacks)})
	return ops, nil
}

func checkDuplicateKeys(siblings []*VNode) error {
	seen := make(map[string]bool)
	for _, c := range siblings {
		k := getKey(c)
		if k == "" {
			continue
		}
		if seen[k] {
			return fmt.Errorf("vdom: duplicate sibling key %q", k)
		}
		seen[k] = true
	}
	return nil
}

// PropsDiff computes the set/remove/eval delta between two Props maps,
// implementing spec's four-case rule: primitive/value equality, always-
// eval for callables and nested render-prop subtrees, and key-removed
// tracking. Event handlers are callables and therefore always marked
// eval (the callback table is what actually changes, not the value).
func PropsDiff(prev, next Props) PropsDelta {
	delta := PropsDelta{Set: make(map[string]any)}

	for key, nv := range next {
		pv, existed := prev[key]
		if isEventHandler(key) || isRenderProp(nv) {
			delta.Eval = append(delta.Eval, key)
			delta.Set[key] = nv
			continue
		}
		if !existed || !propsEqual(pv, nv) {
			delta.Set[key] = nv
		}
	}
	for key := range prev {
		if _, ok := next[key]; !ok {
			delta.Remove = append(delta.Remove, key)
		}
	}
	if len(delta.Set) == 0 {
		delta.Set = nil
	}
	return delta
}

// isRenderProp reports whether a prop value is itself a nested
// Element/Component subtree (a "render prop"), which per spec always
// forces eval inclusion regardless of equality.
func isRenderProp(v any) bool {
	_, ok := v.(*VNode)
	return ok
}

// collectCallbacks walks the tree collecting every event-handler prop
// into a flat "path.key" -> Props table, fully regenerated each render
// rather than incrementally maintained (cheaper than tracking adds/
// removes through arbitrarily deep subtree replacement).
func collectCallbacks(node *VNode, path Path, out map[string]Props) map[string]Props {
	if out == nil {
		out = make(map[string]Props)
	}
	if node == nil {
		return out
	}
	if node.Kind == KindElement && node.Props != nil {
		hasHandler := false
		for key := range node.Props {
			if isEventHandler(key) {
				hasHandler = true
				break
			}
		}
		if hasHandler {
			out[path.String()] = node.Props
		}
	}
	for i, c := range node.Children {
		collectCallbacks(c, path.Child(i), out)
	}
	return out
}

// diffCallbacks computes the add/remove delta between two full callback
// tables, consumed by the session layer to patch its own callback
// dispatch table (the table itself is always fully regenerated; only the
// delta is wire-transmitted).
func diffCallbacks(prev, next map[string]Props) CallbackDelta {
	delta := CallbackDelta{Add: make(map[string]Props)}
	for k, v := range next {
		if _, ok := prev[k]; !ok {
			delta.Add[k] = v
		}
	}
	for k := range prev {
		if _, ok := next[k]; !ok {
			delta.Remove = append(delta.Remove, k)
		}
	}
	if len(delta.Add) == 0 {
		delta.Add = nil
	}
	return delta
}
