package vdom

// Operation is the dotted-path delta the renderer emits on rerender, one
// level up from the HID-addressed Patch diff.go produces for direct DOM
// application: Operations describe *what changed in the normalized tree*,
// and are what the session layer mirrors to the client and replays
// against its own copy of the tree before translating to DOM patches.
type Operation interface {
	isOperation()
	Path() Path
}

// ReplaceOp means the subtree at Path changed identity entirely (the
// same-node rule failed) and must be thrown away and re-rendered from
// the given VNode.
type ReplaceOp struct {
	At   Path
	Node *VNode
}

func (ReplaceOp) isOperation()   {}
func (o ReplaceOp) Path() Path   { return o.At }

// PropsDelta is the prop-level delta for a single element, computed by
// PropsDiff.
type PropsDelta struct {
	Set    map[string]any // keys whose value changed or were added
	Remove []string       // keys removed entirely
	Eval   []string       // keys whose value must always be re-evaluated
	// (callbacks, Expr wrappers, nested render-prop subtrees) regardless
	// of Go-level equality, matching spec's "eval" marking rules.
}

func (d *PropsDelta) IsEmpty() bool {
	return d == nil || (len(d.Set) == 0 && len(d.Remove) == 0 && len(d.Eval) == 0)
}

// UpdatePropsOp carries a prop delta for the element at Path.
type UpdatePropsOp struct {
	At    Path
	Delta PropsDelta
}

func (UpdatePropsOp) isOperation() {}
func (o UpdatePropsOp) Path() Path { return o.At }

// ReconcileNew is a sibling-list entry that was freshly rendered (no
// matching previous node at any index).
type ReconcileNew struct {
	Dest int
	Node *VNode
}

// ReconcileReuse is a sibling-list entry reconciled against a previous
// node found at a different index (or the same index, left implicit by
// its absence from New).
type ReconcileReuse struct {
	Dest int
	Src  int
}

// ReconciliationOp describes how a parent's child list changed: N is the
// final length; every index in [0,N) is either created (appears in New),
// moved from elsewhere (appears in Reuse), or held in place (appears in
// neither, at the same Src==Dest it already occupied). Unmounted carries
// the previous child-list indices that have no surviving match at all
// (neither reused nor part of the untouched head/tail), so a consumer can
// tear those subtrees down without having to re-derive them from New/Reuse.
type ReconciliationOp struct {
	At        Path
	N         int
	New       []ReconcileNew
	Reuse     []ReconcileReuse
	Unmounted []int
}

func (ReconciliationOp) isOperation() {}
func (o ReconciliationOp) Path() Path { return o.At }

// CallbackDelta is the add/remove set for the callback table, emitted
// once per render at the root since the table is fully regenerated every
// time (cheaper to diff against the previous full table than to track
// incremental adds/removes through arbitrarily deep subtree changes).
type CallbackDelta struct {
	Add    map[string]Props // key -> node's Props (handler looked up by name again at dispatch time)
	Remove []string
}

// UpdateCallbacksOp is always emitted at the tree root.
type UpdateCallbacksOp struct {
	Delta CallbackDelta
}

func (UpdateCallbacksOp) isOperation() {}
func (UpdateCallbacksOp) Path() Path   { return Root }
