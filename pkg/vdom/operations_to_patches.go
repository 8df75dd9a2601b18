package vdom

// OperationsToPatches translates a reconciliation result (the dotted-path
// tree diff DiffOperations/RenderTree.Rerender produce) into the
// HID-addressed Patch sequence the wire protocol and client actually
// apply. Operations describe *what changed in the normalized tree*;
// Patches describe *what to do to the live DOM*. This is the adapter
// between the two: the reconciler stays path-addressed (so sibling-list
// changes collapse to one ReconciliationOp per parent, matching the
// single-op-per-reorder shape required of the algorithm), while the
// wire format stays HID-addressed (so the client never has to re-walk a
// path to find the node it's patching).
//
// oldTree is the tree the Operations were diffed against, used to look
// up the HIDs of removed/replaced nodes. newTree is the tree they were
// diffed into; by the time a caller reaches here it has already run
// CopyHIDs/AssignHIDs, so nodes reconciled in place carry oldTree's HID
// and freshly-created nodes carry newly minted ones.
func OperationsToPatches(ops []Operation, oldTree, newTree *VNode) []Patch {
	var patches []Patch
	for _, op := range ops {
		switch o := op.(type) {
		case ReplaceOp:
			patches = append(patches, replaceOpToPatches(o, oldTree)...)
		case UpdatePropsOp:
			patches = append(patches, updatePropsOpToPatches(o, newTree)...)
		case ReconciliationOp:
			patches = append(patches, reconciliationOpToPatches(o, oldTree, newTree)...)
		case UpdateCallbacksOp:
			// Handler dispatch is rebuilt separately by the session from
			// live ComponentInstances (collectHandlersFromInstances), not
			// from this table, so there's nothing to translate here.
		}
	}
	return patches
}

func replaceOpToPatches(o ReplaceOp, oldTree *VNode) []Patch {
	oldNode := resolvePath(oldTree, o.At)
	if o.Node == nil {
		if oldNode == nil {
			return nil
		}
		return []Patch{{Op: PatchRemoveNode, HID: oldNode.HID}}
	}
	if oldNode == nil {
		// Nothing occupied this path before; a sibling-level insert is
		// reported through the parent's ReconciliationOp instead.
		return nil
	}
	return []Patch{{Op: PatchReplaceNode, HID: oldNode.HID, Node: o.Node}}
}

func updatePropsOpToPatches(o UpdatePropsOp, newTree *VNode) []Patch {
	node := resolvePath(newTree, o.At)
	if node == nil {
		return nil
	}
	var patches []Patch
	for _, key := range o.Delta.Remove {
		if key == "key" {
			continue
		}
		patches = append(patches, Patch{Op: PatchRemoveAttr, HID: node.HID, Key: key})
	}
	for key, val := range o.Delta.Set {
		// Event handlers and render-prop subtrees are always marked Eval
		// by PropsDiff but aren't DOM attributes: handlers are dispatched
		// via the session's own handler table, and render props are
		// already part of the rendered tree, not a literal attribute.
		if key == "key" || isEventHandler(key) || isRenderProp(val) {
			continue
		}
		patches = append(patches, Patch{Op: PatchSetAttr, HID: node.HID, Key: key, Value: propToString(val)})
	}
	return patches
}

func reconciliationOpToPatches(o ReconciliationOp, oldTree, newTree *VNode) []Patch {
	parent := resolvePath(newTree, o.At)
	oldParent := resolvePath(oldTree, o.At)
	if parent == nil {
		return nil
	}

	var patches []Patch
	for _, idx := range o.Unmounted {
		if oldParent == nil || idx < 0 || idx >= len(oldParent.Children) {
			continue
		}
		patches = append(patches, Patch{Op: PatchRemoveNode, HID: oldParent.Children[idx].HID})
	}
	for _, r := range o.Reuse {
		child := resolvePath(newTree, o.At.Child(r.Dest))
		if child == nil {
			continue
		}
		patches = append(patches, Patch{Op: PatchMoveNode, HID: child.HID, ParentID: parent.HID, Index: r.Dest})
	}
	for _, n := range o.New {
		patches = append(patches, Patch{Op: PatchInsertNode, ParentID: parent.HID, Index: n.Dest, Node: n.Node})
	}
	return patches
}

// resolvePath walks root by child index, returning nil if path addresses
// a node that doesn't exist in this tree.
func resolvePath(root *VNode, path Path) *VNode {
	node := root
	for _, idx := range path {
		if node == nil || idx < 0 || idx >= len(node.Children) {
			return nil
		}
		node = node.Children[idx]
	}
	return node
}
