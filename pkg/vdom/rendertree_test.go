package vdom

import "testing"

func elem(tag, key string, children ...*VNode) *VNode {
	return &VNode{Kind: KindElement, Tag: tag, Key: key, Children: children}
}

func text(s string) *VNode {
	return &VNode{Kind: KindText, Text: s}
}

func TestRenderTreeInitialDocument(t *testing.T) {
	root := elem("div", "", text("hello"))
	rt := NewRenderTree(root)

	doc := rt.Document()
	if doc.Tag != "div" || len(doc.Children) != 1 || doc.Children[0].Text != "hello" {
		t.Fatalf("unexpected initial document: %#v", doc)
	}
}

func TestRerenderEmitsReplaceOnTagChange(t *testing.T) {
	rt := NewRenderTree(elem("div", ""))
	ops, err := rt.Rerender(elem("span", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, op := range ops {
		if r, ok := op.(ReplaceOp); ok && r.Path().String() == "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a root ReplaceOp, got %#v", ops)
	}
}

func TestRerenderEmitsUpdatePropsOnAttrChange(t *testing.T) {
	prev := &VNode{Kind: KindElement, Tag: "div", Props: Props{"class": "a"}}
	next := &VNode{Kind: KindElement, Tag: "div", Props: Props{"class": "b"}}

	rt := NewRenderTree(prev)
	ops, err := rt.Rerender(next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var found *UpdatePropsOp
	for i := range ops {
		if u, ok := ops[i].(UpdatePropsOp); ok {
			found = &u
		}
	}
	if found == nil {
		t.Fatalf("expected an UpdatePropsOp, got %#v", ops)
	}
	if found.Delta.Set["class"] != "b" {
		t.Fatalf("expected class=b in the prop delta, got %#v", found.Delta)
	}
}

func TestRerenderKeyedReorderEmitsSingleReconciliationOp(t *testing.T) {
	prev := elem("ul", "", elem("li", "a"), elem("li", "b"), elem("li", "c"))
	next := elem("ul", "", elem("li", "c"), elem("li", "a"), elem("li", "b"))

	rt := NewRenderTree(prev)
	ops, err := rt.Rerender(next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var reconOps []ReconciliationOp
	for _, op := range ops {
		if r, ok := op.(ReconciliationOp); ok {
			reconOps = append(reconOps, r)
		}
	}
	if len(reconOps) != 1 {
		t.Fatalf("expected exactly one ReconciliationOp for the reordered parent, got %d: %#v", len(reconOps), ops)
	}
	if reconOps[0].N != 3 {
		t.Fatalf("expected final length 3, got %d", reconOps[0].N)
	}
}

func TestRerenderNoChangeEmitsNoStructuralOps(t *testing.T) {
	root := elem("div", "", text("same"))
	rt := NewRenderTree(root)
	ops, err := rt.Rerender(elem("div", "", text("same")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, op := range ops {
		if _, ok := op.(UpdateCallbacksOp); ok {
			continue
		}
		t.Fatalf("expected no structural ops for an unchanged tree, got %#v", op)
	}
}

func TestDuplicateSiblingKeyIsRejected(t *testing.T) {
	rt := NewRenderTree(elem("ul", ""))
	_, err := rt.Rerender(elem("ul", "", elem("li", "x"), elem("li", "x")))
	if err == nil {
		t.Fatal("expected an error for duplicate sibling keys")
	}
}

func TestCallbackTableTracksHandlerAddAndRemove(t *testing.T) {
	onClick := func() {}
	prev := &VNode{Kind: KindElement, Tag: "button", Props: Props{"onclick": onClick}}
	rt := NewRenderTree(prev)
	if len(rt.Callbacks()) != 1 {
		t.Fatalf("expected one callback registered initially, got %d", len(rt.Callbacks()))
	}

	next := &VNode{Kind: KindElement, Tag: "button", Props: Props{}}
	ops, err := rt.Rerender(next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var cbOp *UpdateCallbacksOp
	for i := range ops {
		if u, ok := ops[i].(UpdateCallbacksOp); ok {
			cbOp = &u
		}
	}
	if cbOp == nil {
		t.Fatal("expected an UpdateCallbacksOp")
	}
	if len(cbOp.Delta.Remove) != 1 {
		t.Fatalf("expected the removed handler to be reported, got %#v", cbOp.Delta)
	}
	if len(rt.Callbacks()) != 0 {
		t.Fatalf("expected the callback table to shrink to 0, got %d", len(rt.Callbacks()))
	}
}
