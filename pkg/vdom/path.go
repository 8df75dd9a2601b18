package vdom

import "strconv"

// Path addresses a node in a normalized tree by its chain of child
// indices from the root, the dotted-path addressing scheme the
// reconciler's operations use in place of the HID-per-element scheme
// diff.go/patch.go use for direct DOM patches.
type Path []int

// Root is the empty path, addressing the tree's root node.
var Root = Path{}

// Child returns the path to the i'th child of the node at p.
func (p Path) Child(i int) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = i
	return next
}

// String renders the path as a dotted string ("0.2.1"), the wire format
// the session/protocol layer addresses operations by.
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	s := strconv.Itoa(p[0])
	for _, seg := range p[1:] {
		s += "." + strconv.Itoa(seg)
	}
	return s
}

// Key returns the dotted string for a prop/callback at this path, e.g.
// "0.2.onclick", matching the callback-table addressing scheme
// (`path.key`) the session layer dispatches callbacks by.
func (p Path) Key(name string) string {
	if len(p) == 0 {
		return name
	}
	return p.String() + "." + name
}
