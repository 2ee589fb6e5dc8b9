package graph

import (
	"fmt"
	"slices"
)

// EdgeRef is an unresolved edge between two node IDs, as read from input.
type EdgeRef struct {
	From int
	To   int
}

// String formats the pair as "from -> to".
func (e EdgeRef) String() string { return fmt.Sprintf("%d -> %d", e.From, e.To) }

// Edge is an edge resolved against one view.
type Edge struct {
	From *Node
	To   *Node
}

// Ref returns the ID pair of the edge.
func (e Edge) Ref() EdgeRef { return EdgeRef{From: e.From.ID(), To: e.To.ID()} }

// View is one index-addressed instantiation of the graph.
//
// Slot i holds node i or nil. The slot count only ever grows. The zero value
// is an empty, usable view.
type View struct {
	slots []*Node
	edges []Edge
}

// NewView creates an empty view.
func NewView() *View { return &View{} }

// Len returns the number of slots, present or not.
func (v *View) Len() int { return len(v.slots) }

// Node returns the node in slot id and true, or nil and false if the slot is
// out of range or empty.
func (v *View) Node(id int) (*Node, bool) {
	if id < 0 || id >= len(v.slots) || v.slots[id] == nil {
		return nil, false
	}
	return v.slots[id], true
}

// Has reports whether slot id holds a node.
func (v *View) Has(id int) bool {
	_, ok := v.Node(id)
	return ok
}

// Nodes returns the present nodes in ascending ID order.
func (v *View) Nodes() []*Node {
	out := make([]*Node, 0, len(v.slots))
	for _, n := range v.slots {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// NodeCount returns the number of present nodes.
func (v *View) NodeCount() int {
	n := 0
	for _, s := range v.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// Edges returns a copy of the resolved edges in insertion order.
func (v *View) Edges() []Edge { return slices.Clone(v.edges) }

// EdgeRefs returns the ID pairs of the resolved edges in insertion order.
func (v *View) EdgeRefs() []EdgeRef {
	refs := make([]EdgeRef, len(v.edges))
	for i, e := range v.edges {
		refs[i] = e.Ref()
	}
	return refs
}

// EdgeCount returns the number of resolved edges.
func (v *View) EdgeCount() int { return len(v.edges) }

// Root returns the node in slot 0, or nil.
func (v *View) Root() *Node {
	n, _ := v.Node(0)
	return n
}

// Roots returns the present nodes without parents, in ascending ID order.
func (v *View) Roots() []*Node {
	var roots []*Node
	for _, n := range v.slots {
		if n != nil && n.IsRoot() {
			roots = append(roots, n)
		}
	}
	return roots
}

// grow appends empty slots until id is addressable. It never shrinks.
func (v *View) grow(id int) {
	if id < len(v.slots) {
		return
	}
	v.slots = append(v.slots, make([]*Node, id-len(v.slots)+1)...)
}

func (v *View) set(n *Node) {
	v.grow(n.ID())
	v.slots[n.ID()] = n
}

// link records parent -> child in both relation sets and the edge list.
func (v *View) link(parent, child *Node) {
	parent.AddChild(child)
	child.AddParent(parent)
	v.edges = append(v.edges, Edge{From: parent, To: child})
}
