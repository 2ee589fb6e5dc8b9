package graph

import (
	"cmp"
	"maps"
	"slices"
)

// Node is a vertex of one view.
//
// Attributes are fixed at construction. Only the relation sets grow afterwards,
// through [Node.AddChild] and [Node.AddParent]. Two nodes are the same node only
// if they are the same pointer.
type Node struct {
	id       int
	text     string
	priority Priority
	week     int
	class    string

	children []*Node
	parents  map[*Node]struct{}
}

// NewNode creates a node with empty relation sets.
func NewNode(id int, text string, priority Priority, week int, class string) *Node {
	return &Node{
		id:       id,
		text:     text,
		priority: priority,
		week:     week,
		class:    class,
		parents:  make(map[*Node]struct{}),
	}
}

// ID returns the node's numeric identity, which is also its slot in a view.
func (n *Node) ID() int { return n.id }

// Text returns the display label.
func (n *Node) Text() string { return n.text }

// Priority returns the priority level.
func (n *Node) Priority() Priority { return n.priority }

// Week returns the week value.
func (n *Node) Week() int { return n.week }

// Class returns the style tag used to look up diagram attributes.
func (n *Node) Class() string { return n.class }

// Children returns the child sequence in insertion order. Duplicates are kept.
// The returned slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Parents returns the parent set ordered by ID.
func (n *Node) Parents() []*Node {
	ps := slices.Collect(maps.Keys(n.parents))
	slices.SortFunc(ps, func(a, b *Node) int { return cmp.Compare(a.id, b.id) })
	return ps
}

// AddChild appends c to the child sequence.
func (n *Node) AddChild(c *Node) { n.children = append(n.children, c) }

// AddParent adds p to the parent set.
func (n *Node) AddParent(p *Node) { n.parents[p] = struct{}{} }

// ParentCount returns the size of the parent set.
func (n *Node) ParentCount() int { return len(n.parents) }

// IsRoot reports whether the node has no parents.
func (n *Node) IsRoot() bool { return len(n.parents) == 0 }
