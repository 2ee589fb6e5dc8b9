// Package tree serializes a rooted view as the nested JSON tree consumed by
// the d3 tree front end.
//
// Each node becomes
//
//	{"id": "3", "name": "Heaps", "parent": "Sorting", "children": [...], "data": {"week": 7}}
//
// where parent is the name of the enclosing node, or "null" at the root.
// Children appear in the node's insertion order. A node reachable along
// several paths is emitted once, under the first parent that reaches it in a
// depth-first walk, so the output never contains cycles.
package tree

import (
	"io"
	"strconv"

	"github.com/matzehuels/conceptmap/pkg/graph"
	cmio "github.com/matzehuels/conceptmap/pkg/io"
)

// NoParent is the parent value of the root.
const NoParent = "null"

// Tree is one node of the nested tree.
type Tree struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Parent   string  `json:"parent"`
	Children []*Tree `json:"children"`
	Data     Data    `json:"data"`
}

// Data holds the per-node payload.
type Data struct {
	Week int `json:"week"`
}

// Build walks depth-first from root and returns the nested tree.
// A nil root yields nil.
func Build(root *graph.Node) *Tree {
	if root == nil {
		return nil
	}
	visited := make(map[*graph.Node]bool)
	return walk(root, NoParent, visited)
}

func walk(n *graph.Node, parent string, visited map[*graph.Node]bool) *Tree {
	visited[n] = true
	t := &Tree{
		ID:       strconv.Itoa(n.ID()),
		Name:     n.Text(),
		Parent:   parent,
		Children: []*Tree{},
		Data:     Data{Week: n.Week()},
	}
	for _, c := range n.Children() {
		if visited[c] {
			continue
		}
		t.Children = append(t.Children, walk(c, t.Name, visited))
	}
	return t
}

// Count returns the number of nodes in t.
func (t *Tree) Count() int {
	if t == nil {
		return 0
	}
	n := 1
	for _, c := range t.Children {
		n += c.Count()
	}
	return n
}

// Depth returns the number of levels in t.
func (t *Tree) Depth() int {
	if t == nil {
		return 0
	}
	d := 0
	for _, c := range t.Children {
		d = max(d, c.Depth())
	}
	return d + 1
}

// WriteJSON encodes t to w.
func WriteJSON(t *Tree, w io.Writer) error {
	return cmio.EncodeJSON(w, t)
}

