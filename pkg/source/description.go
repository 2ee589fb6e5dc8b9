package source

import (
	"maps"
	"slices"

	"github.com/matzehuels/conceptmap/pkg/graph"
)

// Style is the set of Graphviz attributes a style tag resolves to.
type Style struct {
	Shape     string `json:"shape" toml:"shape"`
	Style     string `json:"style" toml:"style"`
	FillColor string `json:"fillcolor" toml:"fillcolor"`
}

// NodeRecord is one node as read from input, before admission.
type NodeRecord struct {
	ID       int
	Label    string
	Priority graph.Priority
	Week     int
	Class    string
}

// Description is the decoded form of one input file.
type Description struct {
	Rankdir string
	Styles  map[string]Style
	Nodes   []NodeRecord
	Edges   []graph.EdgeRef
}

// MergeStyles fills in styles for tags the description does not define.
// Tags already present keep their value.
func (d *Description) MergeStyles(extra map[string]Style) {
	if len(extra) == 0 {
		return
	}
	if d.Styles == nil {
		d.Styles = make(map[string]Style, len(extra))
	}
	for tag, s := range extra {
		if _, ok := d.Styles[tag]; !ok {
			d.Styles[tag] = s
		}
	}
}

// StyleTags returns the defined tags in sorted order.
func (d *Description) StyleTags() []string {
	return slices.Sorted(maps.Keys(d.Styles))
}

// Build feeds every record into b in input order and links the edges.
// Rejected records are logged by the builder and do not stop the build.
// Build fails with [graph.ErrAlreadyLinked] when b has been built before.
func (d *Description) Build(b *graph.Builder) (graph.LinkStats, int, error) {
	accepted := 0
	for _, n := range d.Nodes {
		if err := b.AddNode(n.ID, n.Label, n.Priority, n.Week, n.Class); err == nil {
			accepted++
		}
	}
	stats, err := b.LinkEdges(d.Edges)
	if err != nil {
		return graph.LinkStats{}, accepted, err
	}
	return stats, accepted, nil
}
