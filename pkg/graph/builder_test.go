package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/matzehuels/conceptmap/pkg/diag"
)

type nodeSpec struct {
	id       int
	text     string
	priority Priority
}

func build(t *testing.T, cutoff Cutoff, nodes []nodeSpec, edges []EdgeRef) (*Builder, *diag.Log) {
	t.Helper()
	log := diag.New()
	b := NewBuilder(cutoff, log)
	for _, n := range nodes {
		if err := b.AddNode(n.id, n.text, n.priority, 10, "default"); err != nil {
			t.Fatalf("AddNode(%d): %v", n.id, err)
		}
	}
	if _, err := b.LinkEdges(edges); err != nil {
		t.Fatalf("LinkEdges: %v", err)
	}
	return b, log
}

func TestBuilder_FilteredViewHonorsCutoff(t *testing.T) {
	nodes := []nodeSpec{
		{1, "a", 1}, {2, "b", 2}, {3, "c", 3}, {4, "d", 4}, {5, "e", 5}, {7, "f", 3},
	}

	for c := MinPriority; c <= MaxPriority; c++ {
		cutoff := Cutoff(c)
		t.Run("cutoff "+cutoff.String(), func(t *testing.T) {
			b, _ := build(t, cutoff, nodes, nil)

			for _, n := range nodes {
				got := b.Filtered().Has(n.id)
				want := n.priority <= Priority(cutoff)
				if got != want {
					t.Errorf("filtered.Has(%d) = %v, want %v (priority %d)", n.id, got, want, n.priority)
				}
				if !b.Full().Has(n.id) {
					t.Errorf("full.Has(%d) = false, want true", n.id)
				}
			}
		})
	}
}

func TestBuilder_IndependentNodesPerView(t *testing.T) {
	b, _ := build(t, MaxCutoff, []nodeSpec{{1, "a", 1}}, nil)

	full, _ := b.Full().Node(1)
	filtered, _ := b.Filtered().Node(1)
	if full == filtered {
		t.Fatal("full and filtered views share the same *Node")
	}
	if full.Text() != filtered.Text() || full.Priority() != filtered.Priority() {
		t.Errorf("copies differ: %q/%d vs %q/%d", full.Text(), full.Priority(), filtered.Text(), filtered.Priority())
	}
}

func TestBuilder_GrowthIsMonotonic(t *testing.T) {
	log := diag.New()
	b := NewBuilder(3, log)

	_ = b.AddNode(4, "d", 1, 1, "x")
	if got := b.Full().Len(); got != 5 {
		t.Fatalf("Len() after id 4 = %d, want 5", got)
	}
	_ = b.AddNode(2, "b", 1, 1, "x")
	if got := b.Full().Len(); got != 5 {
		t.Errorf("Len() after lower id = %d, want 5", got)
	}
	_ = b.AddNode(9, "i", 5, 1, "x")
	if got, want := b.Full().Len(), 10; got != want {
		t.Errorf("full Len() = %d, want %d", got, want)
	}
	if got, want := b.Filtered().Len(), 10; got != want {
		t.Errorf("filtered Len() = %d, want %d", got, want)
	}
	if n, ok := b.Full().Node(4); !ok || n.Text() != "d" {
		t.Errorf("node 4 moved or vanished after growth")
	}
}

func TestBuilder_RejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name     string
		id       int
		priority Priority
		want     error
	}{
		{"negative id", -1, 1, ErrInvalidNodeID},
		{"reserved id", 0, 1, ErrReservedNodeID},
		{"id above bound", MaxNodeID + 1, 1, ErrInvalidNodeID},
		{"huge id", math.MaxInt, 1, ErrInvalidNodeID},
		{"priority too low", 3, 0, ErrInvalidPriority},
		{"priority too high", 3, 6, ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := diag.New()
			b := NewBuilder(MaxCutoff, log)
			err := b.AddNode(tt.id, "x", tt.priority, 1, "default")
			if !errors.Is(err, tt.want) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.want)
			}
			if log.Count(diag.LevelWarn) != 1 {
				t.Errorf("warnings = %d, want 1", log.Count(diag.LevelWarn))
			}
			if b.Full().NodeCount() != 0 {
				t.Errorf("rejected record was stored")
			}
			if b.Full().Len() != 0 || b.Filtered().Len() != 0 {
				t.Errorf("views grew to %d/%d slots for a rejected record", b.Full().Len(), b.Filtered().Len())
			}
		})
	}
}

func TestBuilder_RejectsDuplicate(t *testing.T) {
	b := NewBuilder(MaxCutoff, nil)
	if err := b.AddNode(1, "first", 1, 1, "a"); err != nil {
		t.Fatal(err)
	}
	if err := b.AddNode(1, "second", 1, 1, "a"); !errors.Is(err, ErrDuplicateNodeID) {
		t.Fatalf("AddNode() error = %v, want ErrDuplicateNodeID", err)
	}
	n, _ := b.Full().Node(1)
	if n.Text() != "first" {
		t.Errorf("Text() = %q, want first", n.Text())
	}
}

func TestBuilder_LinkEdges(t *testing.T) {
	nodes := []nodeSpec{{1, "a", 1}, {2, "b", 2}, {3, "c", 5}, {5, "e", 1}}
	edges := []EdgeRef{
		{1, 2},  // both views
		{1, 3},  // full only: 3 is above cutoff
		{2, 99}, // out of range
		{1, 4},  // in range but absent
		{5, 1},  // both views
	}

	b, log := build(t, 3, nodes, edges)

	if got, want := refs(b.Full()), []EdgeRef{{1, 2}, {1, 3}, {5, 1}}; !equalRefs(got, want) {
		t.Errorf("full edges = %v, want %v", got, want)
	}
	if got, want := refs(b.Filtered()), []EdgeRef{{1, 2}, {5, 1}}; !equalRefs(got, want) {
		t.Errorf("filtered edges = %v, want %v", got, want)
	}

	for _, e := range b.Filtered().Edges() {
		if !b.Filtered().Has(e.From.ID()) || !b.Filtered().Has(e.To.ID()) {
			t.Errorf("filtered edge %v has endpoint outside the filtered view", e.Ref())
		}
	}

	full1, _ := b.Full().Node(1)
	if got := len(full1.Children()); got != 2 {
		t.Errorf("full node 1 children = %d, want 2", got)
	}
	filtered1, _ := b.Filtered().Node(1)
	if got := len(filtered1.Children()); got != 1 {
		t.Errorf("filtered node 1 children = %d, want 1", got)
	}

	if !log.Contains("Path 2 to 99 refers to undefined node(s)") {
		t.Error("missing diagnostic for out-of-range edge")
	}
	if !log.Contains("Path 1 to 4 refers to undefined node(s)") {
		t.Error("missing diagnostic for absent endpoint")
	}
	if !log.Contains("Path 1 to 3 omitted from filtered view") {
		t.Error("missing diagnostic for filtered-only omission")
	}
}

func TestBuilder_LinkEdgesStats(t *testing.T) {
	b := NewBuilder(2, nil)
	_ = b.AddNode(1, "a", 1, 1, "x")
	_ = b.AddNode(2, "b", 4, 1, "x")

	stats, err := b.LinkEdges([]EdgeRef{{1, 2}, {2, 1}, {1, 7}})
	if err != nil {
		t.Fatal(err)
	}
	want := LinkStats{Full: 2, Filtered: 0, Dangling: 1, Omitted: 2}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	if _, err := b.LinkEdges(nil); !errors.Is(err, ErrAlreadyLinked) {
		t.Errorf("second LinkEdges() error = %v, want ErrAlreadyLinked", err)
	}
}

func TestBuilder_DuplicateEdgesKept(t *testing.T) {
	b, _ := build(t, MaxCutoff, []nodeSpec{{1, "a", 1}, {2, "b", 1}}, []EdgeRef{{1, 2}, {1, 2}})

	n1, _ := b.Full().Node(1)
	if got := len(n1.Children()); got != 2 {
		t.Errorf("children = %d, want 2 (duplicates kept)", got)
	}
	n2, _ := b.Full().Node(2)
	if got := n2.ParentCount(); got != 1 {
		t.Errorf("ParentCount() = %d, want 1 (parents are a set)", got)
	}
}

func refs(v *View) []EdgeRef { return v.EdgeRefs() }

func equalRefs(a, b []EdgeRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuilder_AcceptsMaxNodeID(t *testing.T) {
	b := NewBuilder(MaxCutoff, nil)
	if err := b.AddNode(MaxNodeID, "Last", 1, 1, "default"); err != nil {
		t.Fatalf("AddNode(MaxNodeID): %v", err)
	}
	if !b.Full().Has(MaxNodeID) || !b.Filtered().Has(MaxNodeID) {
		t.Error("node at MaxNodeID missing from a view")
	}
}
