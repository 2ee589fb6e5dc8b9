package graph

import "testing"

func TestNode_Accessors(t *testing.T) {
	n := NewNode(7, "Label", 3, 21, "primary")

	if n.ID() != 7 || n.Text() != "Label" || n.Priority() != 3 || n.Week() != 21 || n.Class() != "primary" {
		t.Errorf("accessors returned %d %q %d %d %q", n.ID(), n.Text(), n.Priority(), n.Week(), n.Class())
	}
	if !n.IsRoot() {
		t.Error("new node should have no parents")
	}
}

func TestNode_Relations(t *testing.T) {
	a := NewNode(1, "a", 1, 0, "")
	b := NewNode(2, "b", 1, 0, "")
	c := NewNode(3, "c", 1, 0, "")

	a.AddChild(c)
	a.AddChild(b)
	a.AddChild(c)

	if got, want := childIDs(a), []int{3, 2, 3}; !equalInts(got, want) {
		t.Errorf("Children() = %v, want %v", got, want)
	}

	c.AddParent(b)
	c.AddParent(a)
	c.AddParent(b)
	if got := c.ParentCount(); got != 2 {
		t.Errorf("ParentCount() = %d, want 2", got)
	}
	ps := c.Parents()
	if len(ps) != 2 || ps[0] != a || ps[1] != b {
		t.Errorf("Parents() not ordered by ID")
	}
}

func TestParseCutoff(t *testing.T) {
	tests := []struct {
		in      string
		want    Cutoff
		wantErr bool
	}{
		{"1", 1, false},
		{"5", 5, false},
		{"3", 3, false},
		{"0", 0, true},
		{"6", 0, true},
		{"x", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseCutoff(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCutoff(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCutoff(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCutoff_Admits(t *testing.T) {
	c := Cutoff(3)
	for p, want := range map[Priority]bool{0: true, 1: true, 3: true, 4: false, 5: false} {
		if got := c.Admits(p); got != want {
			t.Errorf("Cutoff(3).Admits(%d) = %v, want %v", p, got, want)
		}
	}
}
