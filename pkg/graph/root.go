package graph

const (
	// WeekCeiling is the week assigned to synthetic roots. It lies above any
	// real week so the root sorts after every dated node.
	WeekCeiling = 99

	// DefaultClass is the style tag of synthetic roots.
	DefaultClass = "default"

	// RootID is the slot that holds the synthetic root.
	RootID = 0
)

// SynthesizeRoot hangs every parentless node of v under a new root named
// name, stores the root in slot 0 and returns it.
//
// The root gains a child and an edge for each former root, and each former
// root gains the new root as its only parent. Afterwards the new root is the
// only parentless node in v. Whatever occupied slot 0 is replaced.
func SynthesizeRoot(v *View, name string) *Node {
	orphans := v.Roots()

	root := NewNode(RootID, name, RootPriority, WeekCeiling, DefaultClass)
	v.set(root)

	for _, n := range orphans {
		if n == root {
			continue
		}
		v.link(root, n)
	}
	return root
}
