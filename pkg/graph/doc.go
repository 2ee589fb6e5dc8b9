// Package graph builds the two parallel views of a concept map.
//
// # Overview
//
// A concept map is a directed graph of numbered nodes. Each node carries a
// display text, a priority level (1 = most important, 5 = least), a week
// number and a style tag. The package keeps two independent [View] values for
// the same input:
//
//   - the full view holds every node that was accepted from the input
//   - the filtered view holds only nodes whose priority is within the [Cutoff]
//
// Both views are index addressed: slot i holds node i or nothing. Relation sets
// are never shared between views, so traversal order in one view is not
// affected by edges that only exist in the other.
//
// # Building
//
// Use a [Builder] to add nodes and then link the raw edge list once:
//
//	b := graph.NewBuilder(cutoff, log)
//	b.AddNode(1, "Topic", 1, 12, "primary")
//	b.AddNode(2, "Detail", 4, 13, "secondary")
//	b.LinkEdges([]graph.EdgeRef{{From: 1, To: 2}})
//
// An edge is always linked in the full view when both endpoints exist there,
// even when the filtered view rejects it. Rejections are recorded in the
// [diag.Log] passed to the builder.
//
// # Rooting
//
// [SynthesizeRoot] turns a view into a single rooted structure by hanging
// every parentless node under a generated root stored in slot 0. Slot 0 is
// reserved for that root: [Builder.AddNode] refuses input node 0.
//
// # Concurrency
//
// Views and builders are not safe for concurrent use.
package graph
