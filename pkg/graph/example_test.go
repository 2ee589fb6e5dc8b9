package graph_test

import (
	"fmt"

	"github.com/matzehuels/conceptmap/pkg/diag"
	"github.com/matzehuels/conceptmap/pkg/graph"
)

func Example() {
	b := graph.NewBuilder(3, diag.New())
	b.AddNode(1, "Syllabus", 1, 1, "topic")
	b.AddNode(2, "Recursion", 2, 3, "concept")
	b.AddNode(3, "Tail calls", 5, 4, "detail")
	b.LinkEdges([]graph.EdgeRef{{From: 1, To: 2}, {From: 2, To: 3}})

	graph.SynthesizeRoot(b.Full(), "cs61a")
	graph.SynthesizeRoot(b.Filtered(), "cs61a")

	fmt.Println("full:", b.Full().NodeCount(), "nodes,", b.Full().EdgeCount(), "edges")
	fmt.Println("filtered:", b.Filtered().NodeCount(), "nodes,", b.Filtered().EdgeCount(), "edges")
	// Output:
	// full: 4 nodes, 3 edges
	// filtered: 3 nodes, 2 edges
}
