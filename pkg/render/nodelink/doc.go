// Package nodelink renders the full concept map as a Graphviz node-link
// diagram.
//
// # Overview
//
// [ToDOT] emits DOT text for every node and edge of a view, with each node's
// shape, style and fill color resolved from the style table by the node's
// class. It is always given the full view: the diagram shows everything
// regardless of the priority cutoff.
//
// # Usage
//
//	dot, err := nodelink.ToDOT(full, nodelink.Options{Rankdir: "LR", Styles: styles})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # DOT Format
//
// The output is line oriented:
//
//	digraph G {
//		rankdir = LR
//		node1[label = "Recursion", shape = box, style = filled, fillcolor = "white"];
//		node0 -> node1;
//	}
//
// A class with no entry in the style table is a fatal MISSING_STYLE error;
// there is no fallback style.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and PNG
// rendering. No external Graphviz installation is needed.
package nodelink
