// Package io provides the flat JSON node/path format of a concept map.
//
// # Overview
//
// The flat format is a plain list of the nodes and edges that survived the
// priority cutoff. It is what the original web front end consumed before the
// nested tree format existed, and it is still handy for tools that want a
// graph rather than a tree.
//
// # JSON Format
//
// The format has two top-level arrays. IDs are written as strings:
//
//	{
//	    "nodes": [
//	        {"name": "0", "label": "cs61a", "week": 99},
//	        {"name": "1", "label": "Recursion", "week": 3}
//	    ],
//	    "paths": [
//	        {"start": "0", "end": "1"}
//	    ]
//	}
//
// Nodes are listed in ascending ID order and paths in the view's edge order,
// so the synthetic root's paths come last.
//
// # Export
//
// Use [WriteFlat] to write a view to any io.Writer, or [ExportFlat] to write
// it to a file.
//
// # Import
//
// [ReadFlat] and [ImportFlat] turn a flat document back into a
// [source.Description]. The synthetic root and its paths are dropped because
// [graph.SynthesizeRoot] recreates them, so re-building the description with
// the widest cutoff reproduces the same IDs and edges.
//
// [source.Description]: github.com/matzehuels/conceptmap/pkg/source.Description
// [graph.SynthesizeRoot]: github.com/matzehuels/conceptmap/pkg/graph.SynthesizeRoot
package io
