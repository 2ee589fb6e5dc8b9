// Package render groups the output renderers of a concept map.
//
// # Overview
//
// A built concept map has two views. Each renderer consumes exactly one:
//
//   - [tree] serializes the filtered view as the nested JSON tree read by the
//     d3 tree front end.
//   - [nodelink] writes the full view as DOT text and lays it out to SVG or
//     PNG with Graphviz.
//
// The flat node/path list lives in the io package because it can also be
// read back.
//
// [tree]: github.com/matzehuels/conceptmap/pkg/render/tree
// [nodelink]: github.com/matzehuels/conceptmap/pkg/render/nodelink
package render
