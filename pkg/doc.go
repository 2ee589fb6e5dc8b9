// Package pkg provides the libraries behind the conceptmap command.
//
// # Overview
//
// conceptmap turns a concept-map description (nodes with a priority, a week
// and a style class, plus edges) into a rooted tree for the d3 front end and a
// Graphviz diagram of the whole map. Nodes above a priority cutoff are hidden
// from the tree but always drawn in the diagram.
//
// # Architecture
//
//	_DTM.json / legacy .dot
//	         ↓
//	    [source] (decode records)
//	         ↓
//	    [graph] (full + filtered views, synthetic roots)
//	         ↓
//	    [render/tree], [io], [render/nodelink]
//	         ↓
//	    <name>.json, <name>_DTP_DOT.dot, SVG/PNG, <name>_DTP_log.txt
//
// [pipeline] runs these steps for one map and [diag] collects the anomalies
// found along the way. [config] supplies defaults from conceptmap.toml,
// [cache] keeps rendered images and [httputil] backs the serve command.
//
// [source]: github.com/matzehuels/conceptmap/pkg/source
// [graph]: github.com/matzehuels/conceptmap/pkg/graph
// [render/tree]: github.com/matzehuels/conceptmap/pkg/render/tree
// [render/nodelink]: github.com/matzehuels/conceptmap/pkg/render/nodelink
// [io]: github.com/matzehuels/conceptmap/pkg/io
// [pipeline]: github.com/matzehuels/conceptmap/pkg/pipeline
// [diag]: github.com/matzehuels/conceptmap/pkg/diag
// [config]: github.com/matzehuels/conceptmap/pkg/config
// [cache]: github.com/matzehuels/conceptmap/pkg/cache
// [httputil]: github.com/matzehuels/conceptmap/pkg/httputil
package pkg
