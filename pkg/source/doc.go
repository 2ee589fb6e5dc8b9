// Package source decodes concept-map descriptions into raw records.
//
// Two formats are supported and both produce a [Description]:
//
//   - [ReadJSON] decodes the structured description (the "_DTM.json" file)
//     with required top-level keys rankdir, styles, nodes and edges.
//   - [ReadLegacy] parses the older line grammar in which each node is a
//     priority/date header comment followed by a node definition line.
//
// A reader does no graph validation of its own. Records are handed to
// [graph.Builder] in input order, which decides what is admitted. Structural
// decode failures are fatal and reported as INVALID_INPUT errors; malformed
// legacy line pairs are recorded in the diagnostics log and skipped.
//
// [graph.Builder]: github.com/matzehuels/conceptmap/pkg/graph.Builder
package source
