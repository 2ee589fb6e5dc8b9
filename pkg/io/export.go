package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/conceptmap/pkg/graph"
)

// Indent is the indentation used for every JSON artifact.
const Indent = "    "

type flat struct {
	Nodes []node `json:"nodes"`
	Paths []path `json:"paths"`
}

type node struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Week  int    `json:"week"`
}

type path struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WriteFlat encodes the present nodes and resolved edges of v to w.
func WriteFlat(v *graph.View, w io.Writer) error {
	out := flat{
		Nodes: make([]node, 0, v.NodeCount()),
		Paths: make([]path, 0, v.EdgeCount()),
	}
	for _, n := range v.Nodes() {
		out.Nodes = append(out.Nodes, node{
			Name:  strconv.Itoa(n.ID()),
			Label: n.Text(),
			Week:  n.Week(),
		})
	}
	for _, e := range v.Edges() {
		out.Paths = append(out.Paths, path{
			Start: strconv.Itoa(e.From.ID()),
			End:   strconv.Itoa(e.To.ID()),
		})
	}
	return EncodeJSON(w, out)
}

// ExportFlat writes v to a flat JSON file at path.
// This is a convenience wrapper around [WriteFlat] for file-based output.
func ExportFlat(v *graph.View, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteFlat(v, f)
}

// EncodeJSON writes v to w with the artifact indentation and without HTML
// escaping, so labels are kept as written.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", Indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
