package io

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/graph"
	"github.com/matzehuels/conceptmap/pkg/source"
)

// FlatStyle is the style given to the default class of a re-ingested flat
// document, which carries no style table of its own.
var FlatStyle = source.Style{Shape: "box", Style: "rounded", FillColor: "white"}

// ReadFlat decodes a flat document from r into a description.
//
// Every node gets [graph.MinPriority] and [graph.DefaultClass], since the
// flat format carries neither. The root record (ID 0) and paths starting at
// it are skipped. ReadFlat does not close r.
func ReadFlat(r io.Reader) (*source.Description, error) {
	var data flat
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode flat document")
	}

	d := &source.Description{
		Rankdir: source.DefaultRankdir,
		Styles:  map[string]source.Style{graph.DefaultClass: FlatStyle},
		Nodes:   make([]source.NodeRecord, 0, len(data.Nodes)),
	}
	for i, n := range data.Nodes {
		id, err := strconv.Atoi(n.Name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d: bad name %q", i, n.Name)
		}
		if id == graph.RootID {
			continue
		}
		d.Nodes = append(d.Nodes, source.NodeRecord{
			ID:       id,
			Label:    n.Label,
			Priority: graph.MinPriority,
			Week:     n.Week,
			Class:    graph.DefaultClass,
		})
	}
	for i, p := range data.Paths {
		start, err := strconv.Atoi(p.Start)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "path %d: bad start %q", i, p.Start)
		}
		end, err := strconv.Atoi(p.End)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "path %d: bad end %q", i, p.End)
		}
		if start == graph.RootID {
			continue
		}
		d.Edges = append(d.Edges, graph.EdgeRef{From: start, To: end})
	}
	return d, nil
}

// ImportFlat reads a flat JSON file at path.
func ImportFlat(path string) (*source.Description, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadFlat(f)
}
