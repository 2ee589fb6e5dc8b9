package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/graph"
)

type document struct {
	Rankdir json.RawMessage `json:"rankdir"`
	Styles  json.RawMessage `json:"styles"`
	Nodes   json.RawMessage `json:"nodes"`
	Edges   json.RawMessage `json:"edges"`
}

type nodeJSON struct {
	Name     *int    `json:"name"`
	Label    *string `json:"label"`
	Priority *int    `json:"priority"`
	Week     *int    `json:"week"`
	Class    *string `json:"class"`
}

type edgeJSON struct {
	From *int   `json:"from"`
	To   *[]int `json:"to"`
}

// ReadJSON decodes a structured description from r.
//
// The keys rankdir, styles, nodes and edges are required, as is every field
// of every node record and the from and to fields of every edge record. An edge
// record expands to one edge per entry of its to list, in list order.
func ReadJSON(r io.Reader) (*Description, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode description")
	}

	for _, k := range []struct {
		name string
		raw  json.RawMessage
	}{
		{"rankdir", doc.Rankdir},
		{"styles", doc.Styles},
		{"nodes", doc.Nodes},
		{"edges", doc.Edges},
	} {
		if len(k.raw) == 0 || string(k.raw) == "null" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "description is missing required key %q", k.name)
		}
	}

	d := &Description{}
	if err := json.Unmarshal(doc.Rankdir, &d.Rankdir); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode rankdir")
	}
	if err := json.Unmarshal(doc.Styles, &d.Styles); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode styles")
	}

	var nodes []nodeJSON
	if err := json.Unmarshal(doc.Nodes, &nodes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode nodes")
	}
	d.Nodes = make([]NodeRecord, 0, len(nodes))
	for i, n := range nodes {
		rec, err := n.record()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node record %d", i)
		}
		d.Nodes = append(d.Nodes, rec)
	}

	var edges []edgeJSON
	if err := json.Unmarshal(doc.Edges, &edges); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode edges")
	}
	for i, e := range edges {
		if e.From == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge record %d: missing \"from\"", i)
		}
		if e.To == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge record %d: missing \"to\"", i)
		}
		for _, to := range *e.To {
			d.Edges = append(d.Edges, graph.EdgeRef{From: *e.From, To: to})
		}
	}
	return d, nil
}

func (n nodeJSON) record() (NodeRecord, error) {
	switch {
	case n.Name == nil:
		return NodeRecord{}, fmt.Errorf("missing %q", "name")
	case n.Label == nil:
		return NodeRecord{}, fmt.Errorf("missing %q", "label")
	case n.Priority == nil:
		return NodeRecord{}, fmt.Errorf("missing %q", "priority")
	case n.Week == nil:
		return NodeRecord{}, fmt.Errorf("missing %q", "week")
	case n.Class == nil:
		return NodeRecord{}, fmt.Errorf("missing %q", "class")
	}
	return NodeRecord{
		ID:       *n.Name,
		Label:    *n.Label,
		Priority: graph.Priority(*n.Priority),
		Week:     *n.Week,
		Class:    *n.Class,
	}, nil
}

// ImportJSON reads a structured description from a file.
func ImportJSON(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
