package source

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/graph"
)

const sampleJSON = `{
	"rankdir": "LR",
	"styles": {
		"default": {"shape": "box", "style": "filled", "fillcolor": "white"},
		"core": {"shape": "ellipse", "style": "bold", "fillcolor": "#ffcc00"}
	},
	"nodes": [
		{"name": 1, "label": "Recursion", "priority": 1, "week": 3, "class": "core"},
		{"name": 2, "label": "Base case", "priority": 3, "week": 3, "class": "default"},
		{"name": 3, "label": "Trees", "priority": 5, "week": 6, "class": "default"},
		{"name": 4, "label": "Memoization", "priority": 2, "week": 7, "class": "core"}
	],
	"edges": [
		{"from": 1, "to": [2, 3]},
		{"from": 4, "to": [1]},
		{"from": 2, "to": []}
	]
}`

func TestReadJSON(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	want := &Description{
		Rankdir: "LR",
		Styles: map[string]Style{
			"default": {Shape: "box", Style: "filled", FillColor: "white"},
			"core":    {Shape: "ellipse", Style: "bold", FillColor: "#ffcc00"},
		},
		Nodes: []NodeRecord{
			{ID: 1, Label: "Recursion", Priority: 1, Week: 3, Class: "core"},
			{ID: 2, Label: "Base case", Priority: 3, Week: 3, Class: "default"},
			{ID: 3, Label: "Trees", Priority: 5, Week: 6, Class: "default"},
			{ID: 4, Label: "Memoization", Priority: 2, Week: 7, Class: "core"},
		},
		Edges: []graph.EdgeRef{{From: 1, To: 2}, {From: 1, To: 3}, {From: 4, To: 1}},
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("ReadJSON() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSON_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `not json`},
		{"missing rankdir", `{"styles": {}, "nodes": [], "edges": []}`},
		{"missing styles", `{"rankdir": "TB", "nodes": [], "edges": []}`},
		{"missing nodes", `{"rankdir": "TB", "styles": {}, "edges": []}`},
		{"missing edges", `{"rankdir": "TB", "styles": {}, "nodes": []}`},
		{"null nodes", `{"rankdir": "TB", "styles": {}, "nodes": null, "edges": []}`},
		{"nodes not a list", `{"rankdir": "TB", "styles": {}, "nodes": {}, "edges": []}`},
		{"node missing label", `{"rankdir": "TB", "styles": {}, "nodes": [{"name": 1, "priority": 1, "week": 1, "class": "a"}], "edges": []}`},
		{"node missing class", `{"rankdir": "TB", "styles": {}, "nodes": [{"name": 1, "label": "x", "priority": 1, "week": 1}], "edges": []}`},
		{"string id", `{"rankdir": "TB", "styles": {}, "nodes": [{"name": "1", "label": "x", "priority": 1, "week": 1, "class": "a"}], "edges": []}`},
		{"edge missing from", `{"rankdir": "TB", "styles": {}, "nodes": [], "edges": [{"to": [1]}]}`},
		{"edge missing to", `{"rankdir": "TB", "styles": {}, "nodes": [], "edges": [{"from": 1}]}`},
		{"edge null to", `{"rankdir": "TB", "styles": {}, "nodes": [], "edges": [{"from": 1, "to": null}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadJSON() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestImportJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map_DTM.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if len(d.Nodes) != 4 {
		t.Errorf("len(Nodes) = %d, want 4", len(d.Nodes))
	}

	_, err = ImportJSON(filepath.Join(dir, "missing_DTM.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON(missing) code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestDescription_MergeStyles(t *testing.T) {
	d := &Description{Styles: map[string]Style{"default": {Shape: "box"}}}
	d.MergeStyles(map[string]Style{
		"default": {Shape: "circle"},
		"extra":   {Shape: "diamond"},
	})

	want := map[string]Style{
		"default": {Shape: "box"},
		"extra":   {Shape: "diamond"},
	}
	if diff := cmp.Diff(want, d.Styles); diff != "" {
		t.Errorf("MergeStyles() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"default", "extra"}, d.StyleTags()); diff != "" {
		t.Errorf("StyleTags() mismatch (-want +got):\n%s", diff)
	}

	empty := &Description{}
	empty.MergeStyles(map[string]Style{"a": {}})
	if len(empty.Styles) != 1 {
		t.Errorf("MergeStyles on nil table: got %d styles, want 1", len(empty.Styles))
	}
}

func TestDescription_Build(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	d.Nodes = append(d.Nodes, NodeRecord{ID: 0, Label: "bad", Priority: 1, Class: "default"})

	b := graph.NewBuilder(3, nil)
	stats, accepted, err := d.Build(b)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if accepted != 4 {
		t.Errorf("accepted = %d, want 4", accepted)
	}
	want := graph.LinkStats{Full: 3, Filtered: 2, Omitted: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	if _, _, err := d.Build(b); !stderrors.Is(err, graph.ErrAlreadyLinked) {
		t.Errorf("second Build() error = %v, want %v", err, graph.ErrAlreadyLinked)
	}
}
