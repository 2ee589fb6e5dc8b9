package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/matzehuels/conceptmap/pkg/config"
	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/pipeline"
	"github.com/matzehuels/conceptmap/pkg/source"
)

const sampleMap = `{
	"rankdir": "TB",
	"styles": {"default": {"shape": "box", "style": "filled", "fillcolor": "white"}},
	"nodes": [
		{"name": 1, "label": "Functions", "priority": 1, "week": 1, "class": "default"},
		{"name": 2, "label": "Higher order", "priority": 3, "week": 2, "class": "default"}
	],
	"edges": [{"from": 1, "to": [2, 9]}]
}`

func writeSample(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+pipeline.InputSuffix), []byte(sampleMap), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,png", []string{"svg", "png"}},
		{"blanks dropped", " svg, ,png ", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestPipelineOptionsPrecedence(t *testing.T) {
	cfg := &config.Config{
		Format:    pipeline.FormatFlat,
		InputDir:  "maps",
		OutputDir: "public",
		Render:    []string{"png"},
		Styles:    map[string]source.Style{"extra": {Shape: "oval"}},
	}

	tests := []struct {
		name string
		args []string
		want pipeline.Options
	}{
		{
			name: "config only",
			want: pipeline.Options{
				Name: "cs", Cutoff: 3, Format: pipeline.FormatFlat,
				InputDir: "maps", OutputDir: "public", Render: []string{"png"},
			},
		},
		{
			name: "flags win",
			args: []string{"--format", "tree", "--output-dir", "out", "--render", "svg", "--legacy"},
			want: pipeline.Options{
				Name: "cs", Cutoff: 3, Format: pipeline.FormatTree, Source: pipeline.SourceLegacy,
				InputDir: "maps", OutputDir: "out", Render: []string{"svg"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o convertOpts
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			o.bind(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}

			got, err := o.pipelineOptions(fs, cfg, "cs", "3")
			if err != nil {
				t.Fatalf("pipelineOptions() error: %v", err)
			}
			got.Styles = nil
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(pipeline.Options{})); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPipelineOptionsDefaults(t *testing.T) {
	var o convertOpts
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.bind(fs)
	_ = fs.Parse(nil)

	got, err := o.pipelineOptions(fs, &config.Config{}, "cs", "5")
	if err != nil {
		t.Fatal(err)
	}
	if got.Format != pipeline.DefaultFormat || got.InputDir != pipeline.DefaultDir || got.OutputDir != pipeline.DefaultDir {
		t.Errorf("defaults not applied: %+v", got)
	}
	if got.Render != nil {
		t.Errorf("Render = %v, want none", got.Render)
	}
}

func TestPipelineOptionsInvalidArgs(t *testing.T) {
	tests := []struct {
		name, mapName, cutoff string
		code                  errors.Code
	}{
		{"cutoff too high", "cs", "6", errors.ErrCodeInvalidCutoff},
		{"cutoff zero", "cs", "0", errors.ErrCodeInvalidCutoff},
		{"cutoff text", "cs", "high", errors.ErrCodeInvalidCutoff},
		{"unsafe name", "../cs", "3", errors.ErrCodeInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o convertOpts
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			o.bind(fs)
			_, err := o.pipelineOptions(fs, &config.Config{}, tt.mapName, tt.cutoff)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRootCommandConverts(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeSample(t, dir, "cs")

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"cs", "2", "--input-dir", dir, "--output-dir", dir, "--format", "flat"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	for _, name := range []string{"cs.json", "cs_DTP_DOT.dot", "cs_DTP_log.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}

	data, _ := os.ReadFile(filepath.Join(dir, "cs.json"))
	if strings.Contains(string(data), "Higher order") {
		t.Error("node above the cutoff in flat output")
	}
	if !strings.Contains(logs.String(), "Path 1 to 9 refers to undefined node(s)") {
		t.Errorf("diagnostics not echoed:\n%s", logs.String())
	}
}

func TestRootCommandErrors(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad cutoff", []string{"cs", "9", "--input-dir", dir, "--output-dir", dir}, errors.ErrCodeInvalidCutoff},
		{"missing input", []string{"nothing", "3", "--input-dir", dir, "--output-dir", dir}, errors.ErrCodeFileNotFound},
		{"bad format", []string{"cs", "3", "--format", "xml", "--output-dir", dir}, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			root := New(&logs, LogInfo).RootCommand()
			root.SetArgs(tt.args)
			if err := root.Execute(); !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want code %s", err, tt.code)
			}
		})
	}

	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs([]string{"only-name"})
	if err := root.Execute(); err == nil {
		t.Error("Execute() with one argument should fail")
	}
}

func TestRootCommandConfigFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeSample(t, dir, "cs")

	cfgPath := filepath.Join(dir, "conceptmap.toml")
	cfg := "format = \"flat\"\ninput_dir = \"" + filepath.ToSlash(dir) + "\"\noutput_dir = \"" + filepath.ToSlash(dir) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs([]string{"cs", "5", "--config", cfgPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "cs.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"paths"`) {
		t.Errorf("config format not applied:\n%s", data)
	}
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	dot := filepath.Join(dir, "cs_DTP_DOT.dot")
	if err := os.WriteFile(dot, []byte("digraph G {\n\tnode1 -> node2;\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs([]string{"render", dot, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render error: %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "cs_DTP_DOT.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}

	root = New(&logs, LogInfo).RootCommand()
	root.SetArgs([]string{"render", dot, "--format", "pdf"})
	if err := root.Execute(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("render --format pdf error = %v, want INVALID_FORMAT", err)
	}
}
