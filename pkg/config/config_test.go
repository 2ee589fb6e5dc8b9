package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/source"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "conceptmap.toml", `
cutoff = 3
format = "flat"
legacy = true
input_dir = "maps"
output_dir = "out"
render = ["svg", "png"]

[styles.default]
shape = "box"
style = "filled"
fillcolor = "white"

[styles.core]
shape = "ellipse"
style = "bold"
fillcolor = "#ffcc00"

[serve]
addr = ":9090"
`)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := &Config{
		Cutoff:    3,
		Format:    "flat",
		Legacy:    true,
		InputDir:  "maps",
		OutputDir: "out",
		Render:    []string{"svg", "png"},
		Styles: map[string]source.Style{
			"default": {Shape: "box", Style: "filled", FillColor: "white"},
			"core":    {Shape: "ellipse", Style: "bold", FillColor: "#ffcc00"},
		},
		Serve: Serve{Addr: ":9090"},
		Path:  path,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "cutoff = ", errors.ErrCodeInvalidConfig},
		{"unknown key", "cutof = 3", errors.ErrCodeInvalidConfig},
		{"cutoff range", "cutoff = 9", errors.ErrCodeInvalidConfig},
		{"wrong type", `cutoff = "three"`, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".toml", tt.content)
			_, err := Load(path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}

	_, err := Load(filepath.Join(dir, "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(absent) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	c, err := Discover("")
	if err != nil {
		t.Fatalf("Discover() without file error: %v", err)
	}
	if c.Path != "" || c.Cutoff != 0 {
		t.Errorf("Discover() without file = %+v, want empty config", c)
	}

	writeFile(t, dir, DefaultFile, "cutoff = 2\n")
	c, err = Discover("")
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if c.Cutoff != 2 || c.Path != DefaultFile {
		t.Errorf("Discover() = %+v, want cutoff 2 from %s", c, DefaultFile)
	}

	other := writeFile(t, dir, "other.toml", "cutoff = 4\n")
	c, err = Discover(other)
	if err != nil {
		t.Fatal(err)
	}
	if c.Cutoff != 4 {
		t.Errorf("Discover(explicit) cutoff = %d, want 4", c.Cutoff)
	}
}
