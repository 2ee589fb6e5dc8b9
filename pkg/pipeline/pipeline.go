// Package pipeline runs one concept map from input file to output artifacts.
//
// This package implements the complete read → build → render → write
// pipeline used by both the CLI and the HTTP server. By centralizing this
// logic, both entry points produce identical artifacts and diagnostics.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Read: Decode the input description (JSON, legacy grammar or flat JSON)
//  2. Build: Populate the full and filtered views and synthesize their roots
//  3. Render: Serialize the tree or flat JSON, the DOT text and any images
//  4. Write: Emit every artifact and the diagnostics log to the output dir
//
// Recoverable anomalies are collected in a [diag.Log] that is written to
// <name>_DTP_log.txt at the end of the run, also when the run fails.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Name:   "cs61a",
//	    Cutoff: 3,
//	    Render: []string{"svg"},
//	})
//
// [Runner.Run] performs the first three stages in memory without touching
// the output directory.
//
// [diag.Log]: github.com/matzehuels/conceptmap/pkg/diag.Log
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/conceptmap/pkg/cache"
	"github.com/matzehuels/conceptmap/pkg/diag"
	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/graph"
	"github.com/matzehuels/conceptmap/pkg/render/nodelink"
	"github.com/matzehuels/conceptmap/pkg/render/tree"
	"github.com/matzehuels/conceptmap/pkg/source"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultCutoff admits every node.
	DefaultCutoff = int(graph.MaxCutoff)

	// DefaultFormat is the default primary JSON format.
	DefaultFormat = FormatTree

	// DefaultSource is the default input format.
	DefaultSource = SourceJSON

	// DefaultDir is used for unset input and output directories.
	DefaultDir = "."
)

// Primary JSON formats.
const (
	FormatTree = "tree"
	FormatFlat = "flat"
)

// Input formats.
const (
	SourceJSON   = "json"
	SourceLegacy = "legacy"
	SourceFlat   = "flat"
)

// Artifact keys in [Result.Artifacts].
const (
	ArtifactJSON = "json"
	ArtifactDOT  = "dot"
)

// File name suffixes.
const (
	InputSuffix  = "_DTM.json"
	LegacySuffix = ".dot"
	JSONSuffix   = ".json"
	DOTSuffix    = "_DTP_DOT.dot"
	ImageInfix   = "_DTP_DOT."
	LogSuffix    = "_DTP_log.txt"
)

// ValidFormats is the set of supported primary JSON formats.
var ValidFormats = map[string]bool{
	FormatTree: true,
	FormatFlat: true,
}

// ValidSources is the set of supported input formats.
var ValidSources = map[string]bool{
	SourceJSON:   true,
	SourceLegacy: true,
	SourceFlat:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one run.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Name is the run name. It selects the input file and names every output.
	Name string `json:"name"`
	// Cutoff is the inclusive maximum priority shown in the tree.
	Cutoff int `json:"cutoff,omitempty"`
	// Format selects the primary JSON output: "tree" or "flat".
	Format string `json:"format,omitempty"`
	// Source selects the input format: "json", "legacy" or "flat".
	Source string `json:"source,omitempty"`

	InputDir  string `json:"-"`
	OutputDir string `json:"-"`
	// Input overrides the input path derived from InputDir and Name.
	Input string `json:"-"`

	// Render lists image formats to produce from the DOT text.
	Render []string `json:"render,omitempty"`
	// Styles fill in style tags the input does not define.
	Styles map[string]source.Style `json:"-"`
	// Refresh bypasses the render cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Description is the decoded input.
	Description *source.Description

	// Full and Filtered are the two rooted views.
	Full     *graph.View
	Filtered *graph.View

	// Tree is the nested tree, set when the format is "tree".
	Tree *tree.Tree

	// DOT is the Graphviz text of the full view.
	DOT string

	// Artifacts contains rendered outputs keyed by "json", "dot" and image
	// format.
	Artifacts map[string][]byte

	// Files lists the paths written by [Runner.Execute], in order.
	Files []string

	// Log holds the diagnostics of the run.
	Log *diag.Log

	// Stats contains counts and timings.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	Records       int // node records read
	Accepted      int // node records admitted to the full view
	Edges         int // edges read, after multi-edge expansion
	Link          graph.LinkStats
	FullNodes     int
	FilteredNodes int
	ReadTime      time.Duration
	BuildTime     time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all images came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a primary JSON format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: tree, flat)", format)
	}
	return nil
}

// ValidateSource checks that an input format is valid.
func ValidateSource(src string) error {
	if !ValidSources[src] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid source: %q (must be one of: json, legacy, flat)", src)
	}
	return nil
}

// ValidateRenderFormats checks that all image formats are valid.
func ValidateRenderFormats(formats []string) error {
	for _, f := range formats {
		if _, err := nodelink.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateRunName(o.Name); err != nil {
		return err
	}

	if o.Cutoff == 0 {
		o.Cutoff = DefaultCutoff
	}
	if err := errors.ValidateCutoffValue(o.Cutoff); err != nil {
		return err
	}

	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}

	if o.Source == "" {
		o.Source = DefaultSource
	}
	if err := ValidateSource(o.Source); err != nil {
		return err
	}
	if o.Source == SourceFlat && o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "flat input requires an explicit input path")
	}

	if err := ValidateRenderFormats(o.Render); err != nil {
		return err
	}
	o.Render = slices.Compact(slices.Sorted(slices.Values(o.Render)))

	if o.InputDir == "" {
		o.InputDir = DefaultDir
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultDir
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// InputPath returns the file the run reads.
func (o *Options) InputPath() string {
	if o.Input != "" {
		return o.Input
	}
	if o.Source == SourceLegacy {
		return filepath.Join(o.InputDir, o.Name+LegacySuffix)
	}
	return filepath.Join(o.InputDir, o.Name+InputSuffix)
}

// JSONPath returns the path of the tree or flat JSON output.
func (o *Options) JSONPath() string {
	return filepath.Join(o.OutputDir, o.Name+JSONSuffix)
}

// DOTPath returns the path of the DOT output.
func (o *Options) DOTPath() string {
	return filepath.Join(o.OutputDir, o.Name+DOTSuffix)
}

// ImagePath returns the path of a rendered image.
func (o *Options) ImagePath(format string) string {
	return filepath.Join(o.OutputDir, o.Name+ImageInfix+format)
}

// LogPath returns the path of the diagnostics log.
func (o *Options) LogPath() string {
	return filepath.Join(o.OutputDir, o.Name+LogSuffix)
}

// ArtifactKeyOpts returns cache key options for image rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

// String summarizes the options for log lines.
func (o *Options) String() string {
	return fmt.Sprintf("%s (cutoff %d, %s)", o.Name, o.Cutoff, o.Format)
}
