package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/conceptmap/pkg/buildinfo"
	"github.com/matzehuels/conceptmap/pkg/cache"
	"github.com/matzehuels/conceptmap/pkg/diag"
	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/graph"
	cmio "github.com/matzehuels/conceptmap/pkg/io"
	"github.com/matzehuels/conceptmap/pkg/observability"
	"github.com/matzehuels/conceptmap/pkg/render/nodelink"
	"github.com/matzehuels/conceptmap/pkg/render/tree"
	"github.com/matzehuels/conceptmap/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the server use it so that runs behave identically.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Every run owns its own views and diagnostics log, so
// multiple goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete read → build → render → write pipeline.
//
// The diagnostics log is written to the output directory and echoed through
// the logger on every return path once the options are valid, including
// fatal failures.
func (r *Runner) Execute(ctx context.Context, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "create output directory %s", opts.OutputDir)
	}

	runID := uuid.NewString()
	dlog := newLog(opts, runID)
	defer func() {
		if err != nil {
			dlog.Warnf("Run aborted: %s", errors.UserMessage(err))
		}
		dlog.Infof("Wrote to log file; File titled %s", filepath.Base(opts.LogPath()))
		if ferr := dlog.Flush(opts.LogPath(), opts.Logger); ferr != nil && err == nil {
			err = fmt.Errorf("write log: %w", ferr)
		}
	}()

	result, err = r.run(ctx, opts, runID, dlog)
	if err != nil {
		return nil, err
	}
	if err := r.Write(ctx, opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Run performs the read, build and render stages in memory. Nothing is
// written to the output directory; the diagnostics are in [Result.Log].
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	runID := uuid.NewString()
	return r.run(ctx, opts, runID, newLog(opts, runID))
}

func newLog(opts Options, runID string) *diag.Log {
	dlog := diag.New()
	dlog.Infof("conceptmap %s initialized with target %s and priority level %d (run %s)",
		buildinfo.Short(), opts.InputPath(), opts.Cutoff, runID)
	return dlog
}

func (r *Runner) run(ctx context.Context, opts Options, runID string, dlog *diag.Log) (*Result, error) {
	readStart := time.Now()
	d, err := Read(ctx, opts, dlog)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	readTime := time.Since(readStart)

	r.Logger.Debug("read description",
		"input", opts.InputPath(),
		"nodes", len(d.Nodes),
		"edges", len(d.Edges),
		"duration", readTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := r.Build(ctx, opts, d, dlog)
	if err != nil {
		return nil, err
	}
	result.RunID = runID
	result.Stats.ReadTime = readTime
	return result, nil
}

// Build runs the build and render stages on an already decoded description.
func (r *Runner) Build(ctx context.Context, opts Options, d *source.Description, dlog *diag.Log) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Description: d,
		Log:         dlog,
		Artifacts:   make(map[string][]byte),
	}

	// Stage 2: Build
	buildStart := time.Now()
	full, filtered, err := buildViews(opts, d, dlog, &result.Stats)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build views")
	}
	result.Full, result.Filtered = full, filtered
	result.Stats.BuildTime = time.Since(buildStart)

	observability.Pipeline().OnBuildComplete(ctx, opts.Name,
		result.Stats.FullNodes, result.Stats.FilteredNodes, result.Stats.Link.Dangling, result.Stats.BuildTime)

	r.Logger.Info("built concept map",
		"nodes", result.Stats.FullNodes,
		"visible", result.Stats.FilteredNodes,
		"edges", full.EdgeCount(),
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()

	var buf bytes.Buffer
	switch opts.Format {
	case FormatFlat:
		err = cmio.WriteFlat(filtered, &buf)
	default:
		result.Tree = tree.Build(filtered.Root())
		err = tree.WriteJSON(result.Tree, &buf)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s JSON", opts.Format)
	}
	result.Artifacts[ArtifactJSON] = buf.Bytes()

	if err := errors.ValidateRankdir(d.Rankdir); err != nil {
		dlog.Warnf("Rankdir %q is not a Graphviz direction; written as given", d.Rankdir)
	}
	dot, err := nodelink.ToDOT(full, nodelink.Options{Rankdir: d.Rankdir, Styles: d.Styles})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.DOT = dot
	result.Artifacts[ArtifactDOT] = []byte(dot)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	images, hit, err := r.RenderWithCacheInfo(ctx, dot, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	for format, data := range images {
		result.Artifacts[format] = data
	}
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	if len(opts.Render) > 0 {
		r.Logger.Info("rendered diagram",
			"formats", opts.Render,
			"cached", hit,
			"duration", result.Stats.RenderTime)
	}
	return result, nil
}

// buildViews feeds d through a builder and roots both views.
func buildViews(opts Options, d *source.Description, dlog *diag.Log, stats *Stats) (*graph.View, *graph.View, error) {
	d.MergeStyles(opts.Styles)

	b := graph.NewBuilder(graph.Cutoff(opts.Cutoff), dlog)
	link, accepted, err := d.Build(b)
	if err != nil {
		return nil, nil, err
	}

	dlog.Infof("Parsing completed")
	dlog.Infof("Parsed %d nodes", accepted)
	dlog.Infof("Parsed %d paths", len(d.Edges))
	dlog.Infof("Parsed and verified %d paths", link.Full)

	graph.SynthesizeRoot(b.Full(), opts.Name)
	graph.SynthesizeRoot(b.Filtered(), opts.Name)

	*stats = Stats{
		Records:       len(d.Nodes),
		Accepted:      accepted,
		Edges:         len(d.Edges),
		Link:          link,
		FullNodes:     b.Full().NodeCount(),
		FilteredNodes: b.Filtered().NodeCount(),
	}
	return b.Full(), b.Filtered(), nil
}

// Write stores every artifact of result in the output directory.
func (r *Runner) Write(ctx context.Context, opts Options, result *Result) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	if err := r.writeFile(ctx, opts.JSONPath(), result.Artifacts[ArtifactJSON], result); err != nil {
		return err
	}
	result.Log.Infof("Wrote to JSON; File titled %s", filepath.Base(opts.JSONPath()))

	if err := r.writeFile(ctx, opts.DOTPath(), result.Artifacts[ArtifactDOT], result); err != nil {
		return err
	}
	result.Log.Infof("Wrote to DOT; File titled %s", filepath.Base(opts.DOTPath()))

	for _, format := range opts.Render {
		path := opts.ImagePath(format)
		if err := r.writeFile(ctx, path, result.Artifacts[format], result); err != nil {
			return err
		}
		result.Log.Infof("Rendered %s; File titled %s", format, filepath.Base(path))
	}
	return nil
}

func (r *Runner) writeFile(ctx context.Context, path string, data []byte, result *Result) error {
	err := os.WriteFile(path, data, 0o644)
	observability.Pipeline().OnWriteComplete(ctx, path, int64(len(data)), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	result.Files = append(result.Files, path)
	r.Logger.Debug("wrote file", "path", path, "bytes", len(data))
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
