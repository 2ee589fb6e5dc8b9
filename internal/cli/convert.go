package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/conceptmap/pkg/config"
	"github.com/matzehuels/conceptmap/pkg/diag"
	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/pipeline"
)

// convertOpts holds the command-line flags of the root command.
type convertOpts struct {
	format    string // output JSON shape: tree or flat
	source    string // input grammar: json, legacy or flat
	legacy    bool   // shorthand for --source legacy
	input     string // explicit input file
	inputDir  string // directory holding <name>_DTM.json
	outputDir string // directory receiving all outputs
	render    string // comma-separated image formats
	noCache   bool   // bypass the render cache
	refresh   bool   // re-render even when cached
}

// convertCommand creates the command that converts one concept map.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			popts, err := opts.pipelineOptions(cmd.Flags(), cfg, args[0], args[1])
			if err != nil {
				return err
			}
			popts.Logger = c.Logger
			return c.runConvert(cmd.Context(), popts, opts.noCache)
		},
	}

	opts.bind(cmd.Flags())

	return cmd
}

// bind registers the flags on fs.
func (o *convertOpts) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.format, "format", "f", pipeline.DefaultFormat, "output JSON shape: tree, flat")
	fs.StringVar(&o.source, "source", pipeline.DefaultSource, "input grammar: json, legacy, flat")
	fs.BoolVar(&o.legacy, "legacy", false, "read <name>.dot in the legacy grammar")
	fs.StringVarP(&o.input, "input", "i", "", "input file (overrides --input-dir)")
	fs.StringVar(&o.inputDir, "input-dir", pipeline.DefaultDir, "directory holding the input file")
	fs.StringVarP(&o.outputDir, "output-dir", "o", pipeline.DefaultDir, "directory receiving the outputs")
	fs.StringVarP(&o.render, "render", "r", "", "also render the DOT file: svg, png (comma-separated)")
	fs.BoolVar(&o.noCache, "no-cache", false, "disable the render cache")
	fs.BoolVar(&o.refresh, "refresh", false, "re-render even when a cached image exists")
}

// pipelineOptions merges positional arguments, the config file and flags.
// Flags override the config file; the config file overrides defaults.
func (o *convertOpts) pipelineOptions(flags *pflag.FlagSet, cfg *config.Config, name, cutoffArg string) (pipeline.Options, error) {
	if err := errors.ValidateRunName(name); err != nil {
		return pipeline.Options{}, err
	}
	cutoff, err := errors.ValidateCutoff(cutoffArg)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Name:      name,
		Cutoff:    cutoff,
		Format:    cfg.Format,
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		Render:    cfg.Render,
		Styles:    cfg.Styles,
		Input:     o.input,
		Refresh:   o.refresh,
	}
	if cfg.Legacy {
		opts.Source = pipeline.SourceLegacy
	}

	if flags.Changed("format") || opts.Format == "" {
		opts.Format = o.format
	}
	if flags.Changed("source") {
		opts.Source = o.source
	}
	if o.legacy {
		opts.Source = pipeline.SourceLegacy
	}
	if flags.Changed("input-dir") || opts.InputDir == "" {
		opts.InputDir = o.inputDir
	}
	if flags.Changed("output-dir") || opts.OutputDir == "" {
		opts.OutputDir = o.outputDir
	}
	if flags.Changed("render") {
		opts.Render = parseFormats(o.render)
	}
	return opts, nil
}

// runConvert executes the pipeline and prints a summary.
func (c *CLI) runConvert(ctx context.Context, opts pipeline.Options, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger.Debug("converting", "map", opts.String(), "input", opts.InputPath())
	prog := newProgress(logger)

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		printDetail("Diagnostics: %s", opts.LogPath())
		return err
	}
	prog.done("Converted " + opts.Name)

	printSuccess("Built %s at cutoff %d", StyleHighlight.Render(opts.Name), opts.Cutoff)
	printStats(result.Stats.FilteredNodes, result.Filtered.EdgeCount(), len(opts.Render) > 0 && result.CacheInfo.RenderHit)
	for _, f := range result.Files {
		printFile(f)
	}
	printFile(opts.LogPath())

	if n := result.Log.Count(diag.LevelWarn); n > 0 {
		printWarning("%d anomalies recorded in %s", n, filepath.Base(opts.LogPath()))
	}
	if len(opts.Render) == 0 {
		printNextStep("Render the diagram", "conceptmap render "+opts.DOTPath())
	}
	return nil
}
