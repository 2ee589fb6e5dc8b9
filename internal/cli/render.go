package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/pipeline"
	"github.com/matzehuels/conceptmap/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output base path; defaults to the input without extension
	formats []string // image formats: svg, png
	noCache bool     // bypass the render cache
	refresh bool     // re-render even when cached
}

// renderCommand creates the command that renders an existing DOT file.
// It is useful for DOT files written without --render, and for legacy
// inputs that are already DOT.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file.dot>",
		Short: "Render a DOT file to SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if len(opts.formats) == 0 {
				opts.formats = []string{string(nodelink.FormatSVG)}
			}
			if err := pipeline.ValidateRenderFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (extension is added per format)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached image exists")

	return cmd
}

// runRender validates the DOT file, renders each format and writes the images.
func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	dot := string(data)
	if err := nodelink.Validate(dot); err != nil {
		return err
	}

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(path, filepath.Ext(path))
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	popts := pipeline.Options{
		Name:    filepath.Base(base),
		Render:  opts.formats,
		Refresh: opts.refresh,
	}
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, dot, popts)
	if err != nil {
		return err
	}
	prog.done("Rendered " + filepath.Base(path))

	printSuccess("Rendered %s", StyleHighlight.Render(path))
	printStats(0, 0, cached)
	for _, format := range opts.formats {
		out := base + "." + format
		if err := os.WriteFile(out, artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", out)
		}
		printFile(out)
	}
	return nil
}
