package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/graph"
	"github.com/matzehuels/conceptmap/pkg/source"
)

// Options configures DOT generation.
type Options struct {
	// Rankdir is written verbatim as the layout direction.
	Rankdir string
	// Styles maps a node class to its attributes.
	Styles map[string]source.Style
}

// ToDOT converts a view to DOT text. Nodes are emitted in ascending ID order
// and edges in the view's edge order.
func ToDOT(v *graph.View, opts Options) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "\trankdir = %s\n", opts.Rankdir)

	for _, n := range v.Nodes() {
		s, ok := opts.Styles[n.Class()]
		if !ok {
			return "", errors.New(errors.ErrCodeMissingStyle,
				"node %d (%q) references undefined style %q", n.ID(), n.Text(), n.Class())
		}
		fmt.Fprintf(&buf, "\tnode%d[label = %q, shape = %s, style = %s, fillcolor = %q];\n",
			n.ID(), n.Text(), dotID(s.Shape), dotID(s.Style), s.FillColor)
	}

	for _, e := range v.Edges() {
		fmt.Fprintf(&buf, "\tnode%d -> node%d;\n", e.From.ID(), e.To.ID())
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

var plainID = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// dotID leaves plain identifiers bare and quotes everything else, such as
// "rounded,filled".
func dotID(s string) string {
	if plainID.MatchString(s) {
		return s
	}
	return strconv.Quote(s)
}

// Format is an output format supported by [Render].
type Format string

// Supported render formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat parses a render format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatSVG, FormatPNG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported render format %q (want svg or png)", s)
}

// Validate parses dot and reports whether Graphviz accepts it.
func Validate(dot string) error {
	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	return g.Close()
}

// Render lays out dot with Graphviz and returns the image in the given format.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported render format %q", format)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, FormatSVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, FormatPNG)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag with one whose viewBox starts at
// the origin, so the diagram scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
