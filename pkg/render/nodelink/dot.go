package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/graph"
	"github.com/matzehuels/cfgexplorer/pkg/navigation"
	"github.com/matzehuels/cfgexplorer/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed lists statements and the terminator in node labels.
	// When false, labels show the block name and summary only.
	Detailed bool

	// Theme supplies colors. Empty fields fall back to the default theme.
	Theme render.Theme

	// Path and Current highlight a walk: the current block is filled with
	// the current color, visited blocks with the visited color, and edges
	// along the walk with the taken color. Current < 0 disables it.
	Path    []int
	Current int
}

// DefaultOptions returns compact labels without highlighting.
func DefaultOptions() Options {
	return Options{Theme: render.DefaultTheme(), Current: -1}
}

// ToDOT converts a function's CFG to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(fn *graph.FunctionDoc, opts Options) string {
	t := opts.Theme.Merge(render.DefaultTheme())

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", fn.DisplayName())
	buf.WriteString("  rankdir=TB;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", t.Background)
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fontname=\"monospace\", fontsize=12, fontcolor=%q, penwidth=2];\n", t.Text)
	fmt.Fprintf(&buf, "  edge [fontname=\"monospace\", fontsize=9, color=%q, fontcolor=%q];\n", t.Edge, t.Text)
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range fn.Blocks {
		b := &fn.Blocks[i]
		attrs := fmtAttrs(b, fmtLabel(b, opts.Detailed), t, opts)
		fmt.Fprintf(&buf, "  %s [%s];\n", graph.BlockLabel(b.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := range fn.Blocks {
		from := fn.Blocks[i].ID
		for _, e := range fn.Blocks[i].Terminator.Edges {
			attrs := edgeAttrs(from, e, t, opts)
			fmt.Fprintf(&buf, "  %s -> %s", graph.BlockLabel(from), graph.BlockLabel(e.Target))
			if len(attrs) > 0 {
				fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
			}
			buf.WriteString(";\n")
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b *graph.BlockDoc, detailed bool) string {
	head := graph.BlockLabel(b.ID)
	if b.Role != graph.RoleLinear {
		head += " (" + b.Role.String() + ")"
	}
	lines := []string{head}
	if b.Summary != "" {
		lines = append(lines, b.Summary)
	}
	if detailed {
		for _, s := range b.Statements {
			lines = append(lines, s.Source)
		}
		if b.Terminator.Source != "" {
			lines = append(lines, b.Terminator.Source)
		}
	}
	return strings.Join(lines, "\n")
}

func fmtAttrs(b *graph.BlockDoc, label string, t render.Theme, opts Options) []string {
	fill, font := t.Node, t.Text
	if w, ok := opts.highlight(); ok {
		switch {
		case b.ID == w.Current:
			fill, font = t.Current, t.TextDark
		case w.Visited(b.ID):
			fill = t.Visited
		}
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", fill),
		fmt.Sprintf("color=%q", t.RoleBorder(b.Role)),
	}
	if font != t.Text {
		attrs = append(attrs, fmt.Sprintf("fontcolor=%q", font))
	}
	if b.Role != graph.RoleLinear {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

func edgeAttrs(from int, e graph.EdgeDoc, t render.Theme, opts Options) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	w, walking := opts.highlight()
	switch {
	case walking && w.Taken(from, e.Target):
		attrs = append(attrs, fmt.Sprintf("color=%q", t.EdgeTaken), "penwidth=2")
	case e.Kind == graph.EdgeCleanup:
		attrs = append(attrs, fmt.Sprintf("color=%q", t.EdgeCleanup), "style=dashed")
	}
	return attrs
}

// highlight returns the walk described by Path and Current, or false when
// highlighting is disabled.
func (o Options) highlight() (navigation.Walk, bool) {
	if o.Current < 0 {
		return navigation.Walk{}, false
	}
	return navigation.Walk{Path: o.Path, Current: o.Current}, true
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one sized
// in pixels from its viewBox.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// FormatDOT selects raw DOT source from [Render].
const FormatDOT = "dot"

// Render produces DOT source or Graphviz output in format ("dot", "svg",
// "png" or "pdf").
func Render(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG, render.FormatPNG, render.FormatPDF:
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want dot, svg, png or pdf)", format)
	}
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.Convert(ctx, svg, format, scale)
}
