// Package nodelink renders a function's control-flow graph with Graphviz.
//
// # Overview
//
// The interactive explorer uses its own layered layout. This package is the
// static alternative: it emits Graphviz DOT for a function, with blocks as
// rounded boxes bordered by their role color and edges labelled and styled
// by kind, and lets Graphviz place everything.
//
// # Usage
//
//	dot := nodelink.ToDOT(fn, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels list every statement and the terminator
//   - Theme: colors, defaulting to the explorer theme
//   - Path and Current: highlight a walk the way the explorer does
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
