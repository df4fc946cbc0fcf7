// Package render draws control-flow graph frames onto a drawing surface.
//
// # Overview
//
// A [Renderer] is a pure consumer: given a [Frame] (layout, function,
// navigation position and viewport) it issues drawing commands to a
// [Surface] and never mutates its inputs. Rendering the same frame twice
// produces the same commands.
//
// [Surface] is shaped after the HTML Canvas 2D context so that a browser
// canvas can implement it directly. The [sink] subpackage provides
// surfaces for SVG documents, PNG rasters, terminal cell grids and a
// command recorder used in tests.
//
// # Frame Layout
//
// Each frame is painted in three passes:
//
//  1. Clear with the theme background, then apply the viewport transform.
//  2. Edges, behind nodes. Each edge is classified as selected, taken or
//     plain (see [ClassifyEdge]) and drawn as a polyline with an arrowhead
//     and, when labeled, a background-filled badge.
//  3. Nodes. Fill reflects the navigation state, border color reflects the
//     block role (see [NodeStyleFor]).
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	r := render.NewRenderer()
//	svg := sink.NewSVG(viewport.Size{Width: 800, Height: 600})
//	r.Render(svg, frame)
//	pdf, err := render.ToPDF(svg.Bytes())
//
// [sink]: github.com/matzehuels/cfgexplorer/pkg/render/sink
package render
