// Package sink provides drawing surfaces for the CFG renderer.
//
// Every type here implements [render.Surface]:
//
//   - [SVG]: records a frame as a standalone SVG document
//   - [Raster]: paints a frame into an RGBA image via fogleman/gg
//   - [Cells]: paints a frame onto a terminal character grid styled with lipgloss
//   - [Recorder]: logs every call, for tests and debugging
//
// # Usage
//
//	svg := sink.NewSVG(viewport.Size{Width: 800, Height: 600})
//	render.NewRenderer().Render(svg, frame)
//	os.WriteFile("frame.svg", svg.Bytes(), 0o644)
//
// The vector and cell surfaces resolve transforms at path-construction time,
// the same way a Canvas 2D context does: changing the transform after
// MoveTo does not move points already added.
//
// [render.Surface]: github.com/matzehuels/cfgexplorer/pkg/render#Surface
package sink
