package render

import "github.com/matzehuels/cfgexplorer/pkg/viewport"

// Font describes a monospace font request.
type Font struct {
	Size float64
	Bold bool
}

// Surface is a 2D drawing target with Canvas-style path semantics.
//
// Colors are CSS hex strings. Transforms accumulate until Restore pops the
// state saved by the matching Save; Save also captures alpha, line dash,
// line width, colors and font. BeginPath discards the current path while
// Fill and Stroke leave it intact, so a path can be filled and then
// stroked. FillText centers text on (x, y) in both axes.
type Surface interface {
	// Size returns the drawable area in screen units.
	Size() viewport.Size
	// Clear resets the surface and paints it with color, ignoring transforms.
	Clear(color string)

	Save()
	Restore()
	Translate(x, y float64)
	Scale(s float64)

	SetAlpha(a float64)
	SetLineDash(dash ...float64)
	SetLineWidth(w float64)
	SetFillColor(color string)
	SetStrokeColor(color string)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	RoundedRect(x, y, w, h, r float64)
	Fill()
	Stroke()
	FillRect(x, y, w, h float64)

	SetFont(f Font)
	FillText(text string, x, y float64)
	// MeasureText returns the advance width of text in the current font,
	// in user units.
	MeasureText(text string) float64
}
