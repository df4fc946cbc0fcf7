// Package viewport maps graph coordinates to screen coordinates.
//
// The transform law is screen = graph*Scale + Offset. A [Viewport] starts at
// scale 1 with zero offset and is adjusted by fitting, zooming toward a
// pointer, panning and centering on a node. Scale is clamped differently by
// fitting and by zooming: fitting never shrinks below 0.5 or grows past 2,
// while interactive zoom allows 0.2 to 3.
package viewport

import (
	"math"

	"github.com/matzehuels/cfgexplorer/pkg/layout"
)

// Fit and zoom limits.
const (
	FitPadding = 60.0
	FitMin     = 0.5
	FitMax     = 2.0

	ZoomMin = 0.2
	ZoomMax = 3.0

	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9
)

// Direction is a zoom direction.
type Direction int

// Zoom directions.
const (
	ZoomIn Direction = iota
	ZoomOut
)

// Size is a canvas size in screen units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a screen or graph position.
type Point = layout.Point

// Viewport is a uniform scale plus translation from graph space to screen space.
type Viewport struct {
	Scale  float64 `json:"scale"`
	Offset Point   `json:"offset"`
}

// New returns the identity viewport.
func New() Viewport {
	return Viewport{Scale: 1}
}

// FitToView scales and centers bounds on a canvas of the given size.
//
// Degenerate bounds (zero width or height) leave the viewport untouched.
func (v *Viewport) FitToView(canvas Size, bounds layout.Rect) {
	gw, gh := bounds.Width(), bounds.Height()
	if gw <= 0 || gh <= 0 {
		return
	}
	sx := (canvas.Width - 2*FitPadding) / gw
	sy := (canvas.Height - 2*FitPadding) / gh
	v.Scale = clamp(math.Min(sx, sy), FitMin, FitMax)

	c := bounds.Center()
	v.Offset = Point{
		X: canvas.Width/2 - c.X*v.Scale,
		Y: canvas.Height/2 - c.Y*v.Scale,
	}
}

// Zoom scales by one step in dir, keeping the graph point under pivot fixed
// on screen.
func (v *Viewport) Zoom(dir Direction, pivot Point) {
	factor := ZoomInFactor
	if dir == ZoomOut {
		factor = ZoomOutFactor
	}
	newScale := clamp(v.Scale*factor, ZoomMin, ZoomMax)
	ratio := newScale / v.Scale
	v.Offset = Point{
		X: pivot.X - (pivot.X-v.Offset.X)*ratio,
		Y: pivot.Y - (pivot.Y-v.Offset.Y)*ratio,
	}
	v.Scale = newScale
}

// Pan moves the offset by (dx, dy) screen units. Panning is unbounded.
func (v *Viewport) Pan(dx, dy float64) {
	v.Offset.X += dx
	v.Offset.Y += dy
}

// CenterOn moves the offset so that node's center maps to the canvas center
// at the current scale.
func (v *Viewport) CenterOn(node layout.Rect, canvas Size) {
	c := node.Center()
	v.Offset = Point{
		X: canvas.Width/2 - c.X*v.Scale,
		Y: canvas.Height/2 - c.Y*v.Scale,
	}
}

// ToScreen maps a graph point to the screen.
func (v Viewport) ToScreen(p Point) Point {
	return Point{X: p.X*v.Scale + v.Offset.X, Y: p.Y*v.Scale + v.Offset.Y}
}

// ToGraph maps a screen point back to graph space.
func (v Viewport) ToGraph(p Point) Point {
	return Point{X: (p.X - v.Offset.X) / v.Scale, Y: (p.Y - v.Offset.Y) / v.Scale}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
