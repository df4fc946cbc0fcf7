package sink

import (
	"slices"

	"github.com/matzehuels/cfgexplorer/pkg/layout"
	"github.com/matzehuels/cfgexplorer/pkg/render"
)

// gstate is the saveable part of a surface's graphics state.
type gstate struct {
	scale  float64
	tx, ty float64

	alpha     float64
	dash      []float64
	lineWidth float64
	fill      string
	stroke    string
	font      render.Font
}

func defaultState() gstate {
	return gstate{
		scale:     1,
		alpha:     1,
		lineWidth: 1,
		fill:      "#000000",
		stroke:    "#000000",
		font:      render.Font{Size: 10},
	}
}

// apply maps a user-space point to device space.
func (g gstate) apply(x, y float64) layout.Point {
	return layout.Point{X: x*g.scale + g.tx, Y: y*g.scale + g.ty}
}

// stateStack implements Save, Restore, Translate, Scale and the style
// setters shared by the vector and cell surfaces.
type stateStack struct {
	cur   gstate
	saved []gstate
}

func newStateStack() stateStack { return stateStack{cur: defaultState()} }

func (s *stateStack) reset() { *s = newStateStack() }

func (s *stateStack) Save() {
	c := s.cur
	c.dash = slices.Clone(c.dash)
	s.saved = append(s.saved, c)
}

func (s *stateStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *stateStack) Translate(x, y float64) {
	s.cur.tx += x * s.cur.scale
	s.cur.ty += y * s.cur.scale
}

func (s *stateStack) Scale(k float64)             { s.cur.scale *= k }
func (s *stateStack) SetAlpha(a float64)          { s.cur.alpha = a }
func (s *stateStack) SetLineDash(dash ...float64) { s.cur.dash = slices.Clone(dash) }
func (s *stateStack) SetLineWidth(w float64)      { s.cur.lineWidth = w }
func (s *stateStack) SetFillColor(c string)       { s.cur.fill = c }
func (s *stateStack) SetStrokeColor(c string)     { s.cur.stroke = c }
func (s *stateStack) SetFont(f render.Font)       { s.cur.font = f }

// =============================================================================
// Paths
// =============================================================================

// roundRect is a rounded rectangle already mapped to device space.
type roundRect struct {
	x, y, w, h, r float64
}

// subpath is a device-space polyline, or a rounded rectangle when rect is set.
type subpath struct {
	points []layout.Point
	closed bool
	rect   *roundRect
}

// pathBuilder accumulates subpaths in device space.
type pathBuilder struct {
	subpaths []subpath
}

func (p *pathBuilder) begin() { p.subpaths = p.subpaths[:0] }

func (p *pathBuilder) moveTo(pt layout.Point) {
	p.subpaths = append(p.subpaths, subpath{points: []layout.Point{pt}})
}

func (p *pathBuilder) lineTo(pt layout.Point) {
	if len(p.subpaths) == 0 || p.subpaths[len(p.subpaths)-1].rect != nil {
		p.moveTo(pt)
		return
	}
	last := &p.subpaths[len(p.subpaths)-1]
	last.points = append(last.points, pt)
}

func (p *pathBuilder) close() {
	if len(p.subpaths) == 0 {
		return
	}
	p.subpaths[len(p.subpaths)-1].closed = true
}

func (p *pathBuilder) roundedRect(r roundRect) {
	p.subpaths = append(p.subpaths, subpath{rect: &r, closed: true})
}
