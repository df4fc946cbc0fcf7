package render

import (
	"math"

	"github.com/matzehuels/cfgexplorer/pkg/graph"
	"github.com/matzehuels/cfgexplorer/pkg/layout"
	"github.com/matzehuels/cfgexplorer/pkg/navigation"
	"github.com/matzehuels/cfgexplorer/pkg/viewport"
)

// Drawing constants in graph units.
const (
	NodeRadius       = 6.0
	DimAlpha         = 0.35
	ArrowSize        = 8.0
	LabelFontSize    = 9.0
	LabelPadding     = 3.0
	LabelLineHeight  = 12.0
	NodeFontSize     = 12.0
	EdgeWidth        = 2.0
	EdgeWidthBold    = 3.0
	BorderWidth      = 2.0
	BorderWidthBold  = 3.0
	CleanupDashWidth = 5.0
)

// =============================================================================
// Frame
// =============================================================================

// Frame is everything needed to paint one picture of a function. The
// embedded walk supplies the function, the current block, the selected
// edge and the path.
type Frame struct {
	navigation.Walk
	Layout   *layout.GraphLayout
	Viewport viewport.Viewport
}

// =============================================================================
// Classification
// =============================================================================

// EdgeClass is the highlight state of an edge, in priority order.
type EdgeClass int

// Edge classes.
const (
	EdgePlain EdgeClass = iota
	EdgeTaken
	EdgeSelected
)

// ClassifyEdge returns the highlight state of e in frame f.
//
// An edge is selected when it leaves the current block toward the selected
// edge's target, taken when it was walked along the path, and plain
// otherwise. Selected wins over taken.
func ClassifyEdge(e layout.Edge, f Frame) EdgeClass {
	if e.From == f.Current {
		if target, ok := f.SelectedTarget(); ok && target == e.To {
			return EdgeSelected
		}
	}
	if f.Taken(e.From, e.To) {
		return EdgeTaken
	}
	return EdgePlain
}

// EdgeStyle is the resolved stroke of an edge.
type EdgeStyle struct {
	Color  string
	Width  float64
	Dashed bool
}

// EdgeStyleFor resolves the stroke for e in frame f.
func EdgeStyleFor(e layout.Edge, f Frame, t Theme) EdgeStyle {
	s := EdgeStyle{Color: t.Edge, Width: EdgeWidth, Dashed: e.Kind == graph.EdgeCleanup}
	switch ClassifyEdge(e, f) {
	case EdgeSelected:
		s.Color, s.Width = t.EdgeSelected, EdgeWidthBold
	case EdgeTaken:
		s.Color, s.Width = t.EdgeTaken, EdgeWidthBold
	case EdgePlain:
		if e.Kind == graph.EdgeCleanup {
			s.Color = t.EdgeCleanup
		}
	}
	return s
}

// NodeStyle is the resolved appearance of a node.
type NodeStyle struct {
	Fill        string
	Border      string
	BorderWidth float64
	Text        string
	Alpha       float64
}

// NodeStyleFor resolves the appearance of n in frame f.
//
// Nodes that are neither current nor on the path are dimmed, but only once
// the path is non-empty.
func NodeStyleFor(n layout.Node, f Frame, t Theme) NodeStyle {
	current := n.ID == f.Current
	visited := f.Visited(n.ID)

	s := NodeStyle{
		Fill:        t.Node,
		Border:      t.RoleBorder(n.Role),
		BorderWidth: BorderWidth,
		Text:        t.Text,
		Alpha:       1,
	}
	switch {
	case current:
		s.Fill, s.Text = t.Current, t.TextDark
	case visited:
		s.Fill = t.Visited
	}
	if current || n.Role != graph.RoleLinear {
		s.BorderWidth = BorderWidthBold
	}
	if !current && !visited && len(f.Path) > 0 {
		s.Alpha = DimAlpha
	}
	return s
}

// =============================================================================
// Renderer
// =============================================================================

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the color theme.
func WithTheme(t Theme) Option { return func(r *Renderer) { r.theme = t } }

// Renderer paints frames. It holds no per-frame state.
type Renderer struct {
	theme Theme
}

// NewRenderer returns a renderer using the default theme unless overridden.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{theme: DefaultTheme()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Theme returns the renderer's colors.
func (r *Renderer) Theme() Theme { return r.theme }

// Render paints f onto s. A frame without a layout or function only clears
// the surface.
func (r *Renderer) Render(s Surface, f Frame) {
	s.Clear(r.theme.Background)
	if f.Layout == nil || f.Function == nil {
		return
	}

	s.Save()
	s.Translate(f.Viewport.Offset.X, f.Viewport.Offset.Y)
	s.Scale(f.Viewport.Scale)

	for _, e := range f.Layout.Edges {
		r.renderEdge(s, e, EdgeStyleFor(e, f, r.theme))
	}
	for _, n := range f.Layout.Nodes {
		r.renderNode(s, n, NodeStyleFor(n, f, r.theme))
	}

	s.Restore()
}

func (r *Renderer) renderEdge(s Surface, e layout.Edge, st EdgeStyle) {
	if len(e.Points) == 0 {
		return
	}
	s.BeginPath()
	s.SetStrokeColor(st.Color)
	s.SetLineWidth(st.Width)
	if st.Dashed {
		s.SetLineDash(CleanupDashWidth, CleanupDashWidth)
	} else {
		s.SetLineDash()
	}

	s.MoveTo(e.Points[0].X, e.Points[0].Y)
	for _, p := range e.Points[1:] {
		s.LineTo(p.X, p.Y)
	}
	s.Stroke()

	if n := len(e.Points); n >= 2 {
		r.renderArrowhead(s, e.Points[n-2], e.Points[n-1], st.Color)
		if e.Label != "" {
			r.renderEdgeLabel(s, e, st.Color)
		}
	}
	s.SetLineDash()
}

func (r *Renderer) renderArrowhead(s Surface, from, to layout.Point, color string) {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	s.BeginPath()
	s.MoveTo(to.X, to.Y)
	s.LineTo(to.X-ArrowSize*math.Cos(angle-math.Pi/6), to.Y-ArrowSize*math.Sin(angle-math.Pi/6))
	s.LineTo(to.X-ArrowSize*math.Cos(angle+math.Pi/6), to.Y-ArrowSize*math.Sin(angle+math.Pi/6))
	s.ClosePath()
	s.SetFillColor(color)
	s.Fill()
}

// LabelAnchor returns where an edge's label badge is centered: the midpoint
// of the segment ending at the middle control point.
func LabelAnchor(e layout.Edge) (layout.Point, bool) {
	n := len(e.Points)
	switch {
	case n == 0:
		return layout.Point{}, false
	case n == 1:
		return e.Points[0], true
	}
	a, b := e.Points[n/2-1], e.Points[n/2]
	return layout.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}, true
}

func (r *Renderer) renderEdgeLabel(s Surface, e layout.Edge, color string) {
	mid, ok := LabelAnchor(e)
	if !ok {
		return
	}
	s.SetFont(Font{Size: LabelFontSize})
	w := s.MeasureText(e.Label)

	s.SetFillColor(r.theme.Background)
	s.FillRect(
		mid.X-w/2-LabelPadding,
		mid.Y-LabelLineHeight/2-LabelPadding,
		w+2*LabelPadding,
		LabelLineHeight+2*LabelPadding,
	)
	s.SetFillColor(color)
	s.FillText(e.Label, mid.X, mid.Y)
}

func (r *Renderer) renderNode(s Surface, n layout.Node, st NodeStyle) {
	s.SetAlpha(st.Alpha)

	s.BeginPath()
	s.RoundedRect(n.X, n.Y, n.Width, n.Height, NodeRadius)
	s.SetFillColor(st.Fill)
	s.Fill()
	s.SetStrokeColor(st.Border)
	s.SetLineWidth(st.BorderWidth)
	s.Stroke()

	s.SetFillColor(st.Text)
	s.SetFont(Font{Size: NodeFontSize, Bold: true})
	s.FillText(graph.BlockLabel(n.ID), n.X+n.Width/2, n.Y+n.Height/2)

	s.SetAlpha(1)
}
