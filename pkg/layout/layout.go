package layout

import (
	"github.com/matzehuels/cfgexplorer/pkg/graph"
)

// =============================================================================
// Constants
// =============================================================================

// Layout dimensions in graph units.
const (
	NodeWidth         = 60.0
	NodeHeight        = 35.0
	HorizontalSpacing = 80.0
	VerticalSpacing   = 100.0
	BackEdgeOffset    = 30.0
)

// =============================================================================
// Geometry
// =============================================================================

// Point is a position in graph space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned box given by its min and max corners.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal span of the box.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical span of the box.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint of the box.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return o.MinX >= r.MinX && o.MinY >= r.MinY && o.MaxX <= r.MaxX && o.MaxY <= r.MaxY
}

// ContainsPoint reports whether p lies within r, edges included.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// =============================================================================
// Layout Types
// =============================================================================

// Node is a positioned block. Nodes are 1:1 with blocks, indexed by block id.
type Node struct {
	ID     int             `json:"id"`
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
	Layer  int             `json:"layer"`
	Role   graph.BlockRole `json:"role"`
}

// Rect returns the node's rectangle.
func (n Node) Rect() Rect {
	return Rect{MinX: n.X, MinY: n.Y, MaxX: n.X + n.Width, MaxY: n.Y + n.Height}
}

// CenterX returns the horizontal center of the node.
func (n Node) CenterX() float64 { return n.X + n.Width/2 }

// Bottom returns the y coordinate of the node's lower edge.
func (n Node) Bottom() float64 { return n.Y + n.Height }

// Edge is a routed edge. There is one Edge per outgoing edge occurrence, in
// block-then-edge order.
type Edge struct {
	From   int            `json:"from"`
	To     int            `json:"to"`
	Label  string         `json:"label,omitempty"`
	Kind   graph.EdgeKind `json:"kind"`
	Points []Point        `json:"points"`
}

// IsBackEdge reports whether the edge was routed around the right side.
func (e Edge) IsBackEdge() bool { return len(e.Points) == 6 }

// GraphLayout is the complete geometry of one function's graph.
type GraphLayout struct {
	Nodes  []Node `json:"nodes"`
	Edges  []Edge `json:"edges"`
	Bounds Rect   `json:"bounds"`
}

// Node returns the node for block id.
func (l *GraphLayout) Node(id int) (Node, bool) {
	if l == nil || id < 0 || id >= len(l.Nodes) {
		return Node{}, false
	}
	return l.Nodes[id], true
}

// NodeAt returns the node whose box contains p.
func (l *GraphLayout) NodeAt(p Point) (Node, bool) {
	if l == nil {
		return Node{}, false
	}
	for _, n := range l.Nodes {
		if n.Rect().ContainsPoint(p) {
			return n, true
		}
	}
	return Node{}, false
}

// BackEdgeCount returns the number of edges routed as back edges.
func (l *GraphLayout) BackEdgeCount() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, e := range l.Edges {
		if e.IsBackEdge() {
			n++
		}
	}
	return n
}

// LayerCount returns the number of distinct layers in the layout.
func (l *GraphLayout) LayerCount() int {
	if l == nil || len(l.Nodes) == 0 {
		return 0
	}
	maxLayer := 0
	for _, n := range l.Nodes {
		maxLayer = max(maxLayer, n.Layer)
	}
	return maxLayer + 1
}
