package viewport

import (
	"math"
	"testing"

	"github.com/matzehuels/cfgexplorer/pkg/layout"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestFitToView(t *testing.T) {
	tests := []struct {
		name      string
		canvas    Size
		bounds    layout.Rect
		wantScale float64
	}{
		{
			name:      "Natural",
			canvas:    Size{800, 600},
			bounds:    layout.Rect{MinX: -100, MinY: 0, MaxX: 100, MaxY: 400},
			wantScale: 1.2, // min(680/200, 480/400)
		},
		{
			name:      "ClampedLow",
			canvas:    Size{300, 300},
			bounds:    layout.Rect{MinX: 0, MinY: 0, MaxX: 1000, MaxY: 1000},
			wantScale: FitMin,
		},
		{
			name:      "ClampedHigh",
			canvas:    Size{2000, 2000},
			bounds:    layout.Rect{MinX: -30, MinY: 0, MaxX: 30, MaxY: 35},
			wantScale: FitMax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.FitToView(tt.canvas, tt.bounds)
			if !near(v.Scale, tt.wantScale) {
				t.Errorf("Scale = %v, want %v", v.Scale, tt.wantScale)
			}
			c := v.ToScreen(tt.bounds.Center())
			if !near(c.X, tt.canvas.Width/2) || !near(c.Y, tt.canvas.Height/2) {
				t.Errorf("bounds center maps to %+v, want canvas center", c)
			}
		})
	}
}

func TestFitToViewDegenerate(t *testing.T) {
	v := Viewport{Scale: 1.7, Offset: Point{X: 3, Y: 4}}
	before := v
	v.FitToView(Size{800, 600}, layout.Rect{})
	v.FitToView(Size{800, 600}, layout.Rect{MinX: 0, MaxX: 100})
	if v != before {
		t.Errorf("degenerate fit changed viewport: %+v, want %+v", v, before)
	}
}

func TestZoomKeepsPivotFixed(t *testing.T) {
	pivots := []Point{{0, 0}, {400, 300}, {-50, 1234.5}}
	for _, pivot := range pivots {
		for _, dir := range []Direction{ZoomIn, ZoomOut} {
			v := Viewport{Scale: 1.3, Offset: Point{X: 120, Y: -40}}
			g := v.ToGraph(pivot)
			v.Zoom(dir, pivot)
			s := v.ToScreen(g)
			if math.Abs(s.X-pivot.X) > 1e-6 || math.Abs(s.Y-pivot.Y) > 1e-6 {
				t.Errorf("dir %d pivot %+v: graph point moved to %+v", dir, pivot, s)
			}
		}
	}
}

func TestZoomClamps(t *testing.T) {
	v := New()
	for range 50 {
		v.Zoom(ZoomIn, Point{})
	}
	if !near(v.Scale, ZoomMax) {
		t.Errorf("Scale after zooming in = %v, want %v", v.Scale, ZoomMax)
	}
	for range 100 {
		v.Zoom(ZoomOut, Point{})
	}
	if !near(v.Scale, ZoomMin) {
		t.Errorf("Scale after zooming out = %v, want %v", v.Scale, ZoomMin)
	}

	v = New()
	v.Zoom(ZoomIn, Point{})
	if !near(v.Scale, 1.1) {
		t.Errorf("one step in = %v, want 1.1", v.Scale)
	}
}

func TestPan(t *testing.T) {
	v := New()
	v.Pan(10, -20)
	v.Pan(1e6, 1e6)
	if v.Offset != (Point{X: 1e6 + 10, Y: 1e6 - 20}) {
		t.Errorf("Offset = %+v", v.Offset)
	}
}

func TestCenterOn(t *testing.T) {
	v := Viewport{Scale: 2}
	node := layout.Rect{MinX: 40, MinY: 100, MaxX: 100, MaxY: 135}
	v.CenterOn(node, Size{800, 600})

	c := v.ToScreen(node.Center())
	if !near(c.X, 400) || !near(c.Y, 300) {
		t.Errorf("node center maps to %+v, want (400, 300)", c)
	}
	if v.Scale != 2 {
		t.Errorf("CenterOn changed scale to %v", v.Scale)
	}
}
