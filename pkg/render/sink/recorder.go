package sink

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cfgexplorer/pkg/render"
	"github.com/matzehuels/cfgexplorer/pkg/viewport"
)

// Op is one recorded surface call.
type Op struct {
	Name string
	Args []float64
	Text string
}

func (o Op) String() string {
	var sb strings.Builder
	sb.WriteString(o.Name)
	sb.WriteByte('(')
	for i, a := range o.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%g", a)
	}
	if o.Text != "" {
		if len(o.Args) > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q", o.Text)
	}
	sb.WriteByte(')')
	return sb.String()
}

// Recorder is a surface that logs every call. Text is measured at a fixed
// monospace advance so label geometry is predictable.
type Recorder struct {
	size viewport.Size
	font render.Font
	Ops  []Op
}

// NewRecorder returns a recorder reporting the given size.
func NewRecorder(size viewport.Size) *Recorder {
	return &Recorder{size: size, font: render.Font{Size: 10}}
}

// Reset discards recorded operations.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Count returns how many operations named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Texts returns every string passed to FillText, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Name == "FillText" {
			out = append(out, op.Text)
		}
	}
	return out
}

func (r *Recorder) rec(name string, text string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args, Text: text})
}

func (r *Recorder) Size() viewport.Size { return r.size }

func (r *Recorder) Clear(color string) {
	r.font = render.Font{Size: 10}
	r.rec("Clear", color)
}

func (r *Recorder) Save()                       { r.rec("Save", "") }
func (r *Recorder) Restore()                    { r.rec("Restore", "") }
func (r *Recorder) Translate(x, y float64)      { r.rec("Translate", "", x, y) }
func (r *Recorder) Scale(s float64)             { r.rec("Scale", "", s) }
func (r *Recorder) SetAlpha(a float64)          { r.rec("SetAlpha", "", a) }
func (r *Recorder) SetLineDash(d ...float64)    { r.rec("SetLineDash", "", d...) }
func (r *Recorder) SetLineWidth(w float64)      { r.rec("SetLineWidth", "", w) }
func (r *Recorder) SetFillColor(c string)       { r.rec("SetFillColor", c) }
func (r *Recorder) SetStrokeColor(c string)     { r.rec("SetStrokeColor", c) }
func (r *Recorder) BeginPath()                  { r.rec("BeginPath", "") }
func (r *Recorder) MoveTo(x, y float64)         { r.rec("MoveTo", "", x, y) }
func (r *Recorder) LineTo(x, y float64)         { r.rec("LineTo", "", x, y) }
func (r *Recorder) ClosePath()                  { r.rec("ClosePath", "") }
func (r *Recorder) Fill()                       { r.rec("Fill", "") }
func (r *Recorder) Stroke()                     { r.rec("Stroke", "") }
func (r *Recorder) FillRect(x, y, w, h float64) { r.rec("FillRect", "", x, y, w, h) }

func (r *Recorder) RoundedRect(x, y, w, h, radius float64) {
	r.rec("RoundedRect", "", x, y, w, h, radius)
}

func (r *Recorder) SetFont(f render.Font) {
	r.font = f
	bold := 0.0
	if f.Bold {
		bold = 1
	}
	r.rec("SetFont", "", f.Size, bold)
}

func (r *Recorder) FillText(text string, x, y float64) { r.rec("FillText", text, x, y) }

func (r *Recorder) MeasureText(text string) float64 {
	return float64(len([]rune(text))) * r.font.Size * monoAdvance
}

var _ render.Surface = (*Recorder)(nil)
