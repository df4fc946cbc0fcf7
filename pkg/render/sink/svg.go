package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/cfgexplorer/pkg/render"
	"github.com/matzehuels/cfgexplorer/pkg/viewport"
)

// monoAdvance is the advance width of one monospace glyph as a fraction of
// the font size.
const monoAdvance = 0.6

// SVGOption configures an SVG surface.
type SVGOption func(*SVG)

// WithTitle sets the document's <title>.
func WithTitle(title string) SVGOption { return func(s *SVG) { s.title = title } }

// SVG is a surface that records drawing commands as SVG elements.
type SVG struct {
	stateStack
	size  viewport.Size
	title string
	path  pathBuilder
	body  bytes.Buffer
}

// NewSVG returns an empty SVG surface of the given size.
func NewSVG(size viewport.Size, opts ...SVGOption) *SVG {
	s := &SVG{stateStack: newStateStack(), size: size}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bytes returns the complete SVG document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.size.Width, s.size.Height, s.size.Width, s.size.Height)
	if s.title != "" {
		buf.WriteString("  <title>")
		xml.EscapeText(&buf, []byte(s.title))
		buf.WriteString("</title>\n")
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (s *SVG) Size() viewport.Size { return s.size }

func (s *SVG) Clear(color string) {
	s.body.Reset()
	s.stateStack.reset()
	s.path.begin()
	fmt.Fprintf(&s.body, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		s.size.Width, s.size.Height, color)
}

func (s *SVG) BeginPath()          { s.path.begin() }
func (s *SVG) MoveTo(x, y float64) { s.path.moveTo(s.cur.apply(x, y)) }
func (s *SVG) LineTo(x, y float64) { s.path.lineTo(s.cur.apply(x, y)) }
func (s *SVG) ClosePath()          { s.path.close() }

func (s *SVG) RoundedRect(x, y, w, h, r float64) {
	p := s.cur.apply(x, y)
	k := s.cur.scale
	s.path.roundedRect(roundRect{x: p.X, y: p.Y, w: w * k, h: h * k, r: r * k})
}

func (s *SVG) Fill() {
	attrs := fmt.Sprintf(`fill="%s"%s`, s.cur.fill, s.opacity("fill-opacity"))
	s.emitPath(attrs)
}

func (s *SVG) Stroke() {
	attrs := fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%.2f" stroke-linejoin="round"%s%s`,
		s.cur.stroke, s.cur.lineWidth*s.cur.scale, s.dashArray(), s.opacity("stroke-opacity"))
	s.emitPath(attrs)
}

func (s *SVG) FillRect(x, y, w, h float64) {
	p := s.cur.apply(x, y)
	k := s.cur.scale
	fmt.Fprintf(&s.body, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s/>`+"\n",
		p.X, p.Y, w*k, h*k, s.cur.fill, s.opacity("fill-opacity"))
}

func (s *SVG) FillText(text string, x, y float64) {
	p := s.cur.apply(x, y)
	weight := ""
	if s.cur.font.Bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(&s.body, `  <text x="%.2f" y="%.2f" font-family="monospace" font-size="%.2f"%s text-anchor="middle" dominant-baseline="central" fill="%s"%s>`,
		p.X, p.Y, s.cur.font.Size*s.cur.scale, weight, s.cur.fill, s.opacity("fill-opacity"))
	xml.EscapeText(&s.body, []byte(text))
	s.body.WriteString("</text>\n")
}

func (s *SVG) MeasureText(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * s.cur.font.Size * monoAdvance
}

func (s *SVG) emitPath(attrs string) {
	for _, sp := range s.path.subpaths {
		if sp.rect != nil {
			r := sp.rect
			fmt.Fprintf(&s.body, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" %s/>`+"\n",
				r.x, r.y, r.w, r.h, r.r, attrs)
			continue
		}
		if len(sp.points) < 2 {
			continue
		}
		fmt.Fprintf(&s.body, `  <path d="%s" %s/>`+"\n", pathData(sp), attrs)
	}
}

func (s *SVG) opacity(attr string) string {
	if s.cur.alpha >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%.2f"`, attr, s.cur.alpha)
}

func (s *SVG) dashArray() string {
	if len(s.cur.dash) == 0 {
		return ""
	}
	parts := make([]string, len(s.cur.dash))
	for i, d := range s.cur.dash {
		parts[i] = fmt.Sprintf("%.2f", d*s.cur.scale)
	}
	return fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, ","))
}

func pathData(sp subpath) string {
	var sb strings.Builder
	for i, p := range sp.points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%.2f,%.2f ", cmd, p.X, p.Y)
	}
	if sp.closed {
		sb.WriteString("Z")
	}
	return strings.TrimSpace(sb.String())
}

var _ render.Surface = (*SVG)(nil)
