package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"

	"github.com/matzehuels/cfgexplorer/pkg/render"
	"github.com/matzehuels/cfgexplorer/pkg/viewport"
)

var (
	fontsOnce sync.Once
	monoFont  *truetype.Font
	boldFont  *truetype.Font
	fontsErr  error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if monoFont, fontsErr = truetype.Parse(gomono.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parse mono font: %w", fontsErr)
			return
		}
		if boldFont, fontsErr = truetype.Parse(gomonobold.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parse bold mono font: %w", fontsErr)
		}
	})
	return fontsErr
}

// rasterState is the part of the state gg does not track for us.
type rasterState struct {
	scale     float64
	alpha     float64
	dash      []float64
	lineWidth float64
	fill      string
	stroke    string
	font      render.Font
}

// Raster is a surface backed by an RGBA image.
type Raster struct {
	dc    *gg.Context
	size  viewport.Size
	cur   rasterState
	saved []rasterState
	faces map[render.Font]font.Face
}

// NewRaster returns a raster surface of the given size in pixels.
func NewRaster(size viewport.Size) (*Raster, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	w := max(1, int(math.Ceil(size.Width)))
	h := max(1, int(math.Ceil(size.Height)))
	return &Raster{
		dc:    gg.NewContext(w, h),
		size:  size,
		cur:   defaultRasterState(),
		faces: make(map[render.Font]font.Face),
	}, nil
}

func defaultRasterState() rasterState {
	return rasterState{scale: 1, alpha: 1, lineWidth: 1, fill: "#000000", stroke: "#000000", font: render.Font{Size: 10}}
}

// Image returns the painted image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// PNG encodes the painted image.
func (r *Raster) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.dc.Image()); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// SavePNG writes the painted image to path.
func (r *Raster) SavePNG(path string) error { return r.dc.SavePNG(path) }

func (r *Raster) Size() viewport.Size { return r.size }

func (r *Raster) Clear(color string) {
	r.dc.Identity()
	r.dc.ClearPath()
	r.dc.SetDash()
	r.cur = defaultRasterState()
	r.saved = r.saved[:0]
	r.dc.SetColor(render.ParseColor(color, 1))
	r.dc.Clear()
}

func (r *Raster) Save() {
	r.dc.Push()
	r.saved = append(r.saved, r.cur)
}

func (r *Raster) Restore() {
	if len(r.saved) == 0 {
		return
	}
	r.dc.Pop()
	r.cur = r.saved[len(r.saved)-1]
	r.saved = r.saved[:len(r.saved)-1]
}

func (r *Raster) Translate(x, y float64) { r.dc.Translate(x, y) }

func (r *Raster) Scale(s float64) {
	r.dc.Scale(s, s)
	r.cur.scale *= s
}

func (r *Raster) SetAlpha(a float64)          { r.cur.alpha = a }
func (r *Raster) SetLineDash(dash ...float64) { r.cur.dash = append([]float64(nil), dash...) }
func (r *Raster) SetLineWidth(w float64)      { r.cur.lineWidth = w }
func (r *Raster) SetFillColor(c string)       { r.cur.fill = c }
func (r *Raster) SetStrokeColor(c string)     { r.cur.stroke = c }
func (r *Raster) SetFont(f render.Font)       { r.cur.font = f }

func (r *Raster) BeginPath()          { r.dc.ClearPath() }
func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }
func (r *Raster) ClosePath()          { r.dc.ClosePath() }

func (r *Raster) RoundedRect(x, y, w, h, radius float64) {
	r.dc.DrawRoundedRectangle(x, y, w, h, radius)
}

func (r *Raster) Fill() {
	r.dc.SetColor(render.ParseColor(r.cur.fill, r.cur.alpha))
	r.dc.FillPreserve()
}

// Stroke outlines the current path. gg strokes in device space, so width and
// dash lengths are scaled here.
func (r *Raster) Stroke() {
	r.dc.SetColor(render.ParseColor(r.cur.stroke, r.cur.alpha))
	r.dc.SetLineWidth(r.cur.lineWidth * r.cur.scale)
	dash := make([]float64, len(r.cur.dash))
	for i, d := range r.cur.dash {
		dash[i] = d * r.cur.scale
	}
	r.dc.SetDash(dash...)
	r.dc.StrokePreserve()
}

// FillRect paints a rectangle. Unlike a browser canvas, it replaces the
// current path.
func (r *Raster) FillRect(x, y, w, h float64) {
	r.dc.ClearPath()
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.SetColor(render.ParseColor(r.cur.fill, r.cur.alpha))
	r.dc.Fill()
}

func (r *Raster) FillText(text string, x, y float64) {
	r.dc.SetFontFace(r.face(r.cur.font))
	r.dc.SetColor(render.ParseColor(r.cur.fill, r.cur.alpha))
	r.dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}

func (r *Raster) MeasureText(text string) float64 {
	r.dc.SetFontFace(r.face(r.cur.font))
	w, _ := r.dc.MeasureString(text)
	return w
}

func (r *Raster) face(f render.Font) font.Face {
	if face, ok := r.faces[f]; ok {
		return face
	}
	ttf := monoFont
	if f.Bold {
		ttf = boldFont
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[f] = face
	return face
}

var _ render.Surface = (*Raster)(nil)
