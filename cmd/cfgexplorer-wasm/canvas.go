//go:build js && wasm

package main

import (
	"fmt"
	"math"
	"syscall/js"

	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/render"
	"github.com/matzehuels/cfgexplorer/pkg/viewport"
)

// canvas draws onto an HTMLCanvasElement through its 2D context.
// The element and context are looked up once and held for the page's lifetime.
type canvas struct {
	el  js.Value
	ctx js.Value
}

func newCanvas(doc js.Value, id string) (*canvas, error) {
	el := doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, errors.New(errors.ErrCodeInitialization, "canvas %q not found", id)
	}
	ctx := el.Call("getContext", "2d")
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, errors.New(errors.ErrCodeInitialization, "canvas %q has no 2d context", id)
	}
	return &canvas{el: el, ctx: ctx}, nil
}

func (c *canvas) Size() viewport.Size {
	return viewport.Size{
		Width:  c.el.Get("width").Float(),
		Height: c.el.Get("height").Float(),
	}
}

func (c *canvas) Clear(color string) {
	c.ctx.Call("setTransform", 1, 0, 0, 1, 0, 0)
	c.ctx.Set("globalAlpha", 1)
	c.ctx.Call("setLineDash", js.ValueOf([]any{}))
	c.ctx.Call("beginPath")
	sz := c.Size()
	c.ctx.Set("fillStyle", color)
	c.ctx.Call("fillRect", 0, 0, sz.Width, sz.Height)
}

func (c *canvas) Save()                  { c.ctx.Call("save") }
func (c *canvas) Restore()               { c.ctx.Call("restore") }
func (c *canvas) Translate(x, y float64) { c.ctx.Call("translate", x, y) }
func (c *canvas) Scale(s float64)        { c.ctx.Call("scale", s, s) }

func (c *canvas) SetAlpha(a float64)          { c.ctx.Set("globalAlpha", a) }
func (c *canvas) SetLineWidth(w float64)      { c.ctx.Set("lineWidth", w) }
func (c *canvas) SetFillColor(color string)   { c.ctx.Set("fillStyle", color) }
func (c *canvas) SetStrokeColor(color string) { c.ctx.Set("strokeStyle", color) }

func (c *canvas) SetLineDash(dash ...float64) {
	segs := make([]any, len(dash))
	for i, d := range dash {
		segs[i] = d
	}
	c.ctx.Call("setLineDash", js.ValueOf(segs))
}

func (c *canvas) BeginPath()          { c.ctx.Call("beginPath") }
func (c *canvas) MoveTo(x, y float64) { c.ctx.Call("moveTo", x, y) }
func (c *canvas) LineTo(x, y float64) { c.ctx.Call("lineTo", x, y) }
func (c *canvas) ClosePath()          { c.ctx.Call("closePath") }
func (c *canvas) Fill()               { c.ctx.Call("fill") }
func (c *canvas) Stroke()             { c.ctx.Call("stroke") }

func (c *canvas) FillRect(x, y, w, h float64) { c.ctx.Call("fillRect", x, y, w, h) }

// RoundedRect traces the outline with arcs; roundRect is missing from older
// browsers.
func (c *canvas) RoundedRect(x, y, w, h, r float64) {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	c.ctx.Call("moveTo", x+r, y)
	c.ctx.Call("arcTo", x+w, y, x+w, y+h, r)
	c.ctx.Call("arcTo", x+w, y+h, x, y+h, r)
	c.ctx.Call("arcTo", x, y+h, x, y, r)
	c.ctx.Call("arcTo", x, y, x+w, y, r)
	c.ctx.Call("closePath")
}

func (c *canvas) SetFont(f render.Font) {
	weight := ""
	if f.Bold {
		weight = "bold "
	}
	c.ctx.Set("font", fmt.Sprintf("%s%.1fpx ui-monospace, Menlo, Consolas, monospace", weight, f.Size))
}

func (c *canvas) FillText(text string, x, y float64) {
	c.ctx.Set("textAlign", "center")
	c.ctx.Set("textBaseline", "middle")
	c.ctx.Call("fillText", text, x, y)
}

func (c *canvas) MeasureText(text string) float64 {
	return c.ctx.Call("measureText", text).Get("width").Float()
}

var _ render.Surface = (*canvas)(nil)
