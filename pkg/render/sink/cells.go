package sink

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cfgexplorer/pkg/layout"
	"github.com/matzehuels/cfgexplorer/pkg/render"
	"github.com/matzehuels/cfgexplorer/pkg/viewport"
)

// Box-drawing glyphs.
const (
	glyphH       = '─'
	glyphV       = '│'
	glyphHDash   = '╌'
	glyphVDash   = '╎'
	glyphDiagDn  = '╲'
	glyphDiagUp  = '╱'
	glyphHHeavy  = '━'
	glyphVHeavy  = '┃'
	glyphArrowR  = '▶'
	glyphArrowL  = '◀'
	glyphArrowD  = '▼'
	glyphArrowU  = '▲'
	heavyBorderW = 3.0
)

var (
	lightCorners = [4]rune{'╭', '╮', '╰', '╯'}
	heavyCorners = [4]rune{'┏', '┓', '┗', '┛'}
)

type cell struct {
	ch    rune
	fg    string
	bg    string
	faint bool
}

// Cells is a surface that paints onto a grid of terminal character cells.
// Each cell covers CellWidth x CellHeight screen units; text always occupies
// one cell per rune regardless of font size.
type Cells struct {
	stateStack
	cols, rows   int
	cellW, cellH float64
	grid         [][]cell
	path         pathBuilder
}

// NewCells returns a cols x rows grid whose cells are cellW x cellH screen
// units.
func NewCells(cols, rows int, cellW, cellH float64) *Cells {
	c := &Cells{stateStack: newStateStack(), cellW: cellW, cellH: cellH}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the grid to cols x rows and clears it.
func (c *Cells) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.grid = make([][]cell, c.rows)
	for i := range c.grid {
		c.grid[i] = make([]cell, c.cols)
	}
	c.Clear("")
}

// Dimensions returns the grid size in cells.
func (c *Cells) Dimensions() (cols, rows int) { return c.cols, c.rows }

// CellCenter returns the screen-space center of a cell, for mapping mouse
// positions back onto the surface.
func (c *Cells) CellCenter(col, row int) layout.Point {
	return layout.Point{X: (float64(col) + 0.5) * c.cellW, Y: (float64(row) + 0.5) * c.cellH}
}

// CellSize returns the screen-space size of one cell.
func (c *Cells) CellSize() viewport.Size { return viewport.Size{Width: c.cellW, Height: c.cellH} }

// String renders the grid with lipgloss colors, one line per row.
func (c *Cells) String() string {
	var sb strings.Builder
	for r, row := range c.grid {
		if r > 0 {
			sb.WriteByte('\n')
		}
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && sameStyle(row[i], row[start]) {
				continue
			}
			sb.WriteString(styleFor(row[start]).Render(runesOf(row[start:i])))
			start = i
		}
	}
	return sb.String()
}

// Plain returns the grid's characters without styling, trailing spaces trimmed.
func (c *Cells) Plain() string {
	lines := make([]string, len(c.grid))
	for r, row := range c.grid {
		lines[r] = strings.TrimRight(runesOf(row), " ")
	}
	return strings.Join(lines, "\n")
}

func (c *Cells) Size() viewport.Size {
	return viewport.Size{Width: float64(c.cols) * c.cellW, Height: float64(c.rows) * c.cellH}
}

func (c *Cells) Clear(color string) {
	c.stateStack.reset()
	c.path.begin()
	for r := range c.grid {
		for i := range c.grid[r] {
			c.grid[r][i] = cell{ch: ' ', bg: color}
		}
	}
}

func (c *Cells) BeginPath()          { c.path.begin() }
func (c *Cells) MoveTo(x, y float64) { c.path.moveTo(c.cur.apply(x, y)) }
func (c *Cells) LineTo(x, y float64) { c.path.lineTo(c.cur.apply(x, y)) }
func (c *Cells) ClosePath()          { c.path.close() }

func (c *Cells) RoundedRect(x, y, w, h, r float64) {
	p := c.cur.apply(x, y)
	k := c.cur.scale
	c.path.roundedRect(roundRect{x: p.X, y: p.Y, w: w * k, h: h * k, r: r * k})
}

// Fill paints rectangles as solid background and triangles as a single
// arrow glyph pointing at their first vertex.
func (c *Cells) Fill() {
	for _, sp := range c.path.subpaths {
		switch {
		case sp.rect != nil:
			c.fillArea(sp.rect.x, sp.rect.y, sp.rect.w, sp.rect.h)
		case len(sp.points) == 3:
			c.fillArrow(sp.points)
		}
	}
}

func (c *Cells) Stroke() {
	for _, sp := range c.path.subpaths {
		if sp.rect != nil {
			c.strokeBox(*sp.rect)
			continue
		}
		for i := 1; i < len(sp.points); i++ {
			c.strokeSegment(sp.points[i-1], sp.points[i])
		}
		if sp.closed && len(sp.points) > 2 {
			c.strokeSegment(sp.points[len(sp.points)-1], sp.points[0])
		}
	}
}

func (c *Cells) FillRect(x, y, w, h float64) {
	p := c.cur.apply(x, y)
	k := c.cur.scale
	c.fillArea(p.X, p.Y, w*k, h*k)
}

func (c *Cells) FillText(text string, x, y float64) {
	col, row := c.toCell(c.cur.apply(x, y))
	col -= utf8.RuneCountInString(text) / 2
	for i, r := range []rune(text) {
		c.put(col+i, row, r, c.cur.fill, false)
	}
}

func (c *Cells) MeasureText(text string) float64 {
	if c.cur.scale == 0 {
		return 0
	}
	return float64(utf8.RuneCountInString(text)) * c.cellW / c.cur.scale
}

// =============================================================================
// Rasterization
// =============================================================================

func (c *Cells) toCell(p layout.Point) (col, row int) {
	return int(math.Floor(p.X / c.cellW)), int(math.Floor(p.Y / c.cellH))
}

func (c *Cells) inBounds(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

// put writes a glyph, keeping the cell's background. When bg is set the
// background is replaced with the current fill color instead.
func (c *Cells) put(col, row int, ch rune, fg string, bg bool) {
	if !c.inBounds(col, row) {
		return
	}
	cl := &c.grid[row][col]
	cl.ch = ch
	cl.fg = fg
	cl.faint = c.cur.alpha < 1
	if bg {
		cl.bg = c.cur.fill
	}
}

func (c *Cells) fillArea(x, y, w, h float64) {
	c0, r0 := c.toCell(layout.Point{X: x, Y: y})
	c1, r1 := c.toCell(layout.Point{X: x + w, Y: y + h})
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c.put(col, row, ' ', "", true)
		}
	}
}

func (c *Cells) fillArrow(pts []layout.Point) {
	tip := pts[0]
	base := layout.Point{X: (pts[1].X + pts[2].X) / 2, Y: (pts[1].Y + pts[2].Y) / 2}
	dx, dy := tip.X-base.X, tip.Y-base.Y

	var glyph rune
	switch {
	case math.Abs(dx) >= math.Abs(dy) && dx >= 0:
		glyph = glyphArrowR
	case math.Abs(dx) >= math.Abs(dy):
		glyph = glyphArrowL
	case dy >= 0:
		glyph = glyphArrowD
	default:
		glyph = glyphArrowU
	}

	// Step back from the tip so the glyph does not land on the node border.
	col, row := c.toCell(tip)
	switch glyph {
	case glyphArrowD:
		row--
	case glyphArrowU:
		row++
	case glyphArrowR:
		col--
	case glyphArrowL:
		col++
	}
	c.put(col, row, glyph, c.cur.fill, false)
}

func (c *Cells) strokeBox(r roundRect) {
	c0, r0 := c.toCell(layout.Point{X: r.x, Y: r.y})
	c1, r1 := c.toCell(layout.Point{X: r.x + r.w, Y: r.y + r.h})
	if c1 <= c0 || r1 <= r0 {
		c.put(c0, r0, '□', c.cur.stroke, false)
		return
	}

	heavy := c.cur.lineWidth >= heavyBorderW
	corners, h, v := lightCorners, glyphH, glyphV
	if heavy {
		corners, h, v = heavyCorners, glyphHHeavy, glyphVHeavy
	}
	for col := c0 + 1; col < c1; col++ {
		c.put(col, r0, h, c.cur.stroke, false)
		c.put(col, r1, h, c.cur.stroke, false)
	}
	for row := r0 + 1; row < r1; row++ {
		c.put(c0, row, v, c.cur.stroke, false)
		c.put(c1, row, v, c.cur.stroke, false)
	}
	c.put(c0, r0, corners[0], c.cur.stroke, false)
	c.put(c1, r0, corners[1], c.cur.stroke, false)
	c.put(c0, r1, corners[2], c.cur.stroke, false)
	c.put(c1, r1, corners[3], c.cur.stroke, false)
}

// strokeSegment draws a line with Bresenham's algorithm in cell space.
func (c *Cells) strokeSegment(a, b layout.Point) {
	x0, y0 := c.toCell(a)
	x1, y1 := c.toCell(b)

	dashed := len(c.cur.dash) > 0
	var glyph rune
	switch {
	case y0 == y1:
		glyph = glyphH
		if dashed {
			glyph = glyphHDash
		}
	case x0 == x1:
		glyph = glyphV
		if dashed {
			glyph = glyphVDash
		}
	case (x1 > x0) == (y1 > y0):
		glyph = glyphDiagDn
	default:
		glyph = glyphDiagUp
	}

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		c.put(x0, y0, glyph, c.cur.stroke, false)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// =============================================================================
// Styling
// =============================================================================

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.faint == b.faint
}

func styleFor(cl cell) lipgloss.Style {
	st := lipgloss.NewStyle()
	if cl.fg != "" {
		st = st.Foreground(lipgloss.Color(cl.fg))
	}
	if cl.bg != "" {
		st = st.Background(lipgloss.Color(cl.bg))
	}
	if cl.faint {
		st = st.Faint(true)
	}
	return st
}

func runesOf(cells []cell) string {
	var sb strings.Builder
	for _, cl := range cells {
		sb.WriteRune(cl.ch)
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

var _ render.Surface = (*Cells)(nil)
