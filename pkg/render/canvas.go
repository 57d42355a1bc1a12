// pkg/render/canvas.go
package render

import (
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/opd-ai/go-chaostheory/pkg/physics"
)

// Cell is one character cell of a Canvas
type Cell struct {
	Rune  rune
	Style Style
}

var glyphs = map[Style]rune{
	StyleTrail:         '.',
	StyleHistory:       '\'',
	StyleRedZone:       'x',
	StyleClosed:        ':',
	StyleTarget:        'O',
	StyleTargetTouched: '-',
	StyleBonus:         '=',
	StyleLink:          '+',
	StylePoint:         '@',
	StyleRoot:          '#',
	StylePreview:       '~',
	StylePreviewLink:   '*',
}

// Glyph returns the character a style is drawn with on a Canvas
func Glyph(s Style) rune {
	if r, ok := glyphs[s]; ok {
		return r
	}
	return '?'
}

// Canvas rasterises frames into a grid of character cells. It implements
// Renderer; terminal hosts copy the cells to the screen after Draw.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
	view   Viewport
}

// NewCanvas creates a canvas of the given size in cells
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates the grid and refits the viewport
func (c *Canvas) Resize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	c.width, c.height = width, height
	c.cells = make([][]Cell, height)
	for i := range c.cells {
		c.cells[i] = make([]Cell, width)
	}
	c.view = Fit(float64(width), float64(height), 0.5)
	c.Clear()
}

// Size returns the grid dimensions
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Viewport returns the world-to-cell mapping
func (c *Canvas) Viewport() Viewport {
	return c.view
}

// Cell returns the cell at x, y. Out-of-range reads return a blank cell.
func (c *Canvas) Cell(x, y int) Cell {
	if !c.inBounds(x, y) {
		return Cell{Rune: ' '}
	}
	return c.cells[y][x]
}

// CellToWorld returns the world position under the centre of a cell
func (c *Canvas) CellToWorld(x, y int) physics.Vector2D {
	return c.view.ToWorld(float64(x)+0.5, float64(y)+0.5)
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func (c *Canvas) set(x, y int, r rune, s Style) {
	if c.inBounds(x, y) {
		c.cells[y][x] = Cell{Rune: r, Style: s}
	}
}

// cellLimit bounds cell coordinates so far away points still convert
// to an int safely
const cellLimit = 1 << 30

// worldToScreen converts world coordinates to cell coordinates
func (c *Canvas) worldToScreen(pos physics.Vector2D) (int, int) {
	x, y := c.view.ToScreen(pos)
	x = math.Max(-cellLimit, math.Min(cellLimit, math.Floor(x)))
	y = math.Max(-cellLimit, math.Min(cellLimit, math.Floor(y)))
	return int(x), int(y)
}

func finite(v physics.Vector2D) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// clip trims the segment ab to the world rectangle under the canvas,
// padded by one cell on each side. It reports false when nothing of the
// segment is left.
func (c *Canvas) clip(a, b physics.Vector2D) (physics.Vector2D, physics.Vector2D, bool) {
	if !finite(a) || !finite(b) {
		return a, b, false
	}
	lo := c.view.ToWorld(-1, -1)
	hi := c.view.ToWorld(float64(c.width+1), float64(c.height+1))
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	for _, edge := range [4][2]float64{
		{-d.X, a.X - lo.X},
		{d.X, hi.X - a.X},
		{-d.Y, a.Y - lo.Y},
		{d.Y, hi.Y - a.Y},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	return a.Lerp(b, t0), a.Lerp(b, t1), true
}

// WorldToCell returns the cell containing a world position
func (c *Canvas) WorldToCell(pos physics.Vector2D) (int, int) {
	return c.worldToScreen(pos)
}

// Clear implements Renderer
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' ', Style: StyleGrid}
		}
	}
}

// Line implements Renderer using Bresenham's algorithm over the part of
// the segment that is on the canvas
func (c *Canvas) Line(a, b physics.Vector2D, style Style) {
	a, b, ok := c.clip(a, b)
	if !ok {
		return
	}
	x0, y0 := c.worldToScreen(a)
	x1, y1 := c.worldToScreen(b)
	c.plotLine(x0, y0, x1, y1, Glyph(style), style)
}

func (c *Canvas) plotLine(x0, y0, x1, y1 int, r rune, style Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.set(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Polyline implements Renderer
func (c *Canvas) Polyline(points []physics.Vector2D, style Style) {
	for i := 1; i < len(points); i++ {
		c.Line(points[i-1], points[i], style)
	}
}

// Circle implements Renderer
func (c *Canvas) Circle(zone physics.Zone, style Style, filled bool) {
	if !finite(zone.Center) || !(zone.Radius >= 0) || math.IsInf(zone.Radius, 0) {
		return
	}
	r := Glyph(style)
	if filled {
		c.fillCircle(zone, r, style)
		return
	}

	// past one sample per perimeter cell, scanning the grid is cheaper
	circumference := 2 * math.Pi * zone.Radius * c.view.Scale * 2
	if circumference > float64(4*(c.width+c.height)) {
		c.ringCells(zone, r, style)
		return
	}
	steps := max(16, int(circumference))
	for i := 0; i < steps; i++ {
		if style.Dashed() && (i/2)%2 == 1 {
			continue
		}
		angle := 2 * math.Pi * float64(i) / float64(steps)
		p := zone.Center.Add(physics.Vec(math.Cos(angle), math.Sin(angle)).Scale(zone.Radius))
		x, y := c.worldToScreen(p)
		c.set(x, y, r, style)
	}
}

// ringCells marks the cells whose centre lies within half a cell of the
// zone boundary
func (c *Canvas) ringCells(zone physics.Zone, r rune, style Style) {
	tolerance := c.CellToWorld(1, 1).Sub(c.CellToWorld(0, 0)).Length() / 2
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if style.Dashed() && ((x+y)/2)%2 == 1 {
				continue
			}
			d := c.CellToWorld(x, y).Distance(zone.Center)
			if math.Abs(d-zone.Radius) <= tolerance {
				c.set(x, y, r, style)
			}
		}
	}
}

func (c *Canvas) fillCircle(zone physics.Zone, r rune, style Style) {
	x0, y0 := c.worldToScreen(zone.Center.Sub(physics.Vec(zone.Radius, zone.Radius)))
	x1, y1 := c.worldToScreen(zone.Center.Add(physics.Vec(zone.Radius, zone.Radius)))
	for y := max(y0, 0); y <= min(y1, c.height-1); y++ {
		for x := max(x0, 0); x <= min(x1, c.width-1); x++ {
			if zone.Contains(c.CellToWorld(x, y)) {
				c.set(x, y, r, style)
			}
		}
	}
	cx, cy := c.worldToScreen(zone.Center)
	c.set(cx, cy, r, style)
}

// Text implements Renderer
func (c *Canvas) Text(pos physics.Vector2D, text string, style Style) {
	x, y := c.worldToScreen(pos)
	c.writeString(x, y, text, style)
}

// Caption implements Renderer
func (c *Canvas) Caption(row int, text string, style Style) {
	x := (c.width - utf8.RuneCountInString(text)) / 2
	c.writeString(max(x, 0), row, text, style)
}

func (c *Canvas) writeString(x, y int, text string, style Style) {
	for _, r := range text {
		c.set(x, y, r, style)
		x++
	}
}

// Present implements Renderer. Hosts read the cells after Draw returns.
func (c *Canvas) Present() error {
	return nil
}

// String returns the grid as newline separated rows
func (c *Canvas) String() string {
	var sb strings.Builder
	for y := range c.cells {
		for _, cell := range c.cells[y] {
			sb.WriteRune(cell.Rune)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteTo writes the grid inside a border
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", c.width) + "+\n"
	sb.WriteString(border)
	for y := range c.cells {
		sb.WriteByte('|')
		for _, cell := range c.cells[y] {
			sb.WriteRune(cell.Rune)
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
