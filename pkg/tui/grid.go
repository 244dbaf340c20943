// Package tui draws pinentry fields onto terminal cells. A Grid is a
// pinentry.Canvas whose pixels are grouped into cells; bubbletea hosts turn
// it into a styled string and tcell hosts copy it onto their screen.
package tui

import (
	"image/color"
	"math"

	"gitlab.com/tinyland/lab/pinentry/pkg/components"
	"gitlab.com/tinyland/lab/pinentry/pkg/pinentry"
)

// Cell is one terminal cell. A zero Rune marks the right half of a wide
// glyph drawn in the cell to its left.
type Cell struct {
	Rune  rune
	FG    color.NRGBA // zero leaves the terminal default
	BG    color.NRGBA // zero leaves the terminal default
	Bold  bool
	Faint bool
}

var blank = Cell{Rune: ' '}

// Grid is a cols x rows block of cells addressed in pixels of
// Metrics.CellW x Metrics.CellH each.
type Grid struct {
	cols, rows int
	metrics    Metrics
	background color.NRGBA
	cells      []Cell
}

// NewGrid returns a cleared grid. background is what translucent glyphs
// blend against; zero means black.
func NewGrid(cols, rows int, m Metrics, background color.NRGBA) *Grid {
	cols, rows = max(cols, 0), max(rows, 0)
	g := &Grid{
		cols:       cols,
		rows:       rows,
		metrics:    m.normalized(),
		background: background,
		cells:      make([]Cell, cols*rows),
	}
	g.Clear()
	return g
}

// Cols returns the grid width in cells.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in cells.
func (g *Grid) Rows() int { return g.rows }

// PixelSize returns the grid size in the pixels the field is laid out in.
func (g *Grid) PixelSize() (w, h float32) {
	return float32(g.cols) * g.metrics.CellW, float32(g.rows) * g.metrics.CellH
}

// Clear resets every cell to a blank.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = blank
	}
}

// At returns the cell at col, row. Out of range reads return a blank.
func (g *Grid) At(col, row int) Cell {
	if !g.inside(col, row) {
		return blank
	}
	return g.cells[row*g.cols+col]
}

func (g *Grid) set(col, row int, c Cell) {
	if g.inside(col, row) {
		g.cells[row*g.cols+col] = c
	}
}

func (g *Grid) inside(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// colSpan returns the half-open cell range covering [x0, x1) px.
func (g *Grid) colSpan(x0, x1 float32) (int, int) {
	return int(math.Floor(float64(x0 / g.metrics.CellW))), int(math.Ceil(float64(x1 / g.metrics.CellW)))
}

// rowAt returns the row whose bottom edge is at or below y. A baseline or
// underline exactly on a cell boundary lands in the row above it.
func (g *Grid) rowAt(y float32) int {
	return int(math.Ceil(float64(y/g.metrics.CellH))) - 1
}

// colAt returns the cell nearest to x.
func (g *Grid) colAt(x float32) int {
	return int(math.Round(float64(x / g.metrics.CellW)))
}

// backdrop is the color under a cell for blending.
func (g *Grid) backdrop(c Cell) color.NRGBA {
	if c.BG != (color.NRGBA{}) {
		return c.BG
	}
	if g.background != (color.NRGBA{}) {
		return g.background
	}
	return color.NRGBA{A: 0xFF}
}

// FillRect sets the background of every cell touched by r. Terminal cells
// cannot round corners, so radius is ignored.
func (g *Grid) FillRect(r pinentry.Rect, _ float32, c color.NRGBA) {
	c0, c1 := g.colSpan(r.Left, r.Right)
	r0, r1 := int(math.Floor(float64(r.Top/g.metrics.CellH))), int(math.Ceil(float64(r.Bottom/g.metrics.CellH)))
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			if !g.inside(col, row) {
				continue
			}
			cell := g.At(col, row)
			cell.BG = components.Blend(c, g.backdrop(cell), 0xFF)
			g.set(col, row, cell)
		}
	}
}

// StrokeLine draws horizontal and vertical lines with box-drawing runes;
// widths above one and a half pixels get the heavy variant. Diagonals are
// not drawn.
func (g *Grid) StrokeLine(x0, y0, x1, y1, width float32, c color.NRGBA) {
	heavy := width > 1.5
	switch {
	case y0 == y1:
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		r := '─'
		if heavy {
			r = '━'
		}
		row := g.rowAt(y0)
		c0, c1 := g.colSpan(x0, x1)
		for col := c0; col < c1; col++ {
			g.stroke(col, row, r, c)
		}
	case x0 == x1:
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		r := '│'
		if heavy {
			r = '┃'
		}
		col := int(math.Floor(float64(x0 / g.metrics.CellW)))
		for row := g.rowAt(y0 + g.metrics.CellH); row <= g.rowAt(y1); row++ {
			g.stroke(col, row, r, c)
		}
	}
}

func (g *Grid) stroke(col, row int, r rune, c color.NRGBA) {
	if !g.inside(col, row) {
		return
	}
	cell := g.At(col, row)
	cell.Rune = r
	cell.FG = components.Blend(c, g.backdrop(cell), 0xFF)
	cell.Bold, cell.Faint = false, false
	g.set(col, row, cell)
}

// DrawText writes s left-aligned at x on the row above baseline. A glyph
// still much smaller than a cell is drawn as a dot, one larger than a cell
// (an overshooting pop-in) is drawn bold. Translucent colors are blended
// into the cell background.
func (g *Grid) DrawText(s string, x, baseline float32, st pinentry.TextStyle) {
	row := g.rowAt(baseline)
	col := g.colAt(x)
	tiny := st.Size < g.metrics.CellH/2
	for _, r := range s {
		w := components.VisibleLen(string(r))
		if w == 0 {
			continue
		}
		if tiny {
			r, w = '·', 1
		}
		if g.inside(col, row) {
			cell := g.At(col, row)
			cell.Rune = r
			cell.FG = components.Blend(st.Color, g.backdrop(cell), 0xFF)
			cell.Bold = st.Size > g.metrics.CellH+0.5
			cell.Faint = false
			g.set(col, row, cell)
			for i := 1; i < w; i++ {
				cont := g.At(col+i, row)
				cont.Rune = 0
				g.set(col+i, row, cont)
			}
		}
		col += w
	}
}

// TextWidth returns the advance of s: its cell width times CellW. Terminal
// glyphs do not scale, so size is ignored.
func (g *Grid) TextWidth(s string, _ float32) float32 {
	return float32(components.VisibleLen(s)) * g.metrics.CellW
}
