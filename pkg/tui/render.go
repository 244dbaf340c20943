package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"

	"gitlab.com/tinyland/lab/pinentry/pkg/components"
)

// cellStyle is the part of a Cell that decides its escape sequences.
type cellStyle struct {
	fg, bg      color.NRGBA
	bold, faint bool
}

func (c Cell) style() cellStyle {
	return cellStyle{fg: c.FG, bg: c.BG, bold: c.Bold, faint: c.Faint}
}

func (s cellStyle) lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.fg != (color.NRGBA{}) {
		st = st.Foreground(lipgloss.Color(components.Hex(s.fg)))
	}
	if s.bg != (color.NRGBA{}) {
		st = st.Background(lipgloss.Color(components.Hex(s.bg)))
	}
	if s.bold {
		st = st.Bold(true)
	}
	if s.faint {
		st = st.Faint(true)
	}
	return st
}

// Render returns the grid as newline separated rows. Runs of equally
// styled cells share one lipgloss style so the output stays small.
func (g *Grid) Render() string {
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < g.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		run.Reset()
		var cur cellStyle
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == (cellStyle{}) {
				b.WriteString(run.String())
			} else {
				b.WriteString(cur.lipgloss().Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < g.cols; col++ {
			c := g.At(col, row)
			if c.Rune == 0 {
				continue
			}
			if s := c.style(); s != cur {
				flush()
				cur = s
			}
			run.WriteRune(c.Rune)
		}
		flush()
	}
	return b.String()
}

// Blit copies the grid onto screen with its top-left cell at x, y. Cells
// outside the screen are clipped.
func (g *Grid) Blit(screen tcell.Screen, x, y int) {
	if screen == nil {
		return
	}
	sw, sh := screen.Size()
	for row := 0; row < g.rows; row++ {
		sy := y + row
		if sy < 0 || sy >= sh {
			continue
		}
		for col := 0; col < g.cols; col++ {
			sx := x + col
			c := g.At(col, row)
			if c.Rune == 0 || sx < 0 || sx >= sw {
				continue
			}
			screen.SetContent(sx, sy, c.Rune, nil, tcellStyle(c))
		}
	}
}

func tcellStyle(c Cell) tcell.Style {
	st := tcell.StyleDefault
	if c.FG != (color.NRGBA{}) {
		st = st.Foreground(tcellColor(c.FG))
	}
	if c.BG != (color.NRGBA{}) {
		st = st.Background(tcellColor(c.BG))
	}
	return st.Bold(c.Bold).Dim(c.Faint)
}

func tcellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
