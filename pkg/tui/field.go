package tui

import (
	"image/color"

	"gitlab.com/tinyland/lab/pinentry/pkg/pinentry"
)

// Field binds a Core to a Grid of its preferred size. The Core must have
// been built from Options passed through Metrics.Adapt.
type Field struct {
	core       *pinentry.Core
	metrics    Metrics
	background color.NRGBA
	grid       *Grid
}

// NewField returns a field cols cells wide. cols <= 0 leaves the field
// unlaid until Resize.
func NewField(core *pinentry.Core, m Metrics, background color.NRGBA, cols int) *Field {
	f := &Field{core: core, metrics: m.normalized(), background: background}
	f.Resize(cols)
	return f
}

// Core returns the wrapped control.
func (f *Field) Core() *pinentry.Core { return f.core }

// Cols returns the field width in cells.
func (f *Field) Cols() int { return f.grid.Cols() }

// Resize changes the field width and relays the Core out.
func (f *Field) Resize(cols int) {
	f.grid = NewGrid(cols, FieldRows, f.metrics, f.background)
	w, h := f.grid.PixelSize()
	f.core.Resize(w, h, pinentry.Insets{})
}

// Draw repaints the field and returns its grid. The grid is reused by the
// next Draw.
func (f *Field) Draw() *Grid {
	f.grid.Clear()
	f.core.Draw(f.grid)
	return f.grid
}

// View renders the field as a styled string.
func (f *Field) View() string {
	return f.Draw().Render()
}
