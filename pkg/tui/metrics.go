package tui

import (
	"math"

	"gitlab.com/tinyland/lab/pinentry/pkg/pinentry"
	"gitlab.com/tinyland/lab/pinentry/pkg/terminal"
)

// Field geometry in cells.
const (
	// FieldRows is the height of a field: one row of headroom for the
	// bottom-up animation, the glyph row and the underline row.
	FieldRows = 3
	// SlotCols is the preferred width of one slot.
	SlotCols = 6
	// EvenSlotCols is the slot width used when slots are spread evenly,
	// which leaves a slot-wide gap between neighbours.
	EvenSlotCols = 4
)

// Metrics is the pixel size of one terminal cell.
type Metrics struct {
	CellW, CellH float32
}

// DefaultMetrics returns the metrics used when the terminal does not report
// its pixel size.
func DefaultMetrics() Metrics {
	return Metrics{CellW: terminal.DefaultCellW, CellH: terminal.DefaultCellH}
}

// MetricsFor returns the cell metrics of a detected terminal size.
func MetricsFor(s terminal.Size) Metrics {
	w, h := s.Cell()
	return Metrics{CellW: float32(w), CellH: float32(h)}.normalized()
}

func (m Metrics) normalized() Metrics {
	if m.CellW <= 0 {
		m.CellW = terminal.DefaultCellW
	}
	if m.CellH <= 0 {
		m.CellH = terminal.DefaultCellH
	}
	return m
}

// Adapt rewrites o for a cell grid: lengths are converted to px and
// spacing snapped to whole cells; glyphs are one cell tall and sit one
// cell above the underline.
func (m Metrics) Adapt(o pinentry.Options) pinentry.Options {
	m = m.normalized()
	density := o.Density
	if density <= 0 {
		density = 1
	}
	if o.Spacing >= 0 {
		o.Spacing = m.spacingCols(o.Spacing*density) * m.CellW
	}
	o.LineStroke *= density
	o.LineStrokeSelected *= density
	if o.Background != nil {
		bg := *o.Background
		bg.Radius *= density
		o.Background = &bg
	}
	o.Density = 1
	o.TextSize = m.CellH
	o.TextHeight = m.CellH
	o.TextBottomPadding = m.CellH
	return o
}

func (m Metrics) spacingCols(px float32) float32 {
	return float32(math.Round(float64(px / m.CellW)))
}

// PreferredCols returns the width in cells a field built from an adapted
// o wants.
func (m Metrics) PreferredCols(o pinentry.Options) int {
	m = m.normalized()
	n := o.MaxLength
	if n <= 0 {
		n = pinentry.DefaultMaxLength
	}
	switch {
	case o.Spacing < 0:
		return (2*n - 1) * EvenSlotCols
	case o.Background != nil && o.BackgroundIsSquare:
		// Square boxes are as wide as the field is tall.
		side := int(math.Ceil(float64(FieldRows * m.CellH / m.CellW)))
		return n*side + int(m.spacingCols(o.Spacing))*(n-1)
	default:
		return n*SlotCols + int(m.spacingCols(o.Spacing))*(n-1)
	}
}
