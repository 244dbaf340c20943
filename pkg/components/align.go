// Package components holds the terminal text and color primitives shared by
// the pinentry terminal hosts: hex color parsing, ANSI-aware width and
// padding helpers, and the titled frame drawn around each demo field.
package components

// Align controls horizontal placement of a frame title.
type Align int

const (
	// AlignLeft places the title after the top-left corner (default).
	AlignLeft Align = iota
	// AlignCenter centers the title in the top border.
	AlignCenter
	// AlignRight places the title before the top-right corner.
	AlignRight
)

// Padding is spacing in terminal cells on each side of a frame interior.
type Padding struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// NewPaddingHV creates a Padding with separate horizontal and vertical
// values. Negative values clamp to zero.
func NewPaddingHV(horiz, vert int) Padding {
	horiz = max(horiz, 0)
	vert = max(vert, 0)
	return Padding{Top: vert, Right: horiz, Bottom: vert, Left: horiz}
}

// Horizontal returns Left + Right.
func (p Padding) Horizontal() int { return p.Left + p.Right }

// Vertical returns Top + Bottom.
func (p Padding) Vertical() int { return p.Top + p.Bottom }
