package pinentry

import "image/color"

// TextStyle describes how a glyph is drawn.
type TextStyle struct {
	Size  float32 // px
	Color color.NRGBA
}

// Canvas is the drawing surface a host adapter hands to Core.Draw.
// Coordinates are px with y growing downwards.
type Canvas interface {
	// FillRect fills r with c, rounding the corners by radius.
	FillRect(r Rect, radius float32, c color.NRGBA)
	// StrokeLine draws a straight line of the given width.
	StrokeLine(x0, y0, x1, y1, width float32, c color.NRGBA)
	// DrawText draws s with its left edge at x and its baseline at y.
	DrawText(s string, x, baseline float32, st TextStyle)
	// TextWidth returns the advance of s at size.
	TextWidth(s string, size float32) float32
}

// Host is the toolkit side of a Core. All methods are optional hints.
type Host interface {
	// RequestFocus asks the toolkit to route input to the field.
	RequestFocus()
	// ShowSoftInput asks for the on-screen keyboard, where there is one.
	ShowSoftInput()
	// Invalidate asks for a redraw.
	Invalidate()
}
