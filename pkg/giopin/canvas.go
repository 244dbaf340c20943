// Package giopin hosts a pinentry.Core as a gio widget.
package giopin

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"golang.org/x/image/math/fixed"

	"gitlab.com/tinyland/lab/pinentry/pkg/pinentry"
)

// Canvas draws into a gio op list. Text is shaped with Shaper in Font.
type Canvas struct {
	Ops    *op.Ops
	Shaper *text.Shaper
	Font   font.Font

	glyphs []text.Glyph
}

var _ pinentry.Canvas = (*Canvas)(nil)

// FillRect implements pinentry.Canvas.
func (c *Canvas) FillRect(r pinentry.Rect, radius float32, col color.NRGBA) {
	rect := image.Rect(int(r.Left+0.5), int(r.Top+0.5), int(r.Right+0.5), int(r.Bottom+0.5))
	paint.FillShape(c.Ops, col, clip.UniformRRect(rect, int(radius+0.5)).Op(c.Ops))
}

// StrokeLine implements pinentry.Canvas.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float32, col color.NRGBA) {
	var p clip.Path
	p.Begin(c.Ops)
	p.MoveTo(f32.Pt(x0, y0))
	p.LineTo(f32.Pt(x1, y1))
	paint.FillShape(c.Ops, col, clip.Stroke{Path: p.End(), Width: width}.Op())
}

// DrawText implements pinentry.Canvas.
func (c *Canvas) DrawText(s string, x, baseline float32, st pinentry.TextStyle) {
	if s == "" || st.Size <= 0 {
		return
	}
	c.shape(s, st.Size)
	if len(c.glyphs) == 0 {
		return
	}
	first := c.glyphs[0]
	origin := f32.Pt(x+float32(first.X)/64, baseline)
	defer op.Affine(f32.Affine2D{}.Offset(origin)).Push(c.Ops).Pop()

	outline := clip.Outline{Path: c.Shaper.Shape(c.glyphs)}.Op().Push(c.Ops)
	paint.ColorOp{Color: st.Color}.Add(c.Ops)
	paint.PaintOp{}.Add(c.Ops)
	outline.Pop()
	if call := c.Shaper.Bitmaps(c.glyphs); call != (op.CallOp{}) {
		call.Add(c.Ops)
	}
}

// TextWidth implements pinentry.Canvas.
func (c *Canvas) TextWidth(s string, size float32) float32 {
	if s == "" || size <= 0 {
		return 0
	}
	c.shape(s, size)
	var w fixed.Int26_6
	for _, g := range c.glyphs {
		w += g.Advance
	}
	return float32(w) / 64
}

// Ascent returns the height above the baseline of a line at size.
func (c *Canvas) Ascent(size float32) float32 {
	c.shape("0", size)
	if len(c.glyphs) == 0 {
		return size
	}
	return float32(c.glyphs[0].Ascent) / 64
}

// shape lays s out on a single line into c.glyphs.
func (c *Canvas) shape(s string, size float32) {
	c.Shaper.LayoutString(text.Parameters{
		Font:     c.Font,
		PxPerEm:  fixed.Int26_6(size * 64),
		MaxLines: 1,
		MaxWidth: 1 << 24,
	}, s)
	c.glyphs = c.glyphs[:0]
	for g, ok := c.Shaper.NextGlyph(); ok; g, ok = c.Shaper.NextGlyph() {
		c.glyphs = append(c.glyphs, g)
	}
}
