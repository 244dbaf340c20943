package pinentry

// Draw paints every slot onto cv: background box, then glyph, then the
// underline when no background is configured. It is a no-op until the
// first Resize produced a layout.
func (c *Core) Draw(cv Canvas) {
	if cv == nil || c.layout.Empty() {
		return
	}
	glyphs := []rune(c.display)
	n := len(glyphs)

	var hint string
	var hintWidth float32
	if c.cfg.hint != nil {
		hint = *c.cfg.hint
		hintWidth = cv.TextWidth(hint, c.cfg.textSize)
	}

	for i, r := range c.layout.Slots {
		st := SlotState{
			HasError: c.hasError,
			Focused:  c.focused,
			Filled:   i < n,
			Next:     i == n,
		}
		if bg := c.cfg.background; bg != nil {
			cv.FillRect(r, c.cfg.radius, bg.Colors.Color(BackgroundVisual(st)))
		}

		middle := r.Left + c.layout.SlotWidth/2
		baseline := c.layout.Baselines[i]
		switch {
		case i < n:
			g := string(glyphs[i])
			style := TextStyle{Size: c.cfg.textSize, Color: c.cfg.textColor}
			if f, ok := c.animator.Frame(i); ok {
				style.Size = f.Size
				style.Color.A = uint8(uint16(style.Color.A) * uint16(f.Alpha) / 255)
				baseline += f.Offset
			}
			cv.DrawText(g, middle-cv.TextWidth(g, style.Size)/2, baseline, style)
		case c.cfg.hint != nil:
			cv.DrawText(hint, middle-hintWidth/2, baseline, TextStyle{Size: c.cfg.textSize, Color: c.cfg.hintColor})
		}

		if c.cfg.background == nil {
			col, stroke := c.resolver.Line(st)
			cv.StrokeLine(r.Left, r.Bottom, r.Right, r.Bottom, stroke, col)
		}
	}
}
