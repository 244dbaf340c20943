package theme

import (
	"image/color"

	"gitlab.com/tinyland/lab/pinentry/pkg/components"
	"gitlab.com/tinyland/lab/pinentry/pkg/pinentry"
)

// thColor converts a validated hex color. Invalid input maps to the zero
// color, which renderers treat as "unset".
func thColor(hex string) color.NRGBA {
	c, err := components.ParseHex(hex)
	if err != nil {
		return color.NRGBA{}
	}
	return c
}

// Palette returns the underline colors of t.
func (t Theme) Palette() pinentry.Palette {
	return pinentry.Palette{
		Selected:  thColor(t.LineSelected),
		Error:     thColor(t.LineError),
		Focused:   thColor(t.LineFocused),
		Unfocused: thColor(t.LineUnfocused),
	}
}

// BoxPalette returns the background box colors of t.
func (t Theme) BoxPalette() pinentry.Palette {
	return pinentry.Palette{
		Selected:  thColor(t.BoxSelected),
		Error:     thColor(t.BoxError),
		Filled:    thColor(t.BoxFilled),
		Focused:   thColor(t.BoxFocused),
		Unfocused: thColor(t.BoxUnfocused),
	}
}

// Apply copies t's glyph and slot colors into opts. A configured
// background keeps its radius and takes the box palette.
func (t Theme) Apply(opts *pinentry.Options) {
	opts.Colors = t.Palette()
	opts.TextColor = thColor(t.Text)
	opts.HintColor = thColor(t.Hint)
	if opts.Background != nil {
		bg := *opts.Background
		bg.Colors = t.BoxPalette()
		opts.Background = &bg
	}
}

// BackgroundColor returns the canvas background of t.
func (t Theme) BackgroundColor() color.NRGBA { return thColor(t.Background) }

// BorderColor returns the field frame color for the given focus state.
func (t Theme) BorderColor(focused bool) color.NRGBA {
	if focused {
		return thColor(t.BorderFocus)
	}
	return thColor(t.Border)
}

// StatusColor returns the status line color for a verification result.
func (t Theme) StatusColor(ok bool) color.NRGBA {
	if ok {
		return thColor(t.StatusOK)
	}
	return thColor(t.StatusError)
}
