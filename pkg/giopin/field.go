package giopin

import (
	"image"
	"log/slog"
	"strings"
	"unicode"

	"gioui.org/font"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/text"
	"gioui.org/unit"

	"gitlab.com/tinyland/lab/pinentry/pkg/pinentry"
)

// DefaultTextSize is the glyph size of a field.
const DefaultTextSize = unit.Sp(pinentry.DefaultTextSize)

// Field is a gio widget around a pinentry.Core. The Core is built on the
// first Layout, once the window's density is known.
type Field struct {
	opts    pinentry.Options
	numeric bool
	logger  *slog.Logger

	// TextSize is the glyph size; DefaultTextSize when zero.
	TextSize unit.Sp

	core    *pinentry.Core
	canvas  Canvas
	click   gesture.Click
	size    image.Point
	metrics [2]float32

	onEntered func(pin string)
	cmds      []func(gtx layout.Context)
}

// NewField returns a field configured by opts. Lengths in opts are in dp.
func NewField(opts pinentry.Options, shaper *text.Shaper, numeric bool, logger *slog.Logger) *Field {
	if logger == nil {
		logger = slog.Default()
	}
	return &Field{
		opts:    opts,
		numeric: numeric,
		logger:  logger,
		canvas:  Canvas{Shaper: shaper, Font: font.Font{Typeface: "Go Mono"}},
	}
}

// SetOnPinEnteredListener sets the completion listener; it runs on the
// window goroutine during Layout.
func (f *Field) SetOnPinEnteredListener(fn func(pin string)) {
	f.onEntered = fn
	if f.core != nil {
		f.core.SetOnPinEnteredListener(fn)
	}
}

// Core returns the control, or nil before the first Layout.
func (f *Field) Core() *pinentry.Core { return f.core }

// RequestFocus implements pinentry.Host.
func (f *Field) RequestFocus() {
	f.cmds = append(f.cmds, func(gtx layout.Context) { gtx.Execute(key.FocusCmd{Tag: f}) })
}

// ShowSoftInput implements pinentry.Host.
func (f *Field) ShowSoftInput() {
	f.cmds = append(f.cmds, func(gtx layout.Context) { gtx.Execute(key.SoftKeyboardCmd{Show: true}) })
}

// Invalidate implements pinentry.Host.
func (f *Field) Invalidate() {
	f.cmds = append(f.cmds, func(gtx layout.Context) { gtx.Execute(op.InvalidateCmd{}) })
}

func (f *Field) build(gtx layout.Context) {
	opts := f.opts
	opts.Density = gtx.Metric.PxPerDp
	opts.TextSize = float32(gtx.Sp(f.textSize()))
	f.core = pinentry.New(opts, pinentry.WithHost(f), pinentry.WithLogger(f.logger))
	f.core.SetOnPinEnteredListener(f.onEntered)
}

func (f *Field) textSize() unit.Sp {
	if f.TextSize <= 0 {
		return DefaultTextSize
	}
	return f.TextSize
}

// Layout processes input, advances animations and draws the field. It
// fills the maximum width and is tall enough for a glyph, its padding and
// the underline.
func (f *Field) Layout(gtx layout.Context) layout.Dimensions {
	if f.core == nil {
		f.build(gtx)
	}
	f.canvas.Ops = gtx.Ops

	size := float32(gtx.Sp(f.textSize()))
	ascent := f.canvas.Ascent(size)
	if m := [2]float32{size, ascent}; m != f.metrics {
		f.metrics = m
		f.core.SetTextMetrics(size, ascent)
	}

	pad := float32(gtx.Dp(unit.Dp(pinentry.DefaultTextBottomPadding)))
	height := int(ascent + 3*pad + 0.5)
	if f.opts.Background != nil && f.opts.BackgroundIsSquare {
		height = max(height, int(2*ascent+0.5))
	}
	sz := gtx.Constraints.Constrain(image.Pt(gtx.Constraints.Max.X, height))
	if sz != f.size {
		f.size = sz
		f.core.Resize(float32(sz.X), float32(sz.Y), pinentry.Insets{})
	}

	f.update(gtx)
	f.core.Advance(gtx.Now)
	if f.core.Animating() {
		gtx.Execute(op.InvalidateCmd{})
	}
	for _, cmd := range f.cmds {
		cmd(gtx)
	}
	f.cmds = f.cmds[:0]

	defer clip.Rect{Max: sz}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, f)
	f.click.Add(gtx.Ops)
	hint := key.HintAny
	if f.numeric {
		hint = key.HintNumeric
	}
	key.InputHintOp{Tag: f, Hint: hint}.Add(gtx.Ops)

	f.core.Draw(&f.canvas)
	dims := layout.Dimensions{Size: sz}
	if l := f.core.Layout(); !l.Empty() {
		dims.Baseline = sz.Y - int(l.Baselines[0]+0.5)
	}
	return dims
}

// update drains the input events addressed to the field.
func (f *Field) update(gtx layout.Context) {
	for {
		ev, ok := f.click.Update(gtx.Source)
		if !ok {
			break
		}
		if ev.Kind == gesture.KindClick {
			f.core.Focus()
			f.core.Click()
		}
	}
	for {
		ev, ok := gtx.Event(
			key.FocusFilter{Target: f},
			key.Filter{Focus: f, Name: key.NameDeleteBackward},
		)
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case key.FocusEvent:
			f.core.SetFocused(ev.Focus)
		case key.EditEvent:
			if s := f.filter(ev.Text); s != "" {
				f.core.Insert(s)
			}
		case key.Event:
			if ev.State == key.Press && ev.Name == key.NameDeleteBackward {
				f.core.DeleteBackward()
			}
		}
	}
}

func (f *Field) filter(s string) string {
	if !f.numeric {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
