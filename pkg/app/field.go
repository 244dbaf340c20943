package app

import (
	"log/slog"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/pinentry/pkg/components"
	"gitlab.com/tinyland/lab/pinentry/pkg/config"
	"gitlab.com/tinyland/lab/pinentry/pkg/pinentry"
	"gitlab.com/tinyland/lab/pinentry/pkg/theme"
	"gitlab.com/tinyland/lab/pinentry/pkg/tui"
)

// Widget is a focusable element of the model.
type Widget interface {
	ID() string
	Title() string
	Update(msg tea.Msg) tea.Cmd
	HandleKey(msg tea.KeyMsg) tea.Cmd
	View(width int) string
	MinSize() (int, int)
	SetFocused(focused bool)
}

// frameChrome is the width a rounded frame with one column of padding
// adds around a field.
const frameChrome = 4

// PinField is a pinentry.Core rendered into terminal cells inside a titled
// frame. It implements pinentry.Host for its Core.
type PinField struct {
	id      string
	cfg     config.FieldConfig
	theme   theme.Theme
	metrics tui.Metrics
	numeric bool
	logger  *slog.Logger

	core      *pinentry.Core
	field     *tui.Field
	preferred int

	focusRequested bool
	dirty          bool
	entered        []string
	edits          int
}

// NewPinField builds a field from its config entry, colored by th.
func NewPinField(id string, fc config.FieldConfig, th theme.Theme, m tui.Metrics, logger *slog.Logger) *PinField {
	if logger == nil {
		logger = slog.Default()
	}
	f := &PinField{
		id:      id,
		cfg:     fc.Resolved(),
		theme:   th,
		metrics: m,
		numeric: fc.Numeric(),
		logger:  logger.With("field", id),
	}
	f.build()
	return f
}

// build (re)creates the Core. Entered text does not survive a rebuild.
func (f *PinField) build() {
	opts := f.metrics.Adapt(f.cfg.Options(f.theme))
	f.core = pinentry.New(opts, pinentry.WithHost(f), pinentry.WithLogger(f.logger))
	f.core.SetOnPinEnteredListener(func(pin string) {
		f.entered = append(f.entered, pin)
	})
	f.core.SetOnClickListener(func() {
		f.logger.Debug("field clicked", "length", len(f.core.Text()))
	})
	f.preferred = f.metrics.PreferredCols(opts)
	f.field = tui.NewField(f.core, f.metrics, f.theme.BackgroundColor(), f.preferred)
	f.dirty = true
	f.edits++
}

// SetTheme recolors the field. The entered text is discarded.
func (f *PinField) SetTheme(th theme.Theme) {
	focused := f.core.Focused()
	f.theme = th
	f.build()
	f.core.SetFocused(focused)
}

// ID returns the field's unique identifier.
func (f *PinField) ID() string { return f.id }

// Title returns the label drawn in the frame.
func (f *PinField) Title() string { return f.cfg.Title() }

// Core returns the wrapped control.
func (f *PinField) Core() *pinentry.Core { return f.core }

// Text returns the entered code.
func (f *PinField) Text() string { return f.core.Text() }

// Edits counts the edits made to the field. A delayed clear only applies
// while it is unchanged.
func (f *PinField) Edits() int { return f.edits }

// Animating reports whether the field needs frame events.
func (f *PinField) Animating() bool { return f.core.Animating() }

// RequestFocus implements pinentry.Host.
func (f *PinField) RequestFocus() { f.focusRequested = true }

// ShowSoftInput implements pinentry.Host. Terminals have no soft keyboard.
func (f *PinField) ShowSoftInput() {}

// Invalidate implements pinentry.Host.
func (f *PinField) Invalidate() { f.dirty = true }

// takeFocusRequest reports and resets a pending focus request.
func (f *PinField) takeFocusRequest() bool {
	r := f.focusRequested
	f.focusRequested = false
	return r
}

// SetFocused routes focus into the Core.
func (f *PinField) SetFocused(focused bool) {
	f.core.SetFocused(focused)
}

// Click behaves like a tap on the field: it asks for focus and moves the
// caret to the end.
func (f *PinField) Click() tea.Cmd {
	f.core.Focus()
	f.core.Click()
	return f.flush()
}

// Clear empties the field, which also drops the error flag.
func (f *PinField) Clear() {
	f.edits++
	f.core.SetText("")
}

// Update advances the entry animations on frame events.
func (f *PinField) Update(msg tea.Msg) tea.Cmd {
	if ev, ok := msg.(FrameEvent); ok {
		f.core.Advance(ev.Time)
	}
	return f.flush()
}

// HandleKey edits the code. Pasted text is ignored; numeric fields drop
// everything but digits.
func (f *PinField) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		if msg.Paste {
			f.logger.Debug("paste ignored", "runes", len(msg.Runes))
			return nil
		}
		if s := f.filter(msg.Runes); s != "" {
			f.edits++
			f.core.Insert(s)
		}
	case tea.KeyBackspace:
		f.edits++
		f.core.DeleteBackward()
	case tea.KeyCtrlU:
		f.Clear()
	default:
		return nil
	}
	return f.flush()
}

func (f *PinField) filter(runes []rune) string {
	if !f.numeric {
		return string(runes)
	}
	var b strings.Builder
	for _, r := range runes {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// flush turns codes collected by the listener into messages.
func (f *PinField) flush() tea.Cmd {
	if len(f.entered) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(f.entered))
	for _, pin := range f.entered {
		cmds = append(cmds, pinEnteredCmd(f.id, pin))
	}
	f.entered = f.entered[:0]
	return tea.Batch(cmds...)
}

// View renders the field inside a titled frame at most width cells wide.
// The field shrinks below its preferred width when it must.
func (f *PinField) View(width int) string {
	want := f.preferred + frameChrome
	if width <= 0 {
		width = want
	}
	if inner := min(width, want) - frameChrome; inner != f.field.Cols() && inner > 0 {
		f.field.Resize(inner)
	}
	f.dirty = false

	focused := f.core.Focused()
	st := components.FrameStyle{
		Border:     components.BorderRounded,
		Title:      f.Title(),
		TitleAlign: components.AlignLeft,
		Padding:    components.NewPaddingHV(1, 0),
		Color:      f.theme.BorderColor(focused),
	}
	if focused {
		st.Border = components.BorderHeavy
	}
	if f.core.IsError() {
		st.Color = f.theme.StatusColor(false)
	}
	return components.Frame(strings.Split(f.field.View(), "\n"), f.field.Cols()+frameChrome, st)
}

// MinSize returns the smallest frame that still shows one cell per slot.
func (f *PinField) MinSize() (int, int) {
	return f.core.MaxLength()*2 - 1 + frameChrome, tui.FieldRows + 2
}

// Grid repaints the field and returns its cells, for hosts that draw
// cells directly.
func (f *PinField) Grid() *tui.Grid {
	f.dirty = false
	return f.field.Draw()
}

// Cols returns the field's width in cells, without the frame.
func (f *PinField) Cols() int { return f.field.Cols() }

// Dirty reports whether the Core asked for a redraw since the last View.
func (f *PinField) Dirty() bool { return f.dirty }
