package pinentry

import (
	"errors"
	"io"
	"log/slog"
	"time"
)

// ErrSelectionActionsUnsupported is the panic value of
// Core.SetSelectionActions.
var ErrSelectionActionsUnsupported = errors.New("pinentry: custom selection actions are not supported; copy and paste would bypass masking")

// SelectionActions customizes the copy/paste menu of a text field. Cores
// refuse them.
type SelectionActions interface {
	OnAction(action string) bool
}

// Option configures a Core beyond its Options.
type Option func(*Core)

// WithLogger sets the logger for debug events. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *Core) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock replaces time.Now for stamping animation starts.
func WithClock(now func() time.Time) Option {
	return func(c *Core) {
		if now != nil {
			c.now = now
		}
	}
}

// WithHost attaches the toolkit adapter.
func WithHost(h Host) Option {
	return func(c *Core) { c.host = h }
}

// Core is the state machine behind one code entry field. It is not safe
// for concurrent use; hosts call it from their UI loop.
type Core struct {
	cfg      settings
	resolver Resolver

	text    []rune
	display string
	caret   int

	hasError bool
	focused  bool
	animate  bool

	width, height float32
	padding       Insets
	layout        Layout

	masker   *Masker
	animator *Animator
	notifier *Notifier
	// occasion counts climbs to the maximum length. A deferred completion
	// only fires while its occasion is current.
	occasion int

	onClick func()
	host    Host
	logger  *slog.Logger
	now     func() time.Time
}

// New builds a Core from opts.
func New(opts Options, extra ...Option) *Core {
	cfg := opts.resolve()
	c := &Core{
		cfg: cfg,
		resolver: Resolver{
			Colors:         cfg.colors,
			Stroke:         cfg.stroke,
			StrokeSelected: cfg.strokeSelected,
		},
		animate:  cfg.animation > AnimationNone,
		masker:   NewMasker(cfg.mask),
		animator: NewAnimator(),
		notifier: NewNotifier(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, o := range extra {
		o(c)
	}
	return c
}

// MaxLength returns the number of slots.
func (c *Core) MaxLength() int { return c.cfg.maxLength }

// SetMaxLength changes the number of slots, clears the text and rebuilds
// the layout. Values below 1 fall back to DefaultMaxLength.
func (c *Core) SetMaxLength(n int) {
	if n <= 0 {
		n = DefaultMaxLength
	}
	c.cfg.maxLength = n
	c.animator.Clear()
	c.masker.Reset()
	c.relayout()
	c.replace(nil)
}

// SetError sets the error flag. Any later text change clears it.
func (c *Core) SetError(hasError bool) {
	c.hasError = hasError
	c.invalidate()
}

// IsError reports the error flag.
func (c *Core) IsError() bool { return c.hasError }

// SetAnimateText enables or disables entry animations.
func (c *Core) SetAnimateText(animate bool) {
	c.animate = animate
}

// SetOnPinEnteredListener installs the completion callback.
func (c *Core) SetOnPinEnteredListener(fn func(pin string)) {
	c.notifier.SetListener(fn)
}

// SetOnClickListener installs a click handler. It runs after the caret has
// moved to the end of the text.
func (c *Core) SetOnClickListener(fn func()) {
	c.onClick = fn
}

// SetSelectionActions always panics: selection menus would expose the raw
// text behind the mask.
func (c *Core) SetSelectionActions(SelectionActions) {
	panic(ErrSelectionActionsUnsupported)
}

// Focus asks the host for input focus and the on-screen keyboard.
func (c *Core) Focus() {
	if c.host == nil {
		return
	}
	c.host.RequestFocus()
	c.host.ShowSoftInput()
}

// SetFocused records the focus state reported by the host.
func (c *Core) SetFocused(focused bool) {
	if c.focused == focused {
		return
	}
	c.focused = focused
	c.invalidate()
}

// Focused reports the focus state.
func (c *Core) Focused() bool { return c.focused }

// Click moves the caret to the end and runs the click handler.
func (c *Core) Click() {
	c.caret = len(c.text)
	if c.onClick != nil {
		c.onClick()
	}
}

// LongClick moves the caret to the end and consumes the gesture.
func (c *Core) LongClick() bool {
	c.caret = len(c.text)
	return true
}

// Text returns the raw entered text.
func (c *Core) Text() string { return string(c.text) }

// DisplayText returns the text drawn in the slots, masked if configured.
func (c *Core) DisplayText() string { return c.display }

// Caret returns the insertion index in runes.
func (c *Core) Caret() int { return c.caret }

// Layout returns the current slot geometry.
func (c *Core) Layout() Layout { return c.layout }

// Animating reports whether an entry animation is running.
func (c *Core) Animating() bool { return c.animator.Animating() }

// Resize rebuilds the slot geometry for a new widget size.
func (c *Core) Resize(width, height float32, padding Insets) {
	c.width, c.height, c.padding = width, height, padding
	c.relayout()
}

// SetTextMetrics updates the glyph size used for animations and the glyph
// height used for box-mode slot height.
func (c *Core) SetTextMetrics(size, height float32) {
	if size > 0 {
		c.cfg.textSize = size
	}
	if height > 0 {
		c.cfg.textHeight = height
	}
	c.relayout()
}

func (c *Core) relayout() {
	c.layout = ComputeLayout(LayoutInput{
		Width:         c.width,
		Height:        c.height,
		Padding:       c.padding,
		Slots:         c.cfg.maxLength,
		Spacing:       c.cfg.spacing,
		Direction:     c.cfg.direction,
		HasBackground: c.cfg.background != nil,
		Square:        c.cfg.square,
		TextHeight:    c.cfg.textHeight,
		BottomPadding: c.cfg.bottomPadding,
	})
	if !c.layout.Empty() {
		c.logger.Debug("layout rebuilt", "slots", len(c.layout.Slots), "slot_width", c.layout.SlotWidth)
	}
}

// Insert types s at the caret. Input beyond the maximum length is dropped.
func (c *Core) Insert(s string) {
	in := []rune(s)
	if room := c.cfg.maxLength - len(c.text); len(in) > room {
		in = in[:max(room, 0)]
	}
	if len(in) == 0 {
		return
	}
	start := min(c.caret, len(c.text))
	text := make([]rune, 0, len(c.text)+len(in))
	text = append(text, c.text[:start]...)
	text = append(text, in...)
	text = append(text, c.text[start:]...)
	c.text = text
	c.caret = start + len(in)
	c.changed(start, 0, len(in))
}

// DeleteBackward removes the rune before the caret.
func (c *Core) DeleteBackward() {
	start := min(c.caret, len(c.text)) - 1
	if start < 0 {
		return
	}
	c.text = append(c.text[:start], c.text[start+1:]...)
	c.caret = start
	c.changed(start, 1, 0)
}

// SetText replaces the whole text, truncated to the maximum length.
func (c *Core) SetText(s string) {
	c.replace([]rune(s))
}

func (c *Core) replace(text []rune) {
	if len(text) > c.cfg.maxLength {
		text = text[:c.cfg.maxLength]
	}
	before := len(c.text)
	c.text = append([]rune(nil), text...)
	c.caret = len(c.text)
	c.changed(0, before, len(c.text))
}

// changed reacts to a text edit that replaced before runes at start with
// after runes.
func (c *Core) changed(start, before, after int) {
	c.hasError = false
	c.display = c.masker.Resolve(string(c.text))
	due := c.notifier.Observe(len(c.text), c.cfg.maxLength)
	if len(c.text) < c.cfg.maxLength {
		c.occasion++
	}
	c.animator.DropFrom(len(c.text))

	if c.layout.Empty() || !c.animate || c.cfg.animation <= AnimationNone || after <= before {
		// Characters placed without animation show at rest. A completion
		// waiting on a replaced slot fires now.
		var pending []func()
		for slot := start; slot < start+after; slot++ {
			if fn := c.animator.Drop(slot); fn != nil {
				pending = append(pending, fn)
			}
		}
		if due {
			c.occasion++
			c.complete()
		}
		for _, fn := range pending {
			fn()
		}
		c.invalidate()
		return
	}

	var onDone func()
	if due {
		occasion := c.occasion
		onDone = func() { c.completeDeferred(occasion) }
	}
	slot := start + after - 1
	now := c.now()
	if c.cfg.animation == AnimationPopIn {
		c.animator.PopIn(slot, now, c.cfg.popIn, c.cfg.textSize, onDone)
	} else {
		c.animator.BottomUp(slot, now, c.cfg.bottomUp, c.cfg.textSize, onDone)
	}
	c.logger.Debug("entry animation started", "slot", slot, "type", c.cfg.animation.String(), "completes", due)
	c.invalidate()
}

func (c *Core) complete() {
	if c.notifier.Notify(string(c.text)) {
		c.logger.Debug("pin entered", "length", len(c.text))
	} else {
		c.logger.Debug("pin entered without listener", "length", len(c.text))
	}
}

// completeDeferred runs when the animation of the final character ends.
// A shrink below the maximum since then cancels the occasion.
func (c *Core) completeDeferred(occasion int) {
	if occasion != c.occasion || len(c.text) != c.cfg.maxLength {
		c.logger.Debug("deferred completion dropped", "length", len(c.text))
		return
	}
	c.occasion++
	c.complete()
}

// Advance moves the entry animations to now, firing completions whose
// animation ended. It reports whether a redraw is needed.
func (c *Core) Advance(now time.Time) bool {
	if !c.animator.Advance(now) {
		return false
	}
	c.invalidate()
	return true
}

func (c *Core) invalidate() {
	if c.host != nil {
		c.host.Invalidate()
	}
}
