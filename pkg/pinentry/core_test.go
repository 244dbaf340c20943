package pinentry

import (
	"errors"
	"testing"
	"time"
)

// coreTestClock is a manually advanced clock.
type coreTestClock struct{ t time.Time }

func (c *coreTestClock) Now() time.Time { return c.t }

func (c *coreTestClock) Add(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

// coreTestHost records host requests.
type coreTestHost struct {
	focus, keyboard, invalidations int
}

func (h *coreTestHost) RequestFocus()  { h.focus++ }
func (h *coreTestHost) ShowSoftInput() { h.keyboard++ }
func (h *coreTestHost) Invalidate()    { h.invalidations++ }

func newTestCore(t *testing.T, opts Options) (*Core, *coreTestClock, *[]string) {
	t.Helper()
	clock := &coreTestClock{t: time.Unix(1700000000, 0)}
	c := New(opts, WithClock(clock.Now))
	c.Resize(300, 60, Insets{})
	var entered []string
	c.SetOnPinEnteredListener(func(pin string) { entered = append(entered, pin) })
	return c, clock, &entered
}

func typeRunes(c *Core, s string) {
	for _, r := range s {
		c.Insert(string(r))
	}
}

func TestCompletionFiresSynchronouslyWithoutAnimation(t *testing.T) {
	opts := DefaultOptions()
	opts.Animation = AnimationNone
	c, _, entered := newTestCore(t, opts)

	typeRunes(c, "123")
	if len(*entered) != 0 {
		t.Fatalf("fired early: %v", *entered)
	}
	c.Insert("4")
	if len(*entered) != 1 || (*entered)[0] != "1234" {
		t.Fatalf("entered = %v, want [1234] immediately", *entered)
	}
}

func TestCompletionWaitsForAnimation(t *testing.T) {
	for _, anim := range []AnimationType{AnimationPopIn, AnimationBottomUp, 7} {
		c, clock, entered := newTestCore(t, DefaultOptions())
		c.cfg.animation = anim

		typeRunes(c, "1234")
		if len(*entered) != 0 {
			t.Fatalf("%v: completion fired before the animation ended", anim)
		}
		if !c.Animating() {
			t.Fatalf("%v: expected a running animation", anim)
		}

		c.Advance(clock.Add(100 * time.Millisecond))
		if len(*entered) != 0 {
			t.Fatalf("%v: completion fired mid-animation", anim)
		}
		c.Advance(clock.Add(time.Second))
		if len(*entered) != 1 || (*entered)[0] != "1234" {
			t.Errorf("%v: entered = %v after animation, want [1234]", anim, *entered)
		}
	}
}

func TestSetAnimateTextFalseCompletesImmediately(t *testing.T) {
	c, _, entered := newTestCore(t, DefaultOptions())
	c.SetAnimateText(false)
	typeRunes(c, "1234")
	if len(*entered) != 1 {
		t.Errorf("entered = %v, want one synchronous completion", *entered)
	}
	if c.Animating() {
		t.Error("animation started although disabled")
	}
}

func TestAnimationNoneWithAnimateEnabledCompletesImmediately(t *testing.T) {
	opts := DefaultOptions()
	opts.Animation = AnimationNone
	c, _, entered := newTestCore(t, opts)
	c.SetAnimateText(true)
	typeRunes(c, "1234")
	if len(*entered) != 1 {
		t.Errorf("entered = %v, want one synchronous completion", *entered)
	}
}

func TestCompletionBeforeLayoutIsSynchronous(t *testing.T) {
	c := New(DefaultOptions())
	var entered []string
	c.SetOnPinEnteredListener(func(pin string) { entered = append(entered, pin) })
	c.SetText("1234")
	if len(entered) != 1 {
		t.Errorf("entered = %v, want synchronous completion without layout", entered)
	}
}

func TestCompletionNeedsDropBelowMax(t *testing.T) {
	opts := DefaultOptions()
	opts.Animation = AnimationNone
	c, _, entered := newTestCore(t, opts)

	typeRunes(c, "12345")
	if c.Text() != "1234" {
		t.Errorf("Text = %q, want input clipped to 1234", c.Text())
	}
	if len(*entered) != 1 {
		t.Fatalf("entered = %v, want exactly one", *entered)
	}
	c.SetText("4321")
	if len(*entered) != 1 {
		t.Fatalf("replacement at max length fired again: %v", *entered)
	}
	c.DeleteBackward()
	c.Insert("9")
	if len(*entered) != 2 || (*entered)[1] != "4329" {
		t.Errorf("entered = %v, want second completion 4329", *entered)
	}
}

func TestDeferredCompletionDroppedWhenTextShrinks(t *testing.T) {
	c, clock, entered := newTestCore(t, DefaultOptions())
	typeRunes(c, "1234")
	c.DeleteBackward()
	c.Advance(clock.Add(time.Second))
	if len(*entered) != 0 {
		t.Errorf("entered = %v, want nothing after shrinking mid-animation", *entered)
	}
}

func TestTextChangeClearsError(t *testing.T) {
	c, _, _ := newTestCore(t, DefaultOptions())
	c.SetError(true)
	if !c.IsError() {
		t.Fatal("SetError(true) not reflected")
	}
	c.Insert("1")
	if c.IsError() {
		t.Error("error flag survived a text change")
	}
	c.SetError(true)
	c.DeleteBackward()
	if c.IsError() {
		t.Error("error flag survived a deletion")
	}
}

func TestSetMaxLengthClearsTextAndRebuildsLayout(t *testing.T) {
	c, _, _ := newTestCore(t, DefaultOptions())
	typeRunes(c, "12")
	c.SetMaxLength(6)
	if c.Text() != "" {
		t.Errorf("Text = %q, want cleared", c.Text())
	}
	if got := len(c.Layout().Slots); got != 6 {
		t.Errorf("layout has %d slots, want 6", got)
	}
	c.SetMaxLength(0)
	if c.MaxLength() != DefaultMaxLength {
		t.Errorf("MaxLength = %d, want default %d", c.MaxLength(), DefaultMaxLength)
	}
}

func TestClickMovesCaretToEndBeforeHandler(t *testing.T) {
	c, _, _ := newTestCore(t, DefaultOptions())
	typeRunes(c, "123")
	c.caret = 0

	caretSeen := -1
	c.SetOnClickListener(func() { caretSeen = c.Caret() })
	c.Click()
	if caretSeen != 3 {
		t.Errorf("handler saw caret %d, want 3", caretSeen)
	}

	c.caret = 1
	if !c.LongClick() || c.Caret() != 3 {
		t.Errorf("LongClick left caret at %d", c.Caret())
	}
}

func TestInsertAtCaret(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxLength = 6
	c, _, _ := newTestCore(t, opts)
	typeRunes(c, "1245")
	c.caret = 2
	c.Insert("3")
	if c.Text() != "12345" || c.Caret() != 3 {
		t.Errorf("Text = %q caret %d, want 12345 caret 3", c.Text(), c.Caret())
	}
	if _, ok := c.animator.Frame(2); !ok {
		t.Error("expected the inserted slot to animate")
	}
}

func TestSetSelectionActionsPanics(t *testing.T) {
	c := New(DefaultOptions())
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrSelectionActionsUnsupported) {
			t.Errorf("recovered %v, want ErrSelectionActionsUnsupported", r)
		}
	}()
	c.SetSelectionActions(nil)
}

func TestFocusAsksHost(t *testing.T) {
	h := &coreTestHost{}
	c := New(DefaultOptions(), WithHost(h))
	c.Focus()
	if h.focus != 1 || h.keyboard != 1 {
		t.Errorf("host saw focus=%d keyboard=%d, want 1 and 1", h.focus, h.keyboard)
	}
	before := h.invalidations
	c.Insert("1")
	if h.invalidations == before {
		t.Error("text change did not invalidate")
	}
	New(DefaultOptions()).Focus()
}

func TestPasswordInputMasksDisplay(t *testing.T) {
	opts := DefaultOptions()
	opts.InputType = InputNumberPassword
	c, _, _ := newTestCore(t, opts)
	typeRunes(c, "12")
	if c.DisplayText() != DefaultMask+DefaultMask {
		t.Errorf("DisplayText = %q", c.DisplayText())
	}
	if c.Text() != "12" {
		t.Errorf("Text = %q, want raw 12", c.Text())
	}
}

func TestListenerMayEditDuringCompletion(t *testing.T) {
	c, clock, _ := newTestCore(t, DefaultOptions())
	c.SetOnPinEnteredListener(func(string) {
		c.SetError(true)
		c.SetText("")
	})
	typeRunes(c, "1234")
	c.Advance(clock.Add(time.Second))
	if c.Text() != "" {
		t.Errorf("Text = %q, want cleared by listener", c.Text())
	}
}

func TestShrinkAndSynchronousRegrowFiresOnce(t *testing.T) {
	c, clock, entered := newTestCore(t, DefaultOptions())
	typeRunes(c, "1234")
	c.DeleteBackward()
	c.SetAnimateText(false)
	c.Insert("5")
	if len(*entered) != 1 || (*entered)[0] != "1235" {
		t.Fatalf("entered = %v, want [1235] immediately", *entered)
	}
	c.Advance(clock.Add(time.Second))
	if len(*entered) != 1 {
		t.Errorf("entered = %v, stale animation completed the code again", *entered)
	}
}

func TestMidTextInsertCompletionCancelledByShrink(t *testing.T) {
	c, clock, entered := newTestCore(t, DefaultOptions())
	typeRunes(c, "124")
	c.caret = 2
	c.Insert("3")
	if c.Text() != "1234" || len(*entered) != 0 {
		t.Fatalf("Text = %q entered = %v, want 1234 waiting on the animation", c.Text(), *entered)
	}
	c.caret = 4
	c.DeleteBackward()
	c.SetAnimateText(false)
	c.Insert("9")
	c.Advance(clock.Add(time.Second))
	if len(*entered) != 1 || (*entered)[0] != "1239" {
		t.Errorf("entered = %v, want only [1239]", *entered)
	}
}

func TestResizeToZeroMidAnimation(t *testing.T) {
	c, clock, entered := newTestCore(t, DefaultOptions())
	typeRunes(c, "123")
	c.Resize(0, 0, Insets{})
	c.Insert("4")
	if len(*entered) != 1 {
		t.Fatalf("entered = %v, want synchronous completion without layout", *entered)
	}
	c.Advance(clock.Add(time.Second))
	if len(*entered) != 1 {
		t.Errorf("entered = %v after the earlier animations ended, want one", *entered)
	}
}

func TestPendingCompletionSurvivesResize(t *testing.T) {
	c, clock, entered := newTestCore(t, DefaultOptions())
	typeRunes(c, "1234")
	c.Resize(0, 0, Insets{})
	c.Advance(clock.Add(time.Second))
	if len(*entered) != 1 || (*entered)[0] != "1234" {
		t.Errorf("entered = %v, want [1234] when the animation ends", *entered)
	}
}

func TestReplaceAtMaxDeliversPendingCompletion(t *testing.T) {
	c, clock, entered := newTestCore(t, DefaultOptions())
	typeRunes(c, "1234")
	c.SetText("4321")
	if len(*entered) != 1 || (*entered)[0] != "4321" {
		t.Fatalf("entered = %v, want [4321] once the animated slot was replaced", *entered)
	}
	if c.Animating() {
		t.Error("replaced slots still animate")
	}
	c.Advance(clock.Add(time.Second))
	if len(*entered) != 1 {
		t.Errorf("entered = %v, want one completion", *entered)
	}
}

func TestSetMaxLengthResetsMaskedDisplay(t *testing.T) {
	opts := DefaultOptions()
	opts.InputType = InputNumberPassword
	c, _, _ := newTestCore(t, opts)
	typeRunes(c, "12")
	c.SetMaxLength(6)
	if c.DisplayText() != "" {
		t.Errorf("DisplayText = %q, want empty", c.DisplayText())
	}
	typeRunes(c, "123")
	if c.DisplayText() != DefaultMask+DefaultMask+DefaultMask {
		t.Errorf("DisplayText = %q, want three masks", c.DisplayText())
	}
}
