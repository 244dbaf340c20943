package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/pinentry/pkg/config"
	"gitlab.com/tinyland/lab/pinentry/pkg/theme"
)

// recordingFeedback counts feedback cues.
type recordingFeedback struct {
	accepted, rejected int
}

func (r *recordingFeedback) Accept() { r.accepted++ }
func (r *recordingFeedback) Reject() { r.rejected++ }

// helper to create a model with a pin, an otp and a text field, all
// without animation so completions are synchronous.
func newTestModel(t *testing.T, opts ...ModelOption) Model {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	cfg := config.DefaultConfig()
	cfg.General.ClearDelay = config.Duration{Duration: time.Millisecond}
	cfg.General.FrameInterval = config.Duration{Duration: time.Millisecond}
	cfg.Fields = []config.FieldConfig{
		{Preset: "pin", Animation: "none"},
		{Preset: "otp", Animation: "none"},
		{Preset: "square", Animation: "none"},
	}
	return NewModel(cfg, theme.Get("default"), opts...)
}

// helper to send a message through Update and return the updated model.
func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// collect runs cmd and every command batched inside it, returning the
// messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeInto types s one key at a time and returns the messages the last
// keystroke produced.
func typeInto(m Model, s string) (Model, []tea.Msg) {
	var msgs []tea.Msg
	for _, r := range s {
		var cmd tea.Cmd
		m, cmd = update(m, runes(string(r)))
		msgs = collect(cmd)
	}
	return m, msgs
}

func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func TestInitReturnsCmd(t *testing.T) {
	m := newTestModel(t)
	if m.Init() == nil {
		t.Fatal("Init() returned nil, expected a window title command")
	}
}

func TestWindowSizeMsgUpdatesDimensions(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.Width() != 120 || m.Height() != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.Width(), m.Height())
	}
}

func TestTabCyclesFocusForward(t *testing.T) {
	m := newTestModel(t)
	if m.FocusedFieldID() != "field-0" {
		t.Fatalf("expected initial focus on field-0, got %q", m.FocusedFieldID())
	}

	for _, want := range []string{"field-1", "field-2", "field-0"} {
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
		if m.FocusedFieldID() != want {
			t.Errorf("after Tab, expected focus on %q, got %q", want, m.FocusedFieldID())
		}
	}

	focused := 0
	for _, f := range m.Fields() {
		if f.Core().Focused() {
			focused++
		}
	}
	if focused != 1 {
		t.Errorf("%d cores focused, want exactly 1", focused)
	}
}

func TestShiftTabCyclesFocusBackward(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.FocusedFieldID() != "field-2" {
		t.Errorf("after Shift+Tab from field-0, expected field-2, got %q", m.FocusedFieldID())
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.FocusedFieldID() != "field-1" {
		t.Errorf("after second Shift+Tab, expected field-1, got %q", m.FocusedFieldID())
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newTestModel(t)
		m, cmd := update(m, tea.KeyMsg{Type: k})
		if !m.Quitting() {
			t.Errorf("%v: expected quitting=true", k)
		}
		if _, ok := findMsg[tea.QuitMsg](collect(cmd)); !ok {
			t.Errorf("%v: expected tea.Quit", k)
		}
		if m.View() != "" {
			t.Errorf("%v: View should be empty when quitting", k)
		}
	}
}

func TestQInTextFieldIsInput(t *testing.T) {
	m := newTestModel(t)
	m.FocusField("field-2")
	m, _ = update(m, runes("q"))
	if m.Quitting() {
		t.Fatal("q quit the program")
	}
	if got := m.Fields()[2].Text(); got != "q" {
		t.Errorf("text field = %q, want q", got)
	}
}

func TestF1TogglesHelp(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.ShowHelp() {
		t.Error("help should be visible after F1")
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyF1})
	if m.ShowHelp() {
		t.Error("help should be hidden after F1 again")
	}
}

func TestCorrectPinIsAccepted(t *testing.T) {
	fb := &recordingFeedback{}
	m := newTestModel(t, WithFeedback(fb))

	m, msgs := typeInto(m, "1234")
	ev, ok := findMsg[PinEnteredEvent](msgs)
	if !ok {
		t.Fatalf("completing the field produced %v, want a PinEnteredEvent", msgs)
	}
	if diff := cmp.Diff(PinEnteredEvent{FieldID: "field-0", PIN: "1234"}, ev); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}

	m, cmd := update(m, ev)
	collect(cmd)
	status, okStatus := m.Status()
	if !okStatus || !strings.Contains(status, "accepted") {
		t.Errorf("status = %q (ok=%v), want accepted", status, okStatus)
	}
	if fb.accepted != 1 || fb.rejected != 0 {
		t.Errorf("feedback = %+v, want one accept", *fb)
	}
	if m.Fields()[0].Core().IsError() {
		t.Error("accepted pin flagged as error")
	}
}

func TestWrongPinFlagsErrorThenClears(t *testing.T) {
	fb := &recordingFeedback{}
	m := newTestModel(t, WithFeedback(fb))

	m, msgs := typeInto(m, "9999")
	ev, _ := findMsg[PinEnteredEvent](msgs)
	m, cmd := update(m, ev)

	status, okStatus := m.Status()
	if okStatus || !strings.Contains(status, "rejected") {
		t.Errorf("status = %q (ok=%v), want rejected", status, okStatus)
	}
	f := m.Fields()[0]
	if !f.Core().IsError() {
		t.Fatal("rejected pin should set the error flag")
	}

	clearEv, ok := findMsg[ClearFieldEvent](collect(cmd))
	if !ok || clearEv.FieldID != "field-0" {
		t.Fatalf("expected a ClearFieldEvent for field-0, got %+v", clearEv)
	}
	if fb.rejected != 1 {
		t.Errorf("feedback = %+v, want one reject", *fb)
	}

	m, _ = update(m, clearEv)
	if f.Text() != "" || f.Core().IsError() {
		t.Errorf("after clear: text %q error %v, want empty and no error", f.Text(), f.Core().IsError())
	}
}

func TestDelayedClearSkipsNewInput(t *testing.T) {
	m := newTestModel(t)

	m, msgs := typeInto(m, "9999")
	ev, _ := findMsg[PinEnteredEvent](msgs)
	m, cmd := update(m, ev)
	clearEv, ok := findMsg[ClearFieldEvent](collect(cmd))
	if !ok {
		t.Fatal("expected a ClearFieldEvent after a rejected pin")
	}

	f := m.Fields()[0]
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m, _ = typeInto(m, "12")
	m, _ = update(m, clearEv)
	if f.Text() != "12" {
		t.Errorf("text = %q after a stale clear, want the new input 12", f.Text())
	}
}

func TestNoExpectationAcceptsAnything(t *testing.T) {
	m := newTestModel(t)
	m.verifier = Verifier{}
	m, msgs := typeInto(m, "5555")
	ev, _ := findMsg[PinEnteredEvent](msgs)
	m, _ = update(m, ev)
	status, ok := m.Status()
	if !ok || !strings.Contains(status, "4 characters") {
		t.Errorf("status = %q (ok=%v)", status, ok)
	}
}

func TestNumericFieldDropsLetters(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, runes("a1b"))
	if got := m.Fields()[0].Text(); got != "1" {
		t.Errorf("Text = %q, want 1", got)
	}
}

func TestPasteIsIgnored(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1234"), Paste: true})
	if got := m.Fields()[0].Text(); got != "" {
		t.Errorf("Text = %q after paste, want empty", got)
	}
}

func TestBackspaceAndClear(t *testing.T) {
	m := newTestModel(t)
	m, _ = typeInto(m, "12")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Fields()[0].Text(); got != "1" {
		t.Errorf("after backspace Text = %q, want 1", got)
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	if got := m.Fields()[0].Text(); got != "" {
		t.Errorf("after ctrl+u Text = %q, want empty", got)
	}
}

func TestCtrlETogglesError(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlE})
	if !m.Fields()[0].Core().IsError() {
		t.Error("ctrl+e should set the error flag")
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlE})
	if m.Fields()[0].Core().IsError() {
		t.Error("second ctrl+e should clear the error flag")
	}
}

func TestAnimationSchedulesFrames(t *testing.T) {
	m := newTestModel(t)
	m.cfg.Fields = []config.FieldConfig{{Preset: "pin"}}
	m.reload(m.cfg)

	m, cmd := update(m, runes("1"))
	if !m.Ticking() {
		t.Fatal("typing into an animated field should start the frame ticker")
	}
	if _, ok := findMsg[FrameEvent](collect(cmd)); !ok {
		t.Error("expected a FrameEvent from the key's command")
	}

	m, cmd = update(m, runes("2"))
	if cmd != nil {
		if _, ok := findMsg[FrameEvent](collect(cmd)); ok {
			t.Error("a second frame command was scheduled while one is pending")
		}
	}

	m, _ = update(m, FrameEvent{Time: time.Now().Add(time.Second)})
	if m.Ticking() || m.Fields()[0].Animating() {
		t.Error("frame ticker should stop once animations end")
	}
}

func TestThemeChangeEvent(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, ThemeChangeEvent{Theme: "nord"})
	if m.Theme().Name != "nord" {
		t.Errorf("theme = %q, want nord", m.Theme().Name)
	}
	m, _ = update(m, ThemeChangeEvent{Theme: "no-such-theme"})
	if _, ok := m.Status(); ok {
		t.Error("unknown theme should report an error status")
	}
	if m.Theme().Name != "nord" {
		t.Errorf("unknown theme replaced the active one with %q", m.Theme().Name)
	}
}

func TestCtrlTCyclesTheme(t *testing.T) {
	m := newTestModel(t)
	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	ev, ok := findMsg[ThemeChangeEvent](collect(cmd))
	if !ok {
		t.Fatal("ctrl+t should emit a ThemeChangeEvent")
	}
	if ev.Theme == "default" || ev.Theme == "" {
		t.Errorf("next theme = %q, want a different one", ev.Theme)
	}
}

func TestConfigReloadRebuildsFields(t *testing.T) {
	m := newTestModel(t)
	cfg := config.DefaultConfig()
	cfg.General.Expect = "000000"
	cfg.Fields = []config.FieldConfig{{Preset: "otp", Animation: "none"}}

	m, _ = update(m, ConfigReloadEvent{Config: cfg})
	if len(m.Fields()) != 1 || m.Fields()[0].Core().MaxLength() != 6 {
		t.Fatalf("fields not rebuilt: %s", m.Summary())
	}
	m, msgs := typeInto(m, "000000")
	ev, _ := findMsg[PinEnteredEvent](msgs)
	m, _ = update(m, ev)
	if status, ok := m.Status(); !ok {
		t.Errorf("reloaded expectation not applied: %q", status)
	}
}

func TestClickFieldFocuses(t *testing.T) {
	m := newTestModel(t)
	m.ClickField("field-1")
	if m.FocusedFieldID() != "field-1" {
		t.Errorf("focus = %q after click, want field-1", m.FocusedFieldID())
	}
	m.ClickField("nope")
	m, _ = update(m, FieldFocusEvent{FieldID: "field-2"})
	if m.FocusedFieldID() != "field-2" {
		t.Errorf("focus = %q after FieldFocusEvent, want field-2", m.FocusedFieldID())
	}
}

func TestViewReturnsInitializingBeforeResize(t *testing.T) {
	m := newTestModel(t)
	if v := m.View(); v != "Initializing..." {
		t.Errorf("View before resize = %q", v)
	}
}

func TestViewShowsFramedFields(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m, _ = typeInto(m, "12")
	v := m.View()
	for _, want := range []string{"PIN", "One-time code", "Square", "┏", "╭", "tab"} {
		if !strings.Contains(v, want) {
			t.Errorf("View missing %q", want)
		}
	}
	if !strings.Contains(v, "1") || !strings.Contains(v, "2") {
		t.Error("View does not show the typed digits")
	}
}

func TestViewFitsNarrowTerminal(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 30, Height: 30})
	for _, line := range strings.Split(m.View(), "\n") {
		if w := lipgloss.Width(line); w > 30 {
			t.Errorf("line %q is %d wide, want <= 30", line, w)
		}
	}
}

func TestVerifier(t *testing.T) {
	cases := []struct {
		expect, pin    string
		ok, wasChecked bool
	}{
		{"", "anything", true, false},
		{"1234", "1234", true, true},
		{"1234", "1235", false, true},
		{"1234", "123", false, true},
	}
	for _, c := range cases {
		ok, checked := Verifier{Expect: c.expect}.Check(c.pin)
		if ok != c.ok || checked != c.wasChecked {
			t.Errorf("Check(%q) with %q = (%v, %v), want (%v, %v)", c.pin, c.expect, ok, checked, c.ok, c.wasChecked)
		}
	}
}

func TestTeaKeyTranslation(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), "7"},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "backspace"},
		{tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), "shift+tab"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "esc"},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), "f1"},
	}
	for _, c := range cases {
		msg, ok := teaKey(c.ev)
		if !ok || msg.String() != c.want {
			t.Errorf("teaKey(%v) = %q (%v), want %q", c.ev.Key(), msg.String(), ok, c.want)
		}
	}
	if _, ok := teaKey(tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone)); ok {
		t.Error("unmapped key translated")
	}
}

func TestTCellRunnerDrawsAndClicks(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 30)

	r := &tcellRunner{
		screen: screen,
		model:  newTestModel(t),
		msgs:   make(chan tea.Msg, 16),
		done:   make(chan struct{}),
		boxes:  make(map[string]cellRect),
	}
	defer close(r.done)
	r.dispatch(tea.WindowSizeMsg{Width: 80, Height: 30})
	r.dispatch(runes("4"))
	r.draw()

	box, ok := r.boxes["field-0"]
	if !ok {
		t.Fatal("field-0 was not drawn")
	}
	if c, _, _, _ := screen.GetContent(box.x, box.y); c != '┏' {
		t.Errorf("focused frame corner = %q, want heavy", c)
	}
	if c, _, _, _ := screen.GetContent(box.x+2+3, box.y+2); c != '4' {
		t.Errorf("glyph cell = %q, want '4'", c)
	}

	target := r.boxes["field-1"]
	r.handleEvent(tcell.NewEventMouse(target.x+1, target.y+1, tcell.Button1, tcell.ModNone))
	r.handleEvent(tcell.NewEventMouse(target.x+1, target.y+1, tcell.ButtonNone, tcell.ModNone))
	if r.model.FocusedFieldID() != "field-1" {
		t.Errorf("focus = %q after click, want field-1", r.model.FocusedFieldID())
	}
}
