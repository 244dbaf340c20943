package app

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/pinentry/pkg/components"
	"gitlab.com/tinyland/lab/pinentry/pkg/config"
	"gitlab.com/tinyland/lab/pinentry/pkg/theme"
	"gitlab.com/tinyland/lab/pinentry/pkg/tui"
)

// Model is the root bubbletea model: a column of framed pinentry fields, a
// status line and a help footer.
type Model struct {
	cfg     *config.Config
	theme   theme.Theme
	metrics tui.Metrics
	logger  *slog.Logger

	fields  []*PinField
	focused int

	width, height int
	keys          KeyMap
	help          help.Model
	showHelp      bool

	status   string
	statusOK bool
	quitting bool
	ticking  bool

	verifier Verifier
	feedback Feedback
	zones    *zone.Manager
}

// ModelOption configures optional Model collaborators.
type ModelOption func(*Model)

// WithLogger sets the logger handed to every field.
func WithLogger(l *slog.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithFeedback plays accept and reject cues.
func WithFeedback(fb Feedback) ModelOption {
	return func(m *Model) { m.feedback = fb }
}

// WithMetrics overrides the cell size used to lay fields out.
func WithMetrics(mt tui.Metrics) ModelOption {
	return func(m *Model) { m.metrics = mt }
}

// WithZones enables mouse clicks on fields. The manager must be the one
// the program's output passes through.
func WithZones(z *zone.Manager) ModelOption {
	return func(m *Model) { m.zones = z }
}

// NewModel builds one field per cfg.Fields entry, focusing the first.
func NewModel(cfg *config.Config, th theme.Theme, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := Model{
		cfg:      cfg,
		theme:    th,
		metrics:  tui.DefaultMetrics(),
		logger:   slog.Default(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		statusOK: true,
		verifier: Verifier{Expect: cfg.General.Expect},
	}
	for _, o := range opts {
		o(&m)
	}
	m.styleHelp()
	m.buildFields()
	return m
}

func (m *Model) buildFields() {
	m.fields = make([]*PinField, 0, len(m.cfg.Fields))
	for i, fc := range m.cfg.Fields {
		m.fields = append(m.fields, NewPinField(fmt.Sprintf("field-%d", i), fc, m.theme, m.metrics, m.logger))
	}
	m.focused = 0
	if len(m.fields) > 0 {
		m.setFocus(0)
	}
	m.logger.Debug("fields built", "count", len(m.fields), "theme", m.theme.Name)
}

func (m *Model) styleHelp() {
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.HelpKey))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.HelpDesc))
	sepStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Dim))
	m.help.Styles.ShortKey = keyStyle
	m.help.Styles.FullKey = keyStyle
	m.help.Styles.ShortDesc = descStyle
	m.help.Styles.FullDesc = descStyle
	m.help.Styles.ShortSeparator = sepStyle
	m.help.Styles.FullSeparator = sepStyle
}

// Init sets the window title.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("pinentry")
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case FrameEvent:
		m.ticking = false
		for _, f := range m.fields {
			cmds = append(cmds, f.Update(msg))
		}

	case PinEnteredEvent:
		cmds = append(cmds, m.verify(msg))

	case ClearFieldEvent:
		if i := m.fieldIndex(msg.FieldID); i >= 0 {
			if f := m.fields[i]; f.Edits() == msg.Edits {
				f.Clear()
			} else {
				m.logger.Debug("stale clear ignored", "field", f.ID())
			}
		}

	case FieldFocusEvent:
		m.FocusField(msg.FieldID)

	case ThemeChangeEvent:
		m.applyTheme(msg.Theme)

	case ConfigReloadEvent:
		m.reload(msg.Config)
	}

	if m.quitting {
		return m, tea.Batch(cmds...)
	}
	cmds = append(cmds, m.scheduleFrame())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	f := m.focusedField()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Next):
		m.CycleFocusForward()
	case key.Matches(msg, m.keys.Prev):
		m.CycleFocusBackward()
	case key.Matches(msg, m.keys.CycleTheme):
		next := m.nextTheme()
		return func() tea.Msg { return ThemeChangeEvent{Theme: next} }
	case f == nil:
	case key.Matches(msg, m.keys.Clear):
		f.Clear()
	case key.Matches(msg, m.keys.ToggleErr):
		f.Core().SetError(!f.Core().IsError())
	default:
		return f.HandleKey(msg)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.zones == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	for _, f := range m.fields {
		if m.zones.Get(f.ID()).InBounds(msg) {
			return m.ClickField(f.ID())
		}
	}
	return nil
}

// ClickField taps the field with the given ID, focusing it when its Core
// asks for focus.
func (m *Model) ClickField(id string) tea.Cmd {
	i := m.fieldIndex(id)
	if i < 0 {
		return nil
	}
	f := m.fields[i]
	cmd := f.Click()
	if f.takeFocusRequest() {
		m.setFocus(i)
	}
	return cmd
}

// scheduleFrame starts the frame ticker when a field animates and none is
// pending.
func (m *Model) scheduleFrame() tea.Cmd {
	if m.ticking || !slices.ContainsFunc(m.fields, (*PinField).Animating) {
		return nil
	}
	m.ticking = true
	return FrameCmd(m.cfg.General.FrameInterval.Duration)
}

func (m *Model) verify(ev PinEnteredEvent) tea.Cmd {
	i := m.fieldIndex(ev.FieldID)
	if i < 0 {
		return nil
	}
	f := m.fields[i]
	ok, checked := m.verifier.Check(ev.PIN)
	m.logger.Info("pin entered", "field", ev.FieldID, "length", len([]rune(ev.PIN)), "checked", checked, "ok", ok)

	switch {
	case !checked:
		m.status, m.statusOK = fmt.Sprintf("%s: %d characters entered", f.Title(), len([]rune(ev.PIN))), true
	case ok:
		m.status, m.statusOK = fmt.Sprintf("%s: accepted", f.Title()), true
	default:
		m.status, m.statusOK = fmt.Sprintf("%s: rejected", f.Title()), false
		f.Core().SetError(true)
	}

	cmds := []tea.Cmd{m.feedbackCmd(ok)}
	if !ok {
		cmds = append(cmds, ClearAfterCmd(f.ID(), f.Edits(), m.cfg.General.ClearDelay.Duration))
	}
	return tea.Batch(cmds...)
}

func (m *Model) feedbackCmd(ok bool) tea.Cmd {
	fb := m.feedback
	if fb == nil {
		return nil
	}
	return func() tea.Msg {
		if ok {
			fb.Accept()
		} else {
			fb.Reject()
		}
		return nil
	}
}

func (m *Model) nextTheme() string {
	names := theme.Names()
	i := slices.Index(names, m.theme.Name)
	return names[(i+1)%len(names)]
}

func (m *Model) applyTheme(name string) {
	th, ok := theme.Lookup(name)
	if !ok {
		m.status, m.statusOK = fmt.Sprintf("unknown theme %q", name), false
		return
	}
	m.theme = th
	m.styleHelp()
	for _, f := range m.fields {
		f.SetTheme(th)
	}
	m.status, m.statusOK = "theme: "+th.Name, true
}

func (m *Model) reload(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.verifier = Verifier{Expect: cfg.General.Expect}
	if th, ok := theme.Lookup(cfg.General.Theme); ok {
		m.theme = th
		m.styleHelp()
	}
	m.buildFields()
	m.ticking = false
	m.status, m.statusOK = "configuration reloaded", true
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	blocks := make([]string, 0, len(m.fields)+2)
	for _, f := range m.fields {
		v := f.View(m.width)
		if m.zones != nil {
			v = m.zones.Mark(f.ID(), v)
		}
		blocks = append(blocks, v)
	}
	if m.status != "" {
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(components.Hex(m.theme.StatusColor(m.statusOK))))
		blocks = append(blocks, st.Render(m.status))
	}
	blocks = append(blocks, m.help.View(m.keys))

	body := lipgloss.JoinVertical(lipgloss.Left, blocks...)
	out := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	if m.zones != nil {
		out = m.zones.Scan(out)
	}
	return out
}

// Width returns the current terminal width.
func (m Model) Width() int { return m.width }

// Height returns the current terminal height.
func (m Model) Height() int { return m.height }

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool { return m.quitting }

// ShowHelp reports whether the full help is visible.
func (m Model) ShowHelp() bool { return m.showHelp }

// Status returns the status line and whether it reports success.
func (m Model) Status() (string, bool) { return m.status, m.statusOK }

// Ticking reports whether a frame event is pending.
func (m Model) Ticking() bool { return m.ticking }

// Theme returns the active theme.
func (m Model) Theme() theme.Theme { return m.theme }

// Fields returns the fields in focus order.
func (m Model) Fields() []*PinField { return m.fields }

// FocusedFieldID returns the ID of the focused field, or "" without fields.
func (m Model) FocusedFieldID() string {
	if f := m.focusedField(); f != nil {
		return f.ID()
	}
	return ""
}

// Summary describes the model for logs.
func (m Model) Summary() string {
	ids := make([]string, len(m.fields))
	for i, f := range m.fields {
		ids[i] = f.ID() + "=" + f.Title()
	}
	return strings.Join(ids, ", ")
}
