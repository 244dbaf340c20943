package app

import (
	"context"
	"image/color"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"

	"gitlab.com/tinyland/lab/pinentry/pkg/components"
	"gitlab.com/tinyland/lab/pinentry/pkg/tui"
)

// frameRows is the height of a framed field.
const frameRows = tui.FieldRows + 2

// cellRect is a screen area in cells.
type cellRect struct {
	x, y, w, h int
}

func (r cellRect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// tcellRunner drives a Model on a raw tcell screen. Model commands run on
// their own goroutines and feed their messages back through msgs, so the
// model sees the same message flow as under bubbletea.
type tcellRunner struct {
	screen tcell.Screen
	model  Model
	msgs   chan tea.Msg
	done   chan struct{}
	boxes  map[string]cellRect
	down   bool
	dirty  bool
}

// RunTCell runs m on screen until the user quits or ctx ends. A nil screen
// opens the terminal. The final model is returned.
func RunTCell(ctx context.Context, m Model, screen tcell.Screen) (Model, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return m, err
		}
		if err := s.Init(); err != nil {
			return m, err
		}
		screen = s
	}
	defer screen.Fini()
	screen.EnableMouse()

	r := &tcellRunner{
		screen: screen,
		model:  m,
		msgs:   make(chan tea.Msg, 16),
		done:   make(chan struct{}),
		boxes:  make(map[string]cellRect),
		dirty:  true,
	}
	w, h := screen.Size()
	r.dispatch(tea.WindowSizeMsg{Width: w, Height: h})

	events := make(chan tcell.Event, 16)
	defer close(r.done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-r.done:
				return
			}
		}
	}()

	interval := r.model.cfg.General.FrameInterval.Duration
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !r.model.quitting {
		select {
		case <-ctx.Done():
			return r.model, ctx.Err()
		case ev := <-events:
			r.handleEvent(ev)
		case msg := <-r.msgs:
			r.dispatch(msg)
		case <-ticker.C:
			if r.dirty || r.model.fieldsDirty() {
				r.draw()
			}
		}
	}
	return r.model, nil
}

func (r *tcellRunner) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		r.screen.Sync()
		r.dispatch(tea.WindowSizeMsg{Width: w, Height: h})
	case *tcell.EventKey:
		if msg, ok := teaKey(ev); ok {
			r.dispatch(msg)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		pressed := ev.Buttons()&tcell.Button1 != 0
		if r.down && !pressed {
			for id, box := range r.boxes {
				if box.contains(x, y) {
					r.run(r.model.ClickField(id))
					r.dirty = true
					break
				}
			}
		}
		r.down = pressed
	}
}

// dispatch feeds msg through the model and runs the resulting command.
func (r *tcellRunner) dispatch(msg tea.Msg) {
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, cmd := range batch {
			r.run(cmd)
		}
		return
	}
	if _, ok := msg.(tea.QuitMsg); ok {
		r.model.quitting = true
		return
	}
	next, cmd := r.model.Update(msg)
	r.model = next.(Model)
	r.dirty = true
	r.run(cmd)
}

func (r *tcellRunner) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		msg := cmd()
		if msg == nil {
			return
		}
		select {
		case r.msgs <- msg:
		case <-r.done:
		}
	}()
}

// teaKey translates the keys the model and its fields understand.
func teaKey(ev *tcell.EventKey) (tea.KeyMsg, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, true
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{ev.Rune()}}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return tea.KeyMsg{Type: tea.KeyBackspace}, true
	}
	keys := map[tcell.Key]tea.KeyType{
		tcell.KeyTab:     tea.KeyTab,
		tcell.KeyBacktab: tea.KeyShiftTab,
		tcell.KeyUp:      tea.KeyUp,
		tcell.KeyDown:    tea.KeyDown,
		tcell.KeyEscape:  tea.KeyEsc,
		tcell.KeyCtrlC:   tea.KeyCtrlC,
		tcell.KeyCtrlU:   tea.KeyCtrlU,
		tcell.KeyCtrlE:   tea.KeyCtrlE,
		tcell.KeyCtrlT:   tea.KeyCtrlT,
		tcell.KeyF1:      tea.KeyF1,
	}
	t, ok := keys[ev.Key()]
	return tea.KeyMsg{Type: t}, ok
}

// draw lays the fields out in a centered column the way View does, with
// frames, status and help drawn as plain cells.
func (r *tcellRunner) draw() {
	m := &r.model
	r.screen.Clear()
	sw, sh := r.screen.Size()

	width := 0
	for _, f := range m.fields {
		width = max(width, f.Cols()+frameChrome)
	}
	height := len(m.fields)*frameRows + 2
	x0, y := max((sw-width)/2, 0), max((sh-height)/2, 0)

	clear(r.boxes)
	for _, f := range m.fields {
		focused := f.Core().Focused()
		col := m.theme.BorderColor(focused)
		if f.Core().IsError() {
			col = m.theme.StatusColor(false)
		}
		box := cellRect{x: x0, y: y, w: f.Cols() + frameChrome, h: frameRows}
		drawBox(r.screen, box, f.Title(), focused, cellStyle(col))
		f.Grid().Blit(r.screen, box.x+2, box.y+1)
		r.boxes[f.ID()] = box
		y += box.h
	}
	if m.status != "" {
		drawText(r.screen, x0, y, m.status, cellStyle(m.theme.StatusColor(m.statusOK)))
	}
	y++
	x := x0
	for _, b := range m.keys.ShortHelp() {
		x = drawText(r.screen, x, y, b.Help().Key, cellStyle(components.MustHex(m.theme.HelpKey)))
		x = drawText(r.screen, x+1, y, b.Help().Desc, cellStyle(components.MustHex(m.theme.HelpDesc)))
		x += 3
	}
	r.screen.Show()
	r.dirty = false
}

func cellStyle(c color.NRGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func drawText(screen tcell.Screen, x, y int, s string, st tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, st)
		x += max(components.VisibleLen(string(r)), 1)
	}
	return x
}

func drawBox(screen tcell.Screen, b cellRect, title string, heavy bool, st tcell.Style) {
	h, v, tl, tr, bl, br := '─', '│', '╭', '╮', '╰', '╯'
	if heavy {
		h, v, tl, tr, bl, br = '━', '┃', '┏', '┓', '┗', '┛'
	}
	right, bottom := b.x+b.w-1, b.y+b.h-1
	for x := b.x + 1; x < right; x++ {
		screen.SetContent(x, b.y, h, nil, st)
		screen.SetContent(x, bottom, h, nil, st)
	}
	for y := b.y + 1; y < bottom; y++ {
		screen.SetContent(b.x, y, v, nil, st)
		screen.SetContent(right, y, v, nil, st)
	}
	screen.SetContent(b.x, b.y, tl, nil, st)
	screen.SetContent(right, b.y, tr, nil, st)
	screen.SetContent(b.x, bottom, bl, nil, st)
	screen.SetContent(right, bottom, br, nil, st)
	if title != "" && b.w > 4 {
		drawText(screen, b.x+2, b.y, " "+components.Truncate(title, b.w-6)+" ", st)
	}
}
