package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameCmd returns a bubbletea Cmd that sends a FrameEvent after d. The
// model re-arms it on every frame while a field is animating.
func FrameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameEvent{Time: t}
	})
}

// ClearAfterCmd returns a Cmd that sends a ClearFieldEvent for id after d.
// edits is the field's edit count when the clear was scheduled.
func ClearAfterCmd(id string, edits int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearFieldEvent{FieldID: id, Edits: edits}
	})
}

// pinEnteredCmd wraps a completed code in a Cmd so it re-enters Update as
// a message instead of being handled inside the field's listener.
func pinEnteredCmd(id, pin string) tea.Cmd {
	return func() tea.Msg {
		return PinEnteredEvent{FieldID: id, PIN: pin}
	}
}
