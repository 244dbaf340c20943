// Package app hosts pinentry fields in a bubbletea program. It defines the
// event types, the root model, the field widget and focus navigation, plus
// a tcell runner that drives the same fields without bubbletea.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/pinentry/pkg/config"
)

// FrameEvent is sent by the frame ticker while an entry animation runs.
type FrameEvent struct {
	Time time.Time
}

// PinEnteredEvent carries a completed code out of a field's listener and
// back into the update loop.
type PinEnteredEvent struct {
	FieldID string
	PIN     string
}

// ClearFieldEvent empties a field after a rejected code has been shown for
// the configured delay. It is ignored if the field was edited since.
type ClearFieldEvent struct {
	FieldID string
	Edits   int
}

// FieldFocusEvent requests that focus move to a specific field.
type FieldFocusEvent struct {
	FieldID string
}

// ThemeChangeEvent switches the active color theme.
type ThemeChangeEvent struct {
	Theme string
}

// ConfigReloadEvent delivers a configuration re-read by config.Watcher.
type ConfigReloadEvent struct {
	Config *config.Config
}
