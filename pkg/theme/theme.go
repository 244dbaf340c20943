// Package theme provides the named color themes of the pinentry hosts. A
// theme colors the field's glyphs, the underline or box of every slot
// state, and the surrounding chrome of the demo.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme is a complete set of hex colors ("#rrggbb").
type Theme struct {
	Name string

	// Base colors
	Background string
	Foreground string
	Dim        string
	Accent     string

	// Glyphs
	Text string
	Hint string

	// Underline per slot state
	LineSelected  string
	LineError     string
	LineFocused   string
	LineUnfocused string

	// Background box per slot state
	BoxSelected  string
	BoxFilled    string
	BoxFocused   string
	BoxUnfocused string
	BoxError     string

	// Chrome
	Border      string // unfocused field frame
	BorderFocus string // focused field frame
	Title       string
	StatusOK    string
	StatusError string
	HelpKey     string
	HelpDesc    string
}

// thField names one color of a Theme for validation, conversion and
// serialization.
type thField struct {
	key string
	ptr *string
}

// thColors lists every color field of t in a stable order.
func (t *Theme) thColors() []thField {
	return []thField{
		{"background", &t.Background},
		{"foreground", &t.Foreground},
		{"dim", &t.Dim},
		{"accent", &t.Accent},
		{"text", &t.Text},
		{"hint", &t.Hint},
		{"line_selected", &t.LineSelected},
		{"line_error", &t.LineError},
		{"line_focused", &t.LineFocused},
		{"line_unfocused", &t.LineUnfocused},
		{"box_selected", &t.BoxSelected},
		{"box_filled", &t.BoxFilled},
		{"box_focused", &t.BoxFocused},
		{"box_unfocused", &t.BoxUnfocused},
		{"box_error", &t.BoxError},
		{"border", &t.Border},
		{"border_focus", &t.BorderFocus},
		{"title", &t.Title},
		{"status_ok", &t.StatusOK},
		{"status_error", &t.StatusError},
		{"help_key", &t.HelpKey},
		{"help_desc", &t.HelpDesc},
	}
}

// Current holds the active theme (set via SetCurrent).
var Current Theme

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegisterBuiltins()
	Current = thDefaultTheme()
}

// Get returns a named theme, falling back to "default" if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Lookup returns a named theme and whether it exists.
func Lookup(name string) (Theme, bool) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := registry[strings.ToLower(name)]
	return t, ok
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetCurrent sets the active theme by name.
func SetCurrent(name string) {
	Current = Get(name)
}

// Register validates t and adds it to the registry, replacing any theme of
// the same name.
func Register(t Theme) error {
	if err := thValidateTheme(t); err != nil {
		return err
	}
	thRegister(t)
	return nil
}

// thRegister adds a theme to the registry under its lowercase name.
func thRegister(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}
