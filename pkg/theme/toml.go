package theme

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name   string       `toml:"name"`
	Base   thTOMLBase   `toml:"base"`
	Glyph  thTOMLGlyph  `toml:"glyph"`
	Line   thTOMLLine   `toml:"line"`
	Box    thTOMLBox    `toml:"box"`
	Chrome thTOMLChrome `toml:"chrome"`
}

type thTOMLBase struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
}

type thTOMLGlyph struct {
	Text string `toml:"text"`
	Hint string `toml:"hint"`
}

type thTOMLLine struct {
	Selected  string `toml:"selected"`
	Error     string `toml:"error"`
	Focused   string `toml:"focused"`
	Unfocused string `toml:"unfocused"`
}

type thTOMLBox struct {
	Selected  string `toml:"selected"`
	Filled    string `toml:"filled"`
	Focused   string `toml:"focused"`
	Unfocused string `toml:"unfocused"`
	Error     string `toml:"error"`
}

type thTOMLChrome struct {
	Border      string `toml:"border"`
	BorderFocus string `toml:"border_focus"`
	Title       string `toml:"title"`
	StatusOK    string `toml:"status_ok"`
	StatusError string `toml:"status_error"`
	HelpKey     string `toml:"help_key"`
	HelpDesc    string `toml:"help_desc"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses and validates a TOML theme definition.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt thTOMLTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:       tt.Name,
		Background: tt.Base.Background,
		Foreground: tt.Base.Foreground,
		Dim:        tt.Base.Dim,
		Accent:     tt.Base.Accent,

		Text: tt.Glyph.Text,
		Hint: tt.Glyph.Hint,

		LineSelected:  tt.Line.Selected,
		LineError:     tt.Line.Error,
		LineFocused:   tt.Line.Focused,
		LineUnfocused: tt.Line.Unfocused,

		BoxSelected:  tt.Box.Selected,
		BoxFilled:    tt.Box.Filled,
		BoxFocused:   tt.Box.Focused,
		BoxUnfocused: tt.Box.Unfocused,
		BoxError:     tt.Box.Error,

		Border:      tt.Chrome.Border,
		BorderFocus: tt.Chrome.BorderFocus,
		Title:       tt.Chrome.Title,
		StatusOK:    tt.Chrome.StatusOK,
		StatusError: tt.Chrome.StatusError,
		HelpKey:     tt.Chrome.HelpKey,
		HelpDesc:    tt.Chrome.HelpDesc,
	}

	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// SaveToTOML serializes a theme to TOML bytes.
func SaveToTOML(t Theme) ([]byte, error) {
	tt := thTOMLTheme{
		Name: t.Name,
		Base: thTOMLBase{
			Background: t.Background,
			Foreground: t.Foreground,
			Dim:        t.Dim,
			Accent:     t.Accent,
		},
		Glyph: thTOMLGlyph{Text: t.Text, Hint: t.Hint},
		Line: thTOMLLine{
			Selected:  t.LineSelected,
			Error:     t.LineError,
			Focused:   t.LineFocused,
			Unfocused: t.LineUnfocused,
		},
		Box: thTOMLBox{
			Selected:  t.BoxSelected,
			Filled:    t.BoxFilled,
			Focused:   t.BoxFocused,
			Unfocused: t.BoxUnfocused,
			Error:     t.BoxError,
		},
		Chrome: thTOMLChrome{
			Border:      t.Border,
			BorderFocus: t.BorderFocus,
			Title:       t.Title,
			StatusOK:    t.StatusOK,
			StatusError: t.StatusError,
			HelpKey:     t.HelpKey,
			HelpDesc:    t.HelpDesc,
		},
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tt); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// thValidateTheme checks that the name and every color are present and
// every color is "#RRGGBB". Fields are checked in declaration order so the
// reported field is deterministic.
func thValidateTheme(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}
	for _, f := range t.thColors() {
		if *f.ptr == "" {
			return fmt.Errorf("theme: missing required field %q", f.key)
		}
		if !thHexColorRegex.MatchString(*f.ptr) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", *f.ptr, f.key)
		}
	}
	return nil
}
