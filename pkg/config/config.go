package config

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/pinentry/pkg/pinentry"
	"gitlab.com/tinyland/lab/pinentry/pkg/theme"
)

// Config is the root of the configuration file.
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Fields  []FieldConfig `toml:"field" yaml:"fields"`
}

// GeneralConfig holds settings that apply to the whole demo.
type GeneralConfig struct {
	LogLevel      string   `toml:"log_level" yaml:"log_level"`
	LogFile       string   `toml:"log_file" yaml:"log_file"`
	Theme         string   `toml:"theme" yaml:"theme"`
	ThemeFile     string   `toml:"theme_file" yaml:"theme_file"`
	Backend       string   `toml:"backend" yaml:"backend"` // "tea" or "tcell"
	FrameInterval Duration `toml:"frame_interval" yaml:"frame_interval"`
	Expect        string   `toml:"expect" yaml:"expect"`
	ClearDelay    Duration `toml:"clear_delay" yaml:"clear_delay"`
	Chime         bool     `toml:"chime" yaml:"chime"`
}

// FieldConfig describes one code entry field. Zero values inherit from the
// named preset, then from the control defaults.
type FieldConfig struct {
	Name       string   `toml:"name" yaml:"name"`
	Preset     string   `toml:"preset" yaml:"preset"`
	MaxLength  int      `toml:"max_length" yaml:"max_length"`
	Spacing    *float32 `toml:"spacing" yaml:"spacing"` // negative distributes slots evenly
	Mask       string   `toml:"mask" yaml:"mask"`
	Hint       string   `toml:"hint" yaml:"hint"`
	Background string   `toml:"background" yaml:"background"` // "", "box" or "square"
	Radius     float32  `toml:"radius" yaml:"radius"`
	Stroke     float32  `toml:"line_stroke" yaml:"line_stroke"`
	StrokeSel  float32  `toml:"line_stroke_selected" yaml:"line_stroke_selected"`
	BottomPad  *float32 `toml:"text_bottom_padding" yaml:"text_bottom_padding"`
	Direction  string   `toml:"direction" yaml:"direction"` // "ltr" or "rtl"
	Animation  string   `toml:"animation" yaml:"animation"` // "popin", "bottomup" or "none"
	Input      string   `toml:"input" yaml:"input"`         // "text", "number", "password", "number-password"
	PopIn      Duration `toml:"popin_duration" yaml:"popin_duration"`
	BottomUp   Duration `toml:"bottomup_duration" yaml:"bottomup_duration"`
}

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validBackends   = []string{"tea", "tcell"}
	validBackground = []string{"", "box", "square"}
	validDirections = []string{"", "ltr", "rtl"}
	validAnimations = []string{"", "popin", "bottomup", "none"}
	validInputs     = []string{"", "text", "number", "password", "number-password"}
)

// Validate reports every problem in the configuration, joined.
func (c *Config) Validate() error {
	var errs []error
	check := func(field, value string, valid []string) {
		for _, v := range valid {
			if strings.EqualFold(value, v) {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%s: invalid value %q (want one of %s)", field, value, strings.Join(nonEmpty(valid), ", ")))
	}

	check("general.log_level", c.General.LogLevel, validLogLevels)
	check("general.backend", c.General.Backend, validBackends)
	if c.General.ThemeFile == "" {
		if _, ok := theme.Lookup(c.General.Theme); !ok {
			errs = append(errs, fmt.Errorf("general.theme: unknown theme %q", c.General.Theme))
		}
	}
	if len(c.Fields) == 0 {
		errs = append(errs, errors.New("at least one field is required"))
	}

	for i, f := range c.Fields {
		prefix := fmt.Sprintf("field[%d]", i)
		if f.Preset != "" {
			if _, ok := FieldPreset(f.Preset); !ok {
				errs = append(errs, fmt.Errorf("%s.preset: unknown preset %q", prefix, f.Preset))
			}
		}
		if f.MaxLength < 0 || f.MaxLength > MaxFieldLength {
			errs = append(errs, fmt.Errorf("%s.max_length: %d out of range 0..%d", prefix, f.MaxLength, MaxFieldLength))
		}
		if f.Stroke < 0 || f.StrokeSel < 0 {
			errs = append(errs, fmt.Errorf("%s: line strokes must not be negative", prefix))
		}
		if f.BottomPad != nil && *f.BottomPad < 0 {
			errs = append(errs, fmt.Errorf("%s.text_bottom_padding: %v is negative", prefix, *f.BottomPad))
		}
		check(prefix+".background", f.Background, validBackground)
		check(prefix+".direction", f.Direction, validDirections)
		check(prefix+".animation", f.Animation, validAnimations)
		check(prefix+".input", f.Input, validInputs)
	}
	return errors.Join(errs...)
}

func nonEmpty(vs []string) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// MaxFieldLength bounds max_length so a field still fits a terminal row.
const MaxFieldLength = 16

// Resolved returns f with its preset applied underneath the explicitly set
// values.
func (f FieldConfig) Resolved() FieldConfig {
	base, ok := FieldPreset(f.Preset)
	if !ok {
		return f
	}
	if f.Name != "" {
		base.Name = f.Name
	}
	if f.MaxLength != 0 {
		base.MaxLength = f.MaxLength
	}
	if f.Spacing != nil {
		base.Spacing = f.Spacing
	}
	if f.Mask != "" {
		base.Mask = f.Mask
	}
	if f.Hint != "" {
		base.Hint = f.Hint
	}
	if f.Background != "" {
		base.Background = f.Background
	}
	if f.Radius != 0 {
		base.Radius = f.Radius
	}
	if f.Stroke != 0 {
		base.Stroke = f.Stroke
	}
	if f.StrokeSel != 0 {
		base.StrokeSel = f.StrokeSel
	}
	if f.BottomPad != nil {
		base.BottomPad = f.BottomPad
	}
	if f.Direction != "" {
		base.Direction = f.Direction
	}
	if f.Animation != "" {
		base.Animation = f.Animation
	}
	if f.Input != "" {
		base.Input = f.Input
	}
	if f.PopIn.Duration != 0 {
		base.PopIn = f.PopIn
	}
	if f.BottomUp.Duration != 0 {
		base.BottomUp = f.BottomUp
	}
	return base
}

// Title is the label shown above the field.
func (f FieldConfig) Title() string {
	f = f.Resolved()
	if f.Name != "" {
		return f.Name
	}
	if f.Preset != "" {
		return f.Preset
	}
	return "PIN"
}

// Options converts the field into control options colored by th.
func (f FieldConfig) Options(th theme.Theme) pinentry.Options {
	f = f.Resolved()
	opts := pinentry.DefaultOptions()

	if f.MaxLength > 0 {
		opts.MaxLength = f.MaxLength
	}
	if f.Spacing != nil {
		opts.Spacing = *f.Spacing
	}
	if f.Mask != "" {
		opts.Mask = pinentry.StringPtr(f.Mask)
	}
	if f.Hint != "" {
		opts.RepeatedHint = pinentry.StringPtr(f.Hint)
	}
	if f.Stroke > 0 {
		opts.LineStroke = f.Stroke
	}
	if f.StrokeSel > 0 {
		opts.LineStrokeSelected = f.StrokeSel
	}
	if f.BottomPad != nil {
		opts.TextBottomPadding = *f.BottomPad
	}
	switch strings.ToLower(f.Background) {
	case "box":
		opts.Background = &pinentry.Background{Radius: f.Radius}
	case "square":
		opts.Background = &pinentry.Background{Radius: f.Radius}
		opts.BackgroundIsSquare = true
	}
	if strings.EqualFold(f.Direction, "rtl") {
		opts.Direction = pinentry.RightToLeft
	}
	if f.Animation != "" {
		opts.Animation = pinentry.ParseAnimationType(strings.ToLower(f.Animation))
	}
	switch strings.ToLower(f.Input) {
	case "text":
		opts.InputType = pinentry.InputText
	case "password":
		opts.InputType = pinentry.InputTextPassword
	case "number-password":
		opts.InputType = pinentry.InputNumberPassword
	default:
		opts.InputType = pinentry.InputNumber
	}
	if f.PopIn.Duration > 0 {
		opts.PopInDuration = f.PopIn.Duration
	}
	if f.BottomUp.Duration > 0 {
		opts.BottomUpDuration = f.BottomUp.Duration
	}

	th.Apply(&opts)
	return opts
}

// Numeric reports whether the field only accepts digits.
func (f FieldConfig) Numeric() bool {
	switch strings.ToLower(f.Resolved().Input) {
	case "text", "password":
		return false
	}
	return true
}
