// Package pinentry implements a fixed-length code entry control (PINs,
// OTPs) independent of any UI toolkit.
//
// A Core owns the slot geometry, the entered text, the error and focus
// flags and the per-slot entry animations. Host adapters forward their
// toolkit's size, focus, input and frame callbacks into the Core and hand
// it a Canvas to draw on. See pkg/app (bubbletea), pkg/tui (cells, tcell)
// and pkg/giopin (gio) for the adapters shipped with this module.
package pinentry

import (
	"image/color"
	"time"
)

// Defaults, in dp unless noted.
const (
	DefaultMaxLength          = 4
	DefaultSpacing            = 24
	DefaultTextBottomPadding  = 8
	DefaultLineStroke         = 1
	DefaultLineStrokeSelected = 2
	DefaultTextSize           = 16 // px

	DefaultPopInDuration    = 200 * time.Millisecond
	DefaultBottomUpDuration = 300 * time.Millisecond
)

// AnimationType selects the entry animation played for each new character.
// Any value other than AnimationNone and AnimationPopIn plays bottom-up.
type AnimationType int

const (
	AnimationNone     AnimationType = -1
	AnimationPopIn    AnimationType = 0
	AnimationBottomUp AnimationType = 1
)

// String implements fmt.Stringer.
func (a AnimationType) String() string {
	switch {
	case a < AnimationPopIn:
		return "none"
	case a == AnimationPopIn:
		return "popin"
	default:
		return "bottomup"
	}
}

// ParseAnimationType maps a config name to an AnimationType. Unknown names
// fall back to pop-in.
func ParseAnimationType(name string) AnimationType {
	switch name {
	case "none", "disabled", "-1":
		return AnimationNone
	case "bottomup", "bottom-up", "bottom_up", "1":
		return AnimationBottomUp
	default:
		return AnimationPopIn
	}
}

// Direction is the horizontal order of the slots.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// InputType mirrors the input semantics of the hosting field. Password
// variants get a default mask when none is configured.
type InputType int

const (
	InputText InputType = iota
	InputNumber
	InputTextPassword
	InputNumberPassword
)

// IsPassword reports whether the input type hides its characters.
func (t InputType) IsPassword() bool {
	return t == InputTextPassword || t == InputNumberPassword
}

// Background replaces the underline of each slot with a filled box whose
// color depends on the slot's visual state.
type Background struct {
	Colors Palette
	Radius float32 // dp
}

// Options configures a Core. Use DefaultOptions and override fields;
// lengths are in dp and are multiplied by Density when the Core is built.
type Options struct {
	MaxLength          int
	Spacing            float32 // negative distributes slots evenly
	LineStroke         float32
	LineStrokeSelected float32
	TextBottomPadding  float32

	Mask         *string
	RepeatedHint *string

	BackgroundIsSquare bool
	Background         *Background

	Colors    Palette
	TextColor color.NRGBA
	HintColor color.NRGBA

	Direction Direction
	Animation AnimationType
	InputType InputType

	Density    float32 // px per dp
	TextSize   float32 // px
	TextHeight float32 // px; height of a full-height glyph, TextSize when zero

	PopInDuration    time.Duration
	BottomUpDuration time.Duration
}

// DefaultOptions returns four underlined slots with pop-in entry.
func DefaultOptions() Options {
	return Options{
		MaxLength:          DefaultMaxLength,
		Spacing:            DefaultSpacing,
		LineStroke:         DefaultLineStroke,
		LineStrokeSelected: DefaultLineStrokeSelected,
		TextBottomPadding:  DefaultTextBottomPadding,
		Colors:             DefaultPalette(),
		TextColor:          color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xFF},
		HintColor:          color.NRGBA{R: 0x9E, G: 0x9E, B: 0x9E, A: 0xFF},
		Animation:          AnimationPopIn,
		Density:            1,
		TextSize:           DefaultTextSize,
		PopInDuration:      DefaultPopInDuration,
		BottomUpDuration:   DefaultBottomUpDuration,
	}
}

// StringPtr returns a pointer to s, for the optional Mask and RepeatedHint.
func StringPtr(s string) *string {
	return &s
}

// settings is the resolved, pixel-space form of Options.
type settings struct {
	maxLength      int
	spacing        float32
	stroke         float32
	strokeSelected float32
	bottomPadding  float32

	mask *string
	hint *string

	square     bool
	background *Background
	radius     float32

	colors    Palette
	textColor color.NRGBA
	hintColor color.NRGBA

	direction Direction
	animation AnimationType

	textSize   float32
	textHeight float32

	popIn    time.Duration
	bottomUp time.Duration
}

// resolve converts dp to px and substitutes defaults for values that have
// no meaningful non-positive interpretation.
func (o Options) resolve() settings {
	density := o.Density
	if density <= 0 {
		density = 1
	}
	s := settings{
		maxLength:      o.MaxLength,
		spacing:        o.Spacing * density,
		stroke:         o.LineStroke * density,
		strokeSelected: o.LineStrokeSelected * density,
		bottomPadding:  o.TextBottomPadding * density,
		mask:           MaskFor(o.InputType, o.Mask),
		hint:           o.RepeatedHint,
		square:         o.BackgroundIsSquare,
		background:     o.Background,
		colors:         o.Colors,
		textColor:      o.TextColor,
		hintColor:      o.HintColor,
		direction:      o.Direction,
		animation:      o.Animation,
		textSize:       o.TextSize,
		textHeight:     o.TextHeight,
		popIn:          o.PopInDuration,
		bottomUp:       o.BottomUpDuration,
	}
	if s.maxLength <= 0 {
		s.maxLength = DefaultMaxLength
	}
	if s.stroke <= 0 {
		s.stroke = DefaultLineStroke * density
	}
	if s.strokeSelected <= 0 {
		s.strokeSelected = DefaultLineStrokeSelected * density
	}
	if s.bottomPadding < 0 {
		s.bottomPadding = DefaultTextBottomPadding * density
	}
	if s.textSize <= 0 {
		s.textSize = DefaultTextSize
	}
	if s.textHeight <= 0 {
		s.textHeight = s.textSize
	}
	if s.popIn <= 0 {
		s.popIn = DefaultPopInDuration
	}
	if s.bottomUp <= 0 {
		s.bottomUp = DefaultBottomUpDuration
	}
	if s.background != nil {
		s.radius = s.background.Radius * density
	}
	return s
}
