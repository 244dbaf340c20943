package pinentry

import "image/color"

// SlotVisualState is the resolved look of a single slot.
type SlotVisualState int

const (
	StateError SlotVisualState = iota
	StateFocusedSelected
	StateFocusedFilled
	StateFocusedPlain
	StateUnfocused
)

// String implements fmt.Stringer.
func (s SlotVisualState) String() string {
	switch s {
	case StateError:
		return "error"
	case StateFocusedSelected:
		return "focused-selected"
	case StateFocusedFilled:
		return "focused-filled"
	case StateFocusedPlain:
		return "focused"
	default:
		return "unfocused"
	}
}

// SlotState is the input to state resolution for one slot.
type SlotState struct {
	HasError bool
	Focused  bool
	Filled   bool // a character has been typed into the slot
	Next     bool // the slot receives the next character
}

// LineVisual resolves the underline state. Error dominates focus.
func LineVisual(s SlotState) SlotVisualState {
	switch {
	case s.HasError:
		return StateError
	case s.Focused && (s.Filled || s.Next):
		return StateFocusedSelected
	case s.Focused:
		return StateFocusedPlain
	default:
		return StateUnfocused
	}
}

// BackgroundVisual resolves the background box state. Unlike LineVisual it
// tells the next slot apart from already filled ones.
func BackgroundVisual(s SlotState) SlotVisualState {
	switch {
	case s.HasError:
		return StateError
	case s.Focused && s.Next:
		return StateFocusedSelected
	case s.Focused && s.Filled:
		return StateFocusedFilled
	case s.Focused:
		return StateFocusedPlain
	default:
		return StateUnfocused
	}
}

// Palette maps each SlotVisualState to a color.
type Palette struct {
	Selected  color.NRGBA
	Error     color.NRGBA
	Filled    color.NRGBA // zero value falls back to Focused
	Focused   color.NRGBA
	Unfocused color.NRGBA
}

// DefaultPalette returns the stock line colors: green when selected, red on
// error and gray otherwise.
func DefaultPalette() Palette {
	gray := color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}
	return Palette{
		Selected:  color.NRGBA{R: 0x00, G: 0xC8, B: 0x53, A: 0xFF},
		Error:     color.NRGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF},
		Focused:   gray,
		Unfocused: gray,
	}
}

// Color returns the color for s.
func (p Palette) Color(s SlotVisualState) color.NRGBA {
	switch s {
	case StateError:
		return p.Error
	case StateFocusedSelected:
		return p.Selected
	case StateFocusedFilled:
		if p.Filled == (color.NRGBA{}) {
			return p.Focused
		}
		return p.Filled
	case StateFocusedPlain:
		return p.Focused
	default:
		return p.Unfocused
	}
}

// Resolver turns a SlotState into underline color and stroke width.
type Resolver struct {
	Colors         Palette
	Stroke         float32
	StrokeSelected float32
}

// Line returns the underline color and stroke width for s. The wider stroke
// is used on every slot while the field has focus, including in error.
func (r Resolver) Line(s SlotState) (color.NRGBA, float32) {
	stroke := r.Stroke
	if s.Focused {
		stroke = r.StrokeSelected
	}
	return r.Colors.Color(LineVisual(s)), stroke
}
