package config

import "sort"

// FieldPreset returns the field configuration for a named preset. The
// presets reproduce the variants of the classic sample screen.
func FieldPreset(name string) (FieldConfig, bool) {
	switch name {
	case "pin":
		return pinPreset(), true
	case "otp":
		return otpPreset(), true
	case "password":
		return passwordPreset(), true
	case "boxed":
		return boxedPreset(), true
	case "square":
		return squarePreset(), true
	case "rtl":
		return rtlPreset(), true
	default:
		return FieldConfig{}, false
	}
}

// PresetNames returns the preset names sorted alphabetically.
func PresetNames() []string {
	names := []string{"pin", "otp", "password", "boxed", "square", "rtl"}
	sort.Strings(names)
	return names
}

// pinPreset is the plain underlined four digit field.
func pinPreset() FieldConfig {
	return FieldConfig{
		Name:      "PIN",
		Preset:    "pin",
		MaxLength: 4,
		Animation: "popin",
		Input:     "number",
	}
}

// otpPreset is a six digit one-time code with a dash hint in empty slots.
func otpPreset() FieldConfig {
	spacing := float32(-1)
	return FieldConfig{
		Name:      "One-time code",
		Preset:    "otp",
		MaxLength: 6,
		Spacing:   &spacing,
		Hint:      "-",
		Animation: "bottomup",
		Input:     "number",
	}
}

// passwordPreset masks each digit with the default password dot.
func passwordPreset() FieldConfig {
	return FieldConfig{
		Name:      "Password",
		Preset:    "password",
		MaxLength: 4,
		Animation: "popin",
		Input:     "number-password",
	}
}

// boxedPreset replaces underlines with rounded boxes and a star mask.
func boxedPreset() FieldConfig {
	return FieldConfig{
		Name:       "Boxed",
		Preset:     "boxed",
		MaxLength:  4,
		Mask:       "*",
		Background: "box",
		Radius:     4,
		Animation:  "bottomup",
		Input:      "number",
	}
}

// squarePreset draws square boxes spanning the full field height.
func squarePreset() FieldConfig {
	return FieldConfig{
		Name:       "Square",
		Preset:     "square",
		MaxLength:  4,
		Background: "square",
		Animation:  "popin",
		Input:      "text",
	}
}

// rtlPreset lays slots out from the right edge.
func rtlPreset() FieldConfig {
	return FieldConfig{
		Name:      "Right to left",
		Preset:    "rtl",
		MaxLength: 4,
		Direction: "rtl",
		Animation: "popin",
		Input:     "number",
	}
}
