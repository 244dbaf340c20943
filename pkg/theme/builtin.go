package theme

// thRegisterBuiltins registers all built-in themes in the registry.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		thDefaultTheme(),
		thGruvboxTheme(),
		thNordTheme(),
		thCatppuccinTheme(),
		thDraculaTheme(),
		thTokyoNightTheme(),
	} {
		thRegister(t)
	}
}

// thPalette is the handful of source colors a built-in theme is derived
// from.
type thPalette struct {
	name       string
	background string
	foreground string
	dim        string
	accent     string
	surface    string // raised background, used for empty boxes and frames
	overlay    string // between surface and dim, used for filled boxes
	ok         string
	err        string
}

// thBuild spreads a palette over every slot state. The selected slot takes
// the accent, focused slots the foreground, unfocused ones the dim color.
func thBuild(p thPalette) Theme {
	return Theme{
		Name:       p.name,
		Background: p.background,
		Foreground: p.foreground,
		Dim:        p.dim,
		Accent:     p.accent,

		Text: p.foreground,
		Hint: p.dim,

		LineSelected:  p.accent,
		LineError:     p.err,
		LineFocused:   p.foreground,
		LineUnfocused: p.dim,

		BoxSelected:  p.accent,
		BoxFilled:    p.overlay,
		BoxFocused:   p.surface,
		BoxUnfocused: p.surface,
		BoxError:     p.err,

		Border:      p.surface,
		BorderFocus: p.accent,
		Title:       p.foreground,
		StatusOK:    p.ok,
		StatusError: p.err,
		HelpKey:     p.accent,
		HelpDesc:    p.dim,
	}
}

// thDefaultTheme returns the neutral dark theme. Its underline colors are
// those of the classic Android control: green selection, red error and
// gray otherwise.
func thDefaultTheme() Theme {
	t := thBuild(thPalette{
		name:       "default",
		background: "#1e1e1e",
		foreground: "#d4d4d4",
		dim:        "#6b6b6b",
		accent:     "#00c853",
		surface:    "#3e3e3e",
		overlay:    "#4e4e4e",
		ok:         "#4ec970",
		err:        "#ff0000",
	})
	t.LineFocused = "#888888"
	t.LineUnfocused = "#888888"
	return t
}

// thGruvboxTheme returns the warm retro Gruvbox theme.
func thGruvboxTheme() Theme {
	return thBuild(thPalette{
		name:       "gruvbox",
		background: "#282828",
		foreground: "#ebdbb2",
		dim:        "#928374",
		accent:     "#fe8019",
		surface:    "#3c3836",
		overlay:    "#504945",
		ok:         "#b8bb26",
		err:        "#fb4934",
	})
}

// thNordTheme returns the arctic blue Nord theme.
func thNordTheme() Theme {
	return thBuild(thPalette{
		name:       "nord",
		background: "#2e3440",
		foreground: "#eceff4",
		dim:        "#4c566a",
		accent:     "#88c0d0",
		surface:    "#3b4252",
		overlay:    "#434c5e",
		ok:         "#a3be8c",
		err:        "#bf616a",
	})
}

// thCatppuccinTheme returns the pastel Catppuccin Mocha theme.
func thCatppuccinTheme() Theme {
	return thBuild(thPalette{
		name:       "catppuccin",
		background: "#1e1e2e",
		foreground: "#cdd6f4",
		dim:        "#6c7086",
		accent:     "#cba6f7",
		surface:    "#313244",
		overlay:    "#45475a",
		ok:         "#a6e3a1",
		err:        "#f38ba8",
	})
}

// thDraculaTheme returns the Dracula theme.
func thDraculaTheme() Theme {
	return thBuild(thPalette{
		name:       "dracula",
		background: "#282a36",
		foreground: "#f8f8f2",
		dim:        "#6272a4",
		accent:     "#bd93f9",
		surface:    "#44475a",
		overlay:    "#565970",
		ok:         "#50fa7b",
		err:        "#ff5555",
	})
}

// thTokyoNightTheme returns the Tokyo Night theme.
func thTokyoNightTheme() Theme {
	return thBuild(thPalette{
		name:       "tokyo-night",
		background: "#1a1b26",
		foreground: "#c0caf5",
		dim:        "#565f89",
		accent:     "#7aa2f7",
		surface:    "#292e42",
		overlay:    "#3b4261",
		ok:         "#9ece6a",
		err:        "#f7768e",
	})
}
