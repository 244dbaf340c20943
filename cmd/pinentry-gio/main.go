// pinentry-gio shows the configured code fields in a gio window.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"gitlab.com/tinyland/lab/pinentry/pkg/config"
	"gitlab.com/tinyland/lab/pinentry/pkg/giopin"
	"gitlab.com/tinyland/lab/pinentry/pkg/theme"
)

type entry struct {
	title string
	field *giopin.Field
}

type demo struct {
	th      *material.Theme
	colors  theme.Theme
	entries []entry
	expect  string
	status  string
	ok      bool
}

func main() {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, _, err = config.Load()
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title("pinentry"))
		w.Option(app.Size(unit.Dp(420), unit.Dp(640)))

		if err := loop(w, cfg, logger); err != nil {
			logger.Error("window error", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}

func newDemo(cfg *config.Config, logger *slog.Logger) *demo {
	shaper := text.NewShaper(text.WithCollection(gofont.Collection()))
	th := material.NewTheme()
	th.Shaper = shaper

	d := &demo{
		th:     th,
		colors: theme.Get(cfg.General.Theme),
		expect: cfg.General.Expect,
		ok:     true,
	}
	th.Palette.Bg = d.colors.BackgroundColor()
	th.Palette.Fg = d.colors.BorderColor(true)

	for _, fc := range cfg.Fields {
		f := giopin.NewField(fc.Options(d.colors), shaper, fc.Numeric(), logger.With("field", fc.Title()))
		e := entry{title: fc.Title(), field: f}
		f.SetOnPinEnteredListener(func(pin string) { d.verify(e, pin) })
		d.entries = append(d.entries, e)
	}
	return d
}

// verify marks a wrong code as an error; the next edit clears it.
func (d *demo) verify(e entry, pin string) {
	d.ok = d.expect == "" || pin == d.expect
	if d.ok {
		d.status = e.title + ": accepted"
		return
	}
	d.status = e.title + ": rejected"
	e.field.Core().SetError(true)
}

func loop(w *app.Window, cfg *config.Config, logger *slog.Logger) error {
	d := newDemo(cfg, logger)

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			d.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (d *demo) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, d.th.Palette.Bg)

	children := make([]layout.FlexChild, 0, 2*len(d.entries)+1)
	for _, e := range d.entries {
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				l := material.Caption(d.th, e.title)
				l.Color = d.colors.BorderColor(false)
				return l.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Bottom: unit.Dp(16)}.Layout(gtx, e.field.Layout)
			}),
		)
	}
	children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
		l := material.Body1(d.th, d.status)
		l.Color = d.colors.StatusColor(d.ok)
		return l.Layout(gtx)
	}))

	return layout.UniformInset(unit.Dp(24)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}
