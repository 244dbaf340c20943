// pinentry is a terminal demo of the fixed-length code entry control.
//
// It shows one field per configured entry (PIN, one-time code, masked,
// boxed, square and right-to-left variants by default), verifies completed
// codes against an expected value and reloads its config file on change.
//
// Usage:
//
//	pinentry [flags]
//
// Flags:
//
//	-config string        Path to a TOML or YAML config file (default: $XDG_CONFIG_HOME/pinentry/config.toml)
//	-backend string       Terminal backend: tea or tcell (overrides config)
//	-theme string         Color theme name (overrides config)
//	-expect string        Code that is accepted (overrides config)
//	-chime                Play a tone for accepted and rejected codes
//	-export-theme string  Print a built-in theme as TOML and exit
//	-presets              List field presets and themes and exit
//	-verbose              Enable debug logging
//	-version              Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/pinentry/pkg/app"
	"gitlab.com/tinyland/lab/pinentry/pkg/config"
	"gitlab.com/tinyland/lab/pinentry/pkg/feedback"
	"gitlab.com/tinyland/lab/pinentry/pkg/terminal"
	"gitlab.com/tinyland/lab/pinentry/pkg/theme"
	"gitlab.com/tinyland/lab/pinentry/pkg/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to a TOML or YAML config file")
		backend     = flag.String("backend", "", "Terminal backend: tea or tcell")
		themeName   = flag.String("theme", "", "Color theme name")
		expect      = flag.String("expect", "", "Code that is accepted")
		chime       = flag.Bool("chime", false, "Play a tone for accepted and rejected codes")
		exportTheme = flag.String("export-theme", "", "Print a built-in theme as TOML and exit")
		listPresets = flag.Bool("presets", false, "List field presets and themes and exit")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("pinentry %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if *listPresets {
		fmt.Printf("presets: %s\n", strings.Join(config.PresetNames(), ", "))
		fmt.Printf("themes:  %s\n", strings.Join(theme.Names(), ", "))
		os.Exit(0)
	}

	if *exportTheme != "" {
		th, ok := theme.Lookup(*exportTheme)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown theme: %s\n", *exportTheme)
			os.Exit(1)
		}
		data, err := theme.SaveToTOML(th)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to export theme: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		os.Exit(0)
	}

	// Load configuration
	cfg, path, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *backend != "" {
		cfg.General.Backend = *backend
	}
	if *themeName != "" {
		cfg.General.Theme = *themeName
	}
	if *expect != "" {
		cfg.General.Expect = *expect
	}
	if *chime {
		cfg.General.Chime = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go to the log file.
	logger, closeLog, err := setupLogging(cfg.General, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	if cfg.General.ThemeFile != "" {
		if err := registerThemeFile(cfg.General.ThemeFile); err != nil {
			logger.Warn("theme file ignored", "path", cfg.General.ThemeFile, "error", err)
		}
	}

	caps := terminal.DetectCapabilities()
	th := theme.Adapt(theme.Get(cfg.General.Theme), caps.ColorDepth)
	theme.SetCurrent(th.Name)
	logger.Info("starting",
		"version", version,
		"config", path,
		"backend", cfg.General.Backend,
		"theme", th.Name,
		"terminal", caps.Term.String(),
		"color_depth", caps.ColorDepth,
	)

	if !caps.Interactive {
		fmt.Fprintln(os.Stderr, "pinentry needs an interactive terminal")
		os.Exit(1)
	}

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	opts := []app.ModelOption{
		app.WithLogger(logger),
		app.WithMetrics(tui.MetricsFor(caps.Size)),
	}
	if cfg.General.Chime {
		if c, err := feedback.NewChime(feedback.WithLogger(logger)); err != nil {
			logger.Warn("audio unavailable, chime disabled", "error", err)
		} else {
			opts = append(opts, app.WithFeedback(c))
		}
	}

	switch cfg.General.Backend {
	case "tcell":
		model := app.NewModel(cfg, th, opts...)
		if _, err := app.RunTCell(ctx, model, nil); err != nil && ctx.Err() == nil {
			logger.Error("tcell error", "error", err)
			os.Exit(1)
		}

	default:
		zones := zone.New()
		defer zones.Close()
		opts = append(opts, app.WithZones(zones))
		model := app.NewModel(cfg, th, opts...)
		logger.Debug("fields", "summary", model.Summary())

		teaOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
		if caps.Mouse {
			teaOpts = append(teaOpts, tea.WithMouseCellMotion())
		}
		p := tea.NewProgram(model, teaOpts...)

		if path != "" {
			w := config.NewWatcher(path, func(c *config.Config) {
				p.Send(app.ConfigReloadEvent{Config: c})
			}, logger)
			if err := w.Start(ctx); err != nil {
				logger.Warn("config watcher not started", "error", err)
			} else {
				defer w.Close()
			}
		}

		if _, err := p.Run(); err != nil && ctx.Err() == nil {
			logger.Error("TUI error", "error", err)
			os.Exit(1)
		}
	}
}

// loadConfig reads an explicit path, or searches the default locations.
// The returned path is empty when no file was found.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		return config.Load()
	}
	cfg, err := config.LoadFromFile(path)
	return cfg, path, err
}

func setupLogging(g config.GeneralConfig, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = io.Discard
	closeFn := func() {}
	if g.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(g.LogFile), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(g.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { f.Close() }
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}

func registerThemeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	th, err := theme.LoadFromTOML(data)
	if err != nil {
		return err
	}
	return theme.Register(th)
}
