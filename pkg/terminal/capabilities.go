package terminal

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Capabilities is the cached terminal summary for the current session.
type Capabilities struct {
	Term        Terminal
	Size        Size
	ColorDepth  int  // 24, 8 (256 colors), 4 (16 colors) or 1 (none)
	Interactive bool // stdin and stdout are terminals
	Mouse       bool // click reporting is worth enabling
	SSH         bool
	Mux         bool // inside tmux or screen
}

var (
	cached     *Capabilities
	detectOnce sync.Once
	mu         sync.Mutex
)

// DetectCapabilities performs detection once and caches the result. Safe
// for concurrent use.
func DetectCapabilities() *Capabilities {
	mu.Lock()
	defer mu.Unlock()
	detectOnce.Do(func() {
		cached = detect()
	})
	return cached
}

func detect() *Capabilities {
	term := Detect()
	return &Capabilities{
		Term:        term,
		Size:        GetSize(),
		ColorDepth:  colorDepth(term, termenv.EnvColorProfile()),
		Interactive: IsInteractive(),
		Mouse:       term.SupportsMouse(),
		SSH:         isSSH(),
		Mux:         os.Getenv("TMUX") != "" || os.Getenv("STY") != "",
	}
}

// colorDepth maps a termenv profile to bits per pixel. Terminals known to
// render true color are upgraded even if COLORTERM is missing, which is
// common over SSH. NO_COLOR (honored by termenv) is never upgraded.
func colorDepth(term Terminal, p termenv.Profile) int {
	switch p {
	case termenv.TrueColor:
		return 24
	case termenv.Ascii:
		return 1
	}
	if term.SupportsTrueColor() && !envNoColor() {
		return 24
	}
	if p == termenv.ANSI256 {
		return 8
	}
	return 4
}

func envNoColor() bool {
	return os.Getenv("NO_COLOR") != ""
}

// IsInteractive reports whether both stdin and stdout are terminals, which
// the terminal hosts need for raw input.
func IsInteractive() bool {
	return isTTY(os.Stdin.Fd()) && isTTY(os.Stdout.Fd())
}

func isTTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
