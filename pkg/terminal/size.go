package terminal

import (
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"golang.org/x/sys/unix"
)

// DefaultCellW and DefaultCellH are assumed when the terminal does not
// report pixel sizes. Most monospace fonts are about twice as tall as wide.
const (
	DefaultCellW = 8
	DefaultCellH = 16
)

// Size represents terminal dimensions in both character cells and pixels.
type Size struct {
	Cols   int // Character columns
	Rows   int // Character rows
	PixelW int // Total pixel width (0 if unknown)
	PixelH int // Total pixel height (0 if unknown)
	CellW  int // Pixel width per cell (0 if unknown)
	CellH  int // Pixel height per cell (0 if unknown)
}

// Cell returns the pixel size of one cell, falling back to the defaults
// when the terminal does not say.
func (s Size) Cell() (w, h int) {
	w, h = s.CellW, s.CellH
	if w <= 0 || h <= 0 {
		return DefaultCellW, DefaultCellH
	}
	return w, h
}

// GetSize returns the current terminal dimensions. It tries, in order:
//  1. TIOCGWINSZ on stdout, then stderr (cells and pixels)
//  2. term.GetSize on stdin (cells only, works on more platforms)
//  3. COLUMNS/LINES environment variables
//  4. 80x24
func GetSize() Size {
	for _, fd := range []uintptr{os.Stdout.Fd(), os.Stderr.Fd()} {
		if s := getSizeFromIoctl(fd); s.Cols > 0 && s.Rows > 0 {
			return s
		}
	}
	if w, h, err := term.GetSize(os.Stdin.Fd()); err == nil && w > 0 && h > 0 {
		return Size{Cols: w, Rows: h}
	}
	return getSizeFromEnv()
}

// getSizeFromIoctl queries the terminal size via TIOCGWINSZ. Returns a
// zero Size on failure.
func getSizeFromIoctl(fd uintptr) Size {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return Size{}
	}
	return sizeFromWinsize(ws)
}

func sizeFromWinsize(ws *unix.Winsize) Size {
	s := Size{
		Cols:   int(ws.Col),
		Rows:   int(ws.Row),
		PixelW: int(ws.Xpixel),
		PixelH: int(ws.Ypixel),
	}
	if s.PixelW > 0 && s.Cols > 0 {
		s.CellW = s.PixelW / s.Cols
	}
	if s.PixelH > 0 && s.Rows > 0 {
		s.CellH = s.PixelH / s.Rows
	}
	return s
}

// getSizeFromEnv reads COLUMNS/LINES, falling back to 80x24.
func getSizeFromEnv() Size {
	return Size{Cols: envInt("COLUMNS", 80), Rows: envInt("LINES", 24)}
}

// envInt reads a positive integer from the named environment variable.
func envInt(name string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
