package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleLen returns the width of s in terminal cells. Escape sequences
// are ignored and wide runes count as two cells.
func VisibleLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate cuts s to at most width cells, keeping escape sequences that
// appear before the cut. A non-positive width yields "".
func Truncate(s string, width int) string {
	return TruncateWithTail(s, width, "")
}

// TruncateWithTail is Truncate with tail appended when a cut happens. The
// tail counts toward width.
func TruncateWithTail(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, tail)
}

// PadRight appends spaces until s is width cells wide.
func PadRight(s string, width int) string {
	if n := width - VisibleLen(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// PadLeft prepends spaces until s is width cells wide.
func PadLeft(s string, width int) string {
	if n := width - VisibleLen(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// PadCenter centers s in width cells. An odd remainder goes to the right.
func PadCenter(s string, width int) string {
	n := width - VisibleLen(s)
	if n <= 0 {
		return s
	}
	return strings.Repeat(" ", n/2) + s + strings.Repeat(" ", n-n/2)
}

// Fit truncates or right-pads s to exactly width cells.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if VisibleLen(s) > width {
		return Truncate(s, width)
	}
	return PadRight(s, width)
}
