package components

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BorderStyle selects the box-drawing characters of a frame.
type BorderStyle int

const (
	// BorderNone draws padding only.
	BorderNone BorderStyle = iota
	// BorderRounded uses thin lines with rounded corners.
	BorderRounded
	// BorderHeavy uses thick lines; the demo marks the focused field with it.
	BorderHeavy
	// BorderDouble uses double lines.
	BorderDouble
)

type borderChars struct {
	TopLeft, TopRight, BottomLeft, BottomRight string
	Horizontal, Vertical                       string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {"╭", "╮", "╰", "╯", "─", "│"},
	BorderHeavy:   {"┏", "┓", "┗", "┛", "━", "┃"},
	BorderDouble:  {"╔", "╗", "╚", "╝", "═", "║"},
}

// FrameStyle controls how Frame decorates its content.
type FrameStyle struct {
	Border     BorderStyle
	Title      string
	TitleAlign Align
	Padding    Padding
	Color      color.NRGBA // border and title color; zero leaves them unstyled
}

// Frame draws lines inside a border width cells wide. Lines are cut or
// padded to the interior width; escape sequences inside them are kept. The
// result has len(lines) + padding + 2 rows, or no border rows with
// BorderNone. A width too small for the border yields "".
func Frame(lines []string, width int, st FrameStyle) string {
	chars, bordered := borderSets[st.Border]
	edge := 0
	if bordered {
		edge = 1
	}
	inner := width - 2*edge - st.Padding.Horizontal()
	if width < 2*edge || inner < 0 {
		return ""
	}

	paint := func(s string) string { return s }
	if st.Color != (color.NRGBA{}) {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(Hex(st.Color)))
		paint = func(s string) string { return style.Render(s) }
	}

	left := strings.Repeat(" ", st.Padding.Left)
	right := strings.Repeat(" ", st.Padding.Right)
	row := func(content string) string {
		body := left + Fit(content, inner) + right
		if !bordered {
			return body
		}
		return paint(chars.Vertical) + body + paint(chars.Vertical)
	}

	var rows []string
	if bordered {
		rows = append(rows, paint(chars.TopLeft)+titleBar(st.Title, st.TitleAlign, width-2, chars.Horizontal, paint)+paint(chars.TopRight))
	}
	for i := 0; i < st.Padding.Top; i++ {
		rows = append(rows, row(""))
	}
	for _, l := range lines {
		rows = append(rows, row(l))
	}
	for i := 0; i < st.Padding.Bottom; i++ {
		rows = append(rows, row(""))
	}
	if bordered {
		rows = append(rows, paint(chars.BottomLeft+strings.Repeat(chars.Horizontal, width-2)+chars.BottomRight))
	}
	return strings.Join(rows, "\n")
}

// titleBar fills n cells with h, embedding " title " at align. Titles that
// do not fit are cut with an ellipsis; with no room at all the bar is
// plain.
func titleBar(title string, align Align, n int, h string, paint func(string) string) string {
	room := n - 4
	if title == "" || room <= 0 {
		return paint(strings.Repeat(h, max(n, 0)))
	}
	if VisibleLen(title) > room {
		title = TruncateWithTail(title, room, "…")
	}
	rest := n - VisibleLen(title) - 2

	var l int
	switch align {
	case AlignCenter:
		l = rest / 2
	case AlignRight:
		l = rest - 1
	default:
		l = 1
	}
	return paint(strings.Repeat(h, l)) + " " + paint(title) + " " + paint(strings.Repeat(h, rest-l))
}
