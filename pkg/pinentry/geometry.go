package pinentry

// Rect is an axis-aligned rectangle in px, y growing downwards.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// Insets is the padding around the slot area. Start and End follow the
// layout direction: Start is the left edge for LeftToRight and the right
// edge for RightToLeft.
type Insets struct {
	Start, Top, End, Bottom float32
}

// LayoutInput is everything slot geometry depends on.
type LayoutInput struct {
	Width, Height float32
	Padding       Insets

	Slots     int
	Spacing   float32 // negative distributes slots evenly
	Direction Direction

	HasBackground bool
	Square        bool

	TextHeight    float32
	BottomPadding float32
}

// Layout is the computed geometry of every slot. Slots and Baselines are
// indexed by character position, not by screen order.
type Layout struct {
	Slots     []Rect
	Baselines []float32
	SlotWidth float32
}

// Empty reports whether no slots have been laid out yet.
func (l Layout) Empty() bool {
	return len(l.Slots) == 0
}

// ComputeLayout positions in.Slots slots across the content area. The
// result never shares memory with a previous Layout.
func ComputeLayout(in LayoutInput) Layout {
	n := in.Slots
	available := in.Width - in.Padding.Start - in.Padding.End
	if n <= 0 || available <= 0 || in.Height <= 0 {
		return Layout{}
	}

	var slotWidth, step float32
	if in.Spacing < 0 {
		slotWidth = available / float32(2*n-1)
		step = slotWidth * 2
	} else {
		slotWidth = (available - in.Spacing*float32(n-1)) / float32(n)
		step = slotWidth + in.Spacing
	}

	x := in.Padding.Start
	if in.Direction == RightToLeft {
		x = in.Width - in.Padding.Start - slotWidth
		step = -step
	}
	bottom := in.Height - in.Padding.Bottom

	l := Layout{
		Slots:     make([]Rect, n),
		Baselines: make([]float32, n),
		SlotWidth: slotWidth,
	}
	for i := 0; i < n; i++ {
		r := Rect{Left: x, Top: bottom, Right: x + slotWidth, Bottom: bottom}
		if in.HasBackground {
			if in.Square {
				r.Top = in.Padding.Top
				r.Right = x + r.Height()
			} else {
				r.Top -= in.TextHeight + in.BottomPadding*2
			}
		}
		l.Slots[i] = r
		l.Baselines[i] = r.Bottom - in.BottomPadding
		x += step
	}
	return l
}
