package pinentry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func geometryTestInput(n int, width, spacing float32) LayoutInput {
	return LayoutInput{
		Width:         width,
		Height:        60,
		Padding:       Insets{Start: 10, Top: 4, End: 10, Bottom: 6},
		Slots:         n,
		Spacing:       spacing,
		TextHeight:    16,
		BottomPadding: 8,
	}
}

func TestComputeLayoutSpansAvailableWidth(t *testing.T) {
	for _, spacing := range []float32{-1, 0, 12, 24} {
		for n := 1; n <= 8; n++ {
			in := geometryTestInput(n, 420, spacing)
			l := ComputeLayout(in)
			if len(l.Slots) != n || len(l.Baselines) != n {
				t.Fatalf("n=%d spacing=%v: got %d slots, %d baselines", n, spacing, len(l.Slots), len(l.Baselines))
			}

			var widths, gaps float32
			for i, r := range l.Slots {
				widths += r.Width()
				if i > 0 {
					gap := r.Left - l.Slots[i-1].Right
					if gap < -1e-3 {
						t.Errorf("n=%d spacing=%v: slot %d overlaps previous by %v", n, spacing, i, -gap)
					}
					gaps += gap
				}
			}
			available := in.Width - in.Padding.Start - in.Padding.End
			if d := math.Abs(float64(widths + gaps - available)); d > 0.01 {
				t.Errorf("n=%d spacing=%v: widths+gaps = %v, want %v", n, spacing, widths+gaps, available)
			}
		}
	}
}

func TestComputeLayoutDistributedMode(t *testing.T) {
	l := ComputeLayout(geometryTestInput(4, 300, -1))
	// 280 available across 7 equal parts.
	if l.SlotWidth != 40 {
		t.Fatalf("SlotWidth = %v, want 40", l.SlotWidth)
	}
	want := []float32{10, 90, 170, 250}
	for i, r := range l.Slots {
		if r.Left != want[i] {
			t.Errorf("slot %d left = %v, want %v", i, r.Left, want[i])
		}
	}
}

func TestComputeLayoutLineModeBaselines(t *testing.T) {
	l := ComputeLayout(geometryTestInput(4, 300, 20))
	for i, r := range l.Slots {
		if r.Top != r.Bottom {
			t.Errorf("slot %d: line mode rect has height %v", i, r.Height())
		}
		if r.Bottom != 54 {
			t.Errorf("slot %d bottom = %v, want 54", i, r.Bottom)
		}
		if l.Baselines[i] != 46 {
			t.Errorf("slot %d baseline = %v, want 46", i, l.Baselines[i])
		}
	}
}

func TestComputeLayoutBoxMode(t *testing.T) {
	in := geometryTestInput(4, 300, 20)
	in.HasBackground = true
	l := ComputeLayout(in)
	for i, r := range l.Slots {
		// 16 text height plus twice the 8 bottom padding above the bottom.
		if r.Top != 54-32 {
			t.Errorf("slot %d top = %v, want %v", i, r.Top, 54-32)
		}
	}

	in.Square = true
	l = ComputeLayout(in)
	for i, r := range l.Slots {
		if r.Top != 4 {
			t.Errorf("square slot %d top = %v, want 4", i, r.Top)
		}
		if r.Width() != r.Height() {
			t.Errorf("square slot %d is %vx%v", i, r.Width(), r.Height())
		}
	}
}

func TestComputeLayoutRightToLeftMirrors(t *testing.T) {
	for _, spacing := range []float32{-1, 16} {
		in := geometryTestInput(5, 400, spacing)
		ltr := ComputeLayout(in)
		in.Direction = RightToLeft
		rtl := ComputeLayout(in)

		n := len(ltr.Slots)
		mirrored := make([]Rect, n)
		for i := range ltr.Slots {
			mirrored[i] = ltr.Slots[n-1-i]
		}
		if diff := cmp.Diff(mirrored, rtl.Slots, cmpopts.EquateApprox(0, 1e-3)); diff != "" {
			t.Errorf("spacing=%v: RTL slots are not the mirrored LTR slots (-want +got):\n%s", spacing, diff)
		}
		if diff := cmp.Diff(ltr.Baselines, rtl.Baselines); diff != "" {
			t.Errorf("spacing=%v: baselines differ (-ltr +rtl):\n%s", spacing, diff)
		}
	}
}

func TestComputeLayoutDegenerateInput(t *testing.T) {
	for name, in := range map[string]LayoutInput{
		"no slots":     geometryTestInput(0, 300, 10),
		"zero width":   geometryTestInput(4, 0, 10),
		"padding only": geometryTestInput(4, 20, 10),
	} {
		if l := ComputeLayout(in); !l.Empty() {
			t.Errorf("%s: expected empty layout, got %d slots", name, len(l.Slots))
		}
	}
}

func TestComputeLayoutReturnsFreshSlices(t *testing.T) {
	in := geometryTestInput(4, 300, 10)
	a := ComputeLayout(in)
	b := ComputeLayout(in)
	a.Slots[0].Left = -100
	if b.Slots[0].Left == -100 {
		t.Error("layouts share backing storage")
	}
}
