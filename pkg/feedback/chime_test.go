package feedback

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
)

// drain streams s to the end and returns the sample count and peak level.
func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		got, ok := s.Stream(buf)
		for _, smp := range buf[:got] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		n += got
		if !ok {
			return n, peak
		}
	}
}

func TestNotesLength(t *testing.T) {
	s, err := Notes(SampleRate, 1, 660, 880)
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	n, peak := drain(s)
	want := 2*SampleRate.N(NoteDuration) + SampleRate.N(GapDuration)
	if n != want {
		t.Errorf("streamed %d samples, want %d", n, want)
	}
	if peak < 0.9 || peak > 1.0001 {
		t.Errorf("peak = %v, want full scale", peak)
	}
}

func TestNotesVolume(t *testing.T) {
	s, _ := Notes(SampleRate, 0.25, 440)
	if _, peak := drain(s); peak > 0.26 || peak < 0.2 {
		t.Errorf("peak at volume 0.25 = %v", peak)
	}
	silent, _ := Notes(SampleRate, 0, 440)
	if _, peak := drain(silent); peak != 0 {
		t.Errorf("silent peak = %v", peak)
	}
}

func TestNotesRejectsBadFrequency(t *testing.T) {
	if _, err := Notes(SampleRate, 1, float64(SampleRate)); err == nil {
		t.Error("expected an error for a frequency above Nyquist")
	}
}

func TestChimeUsesPlayer(t *testing.T) {
	var played []int
	c, err := NewChime(WithVolume(1), WithPlayer(func(s beep.Streamer) {
		n, _ := drain(s)
		played = append(played, n)
	}))
	if err != nil {
		t.Fatalf("NewChime: %v", err)
	}
	c.Accept()
	c.Reject()
	if len(played) != 2 || played[0] != played[1] || played[0] == 0 {
		t.Errorf("played = %v, want two equally long cues", played)
	}
}
