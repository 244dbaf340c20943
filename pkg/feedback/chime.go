// Package feedback plays short tones when an entered code is accepted or
// rejected.
package feedback

import (
	"log/slog"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the rate the speaker is opened at.
const SampleRate = beep.SampleRate(44100)

// Tone lengths.
const (
	NoteDuration = 70 * time.Millisecond
	GapDuration  = 20 * time.Millisecond
)

// Chime plays a rising two-note cue on Accept and a low buzz on Reject.
type Chime struct {
	rate   beep.SampleRate
	volume float64
	play   func(beep.Streamer)
	logger *slog.Logger
}

// Option configures a Chime.
type Option func(*Chime)

// WithLogger sets the logger tone errors are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Chime) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithVolume scales the tones; 1 is full scale, 0 is silent.
func WithVolume(v float64) Option {
	return func(c *Chime) { c.volume = v }
}

// WithPlayer replaces the speaker, mostly for tests.
func WithPlayer(play func(beep.Streamer)) Option {
	return func(c *Chime) { c.play = play }
}

// NewChime opens the speaker unless a player was given.
func NewChime(opts ...Option) (*Chime, error) {
	c := &Chime{rate: SampleRate, volume: 0.5, logger: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	if c.play == nil {
		if err := speaker.Init(c.rate, c.rate.N(time.Second/10)); err != nil {
			return nil, err
		}
		c.play = func(s beep.Streamer) { speaker.Play(s) }
	}
	return c, nil
}

// Accept plays 660 Hz then 880 Hz.
func (c *Chime) Accept() {
	c.playNotes(660, 880)
}

// Reject plays 220 Hz twice.
func (c *Chime) Reject() {
	c.playNotes(220, 220)
}

func (c *Chime) playNotes(freqs ...float64) {
	s, err := Notes(c.rate, c.volume, freqs...)
	if err != nil {
		c.logger.Warn("chime failed", "error", err)
		return
	}
	c.play(s)
}

// Notes returns the sine tones freqs, each NoteDuration long and separated
// by GapDuration of silence, at volume.
func Notes(rate beep.SampleRate, volume float64, freqs ...float64) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, 2*len(freqs))
	for i, f := range freqs {
		if i > 0 {
			parts = append(parts, beep.Silence(rate.N(GapDuration)))
		}
		tone, err := generators.SineTone(rate, f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(rate.N(NoteDuration), tone))
	}
	return scale(beep.Seq(parts...), volume), nil
}

// scale applies a linear volume; math.Log2(0) is -Inf, so 0 is silence.
func scale(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
