package pinentry

import (
	"sort"
	"time"
)

// Easing maps time progress in [0, 1] to value progress.
type Easing func(t float64) float64

// Linear is constant-speed easing.
var Linear Easing = func(t float64) float64 { return t }

// Overshoot returns an easing that runs past the target and settles back.
// Tension 2 matches the platform default.
func Overshoot(tension float64) Easing {
	return func(t float64) float64 {
		t--
		return t*t*((tension+1)*t+tension) + 1
	}
}

// Track interpolates one value between From and To. Its value is a pure
// function of the time passed in, never of how often it is sampled.
type Track struct {
	Start    time.Time
	Duration time.Duration
	Ease     Easing
	From, To float32
}

// Fraction returns the clamped time progress at now.
func (t Track) Fraction(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	f := float64(now.Sub(t.Start)) / float64(t.Duration)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// Value returns the eased value at now.
func (t Track) Value(now time.Time) float32 {
	ease := t.Ease
	if ease == nil {
		ease = Linear
	}
	p := ease(t.Fraction(now))
	return t.From + (t.To-t.From)*float32(p)
}

// Done reports whether the track reached its end at now.
func (t Track) Done(now time.Time) bool {
	return t.Fraction(now) >= 1
}

// SlotFrame is the animated glyph state of one slot.
type SlotFrame struct {
	Size   float32 // px
	Offset float32 // px added to the baseline
	Alpha  uint8
}

// entry is one per-slot animation. Missing tracks leave their property at
// the resting value.
type entry struct {
	slot   int
	size   *Track
	offset *Track
	alpha  *Track
	rest   SlotFrame
	frame  SlotFrame
	onDone func()
}

func (e *entry) sample(now time.Time) (done bool) {
	e.frame = e.rest
	done = true
	if e.size != nil {
		e.frame.Size = e.size.Value(now)
		done = done && e.size.Done(now)
	}
	if e.offset != nil {
		e.frame.Offset = e.offset.Value(now)
		done = done && e.offset.Done(now)
	}
	if e.alpha != nil {
		a := e.alpha.Value(now)
		switch {
		case a < 0:
			a = 0
		case a > 255:
			a = 255
		}
		e.frame.Alpha = uint8(a + 0.5)
		done = done && e.alpha.Done(now)
	}
	return done
}

// Animator holds the live per-slot entry animations. Entries for different
// slots run independently; starting a slot that is already animating
// replaces its entry.
type Animator struct {
	entries map[int]*entry
}

// NewAnimator returns an idle Animator.
func NewAnimator() *Animator {
	return &Animator{entries: make(map[int]*entry)}
}

// PopIn animates slot's glyph size from 1 px to textSize.
func (a *Animator) PopIn(slot int, now time.Time, d time.Duration, textSize float32, onDone func()) {
	e := &entry{
		slot:   slot,
		size:   &Track{Start: now, Duration: d, Ease: Overshoot(2), From: 1, To: textSize},
		rest:   SlotFrame{Size: textSize, Alpha: 255},
		onDone: onDone,
	}
	a.start(e, now)
}

// BottomUp slides slot's glyph from one text height above the baseline
// down to it while fading it in.
func (a *Animator) BottomUp(slot int, now time.Time, d time.Duration, textSize float32, onDone func()) {
	e := &entry{
		slot:   slot,
		offset: &Track{Start: now, Duration: d, Ease: Overshoot(2), From: -textSize, To: 0},
		alpha:  &Track{Start: now, Duration: d, Ease: Linear, From: 0, To: 255},
		rest:   SlotFrame{Size: textSize, Alpha: 255},
		onDone: onDone,
	}
	a.start(e, now)
}

func (a *Animator) start(e *entry, now time.Time) {
	e.sample(now)
	a.entries[e.slot] = e
}

// Advance samples every entry at now and retires the finished ones, firing
// their completion callbacks in slot order after removal. It reports
// whether any entry was sampled.
func (a *Animator) Advance(now time.Time) bool {
	if len(a.entries) == 0 {
		return false
	}
	var finished []*entry
	for _, e := range a.entries {
		if e.sample(now) {
			finished = append(finished, e)
		}
	}
	sort.Slice(finished, func(i, j int) bool { return finished[i].slot < finished[j].slot })
	for _, e := range finished {
		delete(a.entries, e.slot)
	}
	for _, e := range finished {
		if e.onDone != nil {
			e.onDone()
		}
	}
	return true
}

// Frame returns the last sampled state of slot, if it is animating.
func (a *Animator) Frame(slot int) (SlotFrame, bool) {
	e, ok := a.entries[slot]
	if !ok {
		return SlotFrame{}, false
	}
	return e.frame, true
}

// Animating reports whether any slot is animating.
func (a *Animator) Animating() bool {
	return len(a.entries) > 0
}

// Drop removes slot's entry without firing its callback, which it returns
// so the caller can decide whether the completion still stands.
func (a *Animator) Drop(slot int) (onDone func()) {
	e, ok := a.entries[slot]
	if !ok {
		return nil
	}
	delete(a.entries, slot)
	return e.onDone
}

// DropFrom removes the entries of slot n and above without firing their
// callbacks.
func (a *Animator) DropFrom(n int) {
	for slot := range a.entries {
		if slot >= n {
			delete(a.entries, slot)
		}
	}
}

// Clear drops every entry without firing callbacks.
func (a *Animator) Clear() {
	for k := range a.entries {
		delete(a.entries, k)
	}
}
