package components

import (
	"fmt"
	"time"
)

// RNG is the random source threaded through each tick.
// *math/rand.Rand satisfies it.
type RNG interface {
	Float32() float32
	Intn(n int) int
}

// Timer is a one-shot countdown. Elapsed never exceeds Duration and never goes negative.
type Timer struct {
	Duration time.Duration
	Elapsed  time.Duration
	done     bool
}

// NewTimer returns an armed timer.
func NewTimer(d time.Duration) Timer {
	return Timer{Duration: max(d, 0)}
}

// Tick advances the timer by dt and reports whether it finished on this tick.
// A timer that was already finished does not report again until it is reset.
// A zero-duration timer finishes on its first tick.
func (t *Timer) Tick(dt time.Duration) bool {
	if t.done {
		return false
	}
	if dt > 0 {
		// Saturate instead of overflowing on huge deltas.
		if remaining := t.Duration - t.Elapsed; dt > remaining {
			dt = remaining
		}
		t.Elapsed += dt
	}
	t.done = t.Elapsed >= t.Duration
	return t.done
}

// Finished reports whether the countdown has run out.
func (t *Timer) Finished() bool {
	return t.done
}

// Reset re-arms the timer with a new duration.
func (t *Timer) Reset(d time.Duration) {
	t.Duration = max(d, 0)
	t.Elapsed = 0
	t.done = false
}

// String renders the timer as elapsed/duration.
func (t Timer) String() string {
	return fmt.Sprintf("%s/%s", t.Elapsed, t.Duration)
}

// Jittered returns base plus a uniform random offset in [0, jitter).
func Jittered(base, jitter time.Duration, rng RNG) time.Duration {
	base = max(base, 0)
	if jitter <= 0 || rng == nil {
		return base
	}
	return base + time.Duration(rng.Float32()*float32(jitter))
}

// JitteredAmount returns base plus a uniform random offset in [0, jitter).
func JitteredAmount(base, jitter float32, rng RNG) float32 {
	if jitter <= 0 || rng == nil {
		return base
	}
	return base + rng.Float32()*jitter
}
