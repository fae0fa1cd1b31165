// Package timing provides the millisecond clocks shared by every tickable
// value in thicket: animations, characters, dialogue, and scene transitions.
package timing

import "math"

// Millisecond is the unit of every duration and tick delta in thicket.
type Millisecond float64

// FromTPS returns the frame delta for a fixed ticks-per-second rate.
func FromTPS(tps int) Millisecond {
	if tps <= 0 {
		return 0
	}
	return Millisecond(1000 / float64(tps))
}

// Clock is the common shape of Timer and Countdown. Timed animations hold a
// Clock so that reversing them only swaps the clock implementation.
type Clock interface {
	Tick(dt Millisecond) Clock
	Complete() bool
	Started() bool
	CompletedPercentage() float64
	RemainingPercentage() float64
	Reset() Clock
	Reverse() Clock
}

// Timer counts elapsed time up towards Duration. Values are immutable; every
// method returns a new Timer.
type Timer struct {
	Duration Millisecond
	Elapsed  Millisecond
}

// NewTimer returns a Timer with no elapsed time.
func NewTimer(duration Millisecond) Timer {
	return Timer{Duration: duration}
}

// Tick advances the timer by dt.
func (t Timer) Tick(dt Millisecond) Clock { return t.Advance(dt) }

// Advance is Tick with a concrete return type.
func (t Timer) Advance(dt Millisecond) Timer {
	t.Elapsed += dt
	return t
}

// Complete reports whether Elapsed has reached Duration.
func (t Timer) Complete() bool { return t.Elapsed >= t.Duration }

// Started reports whether any time has elapsed.
func (t Timer) Started() bool { return t.Elapsed > 0 }

// Remaining returns the time left before completion. It is negative once the
// timer overshoots.
func (t Timer) Remaining() Millisecond { return t.Duration - t.Elapsed }

// Overshoot returns how far Elapsed is past Duration, or 0.
func (t Timer) Overshoot() Millisecond {
	return max(t.Elapsed-t.Duration, 0)
}

// CompletedPercentage returns Elapsed/Duration clamped to [0, 1]. A timer
// with no duration is always fully complete.
func (t Timer) CompletedPercentage() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return clamp01(float64(t.Elapsed / t.Duration))
}

// RemainingPercentage returns 1 - CompletedPercentage.
func (t Timer) RemainingPercentage() float64 {
	return 1 - t.CompletedPercentage()
}

// Reset returns the timer with no elapsed time.
func (t Timer) Reset() Clock { return Timer{Duration: t.Duration} }

// Modulo folds Elapsed back into [0, Duration).
func (t Timer) Modulo() Timer {
	if t.Duration <= 0 {
		return Timer{Duration: t.Duration}
	}
	return Timer{Duration: t.Duration, Elapsed: Millisecond(math.Mod(float64(t.Elapsed), float64(t.Duration)))}
}

// Reverse returns a Countdown over the same duration.
func (t Timer) Reverse() Clock { return NewCountdown(t.Duration) }

// Countdown counts from Duration down to zero. Its percentages mirror a
// Timer's so reversed animations play backwards.
type Countdown struct {
	Duration Millisecond
	Left     Millisecond
}

// NewCountdown returns a Countdown with its full duration left.
func NewCountdown(duration Millisecond) Countdown {
	return Countdown{Duration: duration, Left: duration}
}

// Tick consumes dt, never going below zero.
func (c Countdown) Tick(dt Millisecond) Clock {
	c.Left = max(c.Left-dt, 0)
	return c
}

// Complete reports whether no time is left.
func (c Countdown) Complete() bool { return c.Left <= 0 }

// Started reports whether any time has been consumed.
func (c Countdown) Started() bool { return c.Left < c.Duration }

// CompletedPercentage goes from 1 down to 0 as the countdown runs.
func (c Countdown) CompletedPercentage() float64 {
	if c.Duration <= 0 {
		return 0
	}
	return clamp01(float64(c.Left / c.Duration))
}

// RemainingPercentage returns 1 - CompletedPercentage.
func (c Countdown) RemainingPercentage() float64 {
	return 1 - c.CompletedPercentage()
}

// Reset refills the countdown.
func (c Countdown) Reset() Clock { return NewCountdown(c.Duration) }

// Reverse returns a forward Timer over the same duration.
func (c Countdown) Reverse() Clock { return NewTimer(c.Duration) }

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
