package animation

import (
	"math"

	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// CyclicAnimation loops through drawings, each shown for its own duration.
// It backs animated tiles and character walk cycles, and never completes.
type CyclicAnimation struct {
	frames    []draw.Drawing
	durations []timing.Millisecond
	index     int
	timer     timing.Timer
}

// NewCyclicAnimation pairs frames with durations. Both must have the same
// non-zero length.
func NewCyclicAnimation(frames []draw.Drawing, durations []timing.Millisecond) CyclicAnimation {
	if len(frames) == 0 || len(frames) != len(durations) {
		panic("thicket: cyclic animation needs one duration per frame")
	}
	return CyclicAnimation{frames: frames, durations: durations, timer: timing.NewTimer(durations[0])}
}

// UniformCyclicAnimation shows every frame for the same duration.
func UniformCyclicAnimation(frames []draw.Drawing, each timing.Millisecond) CyclicAnimation {
	durations := make([]timing.Millisecond, len(frames))
	for i := range durations {
		durations[i] = each
	}
	return NewCyclicAnimation(frames, durations)
}

func (c CyclicAnimation) total() timing.Millisecond {
	var t timing.Millisecond
	for _, d := range c.durations {
		t += d
	}
	return t
}

// Index returns the frame being shown.
func (c CyclicAnimation) Index() int { return c.index }

// Frame returns the drawing being shown.
func (c CyclicAnimation) Frame() draw.Drawing { return c.frames[c.index] }

// Reset returns the animation on its first frame.
func (c CyclicAnimation) Reset() CyclicAnimation {
	c.index = 0
	c.timer = timing.NewTimer(c.durations[0])
	return c
}

// Tick advances the timer. Time past the end of a frame carries into the
// following frames.
func (c CyclicAnimation) Tick(dt timing.Millisecond) draw.Sprite { return c.Advance(dt) }

// Advance is Tick with a concrete return type.
func (c CyclicAnimation) Advance(dt timing.Millisecond) CyclicAnimation {
	total := c.total()
	if total <= 0 {
		return c
	}
	c.timer = c.timer.Advance(dt)
	if !c.timer.Complete() {
		return c
	}
	over := timing.Millisecond(math.Mod(float64(c.timer.Overshoot()), float64(total)))
	for {
		c.index = (c.index + 1) % len(c.frames)
		if over < c.durations[c.index] {
			c.timer = timing.Timer{Duration: c.durations[c.index], Elapsed: over}
			return c
		}
		over -= c.durations[c.index]
	}
}

func (c CyclicAnimation) Complete() bool { return false }

func (c CyclicAnimation) Size() geometry.Size          { return c.Frame().Size() }
func (c CyclicAnimation) TopLeft() geometry.Coordinate { return geometry.Origin }

func (c CyclicAnimation) DrawingOnScreens(origin geometry.Coordinate) []draw.DrawingOnScreen {
	return c.Frame().DrawingOnScreens(origin)
}
