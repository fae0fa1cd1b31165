package animation

import (
	"math"

	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// Typewriter reveals a text one unit at a time, one unit per delay.
type Typewriter struct {
	text  draw.Slicer
	delay timing.Millisecond
	index int
	timer timing.Timer
}

// NewTypewriter starts with the first unit of text visible. A delay of zero
// or less shows everything at once.
func NewTypewriter(text draw.Slicer, delay timing.Millisecond) Typewriter {
	w := Typewriter{text: text, delay: delay, timer: timing.NewTimer(delay)}
	if delay <= 0 {
		w.index = text.Len()
	}
	return w
}

// Text returns the full text being typed.
func (w Typewriter) Text() draw.Slicer { return w.text }

// Visible returns the units shown so far.
func (w Typewriter) Visible() int { return min(w.index+1, w.text.Len()) }

func (w Typewriter) Complete() bool { return w.index+1 >= w.text.Len() }

// Finish shows the whole text.
func (w Typewriter) Finish() Typewriter {
	w.index = w.text.Len()
	return w
}

func (w Typewriter) Tick(dt timing.Millisecond) draw.Sprite {
	if w.Complete() {
		return w
	}
	w.timer = w.timer.Advance(dt)
	steps := int(math.Floor(float64(w.timer.Elapsed / w.delay)))
	w.index += steps
	w.timer = w.timer.Modulo()
	return w
}

func (w Typewriter) current() draw.Sprite { return w.text.Slice(w.Visible()) }

// Size is the size of the full text so layouts built around a typing message
// do not grow while it types.
func (w Typewriter) Size() geometry.Size          { return w.text.Size() }
func (w Typewriter) TopLeft() geometry.Coordinate { return w.text.TopLeft() }

func (w Typewriter) DrawingOnScreens(origin geometry.Coordinate) []draw.DrawingOnScreen {
	return w.current().DrawingOnScreens(origin)
}
