// Package animation provides time-driven sprites: frame sequences, cycles,
// parallel groups, timed effects, fades, cyclic frame strips and the
// typewriter used by dialogue.
//
// Every animation is a draw.Sprite. Ticking returns a new value; once an
// animation is complete, Tick returns it unchanged. Cycles are the exception
// and restart within the tick that would have completed them.
package animation

import (
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// Kind tags the behavior of an Animation.
type Kind uint8

const (
	KindSequence Kind = iota
	KindCycle
	KindGroup
	KindTimed
	KindFade
)

var kindNames = [...]string{"sequence", "cycle", "group", "timed", "fade"}

func (k Kind) String() string { return kindNames[k] }

// Animation is the single concrete type behind every composite animation.
// Which fields are meaningful depends on Kind.
type Animation struct {
	kind Kind

	// sequence and cycle
	frames  []draw.Sprite
	initial []draw.Sprite
	index   int

	// group and timed
	items []draw.ShiftedSprite

	// timed and fade
	clock  timing.Clock
	effect Effect
	ease   ease.TweenFunc

	// fade
	resource draw.Sprite
	fadeIn   bool
}

// Sequence plays frames one after another. It completes when its last frame
// does.
func Sequence(frames ...draw.Sprite) Animation {
	if len(frames) == 0 {
		panic("thicket: sequence needs at least one frame")
	}
	return Animation{kind: KindSequence, frames: frames}
}

// Cycle is a sequence that starts over from its original frames instead of
// completing.
func Cycle(frames ...draw.Sprite) Animation {
	a := Sequence(frames...)
	a.kind = KindCycle
	a.initial = frames
	return a
}

// Group plays sprites in parallel, each placed relative to the group origin.
func Group(items ...any) Animation {
	return Animation{kind: KindGroup, items: draw.Shifted(items...)}
}

// Timed plays items in parallel for duration and applies effect to their
// drawings according to progress.
func Timed(duration timing.Millisecond, effect Effect, items ...any) Animation {
	return Animation{
		kind:   KindTimed,
		items:  draw.Shifted(items...),
		clock:  timing.NewTimer(duration),
		effect: effect,
	}
}

// Wait is a timed animation with nothing to draw.
func Wait(duration timing.Millisecond) Animation {
	return Timed(duration, nil)
}

// FadeIn reveals resource over duration.
func FadeIn(resource draw.Sprite, duration timing.Millisecond) Animation {
	return Animation{kind: KindFade, resource: resource, clock: timing.NewTimer(duration), fadeIn: true}
}

// FadeOut hides resource over duration.
func FadeOut(resource draw.Sprite, duration timing.Millisecond) Animation {
	return Animation{kind: KindFade, resource: resource, clock: timing.NewTimer(duration)}
}

// Kind returns the animation's behavior tag.
func (a Animation) Kind() Kind { return a.kind }

// WithEase returns a timed or fade animation whose progress follows f.
func (a Animation) WithEase(f ease.TweenFunc) Animation {
	a.ease = f
	return a
}

// Resource returns what a fade is fading.
func (a Animation) Resource() draw.Sprite { return a.resource }

// Clock returns the clock driving a timed or fade animation.
func (a Animation) Clock() timing.Clock { return a.clock }

// progress returns eased completed and remaining fractions of the clock.
func (a Animation) progress() Progress {
	p := a.clock.CompletedPercentage()
	f := a.ease
	if f == nil {
		f = ease.Linear
	}
	p = float64(f(float32(p), 0, 1, 1))
	return Progress{Completed: p, Remaining: 1 - p}
}

func (a Animation) Complete() bool {
	switch a.kind {
	case KindSequence:
		last := len(a.frames) - 1
		return a.index == last && a.frames[last].Complete()
	case KindCycle:
		return false
	case KindGroup:
		return draw.AllComplete(a.items)
	case KindTimed:
		return draw.AllComplete(a.items) && a.clock.Complete()
	case KindFade:
		return a.clock.Complete()
	}
	return true
}

func (a Animation) Tick(dt timing.Millisecond) draw.Sprite {
	if a.Complete() {
		return a
	}
	switch a.kind {
	case KindSequence:
		return a.tickSequence(dt)
	case KindCycle:
		next := a.tickSequence(dt)
		last := len(next.frames) - 1
		if next.index == last && next.frames[last].Complete() {
			next.frames = a.initial
			next.index = 0
		}
		return next
	case KindGroup:
		a.items = draw.TickAll(a.items, dt)
	case KindTimed:
		a.clock = a.clock.Tick(dt)
		a.items = draw.TickAll(a.items, dt)
	case KindFade:
		a.clock = a.clock.Tick(dt)
		a.resource = a.resource.Tick(dt)
	}
	return a
}

func (a Animation) tickSequence(dt timing.Millisecond) Animation {
	ticked := a.frames[a.index].Tick(dt)
	if ticked.Complete() && a.index+1 < len(a.frames) {
		a.index++
		return a
	}
	frames := make([]draw.Sprite, len(a.frames))
	copy(frames, a.frames)
	frames[a.index] = ticked
	a.frames = frames
	return a
}

// Reverse plays a timed animation backwards, including any timed animations
// nested in it. Other kinds are returned unchanged.
func (a Animation) Reverse() Animation {
	if a.kind != KindTimed {
		return a
	}
	a.clock = a.clock.Reverse()
	items := make([]draw.ShiftedSprite, len(a.items))
	for i, it := range a.items {
		if nested, ok := it.Sprite.(Animation); ok {
			it.Sprite = nested.Reverse()
		}
		items[i] = it
	}
	a.items = items
	return a
}

// Reset restarts a timed or fade animation's clock.
func (a Animation) Reset() Animation {
	if a.clock != nil {
		a.clock = a.clock.Reset()
	}
	return a
}

// Current returns the frame a sequence or cycle is showing.
func (a Animation) Current() draw.Sprite {
	if a.kind == KindSequence || a.kind == KindCycle {
		return a.frames[a.index]
	}
	return a
}

// layout returns the drawings before any effect or fade is applied.
func (a Animation) layout(origin geometry.Coordinate) []draw.DrawingOnScreen {
	switch a.kind {
	case KindSequence, KindCycle:
		return a.frames[a.index].DrawingOnScreens(origin)
	case KindFade:
		return a.resource.DrawingOnScreens(origin)
	}
	return draw.ResolveAll(a.items, origin)
}

// Size and TopLeft describe the layout before effects, so a moving or
// fading sprite keeps a stable box.
func (a Animation) Size() geometry.Size {
	switch a.kind {
	case KindSequence, KindCycle:
		return a.frames[a.index].Size()
	case KindFade:
		return a.resource.Size()
	}
	return draw.Bounds(a.layout(geometry.Origin)).Extent
}

func (a Animation) TopLeft() geometry.Coordinate {
	switch a.kind {
	case KindSequence, KindCycle:
		return a.frames[a.index].TopLeft()
	case KindFade:
		return a.resource.TopLeft()
	}
	return draw.Bounds(a.layout(geometry.Origin)).TopLeftPoint
}

func (a Animation) DrawingOnScreens(origin geometry.Coordinate) []draw.DrawingOnScreen {
	ds := a.layout(origin)
	switch a.kind {
	case KindTimed:
		if a.effect != nil {
			return a.effect(ds, origin, a.progress())
		}
	case KindFade:
		return a.fade(ds)
	}
	return ds
}

func (a Animation) fade(ds []draw.DrawingOnScreen) []draw.DrawingOnScreen {
	started, done := a.clock.Started(), a.clock.Complete()
	switch {
	case done:
		if a.fadeIn {
			return ds
		}
		return nil
	case !started:
		if a.fadeIn {
			return nil
		}
		return ds
	}
	p := a.progress()
	visible := p.Completed
	if !a.fadeIn {
		visible = p.Remaining
	}
	out := make([]draw.DrawingOnScreen, len(ds))
	for i, d := range ds {
		out[i] = d.WithAlpha(draw.ScaleAlpha(d.Drawing.Alpha(), visible))
	}
	return out
}
