package scene

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/phanxgames/thicket/animation"
	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/event"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// Transition phases.
const (
	PhaseFadingIn  = "fading_in"
	PhaseFadingOut = "fading_out"
	PhaseDone      = "done"
)

var transitionEvents = fsm.Events{
	{Name: "faded_in", Src: []string{PhaseFadingIn}, Dst: PhaseFadingOut},
	{Name: "faded_out", Src: []string{PhaseFadingOut}, Dst: PhaseDone},
}

// advance fires ev from phase and returns the new phase.
func advance(phase, ev string) string {
	m := fsm.NewFSM(phase, transitionEvents, fsm.Callbacks{})
	if err := m.Event(context.Background(), ev); err != nil {
		return phase
	}
	return m.Current()
}

// TransitionScene covers the scene being left with the intermediary, then
// uncovers the scene being entered.
type TransitionScene struct {
	from  Scene
	to    Scene
	build func() Scene

	phase   string
	fadeIn  animation.Animation
	fadeOut animation.Animation
}

// NewTransitionScene fades from into build's scene through a screen filled
// with the configured intermediary color. build runs once, when the screen
// is fully covered.
func NewTransitionScene(cfg config.Config, from Scene, build func() Scene) TransitionScene {
	fill := draw.Placed{{At: geometry.Origin, Drawing: draw.FillRectangle(cfg.Window.Size(), cfg.Transition.Intermediary, 0)}}
	return NewTransitionSceneWith(from, build, fill, cfg.Transition.Duration)
}

// NewTransitionSceneWith uses intermediary for the cover and d for each
// half of the transition.
func NewTransitionSceneWith(from Scene, build func() Scene, intermediary draw.Sprite, d timing.Millisecond) TransitionScene {
	return TransitionScene{
		from:    from,
		build:   build,
		phase:   PhaseFadingIn,
		fadeIn:  animation.FadeIn(intermediary, d),
		fadeOut: animation.FadeOut(intermediary, d),
	}
}

// Phase returns fading_in, fading_out or done.
func (t TransitionScene) Phase() string { return t.phase }

func (t TransitionScene) Tick(dt timing.Millisecond) Scene {
	switch t.phase {
	case PhaseFadingIn:
		t.fadeIn = t.fadeIn.Tick(dt).(animation.Animation)
		if t.fadeIn.Complete() {
			t.phase = advance(t.phase, "faded_in")
			t.to = t.build()
		}
		return t
	case PhaseFadingOut:
		t.fadeOut = t.fadeOut.Tick(dt).(animation.Animation)
		if t.fadeOut.Complete() {
			t.phase = advance(t.phase, "faded_out")
			return t.to
		}
	}
	return t
}

func (t TransitionScene) Event(event.Event) Scene { return t }

func (t TransitionScene) DrawingOnScreens() []draw.DrawingOnScreen {
	var base, cover []draw.DrawingOnScreen
	if t.phase == PhaseFadingIn {
		base, cover = t.from.DrawingOnScreens(), t.fadeIn.DrawingOnScreens(geometry.Origin)
	} else {
		base, cover = t.to.DrawingOnScreens(), t.fadeOut.DrawingOnScreens(geometry.Origin)
	}
	out := make([]draw.DrawingOnScreen, 0, len(base)+len(cover))
	return append(append(out, base...), cover...)
}
