package scene

import (
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/thicket/animation"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/event"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// RpgEventScene is the part every event step scene shares: the script to
// resume and the scene the event runs in.
type RpgEventScene struct {
	Generator Generator
	Scene     EventfulScene
}

// tickScene keeps the world moving behind the event.
func (r RpgEventScene) tickScene(dt timing.Millisecond) RpgEventScene {
	r.Scene = r.Scene.TickWithoutEvent(dt)
	return r
}

// Complete resumes the script on the next tick with result.
func (r RpgEventScene) Complete(result any, bg *BackgroundEvent) EventfulScene {
	return Complete(r.Scene, r.Generator, result, bg)
}

func (r RpgEventScene) drawings(addOns []draw.DrawingOnScreen) []draw.DrawingOnScreen {
	base := r.Scene.DrawingOnScreens()
	out := make([]draw.DrawingOnScreen, 0, len(base)+len(addOns))
	return append(append(out, base...), addOns...)
}

// BackgroundEvent is a fade that outlives the step that started it, such as
// cutscene borders. Fade-ins stay until removed; fade-outs drop out when
// done.
type BackgroundEvent struct {
	Key  string
	fade animation.Animation
	out  bool
}

func (b BackgroundEvent) Tick(dt timing.Millisecond) BackgroundEvent {
	b.fade = b.fade.Tick(dt).(animation.Animation)
	return b
}

func (b BackgroundEvent) Complete() bool { return b.out && b.fade.Complete() }

func (b BackgroundEvent) DrawingOnScreens() []draw.DrawingOnScreen {
	return b.fade.DrawingOnScreens(geometry.Origin)
}

func fadeDuration(s EventfulScene, d timing.Millisecond) timing.Millisecond {
	if d > 0 {
		return d
	}
	return s.Config().Timing.FadeDuration
}

// FadeInScene fades a sprite in over the scene, in screen coordinates.
type FadeInScene struct {
	RpgEventScene
	key  string
	fade animation.Animation
	wait bool
}

// NewFadeInScene fades sprite in over d, or the configured fade duration
// when d is zero.
func NewFadeInScene(gen Generator, s EventfulScene, key string, sprite draw.Sprite, wait bool, d timing.Millisecond) FadeInScene {
	return FadeInScene{
		RpgEventScene: RpgEventScene{gen, s},
		key:           key,
		fade:          animation.FadeIn(sprite, fadeDuration(s, d)),
		wait:          wait,
	}
}

func (f FadeInScene) Tick(dt timing.Millisecond) Scene {
	f.RpgEventScene = f.tickScene(dt)
	f.fade = f.fade.Tick(dt).(animation.Animation)
	if f.wait && !f.fade.Complete() {
		return f
	}
	bg := BackgroundEvent{Key: f.key, fade: f.fade}
	return f.Complete(nil, &bg)
}

func (f FadeInScene) Event(event.Event) Scene { return f }

func (f FadeInScene) DrawingOnScreens() []draw.DrawingOnScreen {
	return f.drawings(f.fade.DrawingOnScreens(geometry.Origin))
}

// FadeOutScene fades out the background event kept under a key.
type FadeOutScene struct {
	RpgEventScene
	fade animation.Animation
}

// NewFadeOutScene removes the background event under key and fades its
// drawings out. Without wait the fade carries on as a background event and
// the script resumes at once. An unknown key completes the step.
func NewFadeOutScene(gen Generator, s EventfulScene, key string, wait bool, d timing.Millisecond) Scene {
	ev := s.Eventful()
	bg, ok := ev.Background(key)
	if !ok {
		ev.Log.Warningf("fade out: nothing faded in under %q", key)
		return Complete(s, gen, nil, nil)
	}
	s = s.WithEventful(ev.WithoutBackground(key))
	fade := animation.FadeOut(draw.Placed(bg.DrawingOnScreens()), fadeDuration(s, d))
	if !wait {
		out := BackgroundEvent{Key: key, fade: fade, out: true}
		return Complete(s, gen, nil, &out)
	}
	return FadeOutScene{RpgEventScene: RpgEventScene{gen, s}, fade: fade}
}

func (f FadeOutScene) Tick(dt timing.Millisecond) Scene {
	f.RpgEventScene = f.tickScene(dt)
	f.fade = f.fade.Tick(dt).(animation.Animation)
	if f.fade.Complete() {
		return f.Complete(nil, nil)
	}
	return f
}

func (f FadeOutScene) Event(event.Event) Scene { return f }

func (f FadeOutScene) DrawingOnScreens() []draw.DrawingOnScreen {
	return f.drawings(f.fade.DrawingOnScreens(geometry.Origin))
}

// WaitScene lets the world run for a while before the script resumes.
type WaitScene struct {
	RpgEventScene
	timer timing.Timer
}

func NewWaitScene(gen Generator, s EventfulScene, d timing.Millisecond) WaitScene {
	return WaitScene{RpgEventScene: RpgEventScene{gen, s}, timer: timing.NewTimer(d)}
}

func (w WaitScene) Tick(dt timing.Millisecond) Scene {
	w.RpgEventScene = w.tickScene(dt)
	if w.timer = w.timer.Advance(dt); w.timer.Complete() {
		return w.Complete(nil, nil)
	}
	return w
}

func (w WaitScene) Event(event.Event) Scene { return w }

func (w WaitScene) DrawingOnScreens() []draw.DrawingOnScreen { return w.drawings(nil) }

// PanScene waits for the camera to reach a point of the map.
type PanScene struct {
	RpgEventScene
}

func NewPanScene(gen Generator, s EventfulScene, target geometry.Coordinate, d timing.Millisecond, f ease.TweenFunc) PanScene {
	s = s.WithCamera(s.Camera().ScrollTo(target, d, f))
	return PanScene{RpgEventScene{gen, s}}
}

func (p PanScene) Tick(dt timing.Millisecond) Scene {
	p.RpgEventScene = p.tickScene(dt)
	if !p.Scene.Camera().Gliding() {
		return p.Complete(nil, nil)
	}
	return p
}

func (p PanScene) Event(event.Event) Scene { return p }

func (p PanScene) DrawingOnScreens() []draw.DrawingOnScreen { return p.drawings(nil) }
