package scene

import (
	"slices"
	"testing"

	"github.com/phanxgames/thicket/character"
	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/debuglog"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/event"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// stage is the smallest EventfulScene: no map, a screen-sized world.
type stage struct {
	ev    Eventful
	cam   Camera
	cfg   config.Config
	ticks int
}

func (s stage) Eventful() Eventful { return s.ev }

func (s stage) WithEventful(e Eventful) EventfulScene {
	s.ev = e
	return s
}

func (s stage) TickWithoutEvent(dt timing.Millisecond) EventfulScene {
	s.ev = s.ev.TickWorld(dt)
	s.cam = s.cam.Tick(dt)
	s.ticks++
	return s
}

func (s stage) Camera() Camera { return s.cam }

func (s stage) WithCamera(c Camera) EventfulScene {
	s.cam = c
	return s
}

func (s stage) Config() config.Config                    { return s.cfg }
func (s stage) Tick(dt timing.Millisecond) Scene          { return TickEventful(s, dt) }
func (s stage) Event(e event.Event) Scene                 { return EventEventful(s, e) }
func (s stage) DrawingOnScreens() []draw.DrawingOnScreen { return s.ev.BackgroundDrawings() }

func at(x, y float64) geometry.Coordinate { return geometry.Coordinate{Left: x, Top: y} }

func box() character.Static {
	return character.NewStatic(draw.Blank(geometry.SizeOf(16, 16)), geometry.Down)
}

// newStage puts the player right above an NPC called elder so their
// start-event rects overlap.
func newStage(mode character.StartMode, script Script) stage {
	cfg := config.Default()
	player := character.NewPlayer(character.NewOnScreen("hero", at(100, 100), box(), cfg.Character), nil, cfg.Character)
	npc := character.NewNpc(character.NewOnScreen("elder", at(100, 130), box(), cfg.Character), mode, script != nil)
	scripts := map[string]Script{}
	if script != nil {
		scripts["elder"] = script
	}
	return stage{
		ev:  NewEventful(player, []character.NonPlayer{npc}, scripts, debuglog.Logger{}),
		cam: NewCamera(cfg.Window.Size(), cfg.Window.Size(), player.Coordinate),
		cfg: cfg,
	}
}

func script(steps ...Step) Script {
	return func(character.Player, character.NonPlayer, EventfulScene) Generator {
		return Steps(steps...)
	}
}

func record(log *[]string, v string) Step {
	return Do(func(s EventfulScene) (EventfulScene, any) {
		*log = append(*log, v)
		return s, v
	})
}

func tickN(s Scene, n int, dt timing.Millisecond) Scene {
	for range n {
		s = s.Tick(dt)
	}
	return s
}

func elder(t *testing.T, s Scene) character.Npc {
	t.Helper()
	es, ok := s.(EventfulScene)
	if !ok {
		t.Fatalf("scene is %T, want an EventfulScene", s)
	}
	i := es.Eventful().npcIndex("elder")
	if i < 0 {
		t.Fatal("elder missing")
	}
	return es.Eventful().NPCs[i].Info()
}

func confirm() event.Event { return event.KeyPressDown{Key: event.KeyConfirm} }

// --- Steps ---

func TestSteps_RunInOrder(t *testing.T) {
	var log []string
	var s Scene = newStage(character.StartCollide, script(record(&log, "a"), record(&log, "b")))
	s = tickN(s, 3, 16)
	if !slices.Equal(log, []string{"a", "b"}) {
		t.Errorf("log = %v, want [a b]", log)
	}
	if s.(stage).ev.Running() {
		t.Error("event should be complete")
	}
	if !elder(t, s).RestartEvent {
		t.Error("a script without Return should stay restartable")
	}
}

func TestSteps_ReturnFalseStopsRestart(t *testing.T) {
	var log []string
	var s Scene = newStage(character.StartCollide, script(record(&log, "a"), Return(false), record(&log, "b")))
	s = tickN(s, 4, 16)
	if !slices.Equal(log, []string{"a"}) {
		t.Errorf("log = %v, want [a]", log)
	}
	if elder(t, s).RestartEvent {
		t.Error("RestartEvent should be false after Return(false)")
	}
}

func TestSteps_ThenBranchesOnResult(t *testing.T) {
	var log []string
	branch := Then(func(result any) []Step {
		if result == "a" {
			return []Step{record(&log, "yes")}
		}
		return []Step{record(&log, "no")}
	})
	var s Scene = newStage(character.StartCollide, script(record(&log, "a"), branch))
	tickN(s, 3, 16)
	if !slices.Equal(log, []string{"a", "yes"}) {
		t.Errorf("log = %v, want [a yes]", log)
	}
}

func TestCutscene_ReturnEndsBlockOnly(t *testing.T) {
	var log []string
	st := newStage(character.StartCollide, nil)
	st.cfg.Cutscene.Wait = false
	st.cfg.Cutscene.Duration = 100
	st.ev.Scripts = map[string]Script{"elder": script(
		Cutscene(st.cfg, record(&log, "in"), Return(false), record(&log, "skipped")),
		record(&log, "after"),
	)}
	st.ev.NPCs[0] = character.NewNpc(st.ev.NPCs[0].Info().OnScreen, character.StartCollide, true)

	var s Scene = st
	s = tickN(s, 3, 16)
	if _, ok := s.(stage).ev.Background(cutsceneKey); !ok {
		t.Fatal("cutscene borders should be up inside the block")
	}
	s = tickN(s, 3, 16)
	if !slices.Equal(log, []string{"in", "after"}) {
		t.Errorf("log = %v, want [in after]", log)
	}
	if elder(t, s).RestartEvent {
		t.Error("Return(false) inside a cutscene should still be the script result")
	}
	s = tickN(s, 10, 16)
	if _, ok := s.(stage).ev.Background(cutsceneKey); ok {
		t.Error("borders should be gone once faded out")
	}
}

// --- EventfulScene ---

func TestEventful_ConfirmStartsEvent(t *testing.T) {
	var log []string
	var s Scene = newStage(character.StartConfirm, script(record(&log, "a")))
	s = tickN(s, 2, 16)
	if len(log) != 0 {
		t.Fatalf("confirm-mode event started without confirm: %v", log)
	}
	s = s.Event(confirm())
	s = s.Tick(16)
	if !slices.Equal(log, []string{"a"}) {
		t.Errorf("log = %v, want [a]", log)
	}
}

func TestEventful_CollideRestartsAfterLeaving(t *testing.T) {
	var log []string
	var s Scene = newStage(character.StartCollide, script(record(&log, "a")))
	s = tickN(s, 4, 16)
	if len(log) != 1 {
		t.Fatalf("log = %v, want one run while still touching", log)
	}

	st := s.(stage)
	st.ev.Player = st.ev.Player.WithCoordinate(at(100, 300))
	s = st.Tick(16)
	st = s.(stage)
	st.ev.Player = st.ev.Player.WithCoordinate(at(100, 100))
	tickN(st, 2, 16)
	if len(log) != 2 {
		t.Errorf("log = %v, want a second run after walking away and back", log)
	}
}

func TestEventful_NoScriptKeepsTicking(t *testing.T) {
	st := newStage(character.StartConfirm, nil)
	st.ev.NPCs[0] = character.NewNpc(st.ev.NPCs[0].Info().OnScreen, character.StartConfirm, true)
	s := st.Event(confirm()).Tick(16)
	got, ok := s.(stage)
	if !ok {
		t.Fatalf("scene is %T, want the stage", s)
	}
	if got.ev.Running() {
		t.Error("an NPC without a script should not leave an event running")
	}
	if got.ticks != 1 {
		t.Errorf("ticks = %d, want 1", got.ticks)
	}
}

func TestEventful_WorldTicksDuringEvent(t *testing.T) {
	var s Scene = newStage(character.StartCollide, script(Wait(100)))
	s = s.Tick(16)
	if _, ok := s.(WaitScene); !ok {
		t.Fatalf("scene is %T, want WaitScene", s)
	}
	s = tickN(s, 3, 16)
	w := s.(WaitScene)
	if got := w.Scene.(stage).ticks; got != 4 {
		t.Errorf("ticks = %d, want 4", got)
	}
}

// --- Wait ---

func TestWaitScene_Completes(t *testing.T) {
	var log []string
	var s Scene = newStage(character.StartCollide, script(Wait(100), record(&log, "done")))
	s = s.Tick(16)
	s = s.Tick(60)
	if _, ok := s.(WaitScene); !ok {
		t.Fatalf("scene is %T, want WaitScene before 100ms", s)
	}
	s = s.Tick(60)
	if _, ok := s.(stage); !ok {
		t.Fatalf("scene is %T, want the stage after 100ms", s)
	}
	s.Tick(16)
	if !slices.Equal(log, []string{"done"}) {
		t.Errorf("log = %v, want [done]", log)
	}
}

// --- Say ---

func TestSayEventScene_Progression(t *testing.T) {
	var log []string
	var s Scene = newStage(character.StartCollide, script(
		Say(SayCharacter("elder"), "Hello", TextDelay(0)),
		record(&log, "after"),
	))
	s = s.Tick(16)
	say, ok := s.(SayEventScene)
	if !ok {
		t.Fatalf("scene is %T, want SayEventScene", s)
	}
	if say.State() != "fade_in" {
		t.Fatalf("State = %q, want fade_in", say.State())
	}
	if got := say.Event(confirm()).(SayEventScene).State(); got != "fade_in" {
		t.Errorf("confirm during fade in: State = %q", got)
	}

	s = s.Tick(250)
	if got := s.(SayEventScene).State(); got != "typing" {
		t.Fatalf("State = %q, want typing", got)
	}
	if len(s.DrawingOnScreens()) == 0 {
		t.Error("a typing bubble should draw")
	}
	s = s.Event(confirm())
	if got := s.(SayEventScene).State(); got != "fade_out" {
		t.Fatalf("State = %q, want fade_out", got)
	}
	s = s.Tick(250)
	if _, ok := s.(stage); !ok {
		t.Fatalf("scene is %T, want the stage after fading out", s)
	}
	s.Tick(16)
	if !slices.Equal(log, []string{"after"}) {
		t.Errorf("log = %v, want [after]", log)
	}
}

func TestSayEventScene_UnknownCharacterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unknown speaker")
		}
	}()
	NewSayEventScene(nil, newStage(character.StartCollide, nil), SayCharacter("nobody"), "hi")
}

func TestSayEventScene_CenteredAt(t *testing.T) {
	st := newStage(character.StartCollide, nil)
	say := NewSayEventScene(nil, st, SayScene(""), "Hi", At(at(640, 360)), TextDelay(0))
	b := draw.Bounds(say.bubble)
	c := geometry.Center(b.Rectangle())
	if c != at(640, 360) {
		t.Errorf("bubble centre = %v, want (640,360)", c)
	}
}

func TestSayEventScene_GroupLinks(t *testing.T) {
	plain := NewSayEventScene(nil, newStage(character.StartCollide, nil), SayCharacter("elder"), "hi")
	st := newStage(character.StartCollide, nil)
	st.cfg.Debug = config.DefaultDebug()
	linked := NewSayEventScene(nil, st, SayCharacter("elder"), "hi")
	// One link each to the background and the name.
	if got, want := len(linked.bubble), len(plain.bubble)+2; got != want {
		t.Errorf("bubble parts = %d, want %d with group links", got, want)
	}
	st.cfg.Debug.GroupLink = nil
	if got := len(NewSayEventScene(nil, st, SayCharacter("elder"), "hi").bubble); got != len(plain.bubble) {
		t.Errorf("bubble parts = %d, want %d without the link color", got, len(plain.bubble))
	}
}

// --- Fades ---

func TestFade_BackgroundEventLifecycle(t *testing.T) {
	sprite := draw.Placed{{At: at(10, 10), Drawing: draw.Blank(geometry.SizeOf(8, 8))}}
	var s Scene = newStage(character.StartCollide, script(
		FadeIn("flash", sprite, true),
		Wait(50),
		FadeOut("flash", true),
	))
	s = s.Tick(16)
	if _, ok := s.(FadeInScene); !ok {
		t.Fatalf("scene is %T, want FadeInScene", s)
	}
	s = s.Tick(250)
	if _, ok := s.(stage).ev.Background("flash"); !ok {
		t.Fatal("faded-in sprite should stay as a background event")
	}
	s = s.Tick(16) // wait starts
	s = s.Tick(60) // wait done
	s = s.Tick(16) // fade out starts
	if _, ok := s.(FadeOutScene); !ok {
		t.Fatalf("scene is %T, want FadeOutScene", s)
	}
	if _, ok := s.(FadeOutScene).Scene.Eventful().Background("flash"); ok {
		t.Error("the background event should be removed while fading out")
	}
	s = s.Tick(250)
	if _, ok := s.(stage); !ok {
		t.Fatalf("scene is %T, want the stage", s)
	}
}

func TestFadeOut_UnknownKeyCompletes(t *testing.T) {
	st := newStage(character.StartCollide, nil)
	s := NewFadeOutScene(Steps(), st, "missing", true, 0)
	if _, ok := s.(stage); !ok {
		t.Errorf("scene is %T, want the stage back", s)
	}
}

// --- StaticScene ---

func TestStaticScene_Confirm(t *testing.T) {
	next := StaticScene{}
	s := NewColorScene(geometry.SizeOf(10, 10), draw.ColorBlack, func() Scene { return next })
	if got := s.Event(event.KeyPressDown{Key: event.KeyCancel}); len(got.DrawingOnScreens()) != 1 {
		t.Error("other keys should be ignored")
	}
	if got := s.Event(confirm()); len(got.DrawingOnScreens()) != 0 {
		t.Error("confirm should switch to the OnConfirm scene")
	}
}

// --- Camera ---

func TestCenterPlayer(t *testing.T) {
	screen := geometry.SizeOf(100, 100)
	world := geometry.SizeOf(400, 50)
	tests := []struct {
		player geometry.Coordinate
		want   geometry.Coordinate
	}{
		{at(10, 10), at(0, 25)},
		{at(200, 10), at(-150, 25)},
		{at(390, 10), at(-300, 25)},
	}
	for _, tt := range tests {
		if got := CenterPlayer(tt.player, world, screen); got != tt.want {
			t.Errorf("CenterPlayer(%v) = %v, want %v", tt.player, got, tt.want)
		}
	}
}

func TestCamera_ScrollAndRelease(t *testing.T) {
	c := NewCamera(geometry.SizeOf(100, 100), geometry.SizeOf(400, 400), at(50, 50))
	if c.Shift() != at(0, 0) {
		t.Fatalf("Shift = %v, want origin", c.Shift())
	}
	c = c.ScrollTo(at(200, 200), 100, nil)
	if !c.Pinned() || !c.Gliding() {
		t.Fatal("ScrollTo should pin and glide")
	}
	c = c.Follow(at(50, 50)).Tick(100)
	if c.Gliding() {
		t.Error("glide should finish after its duration")
	}
	if c.Shift() != at(-150, -150) {
		t.Errorf("Shift = %v, want (-150,-150)", c.Shift())
	}
	if got := c.Follow(at(50, 50)).Shift(); got != at(-150, -150) {
		t.Errorf("pinned camera followed the player to %v", got)
	}
	c = c.Release(at(50, 50), 0)
	if c.Pinned() || c.Shift() != at(0, 0) {
		t.Errorf("Release: pinned=%v shift=%v", c.Pinned(), c.Shift())
	}
}

func TestPanScene_ReleasesOnComplete(t *testing.T) {
	st := newStage(character.StartCollide, nil)
	st.cam = NewCamera(geometry.SizeOf(100, 100), geometry.SizeOf(400, 400), at(50, 50))
	st.ev.Scripts = map[string]Script{"elder": script(Pan(at(200, 200), 100, nil))}
	st.ev.NPCs[0] = character.NewNpc(st.ev.NPCs[0].Info().OnScreen, character.StartCollide, true)

	var s Scene = st
	s = s.Tick(16)
	if _, ok := s.(PanScene); !ok {
		t.Fatalf("scene is %T, want PanScene", s)
	}
	s = s.Tick(100)
	s = s.Tick(16)
	got := s.(stage)
	if got.ev.Running() {
		t.Fatal("event should be complete")
	}
	if got.cam.Pinned() {
		t.Error("camera should be released when the event completes")
	}
}

// --- TransitionScene ---

func TestTransitionScene_Phases(t *testing.T) {
	from := NewColorScene(geometry.SizeOf(10, 10), draw.ColorBlack, nil)
	builds := 0
	to := StaticScene{}
	tr := NewTransitionSceneWith(from, func() Scene {
		builds++
		return to
	}, draw.Blank(geometry.SizeOf(10, 10)), 100)

	if tr.Phase() != PhaseFadingIn {
		t.Fatalf("Phase = %q, want %q", tr.Phase(), PhaseFadingIn)
	}
	var s Scene = tr.Tick(50)
	if builds != 0 {
		t.Error("destination built before the screen was covered")
	}
	s = s.Tick(50)
	if got := s.(TransitionScene).Phase(); got != PhaseFadingOut {
		t.Fatalf("Phase = %q, want %q", got, PhaseFadingOut)
	}
	s = s.Tick(50)
	if _, ok := s.(TransitionScene); !ok {
		t.Fatalf("scene is %T, want TransitionScene mid fade out", s)
	}
	s = s.Tick(50)
	if _, ok := s.(StaticScene); !ok {
		t.Errorf("scene is %T, want the destination", s)
	}
	if builds != 1 {
		t.Errorf("builds = %d, want 1", builds)
	}
}

func TestTransitionScene_IgnoresInput(t *testing.T) {
	tr := NewTransitionSceneWith(StaticScene{}, func() Scene { return StaticScene{} }, draw.Blank(geometry.SizeOf(1, 1)), 10)
	if got := tr.Event(confirm()).(TransitionScene).Phase(); got != PhaseFadingIn {
		t.Errorf("Phase = %q after input", got)
	}
}
