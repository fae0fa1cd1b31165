package scene

import (
	"slices"

	"github.com/phanxgames/thicket/character"
	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/debuglog"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/event"
	"github.com/phanxgames/thicket/timing"
)

// EventfulScene is a scene with a player and NPCs whose scripts can run.
// Implementations keep an Eventful and drive it with TickEventful and
// EventEventful.
type EventfulScene interface {
	Scene
	Eventful() Eventful
	WithEventful(e Eventful) EventfulScene
	// TickWithoutEvent advances the world without starting or resuming an
	// event. Event scenes call it so the world keeps moving behind them.
	TickWithoutEvent(dt timing.Millisecond) EventfulScene
	Camera() Camera
	WithCamera(c Camera) EventfulScene
	Config() config.Config
}

// Eventful is the player, the NPCs and the state of the event in progress.
type Eventful struct {
	Player  character.Player
	NPCs    []character.NonPlayer
	Scripts map[string]Script
	Log     debuglog.Logger

	started    string
	ended      string
	gen        Generator
	result     any
	background []BackgroundEvent
}

// NewEventful collects the characters of a scene. Scripts are keyed by NPC
// name.
func NewEventful(player character.Player, npcs []character.NonPlayer, scripts map[string]Script, log debuglog.Logger) Eventful {
	return Eventful{Player: player, NPCs: npcs, Scripts: scripts, Log: log}
}

// Running reports whether an event is in progress.
func (e Eventful) Running() bool { return e.gen != nil || e.started != "" }

// Character returns the player or the NPC named name.
func (e Eventful) Character(name string) (character.OnScreen, bool) {
	if e.Player.Name == name {
		return e.Player.OnScreen, true
	}
	if i := e.npcIndex(name); i >= 0 {
		return e.NPCs[i].Info().OnScreen, true
	}
	return character.OnScreen{}, false
}

// Characters returns the player followed by every NPC.
func (e Eventful) Characters() []character.OnScreen {
	out := make([]character.OnScreen, 0, len(e.NPCs)+1)
	out = append(out, e.Player.OnScreen)
	for _, n := range e.NPCs {
		out = append(out, n.Info().OnScreen)
	}
	return out
}

func (e Eventful) npcIndex(name string) int {
	return slices.IndexFunc(e.NPCs, func(n character.NonPlayer) bool { return n.Info().Name == name })
}

// collided returns the first NPC with an event whose start-event rect meets
// the player's.
func (e Eventful) collided() (character.Npc, bool) {
	rect := e.Player.StartEventRect()
	for _, n := range e.NPCs {
		info := n.Info()
		if info.HasEvent && info.StartEventRect().Collide(rect) {
			return info, true
		}
	}
	return character.Npc{}, false
}

// others returns every character except the NPC at skip.
func (e Eventful) others(skip int) []character.OnScreen {
	out := make([]character.OnScreen, 0, len(e.NPCs))
	out = append(out, e.Player.OnScreen)
	for i, n := range e.NPCs {
		if i != skip {
			out = append(out, n.Info().OnScreen)
		}
	}
	return out
}

// TickWorld moves the player, then the NPCs, then the background events.
func (e Eventful) TickWorld(dt timing.Millisecond) Eventful {
	npcScreens := make([]character.OnScreen, len(e.NPCs))
	for i, n := range e.NPCs {
		npcScreens[i] = n.Info().OnScreen
	}
	e.Player = e.Player.TickWithOthers(dt, npcScreens)

	npcs := make([]character.NonPlayer, len(e.NPCs))
	for i, n := range e.NPCs {
		npcs[i] = n.TickWithOthers(dt, e.others(i))
	}
	e.NPCs = npcs

	if e.ended != "" {
		if i := e.npcIndex(e.ended); i < 0 || !e.NPCs[i].Info().StartEventRect().Collide(e.Player.StartEventRect()) {
			e.ended = ""
		}
	}

	bg := make([]BackgroundEvent, 0, len(e.background))
	for _, b := range e.background {
		if b = b.Tick(dt); !b.Complete() {
			bg = append(bg, b)
		}
	}
	e.background = bg
	return e
}

// BackgroundDrawings returns what background events draw on the screen.
func (e Eventful) BackgroundDrawings() []draw.DrawingOnScreen {
	var out []draw.DrawingOnScreen
	for _, b := range e.background {
		out = append(out, b.DrawingOnScreens()...)
	}
	return out
}

// Background returns the background event kept under key.
func (e Eventful) Background(key string) (BackgroundEvent, bool) {
	i := slices.IndexFunc(e.background, func(b BackgroundEvent) bool { return b.Key == key })
	if i < 0 {
		return BackgroundEvent{}, false
	}
	return e.background[i], true
}

// WithoutBackground drops the background event kept under key.
func (e Eventful) WithoutBackground(key string) Eventful {
	e.background = slices.DeleteFunc(slices.Clone(e.background), func(b BackgroundEvent) bool { return b.Key == key })
	return e
}

// EventEventful hands e to the player and records an NPC to start on a
// confirm press.
func EventEventful(s EventfulScene, e event.Event) Scene {
	ev := s.Eventful()
	ev.Player = ev.Player.Event(e)
	if !ev.Running() && event.IsKeyPress(e, event.KeyConfirm) {
		if npc, ok := ev.collided(); ok && npc.CanStart(character.StartConfirm) {
			ev.started = npc.Name
		}
	}
	return s.WithEventful(ev)
}

// TickEventful resumes the running event, starts a pending one, or just
// ticks the world.
func TickEventful(s EventfulScene, dt timing.Millisecond) Scene {
	ev := s.Eventful()
	switch {
	case ev.gen != nil:
		ticked := s.TickWithoutEvent(dt)
		next, gen, ok := ev.gen.Send(ev.result)
		if !ok {
			return completeEvent(ticked, gen.Return())
		}
		return next(gen, ticked)
	case ev.started != "":
		return startEvent(s, ev.started, dt)
	}
	if npc, ok := ev.collided(); ok && npc.Name != ev.ended && npc.CanStart(character.StartCollide) {
		return startEvent(s, npc.Name, dt)
	}
	return s.TickWithoutEvent(dt)
}

func startEvent(s EventfulScene, name string, dt timing.Millisecond) Scene {
	ev := s.Eventful()
	i := ev.npcIndex(name)
	script := ev.Scripts[name]
	if i < 0 || script == nil {
		ev.Log.Warningf("no event for %s", name)
		ev.started = ""
		return s.WithEventful(ev).TickWithoutEvent(dt)
	}
	npcs := slices.Clone(ev.NPCs)
	npcs[i] = npcs[i].StartEvent(ev.Player.OnScreen)
	ev.Player = ev.Player.StartEvent(npcs[i].Info().OnScreen)
	ev.NPCs = npcs
	ev.started = name

	ticked := s.WithEventful(ev).TickWithoutEvent(dt)
	tev := ticked.Eventful()
	gen := script(tev.Player, tev.NPCs[i], ticked)
	ev.Log.Debugf("event with %s started", name)
	next, gen, ok := gen.Send(nil)
	if !ok {
		return completeEvent(ticked, gen.Return())
	}
	return next(gen, ticked)
}

func completeEvent(s EventfulScene, ret any) EventfulScene {
	ev := s.Eventful()
	restart := true
	if r, ok := ret.(bool); ok && !r {
		restart = false
	}
	npcs := make([]character.NonPlayer, len(ev.NPCs))
	for i, n := range ev.NPCs {
		npcs[i] = n.CompleteEvent(restart || n.Info().Name != ev.started)
	}
	ev.NPCs = npcs
	ev.Player = ev.Player.CompleteEvent()
	ev.Log.Debugf("event with %s completed", ev.started)
	ev.ended, ev.started = ev.started, ""
	ev.gen, ev.result = nil, nil

	s = s.WithEventful(ev)
	if cam := s.Camera(); cam.Pinned() {
		s = s.WithCamera(cam.Release(ev.Player.Coordinate, s.Config().Timing.FadeDuration))
	}
	return s
}

// Complete hands control back to the event's script. The next tick resumes
// gen with result. bg, when set, joins the scene's background events.
func Complete(s EventfulScene, gen Generator, result any, bg *BackgroundEvent) EventfulScene {
	ev := s.Eventful()
	ev.gen, ev.result = gen, result
	if bg != nil {
		ev.background = append(slices.Clone(ev.background), *bg)
	}
	return s.WithEventful(ev)
}
