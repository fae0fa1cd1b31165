package character

import (
	"fmt"
	"math"
	"strings"

	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// StartMode selects what starts an NPC's event.
type StartMode uint8

const (
	// StartConfirm starts the event when the player presses confirm next to
	// the NPC.
	StartConfirm StartMode = iota
	// StartCollide starts the event as soon as the player touches the NPC.
	StartCollide
)

func (m StartMode) String() string {
	if m == StartCollide {
		return "collide"
	}
	return "confirm"
}

// ParseStartMode converts "confirm" or "collide".
func ParseStartMode(s string) (StartMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "confirm":
		return StartConfirm, nil
	case "collide":
		return StartCollide, nil
	}
	return 0, fmt.Errorf("character: unknown start mode %q", s)
}

// NonPlayer is implemented by Npc and MovingNpc.
type NonPlayer interface {
	// Info returns the NPC as it stands this frame.
	Info() Npc
	TickWithOthers(dt timing.Millisecond, others []OnScreen) NonPlayer
	StartEvent(player OnScreen) NonPlayer
	// CompleteEvent ends the event; restart false keeps the event from
	// starting again.
	CompleteEvent(restart bool) NonPlayer
	DrawingOnScreens() []draw.DrawingOnScreen
	Debug(d *config.Debug) []draw.DrawingOnScreen
}

// Npc is a character the player can start events with.
type Npc struct {
	OnScreen
	Mode StartMode
	// HasEvent is false for NPCs without a script.
	HasEvent bool
	// RestartEvent allows the event to start; it is cleared when a script
	// finishes with restart false.
	RestartEvent bool
}

func NewNpc(c OnScreen, mode StartMode, hasEvent bool) Npc {
	return Npc{OnScreen: c, Mode: mode, HasEvent: hasEvent, RestartEvent: true}
}

// CanStart reports whether the event may start in the given mode.
func (n Npc) CanStart(mode StartMode) bool {
	return n.HasEvent && n.RestartEvent && n.Mode == mode && !n.eventStarted
}

func (n Npc) Info() Npc { return n }

func (n Npc) TickWithOthers(dt timing.Millisecond, _ []OnScreen) NonPlayer {
	n.OnScreen = n.OnScreen.Tick(dt)
	return n
}

func (n Npc) StartEvent(player OnScreen) NonPlayer {
	n.OnScreen = n.OnScreen.StartEvent(player)
	return n
}

func (n Npc) CompleteEvent(restart bool) NonPlayer {
	n.OnScreen = n.OnScreen.CompleteEvent()
	n.RestartEvent = n.RestartEvent && restart
	return n
}

// Debug adds the start-event rect to the character overlays.
func (n Npc) Debug(d *config.Debug) []draw.DrawingOnScreen {
	out := n.OnScreen.Debug(d)
	if d != nil && d.StartEventRectangle != nil && n.HasEvent {
		out = append(out, draw.FillArea(n.StartEventRect(), *d.StartEventRectangle))
	}
	return out
}

// MovingNpc walks a path, alternating between moving and idle periods.
type MovingNpc struct {
	Npc
	Collisions []geometry.Area

	walk   geometry.Walk
	idle   timing.Timer
	move   timing.Timer
	moving bool
}

// NewMovingNpc starts n on the first point of path. Points are where the
// NPC's feet go.
func NewMovingNpc(n Npc, path geometry.Polyline, cyclic bool, collisions []geometry.Area, cfg config.Character) MovingNpc {
	walk := geometry.NewWalk(path, cfg.MoveSpeed, cyclic)
	n.Coordinate = walk.Coordinate()
	return MovingNpc{
		Npc:        n,
		Collisions: collisions,
		walk:       walk,
		idle:       timing.NewTimer(cfg.IdleDuration),
		move:       timing.NewTimer(cfg.MoveDuration),
		moving:     true,
	}
}

// Walk returns the path state.
func (m MovingNpc) Walk() geometry.Walk { return m.walk }

// IsMoving reports whether the NPC is in a moving period outside of events.
func (m MovingNpc) IsMoving() bool {
	return m.moving && !m.eventStarted && !m.walk.Complete()
}

func (m MovingNpc) Info() Npc { return m.Npc }

// TickWithOthers advances the idle and move timers and, while moving, the
// walk. The walk only advances when the step is free; the timers always do.
func (m MovingNpc) TickWithOthers(dt timing.Millisecond, others []OnScreen) NonPlayer {
	if m.eventStarted {
		m.OnScreen = m.OnScreen.Tick(dt)
		return m
	}
	wasMoving := m.IsMoving()
	m.advanceTimers(dt)
	if !wasMoving {
		m.OnScreen = m.OnScreen.Tick(dt)
		return m
	}
	next := m.walk.Tick(float64(dt))
	if blocked(m.OnScreen, next.Coordinate(), m.Collisions, others) {
		m.OnScreen = m.OnScreen.Tick(dt)
		return m
	}
	m.walk = next
	m.Coordinate = next.Coordinate()
	m.Drawing = m.Drawing.TickMoving(dt).Turn(next.Direction())
	return m
}

// advanceTimers runs the move and idle periods. Time past the end of one
// period counts towards the next.
func (m *MovingNpc) advanceTimers(dt timing.Millisecond) {
	if lap := m.move.Duration + m.idle.Duration; lap > 0 {
		dt = timing.Millisecond(math.Mod(float64(dt), float64(lap)))
	}
	// Within one lap the NPC switches periods at most twice.
	for range 3 {
		t := &m.idle
		if m.moving {
			t = &m.move
		}
		*t = t.Advance(dt)
		if !t.Complete() {
			return
		}
		dt = t.Overshoot()
		*t = timing.NewTimer(t.Duration)
		m.moving = !m.moving
		if dt <= 0 {
			return
		}
	}
}

func (m MovingNpc) StartEvent(player OnScreen) NonPlayer {
	m.Npc = m.Npc.StartEvent(player).Info()
	return m
}

func (m MovingNpc) CompleteEvent(restart bool) NonPlayer {
	m.Npc = m.Npc.CompleteEvent(restart).Info()
	return m
}

// Debug adds the walking path to the NPC overlays.
func (m MovingNpc) Debug(d *config.Debug) []draw.DrawingOnScreen {
	out := m.Npc.Debug(d)
	if d != nil && d.NPCPath != nil {
		pts := m.walk.Path.Points()
		if m.walk.Cyclic {
			out = append(out, draw.StrokePolygon(pts, *d.NPCPath, 1))
		} else {
			out = append(out, draw.StrokePolyline(pts, *d.NPCPath, 1))
		}
	}
	return out
}
