package character

import (
	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// OnScreen places a character drawing on the map. Coordinate is the bottom
// centre of the sprite, which is where the character's feet are.
type OnScreen struct {
	Name       string
	Coordinate geometry.Coordinate
	Drawing    Drawing
	// Avatar is shown next to the character's speech bubbles when set.
	Avatar draw.Sprite

	StartEventMargin  float64
	CollideWithOthers bool

	eventStarted bool
}

// NewOnScreen places d at c using the margins and collision rule of cfg.
func NewOnScreen(name string, c geometry.Coordinate, d Drawing, cfg config.Character) OnScreen {
	return OnScreen{
		Name:              name,
		Coordinate:        c,
		Drawing:           d,
		StartEventMargin:  cfg.StartEventMargin,
		CollideWithOthers: cfg.CollideWithOthers,
	}
}

func (c OnScreen) Sprite() draw.Sprite { return c.Drawing.Sprite() }

func (c OnScreen) Direction() geometry.Direction { return c.Drawing.Direction() }

// VisibleRect is the sprite box standing on Coordinate.
func (c OnScreen) VisibleRect() geometry.Rectangle {
	return c.rectAt(c.Coordinate)
}

func (c OnScreen) rectAt(at geometry.Coordinate) geometry.Rectangle {
	return at.AsBottomCenterOf(c.Sprite().Size()).Rectangle()
}

// StartEventRect is the visible rect grown by the start-event margin.
func (c OnScreen) StartEventRect() geometry.Rectangle {
	return c.VisibleRect().Grow(geometry.UniformPadding(c.StartEventMargin))
}

func (c OnScreen) Size() geometry.Size          { return c.Sprite().Size() }
func (c OnScreen) TopLeft() geometry.Coordinate { return c.VisibleRect().Corner }

// Bottom is the screen row the character stands on.
func (c OnScreen) Bottom() float64 { return c.Coordinate.Top }

func (c OnScreen) Turn(d geometry.Direction) OnScreen {
	c.Drawing = c.Drawing.Turn(d)
	return c
}

func (c OnScreen) WithCoordinate(at geometry.Coordinate) OnScreen {
	c.Coordinate = at
	return c
}

// Tick lets a standing character idle.
func (c OnScreen) Tick(dt timing.Millisecond) OnScreen {
	c.Drawing = c.Drawing.TickIdle(dt)
	return c
}

// EventStarted reports whether the character is taking part in an event.
func (c OnScreen) EventStarted() bool { return c.eventStarted }

// StartEvent turns to face other and marks the character busy.
func (c OnScreen) StartEvent(other OnScreen) OnScreen {
	if other.Coordinate != c.Coordinate {
		c = c.Turn(other.Coordinate.RelativeTo(c.Coordinate))
	}
	c.eventStarted = true
	return c
}

func (c OnScreen) CompleteEvent() OnScreen {
	c.eventStarted = false
	return c
}

func (c OnScreen) DrawingOnScreens() []draw.DrawingOnScreen {
	s := c.Sprite()
	return s.DrawingOnScreens(c.TopLeft().Sub(s.TopLeft()))
}

// Debug returns the overlays enabled in d: the sprite box and the collision
// box. A nil d draws nothing.
func (c OnScreen) Debug(d *config.Debug) []draw.DrawingOnScreen {
	if d == nil {
		return nil
	}
	var out []draw.DrawingOnScreen
	if d.DrawingBackground != nil {
		out = append(out, draw.FillArea(c.VisibleRect(), *d.DrawingBackground))
	}
	if d.CollisionRectangle != nil && c.CollideWithOthers {
		out = append(out, draw.StrokeArea(c.VisibleRect(), *d.CollisionRectangle))
	}
	return out
}

// blocked reports whether standing at `at` overlaps a collision area, or the
// visible rect of another character when both collide with others.
func blocked(c OnScreen, at geometry.Coordinate, collisions []geometry.Area, others []OnScreen) bool {
	rect := c.rectAt(at)
	for _, a := range collisions {
		if a.Collide(rect) {
			return true
		}
	}
	if !c.CollideWithOthers {
		return false
	}
	for _, o := range others {
		if o.CollideWithOthers && o.VisibleRect().Collide(rect) {
			return true
		}
	}
	return false
}
