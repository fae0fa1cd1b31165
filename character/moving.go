package character

import (
	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// MovingCharacter is a character that walks into map collisions.
type MovingCharacter struct {
	OnScreen
	Collisions []geometry.Area
	Speed      float64 // pixels per millisecond
}

func NewMovingCharacter(c OnScreen, collisions []geometry.Area, cfg config.Character) MovingCharacter {
	return MovingCharacter{OnScreen: c, Collisions: collisions, Speed: cfg.MoveSpeed}
}

// Blocked reports whether standing at `at` would overlap the map or others.
func (m MovingCharacter) Blocked(at geometry.Coordinate, others []OnScreen) bool {
	return blocked(m.OnScreen, at, m.Collisions, others)
}

// step moves to next when moving and not blocked, otherwise idles in place.
func (m MovingCharacter) step(dt timing.Millisecond, moving bool, next geometry.Coordinate, others []OnScreen) (MovingCharacter, bool) {
	if !moving || m.Blocked(next, others) {
		m.OnScreen = m.OnScreen.Tick(dt)
		return m, false
	}
	m.Drawing = m.Drawing.TickMoving(dt)
	m.Coordinate = next
	return m, true
}
