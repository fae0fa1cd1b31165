package character

import (
	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/event"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

type heldKeys uint8

const (
	heldLeft heldKeys = 1 << iota
	heldRight
	heldUp
	heldDown
)

func heldKey(k event.Key) (heldKeys, bool) {
	switch k {
	case event.KeyLeft:
		return heldLeft, true
	case event.KeyRight:
		return heldRight, true
	case event.KeyUp:
		return heldUp, true
	case event.KeyDown:
		return heldDown, true
	}
	return 0, false
}

// keyDirections is checked in order; diagonals win over single keys.
var keyDirections = [...]struct {
	keys      heldKeys
	direction geometry.Direction
}{
	{heldLeft | heldUp, geometry.UpLeft},
	{heldLeft | heldDown, geometry.DownLeft},
	{heldRight | heldUp, geometry.UpRight},
	{heldRight | heldDown, geometry.DownRight},
	{heldLeft, geometry.Left},
	{heldRight, geometry.Right},
	{heldUp, geometry.Up},
	{heldDown, geometry.Down},
}

func (h heldKeys) direction() (geometry.Direction, bool) {
	for _, kd := range keyDirections {
		if h&kd.keys == kd.keys {
			return kd.direction, true
		}
	}
	return 0, false
}

// Player is the character steered by the movement keys.
type Player struct {
	MovingCharacter
	held heldKeys
}

func NewPlayer(c OnScreen, collisions []geometry.Area, cfg config.Character) Player {
	return Player{MovingCharacter: NewMovingCharacter(c, collisions, cfg)}
}

// IsMoving reports whether a movement key is held outside of an event.
func (p Player) IsMoving() bool { return p.held != 0 && !p.eventStarted }

// Event tracks movement key presses and turns toward the held keys.
func (p Player) Event(e event.Event) Player {
	var (
		k    event.Key
		down bool
	)
	switch e := e.(type) {
	case event.KeyPressDown:
		k, down = e.Key, true
	case event.KeyPressUp:
		k = e.Key
	default:
		return p
	}
	bit, ok := heldKey(k)
	if !ok {
		return p
	}
	if down {
		p.held |= bit
	} else {
		p.held &^= bit
	}
	if d, ok := p.held.direction(); ok {
		p.OnScreen = p.OnScreen.Turn(d)
	}
	return p
}

// Tick walks the player without other characters in the way.
func (p Player) Tick(dt timing.Millisecond) Player { return p.TickWithOthers(dt, nil) }

// TickWithOthers walks Speed*dt pixels in the facing direction unless the
// step is blocked.
func (p Player) TickWithOthers(dt timing.Millisecond, others []OnScreen) Player {
	offset := geometry.DirectionalOffset{Direction: p.Direction(), Offset: p.Speed * float64(dt)}
	p.MovingCharacter, _ = p.step(dt, p.IsMoving(), p.Coordinate.Add(offset), others)
	return p
}

// StartEvent faces other and drops the held keys; their releases go to the
// event scene.
func (p Player) StartEvent(other OnScreen) Player {
	p.OnScreen = p.OnScreen.StartEvent(other)
	p.held = 0
	return p
}

func (p Player) CompleteEvent() Player {
	p.OnScreen = p.OnScreen.CompleteEvent()
	return p
}

// WithCoordinate moves the player, typically to a map entrance.
func (p Player) WithCoordinate(at geometry.Coordinate) Player {
	p.Coordinate = at
	return p
}

// WithCollisions swaps the map collisions, used when entering a new map.
func (p Player) WithCollisions(collisions []geometry.Area) Player {
	p.Collisions = collisions
	return p
}
