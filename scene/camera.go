package scene

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// CenterPlayer returns the shift that puts player in the middle of the
// screen without showing anything past the map edges. On an axis where the
// map is smaller than the screen, the map is centred instead.
func CenterPlayer(player geometry.Coordinate, mapSize, screen geometry.Size) geometry.Coordinate {
	return geometry.Coordinate{
		Left: centerAxis(player.Left, screen.W(), mapSize.W()),
		Top:  centerAxis(player.Top, screen.H(), mapSize.H()),
	}
}

func centerAxis(player, screen, world float64) float64 {
	switch {
	case world <= screen:
		return (screen - world) / 2
	case player < screen/2:
		return 0
	case player > world-screen/2:
		return screen - world
	}
	return screen/2 - player
}

// glide holds the tweens of a camera scroll. The tweens are copied before
// every update so camera values never share progress.
type glide struct {
	x, y         *gween.Tween
	doneX, doneY bool
}

func newGlide(from, to geometry.Coordinate, d timing.Millisecond, f ease.TweenFunc) *glide {
	if f == nil {
		f = ease.InOutQuad
	}
	return &glide{
		x: gween.New(float32(from.Left), float32(to.Left), float32(d), f),
		y: gween.New(float32(from.Top), float32(to.Top), float32(d), f),
	}
}

// update advances a copy of g and returns it with the current shift.
func (g glide) update(dt timing.Millisecond, at geometry.Coordinate) (glide, geometry.Coordinate) {
	if !g.doneX {
		x := *g.x
		v, done := x.Update(float32(dt))
		g.x, g.doneX, at.Left = &x, done, float64(v)
	}
	if !g.doneY {
		y := *g.y
		v, done := y.Update(float32(dt))
		g.y, g.doneY, at.Top = &y, done, float64(v)
	}
	return g, at
}

// Camera is the drawing shift of a map scene. It follows the player unless
// a script has pinned it somewhere else with ScrollTo.
type Camera struct {
	Screen geometry.Size
	World  geometry.Size

	shift  geometry.Coordinate
	pinned bool
	glide  *glide
}

// NewCamera centres player on a screen showing a world of the given size.
func NewCamera(screen, world geometry.Size, player geometry.Coordinate) Camera {
	return Camera{Screen: screen, World: world, shift: CenterPlayer(player, world, screen)}
}

// Shift is the offset added to every map drawing.
func (c Camera) Shift() geometry.Coordinate { return c.shift }

// Gliding reports whether a scroll is in progress.
func (c Camera) Gliding() bool { return c.glide != nil }

// Pinned reports whether the camera ignores the player.
func (c Camera) Pinned() bool { return c.pinned }

// Follow moves the camera onto player. A pinned or gliding camera keeps its
// course.
func (c Camera) Follow(player geometry.Coordinate) Camera {
	if c.pinned || c.glide != nil {
		return c
	}
	c.shift = CenterPlayer(player, c.World, c.Screen)
	return c
}

// ScrollTo glides until target is centred, then stays there until Release.
func (c Camera) ScrollTo(target geometry.Coordinate, d timing.Millisecond, f ease.TweenFunc) Camera {
	to := CenterPlayer(target, c.World, c.Screen)
	c.pinned = true
	if d <= 0 {
		c.shift, c.glide = to, nil
		return c
	}
	c.glide = newGlide(c.shift, to, d, f)
	return c
}

// Release glides back onto player over d and resumes following.
func (c Camera) Release(player geometry.Coordinate, d timing.Millisecond) Camera {
	if !c.pinned {
		return c
	}
	c.pinned = false
	to := CenterPlayer(player, c.World, c.Screen)
	if d <= 0 {
		c.shift, c.glide = to, nil
		return c
	}
	c.glide = newGlide(c.shift, to, d, nil)
	return c
}

// Tick advances a glide in progress.
func (c Camera) Tick(dt timing.Millisecond) Camera {
	if c.glide == nil {
		return c
	}
	g, shift := c.glide.update(dt, c.shift)
	c.shift = shift
	if g.doneX && g.doneY {
		c.glide = nil
		return c
	}
	c.glide = &g
	return c
}
