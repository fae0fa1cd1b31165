package draw

import (
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// DrawingGroup composes sprites, each placed relative to the group origin.
type DrawingGroup struct {
	Items []ShiftedSprite
	// LinkColor, when set, draws a line from the group origin to each item's
	// anchor point. Links never count towards the group's size.
	LinkColor *Color
}

// Group builds a group from sprites and shifted sprites.
func Group(items ...any) DrawingGroup {
	return DrawingGroup{Items: Shifted(items...)}
}

// WithLinks returns the group with debug link lines in c.
func (g DrawingGroup) WithLinks(c Color) DrawingGroup {
	g.LinkColor = &c
	return g
}

func (g DrawingGroup) bounds() geometry.Bounds {
	return Bounds(ResolveAll(g.Items, geometry.Origin))
}

func (g DrawingGroup) Size() geometry.Size          { return g.bounds().Extent }
func (g DrawingGroup) TopLeft() geometry.Coordinate { return g.bounds().TopLeftPoint }

func (g DrawingGroup) DrawingOnScreens(origin geometry.Coordinate) []DrawingOnScreen {
	out := ResolveAll(g.Items, origin)
	if g.LinkColor != nil {
		for _, it := range g.Items {
			out = append(out, StrokeLine(origin, it.Point(origin), *g.LinkColor, 1))
		}
	}
	return out
}

func (g DrawingGroup) Tick(dt timing.Millisecond) Sprite {
	g.Items = TickAll(g.Items, dt)
	return g
}

func (g DrawingGroup) Complete() bool { return AllComplete(g.Items) }
