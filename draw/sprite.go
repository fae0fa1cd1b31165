package draw

import (
	"fmt"

	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// Sprite is anything that can be flattened into placed drawings and advanced
// in time. Size and TopLeft describe the box of DrawingOnScreens(Origin).
type Sprite interface {
	geometry.Sizable
	DrawingOnScreens(origin geometry.Coordinate) []DrawingOnScreen
	Tick(dt timing.Millisecond) Sprite
	Complete() bool
}

// Slicer is a sprite that can show only its first n units, such as the
// characters of a message.
type Slicer interface {
	Sprite
	Len() int
	Slice(n int) Sprite
}

// ShiftedSprite places a sprite relative to a parent origin. The point
// origin+Offset becomes the sprite's Anchor.
type ShiftedSprite struct {
	Sprite Sprite
	Offset geometry.Offset
	Anchor geometry.Anchor
}

// Shift places s with its anchor at offset.
func Shift(s Sprite, offset geometry.Offset, anchor geometry.Anchor) ShiftedSprite {
	return ShiftedSprite{Sprite: s, Offset: offset, Anchor: anchor}
}

// Shifted normalises a mixed list of sprites and shifted sprites. A bare
// sprite sits at the parent origin by its top-left corner.
func Shifted(items ...any) []ShiftedSprite {
	out := make([]ShiftedSprite, 0, len(items))
	for i, it := range items {
		switch v := it.(type) {
		case ShiftedSprite:
			out = append(out, v)
		case Sprite:
			out = append(out, ShiftedSprite{Sprite: v, Offset: geometry.Origin, Anchor: geometry.AnchorTopLeft})
		default:
			panic(fmt.Sprintf("thicket: item %d (%T) is neither a Sprite nor a ShiftedSprite", i, it))
		}
	}
	return out
}

func (s ShiftedSprite) offset() geometry.Coordinate {
	if s.Offset == nil {
		return geometry.Origin
	}
	return s.Offset.Shift()
}

// Flip mirrors the placement: the offset is negated and the anchor swapped
// for its opposite.
func (s ShiftedSprite) Flip() ShiftedSprite {
	s.Offset = s.offset().Neg()
	s.Anchor = s.Anchor.Opposite()
	return s
}

// Tick advances the wrapped sprite.
func (s ShiftedSprite) Tick(dt timing.Millisecond) ShiftedSprite {
	s.Sprite = s.Sprite.Tick(dt)
	return s
}

// Point returns where the anchor lands for a parent at origin.
func (s ShiftedSprite) Point(origin geometry.Coordinate) geometry.Coordinate {
	return origin.Add(s.offset())
}

// Resolve flattens the sprite for a parent at origin.
func (s ShiftedSprite) Resolve(origin geometry.Coordinate) []DrawingOnScreen {
	size := s.Sprite.Size()
	topLeft := s.Point(origin).AsAnchorOf(size, s.Anchor).TopLeft()
	return s.Sprite.DrawingOnScreens(topLeft.Sub(s.Sprite.TopLeft()))
}

// ResolveAll flattens every item depth-first in order.
func ResolveAll(items []ShiftedSprite, origin geometry.Coordinate) []DrawingOnScreen {
	var out []DrawingOnScreen
	for _, it := range items {
		out = append(out, it.Resolve(origin)...)
	}
	return out
}

// TickAll advances every item.
func TickAll(items []ShiftedSprite, dt timing.Millisecond) []ShiftedSprite {
	out := make([]ShiftedSprite, len(items))
	for i, it := range items {
		out[i] = it.Tick(dt)
	}
	return out
}

// AllComplete reports whether every item's sprite is complete.
func AllComplete(items []ShiftedSprite) bool {
	for _, it := range items {
		if !it.Sprite.Complete() {
			return false
		}
	}
	return true
}
