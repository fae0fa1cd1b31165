package geometry

import (
	"fmt"
	"math"
)

// Coordinate is a screen or map position. The origin is the top-left, with
// Top increasing downward.
type Coordinate struct {
	Left, Top float64
}

// Origin is the zero coordinate.
var Origin = Coordinate{}

// Offset is anything that can displace a coordinate: a Coordinate, a Size,
// or a DirectionalOffset.
type Offset interface {
	Shift() Coordinate
}

// Shift returns c itself so a Coordinate can be used as an Offset.
func (c Coordinate) Shift() Coordinate { return c }

// Add returns c shifted by o.
func (c Coordinate) Add(o Offset) Coordinate {
	s := o.Shift()
	return Coordinate{c.Left + s.Left, c.Top + s.Top}
}

// Sub returns c shifted by the negation of o.
func (c Coordinate) Sub(o Offset) Coordinate {
	s := o.Shift()
	return Coordinate{c.Left - s.Left, c.Top - s.Top}
}

// AddWidth shifts only the horizontal axis.
func (c Coordinate) AddWidth(w Width) Coordinate {
	return Coordinate{c.Left + float64(w), c.Top}
}

// AddHeight shifts only the vertical axis.
func (c Coordinate) AddHeight(h Height) Coordinate {
	return Coordinate{c.Left, c.Top + float64(h)}
}

// Neg negates both axes.
func (c Coordinate) Neg() Coordinate { return Coordinate{-c.Left, -c.Top} }

// Scale multiplies both axes by a uniform factor.
func (c Coordinate) Scale(s WidthAndHeightScaling) Coordinate {
	return Coordinate{c.Left * float64(s), c.Top * float64(s)}
}

// Size reinterprets the coordinate as a width/height pair.
func (c Coordinate) Size() Size { return Size{Width(c.Left), Height(c.Top)} }

// IsZero reports whether c is the origin.
func (c Coordinate) IsZero() bool { return c.Left == 0 && c.Top == 0 }

// Distance returns the euclidean distance to other.
func (c Coordinate) Distance(other Coordinate) float64 {
	return math.Hypot(c.Left-other.Left, c.Top-other.Top)
}

// RelativeTo returns which of the eight directions c lies in when seen from
// other. Screen Y grows downward, so the vertical delta is flipped before
// taking the angle.
func (c Coordinate) RelativeTo(other Coordinate) Direction {
	dx := c.Left - other.Left
	dy := c.Top - other.Top
	angle := math.Mod(math.Atan2(-dy, dx)*180/math.Pi+360, 360)
	best, bestDiff := Right, math.Inf(1)
	for _, a := range compassAngles {
		if d := angleDifference(angle, a.degrees); d < bestDiff {
			best, bestDiff = a.direction, d
		}
	}
	return best
}

// compassAngles maps counter-clockwise math angles to directions.
var compassAngles = [...]struct {
	degrees   float64
	direction Direction
}{
	{0, Right},
	{45, UpRight},
	{90, Up},
	{135, UpLeft},
	{180, Left},
	{225, DownLeft},
	{270, Down},
	{315, DownRight},
}

func angleDifference(a, b float64) float64 {
	return math.Abs(math.Mod(a-b+540, 360) - 180)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.0f, %.0f)", c.Left, c.Top)
}

// AsAnchorOf treats c as the given anchor point of a box with size s and
// returns the resulting placement. For AnchorCenter the top-left is c - s/2,
// for AnchorBottomRight it is c - s.
func (c Coordinate) AsAnchorOf(s Size, a Anchor) Bounds {
	fx, fy := a.factors()
	return Bounds{
		TopLeftPoint: Coordinate{c.Left - fx*float64(s.Width), c.Top - fy*float64(s.Height)},
		Extent:       s,
	}
}

// AsTopLeftOf places a box of size s with its top-left at c.
func (c Coordinate) AsTopLeftOf(s Size) Bounds { return c.AsAnchorOf(s, AnchorTopLeft) }

// AsTopCenterOf places a box of size s with its top-center at c.
func (c Coordinate) AsTopCenterOf(s Size) Bounds { return c.AsAnchorOf(s, AnchorTopCenter) }

// AsTopRightOf places a box of size s with its top-right at c.
func (c Coordinate) AsTopRightOf(s Size) Bounds { return c.AsAnchorOf(s, AnchorTopRight) }

// AsCenterLeftOf places a box of size s with its center-left at c.
func (c Coordinate) AsCenterLeftOf(s Size) Bounds { return c.AsAnchorOf(s, AnchorCenterLeft) }

// AsCenterOf places a box of size s centered on c.
func (c Coordinate) AsCenterOf(s Size) Bounds { return c.AsAnchorOf(s, AnchorCenter) }

// AsCenterRightOf places a box of size s with its center-right at c.
func (c Coordinate) AsCenterRightOf(s Size) Bounds { return c.AsAnchorOf(s, AnchorCenterRight) }

// AsBottomLeftOf places a box of size s with its bottom-left at c.
func (c Coordinate) AsBottomLeftOf(s Size) Bounds { return c.AsAnchorOf(s, AnchorBottomLeft) }

// AsBottomCenterOf places a box of size s with its bottom-center at c.
func (c Coordinate) AsBottomCenterOf(s Size) Bounds { return c.AsAnchorOf(s, AnchorBottomCenter) }

// AsBottomRightOf places a box of size s with its bottom-right at c.
func (c Coordinate) AsBottomRightOf(s Size) Bounds { return c.AsAnchorOf(s, AnchorBottomRight) }
