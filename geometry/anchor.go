package geometry

import "fmt"

// Anchor names one of the nine reference points of a box.
type Anchor uint8

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorCenterLeft
	AnchorCenter
	AnchorCenterRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

// Anchors lists every anchor in declaration order.
var Anchors = [...]Anchor{
	AnchorTopLeft, AnchorTopCenter, AnchorTopRight,
	AnchorCenterLeft, AnchorCenter, AnchorCenterRight,
	AnchorBottomLeft, AnchorBottomCenter, AnchorBottomRight,
}

var anchorNames = [...]string{
	"top_left", "top_center", "top_right",
	"center_left", "center", "center_right",
	"bottom_left", "bottom_center", "bottom_right",
}

func (a Anchor) String() string {
	if int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("Anchor(%d)", a)
}

// ParseAnchor converts a snake_case anchor name.
func ParseAnchor(s string) (Anchor, error) {
	for i, n := range anchorNames {
		if n == s {
			return Anchor(i), nil
		}
	}
	return 0, fmt.Errorf("geometry: unknown anchor %q", s)
}

// factors returns the fraction of the size between the top-left corner and
// the anchor point on each axis.
func (a Anchor) factors() (fx, fy float64) {
	return float64(a%3) / 2, float64(a/3) / 2
}

// Opposite mirrors the anchor through the center.
func (a Anchor) Opposite() Anchor {
	return AnchorBottomRight - a
}

// Of returns the anchor point of s.
func (a Anchor) Of(s Sizable) Coordinate {
	fx, fy := a.factors()
	tl, sz := s.TopLeft(), s.Size()
	return Coordinate{tl.Left + fx*float64(sz.Width), tl.Top + fy*float64(sz.Height)}
}

// Sizable is anything with a top-left placement and an extent. Every other
// reference point is derived from these two.
type Sizable interface {
	Size() Size
	TopLeft() Coordinate
}

// Bounds is the plain Sizable: a top-left coordinate and a size.
type Bounds struct {
	TopLeftPoint Coordinate
	Extent       Size
}

// BoundsOf copies any Sizable into a Bounds.
func BoundsOf(s Sizable) Bounds {
	return Bounds{TopLeftPoint: s.TopLeft(), Extent: s.Size()}
}

func (b Bounds) Size() Size          { return b.Extent }
func (b Bounds) TopLeft() Coordinate { return b.TopLeftPoint }

// Rectangle converts the bounds to a collision rectangle.
func (b Bounds) Rectangle() Rectangle { return Rectangle{b.TopLeftPoint, b.Extent} }

// LeftEdge returns the x of the left edge.
func LeftEdge(s Sizable) float64 { return s.TopLeft().Left }

// TopEdge returns the y of the top edge.
func TopEdge(s Sizable) float64 { return s.TopLeft().Top }

// RightEdge returns the x of the right edge.
func RightEdge(s Sizable) float64 { return s.TopLeft().Left + float64(s.Size().Width) }

// BottomEdge returns the y of the bottom edge.
func BottomEdge(s Sizable) float64 { return s.TopLeft().Top + float64(s.Size().Height) }

func TopCenter(s Sizable) Coordinate    { return AnchorTopCenter.Of(s) }
func TopRight(s Sizable) Coordinate     { return AnchorTopRight.Of(s) }
func CenterLeft(s Sizable) Coordinate   { return AnchorCenterLeft.Of(s) }
func Center(s Sizable) Coordinate       { return AnchorCenter.Of(s) }
func CenterRight(s Sizable) Coordinate  { return AnchorCenterRight.Of(s) }
func BottomLeft(s Sizable) Coordinate   { return AnchorBottomLeft.Of(s) }
func BottomCenter(s Sizable) Coordinate { return AnchorBottomCenter.Of(s) }
func BottomRight(s Sizable) Coordinate  { return AnchorBottomRight.Of(s) }

// RectangleOf returns the collision rectangle covering s.
func RectangleOf(s Sizable) Rectangle {
	return Rectangle{s.TopLeft(), s.Size()}
}
