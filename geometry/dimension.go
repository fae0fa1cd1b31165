// Package geometry provides the immutable 2D value types used for placement,
// collision, and movement: coordinates, sizes, anchors, directions, and
// rectangle/polygon/polyline areas.
//
// Horizontal and vertical quantities are separate types ([Width], [Height])
// so a vertical value cannot be added to a horizontal axis by accident.
// Scaling is likewise split into [WidthScaling], [HeightScaling], and
// [WidthAndHeightScaling].
package geometry

import "fmt"

// Width is a horizontal length in pixels.
type Width float64

// Height is a vertical length in pixels.
type Height float64

// Size is a width and height pair. Negative components are allowed in
// arithmetic but clamped to zero wherever a size becomes a drawable extent.
type Size struct {
	Width  Width
	Height Height
}

// ZeroSize is the empty size.
var ZeroSize = Size{}

// SizeOf builds a Size from raw pixel values.
func SizeOf(w, h float64) Size {
	return Size{Width: Width(w), Height: Height(h)}
}

// W returns the width as a float64.
func (s Size) W() float64 { return float64(s.Width) }

// H returns the height as a float64.
func (s Size) H() float64 { return float64(s.Height) }

// Add returns the component-wise sum.
func (s Size) Add(o Size) Size {
	return Size{s.Width + o.Width, s.Height + o.Height}
}

// Sub returns the component-wise difference.
func (s Size) Sub(o Size) Size {
	return Size{s.Width - o.Width, s.Height - o.Height}
}

// Neg negates both components.
func (s Size) Neg() Size { return Size{-s.Width, -s.Height} }

// Half returns the size divided by two on both axes.
func (s Size) Half() Size { return Size{s.Width / 2, s.Height / 2} }

// Scale scales the axes named by the scaling. A WidthScaling leaves the
// height untouched and vice versa.
func (s Size) Scale(sc Scaling) Size {
	return Size{Width(float64(s.Width) * sc.X()), Height(float64(s.Height) * sc.Y())}
}

// Clamped returns the size with negative components raised to zero.
func (s Size) Clamped() Size {
	return Size{max(s.Width, 0), max(s.Height, 0)}
}

// AtLeast returns the size raised component-wise to m.
func (s Size) AtLeast(m Size) Size {
	return Size{max(s.Width, m.Width), max(s.Height, m.Height)}
}

// Max returns the component-wise maximum of s and o.
func (s Size) Max(o Size) Size {
	return Size{max(s.Width, o.Width), max(s.Height, o.Height)}
}

// Empty reports whether either axis is zero or negative.
func (s Size) Empty() bool { return s.Width <= 0 || s.Height <= 0 }

// Shift converts the size into a coordinate offset; it satisfies Offset.
func (s Size) Shift() Coordinate { return Coordinate{float64(s.Width), float64(s.Height)} }

func (s Size) String() string {
	return fmt.Sprintf("%.0fx%.0f", float64(s.Width), float64(s.Height))
}

// Scaling is implemented by the three scaling types. X and Y return the
// factor applied to each axis.
type Scaling interface {
	X() float64
	Y() float64
	// Value is the single factor the scaling carries.
	Value() float64
	// With returns a scaling of the same kind with a different factor.
	With(v float64) Scaling
}

// WidthScaling scales only the horizontal axis.
type WidthScaling float64

func (s WidthScaling) X() float64             { return float64(s) }
func (s WidthScaling) Y() float64             { return 1 }
func (s WidthScaling) Value() float64         { return float64(s) }
func (s WidthScaling) With(v float64) Scaling { return WidthScaling(v) }

// HeightScaling scales only the vertical axis.
type HeightScaling float64

func (s HeightScaling) X() float64             { return 1 }
func (s HeightScaling) Y() float64             { return float64(s) }
func (s HeightScaling) Value() float64         { return float64(s) }
func (s HeightScaling) With(v float64) Scaling { return HeightScaling(v) }

// WidthAndHeightScaling scales both axes uniformly.
type WidthAndHeightScaling float64

func (s WidthAndHeightScaling) X() float64             { return float64(s) }
func (s WidthAndHeightScaling) Y() float64             { return float64(s) }
func (s WidthAndHeightScaling) Value() float64         { return float64(s) }
func (s WidthAndHeightScaling) With(v float64) Scaling { return WidthAndHeightScaling(v) }

// Padding is space around the four edges of a rectangle.
type Padding struct {
	Top    Height
	Left   Width
	Bottom Height
	Right  Width
}

// PaddingFor pads the left/right edges by w and the top/bottom edges by h.
func PaddingFor(w Width, h Height) Padding {
	return Padding{Top: h, Left: w, Bottom: h, Right: w}
}

// UniformPadding pads every edge by v pixels.
func UniformPadding(v float64) Padding {
	return PaddingFor(Width(v), Height(v))
}

// Size returns the total horizontal and vertical padding.
func (p Padding) Size() Size {
	return Size{p.Left + p.Right, p.Top + p.Bottom}
}

// TopLeft returns the offset from the outer to the inner top-left corner.
func (p Padding) TopLeft() Coordinate {
	return Coordinate{float64(p.Left), float64(p.Top)}
}
