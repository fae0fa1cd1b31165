package draw

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// DrawingOnScreen is a drawing placed at a screen coordinate. It is the unit
// every sprite flattens into before rendering.
type DrawingOnScreen struct {
	At      geometry.Coordinate
	Drawing Drawing
}

func (d DrawingOnScreen) Size() geometry.Size          { return d.Drawing.Size() }
func (d DrawingOnScreen) TopLeft() geometry.Coordinate { return d.At }

// Rectangle returns the screen area covered by the drawing.
func (d DrawingOnScreen) Rectangle() geometry.Rectangle {
	return geometry.NewRectangle(d.At, d.Size())
}

// Shift moves the placement by o.
func (d DrawingOnScreen) Shift(o geometry.Offset) DrawingOnScreen {
	d.At = d.At.Add(o)
	return d
}

// WithAlpha replaces the drawing's render alpha.
func (d DrawingOnScreen) WithAlpha(a uint8) DrawingOnScreen {
	d.Drawing = d.Drawing.WithAlpha(a)
	return d
}

// Blur returns the placement with its drawing blurred.
func (d DrawingOnScreen) Blur(radius float64) DrawingOnScreen {
	d.Drawing = d.Drawing.Blur(radius)
	return d
}

// ScaleAround resizes the drawing and moves it so that its position relative
// to origin scales with it.
func (d DrawingOnScreen) ScaleAround(origin geometry.Coordinate, s geometry.WidthAndHeightScaling) DrawingOnScreen {
	rel := d.At.Sub(origin).Scale(s)
	d.At = origin.Add(rel)
	d.Drawing = d.Drawing.Scale(s)
	return d
}

// Render draws onto target.
func (d DrawingOnScreen) Render(target *ebiten.Image) {
	if d.Drawing.img == nil || d.Drawing.alpha == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(d.At.Left, d.At.Top)
	op.ColorScale = colorScale(d.Drawing.alpha)
	target.DrawImage(d.Drawing.img, &op)
}

// RenderAll draws every placement in order.
func RenderAll(target *ebiten.Image, ds []DrawingOnScreen) {
	for _, d := range ds {
		d.Render(target)
	}
}

// ShiftAll moves every placement by o.
func ShiftAll(ds []DrawingOnScreen, o geometry.Offset) []DrawingOnScreen {
	out := make([]DrawingOnScreen, len(ds))
	for i, d := range ds {
		out[i] = d.Shift(o)
	}
	return out
}

// Bounds returns the union box of ds. An empty slice has an empty box at the
// origin.
func Bounds(ds []DrawingOnScreen) geometry.Bounds {
	if len(ds) == 0 {
		return geometry.Bounds{}
	}
	r := ds[0].Rectangle()
	for _, d := range ds[1:] {
		r = r.Union(d.Rectangle())
	}
	return geometry.Bounds{TopLeftPoint: r.Corner, Extent: r.Extent}
}

// Placed is a fixed list of placements used as a sprite. Its drawings move
// with the origin, so Placed(ds).DrawingOnScreens(Origin) is ds.
type Placed []DrawingOnScreen

func (p Placed) Size() geometry.Size          { return Bounds(p).Extent }
func (p Placed) TopLeft() geometry.Coordinate { return Bounds(p).TopLeftPoint }

func (p Placed) DrawingOnScreens(origin geometry.Coordinate) []DrawingOnScreen {
	return ShiftAll(p, origin)
}

func (p Placed) Tick(timing.Millisecond) Sprite { return p }
func (p Placed) Complete() bool                 { return true }
