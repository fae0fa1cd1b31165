// Package draw holds the raster side of thicket: drawings, their on-screen
// placements, sprite composition, text and fonts.
//
// Every value here is immutable. Transforming a Drawing (crop, flip, scale,
// blur) produces a new Drawing; the GPU image it wraps is never drawn into
// after construction.
package draw

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// Drawing is a handle to a rectangular raster surface with a render-time
// alpha.
type Drawing struct {
	img *ebiten.Image
	// src holds the decoded pixels when they are known on the CPU side. It backs
	// Trim and VisibleRectangle without reading back from the GPU.
	src   image.Image
	alpha uint8
}

// NewDrawing wraps an existing image.
func NewDrawing(img *ebiten.Image) Drawing {
	return Drawing{img: img, alpha: 255}
}

// NewDrawingFromImage uploads a decoded image and keeps its pixels for
// analysis.
func NewDrawingFromImage(src image.Image) Drawing {
	return Drawing{img: ebiten.NewImageFromImage(src), src: src, alpha: 255}
}

// Blank returns a fully transparent drawing of the given size.
func Blank(s geometry.Size) Drawing {
	w, h := pixelSize(s)
	return NewDrawing(ebiten.NewImage(w, h))
}

func pixelSize(s geometry.Size) (int, int) {
	s = s.Clamped()
	return max(int(math.Ceil(s.W())), 1), max(int(math.Ceil(s.H())), 1)
}

// Image returns the wrapped surface.
func (d Drawing) Image() *ebiten.Image { return d.img }

// Alpha returns the render-time alpha.
func (d Drawing) Alpha() uint8 { return d.alpha }

// Size returns the pixel dimensions.
func (d Drawing) Size() geometry.Size {
	if d.img == nil {
		return geometry.Size{}
	}
	b := d.img.Bounds()
	return geometry.SizeOf(float64(b.Dx()), float64(b.Dy()))
}

// TopLeft is always the origin; a Drawing has no placement of its own.
func (d Drawing) TopLeft() geometry.Coordinate { return geometry.Origin }

// DrawingOnScreens places the drawing with its top-left at origin.
func (d Drawing) DrawingOnScreens(origin geometry.Coordinate) []DrawingOnScreen {
	return []DrawingOnScreen{{At: origin, Drawing: d}}
}

func (d Drawing) Tick(timing.Millisecond) Sprite { return d }
func (d Drawing) Complete() bool                 { return true }

// WithAlpha returns the drawing rendered at alpha a.
func (d Drawing) WithAlpha(a uint8) Drawing {
	d.alpha = a
	return d
}

// Crop returns the part of d inside r, given in the drawing's own pixel
// space. The result shares the original surface.
func (d Drawing) Crop(r geometry.Rectangle) Drawing {
	base := d.img.Bounds().Min
	rect := image.Rect(
		base.X+int(r.Corner.Left), base.Y+int(r.Corner.Top),
		base.X+int(r.Corner.Left+r.Extent.W()), base.Y+int(r.Corner.Top+r.Extent.H()),
	).Intersect(d.img.Bounds())
	out := Drawing{img: d.img.SubImage(rect).(*ebiten.Image), alpha: d.alpha}
	if sub, ok := d.src.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		srcMin := d.src.Bounds().Min
		out.src = sub.SubImage(rect.Sub(base).Add(srcMin))
	}
	return out
}

// Cut removes p from each edge.
func (d Drawing) Cut(p geometry.Padding) Drawing {
	return d.Crop(geometry.NewRectangle(p.TopLeft(), d.Size().Sub(p.Size()).Clamped()))
}

// Flip mirrors the drawing horizontally, vertically, or both.
func (d Drawing) Flip(horizontal, vertical bool) Drawing {
	if !horizontal && !vertical {
		return d
	}
	w, h := d.img.Bounds().Dx(), d.img.Bounds().Dy()
	sx, sy, tx, ty := 1.0, 1.0, 0.0, 0.0
	if horizontal {
		sx, tx = -1, float64(w)
	}
	if vertical {
		sy, ty = -1, float64(h)
	}
	dst := ebiten.NewImage(w, h)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(tx, ty)
	dst.DrawImage(d.img, &op)
	out := Drawing{img: dst, alpha: d.alpha}
	if d.src != nil {
		out.src = flipPixels(d.src, horizontal, vertical)
	}
	return out
}

func flipPixels(src image.Image, horizontal, vertical bool) image.Image {
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := range b.Dy() {
		for x := range b.Dx() {
			sx, sy := x, y
			if horizontal {
				sx = b.Dx() - 1 - x
			}
			if vertical {
				sy = b.Dy() - 1 - y
			}
			out.Set(x, y, src.At(b.Min.X+sx, b.Min.Y+sy))
		}
	}
	return out
}

// Rotate turns the drawing clockwise by degrees around its center. The
// result is sized to the rotated bounding box.
func (d Drawing) Rotate(degrees float64) Drawing {
	w, h := float64(d.img.Bounds().Dx()), float64(d.img.Bounds().Dy())
	rad := degrees * math.Pi / 180
	sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))
	// Round away float noise so a quarter turn keeps exact pixel sizes.
	nw := math.Round((w*cos+h*sin)*1e6) / 1e6
	nh := math.Round((w*sin+h*cos)*1e6) / 1e6
	dst := Blank(geometry.SizeOf(nw, nh)).img
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(rad)
	op.GeoM.Translate(float64(dst.Bounds().Dx())/2, float64(dst.Bounds().Dy())/2)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(d.img, &op)
	return Drawing{img: dst, alpha: d.alpha}
}

// Scale resizes the drawing along the axes s names.
func (d Drawing) Scale(s geometry.Scaling) Drawing {
	if s.X() == 1 && s.Y() == 1 {
		return d
	}
	dst := Blank(d.Size().Scale(s)).img
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(s.X(), s.Y())
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(d.img, &op)
	return Drawing{img: dst, alpha: d.alpha}
}

// Background returns d drawn over a solid fill of c.
func (d Drawing) Background(c Color) Drawing {
	w, h := d.img.Bounds().Dx(), d.img.Bounds().Dy()
	dst := ebiten.NewImage(w, h)
	dst.Fill(c)
	dst.DrawImage(d.img, nil)
	return Drawing{img: dst, alpha: d.alpha}
}

// Blur applies a Kawase blur of the given radius in pixels.
func (d Drawing) Blur(radius float64) Drawing {
	r := int(math.Round(radius))
	if r <= 0 {
		return d
	}
	b := d.img.Bounds()
	dst := ebiten.NewImage(b.Dx(), b.Dy())
	kawase(d.img, dst, r)
	return Drawing{img: dst, alpha: d.alpha}
}

// kawase blurs src into dst with log2(radius) halving passes followed by the
// same number of doubling passes. Linear filtering during each DrawImage does
// the averaging.
func kawase(src, dst *ebiten.Image, radius int) {
	passes := max(int(math.Ceil(math.Log2(float64(radius)))), 1)
	var op ebiten.DrawImageOptions
	op.Filter = ebiten.FilterLinear
	scaleInto := func(to, from *ebiten.Image) {
		op.GeoM.Reset()
		op.GeoM.Scale(
			float64(to.Bounds().Dx())/float64(from.Bounds().Dx()),
			float64(to.Bounds().Dy())/float64(from.Bounds().Dy()),
		)
		to.DrawImage(from, &op)
	}

	chain := make([]*ebiten.Image, passes)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	current := src
	for i := range chain {
		w, h = max(w/2, 1), max(h/2, 1)
		chain[i] = ebiten.NewImage(w, h)
		scaleInto(chain[i], current)
		current = chain[i]
	}
	for i := passes - 2; i >= 0; i-- {
		chain[i].Clear()
		scaleInto(chain[i], current)
		current = chain[i]
	}
	scaleInto(dst, current)
}

// VisibleRectangle returns the smallest rectangle holding every pixel with a
// non-zero alpha, in the drawing's own space. Without decoded pixels the whole
// drawing is reported.
func (d Drawing) VisibleRectangle() geometry.Rectangle {
	if d.src == nil {
		return geometry.NewRectangle(geometry.Origin, d.Size())
	}
	r := visibleBounds(d.src)
	return geometry.NewRectangle(
		geometry.Coordinate{Left: float64(r.Min.X), Top: float64(r.Min.Y)},
		geometry.SizeOf(float64(r.Dx()), float64(r.Dy())),
	)
}

// Trim crops away fully transparent edges.
func (d Drawing) Trim() Drawing {
	r := d.VisibleRectangle()
	if r.Extent.Empty() || r.Extent == d.Size() {
		return d
	}
	return d.Crop(r)
}

// visibleBounds scans img for non-transparent pixels and returns their
// bounds relative to img's own minimum point.
func visibleBounds(img image.Image) image.Rectangle {
	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1).Sub(b.Min)
}

// colorScale converts an alpha byte into the multiplier Ebitengine applies
// to premultiplied colors.
func colorScale(a uint8) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.ScaleAlpha(float32(a) / 255)
	return cs
}
