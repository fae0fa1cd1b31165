package draw

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/thicket/geometry"
)

var whitePixel *ebiten.Image

// white returns a 1x1 white source image for triangle fills.
func white() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// fillPath fills p onto dst in c.
func fillPath(dst *ebiten.Image, p *vector.Path, c Color) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	a := float32(c.A) / 255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(c.R) / 255 * a
		vs[i].ColorG = float32(c.G) / 255 * a
		vs[i].ColorB = float32(c.B) / 255 * a
		vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, is, white(), op)
}

// FillRectangle returns a rectangle of size s filled with c. A positive
// radius rounds the corners.
func FillRectangle(s geometry.Size, c Color, radius float64) Drawing {
	d := Blank(s)
	if radius <= 0 {
		d.img.Fill(c)
		return d
	}
	w, h := float32(d.img.Bounds().Dx()), float32(d.img.Bounds().Dy())
	r := float32(math.Min(radius, math.Min(float64(w), float64(h))/2))
	var p vector.Path
	p.MoveTo(r, 0)
	p.LineTo(w-r, 0)
	p.ArcTo(w, 0, w, r, r)
	p.LineTo(w, h-r)
	p.ArcTo(w, h, w-r, h, r)
	p.LineTo(r, h)
	p.ArcTo(0, h, 0, h-r, r)
	p.LineTo(0, r)
	p.ArcTo(0, 0, r, 0, r)
	p.Close()
	fillPath(d.img, &p, c)
	return d
}

// FillPolygon returns the polygon through points filled with c, placed at
// the points' bounding box.
func FillPolygon(points []geometry.Coordinate, c Color) DrawingOnScreen {
	box := geometry.BoundingRectangle(points)
	d := Blank(box.Extent)
	if len(points) >= 3 {
		var p vector.Path
		for i, pt := range points {
			x, y := float32(pt.Left-box.Corner.Left), float32(pt.Top-box.Corner.Top)
			if i == 0 {
				p.MoveTo(x, y)
			} else {
				p.LineTo(x, y)
			}
		}
		p.Close()
		fillPath(d.img, &p, c)
	}
	return DrawingOnScreen{At: box.Corner, Drawing: d}
}

// StrokePolygon outlines the closed polygon through points.
func StrokePolygon(points []geometry.Coordinate, c Color, width float64) DrawingOnScreen {
	return stroke(points, true, c, width)
}

// StrokePolyline draws the open chain through points.
func StrokePolyline(points []geometry.Coordinate, c Color, width float64) DrawingOnScreen {
	return stroke(points, false, c, width)
}

// StrokeLine draws a single segment.
func StrokeLine(from, to geometry.Coordinate, c Color, width float64) DrawingOnScreen {
	return stroke([]geometry.Coordinate{from, to}, false, c, width)
}

func stroke(points []geometry.Coordinate, closed bool, c Color, width float64) DrawingOnScreen {
	box := geometry.BoundingRectangle(points).Grow(geometry.UniformPadding(width))
	d := Blank(box.Extent)
	n := len(points)
	segments := n - 1
	if closed {
		segments = n
	}
	for i := 0; i < segments; i++ {
		a, b := points[i], points[(i+1)%n]
		vector.StrokeLine(d.img,
			float32(a.Left-box.Corner.Left), float32(a.Top-box.Corner.Top),
			float32(b.Left-box.Corner.Left), float32(b.Top-box.Corner.Top),
			float32(width), c, true)
	}
	return DrawingOnScreen{At: box.Corner, Drawing: d}
}

// StrokeArea outlines any area, used by the debug overlays.
func StrokeArea(a geometry.Area, c Color) DrawingOnScreen {
	return StrokePolygon(a.Points(), c, 1)
}

// FillArea fills any area with c.
func FillArea(a geometry.Area, c Color) DrawingOnScreen {
	if r, ok := a.(geometry.Rectangle); ok {
		return DrawingOnScreen{At: r.Corner, Drawing: FillRectangle(r.Extent, c, 0)}
	}
	return FillPolygon(a.Points(), c)
}
