package geometry

import "math"

// Area is a collidable region used for map collisions, event triggers, and
// movement checks.
type Area interface {
	Sizable
	// Contains reports whether c lies strictly inside the area.
	Contains(c Coordinate) bool
	// Collide reports whether the area overlaps other.
	Collide(other Area) bool
	// Points returns the outline vertices in order.
	Points() []Coordinate
	// Translate returns the area moved by o.
	Translate(o Offset) Area
}

// Rectangle is an axis-aligned area.
type Rectangle struct {
	Corner Coordinate
	Extent Size
}

// NewRectangle returns the rectangle with top-left c and size s.
func NewRectangle(c Coordinate, s Size) Rectangle {
	return Rectangle{Corner: c, Extent: s}
}

func (r Rectangle) Size() Size          { return r.Extent }
func (r Rectangle) TopLeft() Coordinate { return r.Corner }

func (r Rectangle) left() float64   { return r.Corner.Left }
func (r Rectangle) top() float64    { return r.Corner.Top }
func (r Rectangle) right() float64  { return r.Corner.Left + float64(r.Extent.Width) }
func (r Rectangle) bottom() float64 { return r.Corner.Top + float64(r.Extent.Height) }

// Contains reports whether c is strictly inside r. Points on the edge are
// outside.
func (r Rectangle) Contains(c Coordinate) bool {
	return r.left() < c.Left && c.Left < r.right() &&
		r.top() < c.Top && c.Top < r.bottom()
}

// Collide reports whether r overlaps other. Two rectangles that only share an
// edge do not collide; non-rectangular areas are tested as polygons.
func (r Rectangle) Collide(other Area) bool {
	o, ok := other.(Rectangle)
	if !ok {
		return r.Polygon().Collide(other)
	}
	return r.left() < o.right() && r.right() > o.left() &&
		r.top() < o.bottom() && r.bottom() > o.top()
}

// Points returns the four corners clockwise from the top-left.
func (r Rectangle) Points() []Coordinate {
	return []Coordinate{
		r.Corner,
		{r.right(), r.top()},
		{r.right(), r.bottom()},
		{r.left(), r.bottom()},
	}
}

// Polygon converts r into its four-point polygon.
func (r Rectangle) Polygon() Polygon { return Polygon{points: r.Points()} }

// Translate returns r moved by o.
func (r Rectangle) Translate(o Offset) Area { return r.Moved(o) }

// Moved is Translate with a concrete return type.
func (r Rectangle) Moved(o Offset) Rectangle {
	r.Corner = r.Corner.Add(o)
	return r
}

// Grow pads every edge of r outward.
func (r Rectangle) Grow(p Padding) Rectangle {
	return Rectangle{
		Corner: Coordinate{r.Corner.Left - float64(p.Left), r.Corner.Top - float64(p.Top)},
		Extent: r.Extent.Add(p.Size()),
	}
}

// Union returns the smallest rectangle covering r and o.
func (r Rectangle) Union(o Rectangle) Rectangle {
	minX, minY := math.Min(r.left(), o.left()), math.Min(r.top(), o.top())
	maxX, maxY := math.Max(r.right(), o.right()), math.Max(r.bottom(), o.bottom())
	return Rectangle{Coordinate{minX, minY}, SizeOf(maxX-minX, maxY-minY)}
}

// Polygon is a closed outline. Collision uses the separating axis theorem,
// which is exact for convex outlines and conservative for concave ones.
type Polygon struct {
	points []Coordinate
}

// NewPolygon builds a polygon from its vertices. The last vertex is joined
// back to the first.
func NewPolygon(points ...Coordinate) Polygon {
	return Polygon{points: append([]Coordinate(nil), points...)}
}

func (p Polygon) Points() []Coordinate { return p.points }

// Bounds returns the polygon's bounding rectangle, never smaller than 1x1.
func (p Polygon) Bounds() Rectangle { return BoundingRectangle(p.points) }

func (p Polygon) Size() Size          { return p.Bounds().Extent }
func (p Polygon) TopLeft() Coordinate { return p.Bounds().Corner }

// Contains uses the crossing-number test: a horizontal ray is cast from c and
// an odd number of edge crossings means inside.
func (p Polygon) Contains(c Coordinate) bool {
	inside := false
	n := len(p.points)
	for i := range n {
		a, b := p.points[i], p.points[(i+1)%n]
		if (a.Top > c.Top) != (b.Top > c.Top) {
			x := (b.Left-a.Left)*(c.Top-a.Top)/(b.Top-a.Top+1e-12) + a.Left
			if c.Left < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Collide projects both outlines onto every edge normal of either polygon.
// A separating axis means no collision. Projections that only touch are
// separated, the same as rectangles sharing an edge.
func (p Polygon) Collide(other Area) bool {
	q := other.Points()
	if len(p.points) == 0 || len(q) == 0 {
		return false
	}
	for _, outline := range [2][]Coordinate{p.points, q} {
		n := len(outline)
		for i := range n {
			a, b := outline[i], outline[(i+1)%n]
			axis := Coordinate{a.Top - b.Top, b.Left - a.Left}
			if axis.IsZero() {
				continue
			}
			minA, maxA := project(axis, p.points)
			minB, maxB := project(axis, q)
			if maxA <= minB || maxB <= minA {
				return false
			}
		}
	}
	return true
}

func project(axis Coordinate, points []Coordinate) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, pt := range points {
		d := pt.Left*axis.Left + pt.Top*axis.Top
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// Translate returns the polygon moved by o.
func (p Polygon) Translate(o Offset) Area {
	s := o.Shift()
	moved := make([]Coordinate, len(p.points))
	for i, pt := range p.points {
		moved[i] = pt.Add(s)
	}
	return Polygon{points: moved}
}

// Polyline is an open chain of points, used for NPC walking paths.
type Polyline struct {
	points []Coordinate
}

// NewPolyline builds a polyline from its vertices.
func NewPolyline(points ...Coordinate) Polyline {
	return Polyline{points: append([]Coordinate(nil), points...)}
}

func (l Polyline) Points() []Coordinate { return l.points }

// Length returns the length of the path including the closing segment from
// the last point back to the first, which is the distance a cyclic walk
// covers per lap.
func (l Polyline) Length() float64 {
	total := 0.0
	n := len(l.points)
	for i := range n {
		total += l.points[i].Distance(l.points[(i+1)%n])
	}
	return total
}

// OpenLength returns the length without the closing segment.
func (l Polyline) OpenLength() float64 {
	total := 0.0
	for i := 1; i < len(l.points); i++ {
		total += l.points[i-1].Distance(l.points[i])
	}
	return total
}

// Bounds returns the bounding rectangle, never smaller than 1x1.
func (l Polyline) Bounds() Rectangle { return BoundingRectangle(l.points) }

func (l Polyline) Size() Size          { return l.Bounds().Extent }
func (l Polyline) TopLeft() Coordinate { return l.Bounds().Corner }

// Translate returns the polyline moved by o.
func (l Polyline) Translate(o Offset) Polyline {
	s := o.Shift()
	moved := make([]Coordinate, len(l.points))
	for i, pt := range l.points {
		moved[i] = pt.Add(s)
	}
	return Polyline{points: moved}
}

// BoundingRectangle returns the axis-aligned box around points. The result is
// at least 1x1 so degenerate inputs (a single point, a straight line) still
// have a surface to draw on.
func BoundingRectangle(points []Coordinate) Rectangle {
	if len(points) == 0 {
		return Rectangle{Extent: SizeOf(1, 1)}
	}
	minX, minY := points[0].Left, points[0].Top
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.Left), math.Max(maxX, p.Left)
		minY, maxY = math.Min(minY, p.Top), math.Max(maxY, p.Top)
	}
	return Rectangle{
		Corner: Coordinate{minX, minY},
		Extent: SizeOf(math.Max(maxX-minX, 1), math.Max(maxY-minY, 1)),
	}
}
