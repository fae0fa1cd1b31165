package tilemap

import (
	"errors"
	"fmt"

	"github.com/lafriks/go-tiled"

	"github.com/phanxgames/thicket/geometry"
)

// ErrObjectNotFound is returned when no map object has the requested name.
var ErrObjectNotFound = errors.New("tilemap: object not found")

// Object is a map object in map pixels.
type Object struct {
	Name  string
	Class string
	// Bounds is the authored rectangle; point objects have an empty extent.
	Bounds geometry.Rectangle
	// Points is set for polygons and polylines, already offset by the object
	// position.
	Points     []geometry.Coordinate
	Closed     bool
	Properties map[string]string
}

func newObject(o *tiled.Object, class string, shift geometry.Coordinate) Object {
	at := geometry.Coordinate{Left: o.X, Top: o.Y}.Add(shift)
	out := Object{
		Name:       o.Name,
		Class:      class,
		Bounds:     geometry.NewRectangle(at, geometry.SizeOf(o.Width, o.Height)),
		Properties: map[string]string{},
	}
	for _, p := range o.Properties {
		out.Properties[p.Name] = p.Value
	}
	switch {
	case len(o.Polygons) > 0 && o.Polygons[0].Points != nil:
		out.Points = offsetPoints(*o.Polygons[0].Points, at)
		out.Closed = true
	case len(o.PolyLines) > 0 && o.PolyLines[0].Points != nil:
		out.Points = offsetPoints(*o.PolyLines[0].Points, at)
	}
	return out
}

func offsetPoints(pts tiled.Points, at geometry.Coordinate) []geometry.Coordinate {
	out := make([]geometry.Coordinate, 0, len(pts))
	for _, p := range pts {
		out = append(out, geometry.Coordinate{Left: p.X + at.Left, Top: p.Y + at.Top})
	}
	return out
}

// Area returns the collidable shape: a polygon for polygon and polyline
// objects, the rectangle otherwise.
func (o Object) Area() geometry.Area {
	if len(o.Points) > 0 {
		return geometry.NewPolygon(o.Points...)
	}
	return o.Bounds
}

// Path returns the polyline of a polygon or polyline object.
func (o Object) Path() (geometry.Polyline, bool) {
	if len(o.Points) < 2 {
		return geometry.Polyline{}, false
	}
	return geometry.NewPolyline(o.Points...), true
}

// Coordinate is where a character placed on the object stands: the bottom
// centre of its rectangle, or the first path point.
func (o Object) Coordinate() geometry.Coordinate {
	if len(o.Points) > 0 {
		return o.Points[0]
	}
	return geometry.BottomCenter(o.Bounds)
}

// Object returns the first object named name.
func (l Loader) Object(name string) (Object, error) {
	for _, o := range l.objects {
		if o.Name == name {
			return o, nil
		}
	}
	return Object{}, fmt.Errorf("%w: %q", ErrObjectNotFound, name)
}

// Objects returns every map object in document order.
func (l Loader) Objects() []Object { return l.objects }

// ObjectsByClass returns the objects whose class is class.
func (l Loader) ObjectsByClass(class string) []Object {
	var out []Object
	for _, o := range l.objects {
		if o.Class == class {
			out = append(out, o)
		}
	}
	return out
}
