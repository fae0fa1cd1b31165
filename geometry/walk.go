package geometry

import "math"

// Walk moves a point along a polyline at a constant speed. A cyclic walk
// loops back from the last point to the first forever; a non-cyclic walk
// stops on the last point.
type Walk struct {
	Path   Polyline
	Speed  float64 // pixels per millisecond
	Cyclic bool

	at     Coordinate
	target int // index of the point being walked towards; -1 once complete
}

// NewWalk starts a walk at the first point of path. A path needs at least
// two points.
func NewWalk(path Polyline, speed float64, cyclic bool) Walk {
	if len(path.points) < 2 {
		panic("thicket: walk path needs at least two points")
	}
	return Walk{Path: path, Speed: speed, Cyclic: cyclic, at: path.points[0], target: 1}
}

// Coordinate returns the current position.
func (w Walk) Coordinate() Coordinate { return w.at }

// Complete reports whether a non-cyclic walk reached its last point.
func (w Walk) Complete() bool { return w.target < 0 }

// Direction returns the heading of the current path segment.
func (w Walk) Direction() Direction {
	pts := w.Path.points
	if w.target < 0 {
		return pts[len(pts)-1].RelativeTo(pts[len(pts)-2])
	}
	prev := w.target - 1
	if prev < 0 {
		prev = len(pts) - 1
	}
	return pts[w.target].RelativeTo(pts[prev])
}

// Reset returns the walk at its first point.
func (w Walk) Reset() Walk {
	return NewWalk(w.Path, w.Speed, w.Cyclic)
}

// Tick advances the walk by Speed*dt pixels. A walk whose points all
// coincide stays where it is.
func (w Walk) Tick(dt float64) Walk {
	if w.Complete() {
		return w
	}
	pts := w.Path.points
	dist := w.Speed * dt
	if dist <= 0 {
		return w
	}
	if !w.Cyclic && dist >= w.remaining() {
		w.at = pts[len(pts)-1]
		w.target = -1
		return w
	}
	if w.Cyclic {
		lap := w.Path.Length()
		if lap <= 0 {
			// Every point coincides; there is nowhere to go.
			return w
		}
		dist = math.Mod(dist, lap)
	}
	// dist is under one lap, so each point is passed at most once.
	for range len(pts) + 1 {
		if dist <= 0 {
			break
		}
		next := pts[w.target]
		toNext := w.at.Distance(next)
		if dist < toNext {
			f := dist / toNext
			w.at = Coordinate{
				w.at.Left + (next.Left-w.at.Left)*f,
				w.at.Top + (next.Top-w.at.Top)*f,
			}
			break
		}
		dist -= toNext
		w.at = next
		w.target = (w.target + 1) % len(pts)
	}
	return w
}

// remaining returns the distance left on a non-cyclic walk.
func (w Walk) remaining() float64 {
	pts := w.Path.points
	total := w.at.Distance(pts[w.target])
	for i := w.target + 1; i < len(pts); i++ {
		total += pts[i-1].Distance(pts[i])
	}
	return total
}
