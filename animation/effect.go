package animation

import (
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/geometry"
)

// Progress is the eased position of a timed animation. Completed runs from 0
// to 1 and Remaining is its complement.
type Progress struct {
	Completed float64
	Remaining float64
}

// Effect transforms the drawings of a timed animation placed at origin.
type Effect func(ds []draw.DrawingOnScreen, origin geometry.Coordinate, p Progress) []draw.DrawingOnScreen

func mapDrawings(ds []draw.DrawingOnScreen, f func(draw.DrawingOnScreen) draw.DrawingOnScreen) []draw.DrawingOnScreen {
	out := make([]draw.DrawingOnScreen, len(ds))
	for i, d := range ds {
		out[i] = f(d)
	}
	return out
}

func scaleOffset(o geometry.Offset, f float64) geometry.Coordinate {
	return o.Shift().Scale(geometry.WidthAndHeightScaling(f))
}

// MoveFrom slides the drawings from their place to offset away from it.
func MoveFrom(offset geometry.Offset) Effect {
	return func(ds []draw.DrawingOnScreen, _ geometry.Coordinate, p Progress) []draw.DrawingOnScreen {
		shift := scaleOffset(offset, min(p.Completed, 1))
		return draw.ShiftAll(ds, shift)
	}
}

// MoveTo slides the drawings from offset behind their place into it.
func MoveTo(offset geometry.Offset) Effect {
	return func(ds []draw.DrawingOnScreen, _ geometry.Coordinate, p Progress) []draw.DrawingOnScreen {
		return draw.ShiftAll(ds, scaleOffset(offset, -p.Remaining))
	}
}

// ScaleTo grows or shrinks the drawings from their natural size to s, around
// the animation origin.
func ScaleTo(s float64) Effect {
	return func(ds []draw.DrawingOnScreen, origin geometry.Coordinate, p Progress) []draw.DrawingOnScreen {
		return scaleAll(ds, origin, 1+(s-1)*p.Completed)
	}
}

// ScaleFrom starts the drawings at scale s and returns them to their natural
// size.
func ScaleFrom(s float64) Effect {
	return func(ds []draw.DrawingOnScreen, origin geometry.Coordinate, p Progress) []draw.DrawingOnScreen {
		return scaleAll(ds, origin, s+(1-s)*p.Completed)
	}
}

func scaleAll(ds []draw.DrawingOnScreen, origin geometry.Coordinate, f float64) []draw.DrawingOnScreen {
	if f == 1 {
		return ds
	}
	sc := geometry.WidthAndHeightScaling(max(f, 0))
	return mapDrawings(ds, func(d draw.DrawingOnScreen) draw.DrawingOnScreen {
		return d.ScaleAround(origin, sc)
	})
}

// Blur ramps a blur radius from one value to another.
func Blur(from, to float64) Effect {
	return func(ds []draw.DrawingOnScreen, _ geometry.Coordinate, p Progress) []draw.DrawingOnScreen {
		r := from + p.Completed*(to-from)
		return mapDrawings(ds, func(d draw.DrawingOnScreen) draw.DrawingOnScreen {
			return d.Blur(r)
		})
	}
}

// Compose applies effects in order over the same progress.
func Compose(effects ...Effect) Effect {
	return func(ds []draw.DrawingOnScreen, origin geometry.Coordinate, p Progress) []draw.DrawingOnScreen {
		for _, e := range effects {
			if e != nil {
				ds = e(ds, origin, p)
			}
		}
		return ds
	}
}
