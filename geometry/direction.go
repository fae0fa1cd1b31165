package geometry

import (
	"fmt"
	"math"
	"strings"
)

// Direction is one of the eight compass directions a character can face or
// move in.
type Direction uint8

const (
	Down Direction = iota
	Left
	Right
	Up
	UpLeft
	UpRight
	DownLeft
	DownRight
)

var directionNames = [...]string{"down", "left", "right", "up", "up_left", "up_right", "down_left", "down_right"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// ParseDirection converts a direction name such as "up_left". Matching is
// case-insensitive.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range directionNames {
		if n == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("geometry: unknown direction %q", s)
}

var oppositeDirection = [...]Direction{
	Down:      Up,
	Left:      Right,
	Right:     Left,
	Up:        Down,
	UpLeft:    DownRight,
	UpRight:   DownLeft,
	DownLeft:  UpRight,
	DownRight: UpLeft,
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction { return oppositeDirection[d] }

// Diagonal reports whether d is one of the four diagonals.
func (d Direction) Diagonal() bool { return d >= UpLeft }

var directionDegrees = [...]float64{
	Down:      90,
	Left:      180,
	Right:     0,
	Up:        270,
	UpLeft:    225,
	UpRight:   315,
	DownLeft:  135,
	DownRight: 45,
}

// Degrees returns the screen-space angle of d, clockwise from Right.
func (d Direction) Degrees() float64 { return directionDegrees[d] }

// DirectionalOffset is a distance travelled in a direction.
type DirectionalOffset struct {
	Direction Direction
	Offset    float64
}

// Scale multiplies the distance.
func (o DirectionalOffset) Scale(f float64) DirectionalOffset {
	o.Offset *= f
	return o
}

// Neg reverses the distance while keeping the direction.
func (o DirectionalOffset) Neg() DirectionalOffset {
	o.Offset = -o.Offset
	return o
}

// Shift converts the offset into a coordinate delta. Cardinal directions move
// on one axis only; diagonals move offset/√2 on each axis.
func (o DirectionalOffset) Shift() Coordinate {
	switch o.Direction {
	case Up:
		return Coordinate{0, -o.Offset}
	case Down:
		return Coordinate{0, o.Offset}
	case Left:
		return Coordinate{-o.Offset, 0}
	case Right:
		return Coordinate{o.Offset, 0}
	}
	diag := o.Offset / math.Sqrt2
	switch o.Direction {
	case UpLeft:
		return Coordinate{-diag, -diag}
	case UpRight:
		return Coordinate{diag, -diag}
	case DownLeft:
		return Coordinate{-diag, diag}
	default:
		return Coordinate{diag, diag}
	}
}

// Size returns the shift as a width/height pair.
func (o DirectionalOffset) Size() Size { return o.Shift().Size() }
