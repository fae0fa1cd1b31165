// Package character implements the player and NPCs walking on a map.
//
// A character is a [Drawing] (how it looks for each direction) placed on
// screen by an [OnScreen] value whose Coordinate is the bottom centre of the
// sprite. [MovingCharacter] adds map collisions, [Player] reads logical keys,
// [Npc] carries event start rules and [MovingNpc] walks a path.
package character

import (
	"github.com/phanxgames/thicket/animation"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// Drawing is the look of a character for any direction and movement state.
type Drawing interface {
	Direction() geometry.Direction
	Sprite() draw.Sprite
	Turn(d geometry.Direction) Drawing
	TickMoving(dt timing.Millisecond) Drawing
	TickIdle(dt timing.Millisecond) Drawing
}

// Style selects the column layout of an RPG Maker sheet.
type Style uint8

const (
	// StyleDefault has three columns: right foot, idle, left foot.
	StyleDefault Style = iota
	// StyleXP has four columns played in order.
	StyleXP
)

func (s Style) columns() int {
	if s == StyleXP {
		return 4
	}
	return 3
}

// frames lists the column played at each step of the walk cycle. The first
// entry is the idle frame.
func (s Style) frames() []int {
	if s == StyleXP {
		return []int{0, 1, 2, 3}
	}
	return []int{1, 0, 1, 2}
}

// RpgMakerSheet locates one character on an RPG Maker sheet. Sheets holding
// several characters are split into Across x Down blocks; Index counts blocks
// left to right, top to bottom.
type RpgMakerSheet struct {
	Drawing draw.Drawing
	Style   Style
	Trim    geometry.Padding
	Across  int
	Down    int
	Index   int
}

func (s RpgMakerSheet) block() draw.Drawing {
	across, down := max(s.Across, 1), max(s.Down, 1)
	if across == 1 && down == 1 {
		return s.Drawing
	}
	return draw.SpriteSheet{Drawing: s.Drawing, Rows: down, Columns: across}.
		Cell(s.Index/across, s.Index%across)
}

// rowOf maps a direction to its sheet row: down, left, right, up. Diagonals
// use the vertical row.
func rowOf(d geometry.Direction) int {
	switch d {
	case geometry.Left:
		return 1
	case geometry.Right:
		return 2
	case geometry.Up, geometry.UpLeft, geometry.UpRight:
		return 3
	}
	return 0
}

// RpgMaker animates a four-row RPG Maker character sheet.
type RpgMaker struct {
	direction     geometry.Direction
	rows          [4]animation.CyclicAnimation
	animateOnIdle bool
}

// NewRpgMaker slices sheet into one walk cycle per direction, each frame
// shown for frameDuration.
func NewRpgMaker(sheet RpgMakerSheet, direction geometry.Direction, frameDuration timing.Millisecond) RpgMaker {
	grid := draw.SpriteSheet{
		Drawing: sheet.block(),
		Rows:    4,
		Columns: sheet.Style.columns(),
		Trim:    sheet.Trim,
	}
	var r RpgMaker
	r.direction = direction
	for row := range r.rows {
		cells := grid.Row(row)
		order := sheet.Style.frames()
		frames := make([]draw.Drawing, len(order))
		for i, col := range order {
			frames[i] = cells[col]
		}
		r.rows[row] = animation.UniformCyclicAnimation(frames, frameDuration)
	}
	return r
}

// AnimateOnIdle keeps the walk cycle running while standing still.
func (r RpgMaker) AnimateOnIdle(on bool) RpgMaker {
	r.animateOnIdle = on
	return r
}

func (r RpgMaker) Direction() geometry.Direction { return r.direction }

func (r RpgMaker) Sprite() draw.Sprite { return r.rows[rowOf(r.direction)] }

// Frame returns the frame index of the current direction.
func (r RpgMaker) Frame() int { return r.rows[rowOf(r.direction)].Index() }

func (r RpgMaker) Turn(d geometry.Direction) Drawing {
	keep := rowOf(d)
	for i := range r.rows {
		if i != keep {
			r.rows[i] = r.rows[i].Reset()
		}
	}
	r.direction = d
	return r
}

func (r RpgMaker) TickMoving(dt timing.Millisecond) Drawing {
	row := rowOf(r.direction)
	r.rows[row] = r.rows[row].Advance(dt)
	return r
}

func (r RpgMaker) TickIdle(dt timing.Millisecond) Drawing {
	if r.animateOnIdle {
		return r.TickMoving(dt)
	}
	for i := range r.rows {
		r.rows[i] = r.rows[i].Reset()
	}
	return r
}

// Static shows one sprite whatever the direction. Turning only records the
// direction.
type Static struct {
	sprite    draw.Sprite
	direction geometry.Direction
}

func NewStatic(s draw.Sprite, direction geometry.Direction) Static {
	return Static{sprite: s, direction: direction}
}

func (s Static) Direction() geometry.Direction { return s.direction }
func (s Static) Sprite() draw.Sprite           { return s.sprite }

func (s Static) Turn(d geometry.Direction) Drawing {
	s.direction = d
	return s
}

func (s Static) TickMoving(dt timing.Millisecond) Drawing {
	s.sprite = s.sprite.Tick(dt)
	return s
}

func (s Static) TickIdle(dt timing.Millisecond) Drawing { return s.TickMoving(dt) }
