package draw

import (
	"fmt"

	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// TextGroup flows texts and inline sprites into continuous lines. The first
// line of each member continues the line the previous member ended on,
// separated by MarginToOtherText. Members sharing a line are aligned on their
// bottom edge.
type TextGroup struct {
	Items  []Sprite
	Config TextConfig
}

// NewTextGroup builds a group from strings, texts and sprites. Strings are
// laid out with cfg.
func NewTextGroup(cfg TextConfig, items ...any) TextGroup {
	g := TextGroup{Config: cfg}
	for i, it := range items {
		switch v := it.(type) {
		case string:
			g.Items = append(g.Items, NewText(v, cfg))
		case Sprite:
			g.Items = append(g.Items, v)
		default:
			panic(fmt.Sprintf("thicket: text group item %d (%T) is not text or a sprite", i, it))
		}
	}
	return g
}

type flowPiece struct {
	sprite Sprite
	at     geometry.Coordinate
}

// flow lays every member out relative to the group's top-left.
func (g TextGroup) flow() ([]flowPiece, geometry.Size) {
	type row struct {
		pieces []Sprite
	}
	rows := []row{{}}
	appendTo := func(s Sprite, newRow bool) {
		if newRow {
			rows = append(rows, row{})
		}
		r := &rows[len(rows)-1]
		r.pieces = append(r.pieces, s)
	}
	for _, it := range g.Items {
		t, ok := it.(Text)
		if !ok {
			appendTo(it, false)
			continue
		}
		cfg := t.Config
		cfg.LineSpacing = 0
		for i, line := range t.Lines() {
			appendTo(NewText(line, cfg), i > 0)
		}
	}

	var out []flowPiece
	var top, width float64
	for _, r := range rows {
		var h float64
		for _, p := range r.pieces {
			h = max(h, p.Size().H())
		}
		var x float64
		for i, p := range r.pieces {
			if i > 0 {
				x += g.Config.MarginToOtherText
			}
			out = append(out, flowPiece{
				sprite: p,
				at:     geometry.Coordinate{Left: x, Top: top + h - p.Size().H()},
			})
			x += p.Size().W()
		}
		width = max(width, x)
		if len(r.pieces) > 0 {
			top += h + g.Config.LineSpacing
		}
	}
	if top > 0 {
		top -= g.Config.LineSpacing
	}
	return out, geometry.SizeOf(width, top)
}

func (g TextGroup) Size() geometry.Size {
	_, s := g.flow()
	return s
}

func (g TextGroup) TopLeft() geometry.Coordinate { return geometry.Origin }

func (g TextGroup) DrawingOnScreens(origin geometry.Coordinate) []DrawingOnScreen {
	pieces, _ := g.flow()
	var out []DrawingOnScreen
	for _, p := range pieces {
		out = append(out, p.sprite.DrawingOnScreens(origin.Add(p.at).Sub(p.sprite.TopLeft()))...)
	}
	return out
}

// Len counts the runes of every text member plus one per inline sprite.
func (g TextGroup) Len() int {
	n := 0
	for _, it := range g.Items {
		if t, ok := it.(Text); ok {
			n += t.Len()
		} else {
			n++
		}
	}
	return n
}

// Slice keeps the first n units across members.
func (g TextGroup) Slice(n int) Sprite {
	var items []Sprite
	for _, it := range g.Items {
		if n <= 0 {
			break
		}
		t, ok := it.(Text)
		if !ok {
			items = append(items, it)
			n--
			continue
		}
		if t.Len() <= n {
			items = append(items, t)
			n -= t.Len()
			continue
		}
		items = append(items, t.Slice(n))
		n = 0
	}
	g.Items = items
	return g
}

func (g TextGroup) Tick(dt timing.Millisecond) Sprite {
	items := make([]Sprite, len(g.Items))
	for i, it := range g.Items {
		items[i] = it.Tick(dt)
	}
	g.Items = items
	return g
}

func (g TextGroup) Complete() bool {
	for _, it := range g.Items {
		if !it.Complete() {
			return false
		}
	}
	return true
}
