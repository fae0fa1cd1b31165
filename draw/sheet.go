package draw

import (
	"fmt"

	"github.com/phanxgames/thicket/geometry"
)

// SpriteSheet slices a drawing into an even grid of cells.
type SpriteSheet struct {
	Drawing Drawing
	Rows    int
	Columns int
	// Trim is removed from every cell after slicing.
	Trim geometry.Padding
}

// CellSize returns the untrimmed size of one cell.
func (s SpriteSheet) CellSize() geometry.Size {
	size := s.Drawing.Size()
	return geometry.SizeOf(size.W()/float64(s.Columns), size.H()/float64(s.Rows))
}

// Cell returns the cell at row and col, both zero-based.
func (s SpriteSheet) Cell(row, col int) Drawing {
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Columns {
		panic(fmt.Sprintf("thicket: sprite sheet cell (%d, %d) outside %dx%d grid", row, col, s.Rows, s.Columns))
	}
	cell := s.CellSize()
	r := geometry.NewRectangle(
		geometry.Coordinate{Left: float64(col) * cell.W(), Top: float64(row) * cell.H()},
		cell,
	)
	return s.Drawing.Crop(r).Cut(s.Trim)
}

// Row returns every cell of row in column order.
func (s SpriteSheet) Row(row int) []Drawing {
	out := make([]Drawing, s.Columns)
	for c := range out {
		out[c] = s.Cell(row, c)
	}
	return out
}
