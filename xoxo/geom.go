package xoxo

import (
	"fmt"
	"math"
)

const (
	CellSize     = 128
	CellsPerSide = 3
	BoardSize    = CellSize * CellsPerSide
	LineWidth    = 4
)

// Point is a draw position in board pixels.
type Point struct {
	X float64
	Y float64
}

type Segment struct {
	From Point
	To   Point
}

// CellToPoint returns the top left corner of cell.
func CellToPoint(cell int) (Point, error) {
	if !validCell(cell) {
		return Point{}, fmt.Errorf("%w: cell %d", ErrOutOfBounds, cell)
	}
	return Point{
		X: float64(cell%CellsPerSide) * CellSize,
		Y: float64(cell/CellsPerSide) * CellSize,
	}, nil
}

// PointToCell returns the cell containing (x, y). Points outside
// [0, BoardSize) on either axis are rejected.
func PointToCell(x, y float64) (int, error) {
	switch {
	case math.IsNaN(x) || math.IsNaN(y),
		x < 0 || BoardSize <= x,
		y < 0 || BoardSize <= y:
		return -1, fmt.Errorf("%w: point (%g, %g)", ErrOutOfBounds, x, y)
	}
	col := int(math.Floor(x / CellSize))
	row := int(math.Floor(y / CellSize))
	return row*CellsPerSide + col, nil
}

// GridLines returns the vertical then horizontal lines of the grid, borders
// included.
func GridLines() []Segment {
	var v []Segment
	for x := 0; x <= BoardSize; x += CellSize {
		v = append(v, Segment{Point{float64(x), 0}, Point{float64(x), BoardSize}})
	}
	for y := 0; y <= BoardSize; y += CellSize {
		v = append(v, Segment{Point{0, float64(y)}, Point{BoardSize, float64(y)}})
	}
	return v
}
