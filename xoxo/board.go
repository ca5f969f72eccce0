package xoxo

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Board is the 3x3 grid together with the set of free cells. The set always
// holds exactly the indices whose cell is Empty.
type Board struct {
	cells [9]Cell
	free  map[int]struct{}
}

func NewBoard() *Board {
	b := &Board{
		free: make(map[int]struct{}, 9),
	}
	for i := 0; i < 9; i++ {
		b.free[i] = struct{}{}
	}
	return b
}

func (b *Board) IsEmpty(cell int) bool {
	if !validCell(cell) {
		return false
	}
	return b.cells[cell] == Empty
}

// Occupy places who on cell.
func (b *Board) Occupy(cell int, who Cell) error {
	switch {
	case !validCell(cell):
		return fmt.Errorf("%w: cell %d outside 0..8", ErrInvalidMove, cell)
	case who != Human && who != AI:
		return fmt.Errorf("%w: cannot place %v", ErrInvalidMove, who)
	case b.cells[cell] != Empty:
		return fmt.Errorf("%w: cell %d taken by %v", ErrInvalidMove, cell, b.cells[cell])
	}
	b.cells[cell] = who
	delete(b.free, cell)
	return nil
}

// FreeCells returns the free cells in ascending order.
func (b *Board) FreeCells() []int {
	keys := maps.Keys(b.free)
	slices.Sort(keys)
	return keys
}

func (b *Board) IsFull() bool {
	return len(b.free) == 0
}

func (b *Board) Cells() [9]Cell {
	return b.cells
}

func (b *Board) Count(c Cell) int {
	n := 0
	for _, v := range b.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Winner returns the occupant of a completed line, or Empty.
func (b *Board) Winner() Cell {
	for _, line := range lines {
		if c := b.cells[line[0]]; c != Empty && c == b.cells[line[1]] && c == b.cells[line[2]] {
			return c
		}
	}
	return Empty
}

func (b *Board) String() string {
	v := make([]interface{}, 9)
	for i, c := range b.cells {
		v[i] = []rune(c.String())[0]
	}
	return fmt.Sprintf("[%c%c%c,%c%c%c,%c%c%c]", v...)
}

func validCell(cell int) bool {
	return 0 <= cell && cell < 9
}

var lines = [8][3]int{
	{0, 1, 2}, // row 0
	{3, 4, 5}, // row 1
	{6, 7, 8}, // row 2
	{0, 3, 6}, // col 0
	{1, 4, 7}, // col 1
	{2, 5, 8}, // col 2
	{0, 4, 8}, // top left to bottom right
	{6, 4, 2}, // bottom left to top right
}
