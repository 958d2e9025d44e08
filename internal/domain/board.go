package domain

import "fmt"

// Board is a height x width grid. Row 0 is the top row, pieces stack up
// from row height-1.
type Board struct {
	width  int
	height int
	cells  [][]PlayerID
}

func NewBoard(width, height int) *Board {
	cells := make([][]PlayerID, height)
	for i := range cells {
		cells[i] = make([]PlayerID, width)
	}
	return &Board{width: width, height: height, cells: cells}
}

func (b *Board) Width() int { return b.width }
func (b *Board) Height() int { return b.height }

func (b *Board) InBounds(row, column int) bool {
	return row >= 0 && row < b.height && column >= 0 && column < b.width
}

// At returns the occupant of (row, column), Empty when out of bounds.
func (b *Board) At(row, column int) PlayerID {
	if !b.InBounds(row, column) {
		return Empty
	}
	return b.cells[row][column]
}

// LowestEmptyRow walks the column from the bottom up. ok is false when the
// column is full.
func (b *Board) LowestEmptyRow(column int) (int, bool, error) {
	if column < 0 || column >= b.width {
		return -1, false, fmt.Errorf("%w: column %d out of range [0, %d)", ErrInvalidMove, column, b.width)
	}

	for row := b.height - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			return row, true, nil
		}
	}

	return -1, false, nil
}

func (b *Board) place(row, column int, player PlayerID) {
	b.cells[row][column] = player
}

func (b *Board) IsFull() bool {
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

func (b *Board) clear() {
	for _, row := range b.cells {
		for c := range row {
			row[c] = Empty
		}
	}
}

// this creates a deep copy of the board
func (b *Board) Snapshot() [][]PlayerID {
	out := make([][]PlayerID, len(b.cells))
	for i := range b.cells {
		out[i] = make([]PlayerID, len(b.cells[i]))
		copy(out[i], b.cells[i])
	}
	return out
}
