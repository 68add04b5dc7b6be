package entity

import "fmt"

// Cell holds either EmptyCell or the 1-based index of the occupying player.
type Cell int

const EmptyCell Cell = 0

func CellFor(playerIndex int) Cell {
	return Cell(playerIndex + 1)
}

// PlayerIndex returns the occupying player's index, or false for an empty cell.
func (c Cell) PlayerIndex() (int, bool) {
	if c == EmptyCell {
		return -1, false
	}

	return int(c) - 1, true
}

// Grid is an array of rows; row 0 is the top, row Height-1 the bottom.
// Columns fill from the bottom upward and occupied cells never revert.
type Grid struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cells  [][]Cell `json:"cells"`
}

func NewGrid(width, height int) *Grid {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}

	return &Grid{
		Width:  width,
		Height: height,
		Cells:  cells,
	}
}

func (that *Grid) InBounds(row, column int) bool {
	return row >= 0 && row < that.Height && column >= 0 && column < that.Width
}

func (that *Grid) ValidColumn(column int) bool {
	return column >= 0 && column < that.Width
}

func (that *Grid) At(row, column int) Cell {
	return that.Cells[row][column]
}

// LowestOpenRow scans the column from the bottom and returns the first empty row.
// ok is false when the column is full. column must be in [0, Width).
func (that *Grid) LowestOpenRow(column int) (int, bool) {
	for y := that.Height - 1; y >= 0; y-- {
		if that.Cells[y][column] == EmptyCell {
			return y, true
		}
	}

	return -1, false
}

// Place marks an empty cell as occupied. Overwriting a piece is a programmer error.
func (that *Grid) Place(row, column int, cell Cell) {
	if that.Cells[row][column] != EmptyCell {
		panic(fmt.Sprintf("cell %d-%d is already occupied", row, column))
	}

	that.Cells[row][column] = cell
}

func (that *Grid) IsFull() bool {
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Grid) Occupied() int {
	count := 0
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell != EmptyCell {
				count++
			}
		}
	}

	return count
}

// Clone returns a deep copy; snapshots handed to transports must not alias the live grid.
func (that *Grid) Clone() *Grid {
	clone := NewGrid(that.Width, that.Height)
	for y := range that.Cells {
		copy(clone.Cells[y], that.Cells[y])
	}

	return clone
}
