package connectfour

import "github.com/rocketscienceinc/connectfour-backend/internal/entity"

// RunLength is the number of contiguous pieces needed to win.
const RunLength = 4

// direction is a (row, column) step along one of the four line directions.
type direction struct {
	dy, dx int
}

var (
	horizontal    = direction{0, 1}
	vertical      = direction{1, 0}
	diagDownRight = direction{1, 1}
	diagDownLeft  = direction{1, -1}

	directions = []direction{horizontal, vertical, diagDownRight, diagDownLeft}
)

// HasWin scans every cell as the start of a run in each direction.
// A candidate with any coordinate off the grid is ineligible, not an error.
func HasWin(grid *entity.Grid, cell entity.Cell) bool {
	if cell == entity.EmptyCell {
		return false
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			for _, dir := range directions {
				if runFrom(grid, y, x, dir, cell) {
					return true
				}
			}
		}
	}

	return false
}

// runFrom reports whether RunLength cells starting at (y, x) along dir all hold cell.
func runFrom(grid *entity.Grid, y, x int, dir direction, cell entity.Cell) bool {
	for k := 0; k < RunLength; k++ {
		row, column := y+k*dir.dy, x+k*dir.dx
		if !grid.InBounds(row, column) || grid.At(row, column) != cell {
			return false
		}
	}

	return true
}

// HasWinAt only checks the lines through (row, column); same result as HasWin
// when (row, column) holds the last piece placed by cell's owner.
func HasWinAt(grid *entity.Grid, row, column int, cell entity.Cell) bool {
	if cell == entity.EmptyCell || !grid.InBounds(row, column) || grid.At(row, column) != cell {
		return false
	}

	for _, dir := range directions {
		count := 1 + countDirection(grid, row, column, dir.dy, dir.dx, cell) +
			countDirection(grid, row, column, -dir.dy, -dir.dx, cell)
		if count >= RunLength {
			return true
		}
	}

	return false
}

func countDirection(grid *entity.Grid, row, column, dy, dx int, cell entity.Cell) int {
	count := 0
	r, c := row+dy, column+dx
	for grid.InBounds(r, c) && grid.At(r, c) == cell {
		count++
		r += dy
		c += dx
	}

	return count
}
