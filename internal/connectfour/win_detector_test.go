package connectfour

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

var (
	cellA = entity.CellFor(0)
	cellB = entity.CellFor(1)
)

type coord struct {
	row, column int
}

func TestHasWin_FourInARow(t *testing.T) {
	tests := []struct {
		name  string
		cells []coord
	}{
		{name: "horizontal", cells: []coord{{5, 0}, {5, 1}, {5, 2}, {5, 3}}},
		{name: "vertical", cells: []coord{{5, 6}, {4, 6}, {3, 6}, {2, 6}}},
		{name: "diagonal down-right", cells: []coord{{2, 0}, {3, 1}, {4, 2}, {5, 3}}},
		{name: "diagonal down-left", cells: []coord{{2, 6}, {3, 5}, {4, 4}, {5, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: an empty 7x6 grid
			grid := entity.NewGrid(7, 6)

			// When: placing the first three pieces of the line
			for _, c := range tt.cells[:3] {
				grid.Cells[c.row][c.column] = cellA
			}

			// Then: there is no win yet
			assert.False(t, HasWin(grid, cellA))
			last := tt.cells[2]
			assert.False(t, HasWinAt(grid, last.row, last.column, cellA))

			// When: placing the fourth piece
			fourth := tt.cells[3]
			grid.Cells[fourth.row][fourth.column] = cellA

			// Then: both detectors report the win for A only
			assert.True(t, HasWin(grid, cellA))
			assert.True(t, HasWinAt(grid, fourth.row, fourth.column, cellA))
			assert.False(t, HasWin(grid, cellB))
		})
	}
}

func TestHasWin_GapBreaksRun(t *testing.T) {
	// Given: A, A, B, A, A on the bottom row
	grid := entity.NewGrid(7, 6)
	for x, cell := range []entity.Cell{cellA, cellA, cellB, cellA, cellA} {
		grid.Cells[5][x] = cell
	}

	// Then: no one has four in a row
	assert.False(t, HasWin(grid, cellA))
	assert.False(t, HasWinAt(grid, 5, 4, cellA))
}

func TestHasWin_BoundsExclusion(t *testing.T) {
	t.Run("Down-left from the left edge is ineligible", func(t *testing.T) {
		// Given: a grid whose only A pieces sit at column 0
		grid := entity.NewGrid(7, 6)
		grid.Cells[0][0] = cellA

		// Then: runs that would step off the grid are false, never a panic
		assert.NotPanics(t, func() {
			assert.False(t, runFrom(grid, 0, 0, diagDownLeft, cellA))
			assert.False(t, runFrom(grid, 3, 6, diagDownRight, cellA))
			assert.False(t, runFrom(grid, 0, 5, horizontal, cellA))
			assert.False(t, runFrom(grid, 4, 0, vertical, cellA))
		})
	})

	t.Run("Full grid of one player still scans safely", func(t *testing.T) {
		grid := entity.NewGrid(3, 3)
		for y := range grid.Cells {
			for x := range grid.Cells[y] {
				grid.Cells[y][x] = cellA
			}
		}

		// A 3x3 grid is too small for any run of four
		assert.False(t, HasWin(grid, cellA))
		assert.False(t, HasWinAt(grid, 1, 1, cellA))
	})
}

func TestHasWin_EmptyCellNeverWins(t *testing.T) {
	grid := entity.NewGrid(7, 6)

	assert.False(t, HasWin(grid, entity.EmptyCell))
	assert.False(t, HasWinAt(grid, 5, 0, entity.EmptyCell))
}

func TestHasWinAt_MatchesFullScan(t *testing.T) {
	// Given: random games played until a win or a full grid
	rnd := rand.New(rand.NewSource(42))

	for game := 0; game < 200; game++ {
		grid := entity.NewGrid(7, 6)
		turn := 0

		for !grid.IsFull() {
			column := rnd.Intn(grid.Width)
			row, ok := grid.LowestOpenRow(column)
			if !ok {
				continue
			}

			cell := entity.CellFor(turn)
			grid.Place(row, column, cell)

			// Then: the incremental check agrees with the brute-force scan
			full := HasWin(grid, cell)
			assert.Equal(t, full, HasWinAt(grid, row, column, cell), "game %d move %d-%d", game, row, column)
			if full {
				break
			}

			turn = (turn + 1) % 2
		}
	}
}
