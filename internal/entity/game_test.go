package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTwoPlayers() []*Player {
	return []*Player{
		NewPlayer(0, "A", "#FF0000"),
		NewPlayer(1, "B", "#FFFFFF"),
	}
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsAwaiting returns true for a new game", func(t *testing.T) {
		// Given: a freshly created game
		game := NewGame("g1", 7, 6, newTwoPlayers())

		// Then: it awaits a move and is not finished
		assert.True(t, game.IsAwaiting())
		assert.False(t, game.IsFinished())
		assert.Equal(t, NoWinner, game.Winner)
	})

	t.Run("IsFinished returns true when game is won", func(t *testing.T) {
		// Given: a game with StatusWon
		game := &Game{Status: StatusWon}

		// Then: it should be finished
		assert.True(t, game.IsWon())
		assert.True(t, game.IsFinished())
	})

	t.Run("IsFinished returns true when game is tied", func(t *testing.T) {
		// Given: a game with StatusTied
		game := &Game{Status: StatusTied}

		// Then: it should be finished
		assert.True(t, game.IsTied())
		assert.True(t, game.IsFinished())
	})
}

func TestGame_AdvanceTurn(t *testing.T) {
	t.Run("Cycles through three players in order", func(t *testing.T) {
		// Given: a game with three players
		players := append(newTwoPlayers(), NewPlayer(2, "C", "#00FF00"))
		game := NewGame("g1", 7, 6, players)

		// When/Then: advancing wraps around to index 0
		for _, want := range []int{1, 2, 0, 1} {
			game.AdvanceTurn()
			assert.Equal(t, want, game.Turn)
		}
	})
}

func TestGame_WinningPlayer(t *testing.T) {
	t.Run("Returns nil while the game is awaiting", func(t *testing.T) {
		game := NewGame("g1", 7, 6, newTwoPlayers())

		assert.Nil(t, game.WinningPlayer())
	})

	t.Run("Returns the recorded winner", func(t *testing.T) {
		game := NewGame("g1", 7, 6, newTwoPlayers())
		game.Status = StatusWon
		game.Winner = 1

		require.NotNil(t, game.WinningPlayer())
		assert.Equal(t, "B", game.WinningPlayer().Name)
	})
}

func TestGame_Snapshot(t *testing.T) {
	// Given: a game with one placed piece
	game := NewGame("g1", 7, 6, newTwoPlayers())
	game.Grid.Place(5, 0, CellFor(0))
	game.LastMove = &Move{Row: 5, Column: 0, Player: 0}

	// When: taking a snapshot and mutating the live game
	snapshot := game.Snapshot()
	game.Grid.Place(4, 0, CellFor(1))
	game.LastMove.Row = 4

	// Then: the snapshot is unaffected
	assert.Equal(t, EmptyCell, snapshot.Grid.At(4, 0))
	assert.Equal(t, 5, snapshot.LastMove.Row)
	assert.Equal(t, 1, snapshot.Grid.Occupied())
}

func TestPlayer_DisplayName(t *testing.T) {
	t.Run("Uses the given name", func(t *testing.T) {
		assert.Equal(t, "Ada", NewPlayer(0, "Ada", "").DisplayName())
	})

	t.Run("Falls back to 1-based Player N", func(t *testing.T) {
		assert.Equal(t, "Player 2", NewPlayer(1, "", "").DisplayName())
	})
}
