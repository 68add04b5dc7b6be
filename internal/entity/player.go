package entity

import "fmt"

// Player is immutable once a game has started. Index is the stable identity
// stored in the grid; Name is only for display and may be shared.
type Player struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func NewPlayer(index int, name, color string) *Player {
	return &Player{
		Index: index,
		Name:  name,
		Color: color,
	}
}

// DisplayName falls back to "Player N" (1-based) for unnamed players.
func (that *Player) DisplayName() string {
	if that.Name != "" {
		return that.Name
	}

	return fmt.Sprintf("Player %d", that.Index+1)
}

// Cell is the grid value that marks a piece owned by this player.
func (that *Player) Cell() Cell {
	return CellFor(that.Index)
}
