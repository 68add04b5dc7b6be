package entity

const (
	StatusAwaiting = "awaiting"
	StatusWon      = "won"
	StatusTied     = "tied"

	NoWinner = -1
)

// Move is the coordinate of the most recently placed piece.
type Move struct {
	Row    int `json:"row"`
	Column int `json:"column"`
	Player int `json:"player"`
}

type Game struct {
	ID       string    `json:"id"`
	Grid     *Grid     `json:"grid"`
	Players  []*Player `json:"players"`
	Turn     int       `json:"turn"`
	Status   string    `json:"status"`
	Winner   int       `json:"winner"`
	Moves    int       `json:"moves"`
	LastMove *Move     `json:"last_move,omitempty"`
}

func NewGame(id string, width, height int, players []*Player) *Game {
	return &Game{
		ID:      id,
		Grid:    NewGrid(width, height),
		Players: players,
		Turn:    0,
		Status:  StatusAwaiting,
		Winner:  NoWinner,
	}
}

func (that *Game) CurrentPlayer() *Player {
	return that.Players[that.Turn]
}

// WinningPlayer returns nil unless the game ended in a win.
func (that *Game) WinningPlayer() *Player {
	if that.Status != StatusWon || that.Winner < 0 || that.Winner >= len(that.Players) {
		return nil
	}

	return that.Players[that.Winner]
}

func (that *Game) AdvanceTurn() {
	that.Turn = (that.Turn + 1) % len(that.Players)
}

func (that *Game) IsAwaiting() bool {
	return that.Status == StatusAwaiting
}

func (that *Game) IsWon() bool {
	return that.Status == StatusWon
}

func (that *Game) IsTied() bool {
	return that.Status == StatusTied
}

// IsFinished reports a terminal state; no further moves are accepted.
func (that *Game) IsFinished() bool {
	return that.IsWon() || that.IsTied()
}

// Snapshot copies the game so readers outside the session lock see a stable view.
func (that *Game) Snapshot() *Game {
	players := make([]*Player, len(that.Players))
	for i, player := range that.Players {
		p := *player
		players[i] = &p
	}

	snapshot := *that
	snapshot.Grid = that.Grid.Clone()
	snapshot.Players = players
	if that.LastMove != nil {
		move := *that.LastMove
		snapshot.LastMove = &move
	}

	return &snapshot
}
