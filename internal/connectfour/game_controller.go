package connectfour

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

type Outcome string

const (
	OutcomeIgnored Outcome = "ignored"
	OutcomePlaced  Outcome = "placed"
	OutcomeWon     Outcome = "won"
	OutcomeTied    Outcome = "tied"

	TieMessage = "Tie!"
)

// Presenter receives the visual side effects of a move.
type Presenter interface {
	RenderPiece(row, column int, player *entity.Player)
	AnnounceEnd(message string)
	DetachInput()
}

type nopPresenter struct{}

func (nopPresenter) RenderPiece(int, int, *entity.Player) {}
func (nopPresenter) AnnounceEnd(string)                   {}
func (nopPresenter) DetachInput()                         {}

// GameController owns one session's grid and turn index.
// It is not safe for concurrent use; callers serialise moves.
type GameController struct {
	game      *entity.Game
	presenter Presenter
}

func NewGameController(game *entity.Game, presenter Presenter) *GameController {
	if presenter == nil {
		presenter = nopPresenter{}
	}

	return &GameController{
		game:      game,
		presenter: presenter,
	}
}

func (that *GameController) Game() *entity.Game {
	return that.game
}

// SubmitMove drops the current player's piece into column. Terminal sessions,
// out-of-range and full columns are no-ops reported as OutcomeIgnored.
func (that *GameController) SubmitMove(column int) Outcome {
	game := that.game

	if game.IsFinished() {
		return OutcomeIgnored
	}

	if !game.Grid.ValidColumn(column) {
		return OutcomeIgnored
	}

	row, ok := game.Grid.LowestOpenRow(column)
	if !ok {
		return OutcomeIgnored
	}

	player := game.CurrentPlayer()
	game.Grid.Place(row, column, player.Cell())
	game.Moves++
	game.LastMove = &entity.Move{Row: row, Column: column, Player: player.Index}

	that.presenter.RenderPiece(row, column, player)

	return that.updateGameStatus(row, column, player)
}

// updateGameStatus - checks the game status after a move.
func (that *GameController) updateGameStatus(row, column int, player *entity.Player) Outcome {
	game := that.game

	if HasWinAt(game.Grid, row, column, player.Cell()) {
		game.Status = entity.StatusWon
		game.Winner = player.Index
		that.presenter.AnnounceEnd(WinMessage(player))
		that.presenter.DetachInput()

		return OutcomeWon
	}

	if game.Grid.IsFull() {
		game.Status = entity.StatusTied
		that.presenter.AnnounceEnd(TieMessage)
		that.presenter.DetachInput()

		return OutcomeTied
	}

	game.AdvanceTurn()

	return OutcomePlaced
}

func WinMessage(player *entity.Player) string {
	return fmt.Sprintf("%s won!", player.DisplayName())
}
