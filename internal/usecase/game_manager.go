package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

// DefaultColors is the palette for players who leave their color blank.
var DefaultColors = []string{"#FF0000", "#FFFFFF", "#FFD700", "#1E90FF", "#32CD32", "#FF8C00"}

type PlayerSetup struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Setup is what the new game form collects.
type Setup struct {
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Players []PlayerSetup `json:"players"`
}

// Limits caps the grid a client may request. The grid is allocated up front.
type Limits struct {
	MaxWidth  int
	MaxHeight int
}

var DefaultLimits = Limits{MaxWidth: 64, MaxHeight: 64}

func (that Setup) Validate(limits Limits) error {
	if that.Width <= 0 || that.Height <= 0 {
		return fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", apperror.ErrConfiguration, that.Width, that.Height)
	}

	if that.Width > limits.MaxWidth || that.Height > limits.MaxHeight {
		return fmt.Errorf("%w: grid %dx%d exceeds the %dx%d limit",
			apperror.ErrConfiguration, that.Width, that.Height, limits.MaxWidth, limits.MaxHeight)
	}

	if len(that.Players) == 0 {
		return fmt.Errorf("%w: at least one player is required", apperror.ErrConfiguration)
	}

	return nil
}

// Presenter is the visual surface a session renders to.
type Presenter interface {
	connectfour.Presenter
	RenderNewGame(width, height int, players []*entity.Player)
}

type scoreboard interface {
	RecordWin(ctx context.Context, name string) error
	RecordTie(ctx context.Context) error
}

// GameManager owns the single active session. Moves are serialised so each
// one runs to completion before the next is applied.
type GameManager struct {
	logger     *slog.Logger
	presenter  Presenter
	scoreboard scoreboard
	limits     Limits

	mu         sync.Mutex
	controller *connectfour.GameController
}

// NewGameManager falls back to DefaultLimits when a limit is not positive.
func NewGameManager(logger *slog.Logger, presenter Presenter, scoreboard scoreboard, limits Limits) *GameManager {
	if limits.MaxWidth <= 0 {
		limits.MaxWidth = DefaultLimits.MaxWidth
	}
	if limits.MaxHeight <= 0 {
		limits.MaxHeight = DefaultLimits.MaxHeight
	}

	return &GameManager{
		logger:     logger.With("component", "game_manager"),
		presenter:  presenter,
		scoreboard: scoreboard,
		limits:     limits,
	}
}

// NewGame discards the current session, if any, and starts a new one.
func (that *GameManager) NewGame(_ context.Context, setup Setup) (*entity.Game, error) {
	log := that.logger.With("method", "NewGame")

	if err := setup.Validate(that.limits); err != nil {
		return nil, err
	}

	players := make([]*entity.Player, len(setup.Players))
	for i, p := range setup.Players {
		color := p.Color
		if color == "" {
			color = DefaultColors[i%len(DefaultColors)]
		}

		players[i] = entity.NewPlayer(i, p.Name, color)
	}

	game := entity.NewGame(uuid.NewString(), setup.Width, setup.Height, players)

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.controller != nil && !that.controller.Game().IsFinished() {
		log.Info("discarding unfinished game", "game_id", that.controller.Game().ID)
	}

	that.controller = connectfour.NewGameController(game, that.presenter)
	that.presenter.RenderNewGame(setup.Width, setup.Height, players)

	log.Info("game started", "game_id", game.ID, "width", setup.Width, "height", setup.Height, "players", len(players))

	return game.Snapshot(), nil
}

// SubmitMove applies a column selection to the active session.
func (that *GameManager) SubmitMove(ctx context.Context, column int) (connectfour.Outcome, *entity.Game, error) {
	log := that.logger.With("method", "SubmitMove")

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.controller == nil {
		return connectfour.OutcomeIgnored, nil, apperror.ErrNoActiveGame
	}

	game := that.controller.Game()
	outcome := that.controller.SubmitMove(column)

	switch outcome {
	case connectfour.OutcomeIgnored:
		log.Debug("move ignored", "game_id", game.ID, "column", column, "status", game.Status)
	case connectfour.OutcomeWon:
		winner := game.WinningPlayer()
		log.Info("game won", "game_id", game.ID, "winner", winner.DisplayName(), "moves", game.Moves)
		that.recordWin(ctx, log, winner)
	case connectfour.OutcomeTied:
		log.Info("game tied", "game_id", game.ID, "moves", game.Moves)
		that.recordTie(ctx, log)
	case connectfour.OutcomePlaced:
		log.Debug("piece placed", "game_id", game.ID, "row", game.LastMove.Row, "column", column)
	}

	return outcome, game.Snapshot(), nil
}

// Current returns a snapshot of the active session.
func (that *GameManager) Current() (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.controller == nil {
		return nil, apperror.ErrNoActiveGame
	}

	return that.controller.Game().Snapshot(), nil
}

// recordWin never fails the move; the scoreboard is best effort.
func (that *GameManager) recordWin(ctx context.Context, log *slog.Logger, winner *entity.Player) {
	if that.scoreboard == nil {
		return
	}

	if err := that.scoreboard.RecordWin(ctx, winner.DisplayName()); err != nil {
		log.Error("failed to record win", "error", err)
	}
}

func (that *GameManager) recordTie(ctx context.Context, log *slog.Logger) {
	if that.scoreboard == nil {
		return
	}

	if err := that.scoreboard.RecordTie(ctx); err != nil {
		log.Error("failed to record tie", "error", err)
	}
}
