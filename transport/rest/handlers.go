package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository"
)

type gameReader interface {
	Current() (*entity.Game, error)
}

type standingsReader interface {
	Standings(ctx context.Context) (*repository.Standings, error)
}

type handlers struct {
	logger     *slog.Logger
	games      gameReader
	scoreboard standingsReader
}

func (that *handlers) getGame(w http.ResponseWriter, _ *http.Request) {
	game, err := that.games.Current()
	if errors.Is(err, apperror.ErrNoActiveGame) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if err != nil {
		that.logger.Error("failed to get current game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, game)
}

func (that *handlers) getScoreboard(w http.ResponseWriter, r *http.Request) {
	standings, err := that.scoreboard.Standings(r.Context())
	if err != nil {
		that.logger.Error("failed to get standings", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, standings)
}

func (that *handlers) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
