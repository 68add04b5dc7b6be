package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	maxMessage   = 4096
)

var errClientGone = errors.New("client disconnected or not keeping up")

type gameManager interface {
	NewGame(ctx context.Context, setup usecase.Setup) (*entity.Game, error)
	SubmitMove(ctx context.Context, column int) (connectfour.Outcome, *entity.Game, error)
	Current() (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, c *client, msg *Message) error

// Defaults is the grid size offered to a client before any game exists.
type Defaults struct {
	Width  int
	Height int
}

type Server struct {
	logger   *slog.Logger
	hub      *Hub
	games    gameManager
	defaults Defaults
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, hub *Hub, games gameManager, defaults Defaults) *Server {
	server := &Server{
		logger:   logger.With("component", "ws_server"),
		hub:      hub,
		games:    games,
		defaults: defaults,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionDrop] = server.handleDrop
	server.handlers[actionState] = server.handleState

	return server
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and shuts it down when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWebSocket")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(uuid.NewString(), conn)
	log = log.With("client", c.id)

	that.hub.add(c)
	defer func() {
		that.hub.remove(c)
		c.close()
		log.Info("websocket connection closed")
	}()

	log.Info("websocket connection established")

	go func() {
		if pumpErr := c.writePump(pingInterval); pumpErr != nil {
			log.Error("websocket writer stopped", "error", pumpErr)
		}
		c.close()
	}()

	if err = that.handleState(ctx, c, nil); err != nil {
		log.Error("failed to send initial state", "error", err)
		return
	}

	if err = that.handleMessages(ctx, c); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages", "client", c.id)

	c.conn.SetReadLimit(maxMessage)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return fmt.Errorf("failed to read message: %w", err)
			}
			return nil
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) handleNewGame(ctx context.Context, c *client, msg *Message) error {
	var setup usecase.Setup
	if err := json.Unmarshal(msg.Payload, &setup); err != nil {
		return that.sendError(c, "invalid game setup")
	}

	if _, err := that.games.NewGame(ctx, setup); err != nil {
		if sendErr := that.sendError(c, err.Error()); sendErr != nil {
			return sendErr
		}
		return fmt.Errorf("failed to start game: %w", err)
	}

	return nil
}

// handleDrop forwards a column selection unless input has been detached.
func (that *Server) handleDrop(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleDrop", "client", c.id)

	if !that.hub.InputAttached() {
		log.Debug("input detached, dropping column selection")
		return nil
	}

	var drop DropPayload
	if err := json.Unmarshal(msg.Payload, &drop); err != nil {
		return that.sendError(c, "invalid column")
	}

	if _, _, err := that.games.SubmitMove(ctx, drop.Column); err != nil {
		if sendErr := that.sendError(c, err.Error()); sendErr != nil {
			return sendErr
		}
		return fmt.Errorf("failed to submit move: %w", err)
	}

	return nil
}

func (that *Server) handleState(_ context.Context, c *client, _ *Message) error {
	payload := StatePayload{
		Width:  that.defaults.Width,
		Height: that.defaults.Height,
	}

	if game, err := that.games.Current(); err == nil {
		payload.Game = game
		payload.Width = game.Grid.Width
		payload.Height = game.Grid.Height
	}

	return that.send(c, actionState, payload)
}

func (that *Server) send(c *client, action string, payload any) error {
	msg, err := newMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if !c.enqueue(msg) {
		return errClientGone
	}

	return nil
}

func (that *Server) sendError(c *client, text string) error {
	return that.send(c, actionError, ErrorPayload{Error: text})
}
