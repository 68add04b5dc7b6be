package websocket

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 64
)

// client queues outgoing messages for its own writer goroutine; gorilla
// connections allow one writer at a time.
type client struct {
	id   string
	conn *websocket.Conn

	send      chan *Message
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(id string, conn *websocket.Conn) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan *Message, sendBuffer),
		done: make(chan struct{}),
	}
}

// enqueue never blocks. It reports false when the client is closed or its
// queue is full.
func (that *client) enqueue(msg *Message) bool {
	select {
	case <-that.done:
		return false
	default:
	}

	select {
	case that.send <- msg:
		return true
	default:
		return false
	}
}

func (that *client) close() {
	that.closeOnce.Do(func() {
		close(that.done)
		_ = that.conn.Close()
	})
}

// writePump drains the queue and keeps the connection alive with pings.
func (that *client) writePump(pingEvery time.Duration) error {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-that.done:
			return nil
		case msg := <-that.send:
			if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("failed to set write deadline: %w", err)
			}
			if err := that.conn.WriteJSON(msg); err != nil {
				return fmt.Errorf("failed to write message: %w", err)
			}
		case <-ticker.C:
			if err := that.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("failed to write ping: %w", err)
			}
		}
	}
}

// Hub is the presentation surface of the active session. Every connected
// client sees the same grid, and column selections stop once input is detached.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client

	detached atomic.Bool
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "ws_hub"),
		clients: make(map[string]*client),
	}
}

func (that *Hub) add(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

func (that *Hub) remove(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if current, ok := that.clients[c.id]; ok && current == c {
		delete(that.clients, c.id)
	}
}

func (that *Hub) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}

func (that *Hub) broadcast(action string, payload any) {
	log := that.logger.With("method", "broadcast", "action", action)

	msg, err := newMessage(action, payload)
	if err != nil {
		log.Error("failed to marshal payload", "error", err)
		return
	}

	that.mu.RLock()
	clients := make([]*client, 0, len(that.clients))
	for _, c := range that.clients {
		clients = append(clients, c)
	}
	that.mu.RUnlock()

	for _, c := range clients {
		if !c.enqueue(msg) {
			log.Warn("client is not keeping up, disconnecting", "client", c.id)
			that.remove(c)
			c.close()
		}
	}
}

// InputAttached reports whether column selections are forwarded to the game.
func (that *Hub) InputAttached() bool {
	return !that.detached.Load()
}

// RenderNewGame prepares every client for an empty grid and re-attaches input.
func (that *Hub) RenderNewGame(width, height int, players []*entity.Player) {
	that.detached.Store(false)
	that.broadcast(actionNewGame, NewGamePayload{Width: width, Height: height, Players: players})
}

func (that *Hub) RenderPiece(row, column int, player *entity.Player) {
	that.broadcast(actionPiece, PiecePayload{
		Row:        row,
		Column:     column,
		Player:     player,
		DropOffset: dropOffset(row),
	})
}

func (that *Hub) AnnounceEnd(message string) {
	that.broadcast(actionEnd, EndPayload{Message: message})
}

func (that *Hub) DetachInput() {
	that.detached.Store(true)
}
