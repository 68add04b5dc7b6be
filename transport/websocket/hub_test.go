package websocket

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

// serverConn returns the server side of a fresh connection. The dialing side
// is kept open but never read from.
func serverConn(t *testing.T) *websocket.Conn {
	t.Helper()

	conns := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}
	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- conn
	}))
	t.Cleanup(httpServer.Close)

	peer, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(httpServer.URL, "http"), nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { peer.Close() })

	select {
	case conn := <-conns:
		t.Cleanup(func() { conn.Close() })
		return conn
	case <-time.After(5 * time.Second):
		t.Fatal("server side of the connection was never upgraded")
		return nil
	}
}

func TestHub_SlowClientIsDisconnected(t *testing.T) {
	// Given: a hub with a client whose queue is never drained
	hub := NewHub(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	slow := newClient("slow", serverConn(t))
	hub.add(slow)

	player := entity.NewPlayer(0, "A", "#FF0000")

	// When: more pieces are rendered than the queue holds
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for i := 0; i <= sendBuffer; i++ {
			hub.RenderPiece(5, 0, player)
		}
	}()

	// Then: rendering never blocks
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("rendering blocked on a slow client")
	}

	// And: the client is dropped and closed
	assert.Equal(t, 0, hub.Len())
	assert.False(t, slow.enqueue(&Message{Action: actionPiece}))

	select {
	case <-slow.done:
	default:
		t.Fatal("slow client was not closed")
	}
}

func TestClient_EnqueueAfterClose(t *testing.T) {
	c := newClient("closed", serverConn(t))

	assert.True(t, c.enqueue(&Message{Action: actionState}))

	c.close()
	c.close()

	assert.False(t, c.enqueue(&Message{Action: actionState}))
}

func TestServer_HandleMessagesOnClosedConnection(t *testing.T) {
	// Given: a connection that has already been closed
	conn := serverConn(t)
	require.NoError(t, conn.Close())

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := New(logger, NewHub(logger), nil, Defaults{Width: 7, Height: 6})

	// When: the read loop starts
	err := server.handleMessages(context.Background(), newClient("closed", conn))

	// Then: the read deadline failure is reported
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set read deadline")
}
