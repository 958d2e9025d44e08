package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mirrorRenderer struct {
	mu    sync.Mutex
	count int
}

func (m *mirrorRenderer) bump() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count++
}

func (m *mirrorRenderer) PiecePlaced(domain.PiecePlacedEvent) { m.bump() }
func (m *mirrorRenderer) TurnChanged(domain.TurnChangedEvent) { m.bump() }
func (m *mirrorRenderer) GameEnded(domain.GameEndedEvent) { m.bump() }
func (m *mirrorRenderer) CollapseRequested(domain.CollapseEvent) { m.bump() }
func (m *mirrorRenderer) BoardReset(domain.BoardResetEvent) { m.bump() }

func (m *mirrorRenderer) seen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

func dial(t *testing.T, mirror domain.Renderer) *websocket.Conn {
	t.Helper()

	h := NewHandler(Settings{BoardWidth: 7, BoardHeight: 6, MaxPlayers: 4, SettleDelay: 20 * time.Millisecond},
		mirror, func(*http.Request) bool { return true })
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg domain.ClientMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func read(t *testing.T, conn *websocket.Conn) domain.ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg domain.ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHandler_StartAndSelect(t *testing.T) {
	mirror := &mirrorRenderer{}
	conn := dial(t, mirror)

	// When: a game is started with default players and a piece is dropped
	send(t, conn, domain.ClientMessage{Type: "start"})

	reset := read(t, conn)
	require.Equal(t, domain.MsgBoardReset, reset.Type)
	assert.Equal(t, 7, reset.Width)
	assert.Equal(t, 6, reset.Height)
	require.Len(t, reset.Players, 2)
	assert.Equal(t, "#FE5D9F", reset.Players[0].Color)

	turn := read(t, conn)
	require.Equal(t, domain.MsgTurnChanged, turn.Type)
	assert.Equal(t, domain.PlayerID(1), turn.Player.ID)
	assert.Equal(t, reset.GameID, turn.GameID)

	send(t, conn, domain.ClientMessage{Type: "select", Column: 0})

	placed := read(t, conn)
	require.Equal(t, domain.MsgPiecePlaced, placed.Type)
	require.NotNil(t, placed.Row)
	require.NotNil(t, placed.Column)
	assert.Equal(t, 5, *placed.Row)
	assert.Equal(t, 0, *placed.Column)
	assert.Equal(t, domain.PlayerID(1), placed.Player.ID)

	turn = read(t, conn)
	require.Equal(t, domain.MsgTurnChanged, turn.Type)
	assert.Equal(t, domain.PlayerID(2), turn.Player.ID)

	// Then: the state snapshot reflects the move
	send(t, conn, domain.ClientMessage{Type: "state"})
	state := read(t, conn)
	require.Equal(t, domain.MsgState, state.Type)
	assert.Equal(t, "playing", state.Phase)
	assert.Equal(t, domain.PlayerID(1), state.Board[5][0])
	assert.Equal(t, domain.PlayerID(2), state.CurrentPlayer.ID)

	// Then: the mirror saw every event
	assert.Equal(t, 4, mirror.seen())
}

func TestHandler_ConfigureAndReplace(t *testing.T) {
	conn := dial(t, nil)

	send(t, conn, domain.ClientMessage{Type: "configure", Colors: []string{"#111111", "#222222", "#333333"}})
	send(t, conn, domain.ClientMessage{Type: "start", Width: 5, Height: 4})

	reset := read(t, conn)
	require.Len(t, reset.Players, 3)
	assert.Equal(t, 5, reset.Width)
	read(t, conn)

	// When: a second game is started while the first is active
	send(t, conn, domain.ClientMessage{Type: "start"})

	// Then: the first collapses, then the second arrives after the delay
	collapse := read(t, conn)
	require.Equal(t, domain.MsgCollapse, collapse.Type)
	assert.Equal(t, reset.GameID, collapse.GameID)

	next := read(t, conn)
	require.Equal(t, domain.MsgBoardReset, next.Type)
	assert.NotEqual(t, reset.GameID, next.GameID)
	assert.Equal(t, 7, next.Width)
	assert.Len(t, next.Players, 3)
}

func TestHandler_Errors(t *testing.T) {
	conn := dial(t, nil)

	cases := []struct {
		msg  domain.ClientMessage
		want string
	}{
		{domain.ClientMessage{Type: "configure", Colors: []string{"#111111"}}, "invalid configuration"},
		{domain.ClientMessage{Type: "reset"}, "no active game"},
		{domain.ClientMessage{Type: "dance"}, "unknown message type"},
	}

	for _, tc := range cases {
		send(t, conn, tc.msg)
		msg := read(t, conn)
		assert.Equal(t, domain.MsgError, msg.Type)
		assert.Contains(t, msg.Message, tc.want)
	}

	send(t, conn, domain.ClientMessage{Type: "start"})
	read(t, conn)
	read(t, conn)

	send(t, conn, domain.ClientMessage{Type: "select", Column: 12})
	msg := read(t, conn)
	assert.Equal(t, domain.MsgError, msg.Type)
	assert.Contains(t, msg.Message, "invalid move")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	msg = read(t, conn)
	assert.Equal(t, "invalid message format", msg.Message)
}
