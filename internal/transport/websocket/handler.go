package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/pkg/uid"
	log "github.com/sirupsen/logrus"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

type Settings struct {
	BoardWidth  int
	BoardHeight int
	MaxPlayers  int
	SettleDelay time.Duration
}

// Handler gives every websocket connection its own controller. Mirror, when
// set, receives a copy of every event (e.g. the redis publisher).
type Handler struct {
	Settings Settings
	Mirror   domain.Renderer
	Upgrader websocket.Upgrader
}

func NewHandler(settings Settings, mirror domain.Renderer, checkOrigin func(r *http.Request) bool) *Handler {
	return &Handler{
		Settings: settings,
		Mirror:   mirror,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	id, err := uid.GenerateConnectionID()
	if err != nil {
		log.Printf("[WS] %v", err)
		conn.Close()
		return
	}

	h.handleConnection(NewClient(id, conn))
}

type session struct {
	client     *Client
	controller *game.Controller
	roster     []domain.Player
	settings   Settings
}

func (h *Handler) handleConnection(client *Client) {
	conn := client.conn
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	var renderer domain.Renderer = client.Renderer()
	if h.Mirror != nil {
		renderer = domain.MultiRenderer{renderer, h.Mirror}
	}

	s := &session{
		client: client,
		controller: game.NewController(renderer, game.Options{
			MaxPlayers:  h.Settings.MaxPlayers,
			SettleDelay: h.Settings.SettleDelay,
		}),
		settings: h.Settings,
	}

	log.Printf("[WS] Connection %s opened", client.ID)

	defer func() {
		close(done)
		s.controller.Close()
		client.Close()
		log.Printf("[WS] Connection %s closed", client.ID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Connection %s dropped: %v", client.ID, err)
			}
			return
		}

		var message domain.ClientMessage
		if err := json.Unmarshal(data, &message); err != nil {
			client.SendError("invalid message format")
			continue
		}

		if err := s.dispatch(message); err != nil {
			log.Debugf("[WS] %s %q rejected: %v", client.ID, message.Type, err)
			client.SendError(err.Error())
		}
	}
}

var errUnknownMessage = errors.New("unknown message type")

func (s *session) dispatch(message domain.ClientMessage) error {
	switch message.Type {
	case "configure":
		roster, err := s.controller.ConfigurePlayers(message.Colors)
		if err != nil {
			return err
		}
		s.roster = roster
		return nil

	case "start":
		roster := s.roster
		if len(message.Colors) > 0 || roster == nil {
			colors := message.Colors
			if len(colors) == 0 {
				colors = []string{"", ""}
			}
			var err error
			if roster, err = s.controller.ConfigurePlayers(colors); err != nil {
				return err
			}
			s.roster = roster
		}

		width, height := message.Width, message.Height
		if width == 0 {
			width = s.settings.BoardWidth
		}
		if height == 0 {
			height = s.settings.BoardHeight
		}
		return s.controller.StartNewGame(width, height, roster)

	case "select":
		return s.controller.HandleColumnSelect(message.Column)

	case "collapse":
		s.controller.EndGameAndCollapse()
		return nil

	case "reset":
		return s.controller.ResetGame()

	case "state":
		return s.client.SendMessage(StateMessage(s.controller.State()))

	default:
		return fmt.Errorf("%w: %q", errUnknownMessage, message.Type)
	}
}

// StateMessage renders a controller snapshot for a client.
func StateMessage(snap game.Snapshot) domain.ServerMessage {
	msg := domain.ServerMessage{
		Type:    domain.MsgState,
		GameID:  snap.GameID,
		Phase:   string(snap.Phase),
		Width:   snap.Width,
		Height:  snap.Height,
		Board:   snap.Board,
		Players: snap.Players,
		Status:  snap.Status,
		Winner:  snap.WinnerID,
	}
	if snap.GameID != "" {
		current := snap.CurrentPlayer
		msg.CurrentPlayer = &current
	}
	return msg
}
