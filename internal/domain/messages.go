package domain

// ClientMessage is what a remote renderer sends to drive its controller.
type ClientMessage struct {
	Type   string   `json:"type"`
	Column int      `json:"column"`
	Width  int      `json:"width,omitempty"`
	Height int      `json:"height,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

type ServerMessage struct {
	Type          string       `json:"type"`
	Message       string       `json:"message,omitempty"`
	GameID        string       `json:"gameId,omitempty"`
	Phase         string       `json:"phase,omitempty"`
	Row           *int         `json:"row,omitempty"`
	Column        *int         `json:"column,omitempty"`
	Player        *Player      `json:"player,omitempty"`
	Players       []Player     `json:"players,omitempty"`
	Width         int          `json:"width,omitempty"`
	Height        int          `json:"height,omitempty"`
	Board         [][]PlayerID `json:"board,omitempty"`
	Outcome       OutcomeKind  `json:"outcome,omitempty"`
	Winner        PlayerID     `json:"winner,omitempty"`
	Status        GameStatus   `json:"status,omitempty"`
	CurrentPlayer *Player      `json:"currentPlayer,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

const (
	MsgPiecePlaced = "piece_placed"
	MsgTurnChanged = "turn_changed"
	MsgGameEnded   = "game_ended"
	MsgCollapse    = "collapse"
	MsgBoardReset  = "board_reset"
	MsgState       = "state"
	MsgError       = "error"
)

// MessageRenderer turns renderer events into ServerMessages and hands them
// to Send. Transports that speak JSON build on it.
type MessageRenderer struct {
	Send func(ServerMessage)
}

func (m MessageRenderer) PiecePlaced(e PiecePlacedEvent) {
	row, column, player := e.Row, e.Column, e.Player
	m.Send(ServerMessage{Type: MsgPiecePlaced, GameID: e.GameID, Row: &row, Column: &column, Player: &player})
}

func (m MessageRenderer) TurnChanged(e TurnChangedEvent) {
	player := e.Player
	m.Send(ServerMessage{Type: MsgTurnChanged, GameID: e.GameID, Player: &player})
}

func (m MessageRenderer) GameEnded(e GameEndedEvent) {
	m.Send(ServerMessage{Type: MsgGameEnded, GameID: e.GameID, Outcome: e.Outcome.Kind, Winner: e.Outcome.WinnerID})
}

func (m MessageRenderer) CollapseRequested(e CollapseEvent) {
	m.Send(ServerMessage{Type: MsgCollapse, GameID: e.GameID})
}

func (m MessageRenderer) BoardReset(e BoardResetEvent) {
	m.Send(ServerMessage{Type: MsgBoardReset, GameID: e.GameID, Width: e.Width, Height: e.Height, Players: e.Players})
}
