package domain

type PiecePlacedEvent struct {
	GameID string
	Row    int
	Column int
	Player Player
}

type TurnChangedEvent struct {
	GameID string
	Player Player
}

type OutcomeKind string

const (
	OutcomeWin OutcomeKind = "win"
	OutcomeTie OutcomeKind = "tie"
)

// Outcome is Win(WinnerID) or Tie. WinnerID is Empty for a tie.
type Outcome struct {
	Kind     OutcomeKind
	WinnerID PlayerID
}

type GameEndedEvent struct {
	GameID  string
	Outcome Outcome
}

type CollapseEvent struct {
	GameID string
}

type BoardResetEvent struct {
	GameID  string
	Width   int
	Height  int
	Players []Player
}

// Renderer receives the state changes of a game. Implementations must not
// call back into the controller that notifies them.
type Renderer interface {
	PiecePlaced(e PiecePlacedEvent)
	TurnChanged(e TurnChangedEvent)
	GameEnded(e GameEndedEvent)
	CollapseRequested(e CollapseEvent)
	BoardReset(e BoardResetEvent)
}

// MultiRenderer fans every event out to each renderer in order.
type MultiRenderer []Renderer

func (m MultiRenderer) PiecePlaced(e PiecePlacedEvent) {
	for _, r := range m {
		r.PiecePlaced(e)
	}
}

func (m MultiRenderer) TurnChanged(e TurnChangedEvent) {
	for _, r := range m {
		r.TurnChanged(e)
	}
}

func (m MultiRenderer) GameEnded(e GameEndedEvent) {
	for _, r := range m {
		r.GameEnded(e)
	}
}

func (m MultiRenderer) CollapseRequested(e CollapseEvent) {
	for _, r := range m {
		r.CollapseRequested(e)
	}
}

func (m MultiRenderer) BoardReset(e BoardResetEvent) {
	for _, r := range m {
		r.BoardReset(e)
	}
}
