package domain

// PlayerID is the ordinal id of a player. It doubles as a cell occupant:
// Empty marks an unoccupied cell.
type PlayerID int

const (
	Empty PlayerID = 0
)

// for board representation
const (
	MinRows    = 4
	MinColumns = 4
	ToWin      = 4

	DefaultRows    = 6
	DefaultColumns = 7
)

type Player struct {
	ID    PlayerID `json:"id"`
	Color string   `json:"color"`
}

// to represent the game status
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusTied       GameStatus = "tied"
)

// MoveOutcome is what an accepted move did to the game.
type MoveOutcome string

const (
	ResultContinue MoveOutcome = "continue"
	ResultWin      MoveOutcome = "win"
	ResultTie      MoveOutcome = "tie"
)

// MoveResult is returned by DropPiece. When Moved is false nothing changed
// and the remaining fields are zero.
type MoveResult struct {
	Moved  bool
	Row    int
	Column int
	Player PlayerID
	Result MoveOutcome
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidConfiguration Error = "invalid configuration"
	ErrInvalidMove          Error = "invalid move"
	ErrSetupInProgress      Error = "game setup already in progress"
	ErrNoActiveGame         Error = "no active game"
	ErrControllerClosed     Error = "controller closed"
)
