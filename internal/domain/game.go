package domain

import "fmt"

// GameState is the authoritative board and turn state of one game.
type GameState struct {
	board     *Board
	order     *TurnOrder
	status    GameStatus
	winner    bool
	winnerID  PlayerID
	moveCount int
}

func NewGameState(width, height int, players []Player) (*GameState, error) {
	if width < MinColumns || height < MinRows {
		return nil, fmt.Errorf("%w: board %dx%d is smaller than %dx%d", ErrInvalidConfiguration, width, height, MinColumns, MinRows)
	}

	if len(players) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidConfiguration, len(players))
	}

	seen := make(map[PlayerID]bool, len(players))
	for _, p := range players {
		if p.ID <= Empty {
			return nil, fmt.Errorf("%w: player id %d must be positive", ErrInvalidConfiguration, p.ID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate player id %d", ErrInvalidConfiguration, p.ID)
		}
		seen[p.ID] = true
	}

	return &GameState{
		board:  NewBoard(width, height),
		order:  NewTurnOrder(players),
		status: StatusInProgress,
	}, nil
}

func (g *GameState) Width() int { return g.board.Width() }
func (g *GameState) Height() int { return g.board.Height() }

func (g *GameState) Cell(row, column int) PlayerID {
	return g.board.At(row, column)
}

func (g *GameState) CurrentPlayer() Player { return g.order.Current() }
func (g *GameState) Players() []Player { return g.order.Players() }
func (g *GameState) Status() GameStatus { return g.status }
func (g *GameState) WinnerID() PlayerID { return g.winnerID }
func (g *GameState) MoveCount() int { return g.moveCount }
func (g *GameState) Snapshot() [][]PlayerID {
	return g.board.Snapshot()
}

// IsFinished is true after a win or a tie (and after a collapse).
func (g *GameState) IsFinished() bool {
	return g.winner
}

func (g *GameState) LowestEmptyRow(column int) (int, bool, error) {
	return g.board.LowestEmptyRow(column)
}

// DropPiece places the current player's piece in column. Win is evaluated
// before tie, so a board-filling winning move is a win. The turn is not
// advanced here.
func (g *GameState) DropPiece(column int) (MoveResult, error) {
	if g.winner {
		return MoveResult{}, nil
	}

	row, ok, err := g.board.LowestEmptyRow(column)
	if err != nil {
		return MoveResult{}, err
	}
	if !ok {
		return MoveResult{}, nil
	}

	player := g.order.Current().ID
	g.board.place(row, column, player)
	g.moveCount++

	result := MoveResult{Moved: true, Row: row, Column: column, Player: player, Result: ResultContinue}

	switch {
	case g.CheckForWin():
		g.winner = true
		g.winnerID = player
		g.status = StatusWon
		result.Result = ResultWin
	case g.CheckForTie():
		g.winner = true
		g.status = StatusTied
		result.Result = ResultTie
	}

	return result, nil
}

// CheckForWin reports whether the current player owns four in a row anywhere.
func (g *GameState) CheckForWin() bool {
	return HasLine(g.board, g.order.Current().ID)
}

func (g *GameState) CheckForTie() bool {
	return g.board.IsFull()
}

func (g *GameState) AdvanceTurn() Player {
	return g.order.Next()
}

// MarkFinished makes the game terminal without a result, used on teardown.
func (g *GameState) MarkFinished() {
	g.winner = true
}

func (g *GameState) Reset() {
	g.board.clear()
	g.order.Rewind()
	g.status = StatusInProgress
	g.winner = false
	g.winnerID = Empty
	g.moveCount = 0
}
