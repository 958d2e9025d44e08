package domain

// TurnOrder is a fixed cyclic sequence over the roster with a cursor.
type TurnOrder struct {
	players []Player
	index   int
}

func NewTurnOrder(players []Player) *TurnOrder {
	order := make([]Player, len(players))
	copy(order, players)
	return &TurnOrder{players: order}
}

func (t *TurnOrder) Current() Player {
	return t.players[t.index]
}

// Next moves the cursor to the successor of the current player and returns it.
func (t *TurnOrder) Next() Player {
	t.index = (t.index + 1) % len(t.players)
	return t.players[t.index]
}

func (t *TurnOrder) Rewind() {
	t.index = 0
}

func (t *TurnOrder) Len() int {
	return len(t.players)
}

func (t *TurnOrder) Players() []Player {
	out := make([]Player, len(t.players))
	copy(out, t.players)
	return out
}
