package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRenderer(t *testing.T) {
	var sent []ServerMessage
	r := MultiRenderer{MessageRenderer{Send: func(m ServerMessage) { sent = append(sent, m) }}}

	r.PiecePlaced(PiecePlacedEvent{GameID: "g", Row: 0, Column: 0, Player: Player{ID: 1}})
	r.GameEnded(GameEndedEvent{GameID: "g", Outcome: Outcome{Kind: OutcomeTie}})

	require.Len(t, sent, 2)

	// a piece in the top-left corner still carries its coordinates
	data, err := json.Marshal(sent[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"piece_placed","gameId":"g","row":0,"column":0,"player":{"id":1,"color":""}}`, string(data))

	data, err = json.Marshal(sent[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"game_ended","gameId":"g","outcome":"tie"}`, string(data))
}
