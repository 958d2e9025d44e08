package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/muesli/termenv"
)

const (
	pieceGlyph = "●"
	emptyGlyph = "·"
)

// Renderer draws the board on a terminal. It keeps its own copy of the
// grid built purely from events.
type Renderer struct {
	mu     sync.Mutex
	out    *termenv.Output
	board  [][]domain.PlayerID
	colors map[domain.PlayerID]string
}

func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...), colors: map[domain.PlayerID]string{}}
}

// Write prints p between redraws, so session text never lands inside a board.
func (r *Renderer) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.out.Write(p)
}

func (r *Renderer) BoardReset(e domain.BoardResetEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.board = make([][]domain.PlayerID, e.Height)
	for i := range r.board {
		r.board[i] = make([]domain.PlayerID, e.Width)
	}
	r.colors = make(map[domain.PlayerID]string, len(e.Players))
	for _, p := range e.Players {
		r.colors[p.ID] = p.Color
	}

	fmt.Fprintf(r.out, "New game %s (%dx%d, %d players)\n", e.GameID, e.Width, e.Height, len(e.Players))
	r.drawLocked()
}

func (r *Renderer) PiecePlaced(e domain.PiecePlacedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.Row >= 0 && e.Row < len(r.board) && e.Column >= 0 && e.Column < len(r.board[e.Row]) {
		r.board[e.Row][e.Column] = e.Player.ID
	}
	r.drawLocked()
}

func (r *Renderer) TurnChanged(e domain.TurnChangedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "Player %s %d to move\n", r.pieceLocked(e.Player.ID), e.Player.ID)
}

func (r *Renderer) GameEnded(e domain.GameEndedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.Outcome.Kind == domain.OutcomeTie {
		fmt.Fprintln(r.out, "Tie!")
		return
	}
	fmt.Fprintf(r.out, "Player %d won!\n", e.Outcome.WinnerID)
}

func (r *Renderer) CollapseRequested(e domain.CollapseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.board = nil
	fmt.Fprintln(r.out, "Board collapsing...")
}

func (r *Renderer) pieceLocked(id domain.PlayerID) string {
	if id == domain.Empty {
		return emptyGlyph
	}
	return r.out.String(pieceGlyph).Foreground(r.out.Color(r.colors[id])).String()
}

func (r *Renderer) drawLocked() {
	if len(r.board) == 0 {
		return
	}

	var sb strings.Builder
	for c := range r.board[0] {
		fmt.Fprintf(&sb, "%d ", c%10)
	}
	sb.WriteString("\n")

	for _, row := range r.board {
		for _, cell := range row {
			sb.WriteString(r.pieceLocked(cell))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	fmt.Fprint(r.out, sb.String())
}
