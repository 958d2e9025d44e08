package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/pkg/uid"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultMaxPlayers  = 4
	DefaultSettleDelay = 1500 * time.Millisecond
)

type Options struct {
	MaxPlayers  int
	SettleDelay time.Duration
	Scheduler   Scheduler
	NewGameID   func() string
}

// Phase is the lifecycle position of a controller.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhasePlaying       Phase = "playing"
	PhaseAwaitingReset Phase = "awaiting_reset"
	PhaseTearingDown   Phase = "tearing_down"
)

type pendingStart struct {
	state *domain.GameState
}

// Controller owns at most one active GameState and reports every change to
// its renderer. All operations and the teardown continuation hold mu, so
// they run one at a time to completion.
type Controller struct {
	mu       sync.Mutex
	renderer domain.Renderer
	opts     Options

	game          *domain.GameState
	gameID        string
	awaitingReset bool
	tearingDown   bool
	settingUp     bool
	teardown      Timer
	pending       *pendingStart
	closed        bool
}

func NewController(renderer domain.Renderer, opts Options) *Controller {
	if opts.MaxPlayers == 0 {
		opts.MaxPlayers = DefaultMaxPlayers
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler()
	}
	if opts.NewGameID == nil {
		opts.NewGameID = uid.GenerateGameID
	}

	return &Controller{renderer: renderer, opts: opts}
}

// ConfigurePlayers builds a roster from colors in list order.
func (c *Controller) ConfigurePlayers(colors []string) ([]domain.Player, error) {
	return BuildRoster(colors, c.opts.MaxPlayers)
}

// StartNewGame builds the next game. With an existing game the old one is
// collapsed first and the new one only becomes active once the settle delay
// has passed. A request made while another start is queued is rejected.
func (c *Controller) StartNewGame(width, height int, roster []domain.Player) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return domain.ErrControllerClosed
	}

	if c.settingUp {
		return domain.ErrSetupInProgress
	}

	if len(roster) > c.opts.MaxPlayers {
		return fmt.Errorf("%w: %d players exceeds maximum of %d", domain.ErrInvalidConfiguration, len(roster), c.opts.MaxPlayers)
	}

	state, err := domain.NewGameState(width, height, roster)
	if err != nil {
		return err
	}

	if c.game == nil && !c.tearingDown {
		c.activateLocked(state)
		return nil
	}

	c.settingUp = true
	c.pending = &pendingStart{state: state}
	log.Printf("[GAME] New %dx%d game queued behind teardown of %s", width, height, c.gameID)

	if !c.tearingDown {
		c.collapseLocked()
	}

	return nil
}

// HandleColumnSelect plays the current player's piece. Full columns, finished
// games and selects with no active game are silently ignored.
func (c *Controller) HandleColumnSelect(column int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.game == nil || c.tearingDown {
		log.Debugf("[GAME] Column %d ignored: no active game", column)
		return nil
	}

	mover := c.game.CurrentPlayer()

	res, err := c.game.DropPiece(column)
	if err != nil {
		return err
	}
	if !res.Moved {
		log.Debugf("[GAME] Column %d ignored in game %s", column, c.gameID)
		return nil
	}

	c.renderer.PiecePlaced(domain.PiecePlacedEvent{GameID: c.gameID, Row: res.Row, Column: res.Column, Player: mover})

	switch res.Result {
	case domain.ResultWin:
		c.awaitingReset = true
		log.Printf("[GAME] Game %s won by player %d after %d moves", c.gameID, mover.ID, c.game.MoveCount())
		c.renderer.GameEnded(domain.GameEndedEvent{
			GameID:  c.gameID,
			Outcome: domain.Outcome{Kind: domain.OutcomeWin, WinnerID: mover.ID},
		})
	case domain.ResultTie:
		c.awaitingReset = true
		log.Printf("[GAME] Game %s tied", c.gameID)
		c.renderer.GameEnded(domain.GameEndedEvent{
			GameID:  c.gameID,
			Outcome: domain.Outcome{Kind: domain.OutcomeTie},
		})
	default:
		next := c.game.AdvanceTurn()
		c.renderer.TurnChanged(domain.TurnChangedEvent{GameID: c.gameID, Player: next})
	}

	return nil
}

// EndGameAndCollapse starts tearing down the active game. The game reference
// is dropped after the settle delay.
func (c *Controller) EndGameAndCollapse() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.game == nil || c.tearingDown {
		return
	}

	c.collapseLocked()
}

// ResetGame clears the active board in place and returns it to the first
// player.
func (c *Controller) ResetGame() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.game == nil || c.tearingDown {
		return domain.ErrNoActiveGame
	}

	c.game.Reset()
	c.awaitingReset = false
	log.Printf("[GAME] Game %s reset", c.gameID)
	c.announceLocked()

	return nil
}

// Close stops a pending teardown. Any queued start is dropped, and later
// starts fail with ErrControllerClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.teardown != nil {
		c.teardown.Stop()
		c.teardown = nil
	}
	c.pending = nil
	c.settingUp = false
}

type Snapshot struct {
	GameID        string
	Phase         Phase
	Width         int
	Height        int
	Board         [][]domain.PlayerID
	Players       []domain.Player
	CurrentPlayer domain.Player
	Status        domain.GameStatus
	WinnerID      domain.PlayerID
	SettingUp     bool
}

// State returns a copy of the controller's view, e.g. for a renderer that
// attaches mid-game.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{GameID: c.gameID, Phase: c.phaseLocked(), SettingUp: c.settingUp}
	if c.game == nil {
		return snap
	}

	snap.Width = c.game.Width()
	snap.Height = c.game.Height()
	snap.Board = c.game.Snapshot()
	snap.Players = c.game.Players()
	snap.CurrentPlayer = c.game.CurrentPlayer()
	snap.Status = c.game.Status()
	snap.WinnerID = c.game.WinnerID()

	return snap
}

func (c *Controller) phaseLocked() Phase {
	switch {
	case c.tearingDown:
		return PhaseTearingDown
	case c.game == nil:
		return PhaseIdle
	case c.awaitingReset:
		return PhaseAwaitingReset
	default:
		return PhasePlaying
	}
}

func (c *Controller) collapseLocked() {
	c.game.MarkFinished()
	c.tearingDown = true
	log.Printf("[GAME] Collapsing game %s", c.gameID)
	c.renderer.CollapseRequested(domain.CollapseEvent{GameID: c.gameID})

	c.teardown = c.opts.Scheduler.AfterFunc(c.opts.SettleDelay, c.finishTeardown)
}

// finishTeardown is the settle-delay continuation.
func (c *Controller) finishTeardown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.tearingDown {
		return
	}

	log.Printf("[GAME] Game %s torn down", c.gameID)
	c.game = nil
	c.gameID = ""
	c.awaitingReset = false
	c.tearingDown = false
	c.teardown = nil

	if c.pending != nil {
		state := c.pending.state
		c.pending = nil
		c.settingUp = false
		c.activateLocked(state)
	}
}

func (c *Controller) activateLocked(state *domain.GameState) {
	c.game = state
	c.gameID = c.opts.NewGameID()
	c.awaitingReset = false
	log.Printf("[GAME] Started game %s: %dx%d with %d players", c.gameID, state.Width(), state.Height(), len(state.Players()))
	c.announceLocked()
}

func (c *Controller) announceLocked() {
	c.renderer.BoardReset(domain.BoardResetEvent{
		GameID:  c.gameID,
		Width:   c.game.Width(),
		Height:  c.game.Height(),
		Players: c.game.Players(),
	})
	c.renderer.TurnChanged(domain.TurnChangedEvent{GameID: c.gameID, Player: c.game.CurrentPlayer()})
}
