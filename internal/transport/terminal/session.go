package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/connect-four/internal/domain"
)

// Controller is the part of game.Controller a terminal session drives.
type Controller interface {
	StartNewGame(width, height int, roster []domain.Player) error
	HandleColumnSelect(column int) error
	EndGameAndCollapse()
	ResetGame() error
}

// Session drives a controller from line input. Out is normally the
// terminal Renderer so session text and board redraws share one lock.
type Session struct {
	Controller Controller
	Width      int
	Height     int
	Roster     []domain.Player
	Out        io.Writer
}

const help = "commands: <column> drop a piece, n new game, c collapse, r reset, q quit"

// Run reads one command per line until q or EOF.
func (s *Session) Run(in io.Reader) error {
	fmt.Fprintln(s.Out, help)

	if err := s.Controller.StartNewGame(s.Width, s.Height, s.Roster); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		quit, err := s.handle(line)
		if err != nil {
			fmt.Fprintf(s.Out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}

	return scanner.Err()
}

func (s *Session) handle(line string) (bool, error) {
	switch strings.ToLower(line) {
	case "q", "quit":
		return true, nil
	case "n", "new":
		return false, s.Controller.StartNewGame(s.Width, s.Height, s.Roster)
	case "c", "collapse":
		s.Controller.EndGameAndCollapse()
		return false, nil
	case "r", "reset":
		return false, s.Controller.ResetGame()
	case "h", "help", "?":
		fmt.Fprintln(s.Out, help)
		return false, nil
	}

	column, err := strconv.Atoi(line)
	if err != nil {
		return false, fmt.Errorf("unknown command %q", line)
	}

	return false, s.Controller.HandleColumnSelect(column)
}
