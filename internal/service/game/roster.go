package game

import (
	"fmt"
	"strings"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColors are used for roster slots configured with an empty color.
var DefaultColors = map[domain.PlayerID]string{
	1: "#FE5D9F",
	2: "#01308F",
	3: "#FFFFFF",
	4: "#000000",
}

// BuildRoster assigns ids 1..N in list order. N must be within [2, maxPlayers].
func BuildRoster(colors []string, maxPlayers int) ([]domain.Player, error) {
	if len(colors) < 2 || len(colors) > maxPlayers {
		return nil, fmt.Errorf("%w: player count %d outside [2, %d]", domain.ErrInvalidConfiguration, len(colors), maxPlayers)
	}

	roster := make([]domain.Player, 0, len(colors))
	for i, color := range colors {
		id := domain.PlayerID(i + 1)

		if color == "" {
			color = DefaultColors[id]
		}
		if color == "" {
			return nil, fmt.Errorf("%w: no color for player %d", domain.ErrInvalidConfiguration, id)
		}

		parsed, err := colorful.Hex(color)
		if err != nil {
			return nil, fmt.Errorf("%w: player %d color %q: %v", domain.ErrInvalidConfiguration, id, color, err)
		}
		// Hex scans a prefix and takes #RGB shorthand; only exact #RRGGBB is accepted
		if len(color) != 7 || !strings.EqualFold(parsed.Hex(), color) {
			return nil, fmt.Errorf("%w: player %d color %q is not #RRGGBB", domain.ErrInvalidConfiguration, id, color)
		}

		roster = append(roster, domain.Player{ID: id, Color: strings.ToUpper(parsed.Hex())})
	}

	return roster, nil
}
