package main

import (
	"flag"
	"os"
	"strings"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/internal/transport/terminal"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found")
	}

	cfg := config.LoadConfig()
	cfg.ConfigureLogger()
	log.SetOutput(os.Stderr)

	players := flag.Int("players", 2, "number of players")
	colors := flag.String("colors", "", "comma separated #RRGGBB colors, one per player")
	flag.IntVar(&cfg.BoardWidth, "width", cfg.BoardWidth, "board width")
	flag.IntVar(&cfg.BoardHeight, "height", cfg.BoardHeight, "board height")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	slots := make([]string, *players)
	if *colors != "" {
		slots = strings.Split(*colors, ",")
	}

	renderer := terminal.NewRenderer(os.Stdout)
	controller := game.NewController(renderer, game.Options{
		MaxPlayers:  cfg.MaxPlayers,
		SettleDelay: cfg.SettleDelay,
	})
	defer controller.Close()

	roster, err := controller.ConfigurePlayers(slots)
	if err != nil {
		log.Fatalf("Invalid players: %v", err)
	}

	session := &terminal.Session{
		Controller: controller,
		Width:      cfg.BoardWidth,
		Height:     cfg.BoardHeight,
		Roster:     roster,
		Out:        renderer,
	}
	if err := session.Run(os.Stdin); err != nil {
		log.Fatalf("Session failed: %v", err)
	}
}
