package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/domain"
	transportHttp "github.com/iamasit07/connect-four/internal/transport/http"
	"github.com/iamasit07/connect-four/internal/transport/redis"
	"github.com/iamasit07/connect-four/internal/transport/websocket"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	cfg.ConfigureLogger()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Redis mirroring is optional; the server runs without it
	var mirror domain.Renderer
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword)
		cancel()
		if err != nil {
			log.Printf("[REDIS] Warning: %v. Event mirroring disabled.", err)
		} else {
			defer client.Close()
			publisher := redis.NewPublisher(client, cfg.RedisChannelPrefix)
			defer publisher.Close()
			mirror = publisher.Renderer()
		}
	}

	wsHandler := websocket.NewHandler(websocket.Settings{
		BoardWidth:  cfg.BoardWidth,
		BoardHeight: cfg.BoardHeight,
		MaxPlayers:  cfg.MaxPlayers,
		SettleDelay: cfg.SettleDelay,
	}, mirror, func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || config.IsAllowedOrigin(cfg.AllowedOrigins, origin)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: transportHttp.NewRouter(wsHandler, cfg.AllowedOrigins),
	}

	go func() {
		log.Printf("[SERVER] Starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[SERVER] %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("[SERVER] Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[SERVER] Forced to shutdown: %v", err)
	}

	log.Println("[SERVER] Exited gracefully")
}
