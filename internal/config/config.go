package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port               string
	BoardWidth         int
	BoardHeight        int
	MaxPlayers         int
	SettleDelay        time.Duration
	LogLevel           string
	AllowedOrigins     []string
	RedisURL           string
	RedisPassword      string
	RedisChannelPrefix string
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")
	settleDelayMS := GetEnvAsInt("SETTLE_DELAY_MS", 1500)

	// CORS: localhost for development plus CSV values
	allowedOrigins := []string{"http://localhost:5173"}
	if extras := GetEnv("ALLOWED_ORIGINS", ""); extras != "" {
		for _, origin := range strings.Split(extras, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	return &Config{
		Port:               port,
		BoardWidth:         GetEnvAsInt("BOARD_WIDTH", domain.DefaultColumns),
		BoardHeight:        GetEnvAsInt("BOARD_HEIGHT", domain.DefaultRows),
		MaxPlayers:         GetEnvAsInt("MAX_PLAYERS", 4),
		SettleDelay:        time.Duration(settleDelayMS) * time.Millisecond,
		LogLevel:           GetEnv("LOG_LEVEL", "info"),
		AllowedOrigins:     allowedOrigins,
		RedisURL:           GetEnv("REDIS_URL", ""),
		RedisPassword:      GetEnv("REDIS_PASSWORD", ""),
		RedisChannelPrefix: GetEnv("REDIS_CHANNEL_PREFIX", "connect4"),
	}
}

// Validate checks the game limits before anything is started with them.
func (c *Config) Validate() error {
	if c.BoardWidth < domain.MinColumns || c.BoardHeight < domain.MinRows {
		return fmt.Errorf("%w: board %dx%d is smaller than %dx%d", domain.ErrInvalidConfiguration,
			c.BoardWidth, c.BoardHeight, domain.MinColumns, domain.MinRows)
	}
	if c.MaxPlayers < 2 {
		return fmt.Errorf("%w: MAX_PLAYERS must be at least 2, got %d", domain.ErrInvalidConfiguration, c.MaxPlayers)
	}
	if c.SettleDelay <= 0 {
		return fmt.Errorf("%w: SETTLE_DELAY_MS must be positive", domain.ErrInvalidConfiguration)
	}
	return nil
}

// ConfigureLogger applies LOG_LEVEL to the standard logrus logger.
func (c *Config) ConfigureLogger() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Printf("Invalid LOG_LEVEL %q, using info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func IsAllowedOrigin(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o == origin {
			return true
		}
	}
	return false
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
