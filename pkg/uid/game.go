package uid

import "github.com/google/uuid"

// GenerateGameID returns a random id for a new game instance.
func GenerateGameID() string {
	return uuid.NewString()
}
