package redis

import (
	"context"
	"testing"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxWaitDuration = 120 * time.Second

// startRedis runs a throwaway redis container, skipping when docker is absent.
func startRedis(t *testing.T) (context.Context, *redis.Client) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not connect to docker: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker is not reachable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "alpine",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}
	_ = resource.Expire(120)

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("could not purge resource: %v", err)
		}
	})

	pool.MaxWait = maxWaitDuration

	var client *redis.Client
	if err := pool.Retry(func() error {
		var connErr error
		client, connErr = Connect(ctx, resource.GetHostPort("6379/tcp"), "")
		return connErr
	}); err != nil {
		t.Fatalf("could not connect to redis: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return ctx, client
}

func TestPublisher_MirrorsControllerEvents(t *testing.T) {
	ctx, client := startRedis(t)
	publisher := NewPublisher(client, "test")
	defer publisher.Close()

	// Given: a subscriber on the channel of the game about to start
	sub, err := publisher.Subscribe(ctx, "game-1")
	require.NoError(t, err)

	ctrl := game.NewController(publisher.Renderer(), game.Options{
		NewGameID: func() string { return "game-1" },
	})
	defer ctrl.Close()

	roster, err := ctrl.ConfigurePlayers([]string{"", ""})
	require.NoError(t, err)

	// When: a game starts and one piece is dropped
	require.NoError(t, ctrl.StartNewGame(7, 6, roster))
	require.NoError(t, ctrl.HandleColumnSelect(3))

	// Then: the subscriber receives the four events in order
	var types []string
	for len(types) < 4 {
		select {
		case msg := <-sub:
			assert.Equal(t, "game-1", msg.GameID)
			types = append(types, msg.Type)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out after %v", types)
		}
	}

	assert.Equal(t, []string{
		domain.MsgBoardReset,
		domain.MsgTurnChanged,
		domain.MsgPiecePlaced,
		domain.MsgTurnChanged,
	}, types)
}

func TestPublisher_Channel(t *testing.T) {
	p := NewPublisher(nil, "connect4")
	defer p.Close()

	assert.Equal(t, "connect4:abc", p.Channel("abc"))
}

func TestPublisher_DoesNotBlockController(t *testing.T) {
	// Given: a publisher whose redis never answers
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()
	publisher := NewPublisher(client, "test")

	ctrl := game.NewController(publisher.Renderer(), game.Options{})
	defer ctrl.Close()
	roster, err := ctrl.ConfigurePlayers([]string{"", ""})
	require.NoError(t, err)

	// When: a game is started and played
	begin := time.Now()
	require.NoError(t, ctrl.StartNewGame(7, 6, roster))
	for _, col := range []int{0, 1, 0, 1, 0, 1} {
		require.NoError(t, ctrl.HandleColumnSelect(col))
	}

	// Then: the moves return without waiting on publish
	assert.Less(t, time.Since(begin), publishTimeout)

	// Then: Close drains the queue and later events are dropped quietly
	publisher.Close()
	publisher.Close()
	publisher.Renderer().CollapseRequested(domain.CollapseEvent{GameID: "late"})
}
