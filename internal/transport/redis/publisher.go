package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const publishTimeout = 2 * time.Second

// Connect opens a client and checks it with a ping.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	log.Println("[REDIS] Connected successfully")
	return client, nil
}

const queueSize = 256

// Publisher mirrors game events onto one pub/sub channel per game so that
// renderers in other processes can follow along. Events are queued and
// published by a single goroutine, so a slow redis never blocks the
// controller. When the queue is full events are dropped.
type Publisher struct {
	client *redis.Client
	prefix string

	mu     sync.Mutex
	queue  chan domain.ServerMessage
	done   chan struct{}
	closed bool
}

func NewPublisher(client *redis.Client, prefix string) *Publisher {
	p := &Publisher{
		client: client,
		prefix: prefix,
		queue:  make(chan domain.ServerMessage, queueSize),
		done:   make(chan struct{}),
	}
	go p.drain()
	return p
}

func (p *Publisher) Channel(gameID string) string {
	return p.prefix + ":" + gameID
}

// Renderer returns the publisher as a controller event sink.
func (p *Publisher) Renderer() domain.Renderer {
	return domain.MessageRenderer{Send: p.enqueue}
}

func (p *Publisher) enqueue(msg domain.ServerMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	select {
	case p.queue <- msg:
	default:
		log.Printf("[REDIS] Queue full, dropping %s for game %s", msg.Type, msg.GameID)
	}
}

func (p *Publisher) drain() {
	defer close(p.done)

	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := p.Publish(ctx, msg); err != nil {
			log.Printf("[REDIS] %v", err)
		}
		cancel()
	}
}

// Close stops accepting events and waits until the queued ones are published.
func (p *Publisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	<-p.done
}

func (p *Publisher) Publish(ctx context.Context, msg domain.ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.Type, err)
	}

	channel := p.Channel(msg.GameID)
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s to %s: %w", msg.Type, channel, err)
	}

	return nil
}

// Subscribe decodes the messages of one game until ctx is done.
func (p *Publisher) Subscribe(ctx context.Context, gameID string) (<-chan domain.ServerMessage, error) {
	sub := p.client.Subscribe(ctx, p.Channel(gameID))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", p.Channel(gameID), err)
	}

	out := make(chan domain.ServerMessage)
	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}
				var msg domain.ServerMessage
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					log.Printf("[REDIS] Dropping undecodable message on %s: %v", m.Channel, err)
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
