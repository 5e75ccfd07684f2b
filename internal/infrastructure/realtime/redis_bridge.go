package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/fuadmd/WHH-SBG/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultCloseTimeout = 5 * time.Second

// Envelope is the wire format for cross-instance notification fan-out.
// Origin identifies the publishing instance so it can skip its own echo.
type Envelope struct {
	Origin    uuid.UUID `json:"origin"`
	UserID    uuid.UUID `json:"user_id"`
	Message   Message   `json:"message"`
	Timestamp int64     `json:"timestamp"`
}

// RedisBridge relays hub messages between instances using Redis Pub/Sub.
// Each instance publishes locally produced events and forwards received
// events into its own hub.
type RedisBridge struct {
	client     *redis.Client
	ownsClient bool
	origin     uuid.UUID
	channel    string
	hub        *Hub
	logger     *zap.Logger
	cancelFn   context.CancelFunc
	doneCh     chan struct{}
	doneOnce   sync.Once
	mu         sync.Mutex
	isRunning  bool
}

// RedisBridgeOption is a functional option for configuring the bridge
type RedisBridgeOption func(*RedisBridge)

// WithBridgeLogger sets the logger for the bridge
func WithBridgeLogger(logger *zap.Logger) RedisBridgeOption {
	return func(b *RedisBridge) {
		b.logger = logger
	}
}

// NewRedisBridge creates a bridge with its own Redis connection
func NewRedisBridge(cfg config.RedisConfig, channel string, hub *Hub, opts ...RedisBridgeOption) (*RedisBridge, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	bridge := &RedisBridge{
		client:     client,
		ownsClient: true,
		origin:     uuid.New(),
		channel:    channel,
		hub:        hub,
		logger:     zap.NewNop(),
		doneCh:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(bridge)
	}

	return bridge, nil
}

// NewRedisBridgeWithClient creates a bridge with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisBridgeWithClient(client *redis.Client, channel string, hub *Hub, opts ...RedisBridgeOption) *RedisBridge {
	bridge := &RedisBridge{
		client:     client,
		ownsClient: false,
		origin:     uuid.New(),
		channel:    channel,
		hub:        hub,
		logger:     zap.NewNop(),
		doneCh:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(bridge)
	}

	return bridge
}

// Publish sends a user-scoped message to all instances
func (b *RedisBridge) Publish(ctx context.Context, userID uuid.UUID, msg Message) error {
	envelope := Envelope{
		Origin:    b.origin,
		UserID:    userID,
		Message:   msg,
		Timestamp: time.Now().UnixNano(),
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Error("failed to publish realtime envelope",
			zap.String("channel", b.channel),
			zap.Error(err))
		return fmt.Errorf("failed to publish envelope: %w", err)
	}

	return nil
}

// Subscribe listens for envelopes and forwards them into the local hub.
// This method blocks and should be called in a goroutine.
func (b *RedisBridge) Subscribe(ctx context.Context) error {
	b.mu.Lock()
	if b.isRunning {
		b.mu.Unlock()
		return fmt.Errorf("subscription already running")
	}
	b.isRunning = true
	b.mu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)
	b.mu.Lock()
	b.cancelFn = cancel
	b.mu.Unlock()

	pubsub := b.client.Subscribe(subCtx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(subCtx); err != nil {
		b.mu.Lock()
		b.isRunning = false
		b.mu.Unlock()
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Info("subscribed to realtime channel", zap.String("channel", b.channel))

	ch := pubsub.Channel()

	for {
		select {
		case <-subCtx.Done():
			b.mu.Lock()
			b.isRunning = false
			b.mu.Unlock()
			b.markDone()
			return subCtx.Err()
		case msg, ok := <-ch:
			if !ok {
				b.logger.Warn("realtime channel closed")
				b.mu.Lock()
				b.isRunning = false
				b.mu.Unlock()
				b.markDone()
				return nil
			}

			var envelope Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				b.logger.Error("failed to unmarshal realtime envelope",
					zap.String("payload", msg.Payload),
					zap.Error(err))
				continue
			}

			// The local hub already saw messages this instance published.
			if envelope.Origin == b.origin {
				continue
			}

			b.hub.Publish(envelope.UserID, envelope.Message)
		}
	}
}

func (b *RedisBridge) markDone() {
	b.doneOnce.Do(func() {
		close(b.doneCh)
	})
}

// Close releases any resources held by the bridge
func (b *RedisBridge) Close() error {
	b.mu.Lock()
	cancelFn := b.cancelFn
	b.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
		select {
		case <-b.doneCh:
		case <-time.After(defaultCloseTimeout):
			b.logger.Warn("timeout waiting for realtime subscription to stop")
		}
	}

	if b.ownsClient {
		return b.client.Close()
	}
	return nil
}
