// Package realtime fans live notification events out to connected clients.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Message is a single event delivered to a subscribed client
type Message struct {
	Event string `json:"event"`
	Data  string `json:"data"`
	ID    string `json:"id,omitempty"`
}

// NewMessage builds a Message with a JSON-encoded payload
func NewMessage(event string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Event: event,
		Data:  string(data),
		ID:    uuid.New().String(),
	}, nil
}

// Subscription is one client's live feed. The channel is closed when the
// subscription is cancelled or the hub shuts down.
type Subscription struct {
	ID     string
	UserID uuid.UUID
	C      chan Message

	hub       *Hub
	closeOnce sync.Once
}

// Close detaches the subscription from the hub and closes its channel
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.hub.remove(s)
		close(s.C)
	})
}

// Hub tracks per-user subscriptions and delivers messages to them.
// Slow clients get messages dropped rather than blocking the publisher.
type Hub struct {
	mu      sync.RWMutex
	byUser  map[uuid.UUID]map[string]*Subscription
	buffer  int
	logger  *zap.Logger
	closed  bool
	started time.Time
}

// NewHub creates a hub with the given per-client channel buffer
func NewHub(buffer int, logger *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		byUser:  make(map[uuid.UUID]map[string]*Subscription),
		buffer:  buffer,
		logger:  logger,
		started: time.Now(),
	}
}

// Subscribe registers a new live feed for a user
func (h *Hub) Subscribe(userID uuid.UUID) *Subscription {
	sub := &Subscription{
		ID:     uuid.New().String(),
		UserID: userID,
		C:      make(chan Message, h.buffer),
		hub:    h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		sub.closeOnce.Do(func() {
			close(sub.C)
		})
		return sub
	}

	if h.byUser[userID] == nil {
		h.byUser[userID] = make(map[string]*Subscription)
	}
	h.byUser[userID][sub.ID] = sub

	h.logger.Debug("realtime client subscribed",
		zap.String("subscription_id", sub.ID),
		zap.String("user_id", userID.String()),
	)
	return sub
}

// Publish delivers a message to all of one user's subscriptions
func (h *Hub) Publish(userID uuid.UUID, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.byUser[userID] {
		select {
		case sub.C <- msg:
		default:
			// Channel full, client is not keeping up
			h.logger.Warn("realtime client channel full, dropping message",
				zap.String("subscription_id", sub.ID),
				zap.String("event", msg.Event),
			)
		}
	}
}

// Broadcast delivers a message to every subscription on the hub
func (h *Hub) Broadcast(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, subs := range h.byUser {
		for _, sub := range subs {
			select {
			case sub.C <- msg:
			default:
				h.logger.Warn("realtime client channel full, dropping message",
					zap.String("subscription_id", sub.ID),
					zap.String("event", msg.Event),
				)
			}
		}
	}
}

// ClientCount returns the number of active subscriptions
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, subs := range h.byUser {
		count += len(subs)
	}
	return count
}

// Close shuts the hub down and closes every subscription channel
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, subs := range h.byUser {
		for _, sub := range subs {
			sub.closeOnce.Do(func() {
				close(sub.C)
			})
		}
	}
	h.byUser = make(map[uuid.UUID]map[string]*Subscription)
	h.logger.Info("realtime hub closed")
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.byUser[sub.UserID]; ok {
		delete(subs, sub.ID)
		if len(subs) == 0 {
			delete(h.byUser, sub.UserID)
		}
	}
}
