package realtime

import (
	"context"

	"github.com/google/uuid"

	notificationapp "github.com/fuadmd/WHH-SBG/internal/application/notification"
	"github.com/fuadmd/WHH-SBG/internal/domain/notification"
)

// NotificationEvent is the SSE event name used for inbox pushes
const NotificationEvent = "notification"

// NotificationPublisher delivers stored notifications to connected clients
// through the local hub, and through Redis to other instances when a bridge
// is configured.
type NotificationPublisher struct {
	hub    *Hub
	bridge *RedisBridge
}

var _ notificationapp.LivePublisher = (*NotificationPublisher)(nil)

// NewNotificationPublisher creates a publisher. bridge may be nil for
// single-instance deployments.
func NewNotificationPublisher(hub *Hub, bridge *RedisBridge) *NotificationPublisher {
	return &NotificationPublisher{hub: hub, bridge: bridge}
}

// PublishNotification pushes a notification to the user's live subscriptions
func (p *NotificationPublisher) PublishNotification(ctx context.Context, userID uuid.UUID, n *notification.Notification) error {
	msg, err := NewMessage(NotificationEvent, n)
	if err != nil {
		return err
	}
	msg.ID = n.ID.String()

	p.hub.Publish(userID, msg)

	if p.bridge != nil {
		return p.bridge.Publish(ctx, userID, msg)
	}
	return nil
}
