package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/fuadmd/WHH-SBG/internal/domain/notification"
)

// NotificationResponse is an inbox record as returned to clients
type NotificationResponse struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	ActorID   *uuid.UUID        `json:"actor_id,omitempty"`
	PostID    *uuid.UUID        `json:"post_id,omitempty"`
	CommentID *uuid.UUID        `json:"comment_id,omitempty"`
	Type      notification.Type `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	IsRead    bool              `json:"is_read"`
	CreatedAt time.Time         `json:"created_at"`
}

// ToNotificationResponse converts a domain notification to a response
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		ActorID:   n.ActorID,
		PostID:    n.PostID,
		CommentID: n.CommentID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of domain notifications
func ToNotificationResponses(items []notification.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(items))
	for i := range items {
		responses[i] = ToNotificationResponse(&items[i])
	}
	return responses
}
