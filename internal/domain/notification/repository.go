package notification

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for notification persistence
type Repository interface {
	// FindByID finds a notification by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindByUser finds the newest notifications for a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Notification, error)

	// FindUnreadByUser finds the unread notifications for a user, newest first
	FindUnreadByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error)

	// CountUnread counts a user's unread notifications
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// Save creates or updates a notification
	Save(ctx context.Context, n *Notification) error

	// MarkAllRead marks every unread notification of one user as read
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// Delete deletes a notification
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByPost deletes every notification referencing a post
	DeleteByPost(ctx context.Context, postID uuid.UUID) error
}
