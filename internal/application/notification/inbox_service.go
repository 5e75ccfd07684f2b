package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/fuadmd/WHH-SBG/internal/domain/notification"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

// InboxService reads and mutates a user's notification inbox
type InboxService struct {
	notificationRepo notification.Repository
}

// NewInboxService creates a new InboxService
func NewInboxService(notificationRepo notification.Repository) *InboxService {
	return &InboxService{notificationRepo: notificationRepo}
}

// List returns the user's newest notifications
func (s *InboxService) List(ctx context.Context, userID uuid.UUID, limit int) ([]NotificationResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	items, err := s.notificationRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return ToNotificationResponses(items), nil
}

// ListUnread returns the user's unread notifications, newest first
func (s *InboxService) ListUnread(ctx context.Context, userID uuid.UUID) ([]NotificationResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	items, err := s.notificationRepo.FindUnreadByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToNotificationResponses(items), nil
}

// UnreadCount returns how many unread notifications the user has
func (s *InboxService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, shared.ErrUnauthorized
	}
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one notification read. Only the addressee may mark it, and
// marking an already-read notification is a no-op.
func (s *InboxService) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.ErrUnauthorized
	}
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return shared.ErrForbidden
	}
	if n.IsRead {
		return nil
	}
	n.MarkRead()
	return s.notificationRepo.Save(ctx, n)
}

// MarkAllRead marks every unread notification of the user as read. Other
// users' inboxes are untouched.
func (s *InboxService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.ErrUnauthorized
	}
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Remove deletes one notification from the user's inbox
func (s *InboxService) Remove(ctx context.Context, notificationID, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.ErrUnauthorized
	}
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return shared.ErrForbidden
	}
	return s.notificationRepo.Delete(ctx, notificationID)
}
