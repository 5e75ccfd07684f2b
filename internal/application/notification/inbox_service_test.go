package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fuadmd/WHH-SBG/internal/domain/notification"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

func newInboxNotification(t *testing.T, userID uuid.UUID) *notification.Notification {
	t.Helper()
	n, err := notification.New(userID, notification.TypeNewComment, "Someone commented on your post", "")
	require.NoError(t, err)
	return n
}

func TestInboxList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the user's notifications", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewInboxService(repo)
		userID := uuid.New()
		n := newInboxNotification(t, userID)

		repo.On("FindByUser", ctx, userID, 20).Return([]notification.Notification{*n}, nil)

		items, err := service.List(ctx, userID, 20)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, n.ID, items[0].ID)
	})

	t.Run("nil user is unauthorized", func(t *testing.T) {
		service := NewInboxService(new(MockNotificationRepository))
		_, err := service.List(ctx, uuid.Nil, 20)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestInboxListUnread(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)
	service := NewInboxService(repo)
	userID := uuid.New()
	n := newInboxNotification(t, userID)

	repo.On("FindUnreadByUser", ctx, userID).Return([]notification.Notification{*n}, nil)

	items, err := service.ListUnread(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsRead)
}

func TestInboxMarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("marks unread notification read", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewInboxService(repo)
		userID := uuid.New()
		n := newInboxNotification(t, userID)

		repo.On("FindByID", ctx, n.ID).Return(n, nil)
		repo.On("Save", ctx, n).Return(nil)

		require.NoError(t, service.MarkRead(ctx, n.ID, userID))
		assert.True(t, n.IsRead)
	})

	t.Run("already read is a no-op", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewInboxService(repo)
		userID := uuid.New()
		n := newInboxNotification(t, userID)
		n.MarkRead()

		repo.On("FindByID", ctx, n.ID).Return(n, nil)

		require.NoError(t, service.MarkRead(ctx, n.ID, userID))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("another user's notification is forbidden", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewInboxService(repo)
		n := newInboxNotification(t, uuid.New())

		repo.On("FindByID", ctx, n.ID).Return(n, nil)

		err := service.MarkRead(ctx, n.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestInboxMarkAllRead(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)
	service := NewInboxService(repo)
	userID := uuid.New()

	repo.On("MarkAllRead", ctx, userID).Return(nil)

	require.NoError(t, service.MarkAllRead(ctx, userID))
	repo.AssertCalled(t, "MarkAllRead", ctx, userID)
}

func TestInboxRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes own notification", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewInboxService(repo)
		userID := uuid.New()
		n := newInboxNotification(t, userID)

		repo.On("FindByID", ctx, n.ID).Return(n, nil)
		repo.On("Delete", ctx, n.ID).Return(nil)

		require.NoError(t, service.Remove(ctx, n.ID, userID))
	})

	t.Run("another user's notification is forbidden", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewInboxService(repo)
		n := newInboxNotification(t, uuid.New())

		repo.On("FindByID", ctx, n.ID).Return(n, nil)

		err := service.Remove(ctx, n.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrForbidden)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestInboxUnreadCount(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)
	service := NewInboxService(repo)
	userID := uuid.New()

	repo.On("CountUnread", ctx, userID).Return(int64(3), nil)

	count, err := service.UnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
