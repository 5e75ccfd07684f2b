package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fuadmd/WHH-SBG/internal/domain/forum"
	"github.com/fuadmd/WHH-SBG/internal/domain/identity"
	"github.com/fuadmd/WHH-SBG/internal/domain/notification"
)

type handlerFixture struct {
	handler       *ForumEventHandler
	notifications *MockNotificationRepository
	users         *MockUserRepository
	posts         *MockPostRepository
	comments      *MockCommentRepository
}

func newHandlerFixture() *handlerFixture {
	notifications := new(MockNotificationRepository)
	users := new(MockUserRepository)
	posts := new(MockPostRepository)
	comments := new(MockCommentRepository)
	dispatcher := NewDispatcher(notifications, users, nil, zap.NewNop())
	return &handlerFixture{
		handler:       NewForumEventHandler(dispatcher, posts, comments, zap.NewNop()),
		notifications: notifications,
		users:         users,
		posts:         posts,
		comments:      comments,
	}
}

func newEventPost(t *testing.T, authorID uuid.UUID) *forum.Post {
	t.Helper()
	post, err := forum.NewPost(authorID, "Stall assignments", []forum.ContentBlock{
		{Type: forum.ContentTypeText, Text: "Posted the new map"},
	})
	require.NoError(t, err)
	post.ClearDomainEvents()
	return post
}

func TestHandlerEventTypes(t *testing.T) {
	f := newHandlerFixture()
	assert.ElementsMatch(t,
		[]string{forum.EventTypeCommentAdded, forum.EventTypeReactionSet},
		f.handler.EventTypes())
}

func TestHandleCommentAdded(t *testing.T) {
	ctx := context.Background()

	t.Run("top-level comment notifies the post author", func(t *testing.T) {
		f := newHandlerFixture()
		postAuthorID := uuid.New()
		post := newEventPost(t, postAuthorID)
		commenter, err := identity.NewUser("Nadia", "nadia@example.com", "s3cret-pass")
		require.NoError(t, err)
		comment, err := forum.NewComment(post.ID, commenter.ID, "looks good")
		require.NoError(t, err)

		f.posts.On("FindByID", ctx, post.ID).Return(post, nil)
		f.users.On("FindByID", ctx, commenter.ID).Return(commenter, nil)
		f.notifications.On("Save", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.UserID == postAuthorID && n.Type == notification.TypeNewComment
		})).Return(nil)

		require.NoError(t, f.handler.Handle(ctx, forum.NewCommentAddedEvent(comment)))
		f.notifications.AssertExpectations(t)
	})

	t.Run("reply notifies the parent comment author", func(t *testing.T) {
		f := newHandlerFixture()
		post := newEventPost(t, uuid.New())
		parentAuthorID := uuid.New()
		parent, err := forum.NewComment(post.ID, parentAuthorID, "first")
		require.NoError(t, err)
		replier, err := identity.NewUser("Idris", "idris@example.com", "s3cret-pass")
		require.NoError(t, err)
		reply, err := forum.NewReply(post.ID, replier.ID, parent.ID, "agreed")
		require.NoError(t, err)

		f.comments.On("FindByID", ctx, parent.ID).Return(parent, nil)
		f.users.On("FindByID", ctx, replier.ID).Return(replier, nil)
		f.notifications.On("Save", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.UserID == parentAuthorID && n.Type == notification.TypeNewReply
		})).Return(nil)

		require.NoError(t, f.handler.Handle(ctx, forum.NewCommentAddedEvent(reply)))
		f.posts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("author commenting on own post stays silent", func(t *testing.T) {
		f := newHandlerFixture()
		authorID := uuid.New()
		post := newEventPost(t, authorID)
		comment, err := forum.NewComment(post.ID, authorID, "bump")
		require.NoError(t, err)

		f.posts.On("FindByID", ctx, post.ID).Return(post, nil)

		require.NoError(t, f.handler.Handle(ctx, forum.NewCommentAddedEvent(comment)))
		f.notifications.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestHandleReactionSet(t *testing.T) {
	ctx := context.Background()

	t.Run("created reaction notifies the post author", func(t *testing.T) {
		f := newHandlerFixture()
		postAuthorID := uuid.New()
		post := newEventPost(t, postAuthorID)
		reactor, err := identity.NewUser("Musa", "musa@example.com", "s3cret-pass")
		require.NoError(t, err)

		f.posts.On("FindByID", ctx, post.ID).Return(post, nil)
		f.users.On("FindByID", ctx, reactor.ID).Return(reactor, nil)
		f.notifications.On("Save", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.UserID == postAuthorID && n.Type == notification.TypeNewReaction
		})).Return(nil)

		event := forum.NewReactionSetEvent(post.ID, reactor.ID, forum.ReactionWow, forum.ReactionActionCreated)
		require.NoError(t, f.handler.Handle(ctx, event))
	})

	t.Run("removal notifies nobody", func(t *testing.T) {
		f := newHandlerFixture()
		event := forum.NewReactionSetEvent(uuid.New(), uuid.New(), forum.ReactionLike, forum.ReactionActionRemoved)

		require.NoError(t, f.handler.Handle(ctx, event))
		f.posts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		f.notifications.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
