package forum

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fuadmd/WHH-SBG/internal/domain/forum"
	"github.com/fuadmd/WHH-SBG/internal/domain/identity"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

type commentFixture struct {
	service  *CommentService
	comments *MockCommentRepository
	posts    *MockPostRepository
	users    *MockUserRepository
	events   *MockEventPublisher
}

func newCommentFixture() *commentFixture {
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	events := new(MockEventPublisher)
	return &commentFixture{
		service:  NewCommentService(comments, posts, users, events),
		comments: comments,
		posts:    posts,
		users:    users,
		events:   events,
	}
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a top-level comment and refreshes the counter", func(t *testing.T) {
		f := newCommentFixture()
		user := newActiveUser(t)
		post := newTestPost(t, uuid.New())

		f.users.On("FindByID", ctx, user.ID).Return(user, nil)
		f.posts.On("FindByID", ctx, post.ID).Return(post, nil)
		f.comments.On("Save", ctx, mock.AnythingOfType("*forum.Comment")).Return(nil)
		f.comments.On("CountByPost", ctx, post.ID).Return(int64(1), nil)
		f.posts.On("Save", ctx, post).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.AddComment(ctx, post.ID, user.ID, "  great idea  ", nil)

		require.NoError(t, err)
		assert.Equal(t, "great idea", resp.Content)
		assert.Nil(t, resp.ParentID)
		assert.Equal(t, 1, post.CommentsCount)
		f.comments.AssertExpectations(t)
	})

	t.Run("attaches a reply to a top-level comment", func(t *testing.T) {
		f := newCommentFixture()
		user := newActiveUser(t)
		post := newTestPost(t, uuid.New())
		parent, err := forum.NewComment(post.ID, uuid.New(), "first")
		require.NoError(t, err)

		f.users.On("FindByID", ctx, user.ID).Return(user, nil)
		f.posts.On("FindByID", ctx, post.ID).Return(post, nil)
		f.comments.On("FindByID", ctx, parent.ID).Return(parent, nil)
		f.comments.On("Save", ctx, mock.AnythingOfType("*forum.Comment")).Return(nil)
		f.comments.On("CountByPost", ctx, post.ID).Return(int64(2), nil)
		f.posts.On("Save", ctx, post).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.AddComment(ctx, post.ID, user.ID, "me too", &parent.ID)

		require.NoError(t, err)
		require.NotNil(t, resp.ParentID)
		assert.Equal(t, parent.ID, *resp.ParentID)
	})

	t.Run("reply to a reply is rejected", func(t *testing.T) {
		f := newCommentFixture()
		user := newActiveUser(t)
		post := newTestPost(t, uuid.New())
		top, err := forum.NewComment(post.ID, uuid.New(), "first")
		require.NoError(t, err)
		reply, err := forum.NewReply(post.ID, uuid.New(), top.ID, "second")
		require.NoError(t, err)

		f.users.On("FindByID", ctx, user.ID).Return(user, nil)
		f.posts.On("FindByID", ctx, post.ID).Return(post, nil)
		f.comments.On("FindByID", ctx, reply.ID).Return(reply, nil)

		_, err = f.service.AddComment(ctx, post.ID, user.ID, "third", &reply.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
		f.comments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("parent on a different post is rejected", func(t *testing.T) {
		f := newCommentFixture()
		user := newActiveUser(t)
		post := newTestPost(t, uuid.New())
		parent, err := forum.NewComment(uuid.New(), uuid.New(), "elsewhere")
		require.NoError(t, err)

		f.users.On("FindByID", ctx, user.ID).Return(user, nil)
		f.posts.On("FindByID", ctx, post.ID).Return(post, nil)
		f.comments.On("FindByID", ctx, parent.ID).Return(parent, nil)

		_, err = f.service.AddComment(ctx, post.ID, user.ID, "hello", &parent.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})

	t.Run("empty text after trim is rejected", func(t *testing.T) {
		f := newCommentFixture()
		user := newActiveUser(t)
		post := newTestPost(t, uuid.New())

		f.users.On("FindByID", ctx, user.ID).Return(user, nil)
		f.posts.On("FindByID", ctx, post.ID).Return(post, nil)

		_, err := f.service.AddComment(ctx, post.ID, user.ID, "   \t  ", nil)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})

	t.Run("banned author is forbidden", func(t *testing.T) {
		f := newCommentFixture()
		user := newActiveUser(t)
		require.NoError(t, user.Ban(identity.BanScopeBoth, "harassment"))

		f.users.On("FindByID", ctx, user.ID).Return(user, nil)

		_, err := f.service.AddComment(ctx, uuid.New(), user.ID, "hi", nil)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("market-only ban does not block forum comments", func(t *testing.T) {
		f := newCommentFixture()
		user := newActiveUser(t)
		require.NoError(t, user.Ban(identity.BanScopeMarket, "fake listings"))
		post := newTestPost(t, uuid.New())

		f.users.On("FindByID", ctx, user.ID).Return(user, nil)
		f.posts.On("FindByID", ctx, post.ID).Return(post, nil)
		f.comments.On("Save", ctx, mock.AnythingOfType("*forum.Comment")).Return(nil)
		f.comments.On("CountByPost", ctx, post.ID).Return(int64(1), nil)
		f.posts.On("Save", ctx, post).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(nil)

		_, err := f.service.AddComment(ctx, post.ID, user.ID, "still here", nil)
		require.NoError(t, err)
	})
}

func TestEditComment(t *testing.T) {
	ctx := context.Background()

	t.Run("author edits and the flag latches", func(t *testing.T) {
		f := newCommentFixture()
		authorID := uuid.New()
		comment, err := forum.NewComment(uuid.New(), authorID, "draft")
		require.NoError(t, err)

		f.comments.On("FindByID", ctx, comment.ID).Return(comment, nil)
		f.comments.On("Save", ctx, comment).Return(nil)

		resp, err := f.service.EditComment(ctx, comment.ID, authorID, "final")

		require.NoError(t, err)
		assert.Equal(t, "final", resp.Content)
		assert.True(t, resp.IsEdited)
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		f := newCommentFixture()
		comment, err := forum.NewComment(uuid.New(), uuid.New(), "draft")
		require.NoError(t, err)

		f.comments.On("FindByID", ctx, comment.ID).Return(comment, nil)

		_, err = f.service.EditComment(ctx, comment.ID, uuid.New(), "hijack")
		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.comments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		f := newCommentFixture()
		authorID := uuid.New()
		comment, err := forum.NewComment(uuid.New(), authorID, "draft")
		require.NoError(t, err)

		f.comments.On("FindByID", ctx, comment.ID).Return(comment, nil)

		_, err = f.service.EditComment(ctx, comment.ID, authorID, "  ")
		assert.Error(t, err)
	})
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()

	t.Run("author deletes own comment with replies", func(t *testing.T) {
		f := newCommentFixture()
		authorID := uuid.New()
		post := newTestPost(t, uuid.New())
		comment, err := forum.NewComment(post.ID, authorID, "bye")
		require.NoError(t, err)

		f.comments.On("FindByID", ctx, comment.ID).Return(comment, nil)
		f.comments.On("DeleteWithReplies", ctx, comment.ID).Return(nil)
		f.posts.On("FindByID", ctx, post.ID).Return(post, nil)
		f.comments.On("CountByPost", ctx, post.ID).Return(int64(0), nil)
		f.posts.On("Save", ctx, post).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(nil)

		require.NoError(t, f.service.DeleteComment(ctx, comment.ID, authorID))
		f.comments.AssertExpectations(t)
	})

	t.Run("super admin deletes someone else's comment", func(t *testing.T) {
		f := newCommentFixture()
		post := newTestPost(t, uuid.New())
		comment, err := forum.NewComment(post.ID, uuid.New(), "reported")
		require.NoError(t, err)

		admin, err := identity.NewUserWithRole("Root", "root@example.com", "s3cret-pass", identity.RoleAdmin)
		require.NoError(t, err)
		require.NoError(t, admin.SetAdminPermission(identity.PermissionSuperAdmin))

		f.comments.On("FindByID", ctx, comment.ID).Return(comment, nil)
		f.users.On("FindByID", ctx, admin.ID).Return(admin, nil)
		f.comments.On("DeleteWithReplies", ctx, comment.ID).Return(nil)
		f.posts.On("FindByID", ctx, post.ID).Return(post, nil)
		f.comments.On("CountByPost", ctx, post.ID).Return(int64(0), nil)
		f.posts.On("Save", ctx, post).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(nil)

		require.NoError(t, f.service.DeleteComment(ctx, comment.ID, admin.ID))
	})

	t.Run("unrelated user is forbidden", func(t *testing.T) {
		f := newCommentFixture()
		comment, err := forum.NewComment(uuid.New(), uuid.New(), "mine")
		require.NoError(t, err)
		stranger := newActiveUser(t)

		f.comments.On("FindByID", ctx, comment.ID).Return(comment, nil)
		f.users.On("FindByID", ctx, stranger.ID).Return(stranger, nil)

		err = f.service.DeleteComment(ctx, comment.ID, stranger.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.comments.AssertNotCalled(t, "DeleteWithReplies", mock.Anything, mock.Anything)
	})
}

func TestGetThread(t *testing.T) {
	ctx := context.Background()

	t.Run("replies attach to parents, never the top level", func(t *testing.T) {
		f := newCommentFixture()
		post := newTestPost(t, uuid.New())

		first, err := forum.NewComment(post.ID, uuid.New(), "first")
		require.NoError(t, err)
		second, err := forum.NewComment(post.ID, uuid.New(), "second")
		require.NoError(t, err)
		reply, err := forum.NewReply(post.ID, uuid.New(), first.ID, "nested")
		require.NoError(t, err)

		f.posts.On("FindByID", ctx, post.ID).Return(post, nil)
		f.comments.On("FindByPost", ctx, post.ID).Return([]forum.Comment{*first, *second, *reply}, nil)

		thread, err := f.service.GetThread(ctx, post.ID)

		require.NoError(t, err)
		require.Len(t, thread, 2)
		assert.Equal(t, first.ID, thread[0].ID)
		require.Len(t, thread[0].Replies, 1)
		assert.Equal(t, reply.ID, thread[0].Replies[0].ID)
		assert.Empty(t, thread[1].Replies)
	})

	t.Run("missing post propagates not found", func(t *testing.T) {
		f := newCommentFixture()
		postID := uuid.New()

		f.posts.On("FindByID", ctx, postID).Return(nil, shared.ErrNotFound)

		_, err := f.service.GetThread(ctx, postID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDeleteAllForPost(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	postID := uuid.New()

	f.comments.On("DeleteByPost", ctx, postID).Return(nil)

	require.NoError(t, f.service.DeleteAllForPost(ctx, postID))
	f.comments.AssertExpectations(t)
}
