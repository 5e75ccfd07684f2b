package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	forumapp "github.com/fuadmd/WHH-SBG/internal/application/forum"
	"github.com/fuadmd/WHH-SBG/internal/domain/forum"
)

// TestForumFlow walks a post through comments, replies and reactions and
// checks that the author's inbox fills up along the way.
func TestForumFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	ts := NewTestServer(t, tdb)
	ctx := context.Background()

	_, authorIDStr := ts.SignUp(t, "Author", "author@example.com", "password-one")
	_, readerIDStr := ts.SignUp(t, "Reader", "reader@example.com", "password-two")
	authorID := uuid.MustParse(authorIDStr)
	readerID := uuid.MustParse(readerIDStr)

	post, err := ts.PostService.CreatePost(ctx, authorID, forumapp.CreatePostRequest{
		Title: "Opening hours over the holidays",
		Content: []forum.ContentBlock{
			{Type: forum.ContentTypeText, Text: "We are open until 8pm all through December."},
		},
	})
	require.NoError(t, err)

	t.Run("comment notifies the post author", func(t *testing.T) {
		comment, err := ts.CommentService.AddComment(ctx, post.ID, readerID, "Good to know, thanks!", nil)
		require.NoError(t, err)

		unread, err := ts.InboxService.ListUnread(ctx, authorID)
		require.NoError(t, err)
		require.Len(t, unread, 1)
		assert.Contains(t, unread[0].Title, "Reader")

		t.Run("reply notifies the comment author", func(t *testing.T) {
			_, err := ts.CommentService.AddComment(ctx, post.ID, authorID, "Any time.", &comment.ID)
			require.NoError(t, err)

			unread, err := ts.InboxService.ListUnread(ctx, readerID)
			require.NoError(t, err)
			require.Len(t, unread, 1)
		})
	})

	t.Run("author commenting on own post stays silent", func(t *testing.T) {
		before, err := ts.InboxService.UnreadCount(ctx, authorID)
		require.NoError(t, err)

		_, err = ts.CommentService.AddComment(ctx, post.ID, authorID, "One more thing.", nil)
		require.NoError(t, err)

		after, err := ts.InboxService.UnreadCount(ctx, authorID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("reaction updates counts and notifies", func(t *testing.T) {
		counts, err := ts.ReactionService.SetReaction(ctx, post.ID, readerID, forum.ReactionLike)
		require.NoError(t, err)

		total := 0
		for _, c := range counts {
			if c.Kind == forum.ReactionLike {
				total = c.Count
			}
		}
		assert.Equal(t, 1, total)

		unread, err := ts.InboxService.ListUnread(ctx, authorID)
		require.NoError(t, err)
		require.NotEmpty(t, unread)
	})

	t.Run("same reaction toggles off", func(t *testing.T) {
		counts, err := ts.ReactionService.SetReaction(ctx, post.ID, readerID, forum.ReactionLike)
		require.NoError(t, err)

		for _, c := range counts {
			assert.Zero(t, c.Count, "kind %s should be empty after toggle", c.Kind)
		}
	})

	t.Run("comment counters survive a round trip", func(t *testing.T) {
		fetched, err := ts.PostService.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, fetched.CommentsCount)
	})

	t.Run("deleting the post cascades", func(t *testing.T) {
		require.NoError(t, ts.PostService.DeletePost(ctx, post.ID, authorID))

		rec, _ := ts.Request(t, http.MethodGet, "/api/v1/posts/"+post.ID.String(), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		thread, err := ts.CommentService.GetThread(ctx, post.ID)
		require.NoError(t, err)
		assert.Empty(t, thread)
	})
}
