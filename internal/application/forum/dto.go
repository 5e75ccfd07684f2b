package forum

import (
	"time"

	"github.com/google/uuid"

	"github.com/fuadmd/WHH-SBG/internal/domain/forum"
)

// CreatePostRequest is the payload for creating a post
type CreatePostRequest struct {
	Title   string              `json:"title" binding:"required,max=300"`
	Content []forum.ContentBlock `json:"content" binding:"required"`
}

// UpdatePostRequest is the payload for editing a post
type UpdatePostRequest struct {
	Title   string              `json:"title" binding:"required,max=300"`
	Content []forum.ContentBlock `json:"content" binding:"required"`
}

// AddCommentRequest is the payload for adding a comment or reply
type AddCommentRequest struct {
	Content  string     `json:"content" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// EditCommentRequest is the payload for editing a comment
type EditCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// SetReactionRequest is the payload for setting a reaction
type SetReactionRequest struct {
	Kind forum.ReactionKind `json:"kind" binding:"required"`
}

// ListPostsRequest carries pagination and search parameters for post listing
type ListPostsRequest struct {
	Page     int       `form:"page"`
	PageSize int       `form:"page_size"`
	Search   string    `form:"search"`
	AuthorID uuid.UUID `form:"author_id"`
}

// PostResponse is a post with its enrichments
type PostResponse struct {
	ID            uuid.UUID            `json:"id"`
	AuthorID      uuid.UUID            `json:"author_id"`
	Title         string               `json:"title"`
	Content       []forum.ContentBlock `json:"content"`
	LikesCount    int                  `json:"likes_count"`
	CommentsCount int                  `json:"comments_count"`
	IsEdited      bool                 `json:"is_edited"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	Comments      []CommentResponse    `json:"comments,omitempty"`
	Reactions     []ReactionCount      `json:"reactions,omitempty"`
}

// PostListResponse is a post row in a listing, without thread enrichment
type PostListResponse struct {
	ID            uuid.UUID            `json:"id"`
	AuthorID      uuid.UUID            `json:"author_id"`
	Title         string               `json:"title"`
	Content       []forum.ContentBlock `json:"content"`
	LikesCount    int                  `json:"likes_count"`
	CommentsCount int                  `json:"comments_count"`
	IsEdited      bool                 `json:"is_edited"`
	CreatedAt     time.Time            `json:"created_at"`
}

// CommentResponse is a comment with its direct replies attached
type CommentResponse struct {
	ID        uuid.UUID         `json:"id"`
	PostID    uuid.UUID         `json:"post_id"`
	ParentID  *uuid.UUID        `json:"parent_id,omitempty"`
	AuthorID  uuid.UUID         `json:"author_id"`
	Content   string            `json:"content"`
	IsEdited  bool              `json:"is_edited"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Replies   []CommentResponse `json:"replies,omitempty"`
}

// ReactionCount is one kind's tally on a post
type ReactionCount struct {
	Kind  forum.ReactionKind `json:"kind"`
	Count int                `json:"count"`
}

// ToPostResponse converts a domain post to a response
func ToPostResponse(post *forum.Post) PostResponse {
	return PostResponse{
		ID:            post.ID,
		AuthorID:      post.AuthorID,
		Title:         post.Title,
		Content:       post.Content,
		LikesCount:    post.LikesCount,
		CommentsCount: post.CommentsCount,
		IsEdited:      post.IsEdited,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}

// ToPostListResponses converts domain posts to listing rows
func ToPostListResponses(posts []forum.Post) []PostListResponse {
	responses := make([]PostListResponse, len(posts))
	for i, p := range posts {
		responses[i] = PostListResponse{
			ID:            p.ID,
			AuthorID:      p.AuthorID,
			Title:         p.Title,
			Content:       p.Content,
			LikesCount:    p.LikesCount,
			CommentsCount: p.CommentsCount,
			IsEdited:      p.IsEdited,
			CreatedAt:     p.CreatedAt,
		}
	}
	return responses
}

// ToCommentResponse converts a domain comment to a response
func ToCommentResponse(comment *forum.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		ParentID:  comment.ParentID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		IsEdited:  comment.IsEdited,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// BuildCommentThread arranges a flat comment list into top-level comments
// with their replies attached, both levels oldest first. Replies are never
// flattened into the top-level list.
func BuildCommentThread(comments []forum.Comment) []CommentResponse {
	topLevel := make([]CommentResponse, 0)
	index := make(map[uuid.UUID]int)

	for i := range comments {
		c := &comments[i]
		if c.ParentID == nil {
			topLevel = append(topLevel, ToCommentResponse(c))
			index[c.ID] = len(topLevel) - 1
		}
	}
	for i := range comments {
		c := &comments[i]
		if c.ParentID == nil {
			continue
		}
		if pos, ok := index[*c.ParentID]; ok {
			topLevel[pos].Replies = append(topLevel[pos].Replies, ToCommentResponse(c))
		}
	}
	return topLevel
}
